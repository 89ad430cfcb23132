package domain

// League is the youth league a club belongs to.
type League string

const (
	LeagueECNL    League = "ECNL"
	LeagueGA      League = "GA"
	LeagueOther   League = "Other"
	LeagueUnknown League = "Unknown"
)

func (l League) String() string {
	return string(l)
}

// Club is read-only roster data. Identity is the normalized name; SourceID is
// only meaningful within the source that produced it.
type Club struct {
	Name       string `json:"name"`
	State      string `json:"state,omitempty"`
	City       string `json:"city,omitempty"`
	League     League `json:"league"`
	SourceID   string `json:"sourceId,omitempty"`
	OrgID      string `json:"orgId,omitempty"`
	Logo       string `json:"logo,omitempty"`
	Conference string `json:"conference,omitempty"`
	URL        string `json:"url,omitempty"`
}

// ClubTranslation folds a known spelling variant into its canonical name.
type ClubTranslation struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// LeagueLookup is one row of a league lookup response.
type LeagueLookup struct {
	Club   string `json:"club"`
	League League `json:"league"`
}

// GAConference is a Girls Academy conference heading.
type GAConference struct {
	Name string `json:"name"`
}
