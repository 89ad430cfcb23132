package domain

// Player is a recruit as seen from a commitments table or a search result.
// Club is nil when the source had no club field and "" when the field was
// blank. League is always derived from the final club name.
type Player struct {
	ID            string  `json:"id,omitempty"`
	Name          string  `json:"name"`
	URL           string  `json:"url,omitempty"`
	ImageURL      string  `json:"imageUrl,omitempty"`
	GradYear      int     `json:"year"`
	Position      string  `json:"position"`
	City          string  `json:"city,omitempty"`
	State         string  `json:"state"`
	Club          *string `json:"club"`
	League        League  `json:"league"`
	HighSchool    *string `json:"highSchool,omitempty"`
	Team          *string `json:"team,omitempty"`
	JerseyNumber  *string `json:"jerseyNumber,omitempty"`
	Region        *string `json:"region,omitempty"`
	Rating        *string `json:"rating,omitempty"`
	Commitment    *string `json:"commitment,omitempty"`
	CommitmentURL *string `json:"commitmentUrl,omitempty"`
}

// PlayerDetails holds the fields only available on a player's own page.
type PlayerDetails struct {
	Name          string  `json:"name,omitempty"`
	Club          *string `json:"club"`
	Team          *string `json:"team,omitempty"`
	JerseyNumber  *string `json:"jerseyNumber,omitempty"`
	HighSchool    *string `json:"highSchool,omitempty"`
	Region        *string `json:"region,omitempty"`
	Rating        *string `json:"rating,omitempty"`
	Commitment    *string `json:"commitment,omitempty"`
	CommitmentURL *string `json:"commitmentUrl,omitempty"`
	League        League  `json:"league,omitempty"`
}

// Apply overwrites the player's coarse listing values with every field the
// detail page provided.
func (d *PlayerDetails) Apply(p *Player) {
	if d == nil || p == nil {
		return
	}
	if d.Club != nil {
		p.Club = d.Club
	}
	if d.Team != nil {
		p.Team = d.Team
	}
	if d.JerseyNumber != nil {
		p.JerseyNumber = d.JerseyNumber
	}
	if d.HighSchool != nil {
		p.HighSchool = d.HighSchool
	}
	if d.Region != nil {
		p.Region = d.Region
	}
	if d.Rating != nil {
		p.Rating = d.Rating
	}
	if d.Commitment != nil {
		p.Commitment = d.Commitment
	}
	if d.CommitmentURL != nil {
		p.CommitmentURL = d.CommitmentURL
	}
}

// PlayerQuery is a player search request. Empty fields mean "All".
type PlayerQuery struct {
	Gender   string `json:"gender"`
	Position string `json:"position"`
	GradYear string `json:"gradyear"`
	Region   string `json:"region"`
	State    string `json:"state"`
}
