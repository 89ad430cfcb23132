package domain

// Ranking is one row of a rankings table. Rows are rebuilt wholesale per
// fetch and never updated in place.
type Ranking struct {
	Rank       int    `json:"rank"`
	School     string `json:"school"`
	Record     string `json:"record"`
	Points     *int   `json:"points,omitempty"`
	Previous   string `json:"previous,omitempty"`
	Conference string `json:"conference,omitempty"`
	Neutral    string `json:"neutral,omitempty"`
	NonDivI    string `json:"non-div-i,omitempty"`
}

// NCAASchool is a member institution from the NCAA directory.
type NCAASchool struct {
	Name       string `json:"name"`
	Conference string `json:"conference"`
	Private    bool   `json:"private"`
	HBCU       bool   `json:"hbcu"`
	State      string `json:"state"`
}
