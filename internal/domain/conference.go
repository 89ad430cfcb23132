package domain

import (
	"fmt"
	"strings"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ParseGender accepts male/female and the single-letter forms, any case.
func ParseGender(value string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "male", "m":
		return GenderMale, nil
	case "female", "f":
		return GenderFemale, nil
	default:
		return "", fmt.Errorf("invalid gender %q", value)
	}
}

// Code returns the single-letter form used by search queries.
func (g Gender) Code() string {
	switch g {
	case GenderMale:
		return "m"
	case GenderFemale:
		return "f"
	default:
		return ""
	}
}

// Heading returns the listing heading marker for this gender.
func (g Gender) Heading() string {
	if g == GenderMale {
		return "Men's"
	}
	return "Women's"
}

// PathSegment returns the gender segment used in source URLs.
func (g Gender) PathSegment() string {
	if g == GenderMale {
		return "men"
	}
	return "women"
}

type Division string

const (
	DivisionDI    Division = "di"
	DivisionDII   Division = "dii"
	DivisionDIII  Division = "diii"
	DivisionNAIA  Division = "naia"
	DivisionNJCAA Division = "njcaa"
)

var Divisions = []Division{DivisionDI, DivisionDII, DivisionDIII, DivisionNAIA, DivisionNJCAA}

func ParseDivision(value string) (Division, error) {
	d := Division(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range Divisions {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("invalid division %q", value)
}

// Conference identity is (Gender, Division, Name). ID is unique only within
// one gender+division listing. Schools stays nil until commitments are requested.
type Conference struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	URL      string   `json:"url"`
	Gender   Gender   `json:"gender"`
	Division Division `json:"division"`
	Schools  []School `json:"schools"`
}

// School is owned by the conference that lists it.
type School struct {
	Name    string   `json:"name"`
	URL     string   `json:"url,omitempty"`
	Players []Player `json:"players"`
}

// ClubCommitments is one row of the per-club commitment count table.
type ClubCommitments struct {
	Club  string `json:"club"`
	DI    int    `json:"di"`
	DII   int    `json:"dii"`
	DIII  int    `json:"diii"`
	NAIA  int    `json:"naia"`
	Total int    `json:"total"`
}

// LeagueBreakdown counts a conference's committed players per league.
type LeagueBreakdown struct {
	Name   string `json:"name"`
	League League `json:"league"`
	Value  int    `json:"value"`
}
