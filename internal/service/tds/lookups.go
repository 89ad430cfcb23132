package tds

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/kapu/soccer-data-go/internal/domain"
	"github.com/kapu/soccer-data-go/internal/util"
)

// Each Default* call returns a fresh map; Service never mutates them.

func DefaultDivisionPaths() map[domain.Division]string {
	return map[domain.Division]string{
		domain.DivisionDI:    "/di/divisionid-1",
		domain.DivisionDII:   "/dii/divisionid-2",
		domain.DivisionDIII:  "/diii/divisionid-3",
		domain.DivisionNAIA:  "/naia/divisionid-4",
		domain.DivisionNJCAA: "/njcaa/divisionid-5",
	}
}

func DefaultPositions() map[string]int {
	return map[string]int{
		"All":        0,
		"Goalkeeper": 1,
		"Defender":   2,
		"Midfielder": 6,
		"Forward":    5,
	}
}

func DefaultRegions() map[string]int {
	return map[string]int{
		"All":                          0,
		"Florida":                      10,
		"Great Lakes":                  7,
		"Heartland":                    5,
		"International":                17,
		"Mid Atlantic":                 100,
		"Midwest":                      6,
		"New Jersey":                   14,
		"New York":                     15,
		"Northeast":                    16,
		"Northern California & Hawaii": 2,
		"Pacific Northwest":            3,
		"Pennsylvania":                 13,
		"Rocky Mountains & Southwest":  4,
		"South":                        9,
		"South Atlantic":               11,
		"Southern California":          1,
		"Texas":                        8,
	}
}

func DefaultStates() map[string]int {
	return map[string]int{
		"All": 0, "Alabama": 1, "Alaska": 2, "Arizona": 3, "Arkansas": 4,
		"California": 5, "Colorado": 6, "Connecticut": 7, "Delaware": 8,
		"District of Columbia": 9, "Florida": 10, "Georgia": 11, "Hawaii": 12,
		"Idaho": 13, "Illinois": 14, "Indiana": 15, "International": 99,
		"Iowa": 16, "Kansas": 17, "Kentucky": 18, "Louisiana": 19, "Maine": 20,
		"Maryland": 21, "Massachusetts": 22, "Michigan": 23, "Minnesota": 24,
		"Mississippi": 25, "Missouri": 26, "Montana": 27, "Nebraska": 28,
		"Nevada": 29, "New Hampshire": 30, "New Jersey": 31, "New Mexico": 32,
		"New York": 33, "North Carolina": 34, "North Dakota": 35, "Ohio": 36,
		"Oklahoma": 37, "Oregon": 38, "Pennsylvania": 39, "Rhode Island": 40,
		"South Carolina": 41, "South Dakota": 42, "Tennessee": 43, "Texas": 44,
		"Utah": 45, "Vermont": 46, "Virginia": 47, "Washington": 48,
		"West Virginia": 49, "Wisconsin": 50, "Wyoming": 51,
	}
}

// lookupID returns the source id for name, or 0 ("All") when unknown.
func lookupID(table map[string]int, name string) int {
	if id, ok := table[name]; ok {
		return id
	}
	return 0
}

// searchURL builds the player search URL for one results page.
func searchURL(base string, gender domain.Gender, position, region, state int, gradYear string, page int) string {
	params := []struct{ key, value string }{
		{"genderId", gender.Code()},
		{"positionId", strconv.Itoa(position)},
		{"graduationYear", gradYear},
		{"regionId", strconv.Itoa(region)},
		{"countyId", strconv.Itoa(state)},
		{"pageNo", strconv.Itoa(page)},
		{"area", "clubplayer"},
		{"sortColumns", "0"},
		{"sortDirections", "1"},
		{"search", "1"},
	}

	query := "?query="
	for _, p := range params {
		query += "&" + p.key + "=" + url.QueryEscape(p.value)
	}
	return base + query
}

func clubCommitmentsURL(base string, gender domain.Gender, year int) string {
	return fmt.Sprintf("%s?genderId=%s&graduationYear=%d", base, gender.Code(), year)
}

// PlayerDetailsURL builds a profile URL from a display name and player id.
func PlayerDetailsURL(format, name string, pid int) string {
	return fmt.Sprintf(format, util.Slugify(name), pid)
}
