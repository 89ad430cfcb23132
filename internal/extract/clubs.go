package extract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kapu/soccer-data-go/internal/constants"
	"github.com/kapu/soccer-data-go/internal/domain"
	"github.com/kapu/soccer-data-go/internal/util"
	"github.com/kapu/soccer-data-go/pkg/errors"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// ECNLClubs parses the ECNL organisation club list endpoint.
func ECNLClubs(body []byte, logger *zap.Logger) ([]domain.Club, error) {
	logger = nopIfNil(logger)

	if !gjson.ValidBytes(body) {
		return nil, errors.NewParseError(constants.SourceECNL, "json", fmt.Errorf("invalid JSON payload"))
	}
	data := gjson.GetBytes(body, "data")
	if !data.IsArray() {
		return nil, errors.NewParseError(constants.SourceECNL, "data", nil)
	}

	clubs := make([]domain.Club, 0, len(data.Array()))
	for i, item := range data.Array() {
		name := util.CollapseSpaces(item.Get("clubFullName").String())
		if name == "" {
			skipRow(logger, constants.SourceECNL, i, "club without name")
			continue
		}
		clubs = append(clubs, domain.Club{
			Name:     name,
			City:     strings.TrimSpace(item.Get("city").String()),
			State:    strings.TrimSpace(item.Get("stateCode").String()),
			Logo:     strings.TrimSpace(item.Get("clubLogo").String()),
			SourceID: item.Get("clubID").String(),
			OrgID:    item.Get("orgID").String(),
			League:   domain.LeagueECNL,
		})
	}

	return clubs, nil
}

func gaTabs(body []byte) (*goquery.Selection, error) {
	doc, err := newDocument(constants.SourceGA, body)
	if err != nil {
		return nil, err
	}
	tabs := doc.Find("div.et_pb_tab_content")
	if tabs.Length() == 0 {
		return nil, errors.NewParseError(constants.SourceGA, "member tabs", nil)
	}
	return tabs, nil
}

// gaConferenceName is the first non-empty <strong> in the cell, upper-cased
// with the word CONFERENCE removed.
func gaConferenceName(cell *goquery.Selection) string {
	name := ""
	cell.Find("strong").EachWithBreak(func(_ int, strong *goquery.Selection) bool {
		value := strings.TrimSpace(strong.Text())
		if value == "" {
			return true
		}
		value = strings.ReplaceAll(strings.ToUpper(value), "CONFERENCE", "")
		name = strings.TrimSpace(value)
		return false
	})
	return name
}

// stateInParens returns "TX" for "Solar SC (TX)".
func stateInParens(s string) string {
	open := strings.Index(s, "(")
	end := strings.Index(s, ")")
	if open == -1 || end <= open {
		return ""
	}
	return strings.TrimSpace(s[open+1 : end])
}

// GAClubs parses the Girls Academy members page. Each tab holds one
// conference; its first cell lists the member clubs in a nested list.
func GAClubs(body []byte, logger *zap.Logger) ([]domain.Club, error) {
	logger = nopIfNil(logger)

	tabs, err := gaTabs(body)
	if err != nil {
		return nil, err
	}

	clubs := make([]domain.Club, 0)
	tabs.Each(func(_ int, tab *goquery.Selection) {
		cell := tab.Find("td").First()
		if cell.Length() == 0 {
			return
		}
		conference := gaConferenceName(cell)

		cell.Find("ul ul li").Each(func(i int, item *goquery.Selection) {
			anchor := item.Find("a").First()
			name := util.CollapseSpaces(anchor.Text())
			if name == "" {
				skipRow(logger, constants.SourceGA, i, "member without club link")
				return
			}
			href, _ := anchor.Attr("href")
			clubs = append(clubs, domain.Club{
				Name:       name,
				State:      stateInParens(item.Text()),
				Conference: conference,
				URL:        strings.TrimSpace(href),
				League:     domain.LeagueGA,
			})
		})
	})

	return clubs, nil
}

func GAConferences(body []byte) ([]domain.GAConference, error) {
	tabs, err := gaTabs(body)
	if err != nil {
		return nil, err
	}

	conferences := make([]domain.GAConference, 0)
	tabs.Each(func(_ int, tab *goquery.Selection) {
		cell := tab.Find("td").First()
		if cell.Length() == 0 {
			return
		}
		conferences = append(conferences, domain.GAConference{Name: gaConferenceName(cell)})
	})
	return conferences, nil
}

// ClubCommitments parses the pre-aggregated commitments-per-club table.
func ClubCommitments(body []byte, logger *zap.Logger) ([]domain.ClubCommitments, error) {
	logger = nopIfNil(logger)

	doc, err := newDocument(constants.SourceTopDrawer, body)
	if err != nil {
		return nil, err
	}

	table := doc.Find("table.tds-table, table.table-striped").First()
	if table.Length() == 0 {
		return nil, errors.NewParseError(constants.SourceTopDrawer, "club commitments table", nil)
	}

	results := make([]domain.ClubCommitments, 0)
	table.Find("tbody tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 6 {
			skipRow(logger, constants.SourceTopDrawer, i, "too few cells for a club row")
			return
		}

		counts := make([]int, 5)
		for n := range counts {
			value, err := strconv.Atoi(text(cells.Eq(n + 1)))
			if err != nil {
				skipRow(logger, constants.SourceTopDrawer, i, "count is not a number")
				return
			}
			counts[n] = value
		}

		results = append(results, domain.ClubCommitments{
			Club:  text(cells.Eq(0)),
			DI:    counts[0],
			DII:   counts[1],
			DIII:  counts[2],
			NAIA:  counts[3],
			Total: counts[4],
		})
	})

	return results, nil
}
