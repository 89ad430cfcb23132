package extract

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kapu/soccer-data-go/internal/constants"
	"github.com/kapu/soccer-data-go/internal/domain"
	"github.com/kapu/soccer-data-go/internal/util"
	"go.uber.org/zap"
)

// CommitmentRow is one row of a conference commitments table: either the
// start of a school section or a player committed to the current school.
type CommitmentRow struct {
	School *domain.School
	Player *domain.Player
}

const playerRowCells = 6

// CommitmentRows parses a conference commitments tab. The second return
// value is false when the page has no commitments table for the gender,
// which callers treat as "no commitments" rather than an error.
func CommitmentRows(body []byte, gender domain.Gender, prefix string, logger *zap.Logger) ([]CommitmentRow, bool, error) {
	logger = nopIfNil(logger)

	doc, err := newDocument(constants.SourceTopDrawer, body)
	if err != nil {
		return nil, false, err
	}

	var tableBody *goquery.Selection
	doc.Find("table.tds-table, table.table-striped").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		if table.Find("thead." + string(gender)).Length() == 0 {
			return true
		}
		tableBody = table.Find("tbody").First()
		return false
	})

	if tableBody == nil || tableBody.Length() == 0 {
		return []CommitmentRow{}, false, nil
	}

	rows := make([]CommitmentRow, 0)
	tableBody.Find("tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")

		if cells.Length() == 1 {
			name := text(cells.First())
			if name == "" {
				skipRow(logger, constants.SourceTopDrawer, i, "blank school row")
				return
			}
			rows = append(rows, CommitmentRow{School: &domain.School{
				Name:    name,
				URL:     AnchorURL(cells.First(), prefix),
				Players: []domain.Player{},
			}})
			return
		}

		if cells.Length() < playerRowCells {
			skipRow(logger, constants.SourceTopDrawer, i, "too few cells for a player row")
			return
		}

		cell := func(n int) string { return text(cells.Eq(n)) }

		year, err := strconv.Atoi(cell(1))
		if err != nil {
			skipRow(logger, constants.SourceTopDrawer, i, "graduation year is not a number")
			return
		}

		club := util.CollapseSpaces(cells.Eq(5).Text())
		player := &domain.Player{
			Name:     cell(0),
			URL:      AnchorURL(cells.Eq(0), prefix),
			GradYear: year,
			Position: cell(2),
			City:     cell(3),
			State:    cell(4),
			Club:     &club,
		}
		if player.URL != "" {
			player.ID = util.TrailingID(player.URL)
		}
		if strings.TrimSpace(player.Name) == "" {
			skipRow(logger, constants.SourceTopDrawer, i, "blank player name")
			return
		}

		rows = append(rows, CommitmentRow{Player: player})
	})

	return rows, true, nil
}
