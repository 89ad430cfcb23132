package extract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kapu/soccer-data-go/internal/domain"
	"github.com/kapu/soccer-data-go/pkg/errors"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// RankingLayout names the column holding each field; -1 means absent.
type RankingLayout struct {
	Table      string
	Rank       int
	School     int
	Points     int
	Record     int
	Previous   int
	Conference int
	Neutral    int
	NonDivI    int
}

var (
	RPILayout = RankingLayout{
		Table: "table", Rank: 0, School: 1, Conference: 2, Record: 3, Neutral: 4, NonDivI: 5,
		Points: -1, Previous: -1,
	}
	CoachesDILayout = RankingLayout{
		Table: "table", Rank: 0, School: 1, Points: 2, Record: 3, Previous: 4,
		Conference: -1, Neutral: -1, NonDivI: -1,
	}
	CoachesDIILayout = RankingLayout{
		Table: "table.rankingsTable", Rank: 0, School: 1, Previous: 2, Record: 3,
		Points: -1, Conference: -1, Neutral: -1, NonDivI: -1,
	}
)

func (l RankingLayout) width() int {
	widest := 0
	for _, col := range []int{l.Rank, l.School, l.Points, l.Record, l.Previous, l.Conference, l.Neutral, l.NonDivI} {
		if col+1 > widest {
			widest = col + 1
		}
	}
	return widest
}

// Rankings parses a rankings table using the given column layout. A missing
// table or body is a ParseError; rows that do not fit the layout are skipped.
func Rankings(source string, body []byte, layout RankingLayout, logger *zap.Logger) ([]domain.Ranking, error) {
	logger = nopIfNil(logger)

	doc, err := newDocument(source, body)
	if err != nil {
		return nil, err
	}

	tbody := doc.Find(layout.Table).First().Find("tbody").First()
	if tbody.Length() == 0 {
		return nil, errors.NewParseError(source, "rankings table", nil)
	}

	rankings := make([]domain.Ranking, 0)
	tbody.ChildrenFiltered("tr").Each(func(i int, row *goquery.Selection) {
		cells := row.ChildrenFiltered("td")
		if cells.Length() < layout.width() {
			skipRow(logger, source, i, "too few cells for a ranking row")
			return
		}
		cell := func(n int) string {
			if n < 0 {
				return ""
			}
			return text(cells.Eq(n))
		}

		rank, err := strconv.Atoi(cell(layout.Rank))
		if err != nil {
			skipRow(logger, source, i, "rank is not a number")
			return
		}

		ranking := domain.Ranking{
			Rank:       rank,
			School:     cell(layout.School),
			Record:     cell(layout.Record),
			Previous:   cell(layout.Previous),
			Conference: cell(layout.Conference),
			Neutral:    cell(layout.Neutral),
			NonDivI:    cell(layout.NonDivI),
		}
		if layout.Points >= 0 {
			if points, err := strconv.Atoi(cell(layout.Points)); err == nil {
				ranking.Points = &points
			}
		}

		rankings = append(rankings, ranking)
	})

	return rankings, nil
}

func flag(r gjson.Result) bool {
	if r.Type == gjson.True {
		return true
	}
	return strings.EqualFold(r.String(), "y") || strings.EqualFold(r.String(), "yes") || r.String() == "1"
}

// NCAASchools parses the NCAA directory member list.
func NCAASchools(source string, body []byte) ([]domain.NCAASchool, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.NewParseError(source, "json", fmt.Errorf("invalid JSON payload"))
	}
	records := gjson.ParseBytes(body)
	if !records.IsArray() {
		return nil, errors.NewParseError(source, "member list", nil)
	}

	schools := make([]domain.NCAASchool, 0, len(records.Array()))
	records.ForEach(func(_, record gjson.Result) bool {
		schools = append(schools, domain.NCAASchool{
			Name:       record.Get("nameOfficial").String(),
			Conference: record.Get("conferenceName").String(),
			Private:    flag(record.Get("privateFlag")),
			HBCU:       flag(record.Get("historicallyBlackFlag")),
			State:      record.Get("memberOrgAddress.state").String(),
		})
		return true
	})
	return schools, nil
}
