package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kapu/soccer-data-go/internal/constants"
	"github.com/kapu/soccer-data-go/internal/domain"
	"github.com/kapu/soccer-data-go/pkg/errors"
	"go.uber.org/zap"
)

const conferenceTableSelector = "table.tds_table, table.table_striped"

// Conferences parses a college-conferences listing page. Each listing column
// carries a heading ("Men's ..."/"Women's ...") and a table of conference
// links; only columns under the requested gender's heading contribute.
func Conferences(body []byte, gender domain.Gender, division domain.Division, prefix string, logger *zap.Logger) ([]domain.Conference, error) {
	logger = nopIfNil(logger)

	doc, err := newDocument(constants.SourceTopDrawer, body)
	if err != nil {
		return nil, err
	}

	conferences := make([]domain.Conference, 0)
	tables := 0
	marker := gender.Heading()

	doc.Find("div.col-lg-6").Each(func(_ int, column *goquery.Selection) {
		table := column.Find(conferenceTableSelector).First()
		if table.Length() == 0 {
			return
		}
		tables++

		heading := strings.TrimSpace(column.Find("div.heading-rectangle").First().Text())
		if !strings.Contains(heading, marker) {
			return
		}

		table.Find("td").Each(func(i int, cell *goquery.Selection) {
			url := AnchorURL(cell, prefix)
			if url == "" {
				skipRow(logger, constants.SourceTopDrawer, i, "conference cell without link")
				return
			}
			id, ok := IdentifierFromURL(url)
			if !ok {
				skipRow(logger, constants.SourceTopDrawer, i, "conference link without id")
				return
			}
			conferences = append(conferences, domain.Conference{
				ID:       id,
				Name:     strings.TrimSpace(cell.Text()),
				URL:      url,
				Gender:   gender,
				Division: division,
			})
		})
	})

	if tables == 0 {
		return nil, errors.NewParseError(constants.SourceTopDrawer, "conference listing table", nil)
	}

	return conferences, nil
}
