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
	"go.uber.org/zap"
)

// Rating converts a star bar ("width: 80%") into "4 star", or "Not Rated".
func Rating(sel *goquery.Selection) *string {
	style, ok := sel.Find("span.rating").First().Attr("style")
	if !ok {
		return nil
	}
	raw := style[strings.LastIndex(style, ":")+1:]
	raw = strings.TrimSpace(strings.SplitN(raw, "%", 2)[0])
	percent, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	stars := percent / 20
	if stars <= 0 {
		return util.StringPtr("Not Rated")
	}
	return util.StringPtr(fmt.Sprintf("%d star", stars))
}

func commitment(sel *goquery.Selection, prefix string) (*string, *string) {
	span := sel.Find("span.text-uppercase").First()
	if span.Length() == 0 || span.Find("a").Length() == 0 {
		return nil, nil
	}
	return optional(AnchorText(span)), optional(AnchorURL(span, prefix))
}

// clubAndHighSchool splits the "Club / High School" line of a search card.
func clubAndHighSchool(sel *goquery.Selection) (*string, *string) {
	lines := strings.FieldsFunc(sel.Find("div.ml-2").First().Text(), func(r rune) bool {
		return r == '\n' || r == '\t'
	})
	values := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			values = append(values, line)
		}
	}
	if len(values) < 2 {
		return nil, nil
	}

	pieces := strings.Split(values[1], "/")
	club := util.CollapseSpaces(pieces[0])
	if len(pieces) == 2 {
		return &club, optional(pieces[1])
	}
	return &club, nil
}

// SearchResults parses one page of player search results and returns the
// additional page numbers listed in its pagination bar.
func SearchResults(body []byte, prefix string, logger *zap.Logger) ([]domain.Player, []int, error) {
	logger = nopIfNil(logger)

	doc, err := newDocument(constants.SourceTopDrawer, body)
	if err != nil {
		return nil, nil, err
	}

	players := make([]domain.Player, 0)
	doc.Find("div.item").Each(func(i int, item *goquery.Selection) {
		nameAnchor := item.Find("a.bd").First()
		href, ok := nameAnchor.Attr("href")
		if !ok {
			skipRow(logger, constants.SourceTopDrawer, i, "search result without player link")
			return
		}

		year, err := strconv.Atoi(text(item.Find("div.col-grad").First()))
		if err != nil {
			skipRow(logger, constants.SourceTopDrawer, i, "graduation year is not a number")
			return
		}

		player := domain.Player{
			ID:       util.TrailingID(href),
			Name:     strings.TrimSpace(nameAnchor.Text()),
			URL:      absolute(prefix, strings.TrimSpace(href)),
			GradYear: year,
			Position: text(item.Find("div.col-position").First()),
			State:    text(item.Find("div.col-state").First()),
			Rating:   Rating(item),
		}
		if src, ok := item.Find("img.imageProfile").First().Attr("src"); ok {
			player.ImageURL = absolute(prefix, src)
		}
		player.Club, player.HighSchool = clubAndHighSchool(item)
		player.Commitment, player.CommitmentURL = commitment(item, prefix)

		players = append(players, player)
	})

	pages := make([]int, 0)
	doc.Find("ul.pagination li.page-item").Each(func(_ int, li *goquery.Selection) {
		label := strings.TrimSpace(li.Text())
		if label == "Previous" || label == "Next" || label == "1" {
			return
		}
		if page, err := strconv.Atoi(label); err == nil {
			pages = append(pages, page)
		}
	})

	return players, pages, nil
}

// PlayerDetails parses a player profile page. Profile facts are rendered as
// "Label: value" list items under div.player-info.
func PlayerDetails(body []byte, prefix string) (*domain.PlayerDetails, error) {
	doc, err := newDocument(constants.SourceTopDrawer, body)
	if err != nil {
		return nil, err
	}

	info := doc.Find("div.player-info").First()
	if info.Length() == 0 {
		return nil, errors.NewParseError(constants.SourceTopDrawer, "player profile", nil)
	}

	details := &domain.PlayerDetails{
		Name:   text(doc.Find("h1").First()),
		Rating: Rating(doc.Selection),
	}

	info.Find("li").Each(func(_ int, li *goquery.Selection) {
		label, value, found := strings.Cut(text(li), ":")
		if !found {
			return
		}
		value = strings.TrimSpace(value)

		switch util.Normalize(label) {
		case "club":
			details.Club = util.StringPtr(util.CollapseSpaces(value))
		case "team":
			details.Team = optional(value)
		case "jersey", "jersey number", "jersey #":
			details.JerseyNumber = optional(value)
		case "high school":
			details.HighSchool = optional(value)
		case "region":
			details.Region = optional(value)
		}
	})

	details.Commitment, details.CommitmentURL = commitment(doc.Selection, prefix)

	return details, nil
}
