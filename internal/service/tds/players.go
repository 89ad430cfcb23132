package tds

import (
	"context"
	"strings"

	"github.com/kapu/soccer-data-go/internal/constants"
	"github.com/kapu/soccer-data-go/internal/domain"
	"github.com/kapu/soccer-data-go/internal/extract"
	"github.com/kapu/soccer-data-go/internal/service/cache"
	"github.com/kapu/soccer-data-go/pkg/errors"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

func (s *Service) fetchPlayerDetails(ctx context.Context, url string) (*domain.PlayerDetails, error) {
	body, err := s.fetcher.Fetch(ctx, constants.SourceTopDrawer, url)
	if err != nil {
		return nil, err
	}
	return extract.PlayerDetails(body, s.opts.BaseURL)
}

// GetPlayerDetails returns one player's profile with the club translated and
// classified. Only profile pages on the configured site are accepted.
func (s *Service) GetPlayerDetails(ctx context.Context, url string) (*domain.PlayerDetails, error) {
	url = strings.TrimSpace(url)
	if url == "" || !strings.HasPrefix(url, s.opts.BaseURL+"/") {
		return nil, errors.NewValidationError("player url must be a profile page on "+s.opts.BaseURL, "url", url)
	}

	key := s.cache.Key("tds:player_details", url)
	return cache.Remember(ctx, s.cache, key, s.opts.ShortTTL, func(ctx context.Context) (*domain.PlayerDetails, error) {
		details, err := s.fetchPlayerDetails(ctx, url)
		if err != nil {
			return nil, err
		}
		rosters, err := s.clubs.Rosters(ctx)
		if err != nil {
			return nil, err
		}
		details.Club, details.League = s.clubs.Resolve(details.Club, rosters)
		return details, nil
	})
}

// SearchPlayers runs a player search and follows every page listed in the
// first page's pagination bar. Unknown position, region and state names
// search across all of them.
func (s *Service) SearchPlayers(ctx context.Context, query domain.PlayerQuery) ([]domain.Player, error) {
	var gender domain.Gender
	if strings.TrimSpace(query.Gender) != "" {
		parsed, err := domain.ParseGender(query.Gender)
		if err != nil {
			return nil, errors.NewValidationError("gender must be male or female", "gender", query.Gender)
		}
		gender = parsed
	}

	position := lookupID(s.opts.Positions, query.Position)
	region := lookupID(s.opts.Regions, query.Region)
	state := lookupID(s.opts.States, query.State)
	gradYear := strings.TrimSpace(query.GradYear)

	key := s.cache.Key("tds:player_search", gender, position, gradYear, region, state)
	return cache.Remember(ctx, s.cache, key, s.opts.ShortTTL, func(ctx context.Context) ([]domain.Player, error) {
		pageURL := func(page int) string {
			return searchURL(s.opts.SearchURL, gender, position, region, state, gradYear, page)
		}

		first, pages, err := s.searchPage(ctx, pageURL(0))
		if err != nil {
			return nil, err
		}

		rest := make([][]domain.Player, len(pages))
		p := pool.New().WithContext(ctx).WithMaxGoroutines(s.opts.DetailConcurrency).WithCancelOnError().WithFirstError()
		for idx, page := range pages {
			idx, page := idx, page
			p.Go(func(ctx context.Context) error {
				players, _, err := s.searchPage(ctx, pageURL(page))
				if err != nil {
					return err
				}
				rest[idx] = players
				return nil
			})
		}
		if err := p.Wait(); err != nil {
			return nil, err
		}

		players := first
		for _, page := range rest {
			players = append(players, page...)
		}

		rosters, err := s.clubs.Rosters(ctx)
		if err != nil {
			return nil, err
		}
		for i := range players {
			players[i].Club, players[i].League = s.clubs.Resolve(players[i].Club, rosters)
		}

		s.logger.Info("Player search completed",
			zap.String("gender", string(gender)),
			zap.Int("pages", len(pages)+1),
			zap.Int("players", len(players)))
		return players, nil
	})
}

func (s *Service) searchPage(ctx context.Context, url string) ([]domain.Player, []int, error) {
	body, err := s.fetcher.Fetch(ctx, constants.SourceTopDrawer, url)
	if err != nil {
		return nil, nil, err
	}
	return extract.SearchResults(body, s.opts.BaseURL, s.logger)
}
