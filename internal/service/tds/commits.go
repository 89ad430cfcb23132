package tds

import (
	"context"
	"time"

	"github.com/kapu/soccer-data-go/internal/constants"
	"github.com/kapu/soccer-data-go/internal/domain"
	"github.com/kapu/soccer-data-go/internal/extract"
	"github.com/kapu/soccer-data-go/internal/service/cache"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// GetConferenceCommits returns the schools of one conference with the
// players committed for gradYear. Players are enriched from their detail
// pages, translated and classified; order follows the source table.
//
// A result with degraded players (detail page unavailable) is cached for the
// short TTL so the next request retries their enrichment sooner.
func (s *Service) GetConferenceCommits(ctx context.Context, gender domain.Gender, division domain.Division, name string, gradYear int) ([]domain.School, error) {
	key := s.cache.Key("tds:conference_commits", gender, division, name, gradYear)
	return cache.RememberFor(ctx, s.cache, key, func(ctx context.Context) ([]domain.School, time.Duration, error) {
		schools, degraded, err := s.conferenceCommits(ctx, gender, division, name, gradYear)
		if err != nil {
			return nil, 0, err
		}
		if degraded > 0 {
			return schools, s.opts.ShortTTL, nil
		}
		return schools, s.opts.LongTTL, nil
	})
}

func (s *Service) conferenceCommits(ctx context.Context, gender domain.Gender, division domain.Division, name string, gradYear int) ([]domain.School, int, error) {
	conference, err := s.GetConference(ctx, gender, division, name)
	if err != nil {
		return nil, 0, err
	}

	body, err := s.fetcher.Fetch(ctx, constants.SourceTopDrawer, conference.URL+s.opts.CommitmentsTab)
	if err != nil {
		return nil, 0, err
	}

	rows, found, err := extract.CommitmentRows(body, gender, s.opts.BaseURL, s.logger)
	if err != nil {
		return nil, 0, err
	}
	if !found {
		s.logger.Info("Conference has no commitments table",
			zap.String("conference", name),
			zap.String("gender", string(gender)))
		return []domain.School{}, 0, nil
	}

	schools := s.assemble(rows, gradYear)

	degraded, err := s.enrichPlayers(ctx, schools)
	if err != nil {
		return nil, 0, err
	}

	if err := s.classifyPlayers(ctx, schools); err != nil {
		return nil, 0, err
	}

	s.logger.Info("Conference commitments assembled",
		zap.String("conference", name),
		zap.Int("year", gradYear),
		zap.Int("schools", len(schools)),
		zap.Int("degraded_players", degraded))

	return schools, degraded, nil
}

// assemble groups player rows under the most recent school row, keeping only
// players of gradYear. Schools without matching players are kept.
func (s *Service) assemble(rows []extract.CommitmentRow, gradYear int) []domain.School {
	schools := make([]domain.School, 0)

	for _, row := range rows {
		switch {
		case row.School != nil:
			school := *row.School
			school.Players = []domain.Player{}
			schools = append(schools, school)
		case row.Player != nil:
			if len(schools) == 0 {
				s.logger.Debug("Skipping player row before any school", zap.String("player", row.Player.Name))
				continue
			}
			if row.Player.GradYear != gradYear {
				continue
			}
			current := &schools[len(schools)-1]
			current.Players = append(current.Players, *row.Player)
		}
	}

	return schools
}

type playerRef struct {
	school int
	player int
}

// enrichPlayers fetches every player's detail page with bounded concurrency
// and applies the results in place. It returns how many players kept their
// listing values because their detail page failed.
func (s *Service) enrichPlayers(ctx context.Context, schools []domain.School) (int, error) {
	refs := make([]playerRef, 0)
	for i := range schools {
		for j := range schools[i].Players {
			if schools[i].Players[j].URL != "" {
				refs = append(refs, playerRef{school: i, player: j})
			}
		}
	}
	if len(refs) == 0 {
		return 0, nil
	}

	details := make([]*domain.PlayerDetails, len(refs))
	failed := make([]bool, len(refs))

	p := pool.New().WithContext(ctx).WithMaxGoroutines(s.opts.DetailConcurrency)
	if !s.opts.DegradeOnDetailFailure {
		p = p.WithCancelOnError().WithFirstError()
	}

	for idx, ref := range refs {
		idx := idx
		player := schools[ref.school].Players[ref.player]
		p.Go(func(ctx context.Context) error {
			detail, err := s.fetchPlayerDetails(ctx, player.URL)
			if err == nil {
				details[idx] = detail
				return nil
			}
			if !s.opts.DegradeOnDetailFailure || ctx.Err() != nil {
				return err
			}
			failed[idx] = true
			s.logger.Warn("Player detail enrichment failed, keeping listing row",
				zap.String("player", player.Name),
				zap.String("url", player.URL),
				zap.Error(err))
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return 0, err
	}

	degraded := 0
	for idx, ref := range refs {
		if failed[idx] {
			degraded++
			continue
		}
		details[idx].Apply(&schools[ref.school].Players[ref.player])
	}
	return degraded, nil
}

// classifyPlayers translates each player's final club name and derives the
// league from the current roster snapshot.
func (s *Service) classifyPlayers(ctx context.Context, schools []domain.School) error {
	rosters, err := s.clubs.Rosters(ctx)
	if err != nil {
		return err
	}
	for i := range schools {
		for j := range schools[i].Players {
			player := &schools[i].Players[j]
			player.Club, player.League = s.clubs.Resolve(player.Club, rosters)
		}
	}
	return nil
}

// GetConferenceLeagueBreakdown counts a conference's committed players per
// league for gradYear. All three leagues are always present.
func (s *Service) GetConferenceLeagueBreakdown(ctx context.Context, gender domain.Gender, division domain.Division, name string, gradYear int) ([]domain.LeagueBreakdown, error) {
	schools, err := s.GetConferenceCommits(ctx, gender, division, name, gradYear)
	if err != nil {
		return nil, err
	}

	breakdown := []domain.LeagueBreakdown{
		{Name: "ECNL", League: domain.LeagueECNL},
		{Name: "Girls Academy", League: domain.LeagueGA},
		{Name: "Other", League: domain.LeagueOther},
	}
	for _, school := range schools {
		for _, player := range school.Players {
			switch player.League {
			case domain.LeagueECNL:
				breakdown[0].Value++
			case domain.LeagueGA:
				breakdown[1].Value++
			default:
				breakdown[2].Value++
			}
		}
	}
	return breakdown, nil
}
