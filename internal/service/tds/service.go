// Package tds aggregates college conference, commitment and player data from
// TopDrawerSoccer. Every public operation is memoized by the result cache;
// internal helpers are not.
package tds

import (
	"context"
	"time"

	"github.com/kapu/soccer-data-go/internal/constants"
	"github.com/kapu/soccer-data-go/internal/domain"
	"github.com/kapu/soccer-data-go/internal/extract"
	"github.com/kapu/soccer-data-go/internal/service/cache"
	"github.com/kapu/soccer-data-go/internal/service/club"
	"github.com/kapu/soccer-data-go/internal/source"
	"github.com/kapu/soccer-data-go/pkg/errors"
	"go.uber.org/zap"
)

// ClubResolver turns a scraped club name into its canonical name and league.
type ClubResolver interface {
	Rosters(ctx context.Context) (*club.Rosters, error)
	Resolve(club *string, rosters *club.Rosters) (*string, domain.League)
}

// Options holds the immutable endpoint and lookup data for Service.
type Options struct {
	BaseURL            string
	ConferencesURL     string
	CommitmentsTab     string
	SearchURL          string
	ClubCommitmentsURL string

	DivisionPaths map[domain.Division]string
	Positions     map[string]int
	Regions       map[string]int
	States        map[string]int

	// DetailConcurrency bounds the per-player detail fetches of one request.
	DetailConcurrency int
	// DegradeOnDetailFailure keeps a player's listing row when its detail
	// page fails instead of failing the whole request.
	DegradeOnDetailFailure bool

	LongTTL  time.Duration
	ShortTTL time.Duration
}

func DefaultOptions() Options {
	return Options{
		BaseURL:                constants.TopDrawerURLs.Base,
		ConferencesURL:         constants.TopDrawerURLs.Conferences,
		CommitmentsTab:         constants.TopDrawerURLs.CommitmentsTab,
		SearchURL:              constants.TopDrawerURLs.Search,
		ClubCommitmentsURL:     constants.TopDrawerURLs.ClubCommitments,
		DivisionPaths:          DefaultDivisionPaths(),
		Positions:              DefaultPositions(),
		Regions:                DefaultRegions(),
		States:                 DefaultStates(),
		DetailConcurrency:      constants.AggregatorConfig.PlayerDetailConcurrency,
		DegradeOnDetailFailure: true,
		LongTTL:                constants.CacheTTL.ConferenceCommit,
		ShortTTL:               constants.CacheTTL.PlayerDetails,
	}
}

type Service struct {
	fetcher source.Fetcher
	cache   *cache.ResultCache
	clubs   ClubResolver
	opts    Options
	logger  *zap.Logger
}

func NewService(fetcher source.Fetcher, rc *cache.ResultCache, clubs ClubResolver, opts Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.DetailConcurrency <= 0 {
		opts.DetailConcurrency = 1
	}
	return &Service{
		fetcher: fetcher,
		cache:   rc,
		clubs:   clubs,
		opts:    opts,
		logger:  logger,
	}
}

// ListConferences returns the conferences listed under the gender's heading
// for one division. An unknown division falls back to the unsuffixed page.
func (s *Service) ListConferences(ctx context.Context, gender domain.Gender, division domain.Division) ([]domain.Conference, error) {
	key := s.cache.Key("tds:conferences", gender, division)
	return cache.Remember(ctx, s.cache, key, s.opts.LongTTL, func(ctx context.Context) ([]domain.Conference, error) {
		url := s.opts.ConferencesURL + s.opts.DivisionPaths[division]

		body, err := s.fetcher.Fetch(ctx, constants.SourceTopDrawer, url)
		if err != nil {
			return nil, err
		}
		conferences, err := extract.Conferences(body, gender, division, s.opts.BaseURL, s.logger)
		if err != nil {
			return nil, err
		}

		s.logger.Info("Conferences loaded",
			zap.String("gender", string(gender)),
			zap.String("division", string(division)),
			zap.Int("count", len(conferences)))
		return conferences, nil
	})
}

// GetConference finds a conference by exact, case-sensitive name.
func (s *Service) GetConference(ctx context.Context, gender domain.Gender, division domain.Division, name string) (*domain.Conference, error) {
	conferences, err := s.ListConferences(ctx, gender, division)
	if err != nil {
		return nil, err
	}
	for i := range conferences {
		if conferences[i].Name == name {
			conference := conferences[i]
			return &conference, nil
		}
	}
	return nil, errors.NewNotFoundError("conference", name)
}

// GetCommitmentsByClub returns the per-club commitment counts exactly as the
// source reports them.
func (s *Service) GetCommitmentsByClub(ctx context.Context, gender domain.Gender, year int) ([]domain.ClubCommitments, error) {
	key := s.cache.Key("tds:club_commitments", gender, year)
	return cache.Remember(ctx, s.cache, key, s.opts.LongTTL, func(ctx context.Context) ([]domain.ClubCommitments, error) {
		url := clubCommitmentsURL(s.opts.ClubCommitmentsURL, gender, year)

		body, err := s.fetcher.Fetch(ctx, constants.SourceTopDrawer, url)
		if err != nil {
			return nil, err
		}
		return extract.ClubCommitments(body, s.logger)
	})
}
