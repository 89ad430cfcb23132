// Package club resolves scraped club names to youth leagues. A Translator
// folds spelling variants, an Index holds the ECNL and GA rosters and a
// Classifier picks the league.
package club

import (
	"context"
	"time"

	"github.com/kapu/soccer-data-go/internal/constants"
	"github.com/kapu/soccer-data-go/internal/domain"
	"github.com/kapu/soccer-data-go/internal/extract"
	"github.com/kapu/soccer-data-go/internal/service/cache"
	"github.com/kapu/soccer-data-go/internal/source"
	"go.uber.org/zap"
)

// Options are the immutable lookup data and endpoints used by Service.
type Options struct {
	Translations []domain.ClubTranslation
	ECNLURL      string
	GAURL        string
	RosterTTL    time.Duration
}

func DefaultOptions() (Options, error) {
	translations, err := DefaultTranslations()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Translations: translations,
		ECNLURL:      constants.RosterURLs.ECNL,
		GAURL:        constants.RosterURLs.GA,
		RosterTTL:    constants.CacheTTL.Rosters,
	}, nil
}

type Service struct {
	fetcher    source.Fetcher
	cache      *cache.ResultCache
	translator *Translator
	classifier *Classifier
	index      *Index
	opts       Options
	logger     *zap.Logger
}

func NewService(fetcher source.Fetcher, rc *cache.ResultCache, opts Options, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	translator, err := NewTranslator(opts.Translations)
	if err != nil {
		return nil, err
	}

	s := &Service{
		fetcher:    fetcher,
		cache:      rc,
		translator: translator,
		classifier: NewClassifier(logger),
		opts:       opts,
		logger:     logger,
	}
	s.index = NewIndex(s.ECNLClubs, s.GAClubs, opts.RosterTTL, logger)

	logger.Info("Club service initialized",
		zap.Int("translations", translator.Len()))

	return s, nil
}

func (s *Service) Translator() *Translator {
	return s.translator
}

// Rosters returns the current roster snapshot used for classification.
func (s *Service) Rosters(ctx context.Context) (*Rosters, error) {
	return s.index.Snapshot(ctx)
}

// Resolve translates a club name and classifies the result against rosters.
// The translated name is returned alongside the league.
func (s *Service) Resolve(club *string, rosters *Rosters) (*string, domain.League) {
	translated := s.translator.Translate(club)
	if translated == nil {
		return nil, domain.LeagueOther
	}
	return translated, s.classifier.Classify(*translated, rosters.ECNL, rosters.GA)
}

func (s *Service) ECNLClubs(ctx context.Context) ([]domain.Club, error) {
	key := s.cache.Key("ecnl:clubs")
	return cache.Remember(ctx, s.cache, key, s.opts.RosterTTL, func(ctx context.Context) ([]domain.Club, error) {
		body, err := s.fetcher.Fetch(ctx, constants.SourceECNL, s.opts.ECNLURL)
		if err != nil {
			return nil, err
		}
		return extract.ECNLClubs(body, s.logger)
	})
}

func (s *Service) GAClubs(ctx context.Context) ([]domain.Club, error) {
	key := s.cache.Key("ga:clubs")
	return cache.Remember(ctx, s.cache, key, s.opts.RosterTTL, func(ctx context.Context) ([]domain.Club, error) {
		body, err := s.fetcher.Fetch(ctx, constants.SourceGA, s.opts.GAURL)
		if err != nil {
			return nil, err
		}
		return extract.GAClubs(body, s.logger)
	})
}

func (s *Service) GAConferences(ctx context.Context) ([]domain.GAConference, error) {
	key := s.cache.Key("ga:conferences")
	return cache.Remember(ctx, s.cache, key, s.opts.RosterTTL, func(ctx context.Context) ([]domain.GAConference, error) {
		body, err := s.fetcher.Fetch(ctx, constants.SourceGA, s.opts.GAURL)
		if err != nil {
			return nil, err
		}
		return extract.GAConferences(body)
	})
}

// LookupLeagues resolves each name in order. Rows carry the name as given;
// classification runs on its translated form.
func (s *Service) LookupLeagues(ctx context.Context, names []string) ([]domain.LeagueLookup, error) {
	rosters, err := s.Rosters(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]domain.LeagueLookup, 0, len(names))
	for _, name := range names {
		_, league := s.Resolve(&name, rosters)
		results = append(results, domain.LeagueLookup{Club: name, League: league})
	}
	return results, nil
}
