// Package ncaa serves college rankings and the NCAA member directory.
package ncaa

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kapu/soccer-data-go/internal/constants"
	"github.com/kapu/soccer-data-go/internal/domain"
	"github.com/kapu/soccer-data-go/internal/extract"
	"github.com/kapu/soccer-data-go/internal/service/cache"
	"github.com/kapu/soccer-data-go/internal/source"
	"go.uber.org/zap"
)

type Options struct {
	RPIURL          string
	CoachesDIURL    string
	CoachesDIIURL   string
	DirectoryFormat string
	TTL             time.Duration
}

func DefaultOptions() Options {
	return Options{
		RPIURL:          constants.NCAAURLs.RPI,
		CoachesDIURL:    constants.NCAAURLs.CoachesDI,
		CoachesDIIURL:   constants.NCAAURLs.CoachesDII,
		DirectoryFormat: constants.NCAAURLs.DirectoryFormat,
		TTL:             constants.CacheTTL.Rankings,
	}
}

type Service struct {
	fetcher source.Fetcher
	cache   *cache.ResultCache
	opts    Options
	logger  *zap.Logger
}

func NewService(fetcher source.Fetcher, rc *cache.ResultCache, opts Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{fetcher: fetcher, cache: rc, opts: opts, logger: logger}
}

func (s *Service) rankings(ctx context.Context, op, sourceName, url string, layout extract.RankingLayout) ([]domain.Ranking, error) {
	key := s.cache.Key(op)
	return cache.Remember(ctx, s.cache, key, s.opts.TTL, func(ctx context.Context) ([]domain.Ranking, error) {
		body, err := s.fetcher.Fetch(ctx, sourceName, url)
		if err != nil {
			return nil, err
		}
		rankings, err := extract.Rankings(sourceName, body, layout, s.logger)
		if err != nil {
			return nil, err
		}
		s.logger.Info("Rankings loaded", zap.String("ranking", op), zap.Int("rows", len(rankings)))
		return rankings, nil
	})
}

func (s *Service) RPIRankings(ctx context.Context) ([]domain.Ranking, error) {
	return s.rankings(ctx, "ncaa:rankings:rpi", constants.SourceNCAA, s.opts.RPIURL, extract.RPILayout)
}

func (s *Service) CoachesDIRankings(ctx context.Context) ([]domain.Ranking, error) {
	return s.rankings(ctx, "ncaa:rankings:coaches_di", constants.SourceNCAA, s.opts.CoachesDIURL, extract.CoachesDILayout)
}

func (s *Service) CoachesDIIRankings(ctx context.Context) ([]domain.Ranking, error) {
	return s.rankings(ctx, "ncaa:rankings:coaches_dii", constants.SourceCoaches, s.opts.CoachesDIIURL, extract.CoachesDIILayout)
}

// directoryDivision maps a division onto the directory's division code.
// Divisions outside the NCAA have no code.
func directoryDivision(division domain.Division) (string, bool) {
	switch division {
	case domain.DivisionDI:
		return "I", true
	case domain.DivisionDII:
		return "II", true
	case domain.DivisionDIII:
		return "III", true
	default:
		return "", false
	}
}

// Schools lists NCAA member schools in a division. NAIA and NJCAA are not
// NCAA divisions and yield an empty list without a fetch.
func (s *Service) Schools(ctx context.Context, division domain.Division) ([]domain.NCAASchool, error) {
	code, ok := directoryDivision(division)
	if !ok {
		return []domain.NCAASchool{}, nil
	}

	key := s.cache.Key("ncaa:schools", strings.ToLower(string(division)))
	return cache.Remember(ctx, s.cache, key, constants.CacheTTL.Schools, func(ctx context.Context) ([]domain.NCAASchool, error) {
		body, err := s.fetcher.Fetch(ctx, constants.SourceNCAA, fmt.Sprintf(s.opts.DirectoryFormat, code))
		if err != nil {
			return nil, err
		}
		return extract.NCAASchools(constants.SourceNCAA, body)
	})
}
