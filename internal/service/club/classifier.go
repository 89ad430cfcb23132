package club

import (
	"strings"

	"github.com/antzucaro/matchr"
	"github.com/kapu/soccer-data-go/internal/domain"
	"go.uber.org/zap"
)

// Classifier resolves a club name to its league. It is a pure function of
// the name and the two rosters it is given.
type Classifier struct {
	logger *zap.Logger
}

func NewClassifier(logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{logger: logger}
}

// Classify checks ECNL before GA, so a club listed in both is ECNL. Blank
// names are Other without a diagnostic; unmatched names are Other and logged.
func (c *Classifier) Classify(name string, ecnl, ga []domain.Club) domain.League {
	if strings.TrimSpace(name) == "" {
		return domain.LeagueOther
	}
	if IsMember(name, ecnl) {
		return domain.LeagueECNL
	}
	if IsMember(name, ga) {
		return domain.LeagueGA
	}

	closest, league, score := nearest(name, ecnl, ga)
	c.logger.Warn("Unresolved club",
		zap.String("club", name),
		zap.String("closest", closest),
		zap.String("closest_league", string(league)),
		zap.Float64("similarity", score))

	return domain.LeagueOther
}

func nearest(name string, ecnl, ga []domain.Club) (string, domain.League, float64) {
	target := NormalizeName(name)
	best, bestLeague, bestScore := "", domain.LeagueUnknown, 0.0

	for _, roster := range []struct {
		league domain.League
		clubs  []domain.Club
	}{{domain.LeagueECNL, ecnl}, {domain.LeagueGA, ga}} {
		for _, club := range roster.clubs {
			score := matchr.JaroWinkler(target, NormalizeName(club.Name), false)
			if score > bestScore {
				best, bestLeague, bestScore = club.Name, roster.league, score
			}
		}
	}
	return best, bestLeague, bestScore
}
