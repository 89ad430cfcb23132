package club

import (
	"testing"

	"github.com/kapu/soccer-data-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestClassify(t *testing.T) {
	ecnl := clubs(domain.LeagueECNL, "Solar SC", "So Cal Blues SC")
	ga := clubs(domain.LeagueGA, "Sting Austin", "Solar SC")
	classifier := NewClassifier(nil)

	tests := []struct {
		name string
		club string
		want domain.League
	}{
		{"ecnl member", "So Cal Blues SC", domain.LeagueECNL},
		{"listed in both leagues is ecnl", "Solar SC", domain.LeagueECNL},
		{"ga member", "Sting Austin", domain.LeagueGA},
		{"case and spacing ignored", "sting  AUSTIN", domain.LeagueGA},
		{"unknown club", "Internationals SC", domain.LeagueOther},
		{"blank", "  ", domain.LeagueOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.Classify(tt.club, ecnl, ga))
		})
	}
}

func TestClassifyWithEmptyRostersIsOther(t *testing.T) {
	classifier := NewClassifier(nil)
	assert.Equal(t, domain.LeagueOther, classifier.Classify("Solar SC", nil, nil))
}

func TestClassifyLogsUnresolvedClubs(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	classifier := NewClassifier(zap.New(core))

	ecnl := clubs(domain.LeagueECNL, "So Cal Blues SC")
	ga := clubs(domain.LeagueGA, "Sting Austin")

	assert.Equal(t, domain.LeagueOther, classifier.Classify("So Cal Blues FC", ecnl, ga))

	entries := logs.FilterMessage("Unresolved club").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "So Cal Blues FC", fields["club"])
	assert.Equal(t, "So Cal Blues SC", fields["closest"])
	assert.Equal(t, "ECNL", fields["closest_league"])
	assert.Greater(t, fields["similarity"], 0.8)
}

func TestClassifyDoesNotLogBlankOrResolvedNames(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	classifier := NewClassifier(zap.New(core))
	ecnl := clubs(domain.LeagueECNL, "Solar SC")

	classifier.Classify("", ecnl, nil)
	classifier.Classify("   ", ecnl, nil)
	classifier.Classify("Solar SC", ecnl, nil)

	assert.Equal(t, 0, logs.Len())
}
