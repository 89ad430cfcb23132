package club

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kapu/soccer-data-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func clubs(league domain.League, names ...string) []domain.Club {
	roster := make([]domain.Club, 0, len(names))
	for _, name := range names {
		roster = append(roster, domain.Club{Name: name, League: league})
	}
	return roster
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "solar sc", NormalizeName("  Solar \t SC "))
	assert.Equal(t, NormalizeName("STING AUSTIN"), NormalizeName("sting austin"))
	assert.Equal(t, "", NormalizeName("   "))
}

func TestIsMember(t *testing.T) {
	roster := clubs(domain.LeagueECNL, "Solar SC", "So Cal Blues SC")

	assert.True(t, IsMember("Solar SC", roster))
	assert.True(t, IsMember(" solar  sc ", roster))
	assert.False(t, IsMember("Solar", roster))
	assert.False(t, IsMember("", roster))
	assert.False(t, IsMember("   ", roster))
	assert.False(t, IsMember("Solar SC", nil))

	// Equal under normalization means equal membership.
	for _, variant := range []string{"SOLAR SC", "Solar  SC", "\tsolar sc"} {
		assert.Equal(t, IsMember("Solar SC", roster), IsMember(variant, roster), variant)
	}
}

type rosterStub struct {
	calls atomic.Int32
	clubs []domain.Club
	err   error
	delay time.Duration
}

func (s *rosterStub) load(ctx context.Context) ([]domain.Club, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.clubs, nil
}

func TestSnapshotLoadsBothRosters(t *testing.T) {
	ecnl := &rosterStub{clubs: clubs(domain.LeagueECNL, "Solar SC")}
	ga := &rosterStub{clubs: clubs(domain.LeagueGA, "Sting Austin")}
	index := NewIndex(ecnl.load, ga.load, time.Hour, zap.NewNop())

	rosters, err := index.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ecnl.clubs, rosters.ECNL)
	assert.Equal(t, ga.clubs, rosters.GA)

	again, err := index.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Same(t, rosters, again)
	assert.Equal(t, int32(1), ecnl.calls.Load())
	assert.Equal(t, int32(1), ga.calls.Load())
}

func TestSnapshotRefreshesAfterTTL(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	ecnl := &rosterStub{clubs: clubs(domain.LeagueECNL, "Solar SC")}
	ga := &rosterStub{clubs: clubs(domain.LeagueGA, "Sting Austin")}
	index := NewIndex(ecnl.load, ga.load, time.Hour, nil)
	index.now = func() time.Time { return now }

	first, err := index.Snapshot(context.Background())
	require.NoError(t, err)

	now = now.Add(59 * time.Minute)
	_, err = index.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), ecnl.calls.Load())

	now = now.Add(2 * time.Minute)
	second, err := index.Snapshot(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, int32(2), ecnl.calls.Load())
	assert.Equal(t, now, second.LoadedAt)
}

func TestSnapshotServesStaleRostersWhenRefreshFails(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	ecnl := &rosterStub{clubs: clubs(domain.LeagueECNL, "Solar SC")}
	ga := &rosterStub{clubs: clubs(domain.LeagueGA, "Sting Austin")}
	index := NewIndex(ecnl.load, ga.load, time.Hour, nil)
	index.now = func() time.Time { return now }

	first, err := index.Snapshot(context.Background())
	require.NoError(t, err)

	ga.err = fmt.Errorf("members page down")
	now = now.Add(2 * time.Hour)

	stale, err := index.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, stale)
}

func TestSnapshotFailsWithoutPreviousRosters(t *testing.T) {
	ecnl := &rosterStub{err: fmt.Errorf("endpoint down")}
	ga := &rosterStub{clubs: clubs(domain.LeagueGA, "Sting Austin")}
	index := NewIndex(ecnl.load, ga.load, time.Hour, nil)

	_, err := index.Snapshot(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ECNL roster")
}

func TestSnapshotSharesConcurrentRefresh(t *testing.T) {
	ecnl := &rosterStub{clubs: clubs(domain.LeagueECNL, "Solar SC"), delay: 50 * time.Millisecond}
	ga := &rosterStub{clubs: clubs(domain.LeagueGA, "Sting Austin")}
	index := NewIndex(ecnl.load, ga.load, time.Hour, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := index.Snapshot(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ecnl.calls.Load())
}

func TestSnapshotSurvivesFirstCallerCancelling(t *testing.T) {
	ecnl := &rosterStub{clubs: clubs(domain.LeagueECNL, "Solar SC"), delay: 100 * time.Millisecond}
	ga := &rosterStub{clubs: clubs(domain.LeagueGA, "Sting Austin")}
	index := NewIndex(ecnl.load, ga.load, time.Hour, nil)

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := index.Snapshot(ctxA)
		errA <- err
	}()
	time.Sleep(10 * time.Millisecond)

	type result struct {
		rosters *Rosters
		err     error
	}
	resB := make(chan result, 1)
	go func() {
		rosters, err := index.Snapshot(context.Background())
		resB <- result{rosters, err}
	}()
	time.Sleep(10 * time.Millisecond)

	cancelA()
	assert.ErrorIs(t, <-errA, context.Canceled)

	b := <-resB
	require.NoError(t, b.err)
	assert.Equal(t, "Solar SC", b.rosters.ECNL[0].Name)
	assert.Equal(t, int32(1), ecnl.calls.Load())
}

func TestSnapshotCancelledCallerGetsPreviousRosters(t *testing.T) {
	ecnl := &rosterStub{clubs: clubs(domain.LeagueECNL, "Solar SC")}
	ga := &rosterStub{clubs: clubs(domain.LeagueGA, "Sting Austin")}
	index := NewIndex(ecnl.load, ga.load, time.Hour, nil)

	first, err := index.Snapshot(context.Background())
	require.NoError(t, err)

	index.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rosters, err := index.Snapshot(ctx)
	require.NoError(t, err)
	assert.Same(t, first, rosters)
	assert.Equal(t, int32(1), ecnl.calls.Load())
}
