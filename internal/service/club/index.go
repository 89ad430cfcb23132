package club

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/kapu/soccer-data-go/internal/domain"
	"github.com/kapu/soccer-data-go/internal/util"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/cases"
)

// NormalizeName is the club identity key: trimmed, internal whitespace
// collapsed and case-folded.
func NormalizeName(name string) string {
	return cases.Fold().String(util.CollapseSpaces(name))
}

// IsMember reports whether name matches a club in roster. A blank name or an
// empty roster is never a member.
func IsMember(name string, roster []domain.Club) bool {
	target := NormalizeName(name)
	if target == "" || len(roster) == 0 {
		return false
	}
	for _, club := range roster {
		if NormalizeName(club.Name) == target {
			return true
		}
	}
	return false
}

// Rosters is one immutable snapshot of both league rosters.
type Rosters struct {
	ECNL     []domain.Club
	GA       []domain.Club
	LoadedAt time.Time
}

// RosterLoader fetches a full league roster.
type RosterLoader func(ctx context.Context) ([]domain.Club, error)

// Index holds the current roster snapshot. Snapshots are replaced wholesale
// once older than ttl; readers never see a partially refreshed pair.
type Index struct {
	loadECNL RosterLoader
	loadGA   RosterLoader
	ttl      time.Duration
	logger   *zap.Logger

	current atomic.Pointer[Rosters]
	group   singleflight.Group
	now     func() time.Time
}

func NewIndex(ecnl, ga RosterLoader, ttl time.Duration, logger *zap.Logger) *Index {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Index{
		loadECNL: ecnl,
		loadGA:   ga,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

// Snapshot returns the current rosters, refreshing them first when missing
// or expired. A failed refresh keeps serving the previous snapshot if there
// is one.
func (i *Index) Snapshot(ctx context.Context) (*Rosters, error) {
	current := i.current.Load()
	if current != nil && i.now().Sub(current.LoadedAt) < i.ttl {
		return current, nil
	}

	if ctx.Err() != nil {
		return i.abandon(ctx, current)
	}

	// The refresh outlives any single caller; waiters give up on their own ctx.
	shared := context.WithoutCancel(ctx)
	ch := i.group.DoChan("rosters", func() (any, error) {
		if latest := i.current.Load(); latest != nil && latest != current {
			return latest, nil
		}
		return i.refresh(shared)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return i.abandon(ctx, current)
	case res = <-ch:
	}

	result, err := res.Val, res.Err
	if err != nil {
		if current != nil {
			i.logger.Warn("Roster refresh failed, serving previous snapshot",
				zap.Time("loaded_at", current.LoadedAt),
				zap.Error(err))
			return current, nil
		}
		return nil, err
	}
	return result.(*Rosters), nil
}

// abandon answers a caller that stopped waiting: the previous snapshot if
// there is one, else the caller's ctx error.
func (i *Index) abandon(ctx context.Context, current *Rosters) (*Rosters, error) {
	if current != nil {
		return current, nil
	}
	return nil, ctx.Err()
}

func (i *Index) refresh(ctx context.Context) (*Rosters, error) {
	var ecnl, ga []domain.Club

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		clubs, err := i.loadECNL(gctx)
		if err != nil {
			return fmt.Errorf("failed to load ECNL roster: %w", err)
		}
		ecnl = clubs
		return nil
	})
	g.Go(func() error {
		clubs, err := i.loadGA(gctx)
		if err != nil {
			return fmt.Errorf("failed to load GA roster: %w", err)
		}
		ga = clubs
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot := &Rosters{ECNL: ecnl, GA: ga, LoadedAt: i.now()}
	i.current.Store(snapshot)

	i.logger.Info("Rosters refreshed",
		zap.Int("ecnl_clubs", len(ecnl)),
		zap.Int("ga_clubs", len(ga)))

	return snapshot, nil
}
