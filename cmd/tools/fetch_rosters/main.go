// fetch_rosters snapshots the ECNL and Girls Academy rosters to a JSON file,
// e.g. to review which clubs need a translation entry.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/kapu/soccer-data-go/internal/constants"
	"github.com/kapu/soccer-data-go/internal/domain"
	"github.com/kapu/soccer-data-go/internal/service/cache"
	"github.com/kapu/soccer-data-go/internal/service/club"
	"github.com/kapu/soccer-data-go/internal/source"
	"go.uber.org/zap"
)

type rosterFile struct {
	FetchedAt     time.Time             `json:"fetchedAt"`
	ECNL          []domain.Club         `json:"ecnl"`
	GA            []domain.Club         `json:"ga"`
	GAConferences []domain.GAConference `json:"gaConferences"`
}

func main() {
	output := flag.String("out", "data/rosters.json", "output file")
	timeout := flag.Duration("timeout", 60*time.Second, "overall timeout")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	opts, err := club.DefaultOptions()
	if err != nil {
		logger.Fatal("failed to load club translations", zap.Error(err))
	}

	client := source.NewClient(nil, source.ClientConfig{
		Timeout:           constants.SourceConfig.Timeout,
		UserAgent:         constants.SourceConfig.UserAgent,
		RequestsPerSecond: constants.SourceConfig.RequestsPerSecond,
		Burst:             constants.SourceConfig.Burst,
		MaxBodyBytes:      constants.SourceConfig.MaxBodyBytes,
	}, logger)

	svc, err := club.NewService(client, cache.NewResultCache(cache.NewMemoryStore(), "", logger), opts, logger)
	if err != nil {
		logger.Fatal("failed to create club service", zap.Error(err))
	}

	rosters, err := svc.Rosters(ctx)
	if err != nil {
		logger.Fatal("failed to fetch rosters", zap.Error(err))
	}
	conferences, err := svc.GAConferences(ctx)
	if err != nil {
		logger.Fatal("failed to fetch GA conferences", zap.Error(err))
	}

	snapshot := rosterFile{
		FetchedAt:     rosters.LoadedAt,
		ECNL:          rosters.ECNL,
		GA:            rosters.GA,
		GAConferences: conferences,
	}
	if err := writeSnapshot(*output, snapshot); err != nil {
		logger.Fatal("failed to write rosters", zap.Error(err))
	}

	logger.Info("Roster snapshot written",
		zap.Int("ecnl", len(snapshot.ECNL)),
		zap.Int("ga", len(snapshot.GA)),
		zap.String("output", *output))
}

func writeSnapshot(path string, snapshot rosterFile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpFile, path)
}
