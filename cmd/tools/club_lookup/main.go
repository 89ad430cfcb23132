// club_lookup prints the league of each club name given on the command line.
//
//	go run ./cmd/tools/club_lookup "So Cal Blues" "Solar SC"
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/kapu/soccer-data-go/internal/constants"
	"github.com/kapu/soccer-data-go/internal/service/cache"
	"github.com/kapu/soccer-data-go/internal/service/club"
	"github.com/kapu/soccer-data-go/internal/source"
	"go.uber.org/zap"
)

func main() {
	timeout := flag.Duration("timeout", 60*time.Second, "overall timeout")
	verbose := flag.Bool("v", false, "log unresolved clubs and fetches")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: club_lookup [-v] [-timeout 60s] <club name>...")
		os.Exit(2)
	}

	logger := zap.NewNop()
	if *verbose {
		logger, _ = zap.NewDevelopment()
	}
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
		fmt.Fprintf(os.Stderr, "invalid club translations: %v\n", err)
		os.Exit(1)
	}

	results, err := svc.LookupLeagues(ctx, flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "lookup failed: %v\n", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CLUB\tLEAGUE")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\n", r.Club, r.League)
	}
	_ = w.Flush()
}
