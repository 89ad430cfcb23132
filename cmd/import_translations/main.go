// import_translations loads a club translation file into the
// club_translations table. Entries whose source name is already stored are
// skipped, so the import can be re-run.
//
//	go run ./cmd/import_translations -file translations.json -dry-run
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/kapu/soccer-data-go/internal/config"
	"github.com/kapu/soccer-data-go/internal/domain"
	"github.com/kapu/soccer-data-go/internal/service/club"
	"github.com/kapu/soccer-data-go/internal/service/database"
	"github.com/kapu/soccer-data-go/internal/util"
)

var (
	dryRun  = flag.Bool("dry-run", false, "Validate the file without writing to the database")
	file    = flag.String("file", "", "Translation file ({\"data\":[{\"from\",\"to\"}]}); empty imports the built-in table")
	timeout = flag.Duration("timeout", 30*time.Second, "Overall timeout")
	verbose = flag.Bool("verbose", false, "Print every imported entry")
)

func main() {
	flag.Parse()

	log.Println("==========================")
	log.Println("Club translation import")
	log.Println("==========================")

	entries, err := loadEntries(*file)
	if err != nil {
		log.Fatalf("Failed to load translations: %v", err)
	}
	log.Printf("✓ Loaded %d translations", len(entries))

	base, err := club.DefaultTranslations()
	if err != nil {
		log.Fatalf("Failed to load built-in translations: %v", err)
	}
	if _, err := club.NewTranslator(club.MergeTranslations(base, entries)); err != nil {
		log.Fatalf("Translation validation failed: %v", err)
	}
	log.Println("✓ Validation passed")

	if *dryRun {
		for _, entry := range entries {
			log.Printf("  → %q -> %q", entry.From, entry.To)
		}
		log.Println("✓ Dry-run completed, nothing written")
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if !cfg.Postgres.Enabled() {
		log.Fatal("POSTGRES_HOST is not set")
	}

	logger, err := util.NewLogger(cfg.Logging.Level, "")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	postgres, err := database.NewPostgresService(database.PostgresConfig{
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		Database: cfg.Postgres.Database,
		SSLMode:  cfg.Postgres.SSLMode,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer postgres.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	repo := club.NewTranslationRepository(postgres, logger)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to prepare schema: %v", err)
	}

	// Validate against what is already stored before writing anything.
	if _, err := club.LoadTranslations(ctx, repo, club.MergeTranslations(base, entries)); err != nil {
		log.Fatalf("Import would produce an invalid table: %v", err)
	}

	for _, entry := range entries {
		if err := repo.Add(ctx, entry); err != nil {
			log.Fatalf("Failed to insert %q: %v", entry.From, err)
		}
		if *verbose {
			log.Printf("  → Inserted: %q -> %q", entry.From, entry.To)
		}
	}

	log.Printf("✓ Imported %d translations", len(entries))
}

func loadEntries(path string) ([]domain.ClubTranslation, error) {
	if path == "" {
		return club.DefaultTranslations()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return club.ParseTranslations(data)
}
