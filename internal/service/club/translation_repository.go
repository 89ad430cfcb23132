package club

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kapu/soccer-data-go/internal/domain"
	"github.com/kapu/soccer-data-go/internal/service/database"
	"go.uber.org/zap"
)

// TranslationRepository reads operator-maintained club translations from
// the club_translations table. Rows are only ever appended.
type TranslationRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewTranslationRepository(postgres *database.PostgresService, logger *zap.Logger) *TranslationRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranslationRepository{
		db:     postgres.GetDB(),
		logger: logger,
	}
}

// EnsureSchema creates the table when it does not exist yet.
func (r *TranslationRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS club_translations (
			id         SERIAL PRIMARY KEY,
			from_name  TEXT NOT NULL UNIQUE,
			to_name    TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create club_translations: %w", err)
	}
	return nil
}

// All returns every translation in insertion order.
func (r *TranslationRepository) All(ctx context.Context) ([]domain.ClubTranslation, error) {
	query := `
		SELECT from_name, to_name
		FROM club_translations
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query club translations: %w", err)
	}
	defer rows.Close()

	translations := make([]domain.ClubTranslation, 0)
	for rows.Next() {
		var entry domain.ClubTranslation
		if err := rows.Scan(&entry.From, &entry.To); err != nil {
			return nil, fmt.Errorf("failed to scan club translation: %w", err)
		}
		translations = append(translations, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate club translations: %w", err)
	}

	r.logger.Debug("Loaded club translations", zap.Int("count", len(translations)))
	return translations, nil
}

// Add appends one translation. Existing source names are left untouched.
func (r *TranslationRepository) Add(ctx context.Context, entry domain.ClubTranslation) error {
	query := `
		INSERT INTO club_translations (from_name, to_name)
		VALUES ($1, $2)
		ON CONFLICT (from_name) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, entry.From, entry.To); err != nil {
		return fmt.Errorf("failed to insert club translation: %w", err)
	}
	r.logger.Info("Club translation added",
		zap.String("from", entry.From),
		zap.String("to", entry.To))
	return nil
}

// LoadTranslations merges the table over base and validates the result.
func LoadTranslations(ctx context.Context, repo *TranslationRepository, base []domain.ClubTranslation) ([]domain.ClubTranslation, error) {
	stored, err := repo.All(ctx)
	if err != nil {
		return nil, err
	}
	merged := MergeTranslations(base, stored)
	if _, err := NewTranslator(merged); err != nil {
		return nil, err
	}
	return merged, nil
}
