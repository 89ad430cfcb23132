package club

import (
	_ "embed"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/kapu/soccer-data-go/internal/domain"
)

//go:embed data/club_translations.json
var embeddedTranslations []byte

var (
	// ErrChainedTranslation is returned when a translation target is itself a
	// translation source. Each name is translated at most once.
	ErrChainedTranslation = stderrors.New("chained club translation")
	// ErrConflictingTranslation is returned when one source maps to two targets.
	ErrConflictingTranslation = stderrors.New("conflicting club translation")
	ErrEmptyTranslation       = stderrors.New("empty club translation")
)

type translationFile struct {
	Data []domain.ClubTranslation `json:"data"`
}

// ParseTranslations decodes a {"data":[{"from":..,"to":..}]} document.
func ParseTranslations(data []byte) ([]domain.ClubTranslation, error) {
	var file translationFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode club translations: %w", err)
	}
	return file.Data, nil
}

// DefaultTranslations returns the translation table shipped with the binary.
func DefaultTranslations() ([]domain.ClubTranslation, error) {
	return ParseTranslations(embeddedTranslations)
}

// MergeTranslations returns base with every entry of overrides applied on
// top. An override replaces the base entry with the same source name.
func MergeTranslations(base, overrides []domain.ClubTranslation) []domain.ClubTranslation {
	merged := make([]domain.ClubTranslation, 0, len(base)+len(overrides))
	position := make(map[string]int, len(base)+len(overrides))

	for _, entry := range append(append([]domain.ClubTranslation{}, base...), overrides...) {
		from := strings.TrimSpace(entry.From)
		if i, ok := position[from]; ok {
			merged[i] = entry
			continue
		}
		position[from] = len(merged)
		merged = append(merged, entry)
	}
	return merged
}

// Translator folds known club name variants into their canonical spelling.
// It is immutable after construction and safe for concurrent use.
type Translator struct {
	table map[string]string
}

// NewTranslator validates entries and builds a Translator. Source names and
// targets are trimmed; matching at lookup time is exact and case-sensitive.
func NewTranslator(entries []domain.ClubTranslation) (*Translator, error) {
	table := make(map[string]string, len(entries))

	for _, entry := range entries {
		from := strings.TrimSpace(entry.From)
		to := strings.TrimSpace(entry.To)
		if from == "" || to == "" {
			return nil, fmt.Errorf("%w: %q -> %q", ErrEmptyTranslation, entry.From, entry.To)
		}
		if existing, ok := table[from]; ok && existing != to {
			return nil, fmt.Errorf("%w: %q maps to both %q and %q", ErrConflictingTranslation, from, existing, to)
		}
		table[from] = to
	}

	for from, to := range table {
		if _, ok := table[to]; ok {
			return nil, fmt.Errorf("%w: %q -> %q is itself translated", ErrChainedTranslation, from, to)
		}
	}

	return &Translator{table: table}, nil
}

// Translate returns nil for nil, "" for a blank name, the canonical name on
// a table hit and the trimmed name otherwise.
func (t *Translator) Translate(raw *string) *string {
	if raw == nil {
		return nil
	}
	name := t.TranslateName(*raw)
	return &name
}

func (t *Translator) TranslateName(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return ""
	}
	if t != nil {
		if canonical, ok := t.table[name]; ok {
			return canonical
		}
	}
	return name
}

func (t *Translator) Len() int {
	if t == nil {
		return 0
	}
	return len(t.table)
}
