// Package database holds the Postgres connection used for operator-maintained
// tables. Today that is club_translations, which is read once at startup and
// written only by cmd/import_translations, so the pool stays small.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const (
	defaultMaxOpenConns   = 4
	defaultMaxIdleConns   = 1
	defaultConnectTimeout = 5 * time.Second
)

type PostgresService struct {
	db     *sql.DB
	logger *zap.Logger
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	// Zero values fall back to the defaults above.
	MaxOpenConns   int
	MaxIdleConns   int
	ConnectTimeout time.Duration
}

// DSN renders a lib/pq key/value connection string. Values are quoted so
// passwords with spaces or quotes survive.
func (c PostgresConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		quoteDSN(c.Host), c.Port, quoteDSN(c.User), quoteDSN(c.Password), quoteDSN(c.Database), quoteDSN(sslMode))
}

func quoteDSN(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, `'`, `\'`)
	return "'" + value + "'"
}

// NewPostgresService opens the pool and pings it once before returning.
func NewPostgresService(cfg PostgresConfig, logger *zap.Logger) (*PostgresService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	maxOpen, maxIdle, timeout := cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnectTimeout
	if maxOpen <= 0 {
		maxOpen = defaultMaxOpenConns
	}
	if maxIdle <= 0 {
		maxIdle = defaultMaxIdleConns
	}
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)

	ps := NewPostgresServiceFromDB(db, logger)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := ps.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres at %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	logger.Info("PostgreSQL connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("max_open_conns", maxOpen),
	)

	return ps, nil
}

// NewPostgresServiceFromDB wraps an already opened pool, e.g. a sqlmock
// handle in repository tests.
func NewPostgresServiceFromDB(db *sql.DB, logger *zap.Logger) *PostgresService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresService{db: db, logger: logger}
}

func (ps *PostgresService) GetDB() *sql.DB {
	return ps.db
}

func (ps *PostgresService) Close() error {
	if ps.db != nil {
		return ps.db.Close()
	}
	return nil
}

func (ps *PostgresService) Ping(ctx context.Context) error {
	return ps.db.PingContext(ctx)
}
