package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pairsentry/pairsentry/internal/config"
	"github.com/pairsentry/pairsentry/models"
)

// SQLiteStore implements Store using SQLite via mattn/go-sqlite3.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLite opens (or creates) the SQLite database at cfg.Path.
func NewSQLite(cfg config.DatabaseConfig) (*SQLiteStore, error) {
	path := cfg.Path
	if path == "" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, config.DefaultDBFile)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL&_synchronous=NORMAL", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	s := &SQLiteStore{db: db, path: path}
	if err := s.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("pinging sqlite: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) Driver() string { return "sqlite" }

func (s *SQLiteStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	return applyMigrations(ctx, s.db, "sqlite")
}

func (s *SQLiteStore) SavePair(ctx context.Context, pair models.PairData) error {
	query := `INSERT INTO pairs (` + pairColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, saveArgs(pair)...); err != nil {
		return fmt.Errorf("saving pair %s: %w", pair.Token, err)
	}
	return nil
}

func (s *SQLiteStore) RecentPairs(ctx context.Context, limit int) ([]models.PairData, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+pairColumns+` FROM pairs ORDER BY evaluated_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent pairs: %w", err)
	}
	defer rows.Close()
	return scanPairs(rows)
}

func (s *SQLiteStore) FindPair(ctx context.Context, token string) (*models.PairData, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+pairColumns+` FROM pairs WHERE token = ? COLLATE NOCASE
		 ORDER BY evaluated_at DESC, id DESC LIMIT 1`, token)
	if err != nil {
		return nil, fmt.Errorf("querying pair %s: %w", token, err)
	}
	defer rows.Close()

	pairs, err := scanPairs(rows)
	if err != nil || len(pairs) == 0 {
		return nil, err
	}
	return &pairs[0], nil
}
