package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/pairsentry/pairsentry/internal/config"
	"github.com/pairsentry/pairsentry/models"
)

// MySQLStore implements Store using go-sql-driver/mysql.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQL connects to the MySQL server described by cfg.DSN.
func NewMySQL(cfg config.DatabaseConfig) (*MySQLStore, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("mysql driver requires database.dsn")
	}

	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening mysql database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	s := &MySQLStore{db: db}
	if err := s.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("pinging mysql: %w", err)
	}
	return s, nil
}

func (s *MySQLStore) Driver() string { return "mysql" }

func (s *MySQLStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *MySQLStore) Close() error { return s.db.Close() }

func (s *MySQLStore) Migrate(ctx context.Context) error {
	return applyMigrations(ctx, s.db, "mysql")
}

func (s *MySQLStore) SavePair(ctx context.Context, pair models.PairData) error {
	query := `INSERT INTO pairs (` + pairColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, saveArgs(pair)...); err != nil {
		return fmt.Errorf("saving pair %s: %w", pair.Token, err)
	}
	return nil
}

func (s *MySQLStore) RecentPairs(ctx context.Context, limit int) ([]models.PairData, error) {
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

func (s *MySQLStore) FindPair(ctx context.Context, token string) (*models.PairData, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+pairColumns+` FROM pairs WHERE LOWER(token) = LOWER(?)
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
