package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/pairsentry/pairsentry/models"
)

//go:embed migrations/sqlite/*.sql migrations/mysql/*.sql
var migrationsFS embed.FS

const pairColumns = `token, description, address, price, age_minutes, buys, sells,
	volume, makers, liquidity, market_cap, security_score, security_error, evaluated_at`

const timeLayout = "2006-01-02 15:04:05"

// saveArgs flattens a pair into the insert argument list matching
// pairColumns.
func saveArgs(pair models.PairData) []any {
	var score sql.NullFloat64
	securityErr := ""
	if pair.Security != nil {
		securityErr = pair.Security.Err
		if pair.Security.Score != nil {
			score = sql.NullFloat64{Float64: *pair.Security.Score, Valid: true}
		}
	}
	evaluated := pair.EvaluatedAt
	if evaluated.IsZero() {
		evaluated = time.Now()
	}
	return []any{
		pair.Token, pair.Description, pair.Address, pair.Price, pair.AgeMinutes,
		pair.Buys, pair.Sells, pair.Volume, pair.Makers, pair.Liquidity,
		pair.MarketCap, score, securityErr, evaluated.UTC().Format(timeLayout),
	}
}

// scanPairs materialises query rows (selected with pairColumns) back
// into pair records, rebuilding a minimal security profile from the
// persisted score/error columns.
func scanPairs(rows *sql.Rows) ([]models.PairData, error) {
	var out []models.PairData
	for rows.Next() {
		var (
			p           models.PairData
			score       sql.NullFloat64
			securityErr string
			evaluated   string
		)
		if err := rows.Scan(
			&p.Token, &p.Description, &p.Address, &p.Price, &p.AgeMinutes,
			&p.Buys, &p.Sells, &p.Volume, &p.Makers, &p.Liquidity,
			&p.MarketCap, &score, &securityErr, &evaluated,
		); err != nil {
			return nil, fmt.Errorf("scanning pair row: %w", err)
		}
		if score.Valid || securityErr != "" {
			profile := models.NewSecurityProfile()
			profile.Err = securityErr
			if score.Valid {
				v := score.Float64
				profile.Score = &v
			}
			p.Security = profile
		}
		if ts, err := time.Parse(timeLayout, evaluated); err == nil {
			p.EvaluatedAt = ts
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// applyMigrations runs every *.sql file under migrations/<driver> in
// lexical order, tracking applied files in schema_migrations.
func applyMigrations(ctx context.Context, db *sql.DB, driver string) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		filename   VARCHAR(255) PRIMARY KEY,
		applied_at VARCHAR(64) NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	dir := path.Join("migrations", driver)
	entries, err := migrationsFS.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading migrations dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		var count int
		row := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations WHERE filename = ?`, name)
		if err := row.Scan(&count); err != nil {
			return fmt.Errorf("checking migration %s: %w", name, err)
		}
		if count > 0 {
			continue
		}

		content, err := migrationsFS.ReadFile(path.Join(dir, name))
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		for _, stmt := range strings.Split(string(content), ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("applying migration %s: %w", name, err)
			}
		}

		_, err = db.ExecContext(ctx,
			`INSERT INTO schema_migrations (filename, applied_at) VALUES (?, ?)`,
			name, time.Now().UTC().Format(timeLayout))
		if err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}
	return nil
}
