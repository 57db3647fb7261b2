// Package dataset maintains the append-only flat CSV of evaluated
// pairs and serves read-side lookups for the assistant.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/pairsentry/pairsentry/models"
)

var header = []string{
	"token", "description", "address", "price", "age",
	"volume", "liquidity", "market_cap", "security_score",
}

// Dataset is an append-only CSV file, one row per evaluated pair.
// The header is written once when the file is first created.
type Dataset struct {
	path string
	mu   sync.Mutex
}

// New returns a Dataset backed by the CSV file at path. The file is
// created lazily on first append.
func New(path string) *Dataset {
	return &Dataset{path: path}
}

// Path returns the backing file location.
func (d *Dataset) Path() string { return d.path }

// Append writes one row per pair. The security_score column is left
// empty when the pair's security check failed or never ran.
func (d *Dataset) Append(pairs []models.PairData) error {
	if len(pairs) == 0 {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(d.path), 0o700); err != nil {
		return fmt.Errorf("dataset: creating directory: %w", err)
	}

	_, statErr := os.Stat(d.path)
	fresh := os.IsNotExist(statErr)

	f, err := os.OpenFile(d.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("dataset: opening %s: %w", d.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("dataset: writing header: %w", err)
		}
	}
	for _, pair := range pairs {
		if err := w.Write(row(pair)); err != nil {
			return fmt.Errorf("dataset: writing row for %s: %w", pair.Token, err)
		}
	}
	w.Flush()
	return w.Error()
}

// Lookup returns the first row whose token matches (case-insensitive)
// as a column→value map, or nil when the token or the file is absent.
func (d *Dataset) Lookup(token string) (map[string]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	f, err := os.Open(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("dataset: opening %s: %w", d.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	cols, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("dataset: reading header: %w", err)
	}

	for {
		record, err := r.Read()
		if err != nil {
			return nil, nil // EOF or a short trailing write: token not found
		}
		if len(record) > 0 && strings.EqualFold(record[0], token) {
			out := make(map[string]string, len(cols))
			for i, col := range cols {
				if i < len(record) {
					out[col] = record[i]
				}
			}
			return out, nil
		}
	}
}

func row(pair models.PairData) []string {
	score := ""
	if s := pair.SecurityScore(); s != nil {
		score = strconv.FormatFloat(*s, 'f', 2, 64)
	}
	return []string{
		pair.Token,
		pair.Description,
		pair.Address,
		strconv.FormatFloat(pair.Price, 'f', -1, 64),
		strconv.Itoa(pair.AgeMinutes),
		strconv.FormatFloat(pair.Volume, 'f', -1, 64),
		strconv.FormatFloat(pair.Liquidity, 'f', -1, 64),
		strconv.FormatFloat(pair.MarketCap, 'f', -1, 64),
		score,
	}
}
