// Package parse converts the listing source's display strings (money
// with K/M/B suffixes, pair ages, pair-cell text, pair URLs) into
// typed values.
package parse

import (
	"fmt"
	"strconv"
	"strings"
)

var multipliers = []struct {
	suffix string
	value  float64
}{
	{"B", 1_000_000_000},
	{"M", 1_000_000},
	{"K", 1_000},
}

// Money converts a money string like "$5.3K", "$6.9M" or "$1.2B" into
// its numeric value. A bare number with no suffix parses as-is.
func Money(s string) (float64, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(s, "$", ""), ",", ""))
	if cleaned == "" {
		return 0, fmt.Errorf("parse: empty money string %q", s)
	}

	mult := 1.0
	for _, m := range multipliers {
		if strings.EqualFold(cleaned[len(cleaned)-1:], m.suffix) {
			mult = m.value
			cleaned = cleaned[:len(cleaned)-1]
			break
		}
	}

	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parse: money string %q: %w", s, err)
	}
	return n * mult, nil
}

// FormatMoney renders a value with the same K/M/B multipliers:
// 5300 → "5.3K", 6900000 → "6.9M".
func FormatMoney(n float64) string {
	for _, m := range multipliers {
		if n >= m.value {
			return strconv.FormatFloat(n/m.value, 'f', 1, 64) + m.suffix
		}
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Percent converts a change string like "+12.5%" or "-3%" into a float.
func Percent(s string) (float64, error) {
	cleaned := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	cleaned = strings.TrimPrefix(cleaned, "+")
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parse: percent string %q: %w", s, err)
	}
	return n, nil
}
