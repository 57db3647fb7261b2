package parse

import (
	"fmt"
	"strconv"
	"strings"
)

// Minutes converts an age string to total minutes. Supported parts:
// "Nd", "Nh", "Nm" separated by spaces, e.g. "3h", "45m", "1d 5h 44m".
func Minutes(s string) (int, error) {
	total := 0
	for _, part := range strings.Fields(s) {
		if len(part) < 2 {
			return 0, fmt.Errorf("parse: age part %q in %q", part, s)
		}
		n, err := strconv.Atoi(part[:len(part)-1])
		if err != nil {
			return 0, fmt.Errorf("parse: age part %q in %q: %w", part, s, err)
		}
		switch part[len(part)-1] {
		case 'd':
			total += n * 24 * 60
		case 'h':
			total += n * 60
		case 'm':
			total += n
		default:
			return 0, fmt.Errorf("parse: age part %q has unknown unit", part)
		}
	}
	return total, nil
}

// FormatMinutes renders total minutes as "Nd Nh Nm", omitting zero
// parts: 180 → "3h", 1784 → "1d 5h 44m", 0 → "0m".
func FormatMinutes(minutes int) string {
	days := minutes / (24 * 60)
	rem := minutes % (24 * 60)
	hours := rem / 60
	mins := rem % 60

	var parts []string
	if days > 0 {
		parts = append(parts, strconv.Itoa(days)+"d")
	}
	if hours > 0 {
		parts = append(parts, strconv.Itoa(hours)+"h")
	}
	if mins > 0 || len(parts) == 0 {
		parts = append(parts, strconv.Itoa(mins)+"m")
	}
	return strings.Join(parts, " ")
}
