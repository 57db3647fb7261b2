package parse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mr-tron/base58"
)

// pairCellRe matches the multi-line pair cell text as rendered by the
// listing source: an optional "#N" rank line, an optional "?" line,
// then base token, a literal "/", quote token, and the description.
var pairCellRe = regexp.MustCompile(`(?s)(?:#\d+\n)?\??\n(.*?)\n/\n(.*?)\n(.*?)$`)

// PairCell splits a raw pair-cell text into "BASE/QUOTE" and the
// trailing description. The base token keeps only its last
// whitespace-separated word, dropping leading badge text.
func PairCell(text string) (token, description string, err error) {
	m := pairCellRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return "", "", fmt.Errorf("parse: pair cell %q does not match expected shape", text)
	}
	baseWords := strings.Fields(m[1])
	base := m[1]
	if len(baseWords) > 0 {
		base = baseWords[len(baseWords)-1]
	}
	return base + "/" + m[2], m[3], nil
}

// SolanaAddress extracts the token address from a pair URL's last path
// segment and validates it as a 32-byte base58 value. A bare address
// with no path passes through validation unchanged.
func SolanaAddress(href string) (string, error) {
	trimmed := strings.TrimRight(href, "/")
	if trimmed == "" {
		return "", fmt.Errorf("parse: no address segment in %q", href)
	}
	addr := trimmed
	if idx := strings.LastIndexByte(trimmed, '/'); idx >= 0 {
		addr = trimmed[idx+1:]
	}

	decoded, err := base58.Decode(addr)
	if err != nil {
		return "", fmt.Errorf("parse: address %q is not base58: %w", addr, err)
	}
	if len(decoded) != 32 {
		return "", fmt.Errorf("parse: address %q decodes to %d bytes, want 32", addr, len(decoded))
	}
	return addr, nil
}
