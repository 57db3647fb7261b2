package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const translateBase = "https://translate.googleapis.com/translate_a/single"

// Translator converts user text to English ahead of classification
// and model prompting. Best effort: on any failure the input text is
// returned unchanged.
type Translator struct {
	baseURL string
	client  *http.Client
}

// NewTranslator returns a Translator using the public endpoint.
func NewTranslator() *Translator {
	return &Translator{
		baseURL: translateBase,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// ToEnglish translates text to English, falling back to the input on
// error.
func (t *Translator) ToEnglish(ctx context.Context, text string) string {
	out, err := t.translate(ctx, text, "auto", "en")
	if err != nil {
		slog.Debug("assistant: translation failed, using original text", "error", err)
		return text
	}
	return out
}

func (t *Translator) translate(ctx context.Context, text, from, to string) (string, error) {
	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", from)
	q.Set("tl", to)
	q.Set("dt", "t")
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate HTTP %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	// The response is a nested JSON array; the translated segments sit
	// at decoded[0][i][0].
	var decoded []any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("translate: decode: %w", err)
	}
	if len(decoded) == 0 {
		return "", fmt.Errorf("translate: empty response")
	}
	segments, ok := decoded[0].([]any)
	if !ok {
		return "", fmt.Errorf("translate: unexpected response shape")
	}

	var out strings.Builder
	for _, seg := range segments {
		parts, ok := seg.([]any)
		if !ok || len(parts) == 0 {
			continue
		}
		if s, ok := parts[0].(string); ok {
			out.WriteString(s)
		}
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("translate: no segments")
	}
	return out.String(), nil
}
