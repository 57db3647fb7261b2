// Package assistant implements the conversational layer: a two-stage
// Gemini pipeline with bounded memory, a dialogue-act heuristic and a
// translation helper.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pairsentry/pairsentry/internal/config"
)

const defaultGeminiBase = "https://generativelanguage.googleapis.com"

// errNoGenerator is returned when no API key is configured.
var errNoGenerator = errors.New("assistant: Gemini API key not configured, run 'pairsentry onboard'")

// Turn is one entry of a model's conversation transcript.
type Turn struct {
	// Role is "user" or "model", the Gemini content roles.
	Role string
	Text string
}

// Generator abstracts calls to a language model.
type Generator interface {
	Name() string
	IsAvailable(ctx context.Context) bool

	// Generate produces a completion for prompt given a system
	// instruction and prior transcript turns.
	Generate(ctx context.Context, instruction string, transcript []Turn, prompt string) (string, error)
}

// GeminiGenerator implements Generator over the Gemini REST API.
type GeminiGenerator struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGemini creates a GeminiGenerator from cfg. With no API key it
// returns a NoopGenerator so callers can degrade to command-only mode.
func NewGemini(cfg config.GeminiConfig) Generator {
	if cfg.APIKey == "" {
		return &NoopGenerator{}
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &GeminiGenerator{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: defaultGeminiBase,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (g *GeminiGenerator) Name() string { return "gemini" }

func (g *GeminiGenerator) IsAvailable(ctx context.Context) bool {
	url := fmt.Sprintf("%s/v1beta/models/%s?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (g *GeminiGenerator) Generate(ctx context.Context, instruction string, transcript []Turn, prompt string) (string, error) {
	reqBody := geminiRequest{}
	if instruction != "" {
		reqBody.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: instruction}}}
	}
	for _, turn := range transcript {
		reqBody.Contents = append(reqBody.Contents, geminiContent{
			Role:  turn.Role,
			Parts: []geminiPart{{Text: turn.Text}},
		})
	}
	reqBody.Contents = append(reqBody.Contents, geminiContent{
		Role:  "user",
		Parts: []geminiPart{{Text: prompt}},
	})

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req) // #nosec G107 -- URL is the Gemini API base + configured model name
	if err != nil {
		return "", fmt.Errorf("gemini: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("gemini: read response: %w", err)
	}

	var decoded geminiResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("gemini: decode response: %w", err)
	}
	if decoded.Error != nil {
		return "", fmt.Errorf("gemini: API error %d: %s", decoded.Error.Code, decoded.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini: HTTP %d", resp.StatusCode)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini: empty response")
	}

	var out strings.Builder
	for _, part := range decoded.Candidates[0].Content.Parts {
		out.WriteString(part.Text)
	}
	return out.String(), nil
}

// NoopGenerator is used when no API key is configured. IsAvailable
// always returns false; Generate returns errNoGenerator.
type NoopGenerator struct{}

func (n *NoopGenerator) Name() string                       { return "none" }
func (n *NoopGenerator) IsAvailable(_ context.Context) bool { return false }

func (n *NoopGenerator) Generate(_ context.Context, _ string, _ []Turn, _ string) (string, error) {
	return "", errNoGenerator
}
