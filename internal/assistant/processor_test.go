package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pairsentry/pairsentry/internal/config"
)

type stubLookup struct {
	rows map[string]map[string]string
}

func (s *stubLookup) Lookup(token string) (map[string]string, error) {
	return s.rows[token], nil
}

func newTestProcessor(gen Generator, pairs PairLookup) *Processor {
	return NewProcessor(gen, nil, pairs, config.GeminiConfig{MemorySize: 4})
}

func TestProcessResolvesCoinTags(t *testing.T) {
	gen := &MockGenerator{Replies: []string{
		`<conversation>The strongest new pair is <coin name="BONK/SOL">.</conversation>`,
		`The strongest new pair is BONK/SOL at $0.0000235.`,
	}}
	pairs := &stubLookup{rows: map[string]map[string]string{
		"BONK/SOL": {"price": "0.0000235", "security_score": "98.50"},
	}}
	p := newTestProcessor(gen, pairs)

	reply, err := p.Process(context.Background(), "What's the best new pair?")
	require.NoError(t, err)
	require.Equal(t, "The strongest new pair is BONK/SOL at $0.0000235.", reply)

	// The user pass must receive resolved facts, never a raw tag.
	require.Len(t, gen.Calls, 2)
	require.NotContains(t, gen.Calls[1].Prompt, "<coin")
	require.Contains(t, gen.Calls[1].Prompt, "price=0.0000235")
	require.Contains(t, gen.Calls[1].Prompt, "security_score=98.50")
}

func TestProcessUnknownPairGetsNotice(t *testing.T) {
	gen := &MockGenerator{Replies: []string{
		`<conversation><coin name="GHOST/SOL"> looks new.</conversation>`,
		`done`,
	}}
	p := newTestProcessor(gen, &stubLookup{})

	_, err := p.Process(context.Background(), "Tell me about GHOST")
	require.NoError(t, err)
	require.Contains(t, gen.Calls[1].Prompt, "GHOST/SOL (no recorded data)")
}

func TestProcessStylePickedByDialogueAct(t *testing.T) {
	gen := &MockGenerator{Replies: []string{"<conversation>ok</conversation>", "ok"}}
	p := newTestProcessor(gen, nil)

	_, err := p.Process(context.Background(), "Which pair is trending?")
	require.NoError(t, err)
	require.Equal(t, userInstructionFormal, gen.Calls[1].Instruction)

	gen2 := &MockGenerator{Replies: []string{"<conversation>bye</conversation>", "bye"}}
	p2 := newTestProcessor(gen2, nil)

	_, err = p2.Process(context.Background(), "ok bye")
	require.NoError(t, err)
	require.Equal(t, userInstructionCasual, gen2.Calls[1].Instruction)
}

func TestProcessMemoryCarriesAcrossTurns(t *testing.T) {
	gen := &MockGenerator{Replies: []string{"<conversation>a</conversation>", "a", "<conversation>b</conversation>", "b"}}
	p := newTestProcessor(gen, nil)

	_, err := p.Process(context.Background(), "first")
	require.NoError(t, err)
	_, err = p.Process(context.Background(), "second")
	require.NoError(t, err)

	// Third call is the technical pass of the second message; its
	// transcript holds the first exchange.
	require.Len(t, gen.Calls, 4)
	require.Len(t, gen.Calls[2].Transcript, 2)
	require.Equal(t, "first", gen.Calls[2].Transcript[0].Text)
}

func TestProcessGeneratorFailure(t *testing.T) {
	gen := &MockGenerator{Err: errors.New("quota exceeded")}
	p := newTestProcessor(gen, nil)

	_, err := p.Process(context.Background(), "hello")
	require.Error(t, err)
	require.Contains(t, err.Error(), "technical pass")
}

func TestMemoryBound(t *testing.T) {
	m := NewMemory(4)
	m.Record("p1", "r1")
	m.Record("p2", "r2")
	m.Record("p3", "r3")

	turns := m.Transcript()
	require.Len(t, turns, 4)
	require.Equal(t, "p2", turns[0].Text)
	require.Equal(t, "r3", turns[3].Text)
}

func TestClassify(t *testing.T) {
	cases := map[string]DialogueAct{
		"What is the best pair?": ActQuestion,
		"is it safe":             ActQuestion,
		"how about BONK":         ActQuestion,
		"bye":                    ActFarewell,
		"ok see you":             ActFarewell,
		"good night!":            ActFarewell,
		"BONK is pumping":        ActStatement,
		"":                       ActStatement,
	}
	for text, want := range cases {
		require.Equal(t, want, Classify(text), "text %q", text)
	}
}
