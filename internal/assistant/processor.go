package assistant

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/pairsentry/pairsentry/internal/config"
	"github.com/pairsentry/pairsentry/internal/dataset"
)

// coinTagRe matches coin references the technical model embeds in its
// draft, e.g. <coin name="BONK/SOL">.
var coinTagRe = regexp.MustCompile(`<coin name="([^"]+)"\s*/?>`)

const technicalInstruction = `You are the analytical core of a Solana pair monitoring bot.
Answer the user's question about tracked trading pairs factually and briefly.
Wrap your whole answer in <conversation> and </conversation> tags.
When you mention a tracked pair, reference it as <coin name="SYMBOL/SOL"> instead of
stating its metrics yourself; the bot substitutes recorded data for each tag.
Do not invent pairs, prices or scores.`

const userInstructionFormal = `You are a crypto monitoring assistant talking to a user on Telegram.
Rewrite the draft answer below into a clear, well-structured reply.
Keep every fact and figure exactly as given. Do not add information.`

const userInstructionCasual = `You are a friendly crypto monitoring assistant chatting on Telegram.
Rewrite the draft answer below into a short, casual reply.
Keep every fact and figure exactly as given. Do not add information.`

// PairLookup resolves a pair symbol to its recorded dataset row.
type PairLookup interface {
	Lookup(token string) (map[string]string, error)
}

// Processor runs the two-stage reply pipeline: a technical pass that
// drafts facts, coin-tag resolution against the dataset, then a user
// pass that restyles the draft for chat.
type Processor struct {
	generator  Generator
	translator *Translator
	pairs      PairLookup
	techMem    *Memory
	userMem    *Memory
}

// NewProcessor wires a Processor. translator may be nil to skip
// translation; pairs may be nil to skip coin-tag resolution.
func NewProcessor(gen Generator, translator *Translator, pairs PairLookup, cfg config.GeminiConfig) *Processor {
	size := cfg.MemorySize
	if size <= 0 {
		size = 20
	}
	return &Processor{
		generator:  gen,
		translator: translator,
		pairs:      pairs,
		techMem:    NewMemory(size),
		userMem:    NewMemory(size),
	}
}

// Available reports whether the underlying generator is usable.
func (p *Processor) Available(ctx context.Context) bool {
	return p.generator.IsAvailable(ctx)
}

// Process produces a chat reply for one user message.
func (p *Processor) Process(ctx context.Context, text string) (string, error) {
	english := text
	if p.translator != nil {
		english = p.translator.ToEnglish(ctx, text)
	}
	act := Classify(english)

	draft, err := p.generator.Generate(ctx, technicalInstruction, p.techMem.Transcript(), english)
	if err != nil {
		return "", fmt.Errorf("assistant: technical pass: %w", err)
	}
	p.techMem.Record(english, draft)

	draft = stripConversationTags(draft)
	draft = p.resolveCoinTags(draft)

	instruction := userInstructionFormal
	if act == ActFarewell || act == ActStatement {
		instruction = userInstructionCasual
	}
	reply, err := p.generator.Generate(ctx, instruction, p.userMem.Transcript(), draft)
	if err != nil {
		return "", fmt.Errorf("assistant: user pass: %w", err)
	}
	p.userMem.Record(draft, reply)

	return strings.TrimSpace(stripConversationTags(reply)), nil
}

// Reset clears both transcripts, starting a fresh conversation.
func (p *Processor) Reset() {
	p.techMem.Reset()
	p.userMem.Reset()
}

func stripConversationTags(s string) string {
	s = strings.ReplaceAll(s, "<conversation>", "")
	s = strings.ReplaceAll(s, "</conversation>", "")
	return strings.TrimSpace(s)
}

// resolveCoinTags substitutes each coin tag with the pair's recorded
// dataset row. Unknown pairs collapse to a short notice so the user
// pass never sees raw tags.
func (p *Processor) resolveCoinTags(draft string) string {
	return coinTagRe.ReplaceAllStringFunc(draft, func(tag string) string {
		name := coinTagRe.FindStringSubmatch(tag)[1]
		if p.pairs == nil {
			return name
		}
		row, err := p.pairs.Lookup(name)
		if err != nil || row == nil {
			return fmt.Sprintf("%s (no recorded data)", name)
		}
		return formatPairFacts(name, row)
	})
}

func formatPairFacts(name string, row map[string]string) string {
	ordered := []string{"price", "age", "volume", "liquidity", "market_cap", "security_score"}
	var parts []string
	for _, key := range ordered {
		if v := row[key]; v != "" {
			parts = append(parts, key+"="+v)
		}
	}
	if len(parts) == 0 {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, strings.Join(parts, ", "))
}

var _ PairLookup = (*dataset.Dataset)(nil)
