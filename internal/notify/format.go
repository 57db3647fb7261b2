package notify

import (
	"fmt"
	"html"
	"strings"

	"github.com/pairsentry/pairsentry/internal/parse"
	"github.com/pairsentry/pairsentry/internal/risk"
	"github.com/pairsentry/pairsentry/models"
)

// FormatPair renders the Telegram announcement for a published pair:
// header, market snapshot, then the tier-grouped security report.
func FormatPair(pair models.PairData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🚀 <b>%s</b>\n", html.EscapeString(pair.Token))
	if pair.Description != "" {
		fmt.Fprintf(&b, "%s\n", html.EscapeString(pair.Description))
	}
	fmt.Fprintf(&b, "<code>%s</code>\n\n", html.EscapeString(pair.Address))

	fmt.Fprintf(&b, "💵 Price: $%g\n", pair.Price)
	fmt.Fprintf(&b, "⏳ Age: %s\n", parse.FormatMinutes(pair.AgeMinutes))
	fmt.Fprintf(&b, "📊 Txns: %d buys / %d sells\n", pair.Buys, pair.Sells)
	fmt.Fprintf(&b, "💹 Volume: $%s\n", parse.FormatMoney(pair.Volume))
	fmt.Fprintf(&b, "💧 Liquidity: $%s\n", parse.FormatMoney(pair.Liquidity))
	fmt.Fprintf(&b, "🏦 Market cap: $%s\n", parse.FormatMoney(pair.MarketCap))

	changes := formatChanges(pair)
	if changes != "" {
		fmt.Fprintf(&b, "📈 Change: %s\n", changes)
	}

	if score := pair.SecurityScore(); score != nil {
		fmt.Fprintf(&b, "\n🛡 Security score: <b>%.2f</b>\n", *score)
	}

	report := risk.BuildReport(pair.Security)
	if !report.Empty() {
		b.WriteByte('\n')
		b.WriteString(formatReport(report))
	}

	return strings.TrimRight(b.String(), "\n")
}

func formatChanges(pair models.PairData) string {
	var parts []string
	for _, tf := range models.TimeFrames() {
		v := tf.Value(pair)
		if v == nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %+.2f%%", tf.Label, *v))
	}
	return strings.Join(parts, " | ")
}

func formatReport(r risk.Report) string {
	var b strings.Builder
	for i, section := range r.Sections {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s <b>%s</b>\n", section.Level.Glyph(), section.Level.Label())
		for _, e := range section.Entries {
			fmt.Fprintf(&b, "· %s: %s\n", html.EscapeString(string(e.Indicator)), renderProviderValues(e))
		}
	}
	return b.String()
}

func renderProviderValues(e risk.ReportEntry) string {
	switch {
	case e.Birdeye.Present && e.GoPlus.Present && e.Birdeye.Value != e.GoPlus.Value:
		return html.EscapeString(e.Birdeye.Value) + " / " + html.EscapeString(e.GoPlus.Value)
	case e.Birdeye.Present:
		return html.EscapeString(e.Birdeye.Value)
	case e.GoPlus.Present:
		return html.EscapeString(e.GoPlus.Value)
	default:
		return "–"
	}
}
