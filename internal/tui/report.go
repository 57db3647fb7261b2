package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/pairsentry/pairsentry/internal/parse"
	"github.com/pairsentry/pairsentry/internal/risk"
	"github.com/pairsentry/pairsentry/models"
)

// ReportModel renders the full risk report of one selected pair.
type ReportModel struct {
	pair   *models.PairData
	width  int
	height int
}

func (r *ReportModel) SetSize(w, h int) {
	r.width = w
	r.height = h
}

// SetPair selects the pair whose report the view renders.
func (r *ReportModel) SetPair(pair models.PairData) {
	r.pair = &pair
}

func (r ReportModel) View() string {
	if r.pair == nil {
		return panelStyle.Width(max(20, r.width-2)).Render(
			dimStyle.Render("Select a pair on the dashboard and press enter."))
	}
	p := *r.pair

	scoreText := "not scored"
	if s := p.SecurityScore(); s != nil {
		scoreText = fmt.Sprintf("%.2f / 100", *s)
	}
	header := lipgloss.JoinVertical(lipgloss.Left,
		panelHeaderStyle.Render(p.Token),
		dimStyle.Render(p.Address),
		"",
		fmt.Sprintf("Price $%g   Age %s   Liquidity $%s   Market cap $%s",
			p.Price, parse.FormatMinutes(p.AgeMinutes),
			parse.FormatMoney(p.Liquidity), parse.FormatMoney(p.MarketCap)),
		lipgloss.JoinHorizontal(lipgloss.Left,
			dimStyle.Render("Security score  "),
			scoreStyle(p.SecurityScore()).Bold(true).Render(scoreText),
		),
	)

	var body string
	switch {
	case p.Security == nil:
		body = dimStyle.Render("This pair has not been evaluated.")
	case p.Security.Failed():
		body = criticalStyle.Render("Security check failed: ") + dimStyle.Render(p.Security.Err)
	default:
		body = renderRiskReport(risk.BuildReport(p.Security))
	}

	return panelStyle.Width(max(20, r.width-2)).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", body),
	)
}

func renderRiskReport(report risk.Report) string {
	if report.Empty() {
		return okStyle.Render("No risk indicators observed.")
	}
	var sections []string
	for _, section := range report.Sections {
		lines := []string{riskStyle(section.Level).Render(section.Level.Glyph() + " " + section.Level.Label())}
		for _, e := range section.Entries {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Left,
				lipgloss.NewStyle().Width(28).Foreground(ink).Render("  "+string(e.Indicator)),
				dimStyle.Render(renderCell("birdeye", e.Birdeye)+"  "+renderCell("goplus", e.GoPlus)),
			))
		}
		sections = append(sections, lipgloss.JoinVertical(lipgloss.Left, lines...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderCell(provider string, o models.Observation) string {
	if !o.Present {
		return provider + "=–"
	}
	return provider + "=" + o.Value
}
