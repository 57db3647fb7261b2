package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pairsentry/pairsentry/internal/database"
	"github.com/pairsentry/pairsentry/internal/parse"
	"github.com/pairsentry/pairsentry/models"
)

// DashboardModel shows recently evaluated pairs with summary counters.
type DashboardModel struct {
	store    database.Store
	pairs    []models.PairData
	cursor   int
	width    int
	height   int
	lastLoad time.Time
	loading  bool
}

// dashLoadedMsg carries loaded pairs.
type dashLoadedMsg struct{ pairs []models.PairData }

// NewDashboardModel creates a DashboardModel.
func NewDashboardModel(store database.Store) DashboardModel {
	return DashboardModel{store: store, loading: true}
}

func (d DashboardModel) Init() tea.Cmd {
	return d.loadCmd()
}

func (d DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		pairs, _ := d.store.RecentPairs(context.Background(), 50)
		return dashLoadedMsg{pairs: pairs}
	}
}

func (d DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashLoadedMsg:
		d.pairs = msg.pairs
		d.loading = false
		d.lastLoad = time.Now()
		if d.cursor >= len(d.pairs) {
			d.cursor = max(0, len(d.pairs)-1)
		}
		// Refresh every 10 seconds.
		return d, tea.Tick(10*time.Second, func(t time.Time) tea.Msg {
			return d.loadCmd()()
		})
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			d.loading = true
			return d, d.loadCmd()
		case "up", "k":
			if d.cursor > 0 {
				d.cursor--
			}
		case "down", "j":
			if d.cursor < len(d.pairs)-1 {
				d.cursor++
			}
		}
	}
	return d, nil
}

func (d *DashboardModel) SetSize(w, h int) {
	d.width = w
	d.height = h
}

// Selected returns the pair under the cursor, or nil when empty.
func (d DashboardModel) Selected() *models.PairData {
	if len(d.pairs) == 0 || d.cursor >= len(d.pairs) {
		return nil
	}
	return &d.pairs[d.cursor]
}

func (d DashboardModel) View() string {
	if d.loading && len(d.pairs) == 0 {
		return panelStyle.Width(max(20, d.width-2)).Render("Loading pairs...")
	}

	var published, flagged, failed int
	for _, p := range d.pairs {
		switch {
		case p.Security != nil && p.Security.Failed():
			failed++
		case p.SecurityScore() != nil && *p.SecurityScore() > 98:
			published++
		default:
			flagged++
		}
	}

	cardW := 18
	if d.width >= 100 {
		cardW = 20
	}
	summary := lipgloss.JoinHorizontal(lipgloss.Top,
		renderCounter("Published", published, okStyle, cardW),
		renderCounter("Flagged", flagged, highStyle, cardW),
		renderCounter("Failed", failed, criticalStyle, cardW),
	)

	lineLimit := d.height - 12
	if lineLimit < 5 {
		lineLimit = 5
	}
	rows := ""
	for i, p := range d.pairs {
		if i >= lineLimit {
			break
		}
		row := d.renderRow(p)
		if i == d.cursor {
			row = selectedRowStyle.Render(row)
		}
		rows += row + "\n"
	}

	if len(d.pairs) == 0 {
		rows = dimStyle.Render("No pairs yet. Run: pairsentry watch\n")
	}

	updated := "never"
	if !d.lastLoad.IsZero() {
		updated = d.lastLoad.Format("15:04:05")
	}
	refreshInfo := lipgloss.JoinHorizontal(lipgloss.Left,
		keycapStyle.Render("r"),
		" ",
		dimStyle.Render("refresh"),
		"   ",
		dimStyle.Render("updated "+updated),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Padding(0, 1).Render(summary),
		panelStyle.Width(max(20, d.width-2)).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				panelHeaderStyle.Render("Recent Pairs"),
				dimStyle.Render("Pair                  Age        Liquidity    Score     Findings"),
				rows,
				refreshInfo,
			),
		),
	)
}

func (d DashboardModel) renderRow(p models.PairData) string {
	scoreText := "n/a"
	if s := p.SecurityScore(); s != nil {
		scoreText = fmt.Sprintf("%.1f", *s)
	}
	if p.Security != nil && p.Security.Failed() {
		scoreText = "failed"
	}
	findings := 0
	if p.Security != nil {
		findings = p.Security.FindingCount()
	}
	return lipgloss.JoinHorizontal(lipgloss.Left,
		lipgloss.NewStyle().Width(22).Foreground(ink).Render(truncate(p.Token, 20)),
		lipgloss.NewStyle().Width(11).Foreground(slate).Render(parse.FormatMinutes(p.AgeMinutes)),
		lipgloss.NewStyle().Width(13).Foreground(slate).Render("$"+parse.FormatMoney(p.Liquidity)),
		scoreStyle(p.SecurityScore()).Width(10).Render(scoreText),
		dimStyle.Render(fmt.Sprintf("%d", findings)),
	)
}

func renderCounter(label string, count int, style lipgloss.Style, width int) string {
	return boxStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Center,
			style.Bold(true).Render(fmt.Sprintf("%d", count)),
			dimStyle.Render(label),
		),
	) + "  "
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "…" + s[len(s)-max+1:]
}
