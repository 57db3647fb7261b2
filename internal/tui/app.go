// Package tui is the interactive dashboard over evaluated pairs.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pairsentry/pairsentry/internal/config"
	"github.com/pairsentry/pairsentry/internal/database"
)

// Tab represents a TUI navigation tab.
type Tab int

const (
	TabDashboard Tab = iota
	TabReport
)

var tabNames = []string{"Dashboard", "Report"}

// App is the root bubbletea model.
type App struct {
	cfg       *config.Config
	width     int
	height    int
	activeTab Tab
	dashboard DashboardModel
	report    ReportModel
}

// NewApp creates the TUI application.
func NewApp(cfg *config.Config, store database.Store) *App {
	return &App{
		cfg:       cfg,
		dashboard: NewDashboardModel(store),
	}
}

// Run starts the bubbletea program.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.dashboard.Init()
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		contentW := msg.Width - 2
		if contentW < 20 {
			contentW = 20
		}
		contentH := msg.Height - 7
		if contentH < 8 {
			contentH = 8
		}
		a.dashboard.SetSize(contentW, contentH)
		a.report.SetSize(contentW, contentH)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "1":
			a.activeTab = TabDashboard
		case "2":
			a.activeTab = TabReport
		case "tab":
			a.activeTab = (a.activeTab + 1) % Tab(len(tabNames))
		case "enter":
			if a.activeTab == TabDashboard {
				if pair := a.dashboard.Selected(); pair != nil {
					a.report.SetPair(*pair)
					a.activeTab = TabReport
				}
			}
		case "esc":
			a.activeTab = TabDashboard
		}
	}

	if a.activeTab == TabDashboard {
		newDash, cmd := a.dashboard.Update(msg)
		a.dashboard = newDash.(DashboardModel)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

// View implements tea.Model.
func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	nav := a.renderTabs()

	var content string
	switch a.activeTab {
	case TabReport:
		content = a.report.View()
	default:
		content = a.dashboard.View()
	}

	contentBox := lipgloss.NewStyle().
		Width(a.width).
		Padding(0, 1).
		MaxHeight(max(1, a.height-4)).
		Render(content)

	status := lipgloss.NewStyle().
		Width(a.width).
		Padding(0, 1).
		Foreground(slateDim).
		Render("tab switch  ↑/↓ select  enter report  esc back  r refresh  q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		nav,
		contentBox,
		status,
	)
}

func (a *App) renderHeader() string {
	row := lipgloss.JoinHorizontal(lipgloss.Left,
		titleStyle.Render("pairsentry"),
		"  ",
		dimStyle.Render("Solana pair security monitor"),
		"  ",
		mutedBadgeStyle.Render(" "+tabNames[a.activeTab]+" "),
	)
	return lipgloss.NewStyle().
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(line).
		Width(a.width).
		Padding(0, 1).
		Render(row)
}

func (a *App) renderTabs() string {
	parts := make([]string, 0, len(tabNames)*2)
	for i, name := range tabNames {
		label := fmt.Sprintf("%d:%s", i+1, name)
		if Tab(i) == a.activeTab {
			parts = append(parts, lipgloss.NewStyle().Bold(true).Foreground(accent).Render(label))
		} else {
			parts = append(parts, dimStyle.Render(label))
		}
		if i < len(tabNames)-1 {
			parts = append(parts, dimStyle.Render("  ·  "))
		}
	}
	return lipgloss.NewStyle().
		Width(a.width).
		Padding(0, 1).
		Foreground(slate).
		Render(lipgloss.JoinHorizontal(lipgloss.Left, parts...))
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
