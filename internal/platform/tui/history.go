package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pong/internal/storage"
)

// History layout constants
const (
	maxMatches     = 100 // Max matches to load
	historyChrome  = 9   // Rows used by title, stats, borders and help
	dateColumnWide = 18
)

// HistoryKeyMap defines the key bindings for the history view.
type HistoryKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Refresh, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing recorded matches.
type HistoryModel struct {
	store    *storage.Store
	player   string // Empty shows every match
	matches  []storage.MatchRecord
	stats    *storage.PlayerStats
	err      error
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	width    int
	height   int
	quitting bool
}

// NewHistoryModel creates a history view, optionally filtered to one player.
func NewHistoryModel(store *storage.Store, player string, width, height int) HistoryModel {
	m := HistoryModel{
		store:  store,
		player: player,
		keys:   DefaultHistoryKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table with columns sized to the window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Mode", Width: 9},
		{Title: "Map", Width: 8},
		{Title: "Players", Width: 18},
		{Title: "Score", Width: 7},
		{Title: "Winner", Width: 8},
		{Title: "Date", Width: 12},
	}

	// Give spare width to the date column, the wide layout shows the year.
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if spare := m.width - 4 - used; spare > 0 {
		columns[len(columns)-1].Width = min(columns[len(columns)-1].Width+spare, dateColumnWide)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-historyChrome, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads matches and, when filtered, the player's totals.
func (m *HistoryModel) load() {
	m.err = nil
	m.stats = nil
	if m.store == nil {
		m.matches = nil
		m.updateTableRows()
		return
	}

	if m.player == "" {
		m.matches, m.err = m.store.RecentMatches(maxMatches)
	} else {
		m.matches, m.err = m.store.PlayerMatches(m.player, maxMatches)
		if m.err == nil {
			m.stats, m.err = m.store.PlayerStats(m.player)
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded matches.
func (m *HistoryModel) updateTableRows() {
	wide := m.table.Columns()[len(m.table.Columns())-1].Width >= dateColumnWide
	rows := make([]table.Row, len(m.matches))
	for i, r := range m.matches {
		rows[i] = matchRow(r, wide)
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func matchRow(r storage.MatchRecord, wide bool) table.Row {
	winner := r.Winner
	if r.EndReason == storage.EndAbandoned {
		winner = "-"
	}
	date := r.CreatedAt.Format("Jan 02 15:04")
	if wide {
		date = r.CreatedAt.Format("2006-01-02 15:04")
	}
	return table.Row{
		fmt.Sprintf("%d", r.ID),
		r.GameID,
		r.MapName,
		r.Player1 + " v " + r.Player2,
		fmt.Sprintf("%d:%d", r.Score1, r.Score2),
		winner,
		date,
	}
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history view.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Refresh):
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history view.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "MATCH HISTORY"
	if m.player != "" {
		title = fmt.Sprintf("MATCH HISTORY - %s", m.player)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")

	statStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	b.WriteString(statStyle.Render(centerText(m.summary(), m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// summary is the line under the title.
func (m HistoryModel) summary() string {
	switch {
	case m.err != nil:
		return "error: " + m.err.Error()
	case m.stats != nil:
		s := m.stats
		return fmt.Sprintf("%d matches | %d wins | %d losses | points %d:%d",
			s.Matches, s.Wins, s.Losses, s.PointsFor, s.PointsAgainst)
	default:
		return fmt.Sprintf("%d matches", len(m.matches))
	}
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.matches) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No matches recorded yet.\nFinish a match to see it here!")
	}

	return m.table.View()
}

func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunHistory runs the match history browser.
func RunHistory(store *storage.Store, player string, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(store, player, width, height),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
