package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-rain/internal/storage"
)

// Session browser layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show the stats sidebar
	sidebarWidth       = 24  // Width of the stats sidebar
	maxSessions        = 200 // Max sessions to load
)

// sessionFilters are the tabs of the browser; "all" shows every mode.
var sessionFilters = []string{"all", "local", "ssh"}

// SessionsKeyMap defines the key bindings for the session browser.
type SessionsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k SessionsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.PrevTab, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k SessionsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextTab, k.PrevTab, k.Quit},
	}
}

// DefaultSessionsKeyMap returns default key bindings.
func DefaultSessionsKeyMap() SessionsKeyMap {
	return SessionsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next mode"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// SessionsModel is the Bubble Tea model for the session browser.
type SessionsModel struct {
	store       *storage.Store
	all         []storage.Session
	shown       []storage.Session
	stats       map[string]*storage.SessionStats
	err         error
	tab         int
	table       table.Model
	help        help.Model
	keys        SessionsKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewSessionsModel creates a session browser and loads the recorded sessions.
func NewSessionsModel(store *storage.Store, width, height int) SessionsModel {
	m := SessionsModel{
		store:       store,
		keys:        DefaultSessionsKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized for the current window.
func (m *SessionsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Mode", Width: 6},
		{Title: "User", Width: 12},
		{Title: "Started", Width: 13},
		{Title: "Duration", Width: 9},
		{Title: "Reveals", Width: 8},
	}

	tableWidth := m.width - 8
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	if extra := tableWidth - 53 - 2*len(columns); extra > 0 {
		columns[2].Width += min(extra, 12)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("16")).
		Background(lipgloss.Color("46")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads sessions and aggregate stats from the store.
func (m *SessionsModel) load() {
	m.all, m.stats, m.err = nil, nil, nil
	if m.store != nil {
		m.all, m.err = m.store.RecentSessions(maxSessions)
		if m.err == nil {
			m.stats, m.err = m.store.StatsByMode()
		}
	}
	m.applyFilter()
}

// applyFilter keeps the sessions of the selected tab.
func (m *SessionsModel) applyFilter() {
	filter := sessionFilters[m.tab]
	m.shown = m.shown[:0]
	for _, s := range m.all {
		if filter == "all" || s.Mode == filter {
			m.shown = append(m.shown, s)
		}
	}

	rows := make([]table.Row, len(m.shown))
	for i, s := range m.shown {
		rows[i] = sessionRow(s)
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func sessionRow(s storage.Session) table.Row {
	user := s.User
	if user == "" {
		user = "-"
	}
	duration := "running"
	if s.Ended {
		duration = formatSecs(s.DurationSecs)
	}
	return table.Row{
		fmt.Sprintf("%d", s.ID),
		s.Mode,
		user,
		s.StartedAt.Local().Format("Jan 02 15:04"),
		duration,
		fmt.Sprintf("%d", s.RevealCycles),
	}
}

// formatSecs renders a duration in whole seconds, e.g. "1h02m03s".
func formatSecs(secs int) string {
	return (time.Duration(secs) * time.Second).String()
}

// Init initializes the session browser.
func (m SessionsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the session browser.
func (m SessionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % len(sessionFilters)
			m.applyFilter()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tab = (m.tab + len(sessionFilters) - 1) % len(sessionFilters)
			m.applyFilter()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.applyFilter()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the session browser.
func (m SessionsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("VIEWING SESSIONS", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := tableStyle.Render(m.renderTableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", tableRendered))
	} else {
		b.WriteString(centerText(tableRendered, m.width))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTabs renders the mode filter tabs.
func (m SessionsModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("16")).
		Background(lipgloss.Color("46")).
		Padding(0, 1)

	tabs := make([]string, len(sessionFilters))
	for i, f := range sessionFilters {
		if i == m.tab {
			tabs[i] = activeTabStyle.Render(f)
		} else {
			tabs[i] = tabStyle.Render(" " + f + " ")
		}
	}
	return strings.Join(tabs, " ")
}

// renderSidebar renders aggregate stats for the selected tab.
func (m SessionsModel) renderSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	st := m.selectedStats()
	var sb strings.Builder
	sb.WriteString("Totals\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "sessions  %d\n", st.Count)
	fmt.Fprintf(&sb, "watched   %s\n", formatSecs(int(st.TotalSecs)))
	fmt.Fprintf(&sb, "average   %s\n", formatSecs(int(st.AvgSecs)))
	fmt.Fprintf(&sb, "longest   %s\n", formatSecs(st.LongestSecs))
	fmt.Fprintf(&sb, "reveals   %d", st.RevealCycles)
	return sidebarStyle.Render(sb.String())
}

// selectedStats merges per-mode stats for the selected tab.
func (m SessionsModel) selectedStats() storage.SessionStats {
	filter := sessionFilters[m.tab]
	var out storage.SessionStats
	for mode, st := range m.stats {
		if filter != "all" && mode != filter {
			continue
		}
		out.TotalSecs += st.TotalSecs
		out.Count += st.Count
		out.RevealCycles += st.RevealCycles
		out.LongestSecs = max(out.LongestSecs, st.LongestSecs)
		if st.LastSeen.After(out.LastSeen) {
			out.LastSeen = st.LastSeen
		}
	}
	if out.Count > 0 {
		out.AvgSecs = float64(out.TotalSecs) / float64(out.Count)
	}
	out.Mode = filter
	return out
}

// renderTableContent renders the table or an empty message.
func (m SessionsModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)
	switch {
	case m.err != nil:
		return emptyStyle.Render("Cannot read sessions:\n" + m.err.Error())
	case m.store == nil:
		return emptyStyle.Render("Session storage is unavailable.")
	case len(m.shown) == 0:
		return emptyStyle.Render("No sessions recorded yet.\nRun `rain run` or `rain serve` to start one.")
	}
	return m.table.View()
}

// Shown returns the sessions visible under the selected tab.
func (m SessionsModel) Shown() []storage.Session {
	return m.shown
}

// Filter returns the selected mode filter.
func (m SessionsModel) Filter() string {
	return sessionFilters[m.tab]
}

// RunSessions runs the session browser.
func RunSessions(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewSessionsModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
