package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tilematch/internal/registry"
	"github.com/vovakirdan/tilematch/internal/storage"
)

const (
	maxScores = 100
	maxRuns   = 50
	dateFmt   = "Jan 02 15:04"
)

// scoreboardView selects what the table lists.
type scoreboardView int

const (
	viewTopScores scoreboardView = iota
	viewRecentRuns
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Board   key.Binding
	View    key.Binding
	Details key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Board, k.View, k.Details, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Details},
		{k.Board, k.View, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll")),
		Board:   key.NewBinding(key.WithKeys("tab", "left", "right", "h", "l"), key.WithHelp("tab", "board")),
		View:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "best/recent")),
		Details: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run details")),
		Back:    key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the best scores and the run history of each board.
type ScoreboardModel struct {
	boards    []registry.GameInfo
	board     int
	store     *storage.Store
	view      scoreboardView
	summary   *storage.GameStats
	scores    []storage.ScoreEntry
	runs      []storage.RunRecord
	detail    *storage.RunRecord // Run opened with enter
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a new scoreboard model. store may be nil.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		boards: registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.reload()
	return m
}

// boardID returns the selected board, or "" without boards.
func (m ScoreboardModel) boardID() string {
	if len(m.boards) == 0 {
		return ""
	}
	return m.boards[m.board].ID
}

// reload rebuilds the table and fetches the rows of the current view.
func (m *ScoreboardModel) reload() {
	m.summary, m.scores, m.runs, m.detail = nil, nil, nil, nil
	m.table = newScoreTable(m.view, m.height)

	id := m.boardID()
	if m.store == nil || id == "" {
		return
	}
	if stats, err := m.store.GetGameStats(id); err == nil && stats.GamesCount > 0 {
		m.summary = stats
	}

	var rows []table.Row
	switch m.view {
	case viewRecentRuns:
		if runs, err := m.store.RecentRuns(id, maxRuns); err == nil {
			m.runs = runs
		}
		for _, r := range m.runs {
			rows = append(rows, table.Row{
				r.CreatedAt.Format(dateFmt),
				strconv.Itoa(r.Score),
				strconv.Itoa(r.Swaps),
				strconv.Itoa(r.Waves),
				strconv.Itoa(r.LongestCascade),
				fmt.Sprintf("%dx%d", r.Rows, r.Columns),
			})
		}
	default:
		if scores, err := m.store.TopScores(id, maxScores); err == nil {
			m.scores = scores
		}
		for i, s := range m.scores {
			rows = append(rows, table.Row{
				fmt.Sprintf("#%d", i+1),
				strconv.Itoa(s.Score),
				s.CreatedAt.Format(dateFmt),
			})
		}
	}
	m.table.SetRows(rows)
}

// newScoreTable creates an empty table with the columns of a view.
func newScoreTable(view scoreboardView, height int) table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 10},
		{Title: "Date", Width: 14},
	}
	if view == viewRecentRuns {
		columns = []table.Column{
			{Title: "Date", Width: 14},
			{Title: "Score", Width: 7},
			{Title: "Swaps", Width: 6},
			{Title: "Waves", Width: 6},
			{Title: "Chain", Width: 6},
			{Title: "Board", Width: 6},
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height-10, 3)),
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

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			if m.detail != nil {
				m.detail = nil
				return m, nil
			}
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Board):
			if len(m.boards) > 0 {
				m.board = (m.board + 1) % len(m.boards)
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.View):
			m.view = 1 - m.view
			m.reload()
			return m, nil

		case key.Matches(msg, m.keys.Details):
			m.openDetail()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// openDetail loads the full record of the highlighted run.
func (m *ScoreboardModel) openDetail() {
	if m.view != viewRecentRuns || m.store == nil {
		return
	}
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return
	}
	run, err := m.store.RunByID(m.runs[i].ID)
	if err != nil {
		return
	}
	m.detail = &run
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	title := "HIGH SCORES"
	if m.view == viewRecentRuns {
		title = "RECENT RUNS"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n")
	if len(m.boards) > 0 {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.boards[m.board].Title), m.width))
		b.WriteString("\n")
	}
	if m.summary != nil {
		line := fmt.Sprintf("Best %d  |  Games %d  |  Average %.0f  |  Last played %s",
			m.summary.HighScore, m.summary.GamesCount, m.summary.AvgScore,
			m.summary.LastPlayed.Format(dateFmt))
		b.WriteString(centerText(dimStyle.Render(line), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	var body string
	switch {
	case m.detail != nil:
		body = renderRunDetail(*m.detail)
	case len(m.table.Rows()) == 0:
		body = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 4).
			Render("No runs recorded yet.\nClear some tiles to set a high score!")
	default:
		body = m.table.View()
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boxStyle.Render(body)))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderRunDetail lists every counter stored for a run.
func renderRunDetail(r storage.RunRecord) string {
	rows := [][2]string{
		{"Run", r.ID},
		{"Played", r.CreatedAt.Format("2006-01-02 15:04:05")},
		{"Score", strconv.Itoa(r.Score)},
		{"Board", fmt.Sprintf("%d rows x %d columns", r.Rows, r.Columns)},
		{"Seed", strconv.FormatInt(r.Seed, 10)},
		{"Swaps", strconv.Itoa(r.Swaps)},
		{"Rejected", strconv.Itoa(r.Rejected)},
		{"Waves", strconv.Itoa(r.Waves)},
		{"Cleared", strconv.Itoa(r.Cleared)},
		{"Best chain", strconv.Itoa(r.LongestCascade)},
	}

	label := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(label.Render(row[0]))
		b.WriteString(row[1])
	}
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
