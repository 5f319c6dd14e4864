package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ramanasai/pomo/internal/config"
	"github.com/ramanasai/pomo/internal/history"
	"github.com/ramanasai/pomo/internal/session"
	"github.com/ramanasai/pomo/internal/settings"
	"github.com/ramanasai/pomo/internal/theme"
	"github.com/ramanasai/pomo/internal/timer"
	"github.com/ramanasai/pomo/internal/version"
)

type mode int

const (
	modeNormal mode = iota
	modeSettings
	modeHelp
)

const historyRows = 7

type Model struct {
	sess    *session.Session
	cfg     config.Config
	changed chan struct{}

	state    timer.State
	settings settings.Settings
	theme    theme.Name
	palette  theme.Palette
	today    history.Entry
	finished bool

	history    table.Model
	workInput  textinput.Model
	breakInput textinput.Model
	focus      int

	mode          mode
	status        string
	formErr       string
	width, height int
}

// New builds the model and installs its render sink on sess.
func New(sess *session.Session, cfg config.Config) Model {
	work := textinput.New()
	work.Prompt = "Work minutes:  "
	work.CharLimit = 4
	work.Width = 6

	brk := textinput.New()
	brk.Prompt = "Break minutes: "
	brk.CharLimit = 4
	brk.Width = 6

	header := history.HeaderFor(cfg.Locale)
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: header[0], Width: 12},
			{Title: header[1], Width: 15},
			{Title: header[2], Width: 15},
			{Title: header[3], Width: 7},
		}),
		table.WithHeight(historyRows+1),
		table.WithWidth(52),
	)

	m := Model{
		sess:       sess,
		cfg:        cfg,
		changed:    make(chan struct{}, 1),
		history:    t,
		workInput:  work,
		breakInput: brk,
	}
	ch := m.changed
	sess.SetRender(func(timer.State) {
		select {
		case ch <- struct{}{}:
		default:
		}
	})
	m.refresh()
	return m
}

// Run opens the timer TUI on sess until the user quits.
func Run(sess *session.Session, cfg config.Config) error {
	m := New(sess, cfg)
	defer sess.SetRender(nil)

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return waitForChange(m.changed)
}

// ---------- messages & commands ----------

type changedMsg struct{}

// waitForChange blocks until the scheduler reports a change. The sink
// coalesces bursts, and the model always reads the latest state.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return changedMsg{}
	}
}

func (m *Model) refresh() {
	prev := m.state
	m.state = m.sess.State()
	m.settings = m.sess.Settings()
	m.theme = m.sess.Theme()
	m.palette = theme.Get(m.theme)
	m.today, _ = m.sess.Today()

	if m.state.Running {
		m.finished = false
	} else if prev.Running && prev.Phase != m.state.Phase {
		m.finished = true
		m.status = fmt.Sprintf("%s complete. Press s to start the %s.", prev.Phase.Label(), strings.ToLower(m.state.Phase.Label()))
	}

	entries := m.sess.History()
	if len(entries) > historyRows {
		entries = entries[:historyRows]
	}
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, table.Row{e.Date, strconv.Itoa(e.WorkMinutes()), strconv.Itoa(e.BreakMinutes()), strconv.Itoa(e.Cycles)})
	}
	m.history.SetRows(rows)
	m.history.SetStyles(m.tableStyles())
}

func (m Model) tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true).
		Foreground(m.palette.PhaseColor(timer.PhaseWork))
	s.Selected = lipgloss.NewStyle()
	return s
}

// ---------- update ----------

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case changedMsg:
		m.refresh()
		return m, waitForChange(m.changed)

	case tea.KeyMsg:
		k := msg.String()
		if k == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.mode {
		case modeSettings:
			return m.updateSettings(msg)
		case modeHelp:
			switch k {
			case "q":
				return m, tea.Quit
			case "esc", "?", "enter":
				m.mode = modeNormal
			}
			return m, nil
		default:
			return m.updateNormal(k)
		}
	}
	return m, nil
}

func (m Model) updateNormal(k string) (tea.Model, tea.Cmd) {
	switch k {
	case "q":
		return m, tea.Quit
	case "s", " ":
		m.sess.Start()
		m.status = ""
	case "p":
		m.sess.Pause()
		m.status = "Paused"
	case "r":
		m.sess.Reset()
		m.refresh()
		m.finished = false
		m.status = "Reset"
		return m, nil
	case "t":
		next := m.theme.Next()
		if err := m.sess.SetTheme(next); err != nil {
			m.status = err.Error()
		} else {
			m.status = "Theme: " + string(next)
		}
	case "e":
		m.mode = modeSettings
		m.formErr = ""
		m.workInput.SetValue(strconv.Itoa(m.settings.WorkMinutes))
		m.breakInput.SetValue(strconv.Itoa(m.settings.BreakMinutes))
		m.focus = 0
		m.breakInput.Blur()
		return m, m.workInput.Focus()
	case "?":
		m.mode = modeHelp
		return m, nil
	}
	m.refresh()
	return m, nil
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.workInput.Blur()
		m.breakInput.Blur()
		m.status = "Settings unchanged"
		return m, nil
	case "tab", "shift+tab", "up", "down":
		m.focus = 1 - m.focus
		if m.focus == 0 {
			m.breakInput.Blur()
			return m, m.workInput.Focus()
		}
		m.workInput.Blur()
		return m, m.breakInput.Focus()
	case "enter":
		next, err := settings.Parse(m.workInput.Value(), m.breakInput.Value())
		if err == nil {
			err = m.sess.ApplySettings(next)
		}
		if err != nil {
			m.formErr = err.Error()
			return m, nil
		}
		m.mode = modeNormal
		m.workInput.Blur()
		m.breakInput.Blur()
		m.status = fmt.Sprintf("Saved: work %dm, break %dm", next.WorkMinutes, next.BreakMinutes)
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.workInput, cmd = m.workInput.Update(msg)
	} else {
		m.breakInput, cmd = m.breakInput.Update(msg)
	}
	return m, cmd
}

// ---------- view ----------

func (m Model) View() string {
	p := m.palette

	title := p.Title.Render("pomo") + "  " + p.Hint.Render(version.GetShortVersion()+" · theme "+string(m.theme))

	var body string
	switch m.mode {
	case modeSettings:
		body = m.settingsView()
	case modeHelp:
		body = m.helpView()
	default:
		body = m.timerView()
	}

	status := ""
	if m.status != "" {
		status = p.Success.Render(m.status)
	}
	help := p.Hint.Render("s start · p pause · r reset · t theme · e settings · ? help · q quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, "", p.Border.Render(body), status, help)
}

func (m Model) timerView() string {
	p := m.palette
	st := m.state

	state := "paused"
	if st.Running {
		state = "running"
	}
	head := p.Label.Render(st.Phase.Label()) + "  " + p.Hint.Render(state)
	clock := p.Clock(st.Phase, m.finished).Render(timer.FormatClock(st.Remaining))
	bar := progressBar(st, m.sess.Durations(), 30, p.PhaseColor(st.Phase))

	dots := strings.Repeat("●", st.Cycle) + strings.Repeat("○", timer.CyclesBeforeLong-st.Cycle)
	cycles := p.Label.Render("cycle ") + p.Value.Render(dots) + p.Label.Render(fmt.Sprintf("  total %d", st.TotalCycles))

	durations := p.Label.Render(fmt.Sprintf("work %dm · break %dm · long break %dm",
		m.settings.WorkMinutes, m.settings.BreakMinutes, int(timer.LongBreak.Minutes())))

	today := p.Label.Render("today ") + p.Value.Render(fmt.Sprintf("%dm work · %dm break · %d cycles",
		m.today.WorkMinutes(), m.today.BreakMinutes(), m.today.Cycles))

	return lipgloss.JoinVertical(lipgloss.Left,
		head, clock, bar, "", cycles, durations, today, "",
		p.Title.Render("History"), m.history.View())
}

func (m Model) settingsView() string {
	p := m.palette
	lines := []string{
		p.Title.Render("Settings"),
		"",
		m.workInput.View(),
		m.breakInput.View(),
		"",
		p.Hint.Render(fmt.Sprintf("Long break is fixed at %d minutes.", int(timer.LongBreak.Minutes()))),
		p.Hint.Render("enter apply · tab switch field · esc cancel"),
	}
	if m.formErr != "" {
		lines = append(lines, "", p.Error.Render(m.formErr))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) helpView() string {
	p := m.palette
	rows := [][2]string{
		{"s / space", "start or resume the countdown"},
		{"p", "pause"},
		{"r", "reset to a fresh work phase"},
		{"t", "next theme"},
		{"e", "edit work / break minutes"},
		{"q", "quit (a running phase is saved)"},
	}
	lines := []string{p.Title.Render("Keys"), ""}
	for _, r := range rows {
		lines = append(lines, p.Value.Render(fmt.Sprintf("%-10s", r[0]))+"  "+p.Label.Render(r[1]))
	}
	lines = append(lines, "", p.Hint.Render(fmt.Sprintf("Every %d work blocks earn a long break.", timer.CyclesBeforeLong)))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// progressBar shows how much of the current phase has elapsed.
func progressBar(st timer.State, d timer.Durations, width int, color lipgloss.Color) string {
	total := d.Seconds(st.Phase)
	done := 0
	if total > 0 {
		done = (total - st.Remaining) * width / total
	}
	if done < 0 {
		done = 0
	}
	if done > width {
		done = width
	}
	filled := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", done))
	return filled + lipgloss.NewStyle().Faint(true).Render(strings.Repeat("░", width-done))
}
