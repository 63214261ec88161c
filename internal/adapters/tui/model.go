// Package tui provides the terminal interface for the Pomodoro timer.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/discipline-tracker/internal/config"
	"github.com/xvierd/discipline-tracker/internal/domain"
	"github.com/xvierd/discipline-tracker/internal/heatmap"
	"github.com/xvierd/discipline-tracker/internal/ports"
	"github.com/xvierd/discipline-tracker/internal/services"
)

// Window titles shown while the timer runs and while it is idle.
const (
	TitleIdle    = config.AppName
	TitleRunning = config.AppName + " — running"
)

const (
	completionTitle   = "Session complete"
	completionMessage = "Session finished — switching modes."
	bannerTicks       = 5
)

type tickMsg time.Time

// Options configure a Model.
type Options struct {
	Projects     []string
	HistoryLimit int
	TickInterval time.Duration
	Theme        *config.ThemeConfig

	// Now supplies the date the heatmap is anchored on. Defaults to time.Now.
	Now func() time.Time
}

// Model is the bubbletea model driving a TimerService. All service calls
// happen inside Update, so the service never sees concurrent access.
type Model struct {
	ctx      context.Context
	svc      *services.TimerService
	keys     keyMap
	help     help.Model
	progress progress.Model
	theme    config.ThemeConfig

	projects []string
	cursor   int
	selected string

	history      []string
	historyLimit int

	grid        heatmap.Grid
	gridDay     domain.Date
	heatmapView string

	banner      string
	bannerTicks int
	err         error

	interval time.Duration
	now      func() time.Time
	width    int
	height   int
	quitting bool
}

// NewModel builds a model over a loaded service.
func NewModel(ctx context.Context, svc *services.TimerService, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = 50
	}
	if len(opts.Projects) == 0 {
		opts.Projects = config.DefaultProjects
	}

	m := Model{
		ctx:          ctx,
		svc:          svc,
		keys:         defaultKeyMap(),
		help:         help.New(),
		progress:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		theme:        resolveTheme(opts.Theme),
		projects:     append([]string(nil), opts.Projects...),
		historyLimit: opts.HistoryLimit,
		interval:     opts.TickInterval,
		now:          opts.Now,
	}

	history, err := svc.RecentHistory(ctx, m.historyLimit)
	if err != nil {
		m.err = err
	}
	m.history = history
	m.rebuildHeatmap()
	return m
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.interval), tea.SetWindowTitle(m.windowTitle()))
}

// Update handles keys, ticks and resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		if m.bannerTicks > 0 {
			m.bannerTicks--
			if m.bannerTicks == 0 {
				m.banner = ""
			}
		}
		var cmds []tea.Cmd
		if m.svc.IsRunning() {
			c, err := m.svc.Tick(m.ctx)
			if c != nil {
				cmds = append(cmds, m.completed(*c, err))
			}
		}
		if domain.DateOf(m.now()) != m.gridDay {
			m.rebuildHeatmap()
		}
		cmds = append(cmds, tickCmd(m.interval))
		return m, tea.Batch(cmds...)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = m.centerWidth() - 4
		if m.progress.Width < 10 {
			m.progress.Width = 10
		}
		m.renderHeatmapView()
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.projects)-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.Select):
		if len(m.projects) > 0 {
			m.selected = m.projects[m.cursor]
			m.showBanner(fmt.Sprintf("Selected %s. This would scope your Pomodoro to this project.", m.selected))
		}
		return m, nil
	}

	cmd, ok := m.commandFor(msg)
	if !ok {
		return m, nil
	}
	c, err := m.svc.Apply(m.ctx, cmd)
	if c != nil {
		return m, m.completed(*c, err)
	}
	if err != nil {
		m.err = err
	}
	return m, tea.SetWindowTitle(m.windowTitle())
}

func (m Model) commandFor(msg tea.KeyMsg) (ports.TimerCommand, bool) {
	switch {
	case key.Matches(msg, m.keys.Start):
		return ports.CmdStart, true
	case key.Matches(msg, m.keys.Pause):
		return ports.CmdPause, true
	case key.Matches(msg, m.keys.Toggle):
		return ports.CmdToggle, true
	case key.Matches(msg, m.keys.Reset):
		return ports.CmdReset, true
	case key.Matches(msg, m.keys.Skip):
		return ports.CmdSkip, true
	case key.Matches(msg, m.keys.Work):
		return ports.CmdPresetWork, true
	case key.Matches(msg, m.keys.Short):
		return ports.CmdPresetShortBreak, true
	case key.Matches(msg, m.keys.Long):
		return ports.CmdPresetLongBreak, true
	}
	return 0, false
}

// completed folds a finished phase into the view.
func (m *Model) completed(c domain.Completion, err error) tea.Cmd {
	m.history = append([]string{c.Entry.String()}, m.history...)
	if len(m.history) > m.historyLimit {
		m.history = m.history[:m.historyLimit]
	}
	if c.WasWork() {
		m.rebuildHeatmap()
	}
	m.showBanner(completionTitle + ". " + completionMessage)
	m.err = err
	return tea.SetWindowTitle(m.windowTitle())
}

func (m *Model) showBanner(text string) {
	m.banner = text
	m.bannerTicks = bannerTicks
}

func (m *Model) rebuildHeatmap() {
	m.gridDay = domain.DateOf(m.now())
	m.grid = heatmap.Build(m.svc.State().Contributions, m.gridDay)
	m.renderHeatmapView()
}

func (m *Model) renderHeatmapView() {
	title := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorTitle))
	m.heatmapView = renderHeatmap(&m.grid, heatmapWeeks(m.centerWidth()), title)
}

func (m Model) centerWidth() int {
	if m.width == 0 {
		return heatmap.Weeks * 2
	}
	return m.width - sidebarWidth - 4
}

func (m Model) windowTitle() string {
	if m.svc.IsRunning() {
		return TitleRunning
	}
	return TitleIdle
}

// Selected returns the project chosen in the sidebar, if any.
func (m Model) Selected() string {
	return m.selected
}

// View renders the sidebar next to the timer and heatmap.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	running := m.svc.IsRunning()
	mode := m.svc.Mode()
	st := newStyles(m.theme, mode, running)

	var center strings.Builder
	header := m.theme.IconApp + " " + mode.Label()
	if !running {
		header = m.theme.IconPaused + " " + mode.Label()
	}
	center.WriteString(st.mode.Render(header))
	if m.selected != "" {
		center.WriteString(st.help.Render("  · " + m.selected))
	}
	center.WriteString("\n\n")
	center.WriteString(st.clock.Render(renderClock(domain.FormatClock(m.svc.Remaining()))))
	center.WriteString("\n\n")
	center.WriteString(m.progress.ViewAs(m.svc.State().Progress()))
	center.WriteString("\n")
	center.WriteString(st.help.Render(fmt.Sprintf("%d work sessions completed", m.svc.State().WorkSessions)))
	center.WriteString("\n\n")
	center.WriteString(m.heatmapView)
	center.WriteString("\n\n")

	if m.banner != "" {
		center.WriteString(st.banner.Render(m.banner))
		center.WriteString("\n")
	}
	if m.err != nil {
		center.WriteString(st.errorLine.Render("Error: " + m.err.Error()))
		center.WriteString("\n")
	}
	center.WriteString(m.help.View(m.keys))

	sidebar := m.renderSidebar(st, m.height)
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, lipgloss.NewStyle().PaddingLeft(2).Render(center.String()))
}
