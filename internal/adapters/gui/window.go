// Package gui provides the desktop window for the Pomodoro timer.
package gui

import (
	"context"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/xvierd/discipline-tracker/internal/config"
	"github.com/xvierd/discipline-tracker/internal/domain"
	"github.com/xvierd/discipline-tracker/internal/heatmap"
	"github.com/xvierd/discipline-tracker/internal/ports"
	"github.com/xvierd/discipline-tracker/internal/services"
)

const (
	windowTitle        = config.AppName
	windowTitleRunning = config.AppName + " — running"

	completionTitle   = "Session complete"
	completionMessage = "Session finished — switching modes."
	selectionMessage  = "This would scope your Pomodoro to this project."
)

// Options configure the desktop window.
type Options struct {
	Projects     []string
	HistoryLimit int
	TickInterval time.Duration
	Theme        *config.ThemeConfig
	Now          func() time.Time
}

// Window is the main timer window. Every method must run on the fyne
// main goroutine.
type Window struct {
	ctx    context.Context
	svc    *services.TimerService
	window fyne.Window
	opts   Options

	modeLabel *canvas.Text
	clock     *canvas.Text
	sessions  *widget.Label
	progress  *widget.ProgressBar
	heatmap   *heatmapView
	start     *widget.Button
	pause     *widget.Button

	history     []string
	historyList *widget.List
	projectList *widget.List

	onStatus   func(label, remaining string, running bool)
	heatmapDay domain.Date
	lastErr    error
}

func newWindow(ctx context.Context, app fyne.App, svc *services.TimerService, opts Options) *Window {
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
	if opts.Theme == nil {
		t := config.DefaultThemeConfig()
		opts.Theme = &t
	}

	w := &Window{
		ctx:    ctx,
		svc:    svc,
		window: app.NewWindow(windowTitle),
		opts:   opts,
	}

	history, err := svc.RecentHistory(ctx, opts.HistoryLimit)
	if err != nil {
		w.lastErr = err
	}
	w.history = history

	w.window.SetContent(w.build())
	w.window.Resize(fyne.NewSize(float32(heatmap.Width())+360, 520))
	w.refreshHeatmap()
	w.refresh()
	return w
}

func (w *Window) build() fyne.CanvasObject {
	w.modeLabel = canvas.NewText("", parseColor(w.opts.Theme.ColorWork))
	w.modeLabel.TextSize = 20
	w.modeLabel.TextStyle = fyne.TextStyle{Bold: true}
	w.modeLabel.Alignment = fyne.TextAlignCenter

	w.clock = canvas.NewText("", theme.Color(theme.ColorNameForeground))
	w.clock.TextSize = 64
	w.clock.TextStyle = fyne.TextStyle{Monospace: true, Bold: true}
	w.clock.Alignment = fyne.TextAlignCenter

	w.sessions = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})
	w.progress = widget.NewProgressBar()
	w.progress.TextFormatter = func() string { return "" }
	w.heatmap = newHeatmapView()

	w.start = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() { w.apply(ports.CmdStart) })
	w.pause = widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), func() { w.apply(ports.CmdPause) })
	controls := container.NewHBox(
		layout.NewSpacer(),
		w.start,
		w.pause,
		widget.NewButton("Reset", func() { w.apply(ports.CmdReset) }),
		widget.NewButton("Skip", func() { w.apply(ports.CmdSkip) }),
		layout.NewSpacer(),
	)
	presets := container.NewHBox(
		layout.NewSpacer(),
		widget.NewButton("Work 25", func() { w.apply(ports.CmdPresetWork) }),
		widget.NewButton("Short Break", func() { w.apply(ports.CmdPresetShortBreak) }),
		widget.NewButton("Long Break", func() { w.apply(ports.CmdPresetLongBreak) }),
		layout.NewSpacer(),
	)

	center := container.NewVBox(
		w.modeLabel,
		w.clock,
		w.progress,
		w.sessions,
		controls,
		presets,
		widget.NewSeparator(),
		container.NewCenter(w.heatmap.container),
	)

	w.projectList = widget.NewList(
		func() int { return len(w.opts.Projects) },
		func() fyne.CanvasObject { return widget.NewLabel("project") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(w.opts.Projects[id])
		},
	)
	w.projectList.OnSelected = w.selectProject

	w.historyList = widget.NewList(
		func() int { return len(w.history) },
		func() fyne.CanvasObject { return widget.NewLabel("2006-01-02 15:04:05 — Long Break") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(w.history[id])
		},
	)

	sidebar := container.NewVSplit(
		container.NewBorder(bold("Projects"), nil, nil, nil, w.projectList),
		container.NewBorder(bold("History"), nil, nil, nil, w.historyList),
	)
	sidebar.SetOffset(0.4)

	split := container.NewHSplit(sidebar, container.NewPadded(center))
	split.SetOffset(0.25)
	return split
}

func bold(text string) *widget.Label {
	return widget.NewLabelWithStyle(text, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
}

func (w *Window) selectProject(id widget.ListItemID) {
	if id < 0 || id >= len(w.opts.Projects) {
		return
	}
	dialog.ShowInformation(fmt.Sprintf("Selected %s", w.opts.Projects[id]), selectionMessage, w.window)
}

// apply runs a button command against the service.
func (w *Window) apply(cmd ports.TimerCommand) {
	c, err := w.svc.Apply(w.ctx, cmd)
	w.lastErr = err
	if c != nil {
		w.completed(*c, err)
	}
	w.refresh()
}

// tick advances a running timer by one step.
func (w *Window) tick() {
	if w.svc.IsRunning() {
		c, err := w.svc.Tick(w.ctx)
		if c != nil {
			w.completed(*c, err)
		}
	}
	if domain.DateOf(w.opts.Now()) != w.heatmapDay {
		w.refreshHeatmap()
	}
	w.refresh()
}

func (w *Window) completed(c domain.Completion, err error) {
	w.history = append([]string{c.Entry.String()}, w.history...)
	if len(w.history) > w.opts.HistoryLimit {
		w.history = w.history[:w.opts.HistoryLimit]
	}
	w.historyList.Refresh()
	if c.WasWork() {
		w.refreshHeatmap()
	}
	if err != nil {
		dialog.ShowError(err, w.window)
		return
	}
	dialog.ShowInformation(completionTitle, completionMessage, w.window)
}

func (w *Window) refreshHeatmap() {
	w.heatmapDay = domain.DateOf(w.opts.Now())
	g := heatmap.Build(w.svc.State().Contributions, w.heatmapDay)
	w.heatmap.Update(&g)
}

// refresh copies the timer state into the widgets.
func (w *Window) refresh() {
	state := w.svc.State()
	running := state.IsRunning

	color := w.opts.Theme.ColorWork
	if state.Mode.IsBreak() {
		color = w.opts.Theme.ColorBreak
	}
	if !running {
		color = w.opts.Theme.ColorPaused
	}
	w.modeLabel.Text = state.Mode.Label()
	w.modeLabel.Color = parseColor(color)
	w.modeLabel.Refresh()

	remaining := domain.FormatClock(state.Remaining)
	w.clock.Text = remaining
	w.clock.Refresh()

	w.progress.SetValue(state.Progress())
	w.sessions.SetText(fmt.Sprintf("%d work sessions completed", state.WorkSessions))

	if running {
		w.start.Importance = widget.LowImportance
		w.window.SetTitle(windowTitleRunning)
	} else {
		w.start.Importance = widget.HighImportance
		w.window.SetTitle(windowTitle)
	}
	w.start.Refresh()

	if w.onStatus != nil {
		w.onStatus(state.Mode.Label(), remaining, running)
	}
}

// Show displays the window and brings it to the front.
func (w *Window) Show() {
	w.window.Show()
	w.window.RequestFocus()
}
