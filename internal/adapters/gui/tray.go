package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// trayActions are the handlers behind the tray menu.
type trayActions struct {
	OnShow   func()
	OnToggle func()
	OnSkip   func()
	OnQuit   func()
}

// tray keeps the system tray menu in sync with the timer.
type tray struct {
	app        desktop.App
	actions    trayActions
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
}

func newTray(app desktop.App, actions trayActions) *tray {
	t := &tray{app: app, actions: actions}

	t.statusItem = fyne.NewMenuItem("Status: paused", nil)
	t.statusItem.Disabled = true
	t.toggleItem = fyne.NewMenuItem("Start", func() { call(t.actions.OnToggle) })

	t.refresh()
	return t
}

// SetStatus updates the status line and the toggle label.
func (t *tray) SetStatus(label, remaining string, running bool) {
	state := "paused"
	t.toggleItem.Label = "Start"
	if running {
		state = "running"
		t.toggleItem.Label = "Pause"
	}
	t.statusItem.Label = fmt.Sprintf("%s %s (%s)", label, remaining, state)
	t.refresh()
}

func (t *tray) refresh() {
	quit := fyne.NewMenuItem("Quit", func() { call(t.actions.OnQuit) })
	quit.IsQuit = true
	t.app.SetSystemTrayMenu(fyne.NewMenu(windowTitle,
		t.statusItem,
		fyne.NewMenuItem("Show", func() { call(t.actions.OnShow) }),
		t.toggleItem,
		fyne.NewMenuItem("Skip", func() { call(t.actions.OnSkip) }),
		fyne.NewMenuItemSeparator(),
		quit,
	))
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}
