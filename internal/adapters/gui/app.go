package gui

import (
	"context"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/xvierd/discipline-tracker/internal/ports"
	"github.com/xvierd/discipline-tracker/internal/services"
)

// AppID identifies the application to fyne for preferences storage.
const AppID = "com.xvierd.discipline-tracker"

// Run opens the desktop window and blocks until it is closed or ctx is done.
// The tick loop hands every step to the fyne main goroutine, which is the
// only goroutine that touches svc while the window is open.
func Run(ctx context.Context, svc *services.TimerService, opts Options, logger *log.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fyneApp := app.NewWithID(AppID)
	w := newWindow(ctx, fyneApp, svc, opts)

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		t := newTray(desktopApp, trayActions{
			OnShow:   w.Show,
			OnToggle: func() { w.apply(ports.CmdToggle) },
			OnSkip:   func() { w.apply(ports.CmdSkip) },
			OnQuit:   fyneApp.Quit,
		})
		w.onStatus = t.SetStatus
		w.refresh()
	} else if logger != nil {
		logger.Printf("system tray unsupported on this platform")
	}

	// closing the window quits without saving; state is only written when a
	// phase completes
	w.window.SetMaster()

	done := make(chan struct{})
	go tickLoop(ctx, w.opts.TickInterval, w.tick)
	go func() {
		select {
		case <-ctx.Done():
			fyne.Do(fyneApp.Quit)
		case <-done:
		}
	}()

	w.window.ShowAndRun()
	close(done)
	return nil
}

// tickLoop calls step on the fyne main goroutine every interval until ctx
// is done.
func tickLoop(ctx context.Context, interval time.Duration, step func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fyne.Do(step)
		}
	}
}
