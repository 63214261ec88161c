package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/xvierd/discipline-tracker/internal/adapters/git"
	"github.com/xvierd/discipline-tracker/internal/adapters/notification"
	"github.com/xvierd/discipline-tracker/internal/adapters/sound"
	"github.com/xvierd/discipline-tracker/internal/adapters/storage"
	"github.com/xvierd/discipline-tracker/internal/config"
	"github.com/xvierd/discipline-tracker/internal/ports"
	"github.com/xvierd/discipline-tracker/internal/services"
)

const logPrefix = "discipline "

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	config     *config.Config
	configPath string
	storage    ports.Storage
	timer      *services.TimerService
	notifier   *notification.Notifier
	sound      *sound.Player
	git        ports.GitDetector
	logger     *log.Logger
	logFile    io.Closer
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices sets up all the required services and adapters.
func initializeServices(cmd *cobra.Command) error {
	dir := dataDir
	if dir == "" {
		dir = config.DefaultDataDir()
	}
	app.configPath = filepath.Join(dir, "config.toml")

	var err error
	app.config, err = config.Load(app.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
		app.config = config.DefaultConfig()
	}
	if dataDir != "" {
		app.config.Storage.DataDir = dataDir
	}
	if backendFlag != "" {
		app.config.Storage.Backend = backendFlag
	}

	if err := os.MkdirAll(app.config.Storage.DataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	app.logger, app.logFile, err = openLog(cmd, app.config.LogPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to open log file: %v\n", err)
		app.logger = log.New(io.Discard, logPrefix, log.LstdFlags)
	}

	store, err := storage.Open(app.config.Storage.Backend, app.config.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	app.storage = store
	if cmd.Annotations[annotationReadOnly] == "true" {
		app.storage = storage.ReadOnly(store)
	} else if app.config.Storage.AsyncWrites {
		app.storage = storage.NewAsyncWriter(store, func(err error) {
			app.logger.Printf("failed to write in background: %v", err)
		})
	}

	app.notifier = notification.New(&app.config.Notifications)
	app.sound = sound.New(app.config.SoundPath(), app.config.Notifications.Sound, func(err error) {
		app.logger.Printf("failed to play sound: %v", err)
	})
	app.git = git.NewDetector()

	app.timer = services.NewTimerService(app.storage,
		services.WithNotifier(app.notifier),
		services.WithSound(app.sound),
		services.WithLogger(app.logger),
	)
	if err := app.timer.Load(cmd.Context()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, starting from a fresh timer\n", err)
	}

	return nil
}

// openLog opens the log file. The terminal UI owns the screen, so for it the
// standard logger is redirected as well.
func openLog(cmd *cobra.Command, path string) (*log.Logger, io.Closer, error) {
	if !cmd.HasParent() {
		f, err := tea.LogToFile(path, logPrefix)
		if err != nil {
			return nil, nil, err
		}
		return log.Default(), f, nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return log.New(f, logPrefix, log.LstdFlags), f, nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if app.sound != nil {
		app.sound.Wait()
	}
	var err error
	if app.storage != nil {
		err = app.storage.Close()
	}
	if app.logFile != nil {
		_ = app.logFile.Close()
	}
	return err
}

// projects returns the configured project list plus the git repository of
// the working directory, when there is one.
func (d *appDeps) projects(ctx context.Context) []string {
	projects := append([]string(nil), d.config.UI.Projects...)
	if len(projects) == 0 {
		projects = append(projects, config.DefaultProjects...)
	}
	if d.git == nil {
		return projects
	}

	info, err := d.git.Detect(ctx, "")
	if err != nil {
		return projects
	}
	if name := git.ProjectName(info); name != "" && !slices.Contains(projects, name) {
		projects = append(projects, name)
	}
	return projects
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}
