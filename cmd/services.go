package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/xvierd/focuswatch/internal/adapters/focusapi"
	"github.com/xvierd/focuswatch/internal/adapters/notification"
	"github.com/xvierd/focuswatch/internal/config"
	"github.com/xvierd/focuswatch/internal/domain"
	"github.com/xvierd/focuswatch/internal/ports"
	"github.com/xvierd/focuswatch/internal/services"
)

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	config     *config.Config
	configPath string
	locale     domain.Locale
	api        *focusapi.Client
	notifier   *notification.Notifier
	logger     *slog.Logger
	logFile    io.Closer
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices sets up all the required services and adapters.
func initializeServices(cmd *cobra.Command) error {
	app = appDeps{}

	var err error
	app.configPath, err = config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	app.config, err = config.LoadFrom(app.configPath)
	if err != nil {
		// If config loading fails, use defaults
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v; using defaults\n", err)
		app.config = config.DefaultConfig()
	}

	// Flags win over the file and the environment.
	if serverURL != "" {
		app.config.Server.BaseURL = serverURL
	}
	if localeFlag != "" {
		app.config.Locale = localeFlag
	}

	app.locale, err = app.config.LocaleTable()
	if err != nil {
		return err
	}

	app.logger = newLogger(cmd.ErrOrStderr(), app.config.LogLevel())

	app.api, err = focusapi.New(app.config.Server.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid server URL: %w", err)
	}

	app.notifier = notification.New(app.config.Notifications)
	return nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if app.logFile != nil {
		err := app.logFile.Close()
		app.logFile = nil
		return err
	}
	return nil
}

// newLogger builds the diagnostic logger. Every line carries the id of this
// invocation so interleaved runs can be told apart in a shared log file.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("invocation", domain.NewRunID())
}

// redirectLogs sends diagnostics to the configured log file, for as long as
// the fullscreen dashboard owns the terminal.
func redirectLogs() error {
	path, err := config.ExpandPath(app.config.Log.File)
	if err != nil {
		return err
	}
	if path == "" {
		app.logger = slog.New(slog.DiscardHandler)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	app.logFile = f
	app.logger = newLogger(f, app.config.LogLevel())
	return nil
}

// sessionStack is one wired set of renderers, poller and controller
// drawing into a display.
type sessionStack struct {
	status     *services.LiveStatusRenderer
	poller     *services.StatePoller
	controller *services.SessionController
}

// newSessionStack wires the services to display. A nil alerter disables
// focus-lost notifications.
func newSessionStack(api ports.FocusAPI, display ports.Display, alerter ports.Alerter) sessionStack {
	icons := app.config.Theme.Icons()
	status := services.NewLiveStatusRenderer(display, app.locale, icons, app.logger)
	if alerter != nil {
		status.SetAlerter(alerter)
	}
	stats := services.NewStatsRenderer(display, app.locale)
	history := services.NewHistoryRenderer(display, app.locale)

	poller := services.NewStatePoller(api, services.PollerConfig{
		Interval:       app.config.Poll.Interval,
		RequestTimeout: app.config.Poll.RequestTimeout,
	}, services.PollHandlers{
		Live:  func(s domain.LiveState) { status.Render(s) },
		Stats: stats.Render,
	}, app.logger)

	return sessionStack{
		status:     status,
		poller:     poller,
		controller: services.NewSessionController(api, poller, status, history, display, app.logger),
	}
}

// watchConfig keeps the notification settings in step with the config
// file. onNotify is told about every reloaded enabled flag.
func watchConfig(onNotify func(bool)) {
	err := config.Watch(app.configPath, func(cfg *config.Config, e fsnotify.Event) {
		app.notifier.Apply(cfg.Notifications)
		if onNotify != nil {
			onNotify(cfg.Notifications.Enabled)
		}
		app.logger.Info("config reloaded", "file", e.Name, "op", e.Op.String())
	}, func(err error) {
		app.logger.Warn("ignoring config change", "err", err)
	})
	if err != nil {
		app.logger.Warn("config watch disabled", "err", err)
	}
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
