package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/xvierd/focuswatch/internal/adapters/tui"
	"github.com/xvierd/focuswatch/internal/config"
	"github.com/xvierd/focuswatch/internal/domain"
)

// endTimeout bounds the end request sent when plain watch is interrupted.
const endTimeout = 5 * time.Second

// runDashboard implements the bare "focuswatch" command.
func runDashboard(cmd *cobra.Command, args []string) error {
	ctx, cancel := setupSignalHandler()
	defer cancel()

	if plainMode || !tui.IsTerminal(os.Stdout) {
		return runPlainWatch(ctx, cmd)
	}
	return runFullscreen(ctx)
}

// runFullscreen opens the bubbletea dashboard. Leaving it stops polling but
// leaves a running remote session alone.
func runFullscreen(ctx context.Context) error {
	if err := redirectLogs(); err != nil {
		return err
	}

	display := tui.NewProgramDisplay()
	stack := newSessionStack(app.api, display, app.notifier)
	defer stack.controller.Close()

	dash := tui.NewDashboard(display, stack.controller, tui.Options{
		Locale: app.locale,
		Theme:  app.config.Theme,
		Idle:   stack.status.IdleView(),
		Notify: app.notifier.IsEnabled(),
		OnNotifyToggle: func(enabled bool) {
			app.notifier.Apply(config.NotificationConfig{Enabled: enabled, Sound: app.config.Notifications.Sound})
			if _, err := config.Set(app.configPath, "notifications.enabled", strconv.FormatBool(enabled)); err != nil {
				app.logger.Warn("failed to save notification toggle", "err", err)
			}
		},
	})
	watchConfig(dash.SetNotify)

	app.logger.Info("dashboard opened", "server", app.api.BaseURL())
	return dash.Run(ctx)
}

// runPlainWatch is the line-oriented dashboard: it starts a session, prints
// every change until interrupted, then ends the session.
func runPlainWatch(ctx context.Context, cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	printer := tui.NewPrinter(out, app.locale, app.config.Theme,
		tui.WithWidth(min(tui.TerminalWidth()-4, 80)),
		tui.WithTimestamps(),
	)
	stack := newSessionStack(app.api, printer, app.notifier)
	defer stack.controller.Close()
	watchConfig(nil)

	stack.controller.Load(ctx)
	if !stack.controller.WaitContext(ctx) {
		return nil
	}

	if err := stack.controller.Start(ctx); err != nil {
		return err
	}
	fmt.Fprintf(out, "Watching %s · Ctrl+C to end the session\n", app.api.BaseURL())

	<-ctx.Done()

	// The signal context is done; the end request needs its own.
	endCtx, cancelEnd := context.WithTimeout(context.WithoutCancel(ctx), endTimeout)
	defer cancelEnd()
	err := stack.controller.End(endCtx)
	stack.controller.WaitContext(endCtx)
	if err != nil && !errors.Is(err, domain.ErrNoActiveSession) {
		return err
	}
	return nil
}
