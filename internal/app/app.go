// Package app is the composition root: it loads configuration, the package
// list, and prior run outcomes, then wires the driver to the UI.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"aptqueue/internal/config"
	"aptqueue/internal/driver"
	"aptqueue/internal/installer"
	"aptqueue/internal/prefs"
	"aptqueue/internal/queue"
	"aptqueue/internal/runlog"
	"aptqueue/internal/ui"
)

// Options configure one aptqueue run.
type Options struct {
	ConfigPath string
	ListPath   string // overrides the configured package list when set
	PrefsPath  string // empty uses default ~/.config/aptqueue/prefs.toml
}

// Run boots the aptqueue TUI and blocks until the run ends or the user
// quits. A missing package list fails fast before any terminal setup.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.ListPath != "" {
		cfg.ListPath = opts.ListPath
	}

	jobs, err := queue.Load(cfg.ListPath)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return errors.New("package list is empty")
	}

	successKeys, err := runlog.LoadSet(cfg.SuccessLog)
	if err != nil {
		return err
	}
	failureKeys, err := runlog.LoadSet(cfg.FailureLog)
	if err != nil {
		return err
	}
	queue.ApplyPriorResults(jobs, successKeys, failureKeys)

	recorder, err := runlog.Open(cfg.SuccessLog, cfg.FailureLog)
	if err != nil {
		return err
	}
	defer recorder.Close()

	tool, err := installer.New(cfg.CheckCmd, cfg.InstallCmd)
	if err != nil {
		return fmt.Errorf("installer config: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	d := driver.New(ctx, toolAdapter{tool}, recorder, jobs, cfg.SettleDelay)

	return ui.Run(ui.Options{
		Context:   ctx,
		Driver:    d,
		TickEvery: cfg.TickEvery,
		RunStart:  time.Now(),
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	})
}

// toolAdapter narrows *installer.Tool to the driver's interface; the
// concrete Start return type needs the lift to driver.Handle.
type toolAdapter struct {
	*installer.Tool
}

func (a toolAdapter) Start(name string) (driver.Handle, error) {
	p, err := a.Tool.Start(name)
	if err != nil {
		return nil, err
	}
	return p, nil
}
