// Package config loads aptqueue settings from a TOML file, falling back to
// defaults that mirror a stock Debian/Ubuntu setup.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything a run needs: where the package list and the
// outcome logs live, how to check for and install a package, and the loop
// timing knobs.
type Config struct {
	ListPath    string
	SuccessLog  string
	FailureLog  string
	CheckCmd    []string
	InstallCmd  []string
	TickEvery   time.Duration
	SettleDelay time.Duration
}

const (
	defaultConfigPath = "~/.config/aptqueue/config.toml"
	defaultListPath   = "installed_packages.list"
	defaultSuccessLog = "installed_successfully.list"
	defaultFailureLog = "failed.list"
	defaultTickMS     = 20
	defaultSettleMS   = 500
)

func defaults() Config {
	return Config{
		ListPath:    defaultListPath,
		SuccessLog:  defaultSuccessLog,
		FailureLog:  defaultFailureLog,
		CheckCmd:    []string{"dpkg-query", "-W", "-f=${Status}"},
		InstallCmd:  []string{"apt-get", "install", "-y"},
		TickEvery:   defaultTickMS * time.Millisecond,
		SettleDelay: defaultSettleMS * time.Millisecond,
	}
}

// Load locates and parses the config, falling back to defaults when the
// file is missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		List       string   `toml:"list"`
		SuccessLog string   `toml:"success_log"`
		FailureLog string   `toml:"failure_log"`
		CheckCmd   []string `toml:"check_cmd"`
		InstallCmd []string `toml:"install_cmd"`
		TickMS     int      `toml:"tick_ms"`
		SettleMS   int      `toml:"settle_ms"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.List); v != "" {
		cfg.ListPath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.SuccessLog); v != "" {
		cfg.SuccessLog = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.FailureLog); v != "" {
		cfg.FailureLog = mustExpand(v)
	}
	if len(raw.CheckCmd) > 0 {
		cfg.CheckCmd = raw.CheckCmd
	}
	if len(raw.InstallCmd) > 0 {
		cfg.InstallCmd = raw.InstallCmd
	}
	if raw.TickMS > 0 {
		cfg.TickEvery = time.Duration(raw.TickMS) * time.Millisecond
	}
	if raw.SettleMS > 0 {
		cfg.SettleDelay = time.Duration(raw.SettleMS) * time.Millisecond
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
