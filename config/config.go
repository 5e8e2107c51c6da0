package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Dialog DialogConfig `toml:"dialog"`
	Store  StoreConfig  `toml:"store"`
	Log    LogConfig    `toml:"log"`
	Theme  ThemeConfig  `toml:"theme"`
}

type DialogConfig struct {
	Title         string `toml:"title,omitempty"`
	BaseWidth     int    `toml:"base_width,omitempty"`
	StatusPadding int    `toml:"status_padding,omitempty"`
}

// StoreConfig selects where last-used values are remembered.
type StoreConfig struct {
	Backend   string `toml:"backend,omitempty"` // memory, sqlite, redis or toml
	Path      string `toml:"path,omitempty"`    // sqlite database or toml file
	Addr      string `toml:"addr,omitempty"`    // redis://[:password@]host:port[/db]
	CacheSize int    `toml:"cache_size,omitempty"`
}

type LogConfig struct {
	File  string `toml:"file,omitempty"`
	Level string `toml:"level,omitempty"`
}

type ThemeConfig struct {
	FG         string `toml:"fg,omitempty"`
	Accent     string `toml:"accent,omitempty"`
	Muted      string `toml:"muted,omitempty"`
	Dim        string `toml:"dim,omitempty"`
	Error      string `toml:"error,omitempty"`
	Warning    string `toml:"warning,omitempty"`
	Success    string `toml:"success,omitempty"`
	CursorBG   string `toml:"cursor_bg,omitempty"`
	DisabledFG string `toml:"disabled_fg,omitempty"`
}

// DefaultConfigPath returns ~/.config/dynparam/config.toml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "dynparam", "config.toml")
}

func Load(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	configDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return cfg, fmt.Errorf("resolving config directory: %w", err)
	}
	cfg.Store.Path = resolvePath(cfg.Store.Path, configDir)
	cfg.Log.File = resolvePath(cfg.Log.File, configDir)

	switch cfg.Store.Backend {
	case "", "memory", "sqlite", "redis", "toml":
	default:
		return cfg, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
	return cfg, nil
}

// resolvePath expands a ~/ prefix and makes relative paths relative to dir.
func resolvePath(p, dir string) string {
	if p == "" {
		return ""
	}
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[2:])
		}
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(dir, p)
	}
	return p
}

func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "dynparam")
}

// DefaultTheme returns the Vesper color palette.
func DefaultTheme() ThemeConfig {
	return ThemeConfig{
		FG:         "#ffffff",
		Accent:     "#ffc799",
		Muted:      "#505050",
		Dim:        "#a0a0a0",
		Error:      "#ff8080",
		Warning:    "#ffc799",
		Success:    "#99ffe4",
		CursorBG:   "#2a2a2a",
		DisabledFG: "#606060",
	}
}

// ResolvedTheme merges config theme with defaults for any unset fields.
func (c Config) ResolvedTheme() ThemeConfig {
	d := DefaultTheme()
	return ThemeConfig{
		FG:         pick(c.Theme.FG, d.FG),
		Accent:     pick(c.Theme.Accent, d.Accent),
		Muted:      pick(c.Theme.Muted, d.Muted),
		Dim:        pick(c.Theme.Dim, d.Dim),
		Error:      pick(c.Theme.Error, d.Error),
		Warning:    pick(c.Theme.Warning, d.Warning),
		Success:    pick(c.Theme.Success, d.Success),
		CursorBG:   pick(c.Theme.CursorBG, d.CursorBG),
		DisabledFG: pick(c.Theme.DisabledFG, d.DisabledFG),
	}
}

// ResolvedDialog fills the dialog defaults: title "Parameters", base width 60,
// status padding 8. Widths are terminal cells.
func (c Config) ResolvedDialog() DialogConfig {
	d := c.Dialog
	d.Title = pick(d.Title, "Parameters")
	if d.BaseWidth <= 0 {
		d.BaseWidth = 60
	}
	if d.StatusPadding <= 0 {
		d.StatusPadding = 8
	}
	return d
}

// ResolvedStore fills the store defaults. The sqlite and toml backends default to
// files under ~/.local/share/dynparam.
func (c Config) ResolvedStore() StoreConfig {
	s := c.Store
	s.Backend = pick(s.Backend, "sqlite")
	switch s.Backend {
	case "sqlite":
		s.Path = pick(s.Path, filepath.Join(dataDir(), "prefs.db"))
	case "toml":
		s.Path = pick(s.Path, filepath.Join(dataDir(), "prefs.toml"))
	case "redis":
		s.Addr = pick(s.Addr, "redis://localhost:6379/0")
	}
	if s.CacheSize < 0 {
		s.CacheSize = 0
	}
	return s
}

// ResolvedLog defaults to info level in ~/.local/share/dynparam/dynparam.log.
func (c Config) ResolvedLog() LogConfig {
	return LogConfig{
		File:  pick(c.Log.File, filepath.Join(dataDir(), "dynparam.log")),
		Level: pick(c.Log.Level, "info"),
	}
}

func pick(val, fallback string) string {
	if val != "" {
		return val
	}
	return fallback
}
