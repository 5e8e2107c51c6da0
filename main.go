package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dylan/dynparam/config"
	"github.com/dylan/dynparam/prefs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath string
	verbose    bool

	cfg    config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "dynparam",
	Short: "Harvest parameters through a dialog that rebuilds itself as values change",
	Long: `dynparam shows a terminal dialog for a set of parameters, validates them as
they are edited, rebuilds the dialog when a choice changes which fields exist,
and remembers the accepted values for next time.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = loadConfig(); err != nil {
			return err
		}
		if logger, err = newLogger(cfg.ResolvedLog()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: ~/.config/dynparam/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	rootCmd.AddCommand(demoCmd, prefsCmd)
}

func loadConfig() (config.Config, error) {
	path := configPath
	explicit := path != ""
	if !explicit {
		path = config.DefaultConfigPath()
	}

	c, err := config.Load(path)
	if err != nil {
		// If using default path and file doesn't exist, use empty config
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return config.Config{}, nil
		}
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}
	return c, nil
}

// newLogger writes to the log file only, since the dialog owns the terminal.
func newLogger(lc config.LogConfig) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(lc.File), 0o755); err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{lc.File}
	zc.ErrorOutputPaths = []string{lc.File}
	level, err := zap.ParseAtomicLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	zc.Level = level
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zc.Build()
}

// openBackend opens the configured raw store. The returned closer is never nil.
func openBackend(sc config.StoreConfig) (prefs.Backend, io.Closer, error) {
	var (
		b      prefs.Backend
		closer io.Closer = io.NopCloser(nil)
	)

	switch sc.Backend {
	case "memory":
		b = prefs.NewMemory()
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(sc.Path), 0o755); err != nil {
			return nil, nil, err
		}
		db, err := prefs.OpenSQLite(sc.Path)
		if err != nil {
			return nil, nil, err
		}
		b, closer = db, db
	case "toml":
		if err := os.MkdirAll(filepath.Dir(sc.Path), 0o755); err != nil {
			return nil, nil, err
		}
		f, err := prefs.OpenTOMLFile(sc.Path)
		if err != nil {
			return nil, nil, err
		}
		b = f
	case "redis":
		r, err := prefs.NewRedis(sc.Addr)
		if err != nil {
			return nil, nil, err
		}
		b, closer = r, r
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", sc.Backend)
	}

	if sc.CacheSize > 0 {
		c, err := prefs.NewCached(b, sc.CacheSize)
		if err != nil {
			closer.Close()
			return nil, nil, err
		}
		b = c
	}

	logger.Debug("store opened",
		zap.String("backend", sc.Backend),
		zap.String("path", sc.Path),
		zap.Int("cache_size", sc.CacheSize))
	return b, closer, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
