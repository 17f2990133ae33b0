// Package cli wires the worldseedr commands together: logging, caching,
// persistence, and the cobra command tree.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/worldseedr/worldseedr/pkg/buildinfo"
	"github.com/worldseedr/worldseedr/pkg/cache"
	"github.com/worldseedr/worldseedr/pkg/store"
)

const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for the root command and its children.
type CLI struct {
	Logger *log.Logger

	// Runs records one entry per `generate` invocation for the lifetime of
	// the process. A CLI invocation is short-lived, so an in-memory store
	// is enough here - internal/api's chi service is where a durable
	// Mongo-backed store.Store earns its keep.
	Runs store.Store

	// Config is loaded from --config once RootCommand's PersistentPreRunE
	// runs, and read by servCommand to decide whether to wire a Redis
	// cache and Mongo store instead of the CLI's local ones.
	Config Config
}

// New builds a CLI writing logs to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
	return &CLI{Logger: logger, Runs: store.NewMemoryStore()}
}

// SetLogLevel adjusts the logger's level after construction, used by the
// root command's --verbose flag.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand assembles the worldseedr command tree.
func (c *CLI) RootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "worldseedr",
		Short:         "Generate procedural worlds from possibility schemas",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       buildinfo.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			return nil
		},
	}
	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&configPath, "config", "worldseedr.toml", "path to a TOML config file")

	root.AddCommand(
		c.generateCommand(),
		c.validateCommand(),
		c.watchCommand(),
		c.servCommand(),
		c.graphCommand(),
	)
	return root
}

// newCache decides which cache.Cache implementation to hand a subcommand:
// a NullCache when noCache is set, otherwise a FileCache under dir (or
// cacheDir() when dir is empty).
func newCache(noCache bool, dir string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			return nil, err
		}
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the worldseedr cache directory under XDG_CACHE_HOME (or
// ~/.cache when it is unset), creating nothing - callers create it lazily.
func cacheDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve cache dir: %w", err)
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "worldseedr"), nil
}
