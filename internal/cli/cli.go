// Package cli implements the tankview command-line interface.
//
// This package provides commands for building renderer-ready lineage trees
// from snapshot files, inspecting them in the terminal, and managing the
// result cache. The CLI is built using cobra and supports verbose logging
// via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - build: Transform a lineage snapshot into a tree (JSON or DOT)
//   - inspect: Print a snapshot's tree to the terminal
//   - cache: Manage the result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so subcommands share one configuration.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mbolaris/tankview/pkg/buildinfo"
	"github.com/mbolaris/tankview/pkg/cache"
	"github.com/mbolaris/tankview/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "tankview"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// New creates a new CLI instance with a default logger and the on-disk
// configuration (or defaults when no config file exists).
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{Logger: newLogger(w, level)}
	cfg, err := LoadConfig()
	if err != nil {
		c.Logger.Warnf("Ignoring config file: %v", err)
		cfg = DefaultConfig()
	}
	c.Config = cfg
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Tankview turns agent lineage records into renderer-ready trees",
		Long:         `Tankview is the lineage core of the tank simulation dashboard: it reconciles flat, possibly messy reproduction records into a deterministic single-rooted tree the dashboard's tree widget can draw.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(c.newCache(ctx, noCache), nil, c.Logger)
}

// newCache builds the cache backend selected by config. Backend failures
// degrade to a disabled cache rather than failing the command: the cache is
// an optimization, never a requirement.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	switch c.Config.Cache.Backend {
	case BackendNone:
		return cache.NewNullCache()
	case BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Config.Cache.RedisAddr,
			Password: c.Config.Cache.RedisPassword,
			DB:       c.Config.Cache.RedisDB,
		})
		if err != nil {
			c.Logger.Warnf("Redis cache unavailable, caching disabled: %v", err)
			return cache.NewNullCache()
		}
		return rc
	default:
		dir, err := c.cacheDir()
		if err != nil {
			return cache.NewNullCache()
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			c.Logger.Warnf("File cache unavailable, caching disabled: %v", err)
			return cache.NewNullCache()
		}
		return fc
	}
}

// cacheDir returns the cache directory: the configured one, or the XDG
// standard (~/.cache/tankview/).
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
