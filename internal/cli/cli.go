// Package cli implements the mosaicflow command-line interface.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaicflow/pkg/buildinfo"
	"github.com/matzehuels/mosaicflow/pkg/cache"
	"github.com/matzehuels/mosaicflow/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "mosaicflow"

	// defaultWidth is the container width used when neither the flag nor
	// the manifest provide one.
	defaultWidth = 960.0
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Output formats of the layout command.
const (
	formatJSON = "json"
	formatSVG  = "svg"
	formatText = "text"
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Mosaicflow arranges variable-height items into balanced columns",
		Long:         `Mosaicflow computes masonry layouts: items are dealt into equal-width columns and the column bottoms are leveled by moving trailing items from the tallest to the shortest column.`,
		Version:      buildinfo.Current().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			if cfg.File != "" {
				c.Logger.Debug("loaded config", "file", cfg.File)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/mosaicflow/mosaicflow.toml)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Backends
// =============================================================================

// clearer is implemented by caches that can drop all their entries.
type clearer interface {
	Clear(ctx context.Context) (int, error)
}

// newCache opens the configured layout cache. Redis wins over the file
// cache; an unusable file cache degrades to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if url := c.Config.Cache.RedisURL; url != "" {
		return cache.NewRedisCache(ctx, url, appName+":")
	}
	fc, err := cache.NewFileCache(c.Config.Cache.Dir)
	if err != nil {
		c.Logger.Warn("cache disabled", "dir", c.Config.Cache.Dir, "err", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// newKeyer returns the cache keyer, scoped under cache.namespace when set.
func (c *CLI) newKeyer() cache.Keyer {
	if ns := c.Config.Cache.Namespace; ns != "" {
		return cache.NewScopedKeyer(cache.NewDefaultKeyer(), ns+":")
	}
	return cache.NewDefaultKeyer()
}

// newStore opens the configured snapshot store.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	if uri := c.Config.Store.MongoURI; uri != "" {
		return store.NewMongoStore(ctx, uri, c.Config.Store.MongoDB)
	}
	return store.NewFileStore(c.Config.Store.Dir)
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatJSON}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(strings.ToLower(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}
