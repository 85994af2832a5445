package cli

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
)

// configCommand creates the config inspection command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
		Long: `Inspect the effective configuration.

Settings come from mosaicflow.toml in the config directory (or --config) and
MOSAICFLOW_* environment variables, e.g. MOSAICFLOW_LAYOUT_THRESHOLD=20.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			c.printConfig()
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the default config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(filepath.Join(configDir(), appName+".toml"))
			return nil
		},
	})

	return cmd
}

func (c *CLI) printConfig() {
	cfg := c.Config
	file := cfg.File
	if file == "" {
		file = StyleDim.Render("none (defaults)")
	}

	fmt.Println(StyleTitle.Render("Configuration"))
	printKeyValue("file", file)
	printNewline()

	fmt.Println(StyleTitle.Render("Layout"))
	printKeyValue("min width", strconv.FormatFloat(cfg.Layout.MinItemWidth, 'f', -1, 64))
	printKeyValue("threshold", strconv.FormatFloat(cfg.Layout.Threshold, 'f', -1, 64))
	printKeyValue("level", strconv.FormatBool(cfg.Layout.LevelBottom))
	printNewline()

	fmt.Println(StyleTitle.Render("Backends"))
	printKeyValue("cache", c.cacheLocation())
	if cfg.Cache.Namespace != "" {
		printKeyValue("namespace", cfg.Cache.Namespace)
	}
	if cfg.Store.MongoURI != "" {
		printKeyValue("store", cfg.Store.MongoURI+" ("+cfg.Store.MongoDB+")")
	} else {
		printKeyValue("store", cfg.Store.Dir)
	}
	printKeyValue("serve", cfg.Serve.Addr)
}
