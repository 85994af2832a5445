package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	mfio "github.com/matzehuels/mosaicflow/pkg/io"
	"github.com/matzehuels/mosaicflow/pkg/masonry"
	"github.com/matzehuels/mosaicflow/pkg/pipeline"
)

// layoutFlags holds the layout command's flags.
type layoutFlags struct {
	output       string
	formats      string
	width        float64
	minItemWidth float64
	threshold    float64
	noLevel      bool
	textWidth    int
	noCache      bool
	refresh      bool
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "layout [items.json|items.toml]",
		Short: "Compute a masonry layout from an item manifest",
		Long: `Compute a masonry layout from an item manifest.

The manifest declares item heights and optionally the container width and
layout options. Flags override the manifest, which overrides the config file.

Output formats:
  json   snapshot with columns, item placement and heights (default)
  svg    drawing with one rectangle per item
  text   columns side by side for the terminal ("-o -" prints it)

Layouts are cached locally; use --no-cache to disable or --refresh to recompute.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.width < 0 {
				return fmt.Errorf("--width must be non-negative")
			}
			return c.runLayout(cmd.Context(), args[0], flags, overridesFrom(cmd, flags))
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file or base path (default: <input>.layout.<ext>)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", formatJSON, "output formats: json, svg, text (comma-separated)")
	cmd.Flags().Float64Var(&flags.width, "width", 0, "container width (default: manifest width, then 960)")
	cmd.Flags().Float64Var(&flags.minItemWidth, "min-item-width", 0, "minimum column width")
	cmd.Flags().Float64Var(&flags.threshold, "threshold", 0, "minimum gap improvement for moving an item")
	cmd.Flags().BoolVar(&flags.noLevel, "no-level", false, "skip leveling the column bottoms")
	cmd.Flags().IntVar(&flags.textWidth, "text-width", pipeline.DefaultTextWidth, "terminal width of the text format")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "recompute even when cached")

	return cmd
}

// layoutOverrides holds the layout flags the user set explicitly. They win
// over the manifest, which wins over the config file.
type layoutOverrides struct {
	minItemWidth *float64
	threshold    *float64
	noLevel      bool
}

func overridesFrom(cmd *cobra.Command, flags layoutFlags) layoutOverrides {
	var o layoutOverrides
	if cmd.Flags().Changed("min-item-width") {
		o.minItemWidth = &flags.minItemWidth
	}
	if cmd.Flags().Changed("threshold") {
		o.threshold = &flags.threshold
	}
	o.noLevel = flags.noLevel
	return o
}

func (o layoutOverrides) apply(opts *masonry.Options) {
	if o.minItemWidth != nil {
		opts.MinItemWidth = *o.minItemWidth
	}
	if o.threshold != nil {
		opts.Threshold = *o.threshold
	}
	if o.noLevel {
		opts.LevelBottom = false
	}
}

// runLayout loads the manifest, computes the layout, and writes outputs.
func (c *CLI) runLayout(ctx context.Context, input string, flags layoutFlags, overrides layoutOverrides) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	m, raw, err := mfio.Import(input)
	if err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}
	logger.Debug("loaded manifest", "file", input, "items", len(m.Items))

	opts := pipeline.Options{
		Width:     flags.width,
		Layout:    m.Options.Apply(c.Config.Options()),
		Formats:   parseFormats(flags.formats),
		TextWidth: flags.textWidth,
		Refresh:   flags.refresh,
		Logger:    logger,
	}
	overrides.apply(&opts.Layout)

	ch, err := c.newCache(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	runner := pipeline.NewRunner(ch, c.newKeyer(), logger)
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, m, raw, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(input, flags.output, opts.Formats, result.Artifacts)
	if err != nil {
		return err
	}

	prog.done("wrote layout", "files", len(paths))
	printSuccess("Layout complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.Columns, result.Stats.Items, result.CacheInfo.LayoutHit)
	printNewline()
	printNextStep("Explore interactively", appName+" preview "+input)
	return nil
}

// writeArtifacts writes each artifact and returns the written paths. An
// output of "-" prints to stdout. With several formats, output is a base
// path that receives the format extension.
func writeArtifacts(input, output string, formats []string, artifacts map[string][]byte) ([]string, error) {
	base := strings.TrimSuffix(input, filepath.Ext(input)) + ".layout"
	single := len(formats) == 1 && output != ""
	if output != "" && output != "-" && !single {
		base = strings.TrimSuffix(output, filepath.Ext(output))
	}

	var paths []string
	for _, format := range formats {
		data := artifacts[format]
		if output == "-" {
			if _, err := os.Stdout.Write(data); err != nil {
				return nil, err
			}
			continue
		}
		path := base + "." + extension(format)
		if single {
			path = output
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("write output %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func extension(format string) string {
	if format == formatText {
		return "txt"
	}
	return format
}
