package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackbar/pkg/dataset"
	"github.com/matzehuels/stackbar/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string  // output file path (or base path for multiple outputs)
	formats   string  // comma-separated output formats
	config    string  // chart configuration file (.toml, .yaml, .json)
	width     float64 // container width in pixels
	height    float64 // container height in pixels
	scale     float64 // PNG scale factor
	static    bool    // omit the tooltip script from SVG output
	noCache   bool    // disable the artifact cache
	refresh   bool    // ignore cached entries and overwrite them
	category  string  // category column (CSV/XLSX)
	series    string  // comma-separated series columns (CSV/XLSX)
	threshold string  // threshold column (CSV/XLSX)
	sheet     string  // XLSX sheet name
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		width:  pipeline.DefaultWidth,
		height: pipeline.DefaultHeight,
		scale:  pipeline.DefaultScale,
	}

	cmd := &cobra.Command{
		Use:   "render [data file]",
		Short: "Render a data table as a stacked bar chart",
		Long: `Render reads a JSON, CSV or XLSX table and draws it as a stacked bar chart.

Without --output the files are written next to the input, one per format.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(opts.formats)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], formats, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), json, pdf, png (comma-separated)")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "chart configuration file (.toml, .yaml, .json)")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "container width")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "container height")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.static, "static", false, "omit hover tooltips from SVG output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if cached")
	addReadFlags(cmd, &opts.category, &opts.series, &opts.threshold, &opts.sheet)

	return cmd
}

// addReadFlags registers the column selection flags shared by render and inspect.
func addReadFlags(cmd *cobra.Command, category, series, threshold, sheet *string) {
	cmd.Flags().StringVar(category, "category", "", "category column (default: first column)")
	cmd.Flags().StringVar(series, "series", "", "series columns in stack order (comma-separated)")
	cmd.Flags().StringVar(threshold, "threshold", "", "threshold column (default: \"threshold\" if present)")
	cmd.Flags().StringVar(sheet, "sheet", "", "XLSX sheet (default: first sheet)")
}

func readOptions(category, series, threshold, sheet string) dataset.ReadOptions {
	return dataset.ReadOptions{
		Category:  category,
		Series:    parseList(series),
		Threshold: threshold,
		Sheet:     sheet,
	}
}

// runRender runs the pipeline for input and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, formats []string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Debugf("Rendering %s", input)

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	spin := newSpinner(ctx, c.Err, "Rendering "+filepath.Base(input))
	spin.Start()
	result, err := runner.Execute(ctx, pipeline.Options{
		DataPath:   input,
		Read:       readOptions(opts.category, opts.series, opts.threshold, opts.sheet),
		ConfigPath: opts.config,
		Width:      opts.width,
		Height:     opts.height,
		Formats:    formats,
		Scale:      opts.scale,
		Static:     opts.static,
		Refresh:    opts.refresh,
		Logger:     logger,
	})
	spin.Stop()
	if err != nil {
		if result != nil {
			c.printMessages(result.Messages(), true)
		}
		return err
	}
	c.printMessages(result.Messages(), false)

	paths, err := writeArtifacts(result.Artifacts, formats, input, opts.output)
	if err != nil {
		return err
	}

	c.printSuccess("Rendered %s", input)
	for _, p := range paths {
		c.printFile(p)
	}
	c.printStats(result.Stats.Rows, result.Stats.Series, result.CacheInfo.SceneHit && result.CacheInfo.RenderHit)
	logStages(logger, result.Stats, result.CacheInfo)
	prog.done("Render complete", "input", filepath.Base(input), "formats", len(formats))
	return nil
}

// writeArtifacts writes each format to its output path, in format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	var paths []string
	for _, format := range formats {
		path := outputPath(output, input, format, len(formats) > 1)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return paths, fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// outputPath derives the file for one format. A single format written to
// an explicit --output uses it as is; otherwise the format extension is
// appended to the base path. A derived path never overwrites the input.
func outputPath(output, input, format string, multiple bool) string {
	if output != "" && !multiple {
		return output
	}
	base := basePath(output, input)
	if path := base + "." + format; path != input {
		return path
	}
	return base + ".chart." + format
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
