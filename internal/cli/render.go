package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/matzehuels/riskflow/pkg/errors"
	"github.com/matzehuels/riskflow/pkg/pipeline"
)

var (
	errNoInput       = errors.New(errors.ErrCodeInvalidInput, "no dataset: pass a file or --sample")
	errInputConflict = errors.New(errors.ErrCodeInvalidInput, "pass either a dataset file or --sample, not both")
)

// renderCommand creates the render command: dataset in, diagram files out.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags      diagramFlags
		formatsStr string
		vizType    string
		detailed   bool
		output     string
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "render [dataset]",
		Short: "Render a dataset to SVG, PNG, PDF, JSON or DOT",
		Long: `Render a dataset to one or more output files.

The dataset is a JSON, TOML or YAML file with nodes and links; --sample uses
the built-in conservation dataset. The flow view (default) produces svg, png,
pdf and json (the laid out scene); the nodelink view renders the same graph
with Graphviz and produces svg, png, pdf and dot.

Use --hover and --select to bake an interaction state into static output, or
--interactive to embed the hover and selection behavior in the SVG itself.

Results are cached locally for faster subsequent runs.`,
		Example: `  riskflow render --sample -f svg,png
  riskflow render animals.yaml --interactive -o diagram.svg
  riskflow render animals.json --select 12 --style contrast
  riskflow render animals.toml -t nodelink -f dot`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := flags.input(args)
			if err != nil {
				return err
			}
			opts := flags.options(cmd, c.settings())
			opts.Path = input
			opts.VizType = vizType
			opts.Formats = parseFormats(formatsStr)
			opts.Detailed = detailed
			opts.Refresh = refresh
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), input, opts, output, noCache)
		},
	}

	flags.addDatasetFlags(cmd.Flags())
	flags.addLayoutFlags(cmd.Flags())
	flags.addStyleFlags(cmd.Flags())
	flags.addStateFlags(cmd.Flags())

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().StringVarP(&vizType, "type", "t", pipeline.DefaultVizType, "visualization type: flow (default), nodelink")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show risk scores and counts in node labels (nodelink)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached results and re-render")

	return cmd
}

// runRender executes the full pipeline and writes artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	prog := newProgress(c.Logger)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s diagram...", opts.VizType))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	prog.done("render complete", "artifacts", len(result.Artifacts), "scene_cached", result.CacheInfo.SceneHit)

	for _, w := range result.Warnings {
		printWarning("%s", w.Message)
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		nodes:     result.Stats.NodeCount,
		links:     result.Stats.LinkCount,
		layers:    result.Stats.LayerCount,
		cacheHit:  result.CacheInfo.RenderHit,
	})
}

// artifactWriteParams holds everything writeArtifacts reports on.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	nodes     int
	links     int
	layers    int
	cacheHit  bool
}

// writeArtifacts writes one file per format. A single format goes to
// output verbatim when given; otherwise files are named <base>.<format>.
func writeArtifacts(p artifactWriteParams) error {
	paths, err := artifactPaths(p.formats, p.input, p.output)
	if err != nil {
		return err
	}

	formats := make([]string, 0, len(paths))
	for f := range paths {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	written := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := p.artifacts[format]
		if !ok {
			return errors.New(errors.ErrCodeInternal, "no %s output was produced", format)
		}
		path := paths[format]
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}

	printSuccess("Wrote %d file(s)", len(written))
	for _, path := range written {
		printFile(path)
	}
	printStats(p.nodes, p.links, p.layers, p.cacheHit)
	return nil
}

func artifactPaths(formats []string, input, output string) (map[string]string, error) {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths, nil
	}
	base := basePath(output, input)
	for _, f := range formats {
		if _, dup := paths[f]; dup {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "format %s requested twice", f)
		}
		paths[f] = base + "." + f
	}
	return paths, nil
}
