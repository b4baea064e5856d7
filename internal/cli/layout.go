package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/riskflow/pkg/pipeline"
	"github.com/matzehuels/riskflow/pkg/render/flow/sink"
)

// layoutCommand creates the layout command for computing a scene.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags   diagramFlags
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "layout [dataset]",
		Short: "Compute the diagram scene from a dataset",
		Long: `Compute the diagram scene from a dataset.

The scene is a JSON document holding every positioned node, every ribbon path
and the interaction state: the same document 'render -f json' produces. It can
be rendered to SVG, PNG or PDF with the 'visualize' command, or consumed by
another renderer.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := flags.input(args)
			if err != nil {
				return err
			}
			opts := flags.options(cmd, c.settings())
			opts.Path = input
			opts.VizType = pipeline.VizFlow
			opts.Formats = []string{pipeline.FormatJSON}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), input, opts, output, noCache)
		},
	}

	flags.addDatasetFlags(cmd.Flags())
	flags.addLayoutFlags(cmd.Flags())
	flags.addStateFlags(cmd.Flags())
	cmd.Flags().StringVar(&flags.style, "style", pipeline.DefaultStyle, "style recorded in the scene for later rendering")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.scene.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runLayout loads the dataset, computes the scene, and writes it.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	ds, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}
	for _, w := range ds.Warnings() {
		printWarning("%s", w.Message)
	}
	hash, err := pipeline.DatasetHash(ds)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()
	scene, cacheHit, err := runner.SceneWithCacheInfo(ctx, ds, hash, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	data, err := sink.RenderJSON(scene, sink.WithJSONStyle(opts.Style))
	if err != nil {
		return err
	}
	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + ".scene.json"
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(ds.NodeCount(), ds.LinkCount(), ds.LayerCount(), cacheHit)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}
