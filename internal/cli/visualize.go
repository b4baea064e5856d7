package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/riskflow/pkg/pipeline"
	"github.com/matzehuels/riskflow/pkg/render/flow/sink"
)

// visualizeCommand creates the visualize command for rendering a scene.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		flags      diagramFlags
		formatsStr string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "visualize [scene.json]",
		Short: "Render a computed scene",
		Long: `Render a computed scene.

The visualize command takes a scene file (produced by 'layout' or
'render -f json') and renders it to SVG, PNG or PDF. The scene contains all
positioning and interaction state, so this step is purely about drawing.

Use 'render' as a shortcut to go directly from a dataset to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read scene %s: %w", args[0], err)
			}
			doc, err := sink.ParseJSON(data)
			if err != nil {
				return fmt.Errorf("load scene %s: %w", args[0], err)
			}

			opts := flags.options(cmd, c.settings())
			if !cmd.Flags().Changed("style") && doc.Style != "" {
				opts.Style = doc.Style
			}
			opts.VizType = pipeline.VizFlow
			opts.Formats = parseFormats(formatsStr)
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], doc, opts, output)
		},
	}

	flags.addStyleFlags(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")

	return cmd
}

// runVisualize renders the scene as loaded. Scenes are not cached: they
// are already the cached form of a layout.
func (c *CLI) runVisualize(ctx context.Context, input string, doc sink.Document, opts pipeline.Options, output string) error {
	spinner := newSpinnerWithContext(ctx, "Rendering scene...")
	spinner.Start()

	artifacts, err := pipeline.RenderScene(ctx, doc.Scene, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	layers := make(map[int]bool)
	for _, n := range doc.Scene.Nodes {
		layers[n.Layer] = true
	}
	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		nodes:     len(doc.Scene.Nodes),
		links:     len(doc.Scene.Links),
		layers:    len(layers),
	})
}
