package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/riskflow/pkg/dataset"
	"github.com/matzehuels/riskflow/pkg/errors"
	"github.com/matzehuels/riskflow/pkg/render/flow"
	"github.com/matzehuels/riskflow/pkg/render/flow/interact"
	"github.com/matzehuels/riskflow/pkg/render/flow/sink"
	"github.com/matzehuels/riskflow/pkg/render/flow/styles"
	"github.com/matzehuels/riskflow/pkg/render/nodelink"
)

// Compose builds the engine for ds, applies the hover and selection in opts
// and returns the scene.
func Compose(ds *dataset.Dataset, opts Options) (flow.Scene, error) {
	eng, err := flow.New(ds, opts.Canvas, opts.EngineOptions()...)
	if err != nil {
		return flow.Scene{}, err
	}
	if opts.Hover != nil {
		if err := eng.Dispatch(interact.EnterNode(*opts.Hover)); err != nil {
			return flow.Scene{}, fmt.Errorf("hover: %w", err)
		}
	}
	if opts.Select != nil {
		if err := eng.Dispatch(interact.Select(*opts.Select)); err != nil {
			return flow.Scene{}, fmt.Errorf("select: %w", err)
		}
	}
	return eng.Scene(), nil
}

// SVGOptions translates render options for [sink.RenderSVG].
func SVGOptions(opts Options) ([]sink.SVGOption, error) {
	style, err := styles.Lookup(opts.Style)
	if err != nil {
		return nil, err
	}
	svgOpts := []sink.SVGOption{sink.WithStyle(style)}
	if opts.Interactive {
		svgOpts = append(svgOpts, sink.WithInteractive())
	}
	if opts.NoLegend {
		svgOpts = append(svgOpts, sink.WithoutLegend())
	}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	return svgOpts, nil
}

// RenderScene generates flow diagram outputs in the requested formats.
func RenderScene(ctx context.Context, scene flow.Scene, opts Options) (map[string][]byte, error) {
	svgOpts, err := SVGOptions(opts)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(scene, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, scene, sink.WithSVG(svgOpts...), sink.WithScale(opts.Scale))
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, scene, sink.WithSVG(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(scene, sink.WithJSONStyle(opts.Style))
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported flow format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderNodelink generates node-link outputs directly from the dataset.
func RenderNodelink(ctx context.Context, ds *dataset.Dataset, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(ds, nodelink.Options{Detailed: opts.Detailed})

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot, opts.Scale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(ctx, dot)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported nodelink format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
