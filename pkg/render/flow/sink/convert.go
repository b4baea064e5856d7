package sink

import (
	"context"

	"github.com/matzehuels/riskflow/pkg/render"
	"github.com/matzehuels/riskflow/pkg/render/flow"
)

// DefaultScale renders PNGs at twice the canvas size.
const DefaultScale = 2.0

// ConvertOption configures [RenderPNG] and [RenderPDF].
type ConvertOption func(*conversion)

type conversion struct {
	svg   []SVGOption
	scale float64
}

// WithSVG passes options to the SVG pass that precedes conversion.
// Scripts added by [WithInteractive] are dropped by the converter.
func WithSVG(opts ...SVGOption) ConvertOption {
	return func(c *conversion) { c.svg = append(c.svg, opts...) }
}

// WithScale sets the PNG zoom factor. PDF output ignores it.
func WithScale(s float64) ConvertOption {
	return func(c *conversion) { c.scale = s }
}

func convert(scene flow.Scene, opts []ConvertOption) ([]byte, conversion) {
	c := conversion{scale: DefaultScale}
	for _, opt := range opts {
		opt(&c)
	}
	return RenderSVG(scene, c.svg...), c
}

// RenderPNG rasterizes the scene through rsvg-convert.
func RenderPNG(ctx context.Context, scene flow.Scene, opts ...ConvertOption) ([]byte, error) {
	svg, c := convert(scene, opts)
	return render.ToPNG(ctx, svg, c.scale)
}

// RenderPDF converts the scene to a single-page PDF through rsvg-convert.
func RenderPDF(ctx context.Context, scene flow.Scene, opts ...ConvertOption) ([]byte, error) {
	svg, _ := convert(scene, opts)
	return render.ToPDF(ctx, svg)
}
