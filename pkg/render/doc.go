// Package render converts SVG output into other formats and hosts the
// diagram renderers.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg). Both the flow sinks and the node-link renderer use them:
//
//	svg := sink.RenderSVG(scene)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// When rsvg-convert is missing the functions fail with
// [errors.ErrCodeUnsupported]; [Available] checks up front.
//
// # Renderers
//
//   - [flow]: the layered risk flow engine and its scene
//   - [flow/sink]: SVG, JSON, PNG and PDF output for a scene
//   - [nodelink]: a Graphviz node-link view of the same dataset
//
// [errors.ErrCodeUnsupported]: github.com/matzehuels/riskflow/pkg/errors.ErrCodeUnsupported
// [flow]: github.com/matzehuels/riskflow/pkg/render/flow
// [flow/sink]: github.com/matzehuels/riskflow/pkg/render/flow/sink
// [nodelink]: github.com/matzehuels/riskflow/pkg/render/nodelink
package render
