// Package sink turns a flow [flow.Scene] into output files.
//
// # Overview
//
// A "sink" transforms a composed scene into a final output format:
//
//   - SVG: static, or interactive with embedded CSS and JavaScript
//   - JSON: the scene itself, for external renderers and caching
//   - PDF: print-ready output (requires rsvg-convert)
//   - PNG: raster image output (requires rsvg-convert)
//
// Sinks perform no layout. Every coordinate, color and opacity comes from
// the scene.
//
// # SVG Output
//
// [RenderSVG] draws ribbons first, then node boxes, then labels and the
// legend, so labels are never hidden behind ribbons:
//
//	svg := sink.RenderSVG(eng.Scene(),
//	    sink.WithStyle(styles.Contrast{}),
//	    sink.WithInteractive(),
//	)
//
// With [WithInteractive] the SVG carries a small script that applies the
// same hover and selection rules as the Go state machine in the browser.
// Hovering a node dims all others, hovering a ribbon raises its opacity, and
// clicking a node toggles selection. Each selection change dispatches a
// "riskflow:select" CustomEvent on the SVG root whose detail is {id: n} or
// {id: null}, which embedding pages can listen for to show detail panels.
//
// # JSON Output
//
// [RenderJSON] writes the scene as a versioned document; [ParseJSON] reads
// it back so a scene can be rendered again without the original dataset:
//
//	data, err := sink.RenderJSON(scene, sink.WithJSONStyle("simple"))
//	doc, err := sink.ParseJSON(data)
//	svg := sink.RenderSVG(doc.Scene)
//
// # PDF and PNG Output
//
// [RenderPDF] and [RenderPNG] render SVG first and convert it with
// [render.ToPDF] and [render.ToPNG].
//
// [flow.Scene]: github.com/matzehuels/riskflow/pkg/render/flow.Scene
// [render.ToPDF]: github.com/matzehuels/riskflow/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/riskflow/pkg/render.ToPNG
package sink
