// Package pkg holds the riskflow libraries.
//
// # Overview
//
// riskflow draws conservation risk as a layered flow diagram: each layer
// groups animals by one attribute (activity, reproduction, habitat,
// population trend) and the last layer holds risk outcomes. Ribbons between
// adjacent layers carry animal counts; their color is the risk band of the
// node they leave.
//
// The packages split into three areas:
//
//  1. Domain: [dataset] (validated nodes and links) and [io] (JSON, TOML and
//     YAML files).
//  2. Rendering: render/flow and its subpackages (colors, layout, ribbon,
//     interact, styles, sink), render/nodelink for a Graphviz view, and
//     [render] for SVG to PNG/PDF conversion.
//  3. Infrastructure: [pipeline] (load, layout, render with caching),
//     [cache], [session], [observability], [errors], [httputil], [fonts] and
//     [buildinfo].
//
// # Data Flow
//
//	dataset file or sample
//	         ↓
//	    [io] / [dataset] (validate, warn on layer-skipping links)
//	         ↓
//	    render/flow Engine (layout + ribbons, then hover/selection state)
//	         ↓
//	    Scene (the render contract)
//	         ↓
//	    render/flow/sink → SVG, JSON, PNG, PDF
//
// # Quick Start
//
//	ds := dataset.Sample()
//	eng, err := flow.New(ds, layout.DefaultCanvas())
//	if err != nil {
//	    return err
//	}
//	_ = eng.Dispatch(interact.Click(12))
//	svg := sink.RenderSVG(eng.Scene(), sink.WithInteractive())
//
// Most callers go through [pipeline.Runner], which adds caching and
// observability hooks around the same steps.
package pkg
