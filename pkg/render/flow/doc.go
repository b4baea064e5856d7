// Package flow is the layered flow-diagram engine.
//
// # Overview
//
// An [Engine] owns a validated dataset, its layout, its ribbons and an
// interaction state machine. Geometry is computed once per dataset and is
// invariant under interaction; events only change the emphasis layer.
//
//	ds := dataset.Sample()
//	eng, err := flow.New(ds, layout.DefaultCanvas())
//	if err != nil {
//	    return err
//	}
//	eng.OnSelect(func(id int, ok bool) { showDetails(id, ok) })
//	eng.Dispatch(interact.EnterNode(3))
//	scene := eng.Scene()
//
// # Render Contract
//
// A [Scene] is everything a renderer needs and nothing more: per node its
// box, fill, risk band, outcome border flag, label lines, count and current
// opacity; per link its closed outline path, thickness, fill and opacity.
// Renderers draw these primitives and perform no layout of their own.
//
// [Compose] builds a Scene from its inputs without side effects, so a
// renderer can be treated as a pure function of geometry, color and state.
//
// # Pipeline
//
//	Dataset ─► layout.Build ─► ribbon.BuildAll ─► Compose(state) ─► sink
//
// Colors come from [colors.ColorFor]; emphasis comes from the [interact]
// state.
//
// [colors.ColorFor]: github.com/matzehuels/riskflow/pkg/render/flow/colors.ColorFor
// [interact]: github.com/matzehuels/riskflow/pkg/render/flow/interact
package flow
