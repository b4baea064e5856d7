// Package dataset defines the node and link records a flow diagram is built
// from.
//
// # Overview
//
// A flow diagram shows how categorical animal attributes (activity pattern,
// reproduction strategy, habitat, population trend) flow into a predicted
// conservation-risk outcome. Nodes sit in ordered layers that read left to
// right as a causal pipeline; weighted links connect nodes of adjacent layers.
//
// Records are plain values. A [Dataset] is the validated, immutable form that
// the layout and rendering packages consume:
//
//	ds, err := dataset.New(nodes, links)
//	if err != nil {
//	    // errors.ErrCodeUnknownNode, errors.ErrCodeInvalidDataset, ...
//	}
//	for _, w := range ds.Warnings() {
//	    log.Warn(w)
//	}
//
// # Validation
//
// [New] fails fast on problems that would produce a silently wrong picture:
// duplicate ids, gaps in the layer sequence, links to unknown ids and
// non-positive link values. Two softer conditions are reported as warnings
// instead: links that skip or go back across layers (they still render, as a
// long curve) and middle-layer nodes without any link. [Strict] promotes both
// to errors.
//
// # Sample Data
//
// [Sample] returns the built-in conservation dataset used by the CLI and the
// HTTP server when no dataset file is given.
package dataset
