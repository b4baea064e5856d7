// Package layout places flow-diagram nodes on a canvas.
//
// # Algorithm
//
// Nodes are partitioned into columns by their layer, keeping input order
// within each column. Column x positions are evenly spaced across the
// usable width:
//
//	x = margin.Left + layer * layerWidth
//	layerWidth = (width - margin.Left - margin.Right) / (L - 1)
//
// With a single layer the column sits at margin.Left and layerWidth is the
// whole usable width.
//
// Within a column nodes are stacked top to bottom with a fixed node height
// and gap, and the stack is centered vertically in the usable height:
//
//	y0 = margin.Top + (layerHeight - stack) / 2
//	stack = n * (nodeHeight + gap) - gap
//
// Nodes are never shrunk to fit. When a stack is taller than the usable
// height, y0 goes above margin.Top and the stack overflows symmetrically.
//
// # Determinism
//
// [Build] is a pure function of its inputs. Reordering nodes within a layer
// reorders them on screen; nothing else affects placement.
package layout
