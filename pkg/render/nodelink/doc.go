// Package nodelink draws a risk dataset as a plain Graphviz node-link
// diagram.
//
// Nodes are boxes filled with their risk band color and links are arrows
// whose pen width grows with the link value. Each layer is a rank=same
// subgraph in a left-to-right layout, so the columns match the flow
// diagram. Graphviz places the nodes itself, which makes the view handy for
// checking a dataset's topology.
//
//	dot := nodelink.ToDOT(ds, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// SVG rendering runs in-process via [github.com/goccy/go-graphviz]. PDF and
// PNG go through rsvg-convert like the flow sinks.
package nodelink
