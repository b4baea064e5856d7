package layout

import (
	"github.com/matzehuels/riskflow/pkg/dataset"
	"github.com/matzehuels/riskflow/pkg/errors"
)

const (
	DefaultNodeWidth  = 120.0
	DefaultNodeHeight = 50.0
	DefaultGap        = 20.0
)

// Option configures [Build].
type Option func(*options)

type options struct {
	nodeWidth, nodeHeight, gap float64
}

// WithNodeSize sets the uniform node box size. Non-positive values are
// ignored.
func WithNodeSize(width, height float64) Option {
	return func(o *options) {
		if width > 0 {
			o.nodeWidth = width
		}
		if height > 0 {
			o.nodeHeight = height
		}
	}
}

// WithGap sets the vertical gap between stacked nodes. Negative values are
// ignored.
func WithGap(gap float64) Option {
	return func(o *options) {
		if gap >= 0 {
			o.gap = gap
		}
	}
}

// Layout is the computed placement of every node.
type Layout struct {
	Canvas      Canvas           `json:"canvas"`
	Positions   map[int]Position `json:"positions"`
	Layers      [][]int          `json:"layers"`
	LayerWidth  float64          `json:"layer_width"`
	LayerHeight float64          `json:"layer_height"`
	NodeWidth   float64          `json:"node_width"`
	NodeHeight  float64          `json:"node_height"`
	Gap         float64          `json:"gap"`
}

// Position returns the box of the node with the given id.
func (l Layout) Position(id int) (Position, bool) {
	p, ok := l.Positions[id]
	return p, ok
}

// StackHeight returns the height of a column holding n nodes.
func (l Layout) StackHeight(n int) float64 {
	return stackHeight(n, l.NodeHeight, l.Gap)
}

// Fits reports whether every column's stack fits inside the usable height.
func (l Layout) Fits() bool {
	for _, ids := range l.Layers {
		if l.StackHeight(len(ids)) > l.LayerHeight {
			return false
		}
	}
	return true
}

func stackHeight(n int, nodeHeight, gap float64) float64 {
	if n == 0 {
		return 0
	}
	return float64(n)*(nodeHeight+gap) - gap
}

// Build computes node positions. It fails with DEGENERATE_CANVAS when the
// canvas margins leave no usable area. An empty node list yields an empty
// layout. Layer values are taken as given; datasets built with
// [dataset.New] guarantee they are contiguous.
func Build(nodes []dataset.Node, canvas Canvas, opts ...Option) (Layout, error) {
	o := options{nodeWidth: DefaultNodeWidth, nodeHeight: DefaultNodeHeight, gap: DefaultGap}
	for _, opt := range opts {
		opt(&o)
	}
	if err := canvas.Validate(); err != nil {
		return Layout{}, err
	}

	l := Layout{
		Canvas:      canvas,
		Positions:   make(map[int]Position, len(nodes)),
		LayerHeight: canvas.UsableHeight(),
		LayerWidth:  canvas.UsableWidth(),
		NodeWidth:   o.nodeWidth,
		NodeHeight:  o.nodeHeight,
		Gap:         o.gap,
	}

	maxLayer := -1
	for _, n := range nodes {
		if n.Layer < 0 {
			return Layout{}, errors.New(errors.ErrCodeInvalidDataset, "node %d: negative layer %d", n.ID, n.Layer)
		}
		maxLayer = max(maxLayer, n.Layer)
	}
	if maxLayer < 0 {
		return l, nil
	}

	l.Layers = make([][]int, maxLayer+1)
	for _, n := range nodes {
		l.Layers[n.Layer] = append(l.Layers[n.Layer], n.ID)
	}
	if maxLayer > 0 {
		l.LayerWidth = canvas.UsableWidth() / float64(maxLayer)
	}

	for layer, ids := range l.Layers {
		x := canvas.Margins.Left + float64(layer)*l.LayerWidth
		y0 := canvas.Margins.Top + (l.LayerHeight-stackHeight(len(ids), o.nodeHeight, o.gap))/2
		for i, id := range ids {
			l.Positions[id] = Position{
				X:      x,
				Y:      y0 + float64(i)*(o.nodeHeight+o.gap),
				Width:  o.nodeWidth,
				Height: o.nodeHeight,
			}
		}
	}
	return l, nil
}
