package dataset

import (
	"fmt"
	"math"
	"slices"

	"github.com/matzehuels/riskflow/pkg/errors"
)

// Option configures [New].
type Option func(*config)

type config struct {
	strict bool
}

// Strict turns dataset warnings into errors: links that do not connect
// adjacent layers fail with [errors.ErrCodeNonAdjacentLink], and middle-layer
// nodes without links fail with [errors.ErrCodeInvalidDataset].
func Strict() Option { return func(c *config) { c.strict = true } }

// Warning describes a non-fatal oddity found while validating a dataset.
type Warning struct {
	Code    errors.Code
	Message string
}

func (w Warning) String() string { return w.Message }

// Dataset is a validated, immutable set of nodes and links.
//
// The zero value is an empty dataset. Accessors return copies, so callers
// cannot mutate a Dataset after construction.
type Dataset struct {
	nodes    []Node
	links    []Link
	index    map[int]int // node id -> position in nodes
	layers   [][]int     // layer -> node ids in input order
	maxValue float64
	warnings []Warning
}

// New validates nodes and links and returns a Dataset.
//
// Node order is significant: it fixes the vertical stacking order of nodes
// within each layer. New returns an error if:
//   - a node id appears twice or a node name is empty
//   - a layer is negative or the layer sequence has gaps
//   - a link references an unknown node id ([errors.ErrCodeUnknownNode])
//   - a link value is not a finite positive number
//
// Empty node and link sets are valid.
func New(nodes []Node, links []Link, opts ...Option) (*Dataset, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	ds := &Dataset{
		nodes: slices.Clone(nodes),
		links: slices.Clone(links),
		index: make(map[int]int, len(nodes)),
	}

	maxLayer := -1
	for i, n := range ds.nodes {
		if _, dup := ds.index[n.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidDataset, "duplicate node id %d", n.ID)
		}
		if err := errors.ValidateNodeName(n.Name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "node %d", n.ID)
		}
		if n.Layer < 0 {
			return nil, errors.New(errors.ErrCodeInvalidDataset, "node %d: negative layer %d", n.ID, n.Layer)
		}
		ds.nodes[i] = n.detached()
		ds.index[n.ID] = i
		maxLayer = max(maxLayer, n.Layer)
	}

	ds.layers = make([][]int, maxLayer+1)
	for _, n := range ds.nodes {
		ds.layers[n.Layer] = append(ds.layers[n.Layer], n.ID)
	}
	for l, ids := range ds.layers {
		if len(ids) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidDataset,
				"layers must be contiguous: layer %d is empty but layer %d exists", l, maxLayer)
		}
	}

	linked := make(map[int]bool, len(ds.nodes))
	for i, l := range ds.links {
		src, ok := ds.index[l.Source]
		if !ok {
			return nil, errors.New(errors.ErrCodeUnknownNode, "link %d: unknown source node %d", i, l.Source)
		}
		dst, ok := ds.index[l.Target]
		if !ok {
			return nil, errors.New(errors.ErrCodeUnknownNode, "link %d: unknown target node %d", i, l.Target)
		}
		if math.IsNaN(l.Value) || math.IsInf(l.Value, 0) || l.Value <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidDataset,
				"link %d (%d→%d): value must be positive, got %v", i, l.Source, l.Target, l.Value)
		}

		if from, to := ds.nodes[src].Layer, ds.nodes[dst].Layer; from+1 != to {
			ds.warnings = append(ds.warnings, Warning{
				Code: errors.ErrCodeNonAdjacentLink,
				Message: fmt.Sprintf("link %d (%d→%d) connects layer %d to layer %d",
					i, l.Source, l.Target, from, to),
			})
		}

		linked[l.Source] = true
		linked[l.Target] = true
		ds.maxValue = max(ds.maxValue, l.Value)
	}

	for _, n := range ds.nodes {
		if n.Layer == 0 || n.Layer == maxLayer || linked[n.ID] {
			continue
		}
		ds.warnings = append(ds.warnings, Warning{
			Code:    errors.ErrCodeInvalidDataset,
			Message: fmt.Sprintf("node %d (%s) in layer %d has no links", n.ID, n.Name, n.Layer),
		})
	}

	if cfg.strict && len(ds.warnings) > 0 {
		w := ds.warnings[0]
		return nil, errors.New(w.Code, "%s", w.Message)
	}
	return ds, nil
}

// MustNew is like [New] but panics on error. It is intended for static
// datasets known to be valid, such as [Sample].
func MustNew(nodes []Node, links []Link, opts ...Option) *Dataset {
	ds, err := New(nodes, links, opts...)
	if err != nil {
		panic(err)
	}
	return ds
}

// Nodes returns the nodes in input order.
func (d *Dataset) Nodes() []Node {
	if d == nil {
		return nil
	}
	out := make([]Node, len(d.nodes))
	for i, n := range d.nodes {
		out[i] = n.detached()
	}
	return out
}

// Links returns the links in input order.
func (d *Dataset) Links() []Link {
	if d == nil {
		return nil
	}
	return slices.Clone(d.links)
}

// Node returns the node with the given id.
func (d *Dataset) Node(id int) (Node, bool) {
	if d == nil {
		return Node{}, false
	}
	i, ok := d.index[id]
	if !ok {
		return Node{}, false
	}
	return d.nodes[i].detached(), true
}

// Has reports whether a node with the given id exists.
func (d *Dataset) Has(id int) bool {
	_, ok := d.Node(id)
	return ok
}

// NodeCount returns the number of nodes.
func (d *Dataset) NodeCount() int {
	if d == nil {
		return 0
	}
	return len(d.nodes)
}

// LinkCount returns the number of links.
func (d *Dataset) LinkCount() int {
	if d == nil {
		return 0
	}
	return len(d.links)
}

// LayerCount returns L, the number of layers.
func (d *Dataset) LayerCount() int {
	if d == nil {
		return 0
	}
	return len(d.layers)
}

// Layer returns the ids of the nodes in layer i, in input order.
func (d *Dataset) Layer(i int) []int {
	if d == nil || i < 0 || i >= len(d.layers) {
		return nil
	}
	return slices.Clone(d.layers[i])
}

// MaxValue returns the largest link value, or 0 when there are no links.
// Ribbon thickness is normalized against it.
func (d *Dataset) MaxValue() float64 {
	if d == nil {
		return 0
	}
	return d.maxValue
}

// Warnings returns the non-fatal problems found by [New].
func (d *Dataset) Warnings() []Warning {
	if d == nil {
		return nil
	}
	return slices.Clone(d.warnings)
}

// Incoming returns the links whose target is id.
func (d *Dataset) Incoming(id int) []Link {
	var out []Link
	for _, l := range d.Links() {
		if l.Target == id {
			out = append(out, l)
		}
	}
	return out
}

// Outgoing returns the links whose source is id.
func (d *Dataset) Outgoing(id int) []Link {
	var out []Link
	for _, l := range d.Links() {
		if l.Source == id {
			out = append(out, l)
		}
	}
	return out
}
