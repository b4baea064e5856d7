package flow

import (
	"slices"

	"github.com/matzehuels/riskflow/pkg/dataset"
	"github.com/matzehuels/riskflow/pkg/errors"
	"github.com/matzehuels/riskflow/pkg/render/flow/interact"
	"github.com/matzehuels/riskflow/pkg/render/flow/layout"
	"github.com/matzehuels/riskflow/pkg/render/flow/ribbon"
)

// Option configures an [Engine].
type Option func(*Engine)

// WithLayoutOptions passes options to [layout.Build].
func WithLayoutOptions(opts ...layout.Option) Option {
	return func(e *Engine) { e.layoutOpts = append(e.layoutOpts, opts...) }
}

// WithRibbonOptions passes options to [ribbon.BuildAll].
func WithRibbonOptions(opts ...ribbon.Option) Option {
	return func(e *Engine) { e.ribbonOpts = append(e.ribbonOpts, opts...) }
}

// Engine ties a dataset to its geometry and interaction state.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	ds         *dataset.Dataset
	canvas     layout.Canvas
	layoutOpts []layout.Option
	ribbonOpts []ribbon.Option

	layout  layout.Layout
	ribbons []ribbon.Ribbon
	machine *interact.Machine
}

// New builds the layout and ribbons for ds. It fails on a degenerate canvas
// or when a link cannot be resolved. A nil dataset is treated as empty.
func New(ds *dataset.Dataset, canvas layout.Canvas, opts ...Option) (*Engine, error) {
	e := &Engine{canvas: canvas, machine: interact.New()}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.rebuild(ds); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) rebuild(ds *dataset.Dataset) error {
	if ds == nil {
		ds = dataset.MustNew(nil, nil)
	}
	l, err := layout.Build(ds.Nodes(), e.canvas, e.layoutOpts...)
	if err != nil {
		return err
	}
	ribbons, err := ribbon.BuildAll(ds, l, e.ribbonOpts...)
	if err != nil {
		return err
	}
	e.ds, e.layout, e.ribbons = ds, l, ribbons
	return nil
}

// SetDataset replaces the dataset and recomputes geometry. Hover state is
// cleared; the selection survives only if the selected node still exists.
// On error the engine keeps its previous dataset and state.
func (e *Engine) SetDataset(ds *dataset.Dataset) error {
	if err := e.rebuild(ds); err != nil {
		return err
	}
	e.machine.LeaveNode()
	e.machine.ClearLinks()
	if id, ok := e.machine.Snapshot().SelectedID(); ok && !e.ds.Has(id) {
		e.machine.Deselect()
	}
	return nil
}

// Fork returns an engine that shares this engine's dataset and geometry
// but starts from state. Ids in state that no longer resolve are dropped.
// Selection sinks are not carried over.
func (e *Engine) Fork(state interact.State) *Engine {
	if id, ok := state.HoveredID(); ok && !e.ds.Has(id) {
		state.Hovered = nil
	}
	if id, ok := state.SelectedID(); ok && !e.ds.Has(id) {
		state.Selected = nil
	}
	state.Links = slices.DeleteFunc(slices.Clone(state.Links), func(i int) bool {
		return i < 0 || i >= len(e.ribbons)
	})
	return &Engine{
		ds:         e.ds,
		canvas:     e.canvas,
		layoutOpts: e.layoutOpts,
		ribbonOpts: e.ribbonOpts,
		layout:     e.layout,
		ribbons:    e.ribbons,
		machine:    interact.Restore(state),
	}
}

// OnSelect registers a selection sink. See [interact.Machine.OnSelect].
func (e *Engine) OnSelect(fn interact.SelectFunc) { e.machine.OnSelect(fn) }

// Dispatch validates ev against the current dataset and applies it. Node
// events must name an existing node ([errors.ErrCodeUnknownNode]) and link
// events an existing ribbon index ([errors.ErrCodeInvalidEvent]).
func (e *Engine) Dispatch(ev interact.Event) error {
	if err := ev.Validate(); err != nil {
		return err
	}
	switch ev.Type {
	case interact.EventEnterNode, interact.EventClick, interact.EventSelect:
		if !e.ds.Has(*ev.ID) {
			return errors.New(errors.ErrCodeUnknownNode, "%s: unknown node %d", ev.Type, *ev.ID)
		}
	case interact.EventEnterLink, interact.EventLeaveLink:
		if *ev.ID < 0 || *ev.ID >= len(e.ribbons) {
			return errors.New(errors.ErrCodeInvalidEvent, "%s: link index %d out of range [0, %d)",
				ev.Type, *ev.ID, len(e.ribbons))
		}
	}
	return e.machine.Apply(ev)
}

// State returns a snapshot of the interaction state.
func (e *Engine) State() interact.State { return e.machine.Snapshot() }

// Scene composes the current render contract.
func (e *Engine) Scene() Scene {
	return Compose(e.ds, e.layout, e.ribbons, e.machine.Snapshot())
}

// Dataset returns the current dataset.
func (e *Engine) Dataset() *dataset.Dataset { return e.ds }

// Canvas returns the canvas the engine lays out on.
func (e *Engine) Canvas() layout.Canvas { return e.canvas }

// Layout returns the current node placement.
func (e *Engine) Layout() layout.Layout { return e.layout }

// Ribbons returns a copy of the current ribbons in link order.
func (e *Engine) Ribbons() []ribbon.Ribbon { return slices.Clone(e.ribbons) }
