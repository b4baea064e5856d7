// Package styles draws flow-diagram primitives as SVG fragments.
//
// A [Style] only decides appearance. Positions, colors and opacities are
// computed upstream and arrive in [Node], [Ribbon] and [Legend] values.
package styles

import (
	"bytes"
	"slices"
	"sort"

	"github.com/matzehuels/riskflow/pkg/errors"
)

// Style defines the visual appearance of a flow diagram.
type Style interface {
	// RenderDefs writes SVG <defs> content (filters, patterns, gradients).
	RenderDefs(buf *bytes.Buffer)
	// RenderBackground writes the canvas background.
	RenderBackground(buf *bytes.Buffer, width, height float64)
	// RenderRibbon writes one link ribbon.
	RenderRibbon(buf *bytes.Buffer, r Ribbon)
	// RenderNode writes a node box.
	RenderNode(buf *bytes.Buffer, n Node)
	// RenderLabel writes a node's label lines and count.
	RenderLabel(buf *bytes.Buffer, n Node)
	// RenderLegend writes the risk band legend.
	RenderLegend(buf *bytes.Buffer, l Legend)
}

// Node contains everything needed to draw one node.
type Node struct {
	ID         int      // Node identifier
	Lines      []string // Label, one word per line
	X, Y, W, H float64  // Box position and size
	Fill       string   // Hex fill color
	Band       string   // Risk band name
	Risk       float64  // Risk score
	Border     bool     // Outcome node border
	Count      *int     // Optional population count
	Opacity    float64  // Current opacity
	Selected   bool     // Currently selected
}

// CX returns the horizontal center.
func (n Node) CX() float64 { return n.X + n.W/2 }

// CY returns the vertical center.
func (n Node) CY() float64 { return n.Y + n.H/2 }

// Ribbon contains everything needed to draw one link.
type Ribbon struct {
	Index          int     // Link index
	Source, Target int     // Node ids
	Value          float64 // Flow value
	Path           string  // Closed SVG path data
	Fill           string  // Hex fill color
	Opacity        float64 // Current opacity
}

// LegendItem is one legend row.
type LegendItem struct {
	Label, Color, Range string
}

// Legend is the risk band key, anchored at its top-left corner.
type Legend struct {
	X, Y  float64
	Title string
	Items []LegendItem
}

var registry = map[string]Style{
	"simple":    Simple{},
	"contrast":  Contrast{},
	"handdrawn": Handdrawn{},
}

// Names lists the registered style names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the style registered under name. An empty name selects
// the simple style.
func Lookup(name string) (Style, error) {
	if name == "" {
		return Simple{}, nil
	}
	if s, ok := registry[name]; ok {
		return s, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown style %q (available: %v)", name, Names())
}

// IsValid reports whether name is a registered style.
func IsValid(name string) bool { return name == "" || slices.Contains(Names(), name) }
