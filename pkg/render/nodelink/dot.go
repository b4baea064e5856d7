package nodelink

import (
	"fmt"
	"strings"

	"github.com/matzehuels/riskflow/pkg/dataset"
	"github.com/matzehuels/riskflow/pkg/fonts"
	"github.com/matzehuels/riskflow/pkg/render/flow/colors"
)

// Edge pen widths in points, scaled by link value.
const (
	minPenWidth = 1.0
	maxPenWidth = 8.0
)

// Options configures [ToDOT].
type Options struct {
	// Detailed appends risk score, band and count to each label.
	Detailed bool
}

// graph accumulates DOT source line by line.
type graph struct {
	sb     strings.Builder
	indent int
}

func (g *graph) line(format string, args ...any) {
	g.sb.WriteString(strings.Repeat("  ", g.indent))
	fmt.Fprintf(&g.sb, format, args...)
	g.sb.WriteByte('\n')
}

func (g *graph) open(format string, args ...any) {
	g.line(format+" {", args...)
	g.indent++
}

func (g *graph) close() {
	g.indent--
	g.line("}")
}

// ToDOT describes ds as a left-to-right Graphviz digraph with one rank per
// layer, so layers line up as columns.
func ToDOT(ds *dataset.Dataset, opts Options) string {
	var g graph
	g.open("digraph riskflow")
	g.line("rankdir=LR;")
	g.line(`bgcolor="transparent";`)
	g.line(`node [shape=box, style="rounded,filled", fontname=%q, fontsize=14, margin="0.2,0.1"];`,
		fonts.Primary(fonts.Sans))
	g.line("edge [arrowsize=0.6];")
	g.line("ranksep=1.2;")
	g.line("nodesep=0.25;")

	for layer := range ds.LayerCount() {
		g.open("subgraph layer_%d", layer)
		g.line("rank=same;")
		for _, id := range ds.Layer(layer) {
			n, _ := ds.Node(id)
			g.line("n%d [%s];", n.ID, nodeAttrs(n, opts.Detailed))
		}
		g.close()
	}

	peak := ds.MaxValue()
	for _, l := range ds.Links() {
		g.line(`n%d -> n%d [penwidth=%.2f, tooltip="%g"];`, l.Source, l.Target, penWidth(l.Value, peak), l.Value)
	}
	g.close()
	return g.sb.String()
}

func nodeAttrs(n dataset.Node, detailed bool) string {
	band, rgb := colors.ColorFor(n.RiskScore)
	lines := n.Lines()
	if detailed {
		lines = append(lines, fmt.Sprintf("risk: %.2f (%s)", n.RiskScore, band))
		if n.Count != nil {
			lines = append(lines, fmt.Sprintf("n = %d", *n.Count))
		}
	}

	attrs := fmt.Sprintf("label=%q, fillcolor=%q", strings.Join(lines, "\n"), rgb.Hex())
	if n.IsOutcome {
		attrs += `, penwidth="3", color="#222222"`
	}
	return attrs
}

// penWidth maps value onto [minPenWidth, maxPenWidth] relative to peak.
func penWidth(value, peak float64) float64 {
	if peak <= 0 {
		return minPenWidth
	}
	return minPenWidth + (maxPenWidth-minPenWidth)*value/peak
}
