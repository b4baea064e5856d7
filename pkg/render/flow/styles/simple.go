package styles

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/riskflow/pkg/fonts"
)

// Simple is a plain style on a white background. Outcome nodes get a dark
// border and their labels sit to the right of the box.
type Simple struct{}

func (Simple) RenderDefs(*bytes.Buffer) {}

func (Simple) RenderBackground(buf *bytes.Buffer, w, h float64) {
	fmt.Fprintf(buf, `  <rect class="background" x="0" y="0" width="%.2f" height="%.2f" fill="white"/>`+"\n", w, h)
}

func (Simple) RenderRibbon(buf *bytes.Buffer, r Ribbon) {
	renderRibbon(buf, r, "none")
}

func (Simple) RenderNode(buf *bytes.Buffer, n Node) {
	stroke, width := "white", 1.0
	if n.Border {
		stroke, width = "#222", 3.0
	}
	renderNode(buf, n, stroke, width)
}

func (Simple) RenderLabel(buf *bytes.Buffer, n Node) {
	renderLabel(buf, n, fonts.Sans, "#1b1b1b", "#333")
}

func (Simple) RenderLegend(buf *bytes.Buffer, l Legend) {
	renderLegend(buf, l, fonts.Sans, "#333", "#ddd")
}

func renderRibbon(buf *bytes.Buffer, r Ribbon, stroke string) {
	fmt.Fprintf(buf, `  <path id="link-%d" class="link" data-index="%d" data-source="%d" data-target="%d" data-value="%g" d="%s" fill="%s" stroke="%s" opacity="%.2f"/>`+"\n",
		r.Index, r.Index, r.Source, r.Target, r.Value, r.Path, r.Fill, stroke, r.Opacity)
}

func renderNode(buf *bytes.Buffer, n Node, stroke string, strokeWidth float64) {
	class := "node"
	if n.Border {
		class += " outcome"
	}
	if n.Selected {
		class += " selected"
	}
	fmt.Fprintf(buf, `  <rect id="node-%d" class="%s" data-id="%d" data-band="%s" data-risk="%.2f" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="6" ry="6" fill="%s" stroke="%s" stroke-width="%.1f" opacity="%.2f"/>`+"\n",
		n.ID, class, n.ID, n.Band, n.Risk, n.X, n.Y, n.W, n.H, n.Fill, stroke, strokeWidth, n.Opacity)
}

// renderLabel centers ordinary labels inside the box and places outcome
// labels to the right of it, followed by the count.
func renderLabel(buf *bytes.Buffer, n Node, font, inside, outside string) {
	size := FontSize(n)
	if n.Border {
		lines := labelLines(n)
		x := n.X + n.W + outcomeLabelGap
		fmt.Fprintf(buf, `  <text class="node-label" data-node="%d" x="%.2f" y="%.2f" text-anchor="start" font-family="%s" font-size="%.1f" font-weight="bold" fill="%s">`,
			n.ID, x, n.CY(), font, size, outside)
		writeLines(buf, x, n.CY(), size, lines)
		buf.WriteString("</text>\n")
		return
	}
	fmt.Fprintf(buf, `  <text class="node-label" data-node="%d" x="%.2f" y="%.2f" text-anchor="middle" font-family="%s" font-size="%.1f" fill="%s" pointer-events="none">`,
		n.ID, n.CX(), n.CY(), font, size, inside)
	writeLines(buf, n.CX(), n.CY(), size, n.Lines)
	buf.WriteString("</text>\n")
}

// Legend frame geometry. The frame extends LegendInset beyond the anchor
// on the top and left.
const (
	LegendInset     = 8.0
	legendWidth     = 136.0
	legendRowHeight = 20.0
)

// LegendSize returns the outer size of a legend frame with items rows.
func LegendSize(items int) (w, h float64) {
	return legendWidth, 28 + legendRowHeight*float64(items)
}

func renderLegend(buf *bytes.Buffer, l Legend, font, text, frame string) {
	const swatch, row = 14.0, legendRowHeight
	width, height := LegendSize(len(l.Items))
	fmt.Fprintf(buf, `  <g class="legend" transform="translate(%.2f,%.2f)">`+"\n", l.X, l.Y)
	fmt.Fprintf(buf, `    <rect x="%.0f" y="%.0f" width="%.0f" height="%.2f" rx="4" fill="none" stroke="%s"/>`+"\n",
		-LegendInset, -LegendInset, width, height, frame)
	fmt.Fprintf(buf, `    <text x="0" y="8" font-family="%s" font-size="12" font-weight="bold" fill="%s">%s</text>`+"\n",
		font, text, EscapeXML(l.Title))
	for i, it := range l.Items {
		y := 20 + row*float64(i)
		fmt.Fprintf(buf, `    <rect x="0" y="%.2f" width="%.0f" height="%.0f" fill="%s"/>`+"\n", y, swatch, swatch, it.Color)
		fmt.Fprintf(buf, `    <text x="%.0f" y="%.2f" font-family="%s" font-size="11" fill="%s"><title>%s</title>%s</text>`+"\n",
			swatch+6, y+11, font, text, EscapeXML(it.Range), EscapeXML(it.Label))
	}
	buf.WriteString("  </g>\n")
}
