package styles

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/riskflow/pkg/fonts"
)

// Contrast draws on a dark background with outlined ribbons, for slides
// and dark-mode pages.
type Contrast struct{}

func (Contrast) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString(`  <defs>
    <filter id="node-glow" x="-20%" y="-20%" width="140%" height="140%">
      <feGaussianBlur stdDeviation="2" result="blur"/>
      <feMerge><feMergeNode in="blur"/><feMergeNode in="SourceGraphic"/></feMerge>
    </filter>
  </defs>
`)
}

func (Contrast) RenderBackground(buf *bytes.Buffer, w, h float64) {
	fmt.Fprintf(buf, `  <rect class="background" x="0" y="0" width="%.2f" height="%.2f" fill="#14161a"/>`+"\n", w, h)
}

func (Contrast) RenderRibbon(buf *bytes.Buffer, r Ribbon) {
	renderRibbon(buf, r, "#14161a")
}

func (Contrast) RenderNode(buf *bytes.Buffer, n Node) {
	stroke, width := "#14161a", 1.0
	if n.Border {
		stroke, width = "#f5f5f5", 3.0
	}
	renderNode(buf, n, stroke, width)
}

func (Contrast) RenderLabel(buf *bytes.Buffer, n Node) {
	renderLabel(buf, n, fonts.Sans, "#101010", "#f5f5f5")
}

func (Contrast) RenderLegend(buf *bytes.Buffer, l Legend) {
	renderLegend(buf, l, fonts.Sans, "#f5f5f5", "#444")
}
