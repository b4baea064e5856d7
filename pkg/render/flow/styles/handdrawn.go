package styles

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/riskflow/pkg/fonts"
)

// sketchSeed fixes the turbulence pattern so identical scenes produce
// identical SVG.
const sketchSeed = 7

// Handdrawn is a sketchy style on warm paper: displacement filters make
// box and ribbon edges wobble, and labels use a handwriting font.
type Handdrawn struct{}

func (Handdrawn) RenderDefs(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `  <defs>
    <filter id="sketch" x="-5%%" y="-5%%" width="110%%" height="110%%">
      <feTurbulence type="fractalNoise" baseFrequency="0.03" numOctaves="2" seed="%d" result="noise"/>
      <feDisplacementMap in="SourceGraphic" in2="noise" scale="3" xChannelSelector="R" yChannelSelector="G"/>
    </filter>
    <filter id="paper">
      <feTurbulence type="fractalNoise" baseFrequency="0.8" numOctaves="1" seed="%d" result="grain"/>
      <feColorMatrix in="grain" type="saturate" values="0" result="gray"/>
      <feComponentTransfer in="gray" result="faint"><feFuncA type="linear" slope="0.06"/></feComponentTransfer>
      <feBlend in="SourceGraphic" in2="faint" mode="multiply"/>
    </filter>
  </defs>
`, sketchSeed, sketchSeed)
}

func (Handdrawn) RenderBackground(buf *bytes.Buffer, w, h float64) {
	fmt.Fprintf(buf, `  <rect class="background" x="0" y="0" width="%.2f" height="%.2f" fill="#fbf7ee" filter="url(#paper)"/>`+"\n", w, h)
}

func (Handdrawn) RenderRibbon(buf *bytes.Buffer, r Ribbon) {
	fmt.Fprintf(buf, `  <path id="link-%d" class="link" data-index="%d" data-source="%d" data-target="%d" data-value="%g" d="%s" fill="%s" stroke="#3a3a3a" stroke-width="0.6" opacity="%.2f" filter="url(#sketch)"/>`+"\n",
		r.Index, r.Index, r.Source, r.Target, r.Value, r.Path, r.Fill, r.Opacity)
}

// RenderNode draws the box twice: a filled, wobbling box and a slightly
// offset outline, like a pen going over a pencil sketch.
func (Handdrawn) RenderNode(buf *bytes.Buffer, n Node) {
	width := 1.4
	if n.Border {
		width = 3.0
	}
	renderNode(buf, n, "#2b2b2b", width)
	fmt.Fprintf(buf, `  <rect class="sketch" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="8" ry="8" fill="none" stroke="#2b2b2b" stroke-width="0.8" opacity="%.2f" filter="url(#sketch)" pointer-events="none"/>`+"\n",
		n.X+1.5, n.Y-1, n.W-2, n.H+1.5, n.Opacity)
}

func (Handdrawn) RenderLabel(buf *bytes.Buffer, n Node) {
	renderLabel(buf, n, fonts.Script, "#1f1f1f", "#2b2b2b")
}

func (Handdrawn) RenderLegend(buf *bytes.Buffer, l Legend) {
	renderLegend(buf, l, fonts.Script, "#2b2b2b", "#8a8070")
}
