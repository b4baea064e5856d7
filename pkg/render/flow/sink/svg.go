package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/riskflow/pkg/render/flow"
	"github.com/matzehuels/riskflow/pkg/render/flow/interact"
	"github.com/matzehuels/riskflow/pkg/render/flow/styles"
)

const interactionCSS = `
    .node { cursor: pointer; transition: opacity 0.15s ease; }
    .node.selected { stroke-dasharray: 4,2; }
    .link { transition: opacity 0.15s ease; }`

// interactionJS mirrors interact.Machine. The opacity constants are
// substituted from Go so both sides agree.
const interactionJS = `
    (function () {
      var svg = document.currentScript ? document.currentScript.closest('svg') : document.querySelector('svg');
      if (!svg) { return; }
      var nodes = svg.querySelectorAll('.node');
      var links = svg.querySelectorAll('.link');
      var selected = svg.dataset.selected === undefined || svg.dataset.selected === '' ? null : Number(svg.dataset.selected);
      function setNodes(hovered) {
        nodes.forEach(function (n) {
          var id = Number(n.dataset.id);
          n.setAttribute('opacity', hovered === null ? %[1]s : (id === hovered ? %[2]s : %[3]s));
        });
      }
      function select(id) {
        selected = selected === id ? null : id;
        svg.dataset.selected = selected === null ? '' : String(selected);
        nodes.forEach(function (n) { n.classList.toggle('selected', Number(n.dataset.id) === selected); });
        svg.dispatchEvent(new CustomEvent('riskflow:select', { bubbles: true, detail: { id: selected } }));
      }
      nodes.forEach(function (n) {
        var id = Number(n.dataset.id);
        n.addEventListener('mouseenter', function () { setNodes(id); });
        n.addEventListener('mouseleave', function () { setNodes(null); });
        n.addEventListener('click', function () { select(id); });
      });
      links.forEach(function (l) {
        l.addEventListener('mouseenter', function () { l.setAttribute('opacity', %[4]s); });
        l.addEventListener('mouseleave', function () { l.setAttribute('opacity', %[5]s); });
      });
    })();`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style       styles.Style
	interactive bool
	legend      bool
	title       string
}

func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }
func WithInteractive() SVGOption         { return func(r *svgRenderer) { r.interactive = true } }
func WithoutLegend() SVGOption           { return func(r *svgRenderer) { r.legend = false } }
func WithTitle(title string) SVGOption   { return func(r *svgRenderer) { r.title = title } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Simple{}, legend: true}
	for _, opt := range opts {
		opt(&r)
	}
	if r.style == nil {
		r.style = styles.Simple{}
	}
	return r
}

// RenderSVG draws the scene. The current opacities and selection in the
// scene are baked into the output, so a static SVG shows the state the
// scene was composed in.
func RenderSVG(scene flow.Scene, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	w, h := scene.Canvas.Width, scene.Canvas.Height

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f"%s>`+"\n",
		w, h, w, h, selectedAttr(scene))
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", styles.EscapeXML(r.title))
	}

	r.style.RenderDefs(&buf)
	r.style.RenderBackground(&buf, w, h)

	nodes := buildNodes(scene)
	buf.WriteString(`  <g class="links">` + "\n")
	for _, rb := range buildRibbons(scene) {
		r.style.RenderRibbon(&buf, rb)
	}
	buf.WriteString("  </g>\n")
	buf.WriteString(`  <g class="nodes">` + "\n")
	for _, n := range nodes {
		r.style.RenderNode(&buf, n)
	}
	buf.WriteString("  </g>\n")
	buf.WriteString(`  <g class="labels">` + "\n")
	for _, n := range nodes {
		r.style.RenderLabel(&buf, n)
	}
	buf.WriteString("  </g>\n")

	if r.legend && len(scene.Legend) > 0 {
		r.style.RenderLegend(&buf, buildLegend(scene, nodes))
	}
	if r.interactive {
		renderInteraction(&buf)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func selectedAttr(scene flow.Scene) string {
	if scene.Selected == nil {
		return ""
	}
	return fmt.Sprintf(` data-selected="%d"`, *scene.Selected)
}

func renderInteraction(buf *bytes.Buffer) {
	js := fmt.Sprintf(interactionJS,
		jsNum(interact.NodeDefaultOpacity), jsNum(interact.NodeHoverOpacity), jsNum(interact.NodeDimmedOpacity),
		jsNum(interact.LinkHoverOpacity), jsNum(interact.LinkDefaultOpacity))
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", interactionCSS)
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", js)
}

func jsNum(v float64) string { return fmt.Sprintf("%g", v) }

func buildNodes(scene flow.Scene) []styles.Node {
	out := make([]styles.Node, 0, len(scene.Nodes))
	for _, n := range scene.Nodes {
		out = append(out, styles.Node{
			ID:       n.ID,
			Lines:    n.Lines,
			X:        n.X,
			Y:        n.Y,
			W:        n.Width,
			H:        n.Height,
			Fill:     n.Fill,
			Band:     n.Band.String(),
			Risk:     n.RiskScore,
			Border:   n.Border,
			Count:    n.Count,
			Opacity:  n.Opacity,
			Selected: n.Selected,
		})
	}
	return out
}

func buildRibbons(scene flow.Scene) []styles.Ribbon {
	out := make([]styles.Ribbon, 0, len(scene.Links))
	for _, l := range scene.Links {
		out = append(out, styles.Ribbon{
			Index:   l.Index,
			Source:  l.Source,
			Target:  l.Target,
			Value:   l.Value,
			Path:    l.Path,
			Fill:    l.Fill,
			Opacity: l.Opacity,
		})
	}
	return out
}

// legendGap is the clearance between the legend frame and anything drawn
// next to it.
const legendGap = 24.0

// buildLegend places the legend to the right of the widest node or outcome
// label. When the canvas has no room there it moves to the right edge,
// below every node whose extent shares its columns.
func buildLegend(scene flow.Scene, nodes []styles.Node) styles.Legend {
	c := scene.Canvas
	w, _ := styles.LegendSize(len(scene.Legend))

	right := c.Margins.Left
	for _, n := range nodes {
		right = max(right, styles.LabelRight(n))
	}
	left, top := right+legendGap, c.Margins.Top
	if left+w > c.Width {
		left = max(c.Margins.Left, c.Width-w-legendGap/2)
		for _, n := range nodes {
			if n.X < left+w && styles.LabelRight(n) > left {
				top = max(top, n.Y+n.H+legendGap)
			}
		}
	}

	l := styles.Legend{
		X:     left + styles.LegendInset,
		Y:     top + styles.LegendInset,
		Title: "Risk level",
		Items: make([]styles.LegendItem, 0, len(scene.Legend)),
	}
	for _, e := range scene.Legend {
		l.Items = append(l.Items, styles.LegendItem{Label: e.Label, Color: e.Color, Range: e.Range})
	}
	return l
}
