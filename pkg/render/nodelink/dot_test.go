package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/riskflow/pkg/dataset"
)

func TestToDOT(t *testing.T) {
	ds := dataset.Sample()
	dot := ToDOT(ds, Options{})

	if !strings.HasPrefix(dot, "digraph riskflow {") {
		t.Fatalf("unexpected header: %q", dot[:30])
	}
	if !strings.Contains(dot, "rankdir=LR;") {
		t.Error("missing rankdir")
	}
	if got := strings.Count(dot, "rank=same;"); got != ds.LayerCount() {
		t.Errorf("rank=same subgraphs = %d, want %d", got, ds.LayerCount())
	}
	if got := strings.Count(dot, " -> "); got != ds.LinkCount() {
		t.Errorf("edges = %d, want %d", got, ds.LinkCount())
	}
	if got := strings.Count(dot, `penwidth="3"`); got != 3 {
		t.Errorf("outcome borders = %d, want 3", got)
	}
	if !strings.Contains(dot, `penwidth=8.00, tooltip="350"`) {
		t.Error("largest link should get the maximum pen width")
	}
}

func TestToDOTDetailed(t *testing.T) {
	nodes := []dataset.Node{
		{ID: 0, Name: "Nocturnal", Layer: 0, RiskScore: 0.2},
		{ID: 1, Name: "High Risk", Layer: 1, RiskScore: 0.8, IsOutcome: true, Count: dataset.IntPtr(42)},
	}
	ds := dataset.MustNew(nodes, []dataset.Link{{Source: 0, Target: 1, Value: 5}})

	dot := ToDOT(ds, Options{Detailed: true})
	for _, want := range []string{
		`label="High\nRisk\nrisk: 0.80 (very_high)\nn = 42"`,
		`fillcolor="#91cf60"`,
		`n0 -> n1`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s\n%s", want, dot)
		}
	}
}

func TestToDOTEmpty(t *testing.T) {
	ds := dataset.MustNew(nil, nil)
	dot := ToDOT(ds, Options{})
	if strings.Contains(dot, "subgraph") || strings.Contains(dot, "->") {
		t.Errorf("empty dataset produced content:\n%s", dot)
	}
}

func TestPenWidth(t *testing.T) {
	if got := penWidth(5, 0); got != minPenWidth {
		t.Errorf("penWidth(5, 0) = %v", got)
	}
	if got := penWidth(10, 10); got != maxPenWidth {
		t.Errorf("penWidth(max) = %v", got)
	}
	if penWidth(1, 10) >= penWidth(2, 10) {
		t.Error("penWidth not increasing")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50">`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("svg without viewBox changed: %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(dataset.Sample(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output is not SVG")
	}
}
