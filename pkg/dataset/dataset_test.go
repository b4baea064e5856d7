package dataset

import (
	"testing"

	"github.com/matzehuels/riskflow/pkg/errors"
)

func threeLayer() ([]Node, []Link) {
	nodes := []Node{
		{ID: 0, Name: "Diurnal", Layer: 0, RiskScore: 0.3},
		{ID: 1, Name: "Few Offspring", Layer: 1, RiskScore: 0.9},
		{ID: 2, Name: "High Risk", Layer: 2, RiskScore: 0.8, IsOutcome: true},
	}
	links := []Link{
		{Source: 0, Target: 1, Value: 100},
		{Source: 1, Target: 2, Value: 40},
	}
	return nodes, links
}

func TestNewValid(t *testing.T) {
	nodes, links := threeLayer()
	ds, err := New(nodes, links)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if ds.NodeCount() != 3 || ds.LinkCount() != 2 {
		t.Errorf("counts = %d nodes, %d links, want 3, 2", ds.NodeCount(), ds.LinkCount())
	}
	if ds.LayerCount() != 3 {
		t.Errorf("LayerCount() = %d, want 3", ds.LayerCount())
	}
	if ds.MaxValue() != 100 {
		t.Errorf("MaxValue() = %v, want 100", ds.MaxValue())
	}
	if len(ds.Warnings()) != 0 {
		t.Errorf("Warnings() = %v, want none", ds.Warnings())
	}
	if n, ok := ds.Node(1); !ok || n.Name != "Few Offspring" {
		t.Errorf("Node(1) = %+v, %v", n, ok)
	}
	if ds.Has(42) {
		t.Error("Has(42) = true, want false")
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name  string
		nodes []Node
		links []Link
		code  errors.Code
	}{
		{
			name:  "duplicate id",
			nodes: []Node{{ID: 1, Name: "A"}, {ID: 1, Name: "B"}},
			code:  errors.ErrCodeInvalidDataset,
		},
		{
			name:  "empty name",
			nodes: []Node{{ID: 1, Name: " "}},
			code:  errors.ErrCodeInvalidDataset,
		},
		{
			name:  "negative layer",
			nodes: []Node{{ID: 1, Name: "A", Layer: -1}},
			code:  errors.ErrCodeInvalidDataset,
		},
		{
			name:  "layer gap",
			nodes: []Node{{ID: 1, Name: "A", Layer: 0}, {ID: 2, Name: "B", Layer: 2}},
			code:  errors.ErrCodeInvalidDataset,
		},
		{
			name:  "unknown source",
			nodes: []Node{{ID: 1, Name: "A"}},
			links: []Link{{Source: 9, Target: 1, Value: 1}},
			code:  errors.ErrCodeUnknownNode,
		},
		{
			name:  "unknown target",
			nodes: []Node{{ID: 1, Name: "A"}},
			links: []Link{{Source: 1, Target: 9, Value: 1}},
			code:  errors.ErrCodeUnknownNode,
		},
		{
			name:  "zero value",
			nodes: []Node{{ID: 1, Name: "A"}, {ID: 2, Name: "B", Layer: 1}},
			links: []Link{{Source: 1, Target: 2, Value: 0}},
			code:  errors.ErrCodeInvalidDataset,
		},
		{
			name:  "negative value",
			nodes: []Node{{ID: 1, Name: "A"}, {ID: 2, Name: "B", Layer: 1}},
			links: []Link{{Source: 1, Target: 2, Value: -3}},
			code:  errors.ErrCodeInvalidDataset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.nodes, tt.links)
			if err == nil {
				t.Fatal("New() error = nil, want error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("New() code = %v, want %v (%v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestNewEmpty(t *testing.T) {
	ds, err := New(nil, nil)
	if err != nil {
		t.Fatalf("New(nil, nil) error = %v", err)
	}
	if ds.NodeCount() != 0 || ds.LayerCount() != 0 || ds.MaxValue() != 0 {
		t.Errorf("empty dataset = %d nodes, %d layers, max %v", ds.NodeCount(), ds.LayerCount(), ds.MaxValue())
	}
}

func TestNonAdjacentLink(t *testing.T) {
	nodes, links := threeLayer()
	links = append(links, Link{Source: 0, Target: 2, Value: 5})

	ds, err := New(nodes, links)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	warnings := ds.Warnings()
	if len(warnings) != 1 || warnings[0].Code != errors.ErrCodeNonAdjacentLink {
		t.Fatalf("Warnings() = %v, want one non-adjacent warning", warnings)
	}

	_, err = New(nodes, links, Strict())
	if !errors.Is(err, errors.ErrCodeNonAdjacentLink) {
		t.Errorf("New(Strict) error = %v, want %s", err, errors.ErrCodeNonAdjacentLink)
	}
}

func TestOrphanMiddleNode(t *testing.T) {
	nodes, links := threeLayer()
	nodes = append(nodes, Node{ID: 3, Name: "Ocean", Layer: 1, RiskScore: 0.5})

	ds, err := New(nodes, links)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if len(ds.Warnings()) != 1 {
		t.Errorf("Warnings() = %v, want one orphan warning", ds.Warnings())
	}

	if _, err := New(nodes, links, Strict()); err == nil {
		t.Error("New(Strict) error = nil, want error for orphan node")
	}
}

func TestLayerPreservesInputOrder(t *testing.T) {
	nodes := []Node{
		{ID: 7, Name: "C", Layer: 0},
		{ID: 3, Name: "A", Layer: 0},
		{ID: 5, Name: "B", Layer: 0},
	}
	ds, err := New(nodes, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	got := ds.Layer(0)
	want := []int{7, 3, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Layer(0) = %v, want %v", got, want)
		}
	}
}

func TestDatasetIsImmutable(t *testing.T) {
	nodes, links := threeLayer()
	nodes[2].Count = IntPtr(10)
	ds := MustNew(nodes, links)

	nodes[0].Name = "changed"
	*nodes[2].Count = 99

	if n, _ := ds.Node(0); n.Name != "Diurnal" {
		t.Errorf("dataset changed with input slice: %q", n.Name)
	}
	if n, _ := ds.Node(2); *n.Count != 10 {
		t.Errorf("dataset count changed with input pointer: %d", *n.Count)
	}

	out := ds.Nodes()
	out[0].Name = "mutated"
	if n, _ := ds.Node(0); n.Name != "Diurnal" {
		t.Error("Nodes() must return a copy")
	}

	*out[2].Count = -1
	if n, _ := ds.Node(2); *n.Count != 10 {
		t.Errorf("count changed through Nodes(): %d", *n.Count)
	}
	n, _ := ds.Node(2)
	*n.Count = -2
	if n, _ := ds.Node(2); *n.Count != 10 {
		t.Errorf("count changed through Node(): %d", *n.Count)
	}
}

func TestSampleCountsAreDetached(t *testing.T) {
	ds := Sample()
	for _, n := range ds.Nodes() {
		if n.Count != nil {
			*n.Count = -1
		}
	}
	for _, n := range ds.Nodes() {
		if n.Count != nil && *n.Count < 0 {
			t.Errorf("node %d count mutated to %d", n.ID, *n.Count)
		}
	}
}

func TestIncomingOutgoing(t *testing.T) {
	ds := MustNew(threeLayer())
	if got := len(ds.Outgoing(0)); got != 1 {
		t.Errorf("Outgoing(0) = %d links, want 1", got)
	}
	if got := len(ds.Incoming(1)); got != 1 {
		t.Errorf("Incoming(1) = %d links, want 1", got)
	}
	if got := len(ds.Incoming(0)); got != 0 {
		t.Errorf("Incoming(0) = %d links, want 0", got)
	}
}

func TestNodeLines(t *testing.T) {
	n := Node{Name: "  Decreasing   Population "}
	lines := n.Lines()
	if len(lines) != 2 || lines[0] != "Decreasing" || lines[1] != "Population" {
		t.Errorf("Lines() = %q", lines)
	}
}

func TestSample(t *testing.T) {
	ds := Sample()
	if ds.LayerCount() != 5 {
		t.Errorf("sample LayerCount() = %d, want 5", ds.LayerCount())
	}
	if len(ds.Warnings()) != 0 {
		t.Errorf("sample has warnings: %v", ds.Warnings())
	}
	for _, id := range ds.Layer(4) {
		n, _ := ds.Node(id)
		if !n.IsOutcome || !n.HasCount() {
			t.Errorf("outcome node %d = %+v, want IsOutcome with count", id, n)
		}
	}
}
