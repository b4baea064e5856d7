package layout

import (
	"testing"

	"github.com/matzehuels/riskflow/pkg/dataset"
)

func crossingDataset(t *testing.T, links ...dataset.Link) *dataset.Dataset {
	t.Helper()
	nodes := []dataset.Node{
		{ID: 0, Name: "A", Layer: 0}, {ID: 1, Name: "B", Layer: 0}, {ID: 2, Name: "C", Layer: 0},
		{ID: 3, Name: "X", Layer: 1}, {ID: 4, Name: "Y", Layer: 1}, {ID: 5, Name: "Z", Layer: 1},
		{ID: 6, Name: "Out", Layer: 2},
	}
	ds, err := dataset.New(nodes, links)
	if err != nil {
		t.Fatalf("dataset.New: %v", err)
	}
	return ds
}

func TestCrossings(t *testing.T) {
	tests := []struct {
		name  string
		links []dataset.Link
		want  int
	}{
		{"none", nil, 0},
		{"parallel", []dataset.Link{{Source: 0, Target: 3, Value: 1}, {Source: 1, Target: 4, Value: 1}, {Source: 2, Target: 5, Value: 1}}, 0},
		{"one cross", []dataset.Link{{Source: 0, Target: 4, Value: 1}, {Source: 1, Target: 3, Value: 1}}, 1},
		{"full reversal", []dataset.Link{{Source: 0, Target: 5, Value: 1}, {Source: 1, Target: 4, Value: 1}, {Source: 2, Target: 3, Value: 1}}, 3},
		{"shared source", []dataset.Link{{Source: 0, Target: 3, Value: 1}, {Source: 0, Target: 5, Value: 1}}, 0},
		{"shared target", []dataset.Link{{Source: 0, Target: 4, Value: 1}, {Source: 2, Target: 4, Value: 1}}, 0},
		{"fan", []dataset.Link{{Source: 0, Target: 5, Value: 1}, {Source: 1, Target: 3, Value: 1}, {Source: 2, Target: 4, Value: 1}}, 2},
		{"second layer pair", []dataset.Link{{Source: 3, Target: 6, Value: 1}, {Source: 5, Target: 6, Value: 1}}, 0},
		{"skip link ignored", []dataset.Link{{Source: 0, Target: 6, Value: 1}, {Source: 1, Target: 3, Value: 1}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Crossings(crossingDataset(t, tt.links...)); got != tt.want {
				t.Errorf("Crossings() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCrossingsNil(t *testing.T) {
	if got := Crossings(nil); got != 0 {
		t.Errorf("Crossings(nil) = %d", got)
	}
}

func TestCrossingsMatchesPairwise(t *testing.T) {
	ds := dataset.Sample()
	pos := map[int]int{}
	for l := range ds.LayerCount() {
		for i, id := range ds.Layer(l) {
			pos[id] = i
		}
	}
	links := ds.Links()
	want := 0
	for i, a := range links {
		for _, b := range links[i+1:] {
			sa, _ := ds.Node(a.Source)
			sb, _ := ds.Node(b.Source)
			if sa.Layer != sb.Layer {
				continue
			}
			du, dv := pos[a.Source]-pos[b.Source], pos[a.Target]-pos[b.Target]
			if du*dv < 0 {
				want++
			}
		}
	}
	if got := Crossings(ds); got != want {
		t.Errorf("Crossings(sample) = %d, pairwise count = %d", got, want)
	}
}
