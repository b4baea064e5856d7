package flow

import (
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/riskflow/pkg/dataset"
	"github.com/matzehuels/riskflow/pkg/errors"
	"github.com/matzehuels/riskflow/pkg/render/flow/colors"
	"github.com/matzehuels/riskflow/pkg/render/flow/interact"
	"github.com/matzehuels/riskflow/pkg/render/flow/layout"
	"github.com/matzehuels/riskflow/pkg/render/flow/ribbon"
)

func e2eDataset(t *testing.T, values ...float64) *dataset.Dataset {
	t.Helper()
	nodes := []dataset.Node{
		{ID: 0, Name: "Diurnal", Layer: 0, RiskScore: 0.3},
		{ID: 1, Name: "Few Offspring", Layer: 1, RiskScore: 0.9},
		{ID: 2, Name: "High Risk", Layer: 2, RiskScore: 0.8, IsOutcome: true, Count: dataset.IntPtr(40)},
	}
	var links []dataset.Link
	for _, v := range values {
		links = append(links, dataset.Link{Source: 0, Target: 1, Value: v})
	}
	ds, err := dataset.New(nodes, links)
	if err != nil {
		t.Fatalf("dataset.New() error = %v", err)
	}
	return ds
}

func TestEndToEndSingleLink(t *testing.T) {
	eng, err := New(e2eDataset(t, 100), layout.DefaultCanvas())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	scene := eng.Scene()
	if len(scene.Links) != 1 {
		t.Fatalf("scene has %d links, want 1", len(scene.Links))
	}
	link := scene.Links[0]
	if link.Thickness != ribbon.DefaultMaxThickness {
		t.Errorf("thickness = %v, want %v", link.Thickness, ribbon.DefaultMaxThickness)
	}
	band, rgb := colors.ColorFor(0.6)
	if link.Band != band || link.Band != colors.High || link.Fill != rgb.Hex() {
		t.Errorf("link band/fill = %v/%s, want high/%s", link.Band, link.Fill, rgb.Hex())
	}
	if link.Opacity != interact.LinkDefaultOpacity {
		t.Errorf("link opacity = %v", link.Opacity)
	}
}

func TestEndToEndThicknessRatio(t *testing.T) {
	eng, err := New(e2eDataset(t, 10, 100), layout.DefaultCanvas())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	links := eng.Scene().Links
	a, b := links[0].Thickness, links[1].Thickness
	if a < ribbon.DefaultMinThickness || b < ribbon.DefaultMinThickness {
		t.Errorf("thickness below minimum: %v %v", a, b)
	}
	if math.Abs(a/b-0.1) > 1e-9 {
		t.Errorf("thickness ratio = %v, want 0.1", a/b)
	}
}

func TestSceneNodes(t *testing.T) {
	eng, err := New(e2eDataset(t, 100), layout.DefaultCanvas())
	if err != nil {
		t.Fatal(err)
	}
	scene := eng.Scene()
	if len(scene.Nodes) != 3 {
		t.Fatalf("scene has %d nodes", len(scene.Nodes))
	}

	n, ok := scene.Node(1)
	if !ok {
		t.Fatal("node 1 missing from scene")
	}
	if !reflect.DeepEqual(n.Lines, []string{"Few", "Offspring"}) {
		t.Errorf("Lines = %q", n.Lines)
	}
	if n.Band != colors.VeryHigh || n.Border {
		t.Errorf("node 1 band=%v border=%v", n.Band, n.Border)
	}
	if n.Opacity != interact.NodeDefaultOpacity {
		t.Errorf("opacity = %v", n.Opacity)
	}

	outcome, _ := scene.Node(2)
	if !outcome.Border || outcome.Count == nil || *outcome.Count != 40 {
		t.Errorf("outcome node = %+v", outcome)
	}
	if len(scene.Legend) != 5 {
		t.Errorf("legend has %d entries", len(scene.Legend))
	}
}

func TestDispatch(t *testing.T) {
	eng, err := New(e2eDataset(t, 100), layout.DefaultCanvas())
	if err != nil {
		t.Fatal(err)
	}
	var selections []int
	eng.OnSelect(func(id int, ok bool) {
		if ok {
			selections = append(selections, id)
		}
	})

	for _, ev := range []interact.Event{interact.EnterNode(1), interact.Click(2), interact.EnterLink(0)} {
		if err := eng.Dispatch(ev); err != nil {
			t.Fatalf("Dispatch(%+v) error = %v", ev, err)
		}
	}
	scene := eng.Scene()
	if scene.Hovered == nil || *scene.Hovered != 1 {
		t.Errorf("Hovered = %v, want 1", scene.Hovered)
	}
	if scene.Selected == nil || *scene.Selected != 2 {
		t.Errorf("Selected = %v, want 2", scene.Selected)
	}
	if n, _ := scene.Node(0); n.Opacity != interact.NodeDimmedOpacity {
		t.Errorf("node 0 opacity = %v, want dimmed", n.Opacity)
	}
	if n, _ := scene.Node(1); n.Opacity != interact.NodeHoverOpacity || !n.Hovered {
		t.Errorf("node 1 = %+v, want hovered", n)
	}
	if n, _ := scene.Node(2); !n.Selected || n.Opacity != interact.NodeDimmedOpacity {
		t.Errorf("node 2 = %+v, want selected and dimmed", n)
	}
	if !scene.Links[0].Hovered || scene.Links[0].Opacity != interact.LinkHoverOpacity {
		t.Errorf("link 0 = %+v, want hovered", scene.Links[0])
	}
	if !reflect.DeepEqual(selections, []int{2}) {
		t.Errorf("selections = %v, want [2]", selections)
	}
}

func TestDispatchRejectsUnknownTargets(t *testing.T) {
	eng, err := New(e2eDataset(t, 100), layout.DefaultCanvas())
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		ev   interact.Event
		code errors.Code
	}{
		{interact.EnterNode(42), errors.ErrCodeUnknownNode},
		{interact.Click(-1), errors.ErrCodeUnknownNode},
		{interact.Select(7), errors.ErrCodeUnknownNode},
		{interact.EnterLink(1), errors.ErrCodeInvalidEvent},
		{interact.LeaveLink(-1), errors.ErrCodeInvalidEvent},
		{interact.Event{Type: "zoom"}, errors.ErrCodeInvalidEvent},
	}
	for _, tt := range tests {
		if err := eng.Dispatch(tt.ev); !errors.Is(err, tt.code) {
			t.Errorf("Dispatch(%+v) error = %v, want %s", tt.ev, err, tt.code)
		}
	}
	if s := eng.State(); s.Hovered != nil || s.Selected != nil {
		t.Errorf("rejected events changed state: %+v", s)
	}
}

func TestGeometryInvariantUnderInteraction(t *testing.T) {
	eng, err := New(dataset.Sample(), layout.DefaultCanvas())
	if err != nil {
		t.Fatal(err)
	}
	before := eng.Scene()
	_ = eng.Dispatch(interact.EnterNode(5))
	_ = eng.Dispatch(interact.Click(12))
	_ = eng.Dispatch(interact.EnterLink(3))
	after := eng.Scene()

	for i := range before.Nodes {
		if before.Nodes[i].Position() != after.Nodes[i].Position() {
			t.Errorf("node %d moved under interaction", before.Nodes[i].ID)
		}
	}
	for i := range before.Links {
		if before.Links[i].Path != after.Links[i].Path {
			t.Errorf("link %d path changed under interaction", i)
		}
	}
}

func TestSetDataset(t *testing.T) {
	eng, err := New(dataset.Sample(), layout.DefaultCanvas())
	if err != nil {
		t.Fatal(err)
	}
	var cleared bool
	eng.OnSelect(func(_ int, ok bool) { cleared = !ok })

	_ = eng.Dispatch(interact.EnterNode(1))
	_ = eng.Dispatch(interact.Click(1))
	_ = eng.Dispatch(interact.EnterLink(0))

	// node 1 exists in the new dataset: selection kept, hover cleared
	if err := eng.SetDataset(e2eDataset(t, 5)); err != nil {
		t.Fatalf("SetDataset() error = %v", err)
	}
	s := eng.State()
	if s.Hovered != nil || len(s.Links) != 0 {
		t.Errorf("hover not cleared: %+v", s)
	}
	if id, ok := s.SelectedID(); !ok || id != 1 {
		t.Errorf("selection = %d, %v; want 1 kept", id, ok)
	}
	if cleared {
		t.Error("selection sink fired for a kept selection")
	}

	// node 12 does not exist in the small dataset
	_ = eng.SetDataset(dataset.Sample())
	_ = eng.Dispatch(interact.Click(12))
	if err := eng.SetDataset(e2eDataset(t, 5)); err != nil {
		t.Fatal(err)
	}
	if _, ok := eng.State().SelectedID(); ok {
		t.Error("selection of a removed node survived SetDataset")
	}
	if !cleared {
		t.Error("selection sink not notified of cleared selection")
	}
}

func TestNewErrors(t *testing.T) {
	_, err := New(dataset.Sample(), layout.Canvas{Width: 100, Height: 100})
	if err != nil {
		t.Fatalf("canvas without margins: %v", err)
	}
	_, err = New(dataset.Sample(), layout.Canvas{Width: 100, Height: 100, Margins: layout.Margins{Left: 60, Right: 60}})
	if !errors.Is(err, errors.ErrCodeDegenerateCanvas) {
		t.Errorf("New() error = %v, want %s", err, errors.ErrCodeDegenerateCanvas)
	}
}

func TestEmptyDataset(t *testing.T) {
	eng, err := New(nil, layout.DefaultCanvas())
	if err != nil {
		t.Fatalf("New(nil) error = %v", err)
	}
	scene := eng.Scene()
	if len(scene.Nodes) != 0 || len(scene.Links) != 0 {
		t.Errorf("empty scene = %+v", scene)
	}
	if scene.Canvas != layout.DefaultCanvas() {
		t.Errorf("canvas = %+v", scene.Canvas)
	}
}

func TestComposeIsPure(t *testing.T) {
	ds := dataset.Sample()
	l, err := layout.Build(ds.Nodes(), layout.DefaultCanvas())
	if err != nil {
		t.Fatal(err)
	}
	ribbons, err := ribbon.BuildAll(ds, l)
	if err != nil {
		t.Fatal(err)
	}
	hover := 3
	state := interact.State{Hovered: &hover, Links: []int{2}}

	a := Compose(ds, l, ribbons, state)
	b := Compose(ds, l, ribbons, state)
	if !reflect.DeepEqual(a, b) {
		t.Error("Compose is not deterministic")
	}
	*a.Hovered = 7
	if hover != 3 {
		t.Error("Compose aliased the state's hovered id")
	}
}

func TestFork(t *testing.T) {
	base, err := New(dataset.Sample(), layout.DefaultCanvas())
	if err != nil {
		t.Fatal(err)
	}
	hovered, selected, missing := 2, 13, 99
	fork := base.Fork(interact.State{Hovered: &hovered, Selected: &selected, Links: []int{0, 500}})

	s := fork.State()
	if id, _ := s.HoveredID(); id != 2 {
		t.Errorf("hovered = %v", s.Hovered)
	}
	if id, _ := s.SelectedID(); id != 13 {
		t.Errorf("selected = %v", s.Selected)
	}
	if !reflect.DeepEqual(s.Links, []int{0}) {
		t.Errorf("links = %v, want out-of-range index dropped", s.Links)
	}
	if err := fork.Dispatch(interact.Click(0)); err != nil {
		t.Fatal(err)
	}
	if !base.State().Idle() || base.State().Selected != nil {
		t.Error("dispatch on fork changed the base engine")
	}
	if !reflect.DeepEqual(fork.Layout(), base.Layout()) {
		t.Error("fork geometry differs from base")
	}

	stale := base.Fork(interact.State{Hovered: &missing, Selected: &missing})
	if st := stale.State(); st.Hovered != nil || st.Selected != nil {
		t.Errorf("unknown ids kept: %+v", st)
	}
}
