package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/riskflow/internal/config"
	"github.com/matzehuels/riskflow/pkg/errors"
	"github.com/matzehuels/riskflow/pkg/render/flow/sink"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"svg"}},
		{"svg", []string{"svg"}},
		{"svg,pdf,png", []string{"svg", "pdf", "png"}},
		{" SVG , Json ", []string{"svg", "json"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "", "sample"},
		{"", "data/animals.yaml", "data/animals"},
		{"out/diagram.svg", "animals.json", "out/diagram"},
		{"out/diagram.dot", "", "out/diagram"},
		{"out/diagram", "", "out/diagram"},
		{"report.v2", "", "report.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestArtifactPaths(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		input   string
		output  string
		want    map[string]string
		wantErr errors.Code
	}{
		{
			name:    "single format uses output verbatim",
			formats: []string{"png"},
			output:  "figure",
			want:    map[string]string{"png": "figure"},
		},
		{
			name:    "multiple formats share a base",
			formats: []string{"svg", "json"},
			input:   "animals.toml",
			want:    map[string]string{"svg": "animals.svg", "json": "animals.json"},
		},
		{
			name:    "output extension is stripped",
			formats: []string{"svg", "pdf"},
			output:  "out/flow.svg",
			want:    map[string]string{"svg": "out/flow.svg", "pdf": "out/flow.pdf"},
		},
		{
			name:    "duplicate format",
			formats: []string{"svg", "svg"},
			wantErr: errors.ErrCodeInvalidFormat,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := artifactPaths(tt.formats, tt.input, tt.output)
			if tt.wantErr != "" {
				if errors.GetCode(err) != tt.wantErr {
					t.Fatalf("error = %v, want code %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("artifactPaths: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("paths = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "nested", "diagram")

	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"svg": []byte("<svg/>"), "json": []byte("{}")},
		formats:   []string{"svg", "json"},
		output:    base,
	})
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}
	for ext, want := range map[string]string{"svg": "<svg/>", "json": "{}"} {
		data, err := os.ReadFile(base + "." + ext)
		if err != nil {
			t.Fatalf("read %s: %v", ext, err)
		}
		if string(data) != want {
			t.Errorf("%s = %q, want %q", ext, data, want)
		}
	}

	err = writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{},
		formats:   []string{"pdf"},
		output:    filepath.Join(dir, "missing.pdf"),
	})
	if errors.GetCode(err) != errors.ErrCodeInternal {
		t.Errorf("missing artifact error = %v, want internal", err)
	}
}

func TestDiagramFlagsInput(t *testing.T) {
	tests := []struct {
		name    string
		sample  bool
		args    []string
		want    string
		wantErr error
	}{
		{"path", false, []string{"animals.json"}, "animals.json", nil},
		{"sample", true, nil, "", nil},
		{"neither", false, nil, "", errNoInput},
		{"both", true, []string{"animals.json"}, "", errInputConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := diagramFlags{sample: tt.sample}
			got, err := f.input(tt.args)
			if err != tt.wantErr {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("input = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDiagramFlagsOptions(t *testing.T) {
	var f diagramFlags
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	f.addDatasetFlags(cmd.Flags())
	f.addLayoutFlags(cmd.Flags())
	f.addStyleFlags(cmd.Flags())
	f.addStateFlags(cmd.Flags())

	if err := cmd.ParseFlags([]string{"--width", "900", "--style", "contrast", "--select", "0"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Canvas.Height = 500
	cfg.Layout.Gap = 12
	cfg.Render.Legend = false
	opts := f.options(cmd, cfg)

	if opts.Canvas.Width != 900 {
		t.Errorf("width = %v, want flag value 900", opts.Canvas.Width)
	}
	if opts.Canvas.Height != 500 {
		t.Errorf("height = %v, want config value 500", opts.Canvas.Height)
	}
	if opts.Gap != 12 {
		t.Errorf("gap = %v, want config value 12", opts.Gap)
	}
	if !opts.NoLegend {
		t.Error("legend disabled in config should survive unset --no-legend")
	}
	if opts.Style != "contrast" {
		t.Errorf("style = %q, want contrast", opts.Style)
	}
	if opts.Hover != nil {
		t.Errorf("hover = %v, want unset", *opts.Hover)
	}
	if opts.Select == nil || *opts.Select != 0 {
		t.Errorf("select = %v, want node 0", opts.Select)
	}
}

// runCLI executes the root command with an isolated config file.
func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("RISKFLOW_CONFIG", "")
	var logs bytes.Buffer
	root := New(&logs, LogInfo).RootCommand()
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "config.yaml")}, args...))
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.Execute()
}

func TestRenderCommandJSON(t *testing.T) {
	out := filepath.Join(t.TempDir(), "scene.json")
	if err := runCLI(t, "render", "--sample", "--no-cache", "-f", "json", "--hover", "5", "-o", out); err != nil {
		t.Fatalf("render: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := sink.ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if len(doc.Scene.Nodes) != 15 || len(doc.Scene.Links) != 31 {
		t.Errorf("scene has %d nodes, %d links; want 15, 31", len(doc.Scene.Nodes), len(doc.Scene.Links))
	}
	if doc.Scene.Hovered == nil || *doc.Scene.Hovered != 5 {
		t.Errorf("hovered = %v, want 5", doc.Scene.Hovered)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want errors.Code
	}{
		{"no input", []string{"render", "--no-cache"}, errors.ErrCodeInvalidInput},
		{"unknown style", []string{"render", "--sample", "--no-cache", "--style", "neon"}, errors.ErrCodeInvalidStyle},
		{"unknown node", []string{"render", "--sample", "--no-cache", "-f", "json", "--select", "99"}, errors.ErrCodeUnknownNode},
		{"missing file", []string{"render", filepath.Join(os.TempDir(), "riskflow-missing.json"), "--no-cache"}, errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runCLI(t, tt.args...)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want code %s", err, tt.want)
			}
		})
	}
}

func TestLayoutThenVisualize(t *testing.T) {
	dir := t.TempDir()
	scene := filepath.Join(dir, "sample.scene.json")
	if err := runCLI(t, "layout", "--sample", "--no-cache", "--style", "contrast", "-o", scene); err != nil {
		t.Fatalf("layout: %v", err)
	}

	var doc struct {
		Style string `json:"style"`
	}
	data, err := os.ReadFile(scene)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Style != "contrast" {
		t.Errorf("recorded style = %q, want contrast", doc.Style)
	}

	svg := filepath.Join(dir, "out.svg")
	if err := runCLI(t, "visualize", scene, "-o", svg); err != nil {
		t.Fatalf("visualize: %v", err)
	}
	out, err := os.ReadFile(svg)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(out, []byte("<svg")) {
		t.Error("visualize output is not SVG")
	}
}

func TestRenderExampleDatasets(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "examples", "*.*"))
	if err != nil || len(files) == 0 {
		t.Fatalf("no example datasets found: %v", err)
	}
	for _, path := range files {
		t.Run(filepath.Base(path), func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "scene.json")
			if err := runCLI(t, "render", path, "--no-cache", "--strict", "-f", "json", "-o", out); err != nil {
				t.Fatalf("render %s: %v", path, err)
			}
		})
	}
}
