package sink

import (
	"encoding/json"

	"github.com/matzehuels/riskflow/pkg/errors"
	"github.com/matzehuels/riskflow/pkg/render/flow"
	"github.com/matzehuels/riskflow/pkg/render/flow/colors"
)

// SceneVersion is written to every JSON document and checked by [ParseJSON].
const SceneVersion = 1

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style string
}

// WithJSONStyle records the style name in the output so a later
// visualize step can render with the same look.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// Document is the JSON form of a scene.
type Document struct {
	Version int        `json:"version"`
	Style   string     `json:"style,omitempty"`
	Scene   flow.Scene `json:"scene"`
}

// RenderJSON writes the scene as an indented JSON [Document].
func RenderJSON(scene flow.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	doc := Document{Version: SceneVersion, Style: r.style, Scene: scene}
	if doc.Scene.Nodes == nil {
		doc.Scene.Nodes = []flow.SceneNode{}
	}
	if doc.Scene.Links == nil {
		doc.Scene.Links = []flow.SceneLink{}
	}
	return json.MarshalIndent(doc, "", "  ")
}

// ParseJSON reads a document written by [RenderJSON]. The canvas is
// validated, links must reference nodes present in the scene, and every
// fill must be a "#rrggbb" color.
func ParseJSON(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode scene")
	}
	if doc.Version != SceneVersion {
		return Document{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported scene version %d", doc.Version)
	}
	if err := doc.Scene.Canvas.Validate(); err != nil {
		return Document{}, err
	}
	ids := make(map[int]bool, len(doc.Scene.Nodes))
	for _, n := range doc.Scene.Nodes {
		ids[n.ID] = true
	}
	for _, l := range doc.Scene.Links {
		if !ids[l.Source] || !ids[l.Target] {
			return Document{}, errors.New(errors.ErrCodeUnknownNode, "link %d references a node missing from the scene", l.Index)
		}
		if _, err := colors.ParseHex(l.Fill); err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "link %d", l.Index)
		}
	}
	for _, n := range doc.Scene.Nodes {
		if _, err := colors.ParseHex(n.Fill); err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "node %d", n.ID)
		}
	}
	return doc, nil
}
