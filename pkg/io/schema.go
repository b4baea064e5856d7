package io

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/riskflow/pkg/dataset"
	"github.com/matzehuels/riskflow/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type document struct {
	Nodes []nodeRecord `json:"nodes" toml:"nodes" yaml:"nodes" validate:"dive"`
	Links []linkRecord `json:"links" toml:"links" yaml:"links" validate:"dive"`
}

// Pointer fields distinguish a missing value from an explicit zero.
type nodeRecord struct {
	ID        *int     `json:"id" toml:"id" yaml:"id" validate:"required"`
	Name      string   `json:"name" toml:"name" yaml:"name" validate:"required,max=256"`
	Layer     int      `json:"layer" toml:"layer" yaml:"layer" validate:"gte=0"`
	Category  string   `json:"category,omitempty" toml:"category,omitempty" yaml:"category,omitempty" validate:"max=64"`
	RiskScore *float64 `json:"risk_score" toml:"risk_score" yaml:"risk_score" validate:"required"`
	IsOutcome bool     `json:"is_outcome,omitempty" toml:"is_outcome,omitempty" yaml:"is_outcome,omitempty"`
	Count     *int     `json:"count,omitempty" toml:"count,omitempty" yaml:"count,omitempty" validate:"omitempty,gte=0"`
}

type linkRecord struct {
	Source *int    `json:"source" toml:"source" yaml:"source" validate:"required"`
	Target *int    `json:"target" toml:"target" yaml:"target" validate:"required"`
	Value  float64 `json:"value" toml:"value" yaml:"value" validate:"gt=0"`
}

func (d *document) check() error {
	if err := validate.Struct(d); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func (d *document) toDataset(opts ...dataset.Option) (*dataset.Dataset, error) {
	nodes := make([]dataset.Node, len(d.Nodes))
	for i, n := range d.Nodes {
		nodes[i] = dataset.Node{
			ID:        *n.ID,
			Name:      n.Name,
			Layer:     n.Layer,
			Category:  dataset.Category(n.Category),
			RiskScore: *n.RiskScore,
			IsOutcome: n.IsOutcome,
			Count:     n.Count,
		}
	}
	links := make([]dataset.Link, len(d.Links))
	for i, l := range d.Links {
		links[i] = dataset.Link{Source: *l.Source, Target: *l.Target, Value: l.Value}
	}
	return dataset.New(nodes, links, opts...)
}

func fromDataset(ds *dataset.Dataset) document {
	doc := document{
		Nodes: make([]nodeRecord, 0, ds.NodeCount()),
		Links: make([]linkRecord, 0, ds.LinkCount()),
	}
	for _, n := range ds.Nodes() {
		id, risk := n.ID, n.RiskScore
		doc.Nodes = append(doc.Nodes, nodeRecord{
			ID:        &id,
			Name:      n.Name,
			Layer:     n.Layer,
			Category:  string(n.Category),
			RiskScore: &risk,
			IsOutcome: n.IsOutcome,
			Count:     n.Count,
		})
	}
	for _, l := range ds.Links() {
		src, dst := l.Source, l.Target
		doc.Links = append(doc.Links, linkRecord{Source: &src, Target: &dst, Value: l.Value})
	}
	return doc
}

// formatValidationError turns validator errors into a single coded error
// listing every failing field by its document path.
func formatValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(errors.ErrCodeInvalidDataset, err, "validate dataset")
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		path := fe.Namespace()
		if _, rest, found := strings.Cut(path, "."); found {
			path = rest
		}
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s: required", path))
		case "gt", "gte", "max":
			msgs = append(msgs, fmt.Sprintf("%s: must be %s %s", path, tagVerb(fe.Tag()), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s: failed %q", path, fe.Tag()))
		}
	}
	return errors.New(errors.ErrCodeInvalidDataset, "%s", strings.Join(msgs, "; "))
}

func tagVerb(tag string) string {
	switch tag {
	case "gt":
		return ">"
	case "gte":
		return ">="
	default:
		return "at most"
	}
}
