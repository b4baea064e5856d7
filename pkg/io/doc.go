// Package io reads and writes flow datasets as JSON, TOML or YAML files.
//
// # File Format
//
// All three encodings share one schema: a list of nodes and a list of links.
// In JSON:
//
//	{
//	  "nodes": [
//	    {"id": 0, "name": "Nocturnal", "layer": 0, "category": "activity", "risk_score": 0.55},
//	    {"id": 1, "name": "High Risk", "layer": 1, "risk_score": 0.9, "is_outcome": true, "count": 412}
//	  ],
//	  "links": [
//	    {"source": 0, "target": 1, "value": 120}
//	  ]
//	}
//
// The same document in TOML uses [[nodes]] and [[links]] tables; in YAML
// it is a mapping with nodes and links sequences.
//
// Node order is significant. It fixes the vertical order of nodes within a
// layer, and all three encodings preserve it.
//
// # Validation
//
// Decoding happens in two passes. The file is first checked against the
// schema (required fields, non-negative layers and counts, positive link
// values); failures are reported with the offending field path, for example
// "nodes[2].name: required", and carry [errors.ErrCodeInvalidDataset]. The
// records are then passed to [dataset.New], which checks the cross-record
// invariants: unique ids, contiguous layers and resolvable link endpoints.
//
// Risk scores are not range-checked. Scores outside [0, 1] are valid and
// fall into the nearest risk band when colored.
//
// # Formats
//
// [Import] and [Export] pick the encoding from the file extension (.json,
// .toml, .yaml or .yml). [Read] and [Write] take an explicit [Format] and
// work on any reader or writer.
//
// [errors.ErrCodeInvalidDataset]: github.com/matzehuels/riskflow/pkg/errors.ErrCodeInvalidDataset
// [dataset.New]: github.com/matzehuels/riskflow/pkg/dataset.New
package io
