// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package fixture loads the YAML-described object databases used by the
// evaluator's tests and worked examples (spec.md §8) into a value.Database.
// It is ambient test tooling, not part of the query language itself.
package fixture

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"sigs.k8s.io/yaml"

	"github.com/ciusji/edgedb/value"
)

// document is the on-disk shape of a fixture file: a flat list of objects,
// each with a short fixture id (unique within the file, not a real UUID),
// a type tag, and an attribute map. A link attribute is written as
// {ref: <id>} (a single link) or a list of such maps (a multi link).
type document struct {
	Objects []object `json:"objects"`
}

type object struct {
	ID    string                 `json:"id"`
	Type  string                 `json:"type"`
	Attrs map[string]interface{} `json:"attrs"`
}

// LoadDatabase parses a fixture document and returns the value.Database it
// describes. Every fixture id is turned into a deterministic uuid.UUID (by
// hashing it into the OID namespace) so that loading the same document
// twice produces byte-identical object identities.
func LoadDatabase(doc []byte) (*value.Database, error) {
	j, err := yaml.YAMLToJSON(doc)
	if err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(j))
	dec.UseNumber()
	var d document
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}

	ids := make(map[string]value.ObjectID, len(d.Objects))
	for _, o := range d.Objects {
		if o.ID == "" {
			return nil, fmt.Errorf("fixture: object of type %q has no id", o.Type)
		}
		ids[o.ID] = fixtureID(o.ID)
	}

	db := value.NewDatabase()
	for _, o := range d.Objects {
		attrs := make(map[string]value.Value, len(o.Attrs))
		for name, raw := range o.Attrs {
			v, err := convertAttr(raw, ids)
			if err != nil {
				return nil, fmt.Errorf("fixture: object %q attr %q: %w", o.ID, name, err)
			}
			attrs[name] = v
		}
		db.Insert(ids[o.ID], o.Type, attrs)
	}
	return db, nil
}

// db1YAML is the same document as testdata/db1.yaml, inlined so that
// LoadDB1 doesn't depend on the working directory a caller's test runs
// from (testdata/db1.yaml itself stays on disk as the readable, editable
// source of truth).
const db1YAML = `
objects:
  - id: "10"
    type: Person
    attrs:
      name: Phil Emarg
      notes:
        - ref: "20"
        - ref: "21"
  - id: "11"
    type: Person
    attrs:
      name: Madeline Hatch
      notes:
        - ref: "21"
  - id: "12"
    type: Person
    attrs:
      name: Emmanuel Villip

  - id: "20"
    type: Note
    attrs:
      name: boxing
  - id: "21"
    type: Note
    attrs:
      name: unboxing
      note: lolol
  - id: "22"
    type: Note
    attrs:
      name: dynamic
      note: blarg
`

// LoadDB1 returns the worked-example database spec.md §8 references
// throughout.
func LoadDB1() (*value.Database, error) {
	return LoadDatabase([]byte(db1YAML))
}

// fixtureID mints a stable object id for a short fixture id string, the
// same role toy_eval_model.py's bsid plays for its DB1 (padding a small
// integer into a fixed UUID template): deterministic rather than random,
// so two loads of the same document compare equal.
func fixtureID(id string) value.ObjectID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("edgedb-fixture:"+id))
}

func convertAttr(raw interface{}, ids map[string]value.ObjectID) (value.Value, error) {
	switch x := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return x, nil
	case bool:
		return x, nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("not a number: %s", x)
		}
		return f, nil
	case map[string]interface{}:
		ref, ok := x["ref"].(string)
		if !ok {
			return nil, fmt.Errorf("expected a {ref: <id>} link, got %v", x)
		}
		id, ok := ids[ref]
		if !ok {
			return nil, fmt.Errorf("unknown fixture id %q", ref)
		}
		return &value.ObjectRef{ID: id}, nil
	case []interface{}:
		out := make(value.List, len(x))
		for i, e := range x {
			v, err := convertAttr(e, ids)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported attribute value %v (%T)", raw, raw)
	}
}
