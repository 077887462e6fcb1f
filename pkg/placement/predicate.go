// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package placement

import (
	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/fleet-policy/pkg/errors"
)

// Operator is a label predicate operator.
type Operator string

const (
	// OperatorIn matches clusters whose label value is in the given set.
	OperatorIn Operator = "In"
	// OperatorNotIn matches clusters whose label value is not in the given set.
	OperatorNotIn Operator = "NotIn"
	// OperatorExists matches clusters that carry the label key.
	OperatorExists Operator = "Exists"
	// OperatorDoesNotExist matches clusters that do not carry the label key.
	OperatorDoesNotExist Operator = "DoesNotExist"
)

// IsValid returns true if the operator is a supported value.
func (o Operator) IsValid() bool {
	switch o {
	case OperatorIn, OperatorNotIn, OperatorExists, OperatorDoesNotExist:
		return true
	default:
		return false
	}
}

// SupportedOperators returns all supported predicate operators.
func SupportedOperators() []Operator {
	return []Operator{
		OperatorIn,
		OperatorNotIn,
		OperatorExists,
		OperatorDoesNotExist,
	}
}

// Expression is a normalized cluster label predicate.
type Expression struct {
	Key      string   `json:"key" yaml:"key"`
	Operator Operator `json:"operator" yaml:"operator"`
	Values   []string `json:"values,omitempty" yaml:"values,omitempty"`
}

// Predicate is a label predicate input entry. It accepts the full form
// {key, operator, values} or the shorthand form {<key>: scalar|sequence}
// and holds the expanded expressions in input order.
type Predicate struct {
	expressions []Expression
}

// NewPredicate creates a Predicate from already-normalized expressions.
// It is primarily useful for programmatic construction and tests; input
// parsed from documents goes through UnmarshalYAML instead.
func NewPredicate(exprs ...Expression) Predicate {
	return Predicate{expressions: exprs}
}

// Expressions returns the expanded expressions in input order. Operators may
// be empty for full-form entries that omitted one; Resolve applies the
// In default.
func (p Predicate) Expressions() []Expression {
	return p.expressions
}

// UnmarshalJSON decodes either predicate input shape from JSON documents
// by routing through the YAML unmarshaller.
func (p *Predicate) UnmarshalJSON(data []byte) error {
	return yaml.Unmarshal(data, p)
}

// UnmarshalYAML decodes either predicate input shape. A mapping containing a
// "key" entry is treated as full form; any other mapping is shorthand.
// YAML being a superset of JSON, this boundary also serves JSON input.
func (p *Predicate) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode || len(node.Content) == 0 {
		return errors.New(errors.ErrCodeLabelPredicate,
			"label predicate must be a non-empty mapping in full or shorthand form")
	}

	if hasMappingKey(node, "key") {
		return p.unmarshalFull(node)
	}
	return p.unmarshalShorthand(node)
}

func (p *Predicate) unmarshalFull(node *yaml.Node) error {
	var full struct {
		Key      string   `yaml:"key"`
		Operator Operator `yaml:"operator"`
		Values   []string `yaml:"values"`
	}
	if err := node.Decode(&full); err != nil {
		return errors.Wrap(errors.ErrCodeLabelPredicate,
			"invalid full-form label predicate", err)
	}
	if full.Key == "" {
		return errors.New(errors.ErrCodeLabelPredicate,
			"full-form label predicate has empty key")
	}
	if full.Operator != "" && !full.Operator.IsValid() {
		return errors.NewWithContext(errors.ErrCodeLabelPredicate,
			"unsupported label predicate operator",
			map[string]any{"key": full.Key, "operator": string(full.Operator)})
	}

	p.expressions = []Expression{{
		Key:      full.Key,
		Operator: full.Operator,
		Values:   full.Values,
	}}
	return nil
}

func (p *Predicate) unmarshalShorthand(node *yaml.Node) error {
	exprs := make([]Expression, 0, len(node.Content)/2)

	// Mapping nodes store alternating key/value children, in input order.
	for i := 0; i < len(node.Content)-1; i += 2 {
		keyNode := node.Content[i]
		valNode := node.Content[i+1]

		values, err := shorthandValues(keyNode.Value, valNode)
		if err != nil {
			return err
		}

		exprs = append(exprs, Expression{
			Key:      keyNode.Value,
			Operator: OperatorIn,
			Values:   values,
		})
	}

	p.expressions = exprs
	return nil
}

// shorthandValues coerces a shorthand value node to a string sequence:
// a scalar becomes a one-element sequence.
func shorthandValues(key string, node *yaml.Node) ([]string, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return []string{node.Value}, nil
	case yaml.SequenceNode:
		var values []string
		if err := node.Decode(&values); err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeLabelPredicate,
				"shorthand label predicate values must be strings", err,
				map[string]any{"key": key})
		}
		return values, nil
	default:
		return nil, errors.NewWithContext(errors.ErrCodeLabelPredicate,
			"shorthand label predicate value must be a scalar or sequence",
			map[string]any{"key": key})
	}
}

func hasMappingKey(node *yaml.Node, key string) bool {
	for i := 0; i < len(node.Content)-1; i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}
	return false
}
