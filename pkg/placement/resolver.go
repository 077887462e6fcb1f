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
	"log/slog"

	"github.com/NVIDIA/fleet-policy/pkg/errors"
)

// RuleKind identifies the resolved targeting variant.
type RuleKind string

const (
	// RuleKindSelector targets clusters by label selectors.
	RuleKindSelector RuleKind = "selector"
	// RuleKindClusterSet targets clusters by named cluster sets.
	RuleKindClusterSet RuleKind = "clusterSet"
)

// Rule is the canonical, resolved placement rule. Exactly one variant is
// populated: MatchLabels for selector-based rules, ClusterSets (with
// optional MatchExpressions) for cluster-set based rules.
type Rule struct {
	Kind             RuleKind
	MatchLabels      map[string]string
	ClusterSets      []string
	MatchExpressions []Expression
}

// Resolve turns the targeting portion of a policy into a canonical Rule.
//
// Selector-based targeting returns the selector mapping verbatim and ignores
// predicates. Cluster-set targeting preserves set order and expands
// predicates in input order, defaulting omitted operators to In.
//
// Exactly one of selectors or clusterSets must be populated; callers are
// expected to have validated this already, but Resolve never silently picks
// a variant.
func Resolve(selectors map[string]string, clusterSets []string, predicates []Predicate) (*Rule, error) {
	hasSelectors := len(selectors) > 0
	hasClusterSets := len(clusterSets) > 0

	switch {
	case hasSelectors && hasClusterSets:
		return nil, errors.New(errors.ErrCodeConfig,
			"targeting must set label selectors or cluster sets, not both")
	case !hasSelectors && !hasClusterSets:
		return nil, errors.New(errors.ErrCodeConfig,
			"targeting must set label selectors or cluster sets")
	case hasSelectors:
		if len(predicates) > 0 {
			slog.Debug("placement labels ignored with selector-based targeting",
				"labels", len(predicates))
		}
		return &Rule{
			Kind:        RuleKindSelector,
			MatchLabels: selectors,
		}, nil
	default:
		exprs := make([]Expression, 0, len(predicates))
		for _, p := range predicates {
			for _, e := range p.Expressions() {
				if e.Operator == "" {
					e.Operator = OperatorIn
				}
				exprs = append(exprs, e)
			}
		}
		return &Rule{
			Kind:             RuleKindClusterSet,
			ClusterSets:      clusterSets,
			MatchExpressions: exprs,
		}, nil
	}
}
