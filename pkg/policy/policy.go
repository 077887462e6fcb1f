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

package policy

import (
	"strings"

	"k8s.io/apimachinery/pkg/util/validation"

	"github.com/NVIDIA/fleet-policy/pkg/errors"
	"github.com/NVIDIA/fleet-policy/pkg/manifest"
	"github.com/NVIDIA/fleet-policy/pkg/placement"
)

// Targeting selects the clusters a policy applies to. Exactly one of
// Selectors or ClusterSets must be populated.
type Targeting struct {
	Selectors   map[string]string `json:"selectors,omitempty" yaml:"selectors,omitempty"`
	ClusterSets []string          `json:"clusterSets,omitempty" yaml:"clusterSets,omitempty"`
}

// Validate enforces the targeting union and checks label and cluster-set
// syntax against Kubernetes naming rules.
func (t Targeting) Validate() error {
	hasSelectors := len(t.Selectors) > 0
	hasClusterSets := len(t.ClusterSets) > 0

	switch {
	case hasSelectors && hasClusterSets:
		return errors.New(errors.ErrCodeConfig,
			"targeting must set selectors or clusterSets, not both")
	case !hasSelectors && !hasClusterSets:
		return errors.New(errors.ErrCodeConfig,
			"targeting must set selectors or clusterSets")
	}

	for k, v := range t.Selectors {
		if errs := validation.IsQualifiedName(k); len(errs) > 0 {
			return errors.NewWithContext(errors.ErrCodeConfig,
				"invalid selector key", map[string]any{
					"key":    k,
					"reason": strings.Join(errs, "; "),
				})
		}
		if errs := validation.IsValidLabelValue(v); len(errs) > 0 {
			return errors.NewWithContext(errors.ErrCodeConfig,
				"invalid selector value", map[string]any{
					"key":    k,
					"value":  v,
					"reason": strings.Join(errs, "; "),
				})
		}
	}

	for _, cs := range t.ClusterSets {
		if errs := validation.IsDNS1123Subdomain(cs); len(errs) > 0 {
			return errors.NewWithContext(errors.ErrCodeConfig,
				"invalid cluster set name", map[string]any{
					"clusterSet": cs,
					"reason":     strings.Join(errs, "; "),
				})
		}
	}

	return nil
}

// Spec is the resolved, validated policy intent a bundle is built from.
type Spec struct {
	Name                string
	Namespace           string
	Remediation         RemediationAction
	ComplianceType      ComplianceType
	PruneObjectBehavior PruneObjectBehavior
	Targeting           Targeting
	PlacementLabels     []placement.Predicate
	Manifests           *manifest.Set
}

// Validate checks the spec fields, the targeting union, and the manifest
// set. It returns the first problem found.
func (s *Spec) Validate() error {
	if s == nil {
		return errors.New(errors.ErrCodeConfig, "policy spec is required")
	}
	if s.Name == "" {
		return errors.New(errors.ErrCodeConfig, "policy name is required")
	}
	if errs := validation.IsDNS1123Subdomain(s.Name); len(errs) > 0 {
		return errors.NewWithContext(errors.ErrCodeConfig,
			"invalid policy name", map[string]any{
				"name":   s.Name,
				"reason": strings.Join(errs, "; "),
			})
	}
	if s.Namespace != "" {
		if errs := validation.IsDNS1123Label(s.Namespace); len(errs) > 0 {
			return errors.NewWithContext(errors.ErrCodeConfig,
				"invalid policy namespace", map[string]any{
					"namespace": s.Namespace,
					"reason":    strings.Join(errs, "; "),
				})
		}
	}
	if !s.Remediation.IsValid() {
		return errors.NewWithContext(errors.ErrCodeConfig,
			"invalid remediation action", map[string]any{
				"remediation": string(s.Remediation),
				"supported":   SupportedRemediationActions(),
			})
	}
	if s.ComplianceType != "" && !s.ComplianceType.IsValid() {
		return errors.NewWithContext(errors.ErrCodeConfig,
			"invalid compliance type", map[string]any{
				"complianceType": string(s.ComplianceType),
				"supported":      SupportedComplianceTypes(),
			})
	}
	if s.PruneObjectBehavior != "" && !s.PruneObjectBehavior.IsValid() {
		return errors.NewWithContext(errors.ErrCodeConfig,
			"invalid prune object behavior", map[string]any{
				"pruneObjectBehavior": string(s.PruneObjectBehavior),
				"supported":           SupportedPruneObjectBehaviors(),
			})
	}
	if err := s.Targeting.Validate(); err != nil {
		return err
	}
	if s.Manifests == nil || s.Manifests.Len() == 0 {
		return errors.New(errors.ErrCodeManifest, "at least one manifest is required")
	}
	return s.Manifests.Validate()
}

// ResolvePlacement resolves the targeting portion of the spec into a
// canonical placement rule.
func (s *Spec) ResolvePlacement() (*placement.Rule, error) {
	return placement.Resolve(s.Targeting.Selectors, s.Targeting.ClusterSets, s.PlacementLabels)
}
