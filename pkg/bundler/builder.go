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

package bundler

import (
	"fmt"

	"github.com/NVIDIA/fleet-policy/pkg/errors"
	"github.com/NVIDIA/fleet-policy/pkg/placement"
	"github.com/NVIDIA/fleet-policy/pkg/policy"
)

const (
	// severityLow is the fixed severity of every configuration policy.
	severityLow = "low"

	// complianceMustHave is applied to every object-template. The
	// spec-level compliance type is accepted but not wired through;
	// see DESIGN.md.
	complianceMustHave = "musthave"
)

// PlacementName returns the placement resource name for a policy.
func PlacementName(policyName string) string {
	return fmt.Sprintf("placement-%s", policyName)
}

// BindingName returns the placement binding resource name for a policy.
func BindingName(policyName string) string {
	return fmt.Sprintf("binding-%s", policyName)
}

// Resource is one bundle document tagged with its identity.
type Resource struct {
	Kind      string
	Name      string
	Namespace string
	Object    any
}

// Bundle is the ordered set of resources built from one policy spec:
// Policy first, then cluster set bindings in input order, then
// Placement, then PlacementBinding.
type Bundle struct {
	resources []Resource
}

// Resources returns the bundle documents in build order.
func (b *Bundle) Resources() []Resource {
	if b == nil {
		return nil
	}
	return b.resources
}

// Documents returns just the resource objects in build order.
func (b *Bundle) Documents() []any {
	if b == nil {
		return nil
	}
	docs := make([]any, len(b.resources))
	for i, r := range b.resources {
		docs[i] = r.Object
	}
	return docs
}

// Len returns the number of documents in the bundle.
func (b *Bundle) Len() int {
	if b == nil {
		return 0
	}
	return len(b.resources)
}

// Build assembles the resource bundle for the given spec and resolved
// placement rule. The spec is expected to have passed Validate; Build
// still rejects inputs it cannot assemble from.
func Build(spec *policy.Spec, rule *placement.Rule) (*Bundle, error) {
	if spec == nil {
		return nil, errors.New(errors.ErrCodeConfig, "policy spec is required")
	}
	if rule == nil {
		return nil, errors.New(errors.ErrCodeConfig, "placement rule is required")
	}
	if spec.Manifests == nil || spec.Manifests.Len() == 0 {
		return nil, errors.New(errors.ErrCodeManifest, "at least one manifest is required")
	}
	if err := spec.Manifests.Validate(); err != nil {
		return nil, err
	}

	placementName := PlacementName(spec.Name)
	bindingName := BindingName(spec.Name)

	bundle := &Bundle{}
	bundle.add(Resource{
		Kind:      KindPolicy,
		Name:      spec.Name,
		Namespace: spec.Namespace,
		Object:    buildPolicy(spec, placementName, bindingName),
	})

	if rule.Kind == placement.RuleKindClusterSet {
		for _, cs := range rule.ClusterSets {
			bundle.add(Resource{
				Kind:      KindManagedClusterSetBinding,
				Name:      cs,
				Namespace: spec.Namespace,
				Object: ManagedClusterSetBinding{
					APIVersion: APIVersionClusterSetBinding,
					Kind:       KindManagedClusterSetBinding,
					Metadata:   ObjectMeta{Name: cs, Namespace: spec.Namespace},
					Spec:       ManagedClusterSetBindingSpec{ClusterSet: cs},
				},
			})
		}
	}

	bundle.add(Resource{
		Kind:      KindPlacement,
		Name:      placementName,
		Namespace: spec.Namespace,
		Object: Placement{
			APIVersion: APIVersionPlacement,
			Kind:       KindPlacement,
			Metadata:   ObjectMeta{Name: placementName, Namespace: spec.Namespace},
			Spec:       buildPlacementSpec(rule),
		},
	})

	bundle.add(Resource{
		Kind:      KindPlacementBinding,
		Name:      bindingName,
		Namespace: spec.Namespace,
		Object: PlacementBinding{
			APIVersion: APIVersionPolicy,
			Kind:       KindPlacementBinding,
			Metadata:   ObjectMeta{Name: bindingName, Namespace: spec.Namespace},
			PlacementRef: PlacementRef{
				Name:     placementName,
				Kind:     KindPlacement,
				APIGroup: apiGroupCluster,
			},
			Subjects: []Subject{{
				Name:     spec.Name,
				Kind:     KindPolicy,
				APIGroup: apiGroupPolicy,
			}},
		},
	})

	return bundle, nil
}

func (b *Bundle) add(r Resource) {
	b.resources = append(b.resources, r)
}

func buildPolicy(spec *policy.Spec, placementName, bindingName string) Policy {
	templates := make([]ObjectTemplate, 0, spec.Manifests.Len())
	for _, doc := range spec.Manifests.Documents() {
		tpl := ObjectTemplate{
			ComplianceType:   complianceMustHave,
			ObjectDefinition: doc,
		}
		if spec.PruneObjectBehavior != "" {
			tpl.PruneObjectBehavior = string(spec.PruneObjectBehavior)
		}
		templates = append(templates, tpl)
	}

	return Policy{
		APIVersion: APIVersionPolicy,
		Kind:       KindPolicy,
		Metadata:   ObjectMeta{Name: spec.Name, Namespace: spec.Namespace},
		Spec: PolicySpec{
			RemediationAction: string(spec.Remediation),
			Disabled:          false,
			PolicyTemplates: []PolicyTemplate{{
				ObjectDefinition: ConfigurationPolicy{
					APIVersion: APIVersionPolicy,
					Kind:       KindConfigurationPolicy,
					Metadata:   ObjectMeta{Name: spec.Name},
					Spec: ConfigurationPolicySpec{
						RemediationAction: string(spec.Remediation),
						Severity:          severityLow,
						ObjectTemplates:   templates,
					},
				},
			}},
			Placement: []PlacementAssignment{{
				Placement:        placementName,
				PlacementBinding: bindingName,
			}},
		},
	}
}

func buildPlacementSpec(rule *placement.Rule) PlacementSpec {
	if rule.Kind == placement.RuleKindSelector {
		return PlacementSpec{
			ClusterSets:      []string{},
			NumberOfClusters: &nullScalar{},
			Predicates: []ClusterPredicate{{
				RequiredClusterSelector: RequiredClusterSelector{
					LabelSelector: LabelSelector{MatchLabels: rule.MatchLabels},
				},
			}},
		}
	}

	spec := PlacementSpec{ClusterSets: rule.ClusterSets}
	if len(rule.MatchExpressions) > 0 {
		spec.Predicates = []ClusterPredicate{{
			RequiredClusterSelector: RequiredClusterSelector{
				LabelSelector: LabelSelector{MatchExpressions: rule.MatchExpressions},
			},
		}}
	}
	return spec
}
