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
	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/fleet-policy/pkg/placement"
)

// Fixed wire-contract literals of the consuming control plane. Field
// order in the structs below is the serialized key order, which is part
// of the output contract.
const (
	APIVersionPolicy            = "policy.open-cluster-management.io/v1"
	APIVersionPlacement         = "cluster.open-cluster-management.io/v1beta1"
	APIVersionClusterSetBinding = "cluster.open-cluster-management.io/v1beta2"

	KindPolicy              = "Policy"
	KindConfigurationPolicy = "ConfigurationPolicy"
	KindPlacement           = "Placement"
	KindPlacementBinding    = "PlacementBinding"

	KindManagedClusterSetBinding = "ManagedClusterSetBinding"

	apiGroupCluster = "cluster.open-cluster-management.io"
	apiGroupPolicy  = "policy.open-cluster-management.io"
)

// nullScalar renders as an empty scalar instead of the literal "null".
type nullScalar struct{}

// MarshalYAML implements yaml.Marshaler.
func (nullScalar) MarshalYAML() (any, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null"}, nil
}

// ObjectMeta identifies a resource document.
type ObjectMeta struct {
	Name      string `yaml:"name" json:"name"`
	Namespace string `yaml:"namespace,omitempty" json:"namespace,omitempty"`
}

// Policy is the outer policy document.
type Policy struct {
	APIVersion string     `yaml:"apiVersion" json:"apiVersion"`
	Kind       string     `yaml:"kind" json:"kind"`
	Metadata   ObjectMeta `yaml:"metadata" json:"metadata"`
	Spec       PolicySpec `yaml:"spec" json:"spec"`
}

// PolicySpec wraps the configuration policy template and the placement
// assignment.
type PolicySpec struct {
	RemediationAction string                `yaml:"remediationAction" json:"remediationAction"`
	Disabled          bool                  `yaml:"disabled" json:"disabled"`
	PolicyTemplates   []PolicyTemplate      `yaml:"policy-templates" json:"policy-templates"`
	Placement         []PlacementAssignment `yaml:"placement" json:"placement"`
}

// PolicyTemplate holds one embedded configuration policy.
type PolicyTemplate struct {
	ObjectDefinition ConfigurationPolicy `yaml:"objectDefinition" json:"objectDefinition"`
}

// ConfigurationPolicy is the embedded policy carrying the manifests.
type ConfigurationPolicy struct {
	APIVersion string                  `yaml:"apiVersion" json:"apiVersion"`
	Kind       string                  `yaml:"kind" json:"kind"`
	Metadata   ObjectMeta              `yaml:"metadata" json:"metadata"`
	Spec       ConfigurationPolicySpec `yaml:"spec" json:"spec"`
}

// ConfigurationPolicySpec carries one object template per manifest.
type ConfigurationPolicySpec struct {
	RemediationAction string           `yaml:"remediationAction" json:"remediationAction"`
	Severity          string           `yaml:"severity" json:"severity"`
	ObjectTemplates   []ObjectTemplate `yaml:"object-templates" json:"object-templates"`
}

// ObjectTemplate wraps one manifest document verbatim.
type ObjectTemplate struct {
	ComplianceType      string     `yaml:"complianceType" json:"complianceType"`
	ObjectDefinition    *yaml.Node `yaml:"objectDefinition" json:"objectDefinition"`
	PruneObjectBehavior string     `yaml:"pruneObjectBehavior,omitempty" json:"pruneObjectBehavior,omitempty"`
}

// PlacementAssignment cross-references the placement resources from the
// policy spec.
type PlacementAssignment struct {
	Placement        string `yaml:"placement" json:"placement"`
	PlacementBinding string `yaml:"placementBinding" json:"placementBinding"`
}

// Placement selects the clusters the policy is delivered to.
type Placement struct {
	APIVersion string        `yaml:"apiVersion" json:"apiVersion"`
	Kind       string        `yaml:"kind" json:"kind"`
	Metadata   ObjectMeta    `yaml:"metadata" json:"metadata"`
	Spec       PlacementSpec `yaml:"spec" json:"spec"`
}

// PlacementSpec is the placement selection. ClusterSets is serialized
// even when empty; NumberOfClusters renders as an empty scalar when set.
type PlacementSpec struct {
	ClusterSets      []string           `yaml:"clusterSets" json:"clusterSets"`
	NumberOfClusters *nullScalar        `yaml:"numberOfClusters,omitempty" json:"numberOfClusters,omitempty"`
	Predicates       []ClusterPredicate `yaml:"predicates,omitempty" json:"predicates,omitempty"`
}

// ClusterPredicate narrows placement to clusters matching a selector.
type ClusterPredicate struct {
	RequiredClusterSelector RequiredClusterSelector `yaml:"requiredClusterSelector" json:"requiredClusterSelector"`
}

// RequiredClusterSelector holds the label selector of a predicate.
type RequiredClusterSelector struct {
	LabelSelector LabelSelector `yaml:"labelSelector" json:"labelSelector"`
}

// LabelSelector matches clusters by labels or expressions. Exactly one
// of the two fields is populated depending on the targeting variant.
type LabelSelector struct {
	MatchLabels      map[string]string      `yaml:"matchLabels,omitempty" json:"matchLabels,omitempty"`
	MatchExpressions []placement.Expression `yaml:"matchExpressions,omitempty" json:"matchExpressions,omitempty"`
}

// PlacementBinding binds the policy to its placement.
type PlacementBinding struct {
	APIVersion   string       `yaml:"apiVersion" json:"apiVersion"`
	Kind         string       `yaml:"kind" json:"kind"`
	Metadata     ObjectMeta   `yaml:"metadata" json:"metadata"`
	PlacementRef PlacementRef `yaml:"placementRef" json:"placementRef"`
	Subjects     []Subject    `yaml:"subjects" json:"subjects"`
}

// PlacementRef points at the placement resource by name and kind.
type PlacementRef struct {
	Name     string `yaml:"name" json:"name"`
	Kind     string `yaml:"kind" json:"kind"`
	APIGroup string `yaml:"apiGroup" json:"apiGroup"`
}

// Subject points at the policy bound by a placement binding.
type Subject struct {
	Name     string `yaml:"name" json:"name"`
	Kind     string `yaml:"kind" json:"kind"`
	APIGroup string `yaml:"apiGroup" json:"apiGroup"`
}

// ManagedClusterSetBinding binds a cluster set into the policy
// namespace.
type ManagedClusterSetBinding struct {
	APIVersion string                       `yaml:"apiVersion" json:"apiVersion"`
	Kind       string                       `yaml:"kind" json:"kind"`
	Metadata   ObjectMeta                   `yaml:"metadata" json:"metadata"`
	Spec       ManagedClusterSetBindingSpec `yaml:"spec" json:"spec"`
}

// ManagedClusterSetBindingSpec names the bound cluster set.
type ManagedClusterSetBindingSpec struct {
	ClusterSet string `yaml:"clusterSet" json:"clusterSet"`
}
