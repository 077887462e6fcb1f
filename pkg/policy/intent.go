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
	"io"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/fleet-policy/pkg/errors"
	"github.com/NVIDIA/fleet-policy/pkg/manifest"
	"github.com/NVIDIA/fleet-policy/pkg/placement"
)

const (
	// IntentAPIVersion is the accepted apiVersion of intent files.
	IntentAPIVersion = "fleet.nvidia.com/v1alpha1"
	// IntentKind is the accepted kind of intent files.
	IntentKind = "PolicyIntent"
)

// Intent is the on-disk (and over-the-wire) policy intent document.
// YAML and JSON bodies both decode through the YAML path since JSON is
// a subset of YAML.
type Intent struct {
	APIVersion string         `json:"apiVersion" yaml:"apiVersion"`
	Kind       string         `json:"kind" yaml:"kind"`
	Metadata   IntentMetadata `json:"metadata" yaml:"metadata"`
	Spec       IntentSpec     `json:"spec" yaml:"spec"`
}

// IntentMetadata names the policy the intent describes.
type IntentMetadata struct {
	Name      string `json:"name" yaml:"name"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// IntentSpec carries the policy configuration portion of an intent.
type IntentSpec struct {
	Remediation         RemediationAction   `json:"remediation" yaml:"remediation"`
	ComplianceType      ComplianceType      `json:"complianceType,omitempty" yaml:"complianceType,omitempty"`
	PruneObjectBehavior PruneObjectBehavior `json:"pruneObjectBehavior,omitempty" yaml:"pruneObjectBehavior,omitempty"`
	Placement           IntentPlacement     `json:"placement" yaml:"placement"`
	Manifests           []manifest.Source   `json:"manifests" yaml:"manifests"`
}

// IntentPlacement is the targeting portion of an intent. LabelSelectors
// and ClusterSets are mutually exclusive; Labels only applies with
// ClusterSets.
type IntentPlacement struct {
	LabelSelectors map[string]string     `json:"labelSelectors,omitempty" yaml:"labelSelectors,omitempty"`
	ClusterSets    []string              `json:"clusterSets,omitempty" yaml:"clusterSets,omitempty"`
	Labels         []placement.Predicate `json:"labels,omitempty" yaml:"labels,omitempty"`
}

// ParseIntent decodes a single intent document and checks its type
// identifiers.
func ParseIntent(r io.Reader) (*Intent, error) {
	var in Intent
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&in); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, "failed to decode policy intent", err)
	}
	if err := in.CheckTypeMeta(); err != nil {
		return nil, err
	}
	return &in, nil
}

// CheckTypeMeta verifies the apiVersion and kind identifiers of a
// decoded intent. Callers that deserialize intents outside ParseIntent
// (generic readers) run this before using the document.
func (in *Intent) CheckTypeMeta() error {
	if in.APIVersion != IntentAPIVersion {
		return errors.NewWithContext(errors.ErrCodeConfig,
			"unsupported intent apiVersion", map[string]any{
				"apiVersion": in.APIVersion,
				"supported":  IntentAPIVersion,
			})
	}
	if in.Kind != IntentKind {
		return errors.NewWithContext(errors.ErrCodeConfig,
			"unsupported intent kind", map[string]any{
				"kind":      in.Kind,
				"supported": IntentKind,
			})
	}
	return nil
}

// ToSpec resolves the intent into a validated Spec. Manifest file paths
// are resolved relative to baseDir, typically the directory of the
// intent file itself.
func (in *Intent) ToSpec(baseDir string) (*Spec, error) {
	set, err := manifest.ResolveSources(in.Spec.Manifests, baseDir)
	if err != nil {
		return nil, err
	}
	return in.toSpec(set)
}

// ToSpecInline resolves the intent into a validated Spec, rejecting
// path-based manifest sources. Used by surfaces with no filesystem
// context for the caller, such as the HTTP API.
func (in *Intent) ToSpecInline() (*Spec, error) {
	set, err := manifest.ResolveInlineSources(in.Spec.Manifests)
	if err != nil {
		return nil, err
	}
	return in.toSpec(set)
}

func (in *Intent) toSpec(set *manifest.Set) (*Spec, error) {
	spec := &Spec{
		Name:                in.Metadata.Name,
		Namespace:           in.Metadata.Namespace,
		Remediation:         in.Spec.Remediation,
		ComplianceType:      in.Spec.ComplianceType,
		PruneObjectBehavior: in.Spec.PruneObjectBehavior,
		Targeting: Targeting{
			Selectors:   in.Spec.Placement.LabelSelectors,
			ClusterSets: in.Spec.Placement.ClusterSets,
		},
		PlacementLabels: in.Spec.Placement.Labels,
		Manifests:       set,
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}
