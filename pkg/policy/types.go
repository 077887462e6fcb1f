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

// RemediationAction controls whether policy violations are actively
// corrected or only reported.
type RemediationAction string

const (
	// RemediationEnforce corrects violations on the managed clusters.
	RemediationEnforce RemediationAction = "enforce"
	// RemediationInform reports violations without changing anything.
	RemediationInform RemediationAction = "inform"
)

// IsValid returns true if the remediation action is supported.
func (r RemediationAction) IsValid() bool {
	switch r {
	case RemediationEnforce, RemediationInform:
		return true
	default:
		return false
	}
}

// SupportedRemediationActions returns all valid remediation actions.
func SupportedRemediationActions() []RemediationAction {
	return []RemediationAction{RemediationEnforce, RemediationInform}
}

// ComplianceType describes how manifests relate to the desired cluster
// state.
type ComplianceType string

const (
	// ComplianceMustHave requires the manifest objects to exist.
	ComplianceMustHave ComplianceType = "musthave"
	// ComplianceMustNotHave requires the manifest objects to be absent.
	ComplianceMustNotHave ComplianceType = "mustnothave"
)

// IsValid returns true if the compliance type is supported.
func (c ComplianceType) IsValid() bool {
	switch c {
	case ComplianceMustHave, ComplianceMustNotHave:
		return true
	default:
		return false
	}
}

// SupportedComplianceTypes returns all valid compliance types.
func SupportedComplianceTypes() []ComplianceType {
	return []ComplianceType{ComplianceMustHave, ComplianceMustNotHave}
}

// PruneObjectBehavior governs deletion of previously-created objects
// when the policy is removed or updated. Casing follows the consuming
// control plane, not this module.
type PruneObjectBehavior string

const (
	// PruneNone leaves created objects in place.
	PruneNone PruneObjectBehavior = "none"
	// PruneDeleteAll deletes every object the policy manages.
	PruneDeleteAll PruneObjectBehavior = "DeleteAll"
	// PruneDeleteIfCreated deletes only objects the policy created.
	PruneDeleteIfCreated PruneObjectBehavior = "DeleteIfCreated"
)

// IsValid returns true if the prune behavior is supported.
func (p PruneObjectBehavior) IsValid() bool {
	switch p {
	case PruneNone, PruneDeleteAll, PruneDeleteIfCreated:
		return true
	default:
		return false
	}
}

// SupportedPruneObjectBehaviors returns all valid prune behaviors.
func SupportedPruneObjectBehaviors() []PruneObjectBehavior {
	return []PruneObjectBehavior{PruneNone, PruneDeleteAll, PruneDeleteIfCreated}
}
