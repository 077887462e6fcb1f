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

// Package header provides common header types for fleet-policy data
// structures.
//
// The Header type gives generated reports and other tool outputs
// Kubernetes-style kind and apiVersion identifiers, so consumers can
// check what they are parsing:
//
//	h := header.New(
//	    header.WithKind(header.KindValidationReport),
//	    header.WithAPIVersion("fleet.nvidia.com/v1alpha1"),
//	    header.WithMetadata("generatedBy", "themis/v1.0.0"),
//	)
//
// Headers serialize consistently to JSON and YAML:
//
//	{
//	  "kind": "ValidationReport",
//	  "apiVersion": "fleet.nvidia.com/v1alpha1",
//	  "metadata": {"generatedBy": "themis/v1.0.0"}
//	}
package header
