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

package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	h := New(
		WithKind(KindValidationReport),
		WithAPIVersion("fleet.nvidia.com/v1alpha1"),
		WithMetadata("generatedBy", "themis/v1.0.0"),
	)

	assert.Equal(t, KindValidationReport, h.Kind)
	assert.Equal(t, "fleet.nvidia.com/v1alpha1", h.APIVersion)
	assert.Equal(t, "themis/v1.0.0", h.Metadata["generatedBy"])
}

func TestNewDefaults(t *testing.T) {
	h := New()

	assert.Empty(t, h.Kind)
	assert.Empty(t, h.APIVersion)
	assert.NotNil(t, h.Metadata)
}

func TestKindIsValid(t *testing.T) {
	tests := []struct {
		kind  Kind
		valid bool
	}{
		{KindPolicyIntent, true},
		{KindValidationReport, true},
		{Kind("Snapshot"), false},
		{Kind(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.kind.IsValid())
		})
	}
}

func TestWithMetadataInitializesMap(t *testing.T) {
	h := &Header{}
	WithMetadata("key", "value")(h)

	assert.Equal(t, "value", h.Metadata["key"])
}
