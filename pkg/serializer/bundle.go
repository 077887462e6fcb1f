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

package serializer

import (
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/fleet-policy/pkg/bundler"
	"github.com/NVIDIA/fleet-policy/pkg/errors"
)

// bundleIndent is the block indentation of rendered bundle documents.
const bundleIndent = 2

// WriteBundle renders the bundle as a multi-document YAML stream.
// Reusing one encoder across documents puts a `---` separator between
// consecutive documents without emitting a leading or trailing one.
func WriteBundle(w io.Writer, bundle *bundler.Bundle) error {
	if bundle == nil || bundle.Len() == 0 {
		return errors.New(errors.ErrCodeInternal, "bundle is empty")
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(bundleIndent)
	for _, doc := range bundle.Documents() {
		if err := enc.Encode(doc); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, "failed to render bundle document", err)
		}
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to finish bundle stream", err)
	}
	return nil
}

// RenderBundle renders the bundle to a single string.
func RenderBundle(bundle *bundler.Bundle) (string, error) {
	var sb strings.Builder
	if err := WriteBundle(&sb, bundle); err != nil {
		return "", err
	}
	return sb.String(), nil
}
