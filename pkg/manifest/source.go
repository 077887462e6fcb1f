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

package manifest

import (
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/fleet-policy/pkg/errors"
)

// Source is a single manifest source in a policy intent. It accepts a scalar
// file path or an inline manifest document:
//
//	manifests:
//	  - manifests/limit-range.yaml
//	  - apiVersion: v1
//	    kind: ConfigMap
//	    metadata: {name: inline}
type Source struct {
	// Path is the manifest file path, relative to the intent file unless
	// absolute. Empty when the source is inline.
	Path string
	// Inline is the inline manifest document. Nil when the source is a path.
	Inline *yaml.Node
}

// IsInline returns true if the source is an inline document.
func (s *Source) IsInline() bool {
	return s.Inline != nil
}

// UnmarshalJSON decodes either source shape from JSON documents by
// routing through the YAML unmarshaller, since JSON is a YAML subset.
func (s *Source) UnmarshalJSON(data []byte) error {
	return yaml.Unmarshal(data, s)
}

// UnmarshalYAML decodes either source shape.
func (s *Source) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if err := node.Decode(&s.Path); err != nil {
			return errors.Wrap(errors.ErrCodeManifest, "invalid manifest path", err)
		}
		if s.Path == "" {
			return errors.New(errors.ErrCodeManifest, "manifest path is empty")
		}
		return nil
	case yaml.MappingNode:
		s.Inline = node
		return nil
	default:
		return errors.New(errors.ErrCodeManifest,
			"manifest source must be a file path or an inline mapping")
	}
}

// ResolveSources materializes manifest sources into a Set, in input order.
// Relative paths are resolved against baseDir. Path sources may contain
// multiple documents; each contributes its documents in file order.
func ResolveSources(sources []Source, baseDir string) (*Set, error) {
	set := &Set{}
	for i, src := range sources {
		if src.IsInline() {
			set.Append(src.Inline)
			continue
		}

		path := src.Path
		if path == "" {
			return nil, errors.NewWithContext(errors.ErrCodeManifest,
				"manifest source has neither path nor inline document",
				map[string]any{"index": i})
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}

		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		set.Append(loaded.Documents()...)
	}
	return set, nil
}

// ResolveInlineSources materializes manifest sources that must all be inline
// documents. Path sources are rejected; used by surfaces that must not read
// the local filesystem, such as the HTTP API.
func ResolveInlineSources(sources []Source) (*Set, error) {
	set := &Set{}
	for i, src := range sources {
		if !src.IsInline() {
			return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
				"manifest sources must be inline documents",
				map[string]any{"index": i, "path": src.Path})
		}
		set.Append(src.Inline)
	}
	return set, nil
}
