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
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/fleet-policy/pkg/errors"
)

// Set is an ordered collection of parsed manifest documents.
type Set struct {
	docs []*yaml.Node
}

// NewSet creates a Set from already-parsed document content nodes.
func NewSet(docs ...*yaml.Node) *Set {
	return &Set{docs: docs}
}

// Documents returns the document content nodes in input order.
func (s *Set) Documents() []*yaml.Node {
	if s == nil {
		return nil
	}
	return s.docs
}

// Len returns the number of documents in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.docs)
}

// Append adds documents to the end of the set, preserving order.
func (s *Set) Append(docs ...*yaml.Node) {
	s.docs = append(s.docs, docs...)
}

// Validate checks that the set is non-empty and that every document is a
// structured mapping. The returned error identifies the offending document
// by index.
func (s *Set) Validate() error {
	if s.Len() == 0 {
		return errors.New(errors.ErrCodeManifest, "manifest set is empty")
	}
	for i, doc := range s.docs {
		if doc == nil || doc.Kind != yaml.MappingNode {
			return errors.NewWithContext(errors.ErrCodeManifest,
				"manifest document is not a mapping",
				map[string]any{"index": i})
		}
	}
	return nil
}

// Parse reads every document from a multi-document YAML stream into a Set.
// Empty documents are skipped.
func Parse(r io.Reader) (*Set, error) {
	set := &Set{}
	dec := yaml.NewDecoder(r)

	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeManifest,
				"failed to parse manifest document", err)
		}
		if content := documentContent(&doc); content != nil {
			set.Append(content)
		}
	}

	return set, nil
}

// Load reads manifest documents from the given files, in argument order.
func Load(paths ...string) (*Set, error) {
	set := &Set{}
	for _, path := range paths {
		file, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeManifest,
				fmt.Sprintf("failed to open manifest file %q", path), err)
		}

		parsed, err := Parse(file)
		closeErr := file.Close()
		if err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeManifest,
				"failed to parse manifest file", err,
				map[string]any{"path": path})
		}
		if closeErr != nil {
			return nil, errors.Wrap(errors.ErrCodeManifest,
				fmt.Sprintf("failed to close manifest file %q", path), closeErr)
		}

		set.Append(parsed.Documents()...)
	}
	return set, nil
}

// documentContent unwraps a decoded document node to its content node.
// Returns nil for empty or null documents.
func documentContent(doc *yaml.Node) *yaml.Node {
	node := doc
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}
		node = node.Content[0]
	}
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil
	}
	return node
}
