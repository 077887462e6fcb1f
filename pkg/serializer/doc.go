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

// Package serializer renders policy bundles and other structured data
// to their output destinations.
//
// Policy bundles are always rendered as a multi-document YAML stream:
// one document per resource in build order, documents joined with a
// `---` separator line (none leading or trailing), keys in construction
// order, and nulls rendered as empty scalars.
//
// Other payloads (validation summaries, API responses) support three
// formats:
//   - JSON: machine-readable structured data with indentation
//   - YAML: human-readable configuration format
//   - Table: flattened key/value output for terminals
//
// Output destinations:
//   - stdout or a local file path
//   - Kubernetes ConfigMaps via cm://namespace/name URIs
//
// Usage:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	defer w.Close()
//	if err := w.Serialize(ctx, bundle); err != nil {
//		log.Fatal(err)
//	}
//
// Readers load intent files from local paths, HTTP(S) URLs, or
// ConfigMap URIs with format detection by file extension.
package serializer

import "context"

// Serializer writes structured data to an output destination.
//
// The context is used for cancellation and timeouts, which matters for
// implementations doing I/O such as ConfigMap writes.
type Serializer interface {
	Serialize(ctx context.Context, data any) error
}

// Closer is implemented by Serializers that hold resources such as
// file handles.
type Closer interface {
	Close() error
}
