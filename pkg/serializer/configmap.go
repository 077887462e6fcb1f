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
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"

	"github.com/NVIDIA/fleet-policy/pkg/bundler"
	"github.com/NVIDIA/fleet-policy/pkg/defaults"
	"github.com/NVIDIA/fleet-policy/pkg/k8s/client"
)

// ConfigMapURIScheme prefixes output targets that route to a
// Kubernetes ConfigMap, in the form cm://namespace/name.
const ConfigMapURIScheme = "cm://"

// fieldManager identifies this tool in server-side apply operations.
const fieldManager = "themis"

// ConfigMapWriter writes serialized data to a Kubernetes ConfigMap.
// The ConfigMap is created if it doesn't exist, or updated if it does.
type ConfigMapWriter struct {
	namespace string
	name      string
	format    Format
}

// NewConfigMapWriter creates a ConfigMapWriter for the given namespace
// and ConfigMap name. The format applies to non-bundle payloads;
// bundles are always stored as multi-document YAML.
func NewConfigMapWriter(namespace, name string, format Format) *ConfigMapWriter {
	if format.IsUnknown() {
		slog.Warn("unknown format, defaulting to YAML", "format", format)
		format = FormatYAML
	}
	return &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		format:    format,
	}
}

// Serialize writes the data to the ConfigMap via server-side apply.
// The resulting ConfigMap data carries:
//   - bundle.{yaml|json|txt}: the serialized content
//   - format: the format used
//   - timestamp: RFC 3339 write time
func (w *ConfigMapWriter) Serialize(ctx context.Context, data any) error {
	writeCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	kubeClient, config, err := client.GetKubeClient()
	if err != nil {
		return fmt.Errorf("failed to get kubernetes client: %w", err)
	}

	// Log authentication context for audit
	authInfo := "default"
	switch {
	case config.AuthProvider != nil:
		authInfo = config.AuthProvider.Name
	case config.ExecProvider != nil:
		authInfo = "exec"
	case config.BearerToken != "":
		authInfo = "bearer-token"
	case config.CertData != nil:
		authInfo = "cert"
	}

	var content []byte
	var extension string
	format := w.format
	component := "output"

	if bundle, ok := data.(*bundler.Bundle); ok {
		rendered, renderErr := RenderBundle(bundle)
		if renderErr != nil {
			return renderErr
		}
		content = []byte(rendered)
		extension = "yaml"
		format = FormatYAML
		component = "policy-bundle"
	} else {
		switch w.format {
		case FormatJSON:
			content, err = serializeJSON(data)
			extension = "json"
		case FormatYAML:
			content, err = serializeYAML(data)
			extension = "yaml"
		case FormatTable:
			content, err = serializeTable(data)
			extension = "txt"
		default:
			return fmt.Errorf("unsupported format for ConfigMap: %s", w.format)
		}
		if err != nil {
			return fmt.Errorf("failed to serialize data: %w", err)
		}
	}

	dataKey := fmt.Sprintf("bundle.%s", extension)
	configMapData := map[string]string{
		dataKey:     string(content),
		"format":    string(format),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	configMap := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(map[string]string{
			"app.kubernetes.io/name":       "fleet-policy",
			"app.kubernetes.io/component":  component,
			"app.kubernetes.io/managed-by": fieldManager,
		}).
		WithData(configMapData)

	slog.Info("applying ConfigMap",
		"namespace", w.namespace,
		"name", w.name,
		"auth_method", authInfo,
		"format", format)

	// Server-side apply gives atomic create-or-update; Force takes
	// ownership from previous field managers.
	_, err = kubeClient.CoreV1().ConfigMaps(w.namespace).Apply(
		writeCtx,
		configMap,
		metav1.ApplyOptions{
			FieldManager: fieldManager,
			Force:        true,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to apply ConfigMap: %w", err)
	}

	return nil
}

// Close is a no-op; it exists to satisfy the Closer interface.
func (w *ConfigMapWriter) Close() error {
	return nil
}

// parseConfigMapURI parses a cm://namespace/name URI into its
// components.
func parseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	path := strings.TrimPrefix(uri, ConfigMapURIScheme)

	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}

	namespace = strings.TrimSpace(parts[0])
	name = strings.TrimSpace(parts[1])

	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot be empty")
	}

	return namespace, name, nil
}
