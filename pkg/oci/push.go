/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package oci

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/distribution/reference"
	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/file"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/credentials"

	"github.com/NVIDIA/fleet-policy/pkg/bundler"
	"github.com/NVIDIA/fleet-policy/pkg/serializer"
)

const (
	// ArtifactType is the media type of fleet-policy bundle artifacts.
	ArtifactType = "application/vnd.nvidia.fleet-policy.bundle"

	// BundleLayerMediaType is the media type of the bundle layer.
	BundleLayerMediaType = "application/yaml"

	// BundleFileName is the layer file name inside the artifact.
	BundleFileName = "bundle.yaml"
)

// PushOptions configures the OCI push operation.
type PushOptions struct {
	// Registry is the OCI registry host (e.g., "ghcr.io", "localhost:5000").
	Registry string
	// Repository is the image repository path (e.g., "nvidia/policies").
	Repository string
	// Tag is the image tag (e.g., "v1.0.0").
	Tag string
	// PolicyName annotates the artifact with the policy it carries.
	PolicyName string
	// PlainHTTP uses HTTP instead of HTTPS for the registry connection.
	PlainHTTP bool
	// InsecureTLS skips TLS certificate verification.
	InsecureTLS bool
	// Annotations are additional manifest annotations to include.
	Annotations map[string]string
}

// PushResult contains the result of a successful OCI push.
type PushResult struct {
	// Digest is the SHA256 digest of the pushed artifact manifest.
	Digest string
	// Reference is the full image reference (registry/repository:tag).
	Reference string
}

// PushBundle renders the bundle and pushes it to a registry as a
// single-layer OCI artifact using ORAS.
func PushBundle(ctx context.Context, bundle *bundler.Bundle, opts PushOptions) (*PushResult, error) {
	if opts.Tag == "" {
		return nil, fmt.Errorf("tag is required to push OCI artifact")
	}

	rendered, err := serializer.RenderBundle(bundle)
	if err != nil {
		return nil, err
	}

	// Stage the bundle file in a temp dir backing the ORAS file store.
	stageDir, err := os.MkdirTemp("", "fleet-policy-push-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(stageDir) }()

	bundlePath := filepath.Join(stageDir, BundleFileName)
	if err := os.WriteFile(bundlePath, []byte(rendered), 0600); err != nil {
		return nil, fmt.Errorf("failed to stage bundle file: %w", err)
	}

	refString := fmt.Sprintf("%s/%s:%s", opts.Registry, opts.Repository, opts.Tag)
	if _, parseErr := reference.ParseNormalizedNamed(refString); parseErr != nil {
		return nil, fmt.Errorf("invalid image reference '%s': %w", refString, parseErr)
	}

	fs, err := file.New(stageDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create file store: %w", err)
	}
	defer func() { _ = fs.Close() }()
	fs.TarReproducible = true

	layerDesc, err := fs.Add(ctx, BundleFileName, BundleLayerMediaType, bundlePath)
	if err != nil {
		return nil, fmt.Errorf("failed to add bundle to store: %w", err)
	}

	annotations := map[string]string{}
	for k, v := range opts.Annotations {
		annotations[k] = v
	}
	if opts.PolicyName != "" {
		annotations[ociv1.AnnotationTitle] = opts.PolicyName
	}

	packOpts := oras.PackManifestOptions{
		Layers: []ociv1.Descriptor{layerDesc},
	}
	if len(annotations) > 0 {
		packOpts.ManifestAnnotations = annotations
	}

	manifestDesc, err := oras.PackManifest(ctx, fs, oras.PackManifestVersion1_1, ArtifactType, packOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to pack manifest: %w", err)
	}

	if tagErr := fs.Tag(ctx, manifestDesc, opts.Tag); tagErr != nil {
		return nil, fmt.Errorf("failed to tag manifest in local store: %w", tagErr)
	}

	repo, err := remote.NewRepository(fmt.Sprintf("%s/%s", opts.Registry, opts.Repository))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize remote repository: %w", err)
	}
	repo.PlainHTTP = opts.PlainHTTP
	repo.Client = createAuthClient(opts.PlainHTTP, opts.InsecureTLS)

	desc, err := oras.Copy(ctx, fs, opts.Tag, repo, opts.Tag, oras.DefaultCopyOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to push artifact to registry: %w", err)
	}

	return &PushResult{
		Digest:    desc.Digest.String(),
		Reference: refString,
	}, nil
}

// createAuthClient creates an HTTP client with optional TLS
// configuration and Docker credential support.
func createAuthClient(plainHTTP, insecureTLS bool) *auth.Client {
	credStore, _ := credentials.NewStoreFromDocker(credentials.StoreOptions{})

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !plainHTTP && insecureTLS {
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		} else {
			transport.TLSClientConfig.InsecureSkipVerify = true //nolint:gosec
		}
	}

	return &auth.Client{
		Client:     &http.Client{Transport: transport},
		Cache:      auth.NewCache(),
		Credential: credentials.Credential(credStore),
	}
}
