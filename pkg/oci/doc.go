// Package oci pushes rendered policy bundles to OCI-compliant
// registries using the ORAS (OCI Registry As Storage) library.
//
// A bundle is pushed as a single-layer OCI 1.1 artifact whose layer is
// the multi-document YAML bundle stream. Any OCI-compliant registry
// works (Docker Hub, GHCR, ECR, local registries).
//
// # Usage
//
//	ref, err := oci.ParseOutputTarget("oci://ghcr.io/nvidia/policies:v1.0.0")
//	if err != nil {
//	    return err
//	}
//	result, err := oci.PushBundle(ctx, bundle, oci.PushOptions{
//	    Registry:   ref.Registry,
//	    Repository: ref.Repository,
//	    Tag:        ref.Tag,
//	})
//
// # Authentication
//
// Credentials are loaded from the standard Docker configuration
// (~/.docker/config.json) via Docker credential helpers using the ORAS
// credentials package.
//
// # Artifact Type
//
// Artifacts are pushed with the media type
// "application/vnd.nvidia.fleet-policy.bundle". The custom type
// distinguishes policy bundles from runnable container images;
// consumers that don't understand it should treat the artifact as a
// non-executable blob.
package oci
