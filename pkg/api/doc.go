// Package api provides the HTTP API layer for the fleet-policy bundle
// service.
//
// This package acts as a thin wrapper around the reusable pkg/server
// package, configuring it with application-specific routes and
// handlers. It exposes policy bundle generation via REST: a client
// posts a policy intent and receives the rendered multi-document
// bundle. Intents submitted over the API must carry inline manifests;
// file-path manifest sources are only resolvable by the CLI.
//
// # Usage
//
// To start the API server:
//
//	package main
//
//	import (
//	    "log"
//	    "github.com/NVIDIA/fleet-policy/pkg/api"
//	)
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Endpoints
//
// Application endpoints (with rate limiting):
//   - POST /v1/bundle - Generate a policy bundle from an intent body
//
// System endpoints (no rate limiting):
//   - GET /health  - Health check (liveness probe)
//   - GET /ready   - Readiness check
//   - GET /metrics - Prometheus metrics
//
// # Request Body (POST /v1/bundle)
//
// POST requests accept a PolicyIntent resource in the request body, in
// either YAML or JSON.
//
// Example request body:
//
//	apiVersion: fleet.nvidia.com/v1alpha1
//	kind: PolicyIntent
//	metadata:
//	  name: gpu-driver-policy
//	  namespace: fleet-system
//	spec:
//	  remediation: enforce
//	  placement:
//	    labelSelectors:
//	      environment: production
//	  manifests:
//	    - apiVersion: v1
//	      kind: ConfigMap
//	      metadata:
//	        name: driver-config
//
// Example curl command:
//
//	curl -X POST http://localhost:8080/v1/bundle \
//	  -H "Content-Type: application/yaml" \
//	  -d @intent.yaml
//
// The response is the rendered multi-document YAML bundle. Append
// ?format=json to receive a JSON envelope carrying the bundle plus
// resource metadata instead.
//
// # Configuration
//
// The server is configured via environment variables:
//   - PORT: HTTP server port (default: 8080)
//   - LOG_LEVEL: Logging level (debug, info, warn, error)
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/fleet-policy/pkg/api.version=1.0.0'"
package api
