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

// Package server provides the HTTP server hosting the fleet-policy
// bundle API.
//
// The server is stateless and carries the usual production plumbing:
//
//   - Rate limiting using a token bucket (golang.org/x/time/rate)
//   - Request ID tracking for distributed tracing
//   - Prometheus RED metrics on all API routes
//   - Panic recovery
//   - Graceful shutdown on SIGINT/SIGTERM
//   - Health and readiness probes for Kubernetes
//
// # Usage
//
//	s := server.New(
//	    server.WithName("themisd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/bundle": handleBundle,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Endpoints
//
//   - GET / - service identity and route listing
//   - GET /health - liveness probe
//   - GET /ready - readiness probe
//   - GET /metrics - Prometheus metrics
//
// Routes supplied via WithHandler are mounted behind the full
// middleware chain; system endpoints are not rate limited.
package server
