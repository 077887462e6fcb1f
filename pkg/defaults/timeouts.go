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

package defaults

import "time"

// Handler timeouts for HTTP request processing.
const (
	// BundleHandlerTimeout is the timeout for bundle generation requests.
	// Bundle generation is pure in-memory work and completes well under a
	// second; the margin covers request body reads on slow connections.
	BundleHandlerTimeout = 30 * time.Second
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading the entire request.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout is the maximum duration for reading request headers.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration before timing out response writes.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum time to wait for the next request on
	// a keep-alive connection.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum time allowed for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// Kubernetes API operation timeouts.
const (
	// ConfigMapWriteTimeout is the timeout for writing a bundle to a ConfigMap.
	ConfigMapWriteTimeout = 30 * time.Second
)

// OCI registry operation timeouts.
const (
	// OCIPushTimeout is the timeout for pushing a bundle artifact to a registry.
	OCIPushTimeout = 2 * time.Minute
)

// HTTP client timeouts for fetching remote intent files.
const (
	// HTTPClientTimeout is the total time allowed for one request.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the TCP connect timeout.
	HTTPConnectTimeout = 10 * time.Second

	// HTTPKeepAlive is the keep-alive period for established connections.
	HTTPKeepAlive = 30 * time.Second

	// HTTPTLSHandshakeTimeout is the TLS handshake timeout.
	HTTPTLSHandshakeTimeout = 10 * time.Second

	// HTTPResponseHeaderTimeout is the time to wait for response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second

	// HTTPIdleConnTimeout is how long idle connections are kept in the pool.
	HTTPIdleConnTimeout = 90 * time.Second
)
