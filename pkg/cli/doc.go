// Package cli implements the command-line interface for the fleet-policy themis tool.
//
// # Overview
//
// The themis CLI converts normalized policy intents into Open Cluster
// Management policy bundles: the Policy resource wrapping the intent's
// manifests, the Placement targeting the intent's clusters, and the
// PlacementBinding connecting the two. It is designed for fleet
// administrators managing multi-cluster NVIDIA GPU infrastructure.
//
// # Commands
//
// generate - Build policy bundles:
//
//	themis generate --intent intent.yaml [--output FILE|cm://ns/name|oci://registry/repo]
//
// Converts one or more policy intents into multi-document YAML bundles.
// Output defaults to stdout; bundles can also be written to files, a
// Kubernetes ConfigMap, or pushed to an OCI registry.
//
// validate - Check intents without generating:
//
//	themis validate --intent intent.yaml [--format yaml|json|table]
//
// Parses and validates intents, resolves their placement rules, and
// reports per-intent outcomes. Exits non-zero if any intent is invalid.
//
// # Global Flags
//
//	--output, -o   Output target (default: stdout)
//	--format, -t   Output format: yaml, json, table (default: yaml)
//	--log-level    Log level: debug, info, warn, error (default: info)
//	--help, -h     Show command help
//	--version, -v  Show version information
package cli
