// Package placement resolves policy targeting into a canonical placement rule.
//
// A policy targets clusters in exactly one of two ways: by label selectors or
// by named cluster sets. The two variants are mutually exclusive; Resolve
// re-validates that invariant even though callers are expected to have
// rejected invalid input already.
//
// Cluster-set targeting optionally narrows the candidate clusters with label
// predicates. Predicates accept two input shapes. The full form spells the
// expression out:
//
//	key: environment
//	operator: In
//	values: [dev, test]
//
// The shorthand form maps keys to values, one entry per key with an implied
// In operator:
//
//	environment: dev
//	region: [emea, apac]
//
// Both shapes normalize to the same Expression type at the parse boundary.
package placement
