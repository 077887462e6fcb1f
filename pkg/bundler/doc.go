// Package bundler assembles a policy intent and its resolved placement
// rule into an ordered bundle of cluster-management resources: one
// Policy, zero or more ManagedClusterSetBindings, one Placement, and
// one PlacementBinding. The builder is a pure function of its inputs
// and performs no I/O.
package bundler
