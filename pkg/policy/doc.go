// Package policy defines the normalized policy intent: the validated
// specification a bundle is built from, plus the on-disk PolicyIntent
// file format that the CLI and API surfaces accept.
package policy
