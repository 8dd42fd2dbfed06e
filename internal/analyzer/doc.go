// Package analyzer derives structured signals from a repository snapshot:
// primary and secondary languages, detected frameworks, an inferred purpose
// tag, ranked keyword candidates, and a heuristic content-quality score.
//
// Analysis is a pure function over the snapshot; it performs no network or
// filesystem access, and a missing README degrades the derived fields to
// defaults instead of failing.
package analyzer
