// Package merge combines per-page analysis results into the accumulated
// site report.
//
// Merging is monotonically additive: nothing is ever removed from the
// accumulated report, and re-merging an already-analyzed page is a no-op.
// Missing sub-structures in an incoming result are treated as empty
// rather than as errors, so a partially populated page result still
// merges cleanly.
//
// Callers must serialize merges. There is exactly one persisted
// accumulated report per site, maintained read-modify-write by a single
// writer; the engine itself holds no locks.
package merge
