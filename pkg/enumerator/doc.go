// Package enumerator coordinates the collector capabilities into complete
// host reports.
//
// The enumerator resolves the host's platform signature against a variant
// registry at construction time, then exposes a small set of read-only
// operations: a full enumeration producing a single consistently shaped
// aggregate, narrow per-category listings, and a security analysis run.
// Collection within a run is strictly ordered; per-item enrichment fans out
// with bounded concurrency.
package enumerator
