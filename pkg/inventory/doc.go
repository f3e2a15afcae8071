// Package inventory defines the report data model: package, service, and
// host records plus the EnumerationResult aggregate.
//
// Field names and nesting form a stable serialized contract: downstream
// tooling diffs reports across runs, so json/yaml tags here must not change
// without a schema version bump.
package inventory
