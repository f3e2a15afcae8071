// Package command abstracts external process invocation behind the
// Executor contract consumed by all collectors.
//
// The local implementation pins the locale (LC_ALL=C) so textual command
// output parses identically across hosts, applies a bounded wait to every
// invocation, and can rate-limit spawns during per-item analysis fan-out.
// Non-zero exit codes are data (Result.ExitCode), not errors; errors mean
// the command never ran or timed out.
package command
