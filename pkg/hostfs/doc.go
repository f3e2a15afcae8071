// Package hostfs provides the read-only file access capability consumed by
// the collectors, plus a small parser for line- and key-value-oriented host
// configuration files (os-release, /proc pseudo-files, sshd_config).
//
// Reads are size-capped and UTF-8 validated. A missing file surfaces as a
// NOT_FOUND structured error so callers can degrade the affected field
// instead of aborting collection.
package hostfs
