// Package systemd implements the ServiceEnumerator capability over the
// systemd D-Bus API.
//
// Enumeration is purely observational: the package reports the state the
// process manager holds for each unit and derives a per-service hardening
// checklist from unit-file directives, but never starts, stops, or reloads
// anything.
package systemd
