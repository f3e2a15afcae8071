// Package sysinfo implements the SystemInspector capability: host identity
// and resource figures from the kernel's procfs surfaces, plus the
// host-wide security posture checks.
//
// The system snapshot is collected once per gatherer and memoized; all
// sources degrade independently so a single unreadable file never fails
// the snapshot.
package sysinfo
