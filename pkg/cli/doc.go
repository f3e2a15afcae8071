/*
Copyright © 2025 SecEnum Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package cli implements the secenum command line interface.
//
// The CLI exposes four commands, all strictly read-only: scan (full
// enumeration), packages and services (narrow listings), and analyze
// (security assessment). Output goes to stdout or a file in JSON, YAML,
// or table format.
package cli
