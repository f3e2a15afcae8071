// Copyright (c) 2025, SecEnum Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package collector

import (
	"context"
	"log/slog"

	"github.com/harvexz/secenum/pkg/command"
	"github.com/harvexz/secenum/pkg/hostfs"
	"github.com/harvexz/secenum/pkg/inventory"
)

// PackageManager is the capability contract over package-manager variants.
// Implementations are stateless; each coordinator call may construct its own.
type PackageManager interface {
	// InstalledPackages lists every package whose manager-reported status is
	// "installed". Unparsable per-package records are skipped with a warning.
	InstalledPackages(ctx context.Context) (map[string]inventory.PackageInfo, error)

	// VerifyPackage reports whether both the file-integrity check and the
	// signature-trust check pass. Any failure, including an unknown package,
	// yields false; it never returns an error.
	VerifyPackage(ctx context.Context, name string) bool

	// VerifyRepositorySources maps each repository source file to whether
	// every uncommented, non-blank line uses an encrypted transport.
	VerifyRepositorySources(ctx context.Context) (map[string]bool, error)

	// PackageFiles returns the ordered file manifest of a package, or a
	// COLLECTION_FAILED error if the manager cannot resolve it.
	PackageFiles(ctx context.Context, name string) ([]string, error)
}

// ServiceEnumerator is the capability contract over init-system variants.
// It observes the process manager's reported state; it never transitions
// services itself.
type ServiceEnumerator interface {
	// AllServices lists every unit of the service kind. A failure to list at
	// all is non-fatal: it returns an empty mapping and logs the error.
	AllServices(ctx context.Context) (map[string]inventory.ServiceInfo, error)

	// AnalyzeServiceSecurity derives the fixed hardening checklist for one
	// service. A name absent from the process manager's listing degrades to
	// all-default checks rather than failing.
	AnalyzeServiceSecurity(ctx context.Context, name string) (inventory.SecurityChecks, error)
}

// SystemInspector gathers host identity and security posture.
type SystemInspector interface {
	// SystemInfo returns the memoized host snapshot, computed at most once.
	SystemInfo(ctx context.Context) (*inventory.SystemInfo, error)

	// SecurityInfo returns the fixed set of host-wide boolean checks.
	SecurityInfo(ctx context.Context) (inventory.SecurityChecks, error)

	// IsDebianBased reports whether the resolved distribution id is
	// debian or ubuntu (case-insensitive).
	IsDebianBased(ctx context.Context) bool
}

// Options carries the collaborator capabilities injected into collector
// variants. The logger is scoped to one enumeration session.
type Options struct {
	Executor command.Executor
	Files    hostfs.Reader
	Logger   *slog.Logger
}

// Normalize fills missing collaborators with production defaults.
func (o Options) Normalize() Options {
	if o.Executor == nil {
		o.Executor = command.NewLocalExecutor()
	}
	if o.Files == nil {
		o.Files = hostfs.NewOSReader()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}
