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

// Package collector defines the capability contracts the coordinator
// consumes (PackageManager, ServiceEnumerator, SystemInspector) and the
// platform-signature registry used to select concrete variants.
//
// # Contracts
//
// Each contract abstracts one collection concern:
//
//	type PackageManager interface {
//	    InstalledPackages(ctx context.Context) (map[string]inventory.PackageInfo, error)
//	    VerifyPackage(ctx context.Context, name string) bool
//	    VerifyRepositorySources(ctx context.Context) (map[string]bool, error)
//	    PackageFiles(ctx context.Context, name string) ([]string, error)
//	}
//
// All operations take a context for cancellation and timeout handling.
// Collectors hold no cross-call mutable state, so distinct coordinator
// calls may construct and use their own instances concurrently.
//
// # Variant selection
//
// Variants register against a platform Signature {OS, Family}:
//
//	registry := collector.NewRegistry()
//	registry.Register(
//	    collector.Signature{OS: "linux", Family: "debian"},
//	    collector.Constructors{
//	        PackageManager:    func(o collector.Options) (collector.PackageManager, error) { return apt.New(o) },
//	        ServiceEnumerator: func(o collector.Options) (collector.ServiceEnumerator, error) { return systemd.New(o) },
//	    },
//	)
//
// A host whose signature has no registration is unsupported; the coordinator
// fails construction rather than degrading silently.
//
// # Subpackages
//
//   - collector/apt: dpkg/apt package manager variant (Debian family)
//   - collector/systemd: systemd service enumerator variant
//   - collector/sysinfo: host identity and security posture gatherer
package collector
