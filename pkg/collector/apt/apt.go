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

package apt

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/harvexz/secenum/pkg/collector"
	"github.com/harvexz/secenum/pkg/command"
	"github.com/harvexz/secenum/pkg/errors"
	"github.com/harvexz/secenum/pkg/hostfs"
	"github.com/harvexz/secenum/pkg/inventory"
)

var (
	dpkgStatusPath = "/var/lib/dpkg/status"

	// dpkg-query record format: seven tab-separated fields per package.
	queryFormat = "${Package}\t${Version}\t${Architecture}\t${Status}\t${Installed-Size}\t${Maintainer}\t${Description}\n"
)

const queryFields = 7

// Manager is the PackageManager variant for dpkg/apt hosts.
type Manager struct {
	exec  command.Executor
	files hostfs.Reader
	log   *slog.Logger
}

// New creates the apt package manager. It fails with UNSUPPORTED_PLATFORM
// when the dpkg status database is absent on this host.
func New(opts collector.Options) (*Manager, error) {
	opts = opts.Normalize()

	if !opts.Files.Exists(dpkgStatusPath) {
		return nil, errors.NewWithContext(errors.ErrCodeUnsupportedPlatform,
			"dpkg status database not found; host is not Debian-based",
			map[string]any{"path": dpkgStatusPath})
	}

	return &Manager{
		exec:  opts.Executor,
		files: opts.Files,
		log:   opts.Logger,
	}, nil
}

// InstalledPackages lists every package dpkg reports as installed.
// Records that do not parse into the expected fixed-arity format are
// skipped with a warning; a failing dpkg-query invocation is fatal.
func (m *Manager) InstalledPackages(ctx context.Context) (map[string]inventory.PackageInfo, error) {
	res, err := m.exec.Run(ctx, "dpkg-query", "-W", "-f="+queryFormat)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCollection, "failed to run dpkg-query", err)
	}
	if res.ExitCode != 0 {
		return nil, errors.NewWithContext(errors.ErrCodeCollection, "failed to get package list",
			map[string]any{"exit_code": res.ExitCode, "stderr": strings.TrimSpace(res.Stderr)})
	}

	packages := make(map[string]inventory.PackageInfo)
	for _, line := range strings.Split(res.Stdout, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.SplitN(line, "\t", queryFields)
		if len(fields) != queryFields {
			m.log.Warn("skipping unparsable package record",
				"line", line, "expected_fields", queryFields, "got", len(fields))
			continue
		}

		name, version, arch, status := fields[0], fields[1], fields[2], fields[3]
		if !strings.Contains(status, "installed") {
			// Removed-but-configured and half-installed states are
			// excluded silently; they are not errors.
			continue
		}

		pkg := inventory.PackageInfo{
			Name:           name,
			Version:        version,
			Architecture:   arch,
			Maintainer:     fields[5],
			Description:    fields[6],
			Size:           parseInstalledSize(fields[4]),
			SignatureValid: m.signatureValid(ctx, name),
		}
		packages[name] = pkg
	}

	return packages, nil
}

// VerifyPackage reports whether the package passes both dpkg's file
// integrity check and the signature trust check. Any failure, including an
// unknown package or a timed-out command, yields false.
func (m *Manager) VerifyPackage(ctx context.Context, name string) bool {
	res, err := m.exec.Run(ctx, "dpkg", "--verify", name)
	if err != nil || res.ExitCode != 0 {
		return false
	}

	sig := m.signatureValid(ctx, name)
	return sig != nil && *sig
}

// signatureValid runs the signature-trust check for one package.
// Returns nil (unknown) when the check could not run at all.
func (m *Manager) signatureValid(ctx context.Context, name string) *bool {
	res, err := m.exec.Run(ctx, "apt-key", "verify", name)
	if err != nil {
		m.log.Debug("signature check unavailable", "package", name, "error", err)
		return nil
	}
	return inventory.BoolPtr(res.ExitCode == 0)
}

// PackageFiles returns the ordered list of files installed by a package.
func (m *Manager) PackageFiles(ctx context.Context, name string) ([]string, error) {
	res, err := m.exec.Run(ctx, "dpkg-query", "-L", name)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCollection, "failed to run dpkg-query -L", err)
	}
	if res.ExitCode != 0 {
		return nil, errors.NewWithContext(errors.ErrCodeCollection, "failed to get file list",
			map[string]any{"package": name, "stderr": strings.TrimSpace(res.Stderr)})
	}

	lines := strings.Split(res.Stdout, "\n")
	paths := make([]string, 0, len(lines))
	for _, line := range lines {
		if p := strings.TrimSpace(line); p != "" {
			paths = append(paths, p)
		}
	}
	return paths, nil
}

// parseInstalledSize converts dpkg's Installed-Size (in kB) to bytes.
func parseInstalledSize(raw string) *int64 {
	kb, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || kb < 0 {
		return nil
	}
	return inventory.Int64Ptr(kb * 1024)
}
