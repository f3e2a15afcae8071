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
	"path/filepath"
	"strings"
)

var (
	sourcesPath = "/etc/apt/sources.list"
	sourcesDir  = "/etc/apt/sources.list.d"
)

// VerifyRepositorySources checks every apt source file on the host.
// A file is trusted only if each uncommented, non-blank line uses an
// encrypted transport; one plaintext http:// reference marks the whole
// file untrusted.
func (m *Manager) VerifyRepositorySources(ctx context.Context) (map[string]bool, error) {
	results := make(map[string]bool)

	if m.files.Exists(sourcesPath) {
		results[sourcesPath] = m.verifySourceFile(sourcesPath)
	}

	matches, err := m.files.Glob(filepath.Join(sourcesDir, "*.list"))
	if err != nil {
		return results, err
	}
	for _, path := range matches {
		results[path] = m.verifySourceFile(path)
	}

	return results, nil
}

// verifySourceFile reports whether a single source file avoids plaintext
// transports. An unreadable file is untrusted.
func (m *Manager) verifySourceFile(path string) bool {
	content, err := m.files.ReadFile(path)
	if err != nil {
		m.log.Error("failed to read source file", "path", path, "error", err)
		return false
	}

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, "http://") && !strings.Contains(line, "https://") {
			return false
		}
	}

	// Files with only comments and blank lines are trusted.
	return true
}
