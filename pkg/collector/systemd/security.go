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

package systemd

import (
	"context"
	"strings"

	"github.com/harvexz/secenum/pkg/inventory"
)

// Hardening directives matched literally in unit files. This is a
// best-effort heuristic, not a structural parse: directives written with
// different casing or spacing, or inside comments, are not recognized.
var hardeningDirectives = map[string]string{
	"protected_mode":        "ProtectSystem=strict",
	"private_tmp":           "PrivateTmp=yes",
	"no_new_privileges":     "NoNewPrivileges=yes",
	"restricted_namespaces": "RestrictNamespaces=yes",
}

// AnalyzeServiceSecurity derives the fixed hardening checklist for one
// service. runs_as_root and has_security_policy come from the collected
// service properties; the remaining checks scan the unit file text and each
// independently defaults to false when the file is unreadable or the
// directive absent. A name the process manager cannot resolve degrades to
// all-default checks.
func (e *Enumerator) AnalyzeServiceSecurity(ctx context.Context, name string) (inventory.SecurityChecks, error) {
	var info inventory.ServiceInfo

	c, err := e.connect(ctx)
	if err != nil {
		e.log.Warn("failed to connect to systemd for security analysis",
			"service", name, "error", err)
		info = inventory.ServiceInfo{Name: name, Status: inventory.StatusUnknown}
	} else {
		defer c.Close()
		info = e.serviceInfo(ctx, c, name)
	}

	checks := inventory.SecurityChecks{
		"runs_as_root":        info.User == "root",
		"has_security_policy": info.SecurityContext != "",
	}
	for check := range hardeningDirectives {
		checks[check] = false
	}

	if info.UnitFile == "" {
		return checks, nil
	}

	content, err := e.files.ReadFile(info.UnitFile)
	if err != nil {
		e.log.Debug("unit file unreadable, hardening checks default to false",
			"service", name, "path", info.UnitFile, "error", err)
		return checks, nil
	}

	for check, directive := range hardeningDirectives {
		checks[check] = strings.Contains(content, directive)
	}

	return checks, nil
}
