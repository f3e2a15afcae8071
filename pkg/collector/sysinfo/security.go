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

package sysinfo

import (
	"context"
	"strings"

	"github.com/harvexz/secenum/pkg/inventory"
)

const (
	selinuxConfigPath = "/etc/selinux/config"
	apparmorFSPath    = "/sys/kernel/security/apparmor"
	sshdConfigPath    = "/etc/ssh/sshd_config"
)

// SecurityInfo derives the fixed set of host-wide boolean checks. Every
// check degrades to false when its source is unavailable; the method itself
// never fails.
func (g *Gatherer) SecurityInfo(ctx context.Context) (inventory.SecurityChecks, error) {
	return inventory.SecurityChecks{
		"selinux_enabled":     g.files.Exists(selinuxConfigPath),
		"apparmor_enabled":    g.files.Exists(apparmorFSPath),
		"firewall_enabled":    g.firewallActive(ctx),
		"ssh_running":         g.sshRunning(ctx),
		"root_login_disabled": g.rootLoginDisabled(),
	}, nil
}

// firewallActive reports whether the ufw frontend declares itself active.
// Only the exact status line counts; "Status: inactive" must not match.
func (g *Gatherer) firewallActive(ctx context.Context) bool {
	res, err := g.exec.Run(ctx, "ufw", "status")
	if err != nil || res.ExitCode != 0 {
		return false
	}
	for _, line := range strings.Split(res.Stdout, "\n") {
		if strings.TrimSpace(line) == "Status: active" {
			return true
		}
	}
	return false
}

// sshRunning reports whether the init system considers the ssh service
// active. Asking the process manager rather than grepping for a process
// keeps socket-activated and user-spawned daemons out of the answer.
func (g *Gatherer) sshRunning(ctx context.Context) bool {
	res, err := g.exec.Run(ctx, "systemctl", "is-active", "ssh")
	return err == nil && res.ExitCode == 0
}

// rootLoginDisabled reports whether the SSH daemon configuration explicitly
// forbids root logins. An absent or unreadable configuration, or any value
// other than "no", counts as not disabled.
func (g *Gatherer) rootLoginDisabled() bool {
	content, err := g.files.ReadFile(sshdConfigPath)
	if err != nil {
		return false
	}
	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 || !strings.EqualFold(fields[0], "PermitRootLogin") {
			continue
		}
		return strings.EqualFold(fields[1], "no")
	}
	return false
}
