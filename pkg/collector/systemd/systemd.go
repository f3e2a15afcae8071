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
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/coreos/go-systemd/v22/dbus"

	"github.com/harvexz/secenum/pkg/collector"
	"github.com/harvexz/secenum/pkg/command"
	"github.com/harvexz/secenum/pkg/errors"
	"github.com/harvexz/secenum/pkg/hostfs"
	"github.com/harvexz/secenum/pkg/inventory"
)

const (
	systemdRuntimePath = "/run/systemd/system"
	unitSuffix         = ".service"

	apparmorFSPath = "/sys/kernel/security/apparmor"
	selinuxPath    = "/etc/selinux"
)

// conn is the slice of the systemd D-Bus API the enumerator uses,
// extracted for testability.
type conn interface {
	ListUnitsByPatternsContext(ctx context.Context, states, patterns []string) ([]dbus.UnitStatus, error)
	GetAllPropertiesContext(ctx context.Context, unit string) (map[string]interface{}, error)
	Close()
}

// Enumerator is the ServiceEnumerator variant for systemd hosts. It reads
// unit state over the systemd D-Bus API and never transitions services.
type Enumerator struct {
	exec    command.Executor
	files   hostfs.Reader
	log     *slog.Logger
	connect func(ctx context.Context) (conn, error)
}

// New creates the systemd enumerator. It fails with UNSUPPORTED_PLATFORM
// when systemd is not the active init system on this host.
func New(opts collector.Options) (*Enumerator, error) {
	opts = opts.Normalize()

	if !opts.Files.Exists(systemdRuntimePath) {
		return nil, errors.NewWithContext(errors.ErrCodeUnsupportedPlatform,
			"systemd is not the active init system",
			map[string]any{"path": systemdRuntimePath})
	}

	return &Enumerator{
		exec:  opts.Executor,
		files: opts.Files,
		log:   opts.Logger,
		connect: func(ctx context.Context) (conn, error) {
			return dbus.NewSystemdConnectionContext(ctx)
		},
	}, nil
}

// AllServices lists every unit of the service kind with its resolved
// properties. A failure to list at all is non-fatal: the error is logged
// and an empty mapping is returned so the caller proceeds with degraded data.
func (e *Enumerator) AllServices(ctx context.Context) (map[string]inventory.ServiceInfo, error) {
	services := make(map[string]inventory.ServiceInfo)

	c, err := e.connect(ctx)
	if err != nil {
		e.log.Error("failed to connect to systemd", "error", err)
		return services, nil
	}
	defer c.Close()

	units, err := c.ListUnitsByPatternsContext(ctx, nil, []string{"*" + unitSuffix})
	if err != nil {
		e.log.Error("failed to list service units", "error", err)
		return services, nil
	}

	for _, unit := range units {
		if !strings.HasSuffix(unit.Name, unitSuffix) {
			continue
		}
		name := strings.TrimSuffix(unit.Name, unitSuffix)
		services[name] = e.serviceInfo(ctx, c, name)
	}

	return services, nil
}

// serviceInfo resolves the properties of one service. A name the process
// manager cannot resolve degrades to status unknown rather than failing.
func (e *Enumerator) serviceInfo(ctx context.Context, c conn, name string) inventory.ServiceInfo {
	props, err := c.GetAllPropertiesContext(ctx, name+unitSuffix)
	if err != nil {
		e.log.Warn("service properties unavailable", "service", name, "error", err)
		return inventory.ServiceInfo{
			Name:         name,
			Status:       inventory.StatusUnknown,
			Dependencies: []string{},
		}
	}

	info := inventory.ServiceInfo{
		Name:         name,
		Status:       inventory.ParseServiceStatus(propString(props, "ActiveState")),
		Enabled:      propString(props, "UnitFileState") == "enabled",
		Loaded:       propString(props, "LoadState") == "loaded",
		UnitFile:     propString(props, "FragmentPath"),
		Description:  propString(props, "Description"),
		Dependencies: dependencies(props),
		StartTime:    usecTimestamp(props, "ActiveEnterTimestamp"),
		RestartCount: int(propUint(props, "NRestarts")),
		User:         propString(props, "User"),
		Group:        propString(props, "Group"),
	}

	if pid := int(propUint(props, "MainPID")); pid > 0 {
		info.ProcessID = inventory.IntPtr(pid)
		info.MemoryUsage = e.memoryUsage(props, pid)
	}

	info.SecurityContext = e.securityContext(ctx, name, info.ProcessID)

	return info
}

// dependencies resolves the ordered dependency names of a unit from its
// Requires and Wants properties, in that order, stripped of unit suffixes.
func dependencies(props map[string]interface{}) []string {
	deps := make([]string, 0)
	for _, key := range []string{"Requires", "Wants"} {
		for _, dep := range propStrings(props, key) {
			deps = append(deps, strings.TrimSuffix(dep, unitSuffix))
		}
	}
	return deps
}

// memoryUsage returns the service's memory consumption in bytes, preferring
// systemd's accounting and falling back to the kernel's VmRSS figure.
func (e *Enumerator) memoryUsage(props map[string]interface{}, pid int) *int64 {
	if v := propUint(props, "MemoryCurrent"); v > 0 && v != math.MaxUint64 {
		return inventory.Int64Ptr(int64(v))
	}

	content, err := e.files.ReadFile("/proc/" + strconv.Itoa(pid) + "/status")
	if err != nil {
		return nil
	}
	for _, line := range strings.Split(content, "\n") {
		if !strings.HasPrefix(line, "VmRSS:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil
		}
		kb, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil
		}
		return inventory.Int64Ptr(kb * 1024)
	}
	return nil
}

// securityContext resolves the MAC label attached to a service, if any:
// the AppArmor profile line when AppArmor is loaded, otherwise the SELinux
// context of the main process.
func (e *Enumerator) securityContext(ctx context.Context, name string, pid *int) string {
	if e.files.Exists(apparmorFSPath) {
		res, err := e.exec.Run(ctx, "aa-status")
		if err != nil || res.ExitCode != 0 {
			return ""
		}
		for _, line := range strings.Split(res.Stdout, "\n") {
			if strings.Contains(line, name) {
				return "AppArmor: " + strings.TrimSpace(line)
			}
		}
		return ""
	}

	if e.files.Exists(selinuxPath) && pid != nil {
		res, err := e.exec.Run(ctx, "ps", "-Z", strconv.Itoa(*pid))
		if err != nil || res.ExitCode != 0 {
			return ""
		}
		lines := strings.Split(strings.TrimSpace(res.Stdout), "\n")
		if len(lines) < 2 {
			return ""
		}
		fields := strings.Fields(lines[1])
		if len(fields) == 0 {
			return ""
		}
		return "SELinux: " + fields[0]
	}

	return ""
}

// usecTimestamp converts a systemd microsecond timestamp property into a
// time, or nil when unset.
func usecTimestamp(props map[string]interface{}, key string) *time.Time {
	usec := propUint(props, key)
	if usec == 0 {
		return nil
	}
	t := time.UnixMicro(int64(usec))
	return &t
}

// propString returns the named property as a string, or "".
func propString(props map[string]interface{}, key string) string {
	if v, ok := props[key].(string); ok {
		return v
	}
	return ""
}

// propStrings returns the named property as a string slice, or nil.
func propStrings(props map[string]interface{}, key string) []string {
	if v, ok := props[key].([]string); ok {
		return v
	}
	return nil
}

// propUint returns the named property as a uint64, tolerating the integer
// widths the D-Bus mapping produces.
func propUint(props map[string]interface{}, key string) uint64 {
	switch v := props[key].(type) {
	case uint64:
		return v
	case uint32:
		return uint64(v)
	case int64:
		if v < 0 {
			return 0
		}
		return uint64(v)
	case int:
		if v < 0 {
			return 0
		}
		return uint64(v)
	default:
		return 0
	}
}
