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
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/harvexz/secenum/pkg/collector"
	"github.com/harvexz/secenum/pkg/command"
	"github.com/harvexz/secenum/pkg/hostfs"
	"github.com/harvexz/secenum/pkg/inventory"
)

const (
	osReleasePath         = "/etc/os-release"
	osReleaseFallbackPath = "/usr/lib/os-release"

	cpuinfoPath = "/proc/cpuinfo"
	meminfoPath = "/proc/meminfo"
	passwdPath  = "/etc/passwd"
	uptimePath  = "/proc/uptime"
	statPath    = "/proc/stat"
)

// Gatherer collects host identity, resources, and security posture. The
// system snapshot is computed once per gatherer and memoized; construct a
// fresh gatherer to observe updated host state.
type Gatherer struct {
	exec  command.Executor
	files hostfs.Reader
	log   *slog.Logger

	once   sync.Once
	cached *inventory.SystemInfo
}

// New creates a host gatherer from the injected collaborators.
func New(opts collector.Options) *Gatherer {
	opts = opts.Normalize()
	return &Gatherer{
		exec:  opts.Executor,
		files: opts.Files,
		log:   opts.Logger,
	}
}

// SystemInfo returns the memoized host snapshot. Every field degrades
// independently: a source that cannot be read is logged and left at its
// zero value instead of failing the whole snapshot.
func (g *Gatherer) SystemInfo(ctx context.Context) (*inventory.SystemInfo, error) {
	g.once.Do(func() {
		g.cached = g.collect(ctx)
	})
	return g.cached, nil
}

func (g *Gatherer) collect(ctx context.Context) *inventory.SystemInfo {
	info := &inventory.SystemInfo{
		CPUInfo: map[string]string{},
		Users:   []string{},
	}

	if hostname, err := os.Hostname(); err == nil {
		info.Hostname = hostname
	} else {
		g.log.Warn("failed to resolve hostname", "error", err)
	}

	info.Kernel = g.unameField(ctx, "-r")
	info.Architecture = g.unameField(ctx, "-m")

	// The distribution id, not the display name, so report values stay
	// diff-stable across os-release NAME cosmetics.
	release := g.osRelease()
	info.Distribution = release["ID"]
	info.Version = release["VERSION_ID"]

	info.CPUInfo = g.cpuInfo()
	info.MemoryInfo = g.memoryInfo()
	info.Users = g.users()
	info.Uptime = g.uptime()
	info.BootTime = g.bootTime()

	return info
}

// unameField returns one field of the kernel's identification, or "".
func (g *Gatherer) unameField(ctx context.Context, flag string) string {
	res, err := g.exec.Run(ctx, "uname", flag)
	if err != nil || res.ExitCode != 0 {
		g.log.Warn("uname unavailable", "flag", flag, "error", err)
		return ""
	}
	return strings.TrimSpace(res.Stdout)
}

// osRelease parses the os-release database, falling back to the vendor copy
// when the host override is absent. Values keep their unquoted form.
func (g *Gatherer) osRelease() map[string]string {
	path := osReleasePath
	if !g.files.Exists(path) {
		path = osReleaseFallbackPath
	}

	parser := hostfs.NewParser(
		hostfs.WithReader(g.files),
		hostfs.WithVTrimChars(`"'`),
	)
	release, err := parser.GetMap(path)
	if err != nil {
		g.log.Warn("os-release unavailable", "path", path, "error", err)
		return map[string]string{}
	}
	return release
}

// cpuInfo summarizes the first processor block of /proc/cpuinfo plus the
// logical processor count.
func (g *Gatherer) cpuInfo() map[string]string {
	parser := hostfs.NewParser(hostfs.WithReader(g.files))
	lines, err := parser.GetLines(cpuinfoPath)
	if err != nil {
		g.log.Warn("cpuinfo unavailable", "error", err)
		return map[string]string{}
	}

	wanted := map[string]string{
		"model name": "model",
		"vendor_id":  "vendor",
		"cpu cores":  "cores",
		"cpu MHz":    "mhz",
	}

	cpu := map[string]string{}
	processors := 0
	for _, line := range lines {
		kv := strings.SplitN(line, ":", 2)
		key := strings.TrimSpace(kv[0])
		if key == "processor" {
			processors++
			continue
		}
		name, ok := wanted[key]
		if !ok || len(kv) != 2 {
			continue
		}
		// First processor block wins.
		if _, seen := cpu[name]; !seen {
			cpu[name] = strings.TrimSpace(kv[1])
		}
	}
	if processors > 0 {
		cpu["count"] = strconv.Itoa(processors)
	}

	return cpu
}

// memoryInfo reads the kernel's memory figures, converting the reported
// kilobyte counts into bytes.
func (g *Gatherer) memoryInfo() inventory.MemoryInfo {
	parser := hostfs.NewParser(
		hostfs.WithReader(g.files),
		hostfs.WithKVDelimiter(":"),
	)
	raw, err := parser.GetMap(meminfoPath)
	if err != nil {
		g.log.Warn("meminfo unavailable", "error", err)
		return inventory.MemoryInfo{}
	}

	return inventory.MemoryInfo{
		Total:     meminfoBytes(raw["MemTotal"]),
		Free:      meminfoBytes(raw["MemFree"]),
		Available: meminfoBytes(raw["MemAvailable"]),
	}
}

// meminfoBytes converts a meminfo value such as "16384 kB" into bytes.
func meminfoBytes(v string) int64 {
	fields := strings.Fields(v)
	if len(fields) == 0 {
		return 0
	}
	kb, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return 0
	}
	return kb * 1024
}

// users returns every account name in the host's account database.
func (g *Gatherer) users() []string {
	parser := hostfs.NewParser(hostfs.WithReader(g.files))
	lines, err := parser.GetLines(passwdPath)
	if err != nil {
		g.log.Warn("account database unavailable", "error", err)
		return []string{}
	}

	users := make([]string, 0, len(lines))
	for _, line := range lines {
		name := strings.SplitN(line, ":", 2)[0]
		if name != "" {
			users = append(users, name)
		}
	}
	return users
}

// uptime renders the host's uptime as days, hours, and minutes.
func (g *Gatherer) uptime() string {
	content, err := g.files.ReadFile(uptimePath)
	if err != nil {
		g.log.Warn("uptime unavailable", "error", err)
		return ""
	}
	fields := strings.Fields(content)
	if len(fields) == 0 {
		return ""
	}
	secs, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		g.log.Warn("unparsable uptime", "value", fields[0], "error", err)
		return ""
	}

	total := int64(secs)
	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60
	return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
}

// bootTime resolves the kernel's boot timestamp.
func (g *Gatherer) bootTime() time.Time {
	parser := hostfs.NewParser(hostfs.WithReader(g.files))
	lines, err := parser.GetLines(statPath)
	if err != nil {
		g.log.Warn("boot time unavailable", "error", err)
		return time.Time{}
	}

	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) != 2 || fields[0] != "btime" {
			continue
		}
		secs, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			g.log.Warn("unparsable boot time", "value", fields[1], "error", err)
			return time.Time{}
		}
		return time.Unix(secs, 0).UTC()
	}
	return time.Time{}
}

// IsDebianBased reports whether the host's distribution id is exactly
// debian or ubuntu, case-insensitive. Derivatives that merely declare a
// debian ancestry do not count. It reads the os-release database directly
// rather than going through the memoized snapshot.
func (g *Gatherer) IsDebianBased(_ context.Context) bool {
	switch strings.ToLower(g.osRelease()["ID"]) {
	case "debian", "ubuntu":
		return true
	default:
		return false
	}
}
