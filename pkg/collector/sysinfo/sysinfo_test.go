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
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/harvexz/secenum/pkg/collector"
	"github.com/harvexz/secenum/pkg/collector/internal/testutil"
	"github.com/harvexz/secenum/pkg/command"
)

func newTestGatherer(exec *testutil.FakeExecutor, files *testutil.FakeReader) *Gatherer {
	return New(collector.Options{
		Executor: exec,
		Files:    files,
		Logger:   slog.Default(),
	})
}

func hostFixture() *testutil.FakeReader {
	return &testutil.FakeReader{Files: map[string]string{
		osReleasePath: "NAME=\"Ubuntu\"\nVERSION_ID=\"22.04\"\nID=ubuntu\nID_LIKE=debian\n",
		cpuinfoPath: "processor\t: 0\n" +
			"vendor_id\t: GenuineIntel\n" +
			"model name\t: Intel(R) Xeon(R) CPU\n" +
			"cpu MHz\t\t: 2400.000\n" +
			"cpu cores\t: 4\n" +
			"processor\t: 1\n" +
			"vendor_id\t: GenuineIntel\n" +
			"model name\t: Intel(R) Xeon(R) CPU\n",
		meminfoPath: "MemTotal:        1024 kB\nMemFree:          512 kB\nMemAvailable:     768 kB\n",
		passwdPath:  "root:x:0:0:root:/root:/bin/bash\ndaemon:x:1:1:daemon:/usr/sbin:/usr/sbin/nologin\nalice:x:1000:1000::/home/alice:/bin/bash\n",
		uptimePath:  "93784.52 181440.12\n",
		statPath:    "cpu  100 0 200 300\nbtime 1741944413\nprocesses 12345\n",
	}}
}

func hostExecutor() *testutil.FakeExecutor {
	return &testutil.FakeExecutor{
		Results: map[string]*command.Result{
			"uname -r": {Stdout: "6.8.0-45-generic\n", ExitCode: 0},
			"uname -m": {Stdout: "x86_64\n", ExitCode: 0},
		},
	}
}

func TestSystemInfo(t *testing.T) {
	g := newTestGatherer(hostExecutor(), hostFixture())
	info, err := g.SystemInfo(context.TODO())

	assert.NoError(t, err)
	assert.Equal(t, "6.8.0-45-generic", info.Kernel)
	assert.Equal(t, "x86_64", info.Architecture)
	// The os-release ID, not the display NAME.
	assert.Equal(t, "ubuntu", info.Distribution)
	assert.Equal(t, "22.04", info.Version)

	assert.Equal(t, "Intel(R) Xeon(R) CPU", info.CPUInfo["model"])
	assert.Equal(t, "GenuineIntel", info.CPUInfo["vendor"])
	assert.Equal(t, "4", info.CPUInfo["cores"])
	assert.Equal(t, "2", info.CPUInfo["count"])

	// meminfo kilobyte figures are converted to bytes.
	assert.Equal(t, int64(1048576), info.MemoryInfo.Total)
	assert.Equal(t, int64(524288), info.MemoryInfo.Free)
	assert.Equal(t, int64(786432), info.MemoryInfo.Available)

	assert.Equal(t, []string{"root", "daemon", "alice"}, info.Users)
	assert.Equal(t, "1d 2h 3m", info.Uptime)
	assert.Equal(t, time.Unix(1741944413, 0).UTC(), info.BootTime)
}

func TestSystemInfo_Memoized(t *testing.T) {
	exec := hostExecutor()
	g := newTestGatherer(exec, hostFixture())

	first, err := g.SystemInfo(context.TODO())
	assert.NoError(t, err)
	callsAfterFirst := len(exec.Calls)

	second, err := g.SystemInfo(context.TODO())
	assert.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, callsAfterFirst, len(exec.Calls))
}

func TestSystemInfo_DegradesPerSource(t *testing.T) {
	// Nothing readable, nothing executable: every field stays at its zero
	// value and the call still succeeds.
	g := newTestGatherer(&testutil.FakeExecutor{}, &testutil.FakeReader{})
	info, err := g.SystemInfo(context.TODO())

	assert.NoError(t, err)
	assert.Empty(t, info.Kernel)
	assert.Empty(t, info.Distribution)
	assert.Empty(t, info.CPUInfo)
	assert.Zero(t, info.MemoryInfo.Total)
	assert.Empty(t, info.Users)
	assert.Empty(t, info.Uptime)
	assert.True(t, info.BootTime.IsZero())
}

func TestOSRelease_Fallback(t *testing.T) {
	files := &testutil.FakeReader{Files: map[string]string{
		osReleaseFallbackPath: "NAME=\"Debian GNU/Linux\"\nVERSION_ID=\"12\"\nID=debian\n",
	}}
	g := newTestGatherer(hostExecutor(), files)
	info, err := g.SystemInfo(context.TODO())

	assert.NoError(t, err)
	assert.Equal(t, "debian", info.Distribution)
	assert.Equal(t, "12", info.Version)
}

func TestIsDebianBased(t *testing.T) {
	tests := []struct {
		name     string
		release  string
		expected bool
	}{
		{"ubuntu", "ID=ubuntu\n", true},
		{"debian", "ID=debian\n", true},
		{"uppercase id", "ID=Debian\n", true},
		{"derivative ancestry does not count", "ID=linuxmint\nID_LIKE=\"ubuntu debian\"\n", false},
		{"fedora", "ID=fedora\nID_LIKE=\"rhel centos\"\n", false},
		{"missing release", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := &testutil.FakeReader{Files: map[string]string{}}
			if tt.release != "" {
				files.Files[osReleasePath] = tt.release
			}
			g := newTestGatherer(&testutil.FakeExecutor{}, files)

			assert.Equal(t, tt.expected, g.IsDebianBased(context.TODO()))
		})
	}
}

func TestMeminfoBytes(t *testing.T) {
	tests := []struct {
		raw      string
		expected int64
	}{
		{"1024 kB", 1048576},
		{"16384", 16777216},
		{"", 0},
		{"garbage kB", 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, meminfoBytes(tt.raw))
		})
	}
}
