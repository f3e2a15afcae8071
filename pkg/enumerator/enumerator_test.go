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

package enumerator

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harvexz/secenum/pkg/collector"
	"github.com/harvexz/secenum/pkg/errors"
	"github.com/harvexz/secenum/pkg/inventory"
)

type fakePackageManager struct {
	packages map[string]inventory.PackageInfo
	listErr  error
	verified map[string]bool
}

func (f *fakePackageManager) InstalledPackages(_ context.Context) (map[string]inventory.PackageInfo, error) {
	return f.packages, f.listErr
}

func (f *fakePackageManager) VerifyPackage(_ context.Context, name string) bool {
	return f.verified[name]
}

func (f *fakePackageManager) VerifyRepositorySources(_ context.Context) (map[string]bool, error) {
	return map[string]bool{}, nil
}

func (f *fakePackageManager) PackageFiles(_ context.Context, name string) ([]string, error) {
	return nil, errors.New(errors.ErrCodeCollection, "not implemented")
}

type fakeServiceEnumerator struct {
	services map[string]inventory.ServiceInfo
	checks   map[string]inventory.SecurityChecks
}

func (f *fakeServiceEnumerator) AllServices(_ context.Context) (map[string]inventory.ServiceInfo, error) {
	return f.services, nil
}

func (f *fakeServiceEnumerator) AnalyzeServiceSecurity(_ context.Context, name string) (inventory.SecurityChecks, error) {
	if checks, ok := f.checks[name]; ok {
		return checks, nil
	}
	return inventory.SecurityChecks{"runs_as_root": false}, nil
}

type fakeInspector struct {
	info     *inventory.SystemInfo
	security inventory.SecurityChecks
	debian   bool
}

func (f *fakeInspector) SystemInfo(_ context.Context) (*inventory.SystemInfo, error) {
	return f.info, nil
}

func (f *fakeInspector) SecurityInfo(_ context.Context) (inventory.SecurityChecks, error) {
	return f.security, nil
}

func (f *fakeInspector) IsDebianBased(_ context.Context) bool {
	return f.debian
}

func testRegistry(pkgs collector.PackageManager, svcs collector.ServiceEnumerator) *collector.Registry {
	r := collector.NewRegistry()
	r.Register(collector.Signature{OS: "linux", Family: "debian"}, collector.Constructors{
		PackageManager: func(collector.Options) (collector.PackageManager, error) {
			return pkgs, nil
		},
		ServiceEnumerator: func(collector.Options) (collector.ServiceEnumerator, error) {
			return svcs, nil
		},
	})
	return r
}

func newTestEnumerator(t *testing.T, pkgs *fakePackageManager, svcs *fakeServiceEnumerator, host *fakeInspector) *Enumerator {
	t.Helper()

	e, err := New(context.TODO(),
		WithRegistry(testRegistry(pkgs, svcs)),
		WithInspector(host),
		withGOOS("linux"),
	)
	if err != nil {
		t.Fatalf("failed to construct enumerator: %v", err)
	}
	return e
}

func fixtureCollectors() (*fakePackageManager, *fakeServiceEnumerator, *fakeInspector) {
	pkgs := &fakePackageManager{
		packages: map[string]inventory.PackageInfo{
			"bash":  {Name: "bash", Version: "5.1", SignatureValid: inventory.BoolPtr(true)},
			"nginx": {Name: "nginx", Version: "1.24"},
		},
		verified: map[string]bool{"bash": true, "nginx": false},
	}
	svcs := &fakeServiceEnumerator{
		services: map[string]inventory.ServiceInfo{
			"nginx": {Name: "nginx", Status: inventory.StatusActive, Dependencies: []string{}},
			"cron":  {Name: "cron", Status: inventory.StatusInactive, Dependencies: []string{}},
		},
		checks: map[string]inventory.SecurityChecks{
			"nginx": {"runs_as_root": false, "protected_mode": true},
			"cron":  {"runs_as_root": true, "protected_mode": false},
		},
	}
	host := &fakeInspector{
		info: &inventory.SystemInfo{
			Hostname:     "host-1",
			Distribution: "Ubuntu",
			CPUInfo:      map[string]string{},
			Users:        []string{},
		},
		security: inventory.SecurityChecks{"firewall_enabled": true},
		debian:   true,
	}
	return pkgs, svcs, host
}

func TestNew_UnsupportedOS(t *testing.T) {
	pkgs, svcs, host := fixtureCollectors()

	_, err := New(context.TODO(),
		WithRegistry(testRegistry(pkgs, svcs)),
		WithInspector(host),
		withGOOS("darwin"),
	)

	assert.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnsupportedPlatform))
}

func TestNew_UnregisteredFamily(t *testing.T) {
	pkgs, svcs, host := fixtureCollectors()
	host.debian = false
	host.info.Distribution = "Fedora"

	_, err := New(context.TODO(),
		WithRegistry(testRegistry(pkgs, svcs)),
		WithInspector(host),
		withGOOS("linux"),
	)

	assert.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnsupportedPlatform))
}

func TestEnumerateAll(t *testing.T) {
	pkgs, svcs, host := fixtureCollectors()
	e := newTestEnumerator(t, pkgs, svcs, host)

	result, err := e.EnumerateAll(context.TODO())

	assert.NoError(t, err)
	assert.False(t, result.Timestamp.IsZero())
	assert.Equal(t, "host-1", result.SystemInfo.Hostname)
	assert.Len(t, result.Packages, 2)
	assert.Len(t, result.Services, 2)
	assert.True(t, result.SecurityInfo["firewall_enabled"])

	// Every service carries its own analysis.
	nginx := result.Services["nginx"]
	assert.Equal(t, inventory.StatusActive, nginx.Status)
	assert.True(t, nginx.SecurityAnalysis["protected_mode"])
	cron := result.Services["cron"]
	assert.True(t, cron.SecurityAnalysis["runs_as_root"])
}

func TestEnumerateAll_CategoryFailureIsFatal(t *testing.T) {
	pkgs, svcs, host := fixtureCollectors()
	pkgs.listErr = errors.New(errors.ErrCodeCollection, "dpkg database locked")
	e := newTestEnumerator(t, pkgs, svcs, host)

	result, err := e.EnumerateAll(context.TODO())

	assert.Nil(t, result)
	assert.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeCollection))
}

func TestEnumerateAll_StableSchema(t *testing.T) {
	pkgs, svcs, host := fixtureCollectors()
	e := newTestEnumerator(t, pkgs, svcs, host)

	result, err := e.EnumerateAll(context.TODO())
	assert.NoError(t, err)

	raw, err := json.Marshal(result)
	assert.NoError(t, err)

	var decoded map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(raw, &decoded))
	for _, key := range []string{"timestamp", "system_info", "packages", "services", "security_info"} {
		assert.Contains(t, decoded, key)
	}

	// Unknown signature state serializes as an explicit null, never missing.
	var packages map[string]map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(decoded["packages"], &packages))
	assert.Equal(t, "null", string(packages["nginx"]["signature_valid"]))
	assert.Equal(t, "true", string(packages["bash"]["signature_valid"]))
}

func TestAnalyzeSecurity(t *testing.T) {
	pkgs, svcs, host := fixtureCollectors()
	e := newTestEnumerator(t, pkgs, svcs, host)

	report, err := e.AnalyzeSecurity(context.TODO())

	assert.NoError(t, err)
	assert.True(t, report.SystemSecurity["firewall_enabled"])
	assert.Len(t, report.PackageSecurity, 2)
	assert.True(t, report.PackageSecurity["bash"])
	assert.False(t, report.PackageSecurity["nginx"])
	assert.Equal(t, 1, report.VerifiedPackages())
	assert.InDelta(t, 0.5, report.VerificationRate(), 1e-9)

	assert.Len(t, report.ServiceSecurity, 2)
	assert.True(t, report.ServiceSecurity["cron"]["runs_as_root"])
}

func TestVerificationRate_EmptyPopulation(t *testing.T) {
	report := &inventory.SecurityReport{PackageSecurity: map[string]bool{}}
	assert.Zero(t, report.VerificationRate())
}
