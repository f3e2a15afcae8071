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

package inventory

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseServiceStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected ServiceStatus
	}{
		{"active", StatusActive},
		{"inactive", StatusInactive},
		{"failed", StatusFailed},
		{"activating", StatusUnknown},
		{"deactivating", StatusUnknown},
		{"", StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseServiceStatus(tt.input))
		})
	}
}

func TestPackageInfo_SignatureValidNeverMissing(t *testing.T) {
	// Unknown signature state must serialize as an explicit null,
	// never be dropped from the record.
	pkg := PackageInfo{Name: "bash", Version: "5.1", Architecture: "amd64"}

	b, err := json.Marshal(pkg)
	assert.NoError(t, err)
	assert.Contains(t, string(b), `"signature_valid":null`)

	pkg.SignatureValid = BoolPtr(true)
	b, err = json.Marshal(pkg)
	assert.NoError(t, err)
	assert.Contains(t, string(b), `"signature_valid":true`)
}

func TestServiceRecord_InlinesServiceInfo(t *testing.T) {
	rec := ServiceRecord{
		ServiceInfo: ServiceInfo{
			Name:         "sshd",
			Status:       StatusActive,
			Enabled:      true,
			Loaded:       true,
			UnitFile:     "/lib/systemd/system/ssh.service",
			Dependencies: []string{"network.target"},
		},
		SecurityAnalysis: SecurityChecks{"runs_as_root": true},
	}

	b, err := json.Marshal(rec)
	assert.NoError(t, err)

	s := string(b)
	// ServiceInfo fields are promoted to the top level next to the analysis.
	assert.Contains(t, s, `"name":"sshd"`)
	assert.Contains(t, s, `"security_analysis":{"runs_as_root":true}`)
	assert.False(t, strings.Contains(s, `"ServiceInfo"`))
}

func TestEnumerationResult_SchemaKeys(t *testing.T) {
	res := EnumerationResult{
		Packages:     map[string]PackageInfo{},
		Services:     map[string]ServiceRecord{},
		SecurityInfo: SecurityChecks{},
	}

	b, err := json.Marshal(res)
	assert.NoError(t, err)

	var top map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(b, &top))

	for _, key := range []string{"timestamp", "system_info", "packages", "services", "security_info"} {
		assert.Contains(t, top, key)
	}
	assert.Len(t, top, 5)
}

func TestSecurityReport_VerificationRate(t *testing.T) {
	tests := []struct {
		name     string
		security map[string]bool
		expected float64
	}{
		{"empty", map[string]bool{}, 0},
		{"all verified", map[string]bool{"a": true, "b": true}, 1},
		{"half verified", map[string]bool{"a": true, "b": false}, 0.5},
		{"none verified", map[string]bool{"a": false}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := SecurityReport{PackageSecurity: tt.security}
			assert.InDelta(t, tt.expected, r.VerificationRate(), 1e-9)
		})
	}
}
