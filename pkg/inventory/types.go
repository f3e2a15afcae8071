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

import "time"

// PackageInfo describes one installed software package.
// Name is the stable identity within a report; re-running collection may
// change any other field.
type PackageInfo struct {
	Name         string     `json:"name" yaml:"name"`
	Version      string     `json:"version" yaml:"version"`
	Architecture string     `json:"architecture" yaml:"architecture"`
	InstallDate  *time.Time `json:"install_date,omitempty" yaml:"install_date,omitempty"`
	Size         *int64     `json:"size,omitempty" yaml:"size,omitempty"`
	Source       string     `json:"source,omitempty" yaml:"source,omitempty"`
	Maintainer   string     `json:"maintainer,omitempty" yaml:"maintainer,omitempty"`
	// SignatureValid is true/false when the trust check completed and nil
	// when the result is unknown. It is always serialized.
	SignatureValid *bool  `json:"signature_valid" yaml:"signature_valid"`
	Description    string `json:"description,omitempty" yaml:"description,omitempty"`
}

// ServiceStatus is the process manager's reported state for a service.
// The enumerator observes states, it never transitions services.
type ServiceStatus string

const (
	StatusActive   ServiceStatus = "active"
	StatusInactive ServiceStatus = "inactive"
	StatusFailed   ServiceStatus = "failed"
	StatusUnknown  ServiceStatus = "unknown"
)

// ParseServiceStatus maps a raw process-manager state onto the fixed status
// set, defaulting to unknown.
func ParseServiceStatus(s string) ServiceStatus {
	switch ServiceStatus(s) {
	case StatusActive, StatusInactive, StatusFailed:
		return ServiceStatus(s)
	default:
		return StatusUnknown
	}
}

// ServiceInfo describes one process-manager service unit as collected.
// It is a value record: the coordinator enriches it via ServiceRecord
// instead of mutating it in place.
type ServiceInfo struct {
	Name            string        `json:"name" yaml:"name"`
	Status          ServiceStatus `json:"status" yaml:"status"`
	Enabled         bool          `json:"enabled" yaml:"enabled"`
	Loaded          bool          `json:"loaded" yaml:"loaded"`
	UnitFile        string        `json:"unit_file" yaml:"unit_file"`
	Description     string        `json:"description,omitempty" yaml:"description,omitempty"`
	Dependencies    []string      `json:"dependencies" yaml:"dependencies"`
	StartTime       *time.Time    `json:"start_time,omitempty" yaml:"start_time,omitempty"`
	RestartCount    int           `json:"restart_count" yaml:"restart_count"`
	ProcessID       *int          `json:"process_id,omitempty" yaml:"process_id,omitempty"`
	MemoryUsage     *int64        `json:"memory_usage,omitempty" yaml:"memory_usage,omitempty"`
	User            string        `json:"user,omitempty" yaml:"user,omitempty"`
	Group           string        `json:"group,omitempty" yaml:"group,omitempty"`
	SecurityContext string        `json:"security_context,omitempty" yaml:"security_context,omitempty"`
}

// SecurityChecks is a mapping of named boolean security checks.
type SecurityChecks map[string]bool

// ServiceRecord is a ServiceInfo enriched with its security analysis.
// The coordinator builds these; collectors never attach analysis themselves.
type ServiceRecord struct {
	ServiceInfo      `yaml:",inline"`
	SecurityAnalysis SecurityChecks `json:"security_analysis,omitempty" yaml:"security_analysis,omitempty"`
}

// MemoryInfo holds host memory figures in bytes.
type MemoryInfo struct {
	Total     int64 `json:"total" yaml:"total"`
	Free      int64 `json:"free" yaml:"free"`
	Available int64 `json:"available" yaml:"available"`
}

// SystemInfo is an immutable snapshot of host identity and resources.
type SystemInfo struct {
	Hostname     string            `json:"hostname" yaml:"hostname"`
	Kernel       string            `json:"kernel" yaml:"kernel"`
	Distribution string            `json:"distribution" yaml:"distribution"`
	Version      string            `json:"version" yaml:"version"`
	Architecture string            `json:"architecture" yaml:"architecture"`
	CPUInfo      map[string]string `json:"cpu_info" yaml:"cpu_info"`
	MemoryInfo   MemoryInfo        `json:"memory_info" yaml:"memory_info"`
	Users        []string          `json:"users" yaml:"users"`
	Uptime       string            `json:"uptime" yaml:"uptime"`
	BootTime     time.Time         `json:"boot_time" yaml:"boot_time"`
}

// EnumerationResult is the sole externally visible aggregate of a full
// enumeration run. It is either fully populated or the run fails; no
// partial aggregate is ever returned.
type EnumerationResult struct {
	Timestamp    time.Time                `json:"timestamp" yaml:"timestamp"`
	SystemInfo   SystemInfo               `json:"system_info" yaml:"system_info"`
	Packages     map[string]PackageInfo   `json:"packages" yaml:"packages"`
	Services     map[string]ServiceRecord `json:"services" yaml:"services"`
	SecurityInfo SecurityChecks           `json:"security_info" yaml:"security_info"`
}

// SecurityReport groups the three independent security assessments without
// folding them into an EnumerationResult.
type SecurityReport struct {
	SystemSecurity  SecurityChecks            `json:"system_security" yaml:"system_security"`
	PackageSecurity map[string]bool           `json:"package_security" yaml:"package_security"`
	ServiceSecurity map[string]SecurityChecks `json:"service_security" yaml:"service_security"`
}

// VerifiedPackages returns the number of packages whose verification passed.
func (r *SecurityReport) VerifiedPackages() int {
	n := 0
	for _, ok := range r.PackageSecurity {
		if ok {
			n++
		}
	}
	return n
}

// VerificationRate returns the fraction of packages that verified, computed
// over the same snapshot used for listing. Zero packages yields 0.
func (r *SecurityReport) VerificationRate() float64 {
	if len(r.PackageSecurity) == 0 {
		return 0
	}
	return float64(r.VerifiedPackages()) / float64(len(r.PackageSecurity))
}

// BoolPtr returns a pointer to b. Used for optional tri-state fields such
// as PackageInfo.SignatureValid.
func BoolPtr(b bool) *bool { return &b }

// Int64Ptr returns a pointer to v.
func Int64Ptr(v int64) *int64 { return &v }

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }
