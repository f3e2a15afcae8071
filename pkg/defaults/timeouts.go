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

package defaults

import "time"

// Command execution limits.
const (
	// CommandTimeout is the bounded wait applied to a single external
	// command invocation when the caller's context has no deadline.
	CommandTimeout = 30 * time.Second

	// CommandRateLimit is the sustained rate of external command spawns
	// allowed during per-item fan-out (commands per second).
	CommandRateLimit = 50

	// CommandRateBurst is the spawn burst allowed by the rate limiter.
	CommandRateBurst = 10
)

// Enumeration limits.
const (
	// EnumerationTimeout is the default budget for a full enumeration run.
	EnumerationTimeout = 5 * time.Minute

	// AnalysisConcurrency bounds the per-package and per-service fan-out
	// inside a security analysis run.
	AnalysisConcurrency = 4
)

// File reading limits.
const (
	// MaxFileSize caps reads of host configuration and pseudo-files.
	MaxFileSize = 1 << 20 // 1MB
)
