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

// Package errors provides structured error types shared across secenum.
//
// Errors carry a classification code, a human-readable message, an optional
// cause, and optional context. The codes map to the failure taxonomy of the
// enumeration pipeline:
//
//   - UNSUPPORTED_PLATFORM: no collector variant matches the host (fatal,
//     raised at construction).
//   - COLLECTION_FAILED: a whole-category collection failed (fatal for that
//     category).
//   - PARSE_ERROR: one record could not be parsed (skipped, non-fatal).
//   - TIMEOUT: a bounded wait on an external command expired (non-fatal for
//     per-item queries, fatal for whole-category collection).
//   - NOT_FOUND: a source file is missing or unreadable (the affected field
//     degrades to its documented zero value).
//   - EXECUTION_FAILED: an external command could not be started.
//
// Use CodeOf or IsCode to branch on classification:
//
//	if errors.IsCode(err, errors.ErrCodeUnsupportedPlatform) {
//	    // abort the session
//	}
package errors
