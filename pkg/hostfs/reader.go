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

package hostfs

import (
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/harvexz/secenum/pkg/defaults"
	"github.com/harvexz/secenum/pkg/errors"
)

// Reader is the file access capability consumed by the collectors.
// It covers the fixed well-known paths the enumeration reads: the
// distribution descriptor, /proc pseudo-files, the user list, the SSH
// daemon config, and per-service unit files.
type Reader interface {
	// ReadFile returns the text content of the file at path.
	// A missing file yields a NOT_FOUND error.
	ReadFile(path string) (string, error)

	// Exists reports whether path exists.
	Exists(path string) bool

	// Glob returns the paths matching the shell pattern, sorted.
	Glob(pattern string) ([]string, error)
}

// OSReader reads from the local filesystem with a size cap and UTF-8
// validation so hostile or binary files cannot poison text parsing.
type OSReader struct {
	// MaxSize caps file reads in bytes. Zero means defaults.MaxFileSize.
	MaxSize int
}

// NewOSReader creates a Reader over the local filesystem.
func NewOSReader() *OSReader {
	return &OSReader{MaxSize: defaults.MaxFileSize}
}

// ReadFile implements Reader.
func (r *OSReader) ReadFile(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrCodeNotFound, "file path cannot be empty")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.WrapWithContext(errors.ErrCodeNotFound, "file not found", err,
				map[string]any{"path": path})
		}
		return "", errors.WrapWithContext(errors.ErrCodeNotFound, "file not readable", err,
			map[string]any{"path": path})
	}

	maxSize := r.MaxSize
	if maxSize <= 0 {
		maxSize = defaults.MaxFileSize
	}
	if len(b) > maxSize {
		return "", errors.NewWithContext(errors.ErrCodeParse, "file exceeds maximum size",
			map[string]any{"path": path, "max_bytes": maxSize})
	}

	if !utf8.Valid(b) {
		return "", errors.NewWithContext(errors.ErrCodeParse, "file content is not valid UTF-8",
			map[string]any{"path": path})
	}

	return string(b), nil
}

// Exists implements Reader.
func (r *OSReader) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Glob implements Reader.
func (r *OSReader) Glob(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeNotFound, "invalid glob pattern", err,
			map[string]any{"pattern": pattern})
	}
	return matches, nil
}
