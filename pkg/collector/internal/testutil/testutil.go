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

// Package testutil provides fake Executor and Reader implementations for
// collector tests.
package testutil

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/harvexz/secenum/pkg/command"
	"github.com/harvexz/secenum/pkg/errors"
)

// FakeExecutor returns canned results keyed by the space-joined argv.
type FakeExecutor struct {
	// Results maps "name arg1 arg2 ..." to the canned result.
	Results map[string]*command.Result
	// Errors maps argv keys to forced errors, taking precedence over Results.
	Errors map[string]error
	// Calls records every invocation in order.
	Calls []string
}

// Run implements command.Executor.
func (f *FakeExecutor) Run(ctx context.Context, name string, args ...string) (*command.Result, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	f.Calls = append(f.Calls, key)

	if err, ok := f.Errors[key]; ok {
		return nil, err
	}
	if res, ok := f.Results[key]; ok {
		return res, nil
	}
	return nil, errors.NewWithContext(errors.ErrCodeExecution, "no canned result",
		map[string]any{"argv": key})
}

// FakeReader serves file content from an in-memory map.
type FakeReader struct {
	// Files maps path to content. Presence in the map implies existence.
	Files map[string]string
	// Dirs lists paths that exist but have no content (directories, sockets).
	Dirs []string
}

// ReadFile implements hostfs.Reader.
func (f *FakeReader) ReadFile(path string) (string, error) {
	if content, ok := f.Files[path]; ok {
		return content, nil
	}
	return "", errors.NewWithContext(errors.ErrCodeNotFound, "file not found",
		map[string]any{"path": path})
}

// Exists implements hostfs.Reader.
func (f *FakeReader) Exists(path string) bool {
	if _, ok := f.Files[path]; ok {
		return true
	}
	for _, d := range f.Dirs {
		if d == path {
			return true
		}
	}
	return false
}

// Glob implements hostfs.Reader.
func (f *FakeReader) Glob(pattern string) ([]string, error) {
	var matches []string
	for path := range f.Files {
		ok, err := filepath.Match(pattern, path)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, path)
		}
	}
	return matches, nil
}
