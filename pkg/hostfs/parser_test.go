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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harvexz/secenum/pkg/errors"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestParser_GetLines(t *testing.T) {
	path := writeFixture(t, "lines.conf", "first\n\n# comment\n  second  \n")

	p := NewParser()
	lines, err := p.GetLines(path)

	assert.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, lines)
}

func TestParser_GetLines_KeepComments(t *testing.T) {
	path := writeFixture(t, "lines.conf", "# kept\nvalue\n")

	p := NewParser(WithSkipComments(false))
	lines, err := p.GetLines(path)

	assert.NoError(t, err)
	assert.Equal(t, []string{"# kept", "value"}, lines)
}

func TestParser_GetMap(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		opts     []Option
		expected map[string]string
	}{
		{
			name:    "os-release style",
			content: "ID=ubuntu\nVERSION_ID=\"22.04\"\nPRETTY_NAME=\"Ubuntu 22.04.4 LTS\"\n",
			opts:    []Option{WithVTrimChars(`"'`)},
			expected: map[string]string{
				"ID":          "ubuntu",
				"VERSION_ID":  "22.04",
				"PRETTY_NAME": "Ubuntu 22.04.4 LTS",
			},
		},
		{
			name:    "colon delimiter",
			content: "MemTotal:       1024 kB\nMemFree:        512 kB\n",
			opts:    []Option{WithKVDelimiter(":")},
			expected: map[string]string{
				"MemTotal": "1024 kB",
				"MemFree":  "512 kB",
			},
		},
		{
			name:     "line without delimiter keeps key with empty value",
			content:  "justakey\nk=v\n",
			expected: map[string]string{"justakey": "", "k": "v"},
		},
		{
			name:     "skip empty values drops malformed lines",
			content:  "justakey\nk=v\nempty=\n",
			opts:     []Option{WithSkipEmptyValues(true)},
			expected: map[string]string{"k": "v"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFixture(t, "fixture.conf", tt.content)
			p := NewParser(tt.opts...)

			got, err := p.GetMap(path)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestOSReader_ReadFile_NotFound(t *testing.T) {
	r := NewOSReader()

	_, err := r.ReadFile(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
}

func TestOSReader_ReadFile_SizeCap(t *testing.T) {
	path := writeFixture(t, "big", "0123456789")

	r := &OSReader{MaxSize: 4}
	_, err := r.ReadFile(path)

	assert.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeParse))
}

func TestOSReader_ReadFile_InvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "binary")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x80}, 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	r := NewOSReader()
	_, err := r.ReadFile(path)

	assert.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeParse))
}

func TestOSReader_ExistsAndGlob(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.list", "b.list", "c.conf"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o600); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}
	}

	r := NewOSReader()
	assert.True(t, r.Exists(filepath.Join(dir, "a.list")))
	assert.False(t, r.Exists(filepath.Join(dir, "missing")))

	matches, err := r.Glob(filepath.Join(dir, "*.list"))
	assert.NoError(t, err)
	assert.Len(t, matches, 2)
}
