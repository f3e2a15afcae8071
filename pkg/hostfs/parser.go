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
	"log/slog"
	"strings"
)

// Option configures a Parser.
type Option func(*Parser)

// Parser parses host configuration files with customizable settings.
type Parser struct {
	reader       Reader
	kvDelimiter  string
	vTrimChars   string
	skipComments bool
	skipEmpty    bool
}

// WithReader sets the Reader used to access files. Default is an OSReader.
func WithReader(r Reader) Option {
	return func(p *Parser) {
		p.reader = r
	}
}

// WithKVDelimiter sets the key-value delimiter used in GetMap.
// Default is "=".
func WithKVDelimiter(kvDelim string) Option {
	return func(p *Parser) {
		p.kvDelimiter = kvDelim
	}
}

// WithVTrimChars sets characters to trim from values in GetMap.
// Default is no trimming.
func WithVTrimChars(trimChars string) Option {
	return func(p *Parser) {
		p.vTrimChars = trimChars
	}
}

// WithSkipComments sets whether to skip "#" comment lines. Default is true.
func WithSkipComments(skip bool) Option {
	return func(p *Parser) {
		p.skipComments = skip
	}
}

// WithSkipEmptyValues sets whether entries without a value are skipped
// rather than stored with an empty value. Default is false.
func WithSkipEmptyValues(skip bool) Option {
	return func(p *Parser) {
		p.skipEmpty = skip
	}
}

// NewParser creates a new file parser with the provided options.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		reader:       NewOSReader(),
		kvDelimiter:  "=",
		vTrimChars:   "",
		skipComments: true,
		skipEmpty:    false,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetLines reads the file at path and returns its non-empty lines,
// trimmed, with comment lines dropped when configured.
func (p *Parser) GetLines(path string) ([]string, error) {
	content, err := p.reader.ReadFile(path)
	if err != nil {
		return nil, err
	}

	parts := strings.Split(content, "\n")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		line := strings.TrimSpace(part)
		if line == "" {
			continue
		}
		if p.skipComments && strings.HasPrefix(line, "#") {
			continue
		}
		result = append(result, line)
	}

	return result, nil
}

// GetMap reads the file at path and parses each line into a key-value pair
// using the configured delimiter. Lines without the delimiter are skipped
// (with an empty value stored unless skipEmptyValues is set).
func (p *Parser) GetMap(path string) (map[string]string, error) {
	lines, err := p.GetLines(path)
	if err != nil {
		return nil, err
	}

	result := make(map[string]string, len(lines))
	for _, line := range lines {
		kv := strings.SplitN(line, p.kvDelimiter, 2)
		key := strings.TrimSpace(kv[0])

		if len(kv) != 2 {
			if p.skipEmpty {
				slog.Debug("skipping entry without value", "key", key, "path", path)
				continue
			}
			result[key] = ""
			continue
		}

		value := strings.TrimSpace(kv[1])
		if p.vTrimChars != "" {
			value = strings.Trim(value, p.vTrimChars)
		}
		if p.skipEmpty && value == "" {
			continue
		}

		result[key] = value
	}

	return result, nil
}
