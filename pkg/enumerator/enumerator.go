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
	"log/slog"
	"runtime"
	"strings"

	"github.com/google/uuid"

	"github.com/harvexz/secenum/pkg/collector"
	"github.com/harvexz/secenum/pkg/collector/apt"
	"github.com/harvexz/secenum/pkg/collector/sysinfo"
	"github.com/harvexz/secenum/pkg/collector/systemd"
	"github.com/harvexz/secenum/pkg/command"
	"github.com/harvexz/secenum/pkg/errors"
	"github.com/harvexz/secenum/pkg/hostfs"
)

// Enumerator coordinates the collector capabilities into complete,
// consistently shaped reports. It is read-only end to end: nothing it calls
// mutates host state.
type Enumerator struct {
	pkgs collector.PackageManager
	svcs collector.ServiceEnumerator
	host collector.SystemInspector
	log  *slog.Logger
}

type config struct {
	executor command.Executor
	files    hostfs.Reader
	registry *collector.Registry
	logger   *slog.Logger
	host     collector.SystemInspector
	goos     string
}

// Option configures the enumerator constructor.
type Option func(*config)

// WithExecutor overrides the external command executor.
func WithExecutor(e command.Executor) Option {
	return func(c *config) { c.executor = e }
}

// WithFiles overrides the host filesystem reader.
func WithFiles(r hostfs.Reader) Option {
	return func(c *config) { c.files = r }
}

// WithRegistry overrides the collector variant registry.
func WithRegistry(r *collector.Registry) Option {
	return func(c *config) { c.registry = r }
}

// WithLogger overrides the base logger. The enumerator scopes it with a
// per-session id.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithInspector overrides the host inspector.
func WithInspector(i collector.SystemInspector) Option {
	return func(c *config) { c.host = i }
}

// withGOOS overrides operating system detection in tests.
func withGOOS(goos string) Option {
	return func(c *config) { c.goos = goos }
}

// DefaultRegistry returns the registry of built-in collector variants.
func DefaultRegistry() *collector.Registry {
	r := collector.NewRegistry()
	r.Register(collector.Signature{OS: "linux", Family: "debian"}, collector.Constructors{
		PackageManager: func(opts collector.Options) (collector.PackageManager, error) {
			return apt.New(opts)
		},
		ServiceEnumerator: func(opts collector.Options) (collector.ServiceEnumerator, error) {
			return systemd.New(opts)
		},
	})
	return r
}

// New resolves the host's platform signature against the registry and
// constructs the matching collector variants. An unmatched signature fails
// with UNSUPPORTED_PLATFORM; there are no silent fallbacks.
func New(ctx context.Context, opts ...Option) (*Enumerator, error) {
	cfg := &config{goos: runtime.GOOS}
	for _, opt := range opts {
		opt(cfg)
	}

	collOpts := collector.Options{
		Executor: cfg.executor,
		Files:    cfg.files,
		Logger:   cfg.logger,
	}.Normalize()

	log := collOpts.Logger.With("session", uuid.NewString())
	collOpts.Logger = log

	if cfg.goos != "linux" {
		return nil, errors.NewWithContext(errors.ErrCodeUnsupportedPlatform,
			"enumeration requires a linux host",
			map[string]any{"os": cfg.goos})
	}

	host := cfg.host
	if host == nil {
		host = sysinfo.New(collOpts)
	}

	sig := collector.Signature{OS: cfg.goos, Family: platformFamily(ctx, host)}
	log.Debug("resolved platform signature", "platform", sig.String())

	registry := cfg.registry
	if registry == nil {
		registry = DefaultRegistry()
	}

	ctors, ok := registry.Lookup(sig)
	if !ok {
		supported := make([]string, 0, len(registry.Signatures()))
		for _, s := range registry.Signatures() {
			supported = append(supported, s.String())
		}
		return nil, errors.NewWithContext(errors.ErrCodeUnsupportedPlatform,
			"no collector variant registered for platform",
			map[string]any{"platform": sig.String(), "supported": supported})
	}

	pkgs, err := ctors.PackageManager(collOpts)
	if err != nil {
		return nil, err
	}
	svcs, err := ctors.ServiceEnumerator(collOpts)
	if err != nil {
		return nil, err
	}

	return &Enumerator{
		pkgs: pkgs,
		svcs: svcs,
		host: host,
		log:  log,
	}, nil
}

// platformFamily maps the host's distribution onto a registry family key.
func platformFamily(ctx context.Context, host collector.SystemInspector) string {
	if host.IsDebianBased(ctx) {
		return "debian"
	}
	info, err := host.SystemInfo(ctx)
	if err != nil || info == nil {
		return "unknown"
	}
	return strings.ToLower(info.Distribution)
}
