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
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/harvexz/secenum/pkg/defaults"
	"github.com/harvexz/secenum/pkg/errors"
	"github.com/harvexz/secenum/pkg/inventory"
)

// EnumerateAll runs a full enumeration: host snapshot, host-wide security
// checks, installed packages, and services with their security analysis,
// always in that order. Any category failing fails the whole run; a partial
// aggregate is never returned.
func (e *Enumerator) EnumerateAll(ctx context.Context) (*inventory.EnumerationResult, error) {
	ctx, cancel := e.withDefaultTimeout(ctx)
	defer cancel()

	start := time.Now()
	e.log.Info("starting full enumeration")

	sysInfo, err := e.host.SystemInfo(ctx)
	if err != nil {
		return nil, e.categoryFailed("system", err)
	}

	secInfo, err := e.host.SecurityInfo(ctx)
	if err != nil {
		return nil, e.categoryFailed("security", err)
	}

	packages, err := e.EnumeratePackages(ctx)
	if err != nil {
		return nil, e.categoryFailed("packages", err)
	}

	services, err := e.EnumerateServices(ctx)
	if err != nil {
		return nil, e.categoryFailed("services", err)
	}

	result := &inventory.EnumerationResult{
		Timestamp:    time.Now().UTC(),
		SystemInfo:   *sysInfo,
		Packages:     packages,
		Services:     services,
		SecurityInfo: secInfo,
	}

	enumerationDuration.Observe(time.Since(start).Seconds())
	itemsCollected.WithLabelValues("packages").Set(float64(len(packages)))
	itemsCollected.WithLabelValues("services").Set(float64(len(services)))

	e.log.Info("enumeration complete",
		"packages", len(packages),
		"services", len(services),
		"duration", time.Since(start).String())

	return result, nil
}

// EnumeratePackages lists the installed packages without touching the other
// categories.
func (e *Enumerator) EnumeratePackages(ctx context.Context) (map[string]inventory.PackageInfo, error) {
	packages, err := e.pkgs.InstalledPackages(ctx)
	if err != nil {
		enumerationErrors.WithLabelValues("packages").Inc()
		return nil, err
	}
	return packages, nil
}

// EnumerateServices lists every service enriched with its hardening
// analysis. Enrichment fans out with bounded concurrency; the collected
// ServiceInfo values are never mutated, each record wraps its own copy.
func (e *Enumerator) EnumerateServices(ctx context.Context) (map[string]inventory.ServiceRecord, error) {
	services, err := e.svcs.AllServices(ctx)
	if err != nil {
		enumerationErrors.WithLabelValues("services").Inc()
		return nil, err
	}

	records := make(map[string]inventory.ServiceRecord, len(services))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(defaults.AnalysisConcurrency)

	for name, info := range services {
		name, info := name, info
		g.Go(func() error {
			analysis, err := e.svcs.AnalyzeServiceSecurity(gctx, name)
			if err != nil {
				return errors.WrapWithContext(errors.ErrCodeCollection,
					"service security analysis failed", err,
					map[string]any{"service": name})
			}
			mu.Lock()
			records[name] = inventory.ServiceRecord{
				ServiceInfo:      info,
				SecurityAnalysis: analysis,
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		enumerationErrors.WithLabelValues("services").Inc()
		return nil, err
	}

	return records, nil
}

// withDefaultTimeout bounds the run when the caller supplied no deadline.
func (e *Enumerator) withDefaultTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, defaults.EnumerationTimeout)
}

func (e *Enumerator) categoryFailed(category string, err error) error {
	enumerationErrors.WithLabelValues(category).Inc()
	e.log.Error("enumeration category failed", "category", category, "error", err)
	return errors.WrapWithContext(errors.ErrCodeCollection,
		"enumeration failed", err, map[string]any{"category": category})
}
