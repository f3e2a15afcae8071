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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "secenum"

var (
	enumerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "enumeration_duration_seconds",
		Help:      "Duration of full enumeration runs.",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
	})

	analysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "analysis_duration_seconds",
		Help:      "Duration of security analysis runs.",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
	})

	enumerationErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "enumeration_errors_total",
		Help:      "Enumeration failures by category.",
	}, []string{"category"})

	itemsCollected = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "items_collected",
		Help:      "Items collected in the most recent run, by category.",
	}, []string{"category"})

	packageVerificationRate = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "package_verification_rate",
		Help:      "Fraction of installed packages that passed verification in the most recent analysis.",
	})
)
