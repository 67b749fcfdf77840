/*
 * Copyright 2024 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package metrics provides optional Prometheus instrumentation for pass
// execution, for callers who want to watch how many passes run and how
// many iterations a FixedPoint needs to converge. Unlike the rule engine
// this module is descended from, which MustRegisters its collectors
// against the global default registry from an init function, a Recorder
// here is constructed explicitly and registered by the caller: this is a
// library, embedded into arbitrary host processes, and forcing every user
// of package rewriter to share one process-wide registry (and panic on
// re-registration, as prometheus.MustRegister does) is not a library's
// call to make.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recorder holds the collectors package rewriter's instrumented passes
// report to.
type Recorder struct {
	passesTotal          *prometheus.CounterVec
	passDuration         *prometheus.HistogramVec
	fixedPointIterations prometheus.Histogram
}

// NewRecorder creates a Recorder with the given namespace/subsystem. Call
// Register to attach its collectors to a prometheus.Registerer.
func NewRecorder(namespace, subsystem string) *Recorder {
	return &Recorder{
		passesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "passes_total",
			Help:      "Total passes applied, by name and outcome.",
		}, []string{"name", "outcome"}),
		passDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "pass_duration_seconds",
			Help:      "Pass application latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"name"}),
		fixedPointIterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "fixed_point_iterations",
			Help:      "Number of inner-pass applications a FixedPoint needed to converge.",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 34, 55},
		}),
	}
}

// Register attaches the Recorder's collectors to reg.
func (r *Recorder) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{r.passesTotal, r.passDuration, r.fixedPointIterations} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObservePass records one pass application's outcome and latency.
func (r *Recorder) ObservePass(name string, seconds float64, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.passesTotal.WithLabelValues(name, outcome).Inc()
	r.passDuration.WithLabelValues(name).Observe(seconds)
}

// ObserveFixedPointIterations records how many steps a FixedPoint took.
func (r *Recorder) ObserveFixedPointIterations(steps int) {
	r.fixedPointIterations.Observe(float64(steps))
}
