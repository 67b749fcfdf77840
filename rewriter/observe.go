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

package rewriter

import (
	"time"

	"github.com/bittoy/irpass/metrics"
	"github.com/bittoy/irpass/node"
	"github.com/bittoy/irpass/pass"
)

// Logger is the minimal logging interface rewriter accepts, defaulting to
// nothing (Logged is only useful once a caller supplies one): mirrors the
// single-method logging seam the rule engine this module descends from
// exposes on its Config, rather than pulling in a structured logging
// dependency the corpus never reaches for here.
type Logger interface {
	Printf(format string, args ...any)
}

// Logged wraps p so every application logs its name, duration and error
// (if any) through logger.
func Logged(p pass.Pass[node.Node], logger Logger, name string) pass.Pass[node.Node] {
	return func(root node.Node) (node.Node, error) {
		start := time.Now()
		result, err := p(root)
		elapsed := time.Since(start)
		if err != nil {
			logger.Printf("pass %s failed after %s: %s", name, elapsed, err)
			return nil, err
		}
		logger.Printf("pass %s completed in %s", name, elapsed)
		return result, nil
	}
}

// Instrumented wraps p so every application reports its outcome and
// latency to rec.
func Instrumented(p pass.Pass[node.Node], rec *metrics.Recorder, name string) pass.Pass[node.Node] {
	return func(root node.Node) (node.Node, error) {
		start := time.Now()
		result, err := p(root)
		rec.ObservePass(name, time.Since(start).Seconds(), err)
		return result, err
	}
}

// FixedPointInstrumented behaves like FixedPoint but additionally reports
// the number of iterations taken to rec.
func FixedPointInstrumented(p pass.Pass[node.Node], rec *metrics.Recorder) pass.Pass[node.Node] {
	return func(root node.Node) (node.Node, error) {
		cur := root
		steps := 0
		for {
			next, err := p(cur)
			if err != nil {
				return nil, err
			}
			steps++
			if node.Equal(cur, next) {
				rec.ObserveFixedPointIterations(steps)
				return next, nil
			}
			cur = next
		}
	}
}
