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

// Package rewriter provides the pass combinators that glue walks into
// larger passes: Chain for sequential composition, FixedPoint for
// iteration to a stable tree. Both combinators only ever see the uniform
// pass.Pass[node.Node] contract, never a walk or rule directly.
package rewriter

import (
	"fmt"

	"github.com/bittoy/irpass/node"
	"github.com/bittoy/irpass/pass"
)

// Chain composes passes sequentially: Chain(p1, p2, p3)(root) is
// p3(p2(p1(root))). Chain is restricted to passes that both take and
// return a node.Node, because Go's static typing means a pass whose
// result type differs from the next pass's input type cannot type-check
// as a chain step; sequencing a rewrite pass into a differently-typed
// conversion is ordinary function composition instead (call the
// conversion pass on Chain's result), which needs no combinator of its
// own. If any pass errors, Chain aborts and returns that error, wrapped
// with the failing step's index, without running the remaining passes.
func Chain(passes ...pass.Pass[node.Node]) pass.Pass[node.Node] {
	return func(root node.Node) (node.Node, error) {
		cur := root
		for i, p := range passes {
			next, err := p(cur)
			if err != nil {
				return nil, fmt.Errorf("rewriter: chain step %d: %w", i, err)
			}
			cur = next
		}
		return cur, nil
	}
}

// FixedPoint repeatedly applies p, starting from the pass's own root,
// until p(cur) is structurally equal to cur, then returns that value. If p
// never stabilizes, FixedPoint never returns; pair it with a confluent
// normalization (as package canon does) or use FixedPointCapped to impose
// an external bound.
func FixedPoint(p pass.Pass[node.Node]) pass.Pass[node.Node] {
	return func(root node.Node) (node.Node, error) {
		cur := root
		for {
			next, err := p(cur)
			if err != nil {
				return nil, err
			}
			if node.Equal(cur, next) {
				return next, nil
			}
			cur = next
		}
	}
}

// FixedPointCapped behaves like FixedPoint but fails with
// DivergentFixedPointError instead of looping forever once maxSteps
// applications of p have not converged. The core itself imposes no such
// cap (spec.md §4.5/§7 leave it to the caller); this is that caller-side
// bound, provided once so users don't each reinvent it.
func FixedPointCapped(p pass.Pass[node.Node], maxSteps int) pass.Pass[node.Node] {
	return func(root node.Node) (node.Node, error) {
		cur := root
		for step := 0; step < maxSteps; step++ {
			next, err := p(cur)
			if err != nil {
				return nil, err
			}
			if node.Equal(cur, next) {
				return next, nil
			}
			cur = next
		}
		return nil, &DivergentFixedPointError{Steps: maxSteps}
	}
}

// DivergentFixedPointError is returned by FixedPointCapped when the inner
// pass has not converged within the configured step budget.
type DivergentFixedPointError struct {
	Steps int
}

func (e *DivergentFixedPointError) Error() string {
	return fmt.Sprintf("rewriter: fixed point did not converge within %d steps", e.Steps)
}
