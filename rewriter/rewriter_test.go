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

package rewriter_test

import (
	"errors"
	"testing"

	"github.com/bittoy/irpass/examples/calc"
	"github.com/bittoy/irpass/node"
	"github.com/bittoy/irpass/pass"
	"github.com/bittoy/irpass/rewriter"
	"github.com/bittoy/irpass/walk"
)

// Property: Chain is associative — Chain(Chain(A,B), C) and
// Chain(A, Chain(B,C)) and Chain(A,B,C) all agree, since each is just
// sequential left-to-right application.
func TestChainAssociativity(t *testing.T) {
	tree := calc.NewAdd(calc.Int{V: 1}, calc.Int{V: 2})
	a := walk.Post(calc.IncrementRule())
	b := walk.Post(calc.IncrementRule())
	c := walk.Post(calc.IncrementRule())

	flat, err := rewriter.Chain(a, b, c)(tree)
	if err != nil {
		t.Fatalf("flat: %v", err)
	}
	leftNested, err := rewriter.Chain(rewriter.Chain(a, b), c)(tree)
	if err != nil {
		t.Fatalf("left-nested: %v", err)
	}
	rightNested, err := rewriter.Chain(a, rewriter.Chain(b, c))(tree)
	if err != nil {
		t.Fatalf("right-nested: %v", err)
	}
	if !node.Equal(flat, leftNested) || !node.Equal(flat, rightNested) {
		t.Fatalf("chain groupings disagree: flat=%s left=%s right=%s",
			node.String(flat), node.String(leftNested), node.String(rightNested))
	}
}

func TestChainAbortsOnError(t *testing.T) {
	boom := errors.New("boom")
	failing := pass.Pass[node.Node](func(node.Node) (node.Node, error) { return nil, boom })
	var ranSecond bool
	second := pass.Pass[node.Node](func(n node.Node) (node.Node, error) {
		ranSecond = true
		return n, nil
	})
	_, err := rewriter.Chain(failing, second)(calc.Int{V: 1})
	if err == nil {
		t.Fatal("want error, got nil")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapping %v", err, boom)
	}
	if ranSecond {
		t.Fatal("chain ran the step after the failing one")
	}
}

// Property: FixedPoint, once it has converged, is idempotent — applying
// the inner pass once more to the result changes nothing.
func TestFixedPointIdempotentAtLimit(t *testing.T) {
	tree := calc.NewAdd(calc.Int{V: 1}, calc.NewAdd(calc.Int{V: 2}, calc.NewAdd(calc.Int{V: 3}, calc.Int{V: 4})))
	p := walk.Post(calc.AssociativityRule())

	fixed, err := rewriter.FixedPoint(p)(tree)
	if err != nil {
		t.Fatalf("fixed point: %v", err)
	}
	again, err := p(fixed)
	if err != nil {
		t.Fatalf("one more step: %v", err)
	}
	if !node.Equal(fixed, again) {
		t.Fatalf("fixed point is not stable: fixed=%s again=%s", node.String(fixed), node.String(again))
	}
}

func TestFixedPointCappedDiverges(t *testing.T) {
	counter := pass.Pass[node.Node](func(n node.Node) (node.Node, error) {
		return calc.Int{V: n.(calc.Int).V + 1}, nil
	})
	_, err := rewriter.FixedPointCapped(counter, 5)(calc.Int{V: 0})
	var divergent *rewriter.DivergentFixedPointError
	if !errors.As(err, &divergent) {
		t.Fatalf("want DivergentFixedPointError, got %v", err)
	}
	if divergent.Steps != 5 {
		t.Fatalf("Steps = %d, want 5", divergent.Steps)
	}
}
