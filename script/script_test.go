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

package script_test

import (
	"testing"

	"github.com/bittoy/irpass/examples/calc"
	"github.com/bittoy/irpass/node"
	"github.com/bittoy/irpass/rule"
	"github.com/bittoy/irpass/script"
)

func TestPredicateEvaluatesLeafFields(t *testing.T) {
	pred, err := script.CompilePredicate(`v == 0`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	ok, err := pred.Eval(calc.Int{V: 0})
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if !ok {
		t.Fatal("want true for Int{0}")
	}
	ok, err = pred.Eval(calc.Int{V: 5})
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if ok {
		t.Fatal("want false for Int{5}")
	}
}

func TestPredicateSeesTagVariable(t *testing.T) {
	pred, err := script.CompilePredicate(`tag == "Int"`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	ok, err := pred.Eval(calc.Int{V: 1})
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if !ok {
		t.Fatal("want true, tag should be Int")
	}
}

func TestGuardSkipsNonMatchingNodes(t *testing.T) {
	pred, err := script.CompilePredicate(`v == 0`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	var called bool
	guarded := pred.Guard(func(n node.Node) (node.Node, error) {
		called = true
		return calc.Int{V: 1}, nil
	})
	out, err := guarded(calc.Int{V: 5})
	if err != nil {
		t.Fatalf("guarded: %v", err)
	}
	if called {
		t.Fatal("guard ran the handler on a non-matching node")
	}
	if !rule.IsUnchanged(out) {
		t.Fatal("want Unchanged for a non-matching node")
	}
}

func TestJSFormatterCallsFnWithFieldsAndChildren(t *testing.T) {
	f, err := script.NewJSFormatter(`function fn(tag, fields, children) { return tag + ":" + fields.v; }`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	out, err := f.Handler()(calc.Int{V: 7}, nil)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if out != "Int:7" {
		t.Fatalf("got %q, want %q", out, "Int:7")
	}
}

func TestJSFormatterUsesConvertedChildren(t *testing.T) {
	f, err := script.NewJSFormatter(`function fn(tag, fields, children) { return "(" + children.l + "+" + children.r + ")"; }`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	children := rule.ChildResults{"l": "a", "r": "b"}
	out, err := f.Handler()(calc.NewAdd(calc.Int{V: 1}, calc.Int{V: 2}), children)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if out != "(a+b)" {
		t.Fatalf("got %q, want (a+b)", out)
	}
}
