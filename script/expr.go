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

// Package script lets a rewrite rule's applicability, or a conversion's
// per-variant logic, be expressed as a small guest-language expression
// instead of Go code, for users whose rules are more naturally authored
// that way. The guard expression language is github.com/expr-lang/expr,
// evaluated over a node's leaf fields, mirroring how the corpus's
// ExprAssignNode/ExprFilterNode components compile and run an expr.Program
// against a message's fields.
package script

import (
	"fmt"
	"reflect"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/bittoy/irpass/node"
	"github.com/bittoy/irpass/rule"
)

// Predicate is a compiled expr-lang boolean guard, evaluated against a
// node's leaf fields (node-valued and container fields are omitted from
// the evaluation environment; reference them from Go code instead).
type Predicate struct {
	source  string
	program *vm.Program
}

// CompilePredicate compiles expression once; expression must evaluate to
// a bool given a map of the node's leaf field names to their values, plus
// the implicit variable "tag" bound to the node's variant tag.
func CompilePredicate(expression string) (*Predicate, error) {
	program, err := expr.Compile(expression, expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("script: compile predicate %q: %w", expression, err)
	}
	return &Predicate{source: expression, program: program}, nil
}

// Eval runs the predicate against n's leaf fields.
func (p *Predicate) Eval(n node.Node) (bool, error) {
	env := leafEnv(n)
	out, err := vm.Run(p.program, env)
	if err != nil {
		return false, fmt.Errorf("script: eval predicate %q: %w", p.source, err)
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("script: predicate %q did not return a bool, got %s", p.source, reflect.TypeOf(out))
	}
	return b, nil
}

// Guard wraps then so it only runs on nodes matching the compiled
// predicate; non-matching nodes are left unchanged.
func (p *Predicate) Guard(then rule.RewriteHandler) rule.RewriteHandler {
	return func(n node.Node) (node.Node, error) {
		matched, err := p.Eval(n)
		if err != nil {
			return nil, err
		}
		if !matched {
			return rule.Unchanged, nil
		}
		return then(n)
	}
}

// leafEnv builds the expr-lang evaluation environment from a node's leaf
// fields: node-valued and container fields are omitted, since expr-lang
// expressions operate on plain values.
func leafEnv(n node.Node) map[string]any {
	env := map[string]any{"tag": n.VariantTag()}
	for _, f := range n.Fields() {
		switch f.Value.(type) {
		case node.Node, node.Sequence, node.SetContainer, node.Mapping:
			continue
		default:
			env[f.Name] = f.Value
		}
	}
	return env
}
