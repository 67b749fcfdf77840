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

// Package walk implements the traversal strategies that pair a Rule with a
// root to form a Pass: Pre, Post, In and Level order, each with a forward
// or reverse sibling direction. Rewrite walks are legal under all four
// strategies (In and Level only as read-only analysis); conversion walks
// are only ever constructible under Post, via PostConvert, so the
// ConversionRule/non-Post combination the core must reject is simply not
// expressible rather than merely checked.
//
// Traversal here recurses on the Go call stack, the same choice go/ast and
// cuelang.org/go/cue/ast/astutil make for their own tree walks; see
// DESIGN.md for why this codebase keeps that idiom instead of the
// explicit-stack redesign spec.md's design notes suggest.
package walk

import (
	"errors"
	"fmt"

	"github.com/bittoy/irpass/node"
	"github.com/bittoy/irpass/pass"
	"github.com/bittoy/irpass/rule"
)

// Order names a traversal strategy.
type Order int

const (
	PreOrder Order = iota
	PostOrder
	InOrder
	LevelOrder
)

func (o Order) String() string {
	switch o {
	case PreOrder:
		return "Pre"
	case PostOrder:
		return "Post"
	case InOrder:
		return "In"
	case LevelOrder:
		return "Level"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

// config is the shared, private walk configuration built from Options.
type config struct {
	reverse bool
}

// Option configures a walk's direction.
type Option func(*config)

// Reverse reverses the left-to-right order in which children of each node
// are visited (see package doc and spec.md §4.3 for the per-strategy
// meaning of "reversed").
func Reverse() Option {
	return func(c *config) { c.reverse = true }
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Pre constructs a Pass that visits each node before its children. A
// handler's replacement is walked in place of the original: the children
// traversed are the replacement's children, not the original's.
func Pre(r *rule.RewriteRule, opts ...Option) pass.Pass[node.Node] {
	cfg := newConfig(opts)
	return func(root node.Node) (node.Node, error) {
		return rewritePre(root, r, cfg.reverse, nil)
	}
}

// Post constructs a Pass that visits each node after its children: the
// handler sees a node already rebuilt from the walked children. This is
// the only strategy under which a ConversionRule's semantics (children
// converted before parents) make sense, and the only one PostConvert
// builds on.
func Post(r *rule.RewriteRule, opts ...Option) pass.Pass[node.Node] {
	cfg := newConfig(opts)
	return func(root node.Node) (node.Node, error) {
		return rewritePost(root, r, cfg.reverse, nil)
	}
}

// In constructs a Pass that visits a node's first child, then the node,
// then its remaining children (reverse swaps which child counts as
// "first" by reversing the full child list before interleaving). It is
// legal only as read-only analysis: any handler returning a non-identity
// replacement fails the pass with InvalidWalkForRuleError, since an In
// walk must not change the tree's shape.
func In(r *rule.RewriteRule, opts ...Option) pass.Pass[node.Node] {
	cfg := newConfig(opts)
	return func(root node.Node) (node.Node, error) {
		if err := rewriteIn(root, r, cfg.reverse, nil); err != nil {
			return nil, err
		}
		return root, nil
	}
}

// Level constructs a Pass that visits nodes breadth-first, applying the
// rule as each node is dequeued. Like In, it is read-only: reverse swaps
// the visiting order of the nodes within each level, not the order of
// levels themselves.
func Level(r *rule.RewriteRule, opts ...Option) pass.Pass[node.Node] {
	cfg := newConfig(opts)
	return func(root node.Node) (node.Node, error) {
		if err := rewriteLevel(root, r, cfg.reverse); err != nil {
			return nil, err
		}
		return root, nil
	}
}

// PostConvert constructs a Pass folding a tree into a value of type R
// using a ConversionRule, visiting children before parents (the only
// order under which "child_results" can already hold converted values).
// There is no Order parameter: a ConversionRule paired with any other
// strategy is not an expression this package lets you construct.
func PostConvert[R any](r *rule.ConversionRule[R], opts ...Option) pass.Pass[R] {
	cfg := newConfig(opts)
	return func(root node.Node) (R, error) {
		return convertPost(root, r, cfg.reverse, nil)
	}
}

// --- rewrite: Pre ---

func rewritePre(n node.Node, r *rule.RewriteRule, reverse bool, path Path) (node.Node, error) {
	tag := n.VariantTag()
	replaced, err := invokeRewrite(r, n, tag, path)
	if err != nil {
		return nil, err
	}
	cur := n
	if !rule.IsUnchanged(replaced) {
		cur = replaced
	}
	newFields, err := walkFields(cur.Fields(), reverse, path, func(child node.Node, p Path) (node.Node, error) {
		return rewritePre(child, r, reverse, p)
	})
	if err != nil {
		return nil, err
	}
	rebuilt, err := cur.Rebuild(newFields)
	if err != nil {
		return nil, wrapValidation(cur.VariantTag(), err)
	}
	return rebuilt, nil
}

// --- rewrite: Post ---

func rewritePost(n node.Node, r *rule.RewriteRule, reverse bool, path Path) (node.Node, error) {
	newFields, err := walkFields(n.Fields(), reverse, path, func(child node.Node, p Path) (node.Node, error) {
		return rewritePost(child, r, reverse, p)
	})
	if err != nil {
		return nil, err
	}
	rebuilt, err := n.Rebuild(newFields)
	if err != nil {
		return nil, wrapValidation(n.VariantTag(), err)
	}
	tag := rebuilt.VariantTag()
	replaced, err := invokeRewrite(r, rebuilt, tag, path)
	if err != nil {
		return nil, err
	}
	if rule.IsUnchanged(replaced) {
		return rebuilt, nil
	}
	return replaced, nil
}

// --- rewrite: In ---

func rewriteIn(n node.Node, r *rule.RewriteRule, reverse bool, path Path) error {
	children := collectChildren(n, path)
	if reverse {
		for i, j := 0, len(children)-1; i < j; i, j = i+1, j-1 {
			children[i], children[j] = children[j], children[i]
		}
	}
	if len(children) == 0 {
		return checkReadOnly(r, n, path, InOrder)
	}
	if err := rewriteIn(children[0].n, r, reverse, children[0].path); err != nil {
		return err
	}
	if err := checkReadOnly(r, n, path, InOrder); err != nil {
		return err
	}
	for _, c := range children[1:] {
		if err := rewriteIn(c.n, r, reverse, c.path); err != nil {
			return err
		}
	}
	return nil
}

// --- rewrite: Level ---

func rewriteLevel(root node.Node, r *rule.RewriteRule, reverse bool) error {
	level := []childRef{{n: root, path: nil}}
	for len(level) > 0 {
		if reverse {
			for i, j := 0, len(level)-1; i < j; i, j = i+1, j-1 {
				level[i], level[j] = level[j], level[i]
			}
		}
		var next []childRef
		for _, it := range level {
			if err := checkReadOnly(r, it.n, it.path, LevelOrder); err != nil {
				return err
			}
			next = append(next, collectChildren(it.n, it.path)...)
		}
		level = next
	}
	return nil
}

// --- conversion: Post ---

func convertPost[R any](n node.Node, r *rule.ConversionRule[R], reverse bool, path Path) (R, error) {
	var zero R
	tag := n.VariantTag()
	handler, ok := r.HandlerFor(tag)
	if !ok {
		return zero, &UnhandledVariantError{Variant: tag, Path: path}
	}
	fields := n.Fields()
	children := make(rule.ChildResults, len(fields))
	for _, f := range fields {
		fp := path.push(f.Name, -1)
		cv, err := convertValue(f.Value, r, reverse, fp, f.Name)
		if err != nil {
			return zero, err
		}
		children[f.Name] = cv
	}
	result, err := handler(n, children)
	if err != nil {
		return zero, newRuleFailure(tag, path, err)
	}
	return result, nil
}

func convertValue[R any](v any, r *rule.ConversionRule[R], reverse bool, fp Path, fieldName string) (any, error) {
	switch t := v.(type) {
	case node.Node:
		return convertPost(t, r, reverse, fp)
	case node.Sequence:
		items := t.SeqItems()
		order := fieldOrder(len(items), reverse)
		out := make([]any, len(items))
		for _, i := range order {
			cv, err := convertValue(items[i], r, reverse, fp.push(fieldName, i), fieldName)
			if err != nil {
				return nil, err
			}
			out[i] = cv
		}
		return out, nil
	case node.SetContainer:
		items := t.SetItems()
		order := fieldOrder(len(items), reverse)
		out := make([]any, len(items))
		for _, i := range order {
			cv, err := convertValue(items[i], r, reverse, fp.push(fieldName, i), fieldName)
			if err != nil {
				return nil, err
			}
			out[i] = cv
		}
		return out, nil
	case node.Mapping:
		entries := t.MapEntries()
		order := fieldOrder(len(entries), reverse)
		out := make(map[any]any, len(entries))
		for _, i := range order {
			cv, err := convertValue(entries[i].Value, r, reverse, fp.push(fieldName, i), fieldName)
			if err != nil {
				return nil, err
			}
			out[entries[i].Key] = cv
		}
		return out, nil
	default:
		return v, nil
	}
}

// --- shared handler-invocation helpers ---

func invokeRewrite(r *rule.RewriteRule, n node.Node, tag string, path Path) (result node.Node, err error) {
	h := r.HandlerFor(tag)
	defer func() {
		if p := recover(); p != nil {
			err = newRuleFailure(tag, path, fmt.Errorf("panic: %v", p))
		}
	}()
	result, err = h(n)
	if err != nil {
		return nil, newRuleFailure(tag, path, err)
	}
	return result, nil
}

// checkReadOnly invokes the rule for its side effects only (analysis),
// failing the walk if the handler attempts a real rewrite.
func checkReadOnly(r *rule.RewriteRule, n node.Node, path Path, strategy Order) error {
	tag := n.VariantTag()
	result, err := invokeRewrite(r, n, tag, path)
	if err != nil {
		return err
	}
	if !rule.IsUnchanged(result) {
		return &InvalidWalkForRuleError{
			Strategy: strategy,
			Variant:  tag,
			Path:     path,
			Reason:   "rewrite rule returned a non-identity replacement under a read-only walk",
		}
	}
	return nil
}

func wrapValidation(variant string, err error) error {
	var ve *node.ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return &node.ValidationError{Variant: variant, Err: err}
}
