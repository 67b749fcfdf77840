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

// Package canon is the "canonical-form helper" auxiliary rule named in
// spec.md §2 item 6: a generic rewrite that imposes a stable order on
// every SetContainer field of a tree, so that two trees differing only in
// set-field insertion order compare Equal. Set containers are explicitly
// unordered (spec.md §4.1: "rebuild canonicalizes"); this package is the
// reference canonicalization.
package canon

import (
	"fmt"
	"sort"

	"github.com/bittoy/irpass/node"
	"github.com/bittoy/irpass/pass"
	"github.com/bittoy/irpass/prettyprint"
	"github.com/bittoy/irpass/rewriter"
	"github.com/bittoy/irpass/rule"
	"github.com/bittoy/irpass/walk"
)

// Rule returns a *rule.RewriteRule whose default handler sorts every
// SetContainer field of the node it is applied to (by the pretty-printed
// form of each element), leaving every other field untouched. It is a
// single-node transform: apply it under walk.Post so children are already
// canonicalized by the time a parent's own Set fields are sorted.
func Rule() *rule.RewriteRule {
	return rule.NewRewriteRule().WithDefault(sortSets)
}

// Pass returns the full canonicalization pass: Post-order application of
// Rule, iterated to a fixed point (sorting an already-sorted set is a
// no-op, so this always converges in at most two applications).
func Pass() pass.Pass[node.Node] {
	return rewriter.FixedPoint(walk.Post(Rule()))
}

// Normalize canonicalizes root in one call.
func Normalize(root node.Node) (node.Node, error) {
	return Pass()(root)
}

func sortSets(n node.Node) (node.Node, error) {
	fields := n.Fields()
	out := make(node.FieldList, len(fields))
	copy(out, fields)
	changed := false
	for i, f := range fields {
		set, ok := f.Value.(node.SetContainer)
		if !ok {
			continue
		}
		items := set.SetItems()
		sortedItems := sortByKey(items)
		out[i] = node.Field{Name: f.Name, Value: set.WithSetItems(sortedItems)}
		changed = true
	}
	if !changed {
		return rule.Unchanged, nil
	}
	return n.Rebuild(out)
}

// sortByKey returns a copy of items ordered ascending by sortKey, stable
// so equal-keyed elements keep their relative order.
func sortByKey(items []any) []any {
	out := make([]any, len(items))
	copy(out, items)
	sort.SliceStable(out, func(a, b int) bool {
		return sortKey(out[a]) < sortKey(out[b])
	})
	return out
}

// sortKey renders v deterministically for ordering purposes: nodes
// through the pretty-printer, leaves through fmt.Sprintf.
func sortKey(v any) string {
	if n, ok := v.(node.Node); ok {
		s, err := walk.PostConvert(prettyprint.Rule())(n)
		if err != nil {
			return n.VariantTag()
		}
		return s
	}
	return fmt.Sprintf("%v", v)
}
