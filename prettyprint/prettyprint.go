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

// Package prettyprint is the reference ConversionRule from spec.md §4.6: a
// generic, variant-agnostic conversion to a human-readable string, useful
// for diagnostics and for tests that want a deterministic textual
// representation of a tree.
package prettyprint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bittoy/irpass/node"
	"github.com/bittoy/irpass/rule"
)

// Rule returns a *rule.ConversionRule[string] with a single default
// handler covering every variant: no per-tag registration is needed, since
// the formatting is synthesized generically from the node's own tag, fields
// and already-converted children (per-tag overrides can still be added to
// the returned rule with On).
func Rule() *rule.ConversionRule[string] {
	return rule.NewConversionRule[string]().WithDefault(format)
}

func format(n node.Node, children rule.ChildResults) (string, error) {
	fields := n.Fields()
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		rendered := renderField(f, children)
		parts = append(parts, fmt.Sprintf("%s=%s", f.Name, rendered))
	}
	return fmt.Sprintf("%s(%s)", n.VariantTag(), strings.Join(parts, ", ")), nil
}

func renderField(f node.Field, children rule.ChildResults) string {
	switch f.Value.(type) {
	case node.Node:
		return asString(children[f.Name])
	case node.Sequence:
		items, _ := children[f.Name].([]any)
		return "[" + joinAny(items) + "]"
	case node.SetContainer:
		items, _ := children[f.Name].([]any)
		return "{" + joinAny(items) + "}"
	case node.Mapping:
		m, _ := children[f.Name].(map[any]any)
		return "{" + joinMap(m) + "}"
	default:
		return fmt.Sprintf("%v", f.Value)
	}
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func joinAny(items []any) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = asString(it)
	}
	return strings.Join(parts, ", ")
}

func joinMap(m map[any]any) string {
	parts := make([]string, 0, len(m))
	for k, v := range m {
		parts = append(parts, fmt.Sprintf("%v: %s", k, asString(v)))
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}
