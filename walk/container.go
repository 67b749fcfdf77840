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

package walk

import "github.com/bittoy/irpass/node"

// childRef is a node reached while flattening a parent's fields, paired
// with its path from the tree root. It is the unit In and Level interleave
// or queue.
type childRef struct {
	n    node.Node
	path Path
}

// walkFields rebuilds a field list by replacing every node (or
// container-of-nodes) value with the result of visiting it, in field
// order (reversed if reverse is set). Leaf values pass through unchanged.
// visit is called once per contained node, in the traversal order that
// applies to the strategy calling walkFields (Pre and Post only; In and
// Level are read-only and use collectChildren instead).
func walkFields(fields node.FieldList, reverse bool, path Path, visit func(n node.Node, p Path) (node.Node, error)) (node.FieldList, error) {
	order := fieldOrder(len(fields), reverse)
	out := make(node.FieldList, len(fields))
	copy(out, fields)
	for _, i := range order {
		f := fields[i]
		fp := path.push(f.Name, -1)
		newVal, err := walkValue(f.Value, reverse, fp, f.Name, visit)
		if err != nil {
			return nil, err
		}
		out[i] = node.Field{Name: f.Name, Value: newVal}
	}
	return out, nil
}

func walkValue(v any, reverse bool, fp Path, fieldName string, visit func(n node.Node, p Path) (node.Node, error)) (any, error) {
	switch t := v.(type) {
	case node.Node:
		return visit(t, fp)
	case node.Sequence:
		items := t.SeqItems()
		order := fieldOrder(len(items), reverse)
		newItems := make([]any, len(items))
		copy(newItems, items)
		for _, i := range order {
			p := fp.push(fieldName, i)
			nv, err := walkValue(items[i], reverse, p, fieldName, visit)
			if err != nil {
				return nil, err
			}
			newItems[i] = nv
		}
		return t.WithSeqItems(newItems), nil
	case node.SetContainer:
		items := t.SetItems()
		order := fieldOrder(len(items), reverse)
		newItems := make([]any, len(items))
		copy(newItems, items)
		for _, i := range order {
			p := fp.push(fieldName, i)
			nv, err := walkValue(items[i], reverse, p, fieldName, visit)
			if err != nil {
				return nil, err
			}
			newItems[i] = nv
		}
		return t.WithSetItems(newItems), nil
	case node.Mapping:
		entries := t.MapEntries()
		order := fieldOrder(len(entries), reverse)
		newEntries := make([]node.MapEntry, len(entries))
		copy(newEntries, entries)
		for _, i := range order {
			p := fp.push(fieldName, i)
			nv, err := walkValue(entries[i].Value, reverse, p, fieldName, visit)
			if err != nil {
				return nil, err
			}
			newEntries[i] = node.MapEntry{Key: entries[i].Key, Value: nv}
		}
		return t.WithMapEntries(newEntries), nil
	default:
		return v, nil
	}
}

// collectChildren flattens a node's fields into an ordered list of the
// nodes directly or indirectly (through containers) reachable from those
// fields, without reversing anything: reverse is applied by callers (In
// reverses the whole flattened list before interleaving; Level reverses a
// whole dequeued level, not individual parents' child lists).
func collectChildren(n node.Node, path Path) []childRef {
	var out []childRef
	for _, f := range n.Fields() {
		fp := path.push(f.Name, -1)
		collectValue(f.Value, fp, f.Name, &out)
	}
	return out
}

func collectValue(v any, fp Path, fieldName string, out *[]childRef) {
	switch t := v.(type) {
	case node.Node:
		*out = append(*out, childRef{n: t, path: fp})
	case node.Sequence:
		for i, item := range t.SeqItems() {
			collectValue(item, fp.push(fieldName, i), fieldName, out)
		}
	case node.SetContainer:
		for i, item := range t.SetItems() {
			collectValue(item, fp.push(fieldName, i), fieldName, out)
		}
	case node.Mapping:
		for i, entry := range t.MapEntries() {
			collectValue(entry.Value, fp.push(fieldName, i), fieldName, out)
		}
	}
}

// fieldOrder returns 0..n-1, or n-1..0 if reverse is set.
func fieldOrder(n int, reverse bool) []int {
	order := make([]int, n)
	for i := range order {
		if reverse {
			order[i] = n - 1 - i
		} else {
			order[i] = i
		}
	}
	return order
}
