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

package node_test

import (
	"testing"

	"github.com/bittoy/irpass/node"
)

type leaf struct{ v int }

func (l leaf) VariantTag() string           { return "leaf" }
func (l leaf) Fields() node.FieldList       { return node.FieldList{{Name: "v", Value: l.v}} }
func (l leaf) Rebuild(f node.FieldList) (node.Node, error) {
	v, _ := f.Get("v")
	return leaf{v: v.(int)}, nil
}
func (l leaf) Equal(other node.Node) bool {
	o, ok := other.(leaf)
	return ok && o.v == l.v
}

func TestFieldListGet(t *testing.T) {
	fl := node.FieldList{{Name: "a", Value: 1}, {Name: "b", Value: 2}}
	v, ok := fl.Get("b")
	if !ok || v != 2 {
		t.Fatalf("Get(b) = %v, %v, want 2, true", v, ok)
	}
	if _, ok := fl.Get("missing"); ok {
		t.Fatal("Get(missing) reported ok")
	}
}

func TestFieldListWithReplacesExisting(t *testing.T) {
	fl := node.FieldList{{Name: "a", Value: 1}}
	out := fl.With("a", 2)
	v, _ := out.Get("a")
	if v != 2 {
		t.Fatalf("With replaced to %v, want 2", v)
	}
	if fl[0].Value != 1 {
		t.Fatal("With mutated the receiver")
	}
}

func TestFieldListWithAppendsNew(t *testing.T) {
	fl := node.FieldList{{Name: "a", Value: 1}}
	out := fl.With("b", 2)
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
}

func TestEqualHandlesNils(t *testing.T) {
	if !node.Equal(nil, nil) {
		t.Fatal("Equal(nil, nil) = false, want true")
	}
	if node.Equal(leaf{v: 1}, nil) {
		t.Fatal("Equal(leaf, nil) = true, want false")
	}
}

func TestSeqRoundTrip(t *testing.T) {
	s := node.Seq{1, 2, 3}
	var container node.Sequence = s
	out := container.WithSeqItems([]any{4, 5})
	if len(out.SeqItems()) != 2 || out.SeqItems()[0] != 4 {
		t.Fatalf("WithSeqItems = %v", out.SeqItems())
	}
}

func TestSetRoundTrip(t *testing.T) {
	s := node.Set{1, 2}
	var container node.SetContainer = s
	out := container.WithSetItems([]any{9})
	if len(out.SetItems()) != 1 || out.SetItems()[0] != 9 {
		t.Fatalf("WithSetItems = %v", out.SetItems())
	}
}

func TestMapRoundTrip(t *testing.T) {
	m := node.Map{{Key: "a", Value: 1}}
	var mapping node.Mapping = m
	out := mapping.WithMapEntries([]node.MapEntry{{Key: "b", Value: 2}})
	entries := out.MapEntries()
	if len(entries) != 1 || entries[0].Key != "b" {
		t.Fatalf("WithMapEntries = %v", entries)
	}
}

// Property: for any node n, n.Rebuild(n.Fields()) is Equal to n.
func TestRebuildFieldsRoundTrip(t *testing.T) {
	n := leaf{v: 7}
	rebuilt, err := n.Rebuild(n.Fields())
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if !node.Equal(n, rebuilt) {
		t.Fatalf("rebuild(fields()) != original")
	}
}
