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

package reflectnode_test

import (
	"testing"

	"github.com/bittoy/irpass/node"
	"github.com/bittoy/irpass/reflectnode"
)

type point struct {
	X int `ir:"x"`
	Y int `ir:"y"`
}

func TestFieldsUsesTagNames(t *testing.T) {
	a := reflectnode.New("Point", point{X: 1, Y: 2})
	fields := a.Fields()
	x, ok := fields.Get("x")
	if !ok || x != 1 {
		t.Fatalf("Get(x) = %v, %v, want 1, true", x, ok)
	}
	y, ok := fields.Get("y")
	if !ok || y != 2 {
		t.Fatalf("Get(y) = %v, %v, want 2, true", y, ok)
	}
}

func TestRebuildRoundTrips(t *testing.T) {
	a := reflectnode.New("Point", point{X: 1, Y: 2})
	rebuilt, err := a.Rebuild(a.Fields())
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if !node.Equal(a, rebuilt) {
		t.Fatal("rebuild(fields()) != original")
	}
}

func TestRebuildAppliesEdits(t *testing.T) {
	a := reflectnode.New("Point", point{X: 1, Y: 2})
	edited := a.Fields().With("x", 99)
	rebuilt, err := a.Rebuild(edited)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	got := rebuilt.(*reflectnode.Adapter).Value().(point)
	if got.X != 99 || got.Y != 2 {
		t.Fatalf("got %+v, want {99 2}", got)
	}
}

func TestRebuildRejectsUnknownField(t *testing.T) {
	a := reflectnode.New("Point", point{X: 1, Y: 2})
	bad := a.Fields().With("z", 5)
	if _, err := a.Rebuild(bad); err == nil {
		t.Fatal("want error for unknown field, got nil")
	}
}

func TestEqualComparesTagAndValue(t *testing.T) {
	a := reflectnode.New("Point", point{X: 1, Y: 2})
	b := reflectnode.New("Point", point{X: 1, Y: 2})
	c := reflectnode.New("Point", point{X: 1, Y: 3})
	if !a.Equal(b) {
		t.Fatal("want equal points to compare equal")
	}
	if a.Equal(c) {
		t.Fatal("want unequal points to compare unequal")
	}
}
