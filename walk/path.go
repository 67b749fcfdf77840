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

import (
	"strconv"
	"strings"
)

// PathSegment names one step from a tree's root towards a failing node: a
// field name, and (for container elements) the index of the element within
// that container. Every field contributes a segment with Index -1; an
// element inside a container field adds a further segment with the same
// field name and the element's index (rendered as "items.items[0]").
type PathSegment struct {
	Field string
	Index int
}

// Path is the sequence of segments from the root to a node, attached to
// errors where feasible for diagnostics.
type Path []PathSegment

func (p Path) String() string {
	var b strings.Builder
	for i, seg := range p {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.Field)
		if seg.Index >= 0 {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(seg.Index))
			b.WriteByte(']')
		}
	}
	return b.String()
}

func (p Path) push(field string, index int) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, PathSegment{Field: field, Index: index})
}
