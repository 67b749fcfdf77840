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

// Package pass defines the single contract every walk, and every pass
// combinator built on top of a walk, shares: a root node in, a result (or
// an error) out. Because it is a plain function type, any func literal of
// this shape is already a pass; rewriter.Chain and rewriter.FixedPoint
// need nothing more than that signature to compose passes.
package pass

import "github.com/bittoy/irpass/node"

// Pass is the uniform callable contract for both rewrite passes (R =
// node.Node) and conversion passes (R = whatever the terminal conversion
// handler produces).
type Pass[R any] func(root node.Node) (R, error)

// Identity is the rewrite pass that returns its root unchanged.
func Identity() Pass[node.Node] {
	return func(root node.Node) (node.Node, error) {
		return root, nil
	}
}
