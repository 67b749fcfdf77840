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

package pass_test

import (
	"testing"

	"github.com/bittoy/irpass/examples/calc"
	"github.com/bittoy/irpass/node"
	"github.com/bittoy/irpass/pass"
)

func TestIdentityReturnsRootUnchanged(t *testing.T) {
	root := calc.NewAdd(calc.Int{V: 1}, calc.Int{V: 2})
	got, err := pass.Identity()(root)
	if err != nil {
		t.Fatalf("identity: %v", err)
	}
	if !node.Equal(got, root) {
		t.Fatalf("got %s, want %s", node.String(got), node.String(root))
	}
}
