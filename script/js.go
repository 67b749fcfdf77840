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

package script

import (
	"fmt"

	"github.com/dop251/goja"

	"github.com/bittoy/irpass/node"
	"github.com/bittoy/irpass/rule"
)

// JSFormatter compiles a JavaScript function body (run with
// github.com/dop251/goja, the same engine the corpus's JsFilterNode and
// JsSwitchNode components embed) into a ConversionHandler[string]: the
// script must define a top-level function named fn(tag, fields, children)
// and return a string, where fields is the node's leaf-valued fields and
// children is the already-converted string for every node-valued field
// (keyed the same way as ChildResults).
type JSFormatter struct {
	vm *goja.Runtime
	fn goja.Callable
}

// NewJSFormatter compiles script and resolves its fn entry point.
func NewJSFormatter(script string) (*JSFormatter, error) {
	vm := goja.New()
	if _, err := vm.RunString(script); err != nil {
		return nil, fmt.Errorf("script: compile: %w", err)
	}
	fn, ok := goja.AssertFunction(vm.Get("fn"))
	if !ok {
		return nil, fmt.Errorf("script: script does not define a top-level fn(tag, fields, children) function")
	}
	return &JSFormatter{vm: vm, fn: fn}, nil
}

// Handler adapts f into a rule.ConversionHandler[string], suitable for
// registration on a *rule.ConversionRule[string] (e.g. as a per-variant
// override of package prettyprint's default formatting).
func (f *JSFormatter) Handler() rule.ConversionHandler[string] {
	return func(n node.Node, children rule.ChildResults) (string, error) {
		leaves := map[string]any{}
		for _, field := range n.Fields() {
			switch field.Value.(type) {
			case node.Node, node.Sequence, node.SetContainer, node.Mapping:
				continue
			default:
				leaves[field.Name] = field.Value
			}
		}
		out, err := f.fn(goja.Undefined(),
			f.vm.ToValue(n.VariantTag()),
			f.vm.ToValue(leaves),
			f.vm.ToValue(map[string]any(children)),
		)
		if err != nil {
			return "", fmt.Errorf("script: fn(%s): %w", n.VariantTag(), err)
		}
		s, ok := out.Export().(string)
		if !ok {
			return "", fmt.Errorf("script: fn(%s) did not return a string", n.VariantTag())
		}
		return s, nil
	}
}
