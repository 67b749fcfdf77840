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

// Package reflectnode adapts a plain tagged struct into a node.Node
// without the caller hand-writing Fields, Rebuild and Equal: field
// enumeration goes through github.com/fatih/structs (the same library the
// corpus uses to turn configuration structs into maps), and Rebuild goes
// through github.com/mitchellh/mapstructure (the corpus's own
// configuration-decoding library) to turn an edited field map back into a
// struct of the original type.
//
// This is a convenience, not a requirement: any type implementing
// node.Node directly (as package examples/calc does, to keep the
// protocol's contract visible) works just as well with walk and rule.
package reflectnode

import (
	"fmt"
	"reflect"

	"github.com/fatih/structs"
	"github.com/mitchellh/mapstructure"

	"github.com/bittoy/irpass/node"
)

// TagName is the struct tag Adapter uses for field names, matching the
// corpus's own convention of a short, lower-case tag key.
const TagName = "ir"

// Adapter implements node.Node over a tagged struct value. Construct one
// with New; Rebuild returns a new *Adapter wrapping a freshly decoded
// struct of the same Go type.
type Adapter struct {
	tag   string
	value any
}

// New wraps value (a struct, not a pointer) as a node.Node tagged
// variantTag. Fields are taken from value's exported, `ir`-tagged fields.
func New(variantTag string, value any) *Adapter {
	return &Adapter{tag: variantTag, value: value}
}

// Value returns the underlying struct value, typically used inside a
// handler to read fields by their Go type rather than by FieldList.Get.
func (a *Adapter) Value() any { return a.value }

// VariantTag implements node.Node.
func (a *Adapter) VariantTag() string { return a.tag }

// Fields implements node.Node using github.com/fatih/structs to enumerate
// the underlying struct's exported, ir-tagged fields in declaration order.
func (a *Adapter) Fields() node.FieldList {
	s := structs.New(a.value)
	s.TagName = TagName
	sfields := s.Fields()
	out := make(node.FieldList, 0, len(sfields))
	for _, f := range sfields {
		if !f.IsExported() {
			continue
		}
		name := f.Name()
		if tagged := f.Tag(TagName); tagged != "" && tagged != "-" {
			name = tagged
		}
		out = append(out, node.Field{Name: name, Value: f.Value()})
	}
	return out
}

// Rebuild implements node.Node using github.com/mitchellh/mapstructure to
// decode newFields back into a struct of the same Go type as the original
// value, returning a *node.ValidationError if decoding fails (field type
// mismatch with the struct's own schema).
func (a *Adapter) Rebuild(newFields node.FieldList) (node.Node, error) {
	m := make(map[string]any, len(newFields))
	for _, f := range newFields {
		m[f.Name] = f.Value
	}
	target := reflect.New(reflect.TypeOf(a.value)).Interface()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          TagName,
		Result:           target,
		ErrorUnused:      true,
		WeaklyTypedInput: false,
	})
	if err != nil {
		return nil, &node.ValidationError{Variant: a.tag, Err: err}
	}
	if err := dec.Decode(m); err != nil {
		return nil, &node.ValidationError{Variant: a.tag, Err: fmt.Errorf("rebuild: %w", err)}
	}
	return &Adapter{tag: a.tag, value: reflect.ValueOf(target).Elem().Interface()}, nil
}

// Equal implements node.Node by comparing variant tags and then the
// underlying struct values with reflect.DeepEqual.
func (a *Adapter) Equal(other node.Node) bool {
	o, ok := other.(*Adapter)
	if !ok {
		return false
	}
	return a.tag == o.tag && reflect.DeepEqual(a.value, o.value)
}
