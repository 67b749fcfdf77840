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

package rule

import (
	"sync"

	"github.com/bittoy/irpass/node"
)

// ChildResults carries, for a node passed to a ConversionHandler, one entry
// per field of that node. Fields whose value was itself a node (or a
// container of nodes) map to the already-converted result (or a []any /
// map-shaped container of results, preserving the field's container
// shape); leaf fields map to their own unconverted value, since there is
// nothing to convert and the handler can also read them straight off the
// node argument.
type ChildResults map[string]any

// Get returns the child result (or passed-through leaf value) for name.
func (cr ChildResults) Get(name string) any { return cr[name] }

// ConversionHandler converts a node, given the already-converted results of
// its fields, to a value of type R. It may return any R; unlike
// RewriteHandler there is no "unchanged" case, since the output IR (R) is
// generally unrelated to the input one.
type ConversionHandler[R any] func(n node.Node, children ChildResults) (R, error)

// ConversionRule is a per-variant registry of ConversionHandlers. Unlike
// RewriteRule, there is no implicit identity default: every variant that
// can actually be reached in a given tree must have a handler, or the walk
// fails with UnhandledVariantError. WithDefault installs an explicit
// catch-all (used by prettyprint, which doesn't know the caller's variant
// tags ahead of time).
type ConversionRule[R any] struct {
	mu       sync.RWMutex
	handlers map[string]ConversionHandler[R]
	fallback ConversionHandler[R]
}

// NewConversionRule returns an empty ConversionRule[R].
func NewConversionRule[R any]() *ConversionRule[R] {
	return &ConversionRule[R]{handlers: make(map[string]ConversionHandler[R])}
}

// On registers h as the handler for variant tag, returning the rule so
// registrations can be chained.
func (r *ConversionRule[R]) On(tag string, h ConversionHandler[R]) *ConversionRule[R] {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[tag] = h
	return r
}

// WithDefault installs a fallback handler used for any variant with no
// specific registration.
func (r *ConversionRule[R]) WithDefault(h ConversionHandler[R]) *ConversionRule[R] {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = h
	return r
}

// HandlerFor returns the handler for tag and true, or the fallback handler
// and true if one was set with WithDefault, or (nil, false) if the variant
// is genuinely unhandled.
func (r *ConversionRule[R]) HandlerFor(tag string) (ConversionHandler[R], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if h, ok := r.handlers[tag]; ok {
		return h, true
	}
	if r.fallback != nil {
		return r.fallback, true
	}
	return nil, false
}
