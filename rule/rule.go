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

// Package rule holds the per-variant handler registries a Walk dispatches
// through. A Rule is a bundle of handlers keyed by variant tag, modeled on
// the type-keyed component registry of a rule-engine chain, generalized
// from "node type string -> component factory" to "variant tag -> handler".
package rule

import (
	"sync"

	"github.com/bittoy/irpass/node"
)

// RewriteHandler rewrites a single node. Returning Unchanged tells the walk
// to substitute the node already rebuilt from its (already walked)
// children; returning any other node replaces the current position
// outright. Under Post the replacement's children are not re-walked in the
// same pass; under Pre the walk continues into the replacement's children.
type RewriteHandler func(n node.Node) (node.Node, error)

// unchangedSentinel is the concrete type behind Unchanged. It is never
// handed to user code except as the identity of Unchanged itself, so its
// own Node methods are never meaningfully invoked.
type unchangedSentinel struct{}

func (unchangedSentinel) VariantTag() string { return "\x00unchanged" }
func (unchangedSentinel) Fields() node.FieldList { return nil }
func (unchangedSentinel) Rebuild(node.FieldList) (node.Node, error) { return Unchanged, nil }
func (unchangedSentinel) Equal(other node.Node) bool {
	_, ok := other.(unchangedSentinel)
	return ok
}

// Unchanged is the sentinel a RewriteHandler returns to mean "no change at
// this node" (spec.md's "unchanged marker").
var Unchanged node.Node = unchangedSentinel{}

// IsUnchanged reports whether n is the Unchanged sentinel.
func IsUnchanged(n node.Node) bool {
	_, ok := n.(unchangedSentinel)
	return ok
}

// RewriteRule is a per-variant registry of RewriteHandlers. The zero value
// is not usable; construct with NewRewriteRule.
type RewriteRule struct {
	mu       sync.RWMutex
	handlers map[string]RewriteHandler
	fallback RewriteHandler
}

// NewRewriteRule returns an empty RewriteRule. Variants with no registered
// handler default to identity (the walk substitutes the rebuilt node
// unchanged), unless WithDefault overrides that default.
func NewRewriteRule() *RewriteRule {
	return &RewriteRule{handlers: make(map[string]RewriteHandler)}
}

// On registers h as the handler for variant tag. It returns the rule so
// registrations can be chained: NewRewriteRule().On("Add", ...).On("Mul", ...).
func (r *RewriteRule) On(tag string, h RewriteHandler) *RewriteRule {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[tag] = h
	return r
}

// WithDefault sets the handler used for variants with no specific
// registration, replacing the ordinary identity default. This is how
// package canon builds a single rewrite that applies to every variant
// without enumerating tags.
func (r *RewriteRule) WithDefault(h RewriteHandler) *RewriteRule {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = h
	return r
}

// HandlerFor returns the handler registered for tag, the rule's default
// handler if one was set with WithDefault, or the identity handler.
func (r *RewriteRule) HandlerFor(tag string) RewriteHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if h, ok := r.handlers[tag]; ok {
		return h
	}
	if r.fallback != nil {
		return r.fallback
	}
	return identity
}

func identity(node.Node) (node.Node, error) {
	return Unchanged, nil
}
