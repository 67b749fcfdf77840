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
	"fmt"

	"github.com/gofrs/uuid/v5"
)

// UnhandledVariantError is raised when a ConversionRule has no handler (and
// no WithDefault fallback) for a variant tag reached during a Post walk.
type UnhandledVariantError struct {
	Variant string
	Path    Path
}

func (e *UnhandledVariantError) Error() string {
	return fmt.Sprintf("walk: unhandled variant %q at %s", e.Variant, e.Path)
}

// InvalidWalkForRuleError is raised when a RewriteRule returns a
// non-identity replacement under In or Level (which must be read-only). A
// ConversionRule paired with any strategy but Post cannot be constructed
// (PostConvert is the only conversion walk), so it never raises this error.
type InvalidWalkForRuleError struct {
	Strategy Order
	Variant  string
	Path     Path
	Reason   string
}

func (e *InvalidWalkForRuleError) Error() string {
	return fmt.Sprintf("walk: invalid walk for rule: %s at %s under %s: %s",
		e.Variant, e.Path, e.Strategy, e.Reason)
}

// RuleFailureError wraps a handler's own error (or recovered panic) with
// the variant tag and field path of the node being visited when it failed,
// plus a trace id so repeated failures across a long Chain can be
// correlated in logs.
type RuleFailureError struct {
	TraceID string
	Variant string
	Path    Path
	Err     error
}

func (e *RuleFailureError) Error() string {
	return fmt.Sprintf("walk: rule failed [trace=%s] at %s (%s): %s",
		e.TraceID, e.Path, e.Variant, e.Err)
}

// Unwrap exposes the underlying handler error for errors.Is/errors.As.
func (e *RuleFailureError) Unwrap() error { return e.Err }

func newRuleFailure(variant string, path Path, err error) *RuleFailureError {
	id, genErr := uuid.NewV4()
	traceID := "unavailable"
	if genErr == nil {
		traceID = id.String()
	}
	return &RuleFailureError{TraceID: traceID, Variant: variant, Path: path, Err: err}
}
