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

package node

import "fmt"

// ValidationError is returned by a Node's Rebuild method when the supplied
// field list does not match the variant's own schema (wrong field count,
// wrong field name, or a field value of the wrong shape/type).
type ValidationError struct {
	// Variant is the tag of the node being rebuilt.
	Variant string
	// Field is the offending field name, empty if the mismatch is not
	// attributable to a single field (e.g. a missing field).
	Field string
	// Err is the underlying cause.
	Err error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("node: rebuild %s: field %q: %s", e.Variant, e.Field, e.Err)
	}
	return fmt.Sprintf("node: rebuild %s: %s", e.Variant, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/errors.As.
func (e *ValidationError) Unwrap() error { return e.Err }
