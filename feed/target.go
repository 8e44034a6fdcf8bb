/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package feed

import (
	"fmt"
	"reflect"
	"strings"

	"dirpx.dev/docbind/apis"
	"dirpx.dev/docbind/utils/typeshape"
)

// Target enumerates the payload representations a triggered binding site
// may request. The feed always binds a sequence of records; the text and
// array targets are format conversions of that same payload.
type Target int

const (
	// TargetSequence delivers the payload as apis.DocumentSeq.
	TargetSequence Target = iota
	// TargetText delivers the payload as its raw JSON text form.
	TargetText
	// TargetArray delivers the payload as []apis.Document.
	TargetArray
)

// String returns the canonical token for a Target. Unknown values yield
// "Unknown(<n>)" rather than panicking.
func (t Target) String() string {
	switch t {
	case TargetSequence:
		return "Sequence"
	case TargetText:
		return "Text"
	case TargetArray:
		return "Array"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}

// ParseTarget parses a Target token, case-insensitively. It accepts the
// canonical tokens produced by String.
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(s) {
	case "sequence":
		return TargetSequence, nil
	case "text":
		return TargetText, nil
	case "array":
		return TargetArray, nil
	default:
		return 0, fmt.Errorf("docbind(feed): unknown target %q", s)
	}
}

// TargetFor maps a requested payload type to its Target. String-kinded
// types take the text form, record slices the array form, and sequence
// shapes the native form. Anything else is not a valid trigger payload
// type and surfaces as an invalid-attribute error at bind-site setup.
func TargetFor(t reflect.Type) (Target, error) {
	if t == nil {
		return 0, fmt.Errorf("%w: nil trigger payload type", apis.ErrInvalidAttribute)
	}
	if t.Kind() == reflect.String {
		return TargetText, nil
	}
	s, err := typeshape.Classify(t)
	if err != nil {
		return 0, fmt.Errorf("%w: trigger payload type %s", apis.ErrInvalidAttribute, t)
	}
	switch s.Kind {
	case typeshape.KindDocumentSequence:
		return TargetSequence, nil
	case typeshape.KindDocumentArray:
		return TargetArray, nil
	default:
		return 0, fmt.Errorf("%w: trigger payload must be a sequence, array, or text form; got %s",
			apis.ErrInvalidAttribute, s.Kind)
	}
}

// Convert re-expresses a batch in the given target representation.
// Conversions preserve document order; TargetText round-trips through
// ParseBatch to a value-equal batch.
func Convert(b Batch, t Target) (any, error) {
	switch t {
	case TargetSequence:
		return b.Sequence(), nil
	case TargetText:
		return b.Text()
	case TargetArray:
		return b.Documents(), nil
	default:
		return nil, fmt.Errorf("docbind(feed): unknown target %d", int(t))
	}
}
