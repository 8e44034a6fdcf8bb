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

// Package typeshape classifies requested binding types into a closed set
// of shape categories and answers the "arbitrary record" eligibility
// predicate.
//
// Classification happens once per binding-site discovery, so rule
// predicates at bind time only compare a small enum instead of walking
// reflect.Type again. All functions are deterministic and side-effect
// free.
package typeshape

import (
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/docbind/apis"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("docbind(typeshape): nil reflect.Type provided")
	// ErrUnsupportedShape indicates the requested type fits none of the
	// closed shape categories.
	ErrUnsupportedShape = errors.New("docbind(typeshape): unsupported requested type")
)

// maxPtrUnwrap limits pointer unwrapping depth when searching for the
// underlying record shape. Guards against pathological nesting.
const maxPtrUnwrap = 4

// Kind is the closed set of requested-type categories the rule table
// dispatches over.
type Kind int

const (
	// KindInvalid is the zero value; never produced by Classify.
	KindInvalid Kind = iota
	// KindClient requests the raw service-client handle.
	KindClient
	// KindCollector requests a write-side document sink.
	KindCollector
	// KindDocument requests a single arbitrary record.
	KindDocument
	// KindDocumentArray requests a concrete slice of records.
	KindDocumentArray
	// KindDocumentSequence requests a lazy sequence of records.
	KindDocumentSequence
)

// String returns a short stable identifier for logging and diagnostics.
// Unknown values yield "Unknown(<n>)" rather than panicking.
func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "Invalid"
	case KindClient:
		return "Client"
	case KindCollector:
		return "Collector"
	case KindDocument:
		return "Document"
	case KindDocumentArray:
		return "DocumentArray"
	case KindDocumentSequence:
		return "DocumentSequence"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Shape is the classified form of a requested type: the category tag plus
// the original type and, for container categories, the element type.
type Shape struct {
	Kind Kind
	Type reflect.Type
	// Elem is the record element type for array and sequence shapes;
	// nil otherwise.
	Elem reflect.Type
}

var (
	clientType    = reflect.TypeOf((*apis.Client)(nil)).Elem()
	collectorType = reflect.TypeOf((*apis.Collector)(nil)).Elem()
	errorType     = reflect.TypeOf((*error)(nil)).Elem()
)

// Classify maps a requested type into the closed shape set. Evaluation
// order matters only for interface types: the client and collector
// contracts are claimed before the open-record fallback so that a request
// for apis.Client never reads as "some record".
func Classify(t reflect.Type) (Shape, error) {
	if t == nil {
		return Shape{}, ErrNilType
	}
	switch {
	case t == clientType:
		return Shape{Kind: KindClient, Type: t}, nil
	case t == collectorType || (t.Kind() != reflect.Interface && t.Implements(collectorType)):
		return Shape{Kind: KindCollector, Type: t}, nil
	}
	if elem, ok := SequenceElem(t); ok {
		if !record(elem) {
			return Shape{}, fmt.Errorf("%w: sequence of non-record type %s", ErrUnsupportedShape, elem)
		}
		return Shape{Kind: KindDocumentSequence, Type: t, Elem: elem}, nil
	}
	if t.Kind() == reflect.Slice && t.Elem().Kind() != reflect.Uint8 && record(t.Elem()) {
		return Shape{Kind: KindDocumentArray, Type: t, Elem: t.Elem()}, nil
	}
	if EligibleRecord(t) {
		return Shape{Kind: KindDocument, Type: t}, nil
	}
	return Shape{}, fmt.Errorf("%w: %s", ErrUnsupportedShape, t)
}

// EligibleRecord reports whether t can be bound as an arbitrary single
// record. Sequence-of-T shapes are excluded regardless of T so they never
// double-claim the sequence strategy; slices are excluded because the
// array strategy claims them. The fully open marker type (the empty
// interface) is always eligible; everything else falls through to the
// structural record check.
func EligibleRecord(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if _, ok := SequenceElem(t); ok {
		return false
	}
	if t.Kind() == reflect.Slice {
		return false
	}
	return record(t)
}

// SequenceElem reports whether t is a generic sequence-of-T shape and
// returns T. Recognized shapes are the iterator forms
// func(yield func(T) bool) and func(yield func(T, error) bool), and
// receivable channels.
func SequenceElem(t reflect.Type) (reflect.Type, bool) {
	if t == nil {
		return nil, false
	}
	if t.Kind() == reflect.Chan && t.ChanDir() != reflect.SendDir {
		return t.Elem(), true
	}
	if t.Kind() != reflect.Func || t.IsVariadic() || t.NumIn() != 1 || t.NumOut() != 0 {
		return nil, false
	}
	y := t.In(0)
	if y.Kind() != reflect.Func || y.NumOut() != 1 || y.Out(0).Kind() != reflect.Bool {
		return nil, false
	}
	switch y.NumIn() {
	case 1:
		return y.In(0), true
	case 2:
		if y.In(1) == errorType {
			return y.In(0), true
		}
	}
	return nil, false
}

// record is the base structural check: plain data-record-shaped types.
// Pointers are unwrapped to a bounded depth; the empty interface counts
// as the open marker; structs and string-keyed maps count as records.
func record(t reflect.Type) bool {
	for i := 0; t != nil && i < maxPtrUnwrap && t.Kind() == reflect.Ptr; i++ {
		t = t.Elem()
	}
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.Interface:
		return t.NumMethod() == 0
	case reflect.Struct:
		return true
	case reflect.Map:
		return t.Key().Kind() == reflect.String
	default:
		return false
	}
}
