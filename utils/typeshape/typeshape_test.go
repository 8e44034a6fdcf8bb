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

package typeshape_test

import (
	"context"
	"errors"
	"iter"
	"reflect"
	"testing"

	"dirpx.dev/docbind/apis"
	"dirpx.dev/docbind/utils/typeshape"
)

type order struct {
	ID    string
	Total float64
}

// sink is a concrete collector implementation.
type sink struct{}

func (sink) Add(context.Context, apis.Document) error { return nil }
func (sink) Flush(context.Context) error              { return nil }

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func TestEligibleRecord(t *testing.T) {
	cases := []struct {
		name string
		typ  reflect.Type
		want bool
	}{
		{"open marker (empty interface)", typeOf[any](), true},
		{"plain struct", typeOf[order](), true},
		{"pointer to struct", typeOf[*order](), true},
		{"document map", typeOf[apis.Document](), true},
		{"string-keyed map", typeOf[map[string]int](), true},
		{"int-keyed map", typeOf[map[int]order](), false},
		{"iter.Seq of struct", typeOf[iter.Seq[order]](), false},
		{"iter.Seq of document", typeOf[iter.Seq[apis.Document]](), false},
		{"document seq with errors", typeOf[apis.DocumentSeq](), false},
		{"receive channel", typeOf[<-chan order](), false},
		{"slice of records", typeOf[[]order](), false},
		{"scalar", typeOf[int](), false},
		{"non-empty interface", typeOf[apis.Client](), false},
	}
	for _, tc := range cases {
		if got := typeshape.EligibleRecord(tc.typ); got != tc.want {
			t.Errorf("EligibleRecord(%s) [%s] = %t, want %t", tc.typ, tc.name, got, tc.want)
		}
	}
	if typeshape.EligibleRecord(nil) {
		t.Errorf("EligibleRecord(nil) = true, want false")
	}
}

func TestClassify_Kinds(t *testing.T) {
	cases := []struct {
		name string
		typ  reflect.Type
		want typeshape.Kind
	}{
		{"client handle", typeOf[apis.Client](), typeshape.KindClient},
		{"collector interface", typeOf[apis.Collector](), typeshape.KindCollector},
		{"concrete collector", reflect.TypeOf(sink{}), typeshape.KindCollector},
		{"single document", typeOf[apis.Document](), typeshape.KindDocument},
		{"open marker", typeOf[any](), typeshape.KindDocument},
		{"struct", typeOf[order](), typeshape.KindDocument},
		{"document array", typeOf[[]apis.Document](), typeshape.KindDocumentArray},
		{"struct array", typeOf[[]order](), typeshape.KindDocumentArray},
		{"document sequence", typeOf[apis.DocumentSeq](), typeshape.KindDocumentSequence},
		{"plain iter.Seq", typeOf[iter.Seq[order]](), typeshape.KindDocumentSequence},
		{"receive channel", typeOf[<-chan apis.Document](), typeshape.KindDocumentSequence},
	}
	for _, tc := range cases {
		s, err := typeshape.Classify(tc.typ)
		if err != nil {
			t.Errorf("Classify(%s) [%s]: unexpected error: %v", tc.typ, tc.name, err)
			continue
		}
		if s.Kind != tc.want {
			t.Errorf("Classify(%s) [%s] = %s, want %s", tc.typ, tc.name, s.Kind, tc.want)
		}
	}
}

func TestClassify_Elem(t *testing.T) {
	s, err := typeshape.Classify(typeOf[[]order]())
	if err != nil {
		t.Fatalf("Classify([]order): %v", err)
	}
	if s.Elem != typeOf[order]() {
		t.Fatalf("array elem = %s, want order", s.Elem)
	}

	s, err = typeshape.Classify(typeOf[iter.Seq[order]]())
	if err != nil {
		t.Fatalf("Classify(iter.Seq[order]): %v", err)
	}
	if s.Elem != typeOf[order]() {
		t.Fatalf("sequence elem = %s, want order", s.Elem)
	}
}

func TestClassify_Rejections(t *testing.T) {
	for _, typ := range []reflect.Type{
		typeOf[int](),
		typeOf[[]byte](),
		typeOf[iter.Seq[int]](), // sequence of non-record
		typeOf[func() error](),
	} {
		if _, err := typeshape.Classify(typ); !errors.Is(err, typeshape.ErrUnsupportedShape) {
			t.Errorf("Classify(%s): want ErrUnsupportedShape, got %v", typ, err)
		}
	}
	if _, err := typeshape.Classify(nil); !errors.Is(err, typeshape.ErrNilType) {
		t.Errorf("Classify(nil): want ErrNilType, got %v", err)
	}
}

func TestSequenceElem_Forms(t *testing.T) {
	if elem, ok := typeshape.SequenceElem(typeOf[iter.Seq[order]]()); !ok || elem != typeOf[order]() {
		t.Fatalf("iter.Seq form not recognized: ok=%t elem=%v", ok, elem)
	}
	if elem, ok := typeshape.SequenceElem(typeOf[apis.DocumentSeq]()); !ok || elem != typeOf[apis.Document]() {
		t.Fatalf("Seq2 form not recognized: ok=%t elem=%v", ok, elem)
	}
	if elem, ok := typeshape.SequenceElem(typeOf[chan order]()); !ok || elem != typeOf[order]() {
		t.Fatalf("bidirectional channel not recognized: ok=%t elem=%v", ok, elem)
	}
	if _, ok := typeshape.SequenceElem(typeOf[chan<- order]()); ok {
		t.Fatalf("send-only channel wrongly recognized as sequence")
	}
	if _, ok := typeshape.SequenceElem(typeOf[func(int) bool]()); ok {
		t.Fatalf("non-yield func wrongly recognized as sequence")
	}
}
