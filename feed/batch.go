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

// Package feed implements the triggered-feed strategy: the push-based
// binding that delivers batches of changed documents as they occur.
//
// The core here never polls. An external Pump collaborator watches the
// collection and delivers ordered batches; this package validates and
// defaults the trigger configuration, resolves the payload
// representation requested by the binding site, and re-expresses each
// batch through registered format converters. The conversions are
// lossless: batch -> text -> parse reconstructs a value-equal ordered
// sequence.
package feed

import (
	"encoding/json"
	"fmt"

	"dirpx.dev/docbind/apis"
)

// Batch is one ordered delivery of changed documents, the triggered-feed
// payload. Order is the feed order and is preserved by every converter.
type Batch []apis.Document

// Documents returns the batch as a concrete array of records.
func (b Batch) Documents() []apis.Document {
	return []apis.Document(b)
}

// Sequence returns the batch as the canonical lazy sequence shape.
// The error side is always nil; it exists so triggered payloads and
// query-backed sequences share one shape.
func (b Batch) Sequence() apis.DocumentSeq {
	return func(yield func(apis.Document, error) bool) {
		for _, d := range b {
			if !yield(d, nil) {
				return
			}
		}
	}
}

// Text returns the raw text representation of the batch: a JSON array of
// documents. ParseBatch inverts it losslessly up to JSON value equality.
func (b Batch) Text() (string, error) {
	if b == nil {
		b = Batch{}
	}
	raw, err := json.Marshal([]apis.Document(b))
	if err != nil {
		return "", fmt.Errorf("docbind(feed): encode batch: %w", err)
	}
	return string(raw), nil
}

// ParseBatch reconstructs a batch from its text representation.
func ParseBatch(text string) (Batch, error) {
	var docs []apis.Document
	if err := json.Unmarshal([]byte(text), &docs); err != nil {
		return nil, fmt.Errorf("docbind(feed): decode batch: %w", err)
	}
	return Batch(docs), nil
}
