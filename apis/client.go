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

package apis

import (
	"context"
	"iter"
)

// ConnectionID is the resolved, opaque key identifying which database
// endpoint/credential a binding uses. It is non-empty whenever resolution
// succeeded; the empty value always means "no identity".
type ConnectionID string

// Document is the arbitrary record shape moved by document bindings.
type Document = map[string]any

// DocumentSeq is the lazy sequence-of-records shape produced by the
// sequence strategy and by triggered-feed payloads. A non-nil error ends
// the sequence; iteration stops after yielding it.
type DocumentSeq = iter.Seq2[Document, error]

// Client is the reusable service-client handle shared by every binding
// that resolved to the same connection identity. Implementations must be
// safe for concurrent use; the engine caches one Client per identity for
// the life of the process.
type Client interface {
	// ReadDocument fetches a single document by id from a collection.
	ReadDocument(ctx context.Context, collection, id string) (Document, error)

	// QueryDocuments lists documents from a collection. An empty query
	// means "all documents"; a non-empty query is executed by the backing
	// store in its native query language.
	QueryDocuments(ctx context.Context, collection, query string) ([]Document, error)

	// CreateDocument writes a document to a collection.
	CreateDocument(ctx context.Context, collection string, doc Document) error
}

// Factory constructs a Client for a connection identity. It may fail with
// a connectivity/auth error and must be safe to retry: the engine's cache
// never memoizes a failed construction. The context is the caller's and
// must be propagated, not replaced.
type Factory func(ctx context.Context, id ConnectionID) (Client, error)

// Collector is the write-side binding object: a sink accepting documents
// for a bound collection. Add may write through immediately or buffer;
// Flush completes any buffered writes.
type Collector interface {
	Add(ctx context.Context, doc Document) error
	Flush(ctx context.Context) error
}

// NameResolver looks up externally-provided settings by name, e.g. the
// environment-default connection identity at engine construction time.
type NameResolver interface {
	Resolve(name string) (value string, ok bool)
}
