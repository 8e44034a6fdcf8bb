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

import "time"

// Attribute is the declarative descriptor of a document binding site.
// It is supplied by the host's discovery mechanism and treated as immutable
// by the engine: fields are read for rule selection, never written.
//
// Field presence drives strategy selection: an absent ID selects a
// collection-shaped strategy, a present ID selects the single-record
// strategy. "Absent" (nil) and "present but empty" are distinct states,
// which is why ID is a pointer.
type Attribute struct {
	// CollectionName is the document collection the binding reads or writes.
	CollectionName string

	// ID selects a single document when non-nil. A nil ID falls through to
	// the collection strategies; a pointer to the empty string is a
	// configuration error at bind-site setup.
	ID *string

	// SQLQuery optionally narrows collection reads. It never influences
	// strategy selection when ID is absent; it only changes what the
	// selected collection strategy executes.
	SQLQuery string

	// ConnectionStringSetting overrides the engine's configured connection
	// identity for this binding site only.
	ConnectionStringSetting string
}

// TriggerAttribute is the declarative descriptor of a triggered-feed
// binding site. It is a distinct attribute kind from Attribute: triggered
// feeds always deliver a sequence of records and never participate in the
// value-binding rule table.
type TriggerAttribute struct {
	// CollectionName is the monitored document collection.
	CollectionName string

	// ConnectionStringSetting overrides the engine's configured connection
	// identity for this trigger only.
	ConnectionStringSetting string

	// Leases configures the external feed pump. The engine validates and
	// defaults these options but never interprets them beyond that.
	Leases LeaseOptions
}

// LeaseOptions is passed through opaquely to the feed-pump collaborator.
// The engine only validates ranges and fills defaults (owner identity,
// lease collection name) before handing the options over.
type LeaseOptions struct {
	// CollectionName is the collection holding pump leases.
	CollectionName string `validate:"omitempty,min=1"`

	// Prefix namespaces lease documents so several pumps can share one
	// lease collection.
	Prefix string

	// Owner identifies this pump instance. Defaulted to a fresh UUID when
	// left empty.
	Owner string

	// RenewInterval is how often a held lease is renewed.
	RenewInterval time.Duration `validate:"gte=0"`

	// AcquireInterval is how often expired leases are scanned for.
	AcquireInterval time.Duration `validate:"gte=0"`

	// MaxItemCount caps the number of documents delivered per batch.
	// Zero means the pump's default.
	MaxItemCount int `validate:"gte=0"`

	// StartFromBeginning replays the feed from the start of the collection
	// instead of from the current point in time.
	StartFromBeginning bool
}
