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
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"dirpx.dev/docbind/apis"
)

// Pump is the external polling collaborator. It watches a collection for
// changes and delivers ordered batches until the context is canceled or
// deliver returns an error. Lease coordination is entirely the pump's
// concern; the engine only validates and defaults the options.
type Pump interface {
	Run(ctx context.Context, client apis.Client, collection string, leases apis.LeaseOptions,
		deliver func(ctx context.Context, b Batch) error) error
}

// Handler receives each delivered payload, already converted to the
// representation the binding site requested.
type Handler func(ctx context.Context, payload any) error

// Registration is the bound form of a trigger site: the resolved client,
// the normalized lease options, and the payload target. It is inert
// until Start is called.
type Registration struct {
	client     apis.Client
	collection string
	leases     apis.LeaseOptions
	target     Target
	pump       Pump
}

// NewRegistration builds a trigger registration from already-resolved
// parts. The engine is the expected caller.
func NewRegistration(client apis.Client, collection string, leases apis.LeaseOptions, target Target, pump Pump) *Registration {
	return &Registration{
		client:     client,
		collection: collection,
		leases:     leases,
		target:     target,
		pump:       pump,
	}
}

// Leases returns the normalized lease options handed to the pump.
func (r *Registration) Leases() apis.LeaseOptions { return r.leases }

// Target returns the payload representation this site requested.
func (r *Registration) Target() Target { return r.target }

// Start drives the pump, converting each delivered batch to the
// registered target representation before invoking handler. It blocks
// until the pump returns; cancellation flows through the context
// unchanged.
func (r *Registration) Start(ctx context.Context, handler Handler) error {
	return r.pump.Run(ctx, r.client, r.collection, r.leases,
		func(ctx context.Context, b Batch) error {
			payload, err := Convert(b, r.target)
			if err != nil {
				return err
			}
			return handler(ctx, payload)
		})
}

// leaseValidate checks the range constraints declared on
// apis.LeaseOptions. Shared instance: validator caches struct metadata.
var leaseValidate = validator.New(validator.WithRequiredStructEnabled())

// DefaultLeaseCollection is used when neither the trigger attribute nor
// the engine configuration names a lease collection.
const DefaultLeaseCollection = "leases"

// NormalizeLeases merges trigger-attribute lease options over configured
// defaults, fills the remaining blanks (lease collection name, a fresh
// UUID owner), and validates the result. Validation failures surface as
// invalid-attribute errors at bind-site setup.
func NormalizeLeases(opts, defaults apis.LeaseOptions) (apis.LeaseOptions, error) {
	if opts.CollectionName == "" {
		opts.CollectionName = defaults.CollectionName
	}
	if opts.Prefix == "" {
		opts.Prefix = defaults.Prefix
	}
	if opts.Owner == "" {
		opts.Owner = defaults.Owner
	}
	if opts.RenewInterval == 0 {
		opts.RenewInterval = defaults.RenewInterval
	}
	if opts.AcquireInterval == 0 {
		opts.AcquireInterval = defaults.AcquireInterval
	}
	if opts.MaxItemCount == 0 {
		opts.MaxItemCount = defaults.MaxItemCount
	}

	if opts.CollectionName == "" {
		opts.CollectionName = DefaultLeaseCollection
	}
	if opts.Owner == "" {
		opts.Owner = uuid.NewString()
	}

	if err := leaseValidate.Struct(opts); err != nil {
		return apis.LeaseOptions{}, fmt.Errorf("%w: lease options: %w", apis.ErrInvalidAttribute, err)
	}
	return opts, nil
}
