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

// Package cache memoizes service-client construction per connection
// identity.
//
// The cache is the only mutable shared state in the engine. GetOrCreate
// is its sole mutator and guarantees single construction per identity
// under arbitrary concurrency, without serializing distinct identities
// behind one lock. Failed constructions are never memoized, so a
// transient connectivity error is retryable on the next request. There is
// no eviction and no TTL: handles live until process teardown.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"dirpx.dev/docbind/apis"
)

// ErrEmptyIdentity is returned when GetOrCreate is called with the empty
// connection identity. The validation gate rejects unresolvable bindings
// before this point; the check here keeps the invariant local.
var ErrEmptyIdentity = errors.New("docbind(cache): empty connection identity")

// Cache maps connection identities to constructed client handles.
// The zero value is not usable; construct with New.
type Cache struct {
	// mu guards the clients map. Never held across a factory call.
	mu      sync.RWMutex
	clients map[apis.ConnectionID]apis.Client
	// group collapses concurrent first-use construction of one identity
	// into a single in-flight factory call. Errors are shared with the
	// concurrent callers of that flight but never retained.
	group singleflight.Group
}

// New creates an empty Cache.
func New() *Cache {
	return &Cache{clients: make(map[apis.ConnectionID]apis.Client)}
}

// GetOrCreate returns the cached client for id, constructing it with
// factory on first use. Concurrent callers with the same identity share
// one factory invocation and observe the identical handle; callers with
// distinct identities proceed independently. A factory failure propagates
// wrapped in apis.ErrConnectivity and leaves no cache entry behind.
func (c *Cache) GetOrCreate(ctx context.Context, id apis.ConnectionID, factory apis.Factory) (apis.Client, error) {
	if id == "" {
		return nil, ErrEmptyIdentity
	}

	c.mu.RLock()
	cl, ok := c.clients[id]
	c.mu.RUnlock()
	if ok {
		return cl, nil
	}

	v, err, _ := c.group.Do(string(id), func() (any, error) {
		// Re-check: a previous flight may have stored between our read
		// miss and joining this flight.
		c.mu.RLock()
		cl, ok := c.clients[id]
		c.mu.RUnlock()
		if ok {
			return cl, nil
		}

		cl, err := factory(ctx, id)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.clients[id] = cl
		c.mu.Unlock()
		return cl, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: identity %q: %w", apis.ErrConnectivity, id, err)
	}
	return v.(apis.Client), nil
}

// Count returns the number of cached client handles.
func (c *Cache) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.clients)
}
