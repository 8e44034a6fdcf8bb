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

import "context"

// Context bundles the resolved client and the originating attribute for
// one binding request. It is built fresh after cache resolution, is
// immutable, and is consumed exactly once by the selected strategy.
type Context struct {
	Client Client
	Attr   *Attribute
}

// ValueProvider defers materialization of a bound value to request time.
// The context is the host invocation's; cancellation passes through to
// the underlying client untouched.
type ValueProvider func(ctx context.Context) (any, error)

// Binding is the runtime object produced by a selected strategy. Exactly
// one of Provide and Collector is non-nil: value-shaped bindings carry a
// provider, sink-shaped bindings carry a collector.
type Binding struct {
	// Rule names the strategy that produced this binding, for diagnostics.
	Rule string

	Provide   ValueProvider
	Collector Collector
}
