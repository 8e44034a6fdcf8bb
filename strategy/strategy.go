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

// Package strategy implements the mutually exclusive binding strategies
// selected by the rule registry.
//
// Each strategy is a registry.Rule: a predicate over (attribute, shape)
// plus a bind step that turns a resolved binding context into the
// runtime object for the site (a deferred value provider or a document
// collector). Strategies never resolve connections or construct clients
// themselves; by the time Bind runs, the engine has already passed the
// validation gate and the client cache.
package strategy

import "dirpx.dev/docbind/registry"

// Defaults returns the engine's rule table in evaluation order:
// collector, client handle, array-of-records, sequence-of-records,
// single-record-by-id. The order is a fixed contract; the predicates are
// designed to be mutually exclusive and the registry asserts it.
func Defaults() []registry.Rule {
	return []registry.Rule{
		Collector(),
		ClientHandle(),
		Array(),
		Sequence(),
		Item(),
	}
}
