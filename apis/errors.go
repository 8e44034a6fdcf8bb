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

import "errors"

// Error taxonomy for binding resolution. Callers match with errors.Is;
// packages wrap these sentinels with attribute and type context so a
// failure is diagnosable without re-running setup.
//
// Only ErrConnectivity is retryable: the client cache never memoizes a
// failed construction, so the next request re-invokes the factory.
// Everything else is a hard stop raised at bind-site setup.
var (
	// ErrConfiguration indicates no usable connection identity could be
	// resolved for a binding site. Fatal to that site; the host should
	// refuse to start the dependent function.
	ErrConfiguration = errors.New("docbind: no usable connection identity")

	// ErrInvalidAttribute indicates attribute fields that pass discovery
	// but are unusable, e.g. a present-but-empty document id.
	ErrInvalidAttribute = errors.New("docbind: invalid binding attribute")

	// ErrConnectivity indicates client-factory construction failed.
	// Eligible for retry on the next request.
	ErrConnectivity = errors.New("docbind: client construction failed")

	// ErrNoMatchingRule indicates no rule predicate matched the
	// (attribute, requested type) pair. Never silently defaulted.
	ErrNoMatchingRule = errors.New("docbind: no binding rule matches")

	// ErrAmbiguousRules indicates more than one rule predicate matched.
	// The rule table is designed to be mutually exclusive; this error
	// exists to catch predicate additions that break that invariant.
	ErrAmbiguousRules = errors.New("docbind: ambiguous binding rules")

	// ErrNotFound indicates a single-record read found no document.
	ErrNotFound = errors.New("docbind: document not found")
)
