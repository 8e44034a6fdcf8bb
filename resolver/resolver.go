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

// Package resolver implements the connection-string precedence chain.
package resolver

import "dirpx.dev/docbind/apis"

// Connection returns the connection identity to use for a binding site:
// the first non-empty value in order explicit override, configured
// default, environment-resolved fallback. Returns the empty identity when
// all three are empty; callers treat that as a resolution failure.
//
// Pure function, no side effects, no I/O.
func Connection(explicit, configured, fallback string) apis.ConnectionID {
	switch {
	case explicit != "":
		return apis.ConnectionID(explicit)
	case configured != "":
		return apis.ConnectionID(configured)
	default:
		return apis.ConnectionID(fallback)
	}
}
