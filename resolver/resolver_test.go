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

package resolver_test

import (
	"testing"

	"dirpx.dev/docbind/apis"
	"dirpx.dev/docbind/resolver"
)

// TestConnection_TruthTable covers all eight presence combinations of
// (explicit, configured, fallback).
func TestConnection_TruthTable(t *testing.T) {
	cases := []struct {
		explicit   string
		configured string
		fallback   string
		want       apis.ConnectionID
	}{
		{"", "", "", ""},
		{"", "", "env", "env"},
		{"", "cfg", "", "cfg"},
		{"", "cfg", "env", "cfg"},
		{"exp", "", "", "exp"},
		{"exp", "", "env", "exp"},
		{"exp", "cfg", "", "exp"},
		{"exp", "cfg", "env", "exp"},
	}
	for _, tc := range cases {
		got := resolver.Connection(tc.explicit, tc.configured, tc.fallback)
		if got != tc.want {
			t.Errorf("Connection(%q,%q,%q) = %q, want %q",
				tc.explicit, tc.configured, tc.fallback, got, tc.want)
		}
	}
}

// TestConnection_Pure verifies repeated calls are stable.
func TestConnection_Pure(t *testing.T) {
	for i := 0; i < 3; i++ {
		if got := resolver.Connection("", "cfg", "env"); got != "cfg" {
			t.Fatalf("call %d: got %q, want cfg", i, got)
		}
	}
}
