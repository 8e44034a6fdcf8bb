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

package strategy

import (
	"context"

	"dirpx.dev/docbind/apis"
	"dirpx.dev/docbind/registry"
	"dirpx.dev/docbind/utils/typeshape"
)

// ClientHandle binds the raw service-client handle itself. It bypasses
// record matching entirely: the predicate is an exact type match on the
// client contract.
func ClientHandle() registry.Rule {
	return registry.Rule{
		Name: "client",
		Match: func(_ *apis.Attribute, s typeshape.Shape) bool {
			return s.Kind == typeshape.KindClient
		},
		Bind: func(_ context.Context, bctx *apis.Context, _ typeshape.Shape) (*apis.Binding, error) {
			client := bctx.Client
			return &apis.Binding{
				Rule: "client",
				Provide: func(context.Context) (any, error) {
					return client, nil
				},
			}, nil
		},
	}
}
