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

// Array is the eager collection strategy: a concrete slice of records.
// It applies when the attribute carries no document id. The query field
// is deliberately ignored by the predicate — a query narrows what the
// provider fetches, it never changes which strategy is selected.
func Array() registry.Rule {
	return registry.Rule{
		Name: "array",
		Match: func(attr *apis.Attribute, s typeshape.Shape) bool {
			return attr.ID == nil && s.Kind == typeshape.KindDocumentArray
		},
		Bind: func(_ context.Context, bctx *apis.Context, _ typeshape.Shape) (*apis.Binding, error) {
			client, attr := bctx.Client, bctx.Attr
			return &apis.Binding{
				Rule: "array",
				Provide: func(ctx context.Context) (any, error) {
					return client.QueryDocuments(ctx, attr.CollectionName, attr.SQLQuery)
				},
			}, nil
		},
	}
}
