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
	"fmt"

	"dirpx.dev/docbind/apis"
	"dirpx.dev/docbind/registry"
	"dirpx.dev/docbind/utils/typeshape"
)

// Item is the single-record-by-id strategy. It requires a present id, an
// empty query, and a record-eligible requested shape.
//
// A present-but-empty id passes the predicate and then fails Check: the
// attribute field is nullable, but the empty string is never a valid
// document id. Keeping the failure in Check (rather than the predicate)
// surfaces apis.ErrInvalidAttribute at bind-site setup instead of
// silently falling through to a collection strategy.
func Item() registry.Rule {
	return registry.Rule{
		Name: "item",
		Match: func(attr *apis.Attribute, s typeshape.Shape) bool {
			return attr.ID != nil && attr.SQLQuery == "" && s.Kind == typeshape.KindDocument
		},
		Check: func(attr *apis.Attribute) error {
			if *attr.ID == "" {
				return fmt.Errorf("%w: document id is present but empty (collection %q)",
					apis.ErrInvalidAttribute, attr.CollectionName)
			}
			return nil
		},
		Bind: func(_ context.Context, bctx *apis.Context, _ typeshape.Shape) (*apis.Binding, error) {
			client, attr := bctx.Client, bctx.Attr
			id := *attr.ID
			return &apis.Binding{
				Rule: "item",
				Provide: func(ctx context.Context) (any, error) {
					return client.ReadDocument(ctx, attr.CollectionName, id)
				},
			}, nil
		},
	}
}
