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

// Sequence is the lazy collection strategy. Like Array it requires an
// absent id, but it claims sequence-of-record shapes instead of concrete
// slices. The bound value is an apis.DocumentSeq whose query runs on
// first iteration, not at provide time; an error ends the sequence after
// being yielded once.
func Sequence() registry.Rule {
	return registry.Rule{
		Name: "sequence",
		Match: func(attr *apis.Attribute, s typeshape.Shape) bool {
			return attr.ID == nil && s.Kind == typeshape.KindDocumentSequence
		},
		Bind: func(_ context.Context, bctx *apis.Context, _ typeshape.Shape) (*apis.Binding, error) {
			client, attr := bctx.Client, bctx.Attr
			return &apis.Binding{
				Rule: "sequence",
				Provide: func(ctx context.Context) (any, error) {
					var seq apis.DocumentSeq = func(yield func(apis.Document, error) bool) {
						docs, err := client.QueryDocuments(ctx, attr.CollectionName, attr.SQLQuery)
						if err != nil {
							yield(nil, err)
							return
						}
						for _, d := range docs {
							if !yield(d, nil) {
								return
							}
						}
					}
					return seq, nil
				},
			}, nil
		},
	}
}
