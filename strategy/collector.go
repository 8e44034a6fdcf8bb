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

// Collector is the write-side strategy. It claims any collector-shaped
// request regardless of attribute fields, which is why it sits first in
// the rule table.
func Collector() registry.Rule {
	return registry.Rule{
		Name: "collector",
		Match: func(_ *apis.Attribute, s typeshape.Shape) bool {
			return s.Kind == typeshape.KindCollector
		},
		Bind: func(_ context.Context, bctx *apis.Context, _ typeshape.Shape) (*apis.Binding, error) {
			return &apis.Binding{
				Rule:      "collector",
				Collector: &docCollector{bctx: bctx},
			}, nil
		},
	}
}

// docCollector writes documents through to the bound collection as they
// are added. Flush is a no-op; there is no buffering to complete.
type docCollector struct {
	bctx *apis.Context
}

var _ apis.Collector = (*docCollector)(nil)

func (c *docCollector) Add(ctx context.Context, doc apis.Document) error {
	return c.bctx.Client.CreateDocument(ctx, c.bctx.Attr.CollectionName, doc)
}

func (c *docCollector) Flush(context.Context) error {
	return nil
}
