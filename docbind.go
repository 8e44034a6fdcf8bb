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

package docbind

import (
	"context"
	"errors"
	"reflect"

	"go.uber.org/zap"

	"dirpx.dev/docbind/apis"
	"dirpx.dev/docbind/cache"
	"dirpx.dev/docbind/config"
	"dirpx.dev/docbind/feed"
	"dirpx.dev/docbind/registry"
	"dirpx.dev/docbind/strategy"
	"dirpx.dev/docbind/utils/typeshape"
)

// ErrNilFactory is returned by New when no client factory is provided.
var ErrNilFactory = errors.New("docbind: nil client factory")

// Engine owns one configuration, one client cache, and one rule table.
// There is no process-wide state: hosts wire an Engine explicitly and
// may run several with different configurations side by side.
//
// Engine is safe for concurrent use once constructed.
type Engine struct {
	cfg     config.Config
	factory apis.Factory
	cache   *cache.Cache
	rules   *registry.Registry
	// fallback is the environment-default connection identity, resolved
	// once at construction under cfg.ConnectionEnvKey.
	fallback string
	log      *zap.Logger
}

// New constructs an Engine around a client factory. The environment
// default connection identity is resolved here, once, through the
// configured name resolver.
func New(factory apis.Factory, opts ...config.Option) (*Engine, error) {
	if factory == nil {
		return nil, ErrNilFactory
	}
	cfg := config.New(opts...)
	fallback, _ := cfg.Names.Resolve(cfg.ConnectionEnvKey)
	return &Engine{
		cfg:      cfg,
		factory:  factory,
		cache:    cache.New(),
		rules:    registry.New(cfg.Logger, strategy.Defaults()...),
		fallback: fallback,
		log:      cfg.Logger,
	}, nil
}

// Bind resolves one binding site: it classifies the requested type,
// selects the single matching rule, runs the validation gate, obtains
// the cached client, and hands the binding context to the strategy.
//
// All selection and validation errors surface here, at setup. The
// returned Binding defers document I/O to its provider or collector.
func (e *Engine) Bind(ctx context.Context, attr *apis.Attribute, t reflect.Type) (*apis.Binding, error) {
	shape, err := typeshape.Classify(t)
	if err != nil {
		return nil, err
	}

	rule, err := e.rules.Select(attr, shape)
	if err != nil {
		return nil, err
	}
	if rule.Check != nil {
		if err := rule.Check(attr); err != nil {
			return nil, err
		}
	}

	id, err := e.rules.Gate(attr.ConnectionStringSetting, e.cfg.ConnectionString, e.fallback)
	if err != nil {
		return nil, err
	}
	client, err := e.cache.GetOrCreate(ctx, id, e.factory)
	if err != nil {
		return nil, err
	}

	bctx := &apis.Context{Client: client, Attr: attr}
	binding, err := rule.Bind(ctx, bctx, shape)
	if err != nil {
		return nil, err
	}
	e.log.Debug("binding site bound",
		zap.String("rule", binding.Rule),
		zap.String("collection", attr.CollectionName))
	return binding, nil
}

// BindTrigger resolves a triggered-feed binding site. The payload always
// binds as a sequence of records; the requested type only picks which
// registered converter re-expresses each delivered batch (sequence, raw
// text, or record array). Lease options are merged over configured
// defaults, validated, and passed to the pump opaquely.
func (e *Engine) BindTrigger(ctx context.Context, attr *apis.TriggerAttribute, t reflect.Type, pump feed.Pump) (*feed.Registration, error) {
	target, err := feed.TargetFor(t)
	if err != nil {
		return nil, err
	}
	leases, err := feed.NormalizeLeases(attr.Leases, e.cfg.Leases)
	if err != nil {
		return nil, err
	}

	id, err := e.rules.Gate(attr.ConnectionStringSetting, e.cfg.ConnectionString, e.fallback)
	if err != nil {
		return nil, err
	}
	client, err := e.cache.GetOrCreate(ctx, id, e.factory)
	if err != nil {
		return nil, err
	}

	e.log.Debug("trigger site bound",
		zap.Stringer("target", target),
		zap.String("collection", attr.CollectionName),
		zap.String("leaseCollection", leases.CollectionName))
	return feed.NewRegistration(client, attr.CollectionName, leases, target, pump), nil
}

// ClientCount reports how many distinct connection identities have
// constructed clients so far. Diagnostic only.
func (e *Engine) ClientCount() int {
	return e.cache.Count()
}
