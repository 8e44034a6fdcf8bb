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

// Package registry holds the ordered binding-rule table and the
// validation gate run before any strategy executes.
//
// Rules are evaluated in registration order and the first match wins.
// Mutual exclusivity is a design invariant of the rule set, not a
// property the type system enforces, so Select additionally evaluates
// every predicate and fails registration when more than one matches.
// That assertion exists to catch future rule additions that silently
// create ambiguity.
package registry

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"dirpx.dev/docbind/apis"
	"dirpx.dev/docbind/resolver"
	"dirpx.dev/docbind/utils/typeshape"
)

// Rule pairs a selection predicate with a binding strategy.
type Rule struct {
	// Name identifies the strategy in diagnostics and errors.
	Name string

	// Match reports whether this rule claims the (attribute, shape) pair.
	// Must be pure: it runs once per bind-site registration.
	Match func(attr *apis.Attribute, s typeshape.Shape) bool

	// Check validates attribute fields after selection and before any
	// client is constructed. Optional.
	Check func(attr *apis.Attribute) error

	// Bind runs the selected strategy against a resolved binding context.
	Bind func(ctx context.Context, bctx *apis.Context, s typeshape.Shape) (*apis.Binding, error)
}

// Registry is an immutable, ordered rule table.
type Registry struct {
	rules []Rule
	log   *zap.Logger
}

// New constructs a Registry over the given rules in evaluation order.
// A nil logger disables diagnostics.
func New(log *zap.Logger, rules ...Rule) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.Match != nil && r.Bind != nil {
			out = append(out, r)
		}
	}
	return &Registry{rules: out, log: log}
}

// Select evaluates every rule predicate against (attr, s) and returns the
// single matching rule. Zero matches is a configuration error
// (apis.ErrNoMatchingRule); more than one is apis.ErrAmbiguousRules.
// Both are raised at bind-site setup, never at request time.
func (r *Registry) Select(attr *apis.Attribute, s typeshape.Shape) (Rule, error) {
	var (
		hit   Rule
		count int
	)
	for _, rule := range r.rules {
		if !rule.Match(attr, s) {
			continue
		}
		if count == 0 {
			hit = rule
		}
		count++
	}
	switch count {
	case 0:
		return Rule{}, fmt.Errorf("%w: %s requesting %s (collection %q, id set %t, query set %t)",
			apis.ErrNoMatchingRule, s.Kind, s.Type, attr.CollectionName, attr.ID != nil, attr.SQLQuery != "")
	case 1:
		r.log.Debug("binding rule selected",
			zap.String("rule", hit.Name),
			zap.Stringer("shape", s.Kind),
			zap.String("collection", attr.CollectionName))
		return hit, nil
	default:
		return Rule{}, fmt.Errorf("%w: %d rules claim %s requesting %s",
			apis.ErrAmbiguousRules, count, s.Kind, s.Type)
	}
}

// Gate is the validation gate: it resolves the connection identity for a
// binding site and fails with apis.ErrConfiguration when no identity can
// possibly be resolved. It runs once per bind-site registration, before
// any client is constructed.
func (r *Registry) Gate(explicit, configured, fallback string) (apis.ConnectionID, error) {
	id := resolver.Connection(explicit, configured, fallback)
	if id == "" {
		r.log.Warn("binding site has no resolvable connection identity")
		return "", fmt.Errorf("%w: no attribute override, no configured default, no environment default",
			apis.ErrConfiguration)
	}
	return id, nil
}
