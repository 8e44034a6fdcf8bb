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

// Package docbind is a binding-rule dispatch and resolution engine for
// document-database bindings.
//
// docbind connects declarative binding attributes (describing a desired
// data resource: a document, a collection, a change-feed trigger) to
// concrete runtime objects (a client handle, a single record, a record
// collection, a push-based feed registration). Given a binding intent
// plus ambient configuration it deterministically selects one binding
// strategy, resolves the connection identity, obtains or creates a
// cached service client for that identity, and materializes the runtime
// value.
//
// # Design
//
// The engine is built from small, mostly pure layers:
//
//   - resolver: the connection-string precedence chain. The identity for
//     a binding site is the first non-empty of attribute override,
//     configured default, environment default.
//
//   - cache: a concurrency-safe memoization from connection identity to
//     a constructed client handle. A handle is constructed at most once
//     per identity even under concurrent first use; a failed
//     construction is never memoized, so connectivity errors are
//     retryable.
//
//   - typeshape: classification of requested types into a closed set of
//     shape categories (client, collector, record, record array, record
//     sequence), evaluated once per binding-site discovery.
//
//   - registry + strategy: the ordered rule table. Predicates over
//     (attribute fields, requested shape) select one of the mutually
//     exclusive strategies; the registry evaluates every predicate and
//     fails setup when zero or more than one matches.
//
//   - feed: the triggered-feed strategy. An external pump delivers
//     ordered document batches; docbind validates and defaults the lease
//     options and re-expresses each batch as the representation the
//     binding site requested (sequence, raw text, or record array) via
//     lossless converters.
//
// # Control flow
//
// A binding request (attribute + requested type) flows through
// validation gate -> connection resolver -> client cache -> rule
// selection -> strategy, which builds an immutable binding context
// {client, attribute} and produces the bound runtime object: a deferred
// value provider, a document collector, or a feed registration.
//
// Selection errors (no matching rule, ambiguous rules, unresolvable
// connection, present-but-empty document id) are configuration errors
// raised at bind-site setup, never at request time and never silently
// defaulted.
//
// # Concurrency model
//
// The engine itself is synchronous; hosts may call Bind and bound value
// providers from many goroutines concurrently. The client cache is the
// only mutable shared state and its get-or-create is the sole mutator.
// Everything else is either pure (resolver, typeshape, rule predicates)
// or per-request (binding contexts). Cancellation passes through every
// layer unchanged; no operation in the core blocks on network I/O except
// the client factory and the document operations behind a provider.
//
// # Usage
//
// A typical host does:
//
//	engine, err := docbind.New(awsdynamo.Factory(),
//	    config.WithConnectionString(conn),
//	    config.WithLogger(log),
//	)
//	// discovery time, per binding site:
//	binding, err := engine.Bind(ctx, attr, siteType)
//	// invocation time:
//	value, err := binding.Provide(ctx)
//
// Trigger sites bind through BindTrigger and start their pump with
// Registration.Start.
package docbind
