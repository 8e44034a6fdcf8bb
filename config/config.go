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

// Package config carries the engine's ambient configuration.
package config

import (
	"os"

	"go.uber.org/zap"

	"dirpx.dev/docbind/apis"
)

// DefaultConnectionEnvKey is the fixed, documented name under which the
// environment-default connection identity is looked up at engine
// construction time.
const DefaultConnectionEnvKey = "DOCBIND_CONNECTION"

// Config is the engine configuration. Treated as immutable once the
// engine is constructed.
type Config struct {
	// ConnectionString is the configured default connection identity.
	// An attribute-level override takes precedence; the environment
	// default is the fallback.
	ConnectionString string

	// ConnectionEnvKey is the name resolved for the environment-default
	// connection identity.
	ConnectionEnvKey string

	// Names resolves external settings (the environment by default).
	Names apis.NameResolver

	// Leases are default lease options merged under trigger attributes
	// that leave fields unset.
	Leases apis.LeaseOptions

	// Logger receives setup-time diagnostics. Defaults to a nop logger.
	Logger *zap.Logger
}

// Default is the configuration used when no options are provided.
func Default() Config {
	return Config{
		ConnectionEnvKey: DefaultConnectionEnvKey,
		Names:            EnvResolver{},
		Logger:           zap.NewNop(),
	}
}

// New constructs a Config from the given options.
func New(opts ...Option) Config {
	cfg := Default()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Keep resolution total: a nil resolver would turn the environment
	// fallback into a panic instead of an empty identity.
	if cfg.Names == nil {
		cfg.Names = EnvResolver{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.ConnectionEnvKey == "" {
		cfg.ConnectionEnvKey = DefaultConnectionEnvKey
	}
	return cfg
}

// Option is a functional option that mutates a Config during construction.
type Option func(*Config)

// WithConnectionString sets the configured default connection identity.
func WithConnectionString(s string) Option {
	return func(c *Config) {
		c.ConnectionString = s
	}
}

// WithConnectionEnvKey overrides the environment lookup name.
// An empty value resets to the default.
func WithConnectionEnvKey(key string) Option {
	return func(c *Config) {
		c.ConnectionEnvKey = key
	}
}

// WithNameResolver replaces the environment-backed name resolver.
func WithNameResolver(r apis.NameResolver) Option {
	return func(c *Config) {
		c.Names = r
	}
}

// WithLeaseDefaults sets default lease options for trigger bindings.
func WithLeaseDefaults(l apis.LeaseOptions) Option {
	return func(c *Config) {
		c.Leases = l
	}
}

// WithLogger sets the setup-time diagnostics logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// EnvResolver resolves names against process environment variables.
type EnvResolver struct{}

// Resolve implements apis.NameResolver via os.LookupEnv. An empty value
// is reported as absent so precedence chains treat it as unset.
func (EnvResolver) Resolve(name string) (string, bool) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
