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

package docbind_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/docbind"
	"dirpx.dev/docbind/apis"
	"dirpx.dev/docbind/config"
	"dirpx.dev/docbind/feed"
)

// memClient serves documents from an in-memory collection map.
type memClient struct {
	id    apis.ConnectionID
	colls map[string][]apis.Document
}

func (m *memClient) ReadDocument(_ context.Context, collection, id string) (apis.Document, error) {
	for _, d := range m.colls[collection] {
		if d["id"] == id {
			return d, nil
		}
	}
	return nil, apis.ErrNotFound
}

func (m *memClient) QueryDocuments(_ context.Context, collection, _ string) ([]apis.Document, error) {
	return m.colls[collection], nil
}

func (m *memClient) CreateDocument(_ context.Context, collection string, doc apis.Document) error {
	m.colls[collection] = append(m.colls[collection], doc)
	return nil
}

type memFactory struct {
	calls int
	fail  error
}

func (f *memFactory) factory() apis.Factory {
	return func(_ context.Context, id apis.ConnectionID) (apis.Client, error) {
		f.calls++
		if f.fail != nil {
			return nil, f.fail
		}
		return &memClient{
			id: id,
			colls: map[string][]apis.Document{
				"orders": {
					{"id": "abc", "total": 10.5},
					{"id": "def", "total": 3.0},
				},
			},
		}, nil
	}
}

// noEnv keeps tests hermetic: no environment fallback resolves.
type noEnv struct{}

func (noEnv) Resolve(string) (string, bool) { return "", false }

func newEngine(t *testing.T, f apis.Factory, opts ...config.Option) *docbind.Engine {
	t.Helper()
	opts = append([]config.Option{config.WithNameResolver(noEnv{})}, opts...)
	e, err := docbind.New(f, opts...)
	require.NoError(t, err)
	return e
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func ptr(s string) *string { return &s }

func TestNew_NilFactory(t *testing.T) {
	_, err := docbind.New(nil)
	require.ErrorIs(t, err, docbind.ErrNilFactory)
}

func TestBind_SingleRecord(t *testing.T) {
	f := &memFactory{}
	e := newEngine(t, f.factory(), config.WithConnectionString("conn-a"))

	attr := &apis.Attribute{CollectionName: "orders", ID: ptr("abc")}
	b, err := e.Bind(context.Background(), attr, typeOf[apis.Document]())
	require.NoError(t, err)
	require.Equal(t, "item", b.Rule)

	v, err := b.Provide(context.Background())
	require.NoError(t, err)
	require.Equal(t, "abc", v.(apis.Document)["id"])
}

func TestBind_ArrayAndSequenceShareClient(t *testing.T) {
	f := &memFactory{}
	e := newEngine(t, f.factory(), config.WithConnectionString("conn-a"))

	arr, err := e.Bind(context.Background(), &apis.Attribute{CollectionName: "orders"}, typeOf[[]apis.Document]())
	require.NoError(t, err)
	require.Equal(t, "array", arr.Rule)

	seq, err := e.Bind(context.Background(), &apis.Attribute{CollectionName: "orders"}, typeOf[apis.DocumentSeq]())
	require.NoError(t, err)
	require.Equal(t, "sequence", seq.Rule)

	// One identity, one construction, shared handle.
	require.Equal(t, 1, f.calls)
	require.Equal(t, 1, e.ClientCount())

	v, err := arr.Provide(context.Background())
	require.NoError(t, err)
	require.Len(t, v.([]apis.Document), 2)
}

func TestBind_ConnectionPrecedence(t *testing.T) {
	f := &memFactory{}
	e := newEngine(t, f.factory(), config.WithConnectionString("configured"))

	// The attribute override resolves to a second identity.
	_, err := e.Bind(context.Background(),
		&apis.Attribute{CollectionName: "orders", ConnectionStringSetting: "override"},
		typeOf[[]apis.Document]())
	require.NoError(t, err)
	_, err = e.Bind(context.Background(),
		&apis.Attribute{CollectionName: "orders"},
		typeOf[[]apis.Document]())
	require.NoError(t, err)
	require.Equal(t, 2, e.ClientCount())
}

// With no override, no configured default, and no environment value the
// gate fails before any client is constructed.
func TestBind_ConfigurationErrorBeforeConstruction(t *testing.T) {
	f := &memFactory{}
	e := newEngine(t, f.factory())

	_, err := e.Bind(context.Background(), &apis.Attribute{CollectionName: "orders"}, typeOf[[]apis.Document]())
	require.ErrorIs(t, err, apis.ErrConfiguration)
	require.Zero(t, f.calls, "no client may be constructed for an unresolvable site")
}

func TestBind_EmptyIDIsInvalidAttribute(t *testing.T) {
	f := &memFactory{}
	e := newEngine(t, f.factory(), config.WithConnectionString("conn-a"))

	attr := &apis.Attribute{CollectionName: "orders", ID: ptr("")}
	_, err := e.Bind(context.Background(), attr, typeOf[apis.Document]())
	require.ErrorIs(t, err, apis.ErrInvalidAttribute)
	require.Zero(t, f.calls, "invalid attribute fails before construction")
}

func TestBind_EnvironmentFallback(t *testing.T) {
	f := &memFactory{}
	fixed := fixedResolver{config.DefaultConnectionEnvKey: "from-env"}
	e, err := docbind.New(f.factory(), config.WithNameResolver(fixed))
	require.NoError(t, err)

	_, err = e.Bind(context.Background(), &apis.Attribute{CollectionName: "orders"}, typeOf[[]apis.Document]())
	require.NoError(t, err)
	require.Equal(t, 1, f.calls)
}

type fixedResolver map[string]string

func (r fixedResolver) Resolve(name string) (string, bool) {
	v, ok := r[name]
	return v, ok
}

func TestBind_ConnectivityRetry(t *testing.T) {
	f := &memFactory{fail: errors.New("refused")}
	e := newEngine(t, f.factory(), config.WithConnectionString("conn-a"))
	attr := &apis.Attribute{CollectionName: "orders"}

	_, err := e.Bind(context.Background(), attr, typeOf[[]apis.Document]())
	require.ErrorIs(t, err, apis.ErrConnectivity)

	// The failed construction was not cached; clearing the fault lets
	// the same site bind.
	f.fail = nil
	_, err = e.Bind(context.Background(), attr, typeOf[[]apis.Document]())
	require.NoError(t, err)
	require.Equal(t, 2, f.calls)
}

func TestBind_CollectorWritesThroughEngine(t *testing.T) {
	f := &memFactory{}
	e := newEngine(t, f.factory(), config.WithConnectionString("conn-a"))

	b, err := e.Bind(context.Background(), &apis.Attribute{CollectionName: "audit"}, typeOf[apis.Collector]())
	require.NoError(t, err)
	require.NotNil(t, b.Collector)
	require.NoError(t, b.Collector.Add(context.Background(), apis.Document{"id": "evt-1"}))

	// The write is visible through a read binding on the same engine.
	arr, err := e.Bind(context.Background(), &apis.Attribute{CollectionName: "audit"}, typeOf[[]apis.Document]())
	require.NoError(t, err)
	v, err := arr.Provide(context.Background())
	require.NoError(t, err)
	require.Len(t, v.([]apis.Document), 1)
}

func TestBind_UnsupportedShape(t *testing.T) {
	f := &memFactory{}
	e := newEngine(t, f.factory(), config.WithConnectionString("conn-a"))
	_, err := e.Bind(context.Background(), &apis.Attribute{}, typeOf[int]())
	require.Error(t, err)
}

// replayPump delivers the given batches once.
type replayPump struct {
	batches []feed.Batch
}

func (p *replayPump) Run(ctx context.Context, _ apis.Client, _ string, _ apis.LeaseOptions,
	deliver func(ctx context.Context, b feed.Batch) error) error {
	for _, b := range p.batches {
		if err := deliver(ctx, b); err != nil {
			return err
		}
	}
	return nil
}

func TestBindTrigger_SequencePayload(t *testing.T) {
	f := &memFactory{}
	e := newEngine(t, f.factory(), config.WithConnectionString("conn-a"))

	changed := feed.Batch{{"id": "abc"}, {"id": "def"}}
	pump := &replayPump{batches: []feed.Batch{changed}}
	attr := &apis.TriggerAttribute{CollectionName: "orders"}

	reg, err := e.BindTrigger(context.Background(), attr, typeOf[apis.DocumentSeq](), pump)
	require.NoError(t, err)
	require.Equal(t, feed.TargetSequence, reg.Target())
	require.NotEmpty(t, reg.Leases().Owner, "lease owner is defaulted")

	var got []apis.Document
	err = reg.Start(context.Background(), func(_ context.Context, payload any) error {
		seq := payload.(apis.DocumentSeq)
		for d, err := range seq {
			require.NoError(t, err)
			got = append(got, d)
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, changed.Documents(), got)
}

func TestBindTrigger_GateApplies(t *testing.T) {
	f := &memFactory{}
	e := newEngine(t, f.factory())

	_, err := e.BindTrigger(context.Background(), &apis.TriggerAttribute{CollectionName: "orders"},
		typeOf[apis.DocumentSeq](), &replayPump{})
	require.ErrorIs(t, err, apis.ErrConfiguration)
	require.Zero(t, f.calls)
}

func TestBindTrigger_RejectsBadPayloadType(t *testing.T) {
	f := &memFactory{}
	e := newEngine(t, f.factory(), config.WithConnectionString("conn-a"))

	_, err := e.BindTrigger(context.Background(), &apis.TriggerAttribute{CollectionName: "orders"},
		typeOf[apis.Document](), &replayPump{})
	require.ErrorIs(t, err, apis.ErrInvalidAttribute)
}
