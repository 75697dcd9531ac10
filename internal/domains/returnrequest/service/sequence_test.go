package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCounterStore increments per namespace in memory.
type fakeCounterStore struct {
	counters map[string]int64
	err      error
}

func newFakeCounterStore() *fakeCounterStore {
	return &fakeCounterStore{counters: make(map[string]int64)}
}

func (f *fakeCounterStore) Next(_ context.Context, namespace string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.counters[namespace]++
	return f.counters[namespace], nil
}

func TestSequenceGeneratorNext(t *testing.T) {
	gen := NewSequenceGenerator(newFakeCounterStore())
	ctx := context.Background()

	first, err := gen.Next(ctx, NamespaceIndependent)
	require.NoError(t, err)
	assert.Equal(t, "IND-00001", first)

	second, err := gen.Next(ctx, NamespaceIndependent)
	require.NoError(t, err)
	assert.Equal(t, "IND-00002", second)

	// Namespaces are independent series
	orderBound, err := gen.Next(ctx, NamespaceOrderBound)
	require.NoError(t, err)
	assert.Equal(t, "RMA-00001", orderBound)
}

func TestSequenceGeneratorUnknownNamespace(t *testing.T) {
	gen := NewSequenceGenerator(newFakeCounterStore())

	_, err := gen.Next(context.Background(), "bogus")
	assert.Error(t, err)
}

func TestSequenceGeneratorCounterFailure(t *testing.T) {
	store := newFakeCounterStore()
	store.err = errors.New("connection refused")
	gen := NewSequenceGenerator(store)

	_, err := gen.Next(context.Background(), NamespaceIndependent)
	assert.Error(t, err)
}
