package service

import (
	"context"
	"fmt"

	"github.com/ITGlobers/return-app-pmi-poc/pkg/cache"
)

// Counter namespaces. Each namespace is an independent monotonic series.
const (
	NamespaceIndependent = "independentReturnSequence"
	NamespaceOrderBound  = "orderReturnSequence"
)

var sequencePrefixes = map[string]string{
	NamespaceIndependent: "IND-",
	NamespaceOrderBound:  "RMA-",
}

// SequenceGenerator mints human-readable request identifiers: a fixed
// prefix plus a zero-padded monotonic integer (IND-00001, IND-00002, ...).
// Uniqueness under concurrent callers comes from the counter store's atomic
// increment; there is no read-modify-write window here.
type SequenceGenerator struct {
	counters cache.CounterStore
}

func NewSequenceGenerator(counters cache.CounterStore) *SequenceGenerator {
	return &SequenceGenerator{counters: counters}
}

func (g *SequenceGenerator) Next(ctx context.Context, namespace string) (string, error) {
	prefix, ok := sequencePrefixes[namespace]
	if !ok {
		return "", fmt.Errorf("unknown sequence namespace %q", namespace)
	}

	value, err := g.counters.Next(ctx, namespace)
	if err != nil {
		return "", fmt.Errorf("sequence increment failed: %w", err)
	}

	return fmt.Sprintf("%s%05d", prefix, value), nil
}
