package registrymock

import (
	"context"
	"sync"

	"bulkpay-backend/internal/domain/registry"
)

var _ registry.Lookup = (*Lookup)(nil)

// Lookup is a function-backed mock of the registry collaborator.
// With no LookupFn it behaves like an empty registry: every number is
// a miss. Call recording is mutex-guarded because ValidateAll fires
// lookups concurrently.
type Lookup struct {
	LookupFn func(ctx context.Context, phoneNumber string) (registry.LookupResult, error)

	mu    sync.Mutex
	calls []string
}

func (m *Lookup) Lookup(ctx context.Context, phoneNumber string) (registry.LookupResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, phoneNumber)
	m.mu.Unlock()
	if m.LookupFn != nil {
		return m.LookupFn(ctx, phoneNumber)
	}
	return registry.LookupResult{Found: false}, nil
}

func (m *Lookup) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// Table builds a mock backed by a fixed msisdn → name map.
func Table(entries map[string]string) *Lookup {
	return &Lookup{LookupFn: func(_ context.Context, phone string) (registry.LookupResult, error) {
		if name, ok := entries[phone]; ok {
			return registry.LookupResult{Found: true, RegisteredName: name}, nil
		}
		return registry.LookupResult{Found: false}, nil
	}}
}
