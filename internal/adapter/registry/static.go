package registry

import (
	"context"

	"bulkpay-backend/internal/domain/registry"
)

// StaticLookup answers from a fixed table. Used in dev mode and
// tests, standing in for the real network registry.
type StaticLookup struct {
	entries map[string]string // msisdn → registered name
}

func NewStaticLookup(entries map[string]string) *StaticLookup {
	if entries == nil {
		entries = DefaultEntries()
	}
	return &StaticLookup{entries: entries}
}

// DefaultEntries is a small sample subscriber table for dev mode.
func DefaultEntries() map[string]string {
	return map[string]string{
		"256701234567": "John Doe",
		"256772345678": "Jane Smith",
		"256703456789": "Robert Okello",
		"256774567890": "Mary Namutebi",
	}
}

func (s *StaticLookup) Lookup(_ context.Context, phoneNumber string) (registry.LookupResult, error) {
	name, ok := s.entries[phoneNumber]
	if !ok {
		return registry.LookupResult{Found: false}, nil
	}
	return registry.LookupResult{Found: true, RegisteredName: name}, nil
}
