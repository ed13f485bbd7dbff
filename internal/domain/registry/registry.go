package registry

import "context"

// LookupResult is the answer of the network name registry for one
// phone number. Found=false means the number has no record; that is
// not an error.
type LookupResult struct {
	Found          bool   `json:"found"`
	RegisteredName string `json:"registered_name,omitempty"`
}

// Lookup maps a phone number to its registered account-holder name.
// Implementations: HTTP client against the network registry, a Redis
// read-through cache, and a static in-memory table for dev/tests.
type Lookup interface {
	Lookup(ctx context.Context, phoneNumber string) (LookupResult, error)
}
