package recipient

import "strings"

type ValidationStatus string

const (
	StatusUnvalidated ValidationStatus = "unvalidated"
	StatusValidating  ValidationStatus = "validating"
	StatusValid       ValidationStatus = "valid"
	StatusInvalid     ValidationStatus = "invalid"
)

func (s ValidationStatus) IsValid() bool {
	switch s {
	case StatusUnvalidated, StatusValidating, StatusValid, StatusInvalid:
		return true
	}
	return false
}

// Messages surfaced to the caller alongside Valid/Invalid outcomes.
const (
	MsgNotFound     = "Phone number not found in network database"
	MsgNameMatch    = "Name matches network registration"
	MsgLookupFailed = "Validation failed"
)

// MsgNameMismatch builds the mismatch message carrying the name on file.
func MsgNameMismatch(registeredName string) string {
	return "Name mismatch. Registered as: " + registeredName
}

// Recipient is one destination row inside an in-progress batch.
// Lives only in the UI session; persisted (frozen) at submit time.
type Recipient struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	PhoneNumber       string           `json:"phone_number"`
	Amount            float64          `json:"amount"`
	Status            ValidationStatus `json:"status"`
	RegisteredName    string           `json:"registered_name,omitempty"`
	ValidationMessage string           `json:"validation_message,omitempty"`
}

// NameMatches compares the entered name to the registry name,
// case-insensitive and whitespace-trimmed.
func (r *Recipient) NameMatches(registeredName string) bool {
	return strings.EqualFold(strings.TrimSpace(r.Name), strings.TrimSpace(registeredName))
}

// ResetValidation drops any prior validation outcome. Called whenever
// name or phone number is edited: stale results must never be trusted.
func (r *Recipient) ResetValidation() {
	r.Status = StatusUnvalidated
	r.RegisteredName = ""
	r.ValidationMessage = ""
}

// Validatable reports whether the row has the fields a registry
// lookup needs.
func (r *Recipient) Validatable() bool {
	return r.Name != "" && r.PhoneNumber != ""
}
