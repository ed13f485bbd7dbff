package payment

import "time"

type SubmitInput struct {
	BatchID        string
	OrganizationID string // 32-char hex
	Currency       string
}

type RecipientDTO struct {
	RecipientID    string  `json:"recipient_id"`
	Name           string  `json:"name"`
	PhoneNumber    string  `json:"phone_number"`
	Amount         float64 `json:"amount"`
	RegisteredName string  `json:"registered_name,omitempty"`
}

type PaymentDTO struct {
	PaymentID      string         `json:"payment_id"`
	OrganizationID string         `json:"organization_id"`
	TotalAmount    float64        `json:"total_amount"`
	Currency       string         `json:"currency"`
	Status         string         `json:"status"`
	IsApproved     bool           `json:"is_approved"`
	ApprovedBy     string         `json:"approved_by,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	Recipients     []RecipientDTO `json:"recipients,omitempty"`
}
