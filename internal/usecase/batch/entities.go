package batch

import "bulkpay-backend/internal/domain/recipient"

// UpdateRecipientInput carries a partial edit; nil fields are left
// untouched. Editing name or phone number resets that row's
// validation state.
type UpdateRecipientInput struct {
	Name        *string  `json:"name"`
	PhoneNumber *string  `json:"phone_number"`
	Amount      *float64 `json:"amount"`
}

type BatchDTO struct {
	BatchID     string                `json:"batch_id"`
	Recipients  []recipient.Recipient `json:"recipients"`
	TotalAmount float64               `json:"total_amount"`
	Ready       bool                  `json:"ready"`
}
