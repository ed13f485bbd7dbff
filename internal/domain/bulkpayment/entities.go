package bulkpayment

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPendingApproval Status = "pending_approval"
	StatusApproved        Status = "approved"
	StatusRejected        Status = "rejected"
)

// Terminal reports whether no further transition is defined from s.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

var (
	ErrNotFound          = errors.New("bulk payment not found")
	ErrAlreadyApproved   = errors.New("bulk payment already approved")
	ErrAlreadyRejected   = errors.New("bulk payment already rejected")
	ErrInvalidTransition = errors.New("invalid bulk payment state transition")
	ErrBatchNotReady     = errors.New("batch is not ready for submission")
)

// BulkPayment is the durable record created once a batch is
// submitted. Total and currency are snapshotted at submission and
// immutable thereafter; only status/approved_by change, and only
// through the approval workflow.
type BulkPayment struct {
	ID              uint64         `gorm:"primaryKey;column:id" json:"-"`
	PaymentID       string         `gorm:"size:32;uniqueIndex:ux_bulk_payments_payment_id_active" json:"payment_id"`
	OrganizationID  string         `gorm:"size:32;index:idx_bulk_payments_org" json:"organization_id"`
	TotalAmount     float64        `gorm:"type:decimal(18,2)" json:"total_amount"`
	Currency        string         `gorm:"size:8" json:"currency"`
	Status          Status         `gorm:"type:enum('pending_approval','approved','rejected');default:'pending_approval'" json:"status"`
	ApprovedBy      string         `gorm:"size:32" json:"approved_by,omitempty"`
	StatusUpdatedAt time.Time      `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (BulkPayment) TableName() string { return "bulk_payments" }

// IsApproved is derived from status rather than stored, so the two
// can never disagree.
func (p *BulkPayment) IsApproved() bool { return p.Status == StatusApproved }

// SnapshotRecipient is one frozen recipient row of a submitted batch,
// kept for audit/detail display. Rows are inserted at submission and
// never updated.
type SnapshotRecipient struct {
	ID             uint64    `gorm:"primaryKey;column:id" json:"-"`
	PaymentID      uint64    `gorm:"column:payment_id;not null;index:idx_payment_recipients_payment" json:"-"`
	RecipientID    string    `gorm:"size:32;column:recipient_id" json:"recipient_id"`
	Name           string    `gorm:"size:255" json:"name"`
	PhoneNumber    string    `gorm:"size:32" json:"phone_number"`
	Amount         float64   `gorm:"type:decimal(18,2)" json:"amount"`
	RegisteredName string    `gorm:"size:255" json:"registered_name,omitempty"`
	Position       int       `gorm:"column:position" json:"-"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"-"`
}

func (SnapshotRecipient) TableName() string { return "bulk_payment_recipients" }
