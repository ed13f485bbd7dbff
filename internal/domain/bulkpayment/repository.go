package bulkpayment

import "context"

// ListFilter selects the partition to return.
type ListFilter string

const (
	FilterAll       ListFilter = "all"
	FilterPending   ListFilter = "pending"   // status == pending_approval
	FilterProcessed ListFilter = "processed" // status == approved or rejected
)

func (f ListFilter) Valid() bool {
	switch f {
	case FilterAll, FilterPending, FilterProcessed:
		return true
	}
	return false
}

type Repository interface {
	Create(ctx context.Context, p *BulkPayment) error
	Save(ctx context.Context, p *BulkPayment) error
	GetByPaymentID(ctx context.Context, paymentID string) (*BulkPayment, error)
	// GetByPaymentIDForUpdate locks the row for the current tx.
	GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*BulkPayment, error)
	List(ctx context.Context, organizationID string, filter ListFilter) ([]BulkPayment, error)
}

type SnapshotRepository interface {
	// CreateAll inserts the frozen rows of a submitted batch.
	CreateAll(ctx context.Context, rows []SnapshotRecipient) error
	ListByPaymentID(ctx context.Context, paymentNumericID uint64) ([]SnapshotRecipient, error)
}
