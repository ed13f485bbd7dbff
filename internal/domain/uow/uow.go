package uow

import (
	"context"

	"bulkpay-backend/internal/domain/bulkpayment"
)

type Repos struct {
	Payments  bulkpayment.Repository
	Snapshots bulkpayment.SnapshotRepository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the payment row first, then pass it in
	WithinPaymentTx(ctx context.Context, paymentID string, fn func(r Repos, p *bulkpayment.BulkPayment) error) error
}
