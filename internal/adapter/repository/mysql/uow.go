package mysql

import (
	"context"

	"bulkpay-backend/internal/domain/bulkpayment"
	"bulkpay-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Payments:  &PaymentRepository{db: tx},
			Snapshots: &SnapshotRepository{db: tx},
		}
		return fn(r)
	})
}

func (u *GormUoW) WithinPaymentTx(ctx context.Context, paymentID string, fn func(r uow.Repos, p *bulkpayment.BulkPayment) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Payments:  &PaymentRepository{db: tx},
			Snapshots: &SnapshotRepository{db: tx},
		}
		// lock the payment row up-front to prevent races
		p, err := r.Payments.GetByPaymentIDForUpdate(ctx, paymentID)
		if err != nil {
			return err
		}
		return fn(r, p)
	})
}
