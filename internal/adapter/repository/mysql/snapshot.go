package mysql

import (
	"context"

	paymentDomain "bulkpay-backend/internal/domain/bulkpayment"

	"gorm.io/gorm"
)

type SnapshotRepository struct{ db *gorm.DB }

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository { return &SnapshotRepository{db: db} }

func (r *SnapshotRepository) CreateAll(ctx context.Context, rows []paymentDomain.SnapshotRecipient) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *SnapshotRepository) ListByPaymentID(ctx context.Context, paymentNumericID uint64) ([]paymentDomain.SnapshotRecipient, error) {
	var out []paymentDomain.SnapshotRecipient
	res := r.db.WithContext(ctx).
		Where("payment_id = ?", paymentNumericID).
		Order("position ASC").
		Find(&out)
	return out, res.Error
}
