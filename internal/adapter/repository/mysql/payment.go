package mysql

import (
	"context"
	"errors"

	paymentDomain "bulkpay-backend/internal/domain/bulkpayment"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

// Tx runs fn in a db transaction, passing a repo bound to the tx
func (r *PaymentRepository) Tx(ctx context.Context, fn func(repo paymentDomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PaymentRepository{db: tx})
	})
}

func (r *PaymentRepository) Create(ctx context.Context, p *paymentDomain.BulkPayment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) Save(ctx context.Context, p *paymentDomain.BulkPayment) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PaymentRepository) GetByPaymentID(ctx context.Context, paymentID string) (*paymentDomain.BulkPayment, error) {
	var out paymentDomain.BulkPayment
	res := r.db.WithContext(ctx).Where("payment_id = ?", paymentID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, paymentDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *PaymentRepository) GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*paymentDomain.BulkPayment, error) {
	var out paymentDomain.BulkPayment
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("payment_id = ?", paymentID).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, paymentDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *PaymentRepository) List(ctx context.Context, organizationID string, filter paymentDomain.ListFilter) ([]paymentDomain.BulkPayment, error) {
	q := r.db.WithContext(ctx).Where("organization_id = ?", organizationID)
	switch filter {
	case paymentDomain.FilterPending:
		q = q.Where("status = ?", paymentDomain.StatusPendingApproval)
	case paymentDomain.FilterProcessed:
		q = q.Where("status IN ?", []paymentDomain.Status{paymentDomain.StatusApproved, paymentDomain.StatusRejected})
	}
	var out []paymentDomain.BulkPayment
	res := q.Order("created_at DESC, id DESC").Find(&out)
	return out, res.Error
}
