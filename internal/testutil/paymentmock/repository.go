package paymentmock

import (
	"context"

	domain "bulkpay-backend/internal/domain/bulkpayment"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only methods you need are included; add more as tests require.
type Repo struct {
	CreateFn                  func(ctx context.Context, p *domain.BulkPayment) error
	SaveFn                    func(ctx context.Context, p *domain.BulkPayment) error
	GetByPaymentIDFn          func(ctx context.Context, paymentID string) (*domain.BulkPayment, error)
	GetByPaymentIDForUpdateFn func(ctx context.Context, paymentID string) (*domain.BulkPayment, error)
	ListFn                    func(ctx context.Context, organizationID string, filter domain.ListFilter) ([]domain.BulkPayment, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, p *domain.BulkPayment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, p *domain.BulkPayment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByPaymentID(ctx context.Context, paymentID string) (*domain.BulkPayment, error) {
	if m.GetByPaymentIDFn != nil {
		return m.GetByPaymentIDFn(ctx, paymentID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*domain.BulkPayment, error) {
	if m.GetByPaymentIDForUpdateFn != nil {
		return m.GetByPaymentIDForUpdateFn(ctx, paymentID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) List(ctx context.Context, organizationID string, filter domain.ListFilter) ([]domain.BulkPayment, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, organizationID, filter)
	}
	return nil, nil
}

// SnapshotRepo mocks domain.SnapshotRepository.
type SnapshotRepo struct {
	CreateAllFn       func(ctx context.Context, rows []domain.SnapshotRecipient) error
	ListByPaymentIDFn func(ctx context.Context, paymentNumericID uint64) ([]domain.SnapshotRecipient, error)
}

var _ domain.SnapshotRepository = (*SnapshotRepo)(nil)

func (m *SnapshotRepo) CreateAll(ctx context.Context, rows []domain.SnapshotRecipient) error {
	if m.CreateAllFn != nil {
		return m.CreateAllFn(ctx, rows)
	}
	return nil
}

func (m *SnapshotRepo) ListByPaymentID(ctx context.Context, paymentNumericID uint64) ([]domain.SnapshotRecipient, error) {
	if m.ListByPaymentIDFn != nil {
		return m.ListByPaymentIDFn(ctx, paymentNumericID)
	}
	return nil, nil
}
