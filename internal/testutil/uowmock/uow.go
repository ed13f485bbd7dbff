package uowmock

import (
	"context"
	"errors"

	"bulkpay-backend/internal/domain/bulkpayment"
	"bulkpay-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn        func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinPaymentTxFn func(ctx context.Context, paymentID string, fn func(r uow.Repos, p *bulkpayment.BulkPayment) error) error
}

// Convenience fluent setters
func New() *UoW { return &UoW{} }
func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}
func (m *UoW) WithWithinPaymentTx(fn func(context.Context, string, func(uow.Repos, *bulkpayment.BulkPayment) error) error) *UoW {
	m.WithinPaymentTxFn = fn
	return m
}
func (m *UoW) Reset() { *m = UoW{} }

// Methods implementing UnitOfWork
func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinPaymentTx(ctx context.Context, paymentID string, fn func(r uow.Repos, p *bulkpayment.BulkPayment) error) error {
	if m.WithinPaymentTxFn != nil {
		return m.WithinPaymentTxFn(ctx, paymentID, fn)
	}
	return errUnimplemented
}

// Passthrough wires WithinTx straight to the given repos and
// WithinPaymentTx to a lookup on those repos, mimicking the real UoW
// without a database.
func Passthrough(r uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(ctx context.Context, fn func(uow.Repos) error) error {
			return fn(r)
		},
		WithinPaymentTxFn: func(ctx context.Context, paymentID string, fn func(uow.Repos, *bulkpayment.BulkPayment) error) error {
			p, err := r.Payments.GetByPaymentIDForUpdate(ctx, paymentID)
			if err != nil {
				return err
			}
			return fn(r, p)
		},
	}
}
