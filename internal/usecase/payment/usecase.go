package payment

import (
	"context"
	"errors"
	"time"

	domainPayment "bulkpay-backend/internal/domain/bulkpayment"
	"bulkpay-backend/internal/domain/uow"
	ucBatch "bulkpay-backend/internal/usecase/batch"
	"bulkpay-backend/pkg/id"
)

type Usecase struct {
	paymentRepo  domainPayment.Repository
	snapshotRepo domainPayment.SnapshotRepository
	batches      *ucBatch.Usecase
	uow          uow.UnitOfWork
}

// NewUsecase: repos plus a UoW for tx flows, and the batch usecase
// submissions draw from.
func NewUsecase(payments domainPayment.Repository, snapshots domainPayment.SnapshotRepository, batches *ucBatch.Usecase, tx uow.UnitOfWork) *Usecase {
	return &Usecase{paymentRepo: payments, snapshotRepo: snapshots, batches: batches, uow: tx}
}

// Submit freezes a ready batch into a BulkPayment. The batch is
// claimed atomically (readiness check, row copy, and removal under
// one lock), so a batch yields at most one payment even under
// concurrent submits, and no edit can land between the check and the
// freeze. Payment row and frozen recipient rows land in one tx; a
// failed tx puts the batch back for retry.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*PaymentDTO, error) {
	rows, err := u.batches.TakeIfReady(in.BatchID)
	if err != nil {
		if errors.Is(err, ucBatch.ErrBatchNotReady) {
			return nil, domainPayment.ErrBatchNotReady
		}
		return nil, err
	}

	var total float64
	for _, r := range rows {
		total += r.Amount
	}

	p := &domainPayment.BulkPayment{
		PaymentID:       id.NewID32(),
		OrganizationID:  in.OrganizationID,
		TotalAmount:     total,
		Currency:        in.Currency,
		Status:          domainPayment.StatusPendingApproval,
		StatusUpdatedAt: time.Now().UTC(),
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}
		frozen := make([]domainPayment.SnapshotRecipient, len(rows))
		for i, row := range rows {
			frozen[i] = domainPayment.SnapshotRecipient{
				PaymentID:      p.ID,
				RecipientID:    row.ID,
				Name:           row.Name,
				PhoneNumber:    row.PhoneNumber,
				Amount:         row.Amount,
				RegisteredName: row.RegisteredName,
				Position:       i,
			}
		}
		return r.Snapshots.CreateAll(ctx, frozen)
	})
	if err != nil {
		u.batches.Restore(in.BatchID, rows)
		return nil, err
	}

	return toDTO(p, nil), nil
}

// Approve moves a pending payment to approved and records the actor.
// The row is locked for the duration of the tx; any state other than
// pending_approval is refused, terminal states are never reopened.
func (u *Usecase) Approve(ctx context.Context, paymentID, approverID string) (*PaymentDTO, error) {
	var dto *PaymentDTO
	err := u.uow.WithinPaymentTx(ctx, paymentID, func(r uow.Repos, p *domainPayment.BulkPayment) error {
		if err := guardPending(p); err != nil {
			return err
		}
		p.Status = domainPayment.StatusApproved
		p.ApprovedBy = approverID
		p.StatusUpdatedAt = time.Now().UTC()
		if err := r.Payments.Save(ctx, p); err != nil {
			return err
		}
		dto = toDTO(p, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Reject moves a pending payment to rejected. Terminal: a rejected
// batch is resubmitted as a new payment, never reopened.
func (u *Usecase) Reject(ctx context.Context, paymentID string) (*PaymentDTO, error) {
	var dto *PaymentDTO
	err := u.uow.WithinPaymentTx(ctx, paymentID, func(r uow.Repos, p *domainPayment.BulkPayment) error {
		if err := guardPending(p); err != nil {
			return err
		}
		p.Status = domainPayment.StatusRejected
		p.ApprovedBy = ""
		p.StatusUpdatedAt = time.Now().UTC()
		if err := r.Payments.Save(ctx, p); err != nil {
			return err
		}
		dto = toDTO(p, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func guardPending(p *domainPayment.BulkPayment) error {
	switch p.Status {
	case domainPayment.StatusPendingApproval:
		return nil
	case domainPayment.StatusApproved:
		return domainPayment.ErrAlreadyApproved
	case domainPayment.StatusRejected:
		return domainPayment.ErrAlreadyRejected
	default:
		return domainPayment.ErrInvalidTransition
	}
}

// Get returns a payment with its frozen recipient snapshot.
func (u *Usecase) Get(ctx context.Context, paymentID string) (*PaymentDTO, error) {
	p, err := u.paymentRepo.GetByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	rows, err := u.snapshotRepo.ListByPaymentID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return toDTO(p, rows), nil
}

// List returns the organization's payments for one partition.
// pending and processed are exhaustive and disjoint over the three
// states.
func (u *Usecase) List(ctx context.Context, organizationID string, filter domainPayment.ListFilter) ([]PaymentDTO, error) {
	ps, err := u.paymentRepo.List(ctx, organizationID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]PaymentDTO, len(ps))
	for i := range ps {
		out[i] = *toDTO(&ps[i], nil)
	}
	return out, nil
}

func toDTO(p *domainPayment.BulkPayment, rows []domainPayment.SnapshotRecipient) *PaymentDTO {
	dto := &PaymentDTO{
		PaymentID:      p.PaymentID,
		OrganizationID: p.OrganizationID,
		TotalAmount:    p.TotalAmount,
		Currency:       p.Currency,
		Status:         string(p.Status),
		IsApproved:     p.IsApproved(),
		ApprovedBy:     p.ApprovedBy,
		CreatedAt:      p.CreatedAt,
	}
	for _, r := range rows {
		dto.Recipients = append(dto.Recipients, RecipientDTO{
			RecipientID:    r.RecipientID,
			Name:           r.Name,
			PhoneNumber:    r.PhoneNumber,
			Amount:         r.Amount,
			RegisteredName: r.RegisteredName,
		})
	}
	return dto
}
