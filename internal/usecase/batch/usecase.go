package batch

import (
	"context"
	"errors"
	"sync"
	"time"

	"bulkpay-backend/internal/domain/recipient"
	"bulkpay-backend/internal/domain/registry"
	"bulkpay-backend/pkg/id"
)

var (
	ErrBatchNotFound = errors.New("batch not found")
	ErrBatchNotReady = errors.New("batch has rows that are not valid")
)

const defaultLookupTimeout = 5 * time.Second

// Usecase owns the live, pre-submission batches of the session and
// drives per-recipient validation against the registry lookup.
//
// Batches are session-scoped and never durable, so they live in
// memory. The mutex guards list/row mutations only; it is never held
// across a registry call, so lookups for distinct recipients overlap
// freely.
type Usecase struct {
	mu      sync.Mutex
	batches map[string]*recipient.Batch

	lookup  registry.Lookup
	timeout time.Duration
}

func NewUsecase(lookup registry.Lookup, lookupTimeout time.Duration) *Usecase {
	if lookupTimeout <= 0 {
		lookupTimeout = defaultLookupTimeout
	}
	return &Usecase{
		batches: make(map[string]*recipient.Batch),
		lookup:  lookup,
		timeout: lookupTimeout,
	}
}

func newRow() *recipient.Recipient {
	return &recipient.Recipient{ID: id.NewID32(), Status: recipient.StatusUnvalidated}
}

// CreateBatch opens a new batch with a single empty row.
func (u *Usecase) CreateBatch() *BatchDTO {
	b := &recipient.Batch{
		ID:         id.NewID32(),
		Recipients: []*recipient.Recipient{newRow()},
	}
	u.mu.Lock()
	u.batches[b.ID] = b
	dto := toDTO(b)
	u.mu.Unlock()
	return dto
}

func (u *Usecase) Get(batchID string) (*BatchDTO, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	b, ok := u.batches[batchID]
	if !ok {
		return nil, ErrBatchNotFound
	}
	return toDTO(b), nil
}

// AddRecipient appends a fresh empty row.
func (u *Usecase) AddRecipient(batchID string) (*BatchDTO, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	b, ok := u.batches[batchID]
	if !ok {
		return nil, ErrBatchNotFound
	}
	b.Recipients = append(b.Recipients, newRow())
	return toDTO(b), nil
}

// UpdateRecipient applies a partial edit. An unknown recipient id is
// a silent no-op: callers only ever hold ids they just rendered.
// Editing name or phone number resets validation state, including a
// lookup still in flight (its late result is discarded).
func (u *Usecase) UpdateRecipient(batchID, recipientID string, in UpdateRecipientInput) (*BatchDTO, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	b, ok := u.batches[batchID]
	if !ok {
		return nil, ErrBatchNotFound
	}
	if r := b.Find(recipientID); r != nil {
		reset := false
		if in.Name != nil && *in.Name != r.Name {
			r.Name = *in.Name
			reset = true
		}
		if in.PhoneNumber != nil && *in.PhoneNumber != r.PhoneNumber {
			r.PhoneNumber = *in.PhoneNumber
			reset = true
		}
		if in.Amount != nil {
			r.Amount = *in.Amount
		}
		if reset {
			r.ResetValidation()
		}
	}
	return toDTO(b), nil
}

// RemoveRecipient drops a row; removing the last remaining row is a
// no-op so the batch never becomes empty.
func (u *Usecase) RemoveRecipient(batchID, recipientID string) (*BatchDTO, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	b, ok := u.batches[batchID]
	if !ok {
		return nil, ErrBatchNotFound
	}
	b.Remove(recipientID)
	return toDTO(b), nil
}

// ValidateRecipient checks one row against the registry. Rows missing
// a name or phone number are skipped. The row shows Validating while
// the lookup is in flight; a lookup failure or timeout surfaces as
// Invalid with a generic message and is only retried when the caller
// asks again.
func (u *Usecase) ValidateRecipient(ctx context.Context, batchID, recipientID string) (*BatchDTO, error) {
	u.mu.Lock()
	b, ok := u.batches[batchID]
	if !ok {
		u.mu.Unlock()
		return nil, ErrBatchNotFound
	}
	r := b.Find(recipientID)
	if r == nil || !r.Validatable() {
		dto := toDTO(b)
		u.mu.Unlock()
		return dto, nil
	}
	r.Status = recipient.StatusValidating
	r.RegisteredName = ""
	r.ValidationMessage = ""
	// capture inputs so the lookup runs lock-free
	name, phone := r.Name, r.PhoneNumber
	u.mu.Unlock()

	lctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()
	res, err := u.lookup.Lookup(lctx, phone)

	u.mu.Lock()
	defer u.mu.Unlock()
	// The row may have been edited or removed while the lookup was in
	// flight; a result must never survive a later edit.
	r = b.Find(recipientID)
	if r == nil || r.Status != recipient.StatusValidating || r.Name != name || r.PhoneNumber != phone {
		return toDTO(b), nil
	}
	switch {
	case err != nil:
		r.Status = recipient.StatusInvalid
		r.ValidationMessage = recipient.MsgLookupFailed
	case !res.Found:
		r.Status = recipient.StatusInvalid
		r.ValidationMessage = recipient.MsgNotFound
	case r.NameMatches(res.RegisteredName):
		r.Status = recipient.StatusValid
		r.RegisteredName = res.RegisteredName
		r.ValidationMessage = recipient.MsgNameMatch
	default:
		r.Status = recipient.StatusInvalid
		r.RegisteredName = res.RegisteredName
		r.ValidationMessage = recipient.MsgNameMismatch(res.RegisteredName)
	}
	return toDTO(b), nil
}

// ValidateAll validates every unvalidated row that has both required
// fields, one lookup per row in parallel. Rows already Valid or
// Invalid are left alone; editing a row is the only way to re-queue
// it.
func (u *Usecase) ValidateAll(ctx context.Context, batchID string) (*BatchDTO, error) {
	u.mu.Lock()
	b, ok := u.batches[batchID]
	if !ok {
		u.mu.Unlock()
		return nil, ErrBatchNotFound
	}
	var eligible []string
	for _, r := range b.Recipients {
		if r.Status == recipient.StatusUnvalidated && r.Validatable() {
			eligible = append(eligible, r.ID)
		}
	}
	u.mu.Unlock()

	var wg sync.WaitGroup
	for _, rid := range eligible {
		wg.Add(1)
		go func(rid string) {
			defer wg.Done()
			_, _ = u.ValidateRecipient(ctx, batchID, rid)
		}(rid)
	}
	wg.Wait()

	return u.Get(batchID)
}

// IsReady reports whether the batch may be submitted.
func (u *Usecase) IsReady(batchID string) (bool, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	b, ok := u.batches[batchID]
	if !ok {
		return false, ErrBatchNotFound
	}
	return b.AllValid(), nil
}

// TakeIfReady atomically claims a batch for submission: readiness
// check, row copy, and removal happen under one lock acquisition, so
// two submitters can never both claim the same batch and no edit can
// slip in between the check and the copy. On failure the caller puts
// the rows back with Restore.
func (u *Usecase) TakeIfReady(batchID string) ([]recipient.Recipient, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	b, ok := u.batches[batchID]
	if !ok {
		return nil, ErrBatchNotFound
	}
	if !b.AllValid() {
		return nil, ErrBatchNotReady
	}
	out := make([]recipient.Recipient, len(b.Recipients))
	for i, r := range b.Recipients {
		out[i] = *r
	}
	delete(u.batches, batchID)
	return out, nil
}

// Restore reinstates a batch claimed by TakeIfReady, used when the
// submission transaction fails so the user can retry. A batch id that
// meanwhile exists again is left alone.
func (u *Usecase) Restore(batchID string, rows []recipient.Recipient) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, exists := u.batches[batchID]; exists {
		return
	}
	rs := make([]*recipient.Recipient, len(rows))
	for i := range rows {
		r := rows[i]
		rs[i] = &r
	}
	u.batches[batchID] = &recipient.Batch{ID: batchID, Recipients: rs}
}

// Drop discards a batch, typically after a successful submission.
func (u *Usecase) Drop(batchID string) {
	u.mu.Lock()
	delete(u.batches, batchID)
	u.mu.Unlock()
}

func toDTO(b *recipient.Batch) *BatchDTO {
	rows := make([]recipient.Recipient, len(b.Recipients))
	for i, r := range b.Recipients {
		rows[i] = *r
	}
	return &BatchDTO{
		BatchID:     b.ID,
		Recipients:  rows,
		TotalAmount: b.TotalAmount(),
		Ready:       b.AllValid(),
	}
}
