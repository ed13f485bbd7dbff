package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "bulkpay-backend/internal/domain/bulkpayment"
	"bulkpay-backend/internal/domain/uow"
	"bulkpay-backend/pkg/id"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schema only for tests (no ENUM) ---

type paymentSQLite struct {
	ID              uint64         `gorm:"primaryKey;column:id"`
	PaymentID       string         `gorm:"size:32;column:payment_id"`
	OrganizationID  string         `gorm:"size:32;column:organization_id"`
	TotalAmount     float64        `gorm:"column:total_amount"`
	Currency        string         `gorm:"column:currency"`
	Status          string         `gorm:"type:text;column:status"` // ← no enum
	ApprovedBy      string         `gorm:"column:approved_by"`
	StatusUpdatedAt time.Time      `gorm:"column:status_updated_at"`
	CreatedAt       time.Time      `gorm:"column:created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (paymentSQLite) TableName() string { return "bulk_payments" }

type snapshotSQLite struct {
	ID             uint64    `gorm:"primaryKey;column:id"`
	PaymentID      uint64    `gorm:"column:payment_id"`
	RecipientID    string    `gorm:"size:32;column:recipient_id"`
	Name           string    `gorm:"column:name"`
	PhoneNumber    string    `gorm:"column:phone_number"`
	Amount         float64   `gorm:"column:amount"`
	RegisteredName string    `gorm:"column:registered_name"`
	Position       int       `gorm:"column:position"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (snapshotSQLite) TableName() string { return "bulk_payment_recipients" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the sqlite-safe schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&paymentSQLite{}, &snapshotSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makePayment(orgID string, status domain.Status) *domain.BulkPayment {
	return &domain.BulkPayment{
		PaymentID:       id.NewID32(),
		OrganizationID:  orgID,
		TotalAmount:     2500.00,
		Currency:        "UGX",
		Status:          status,
		StatusUpdatedAt: time.Now().UTC(),
	}
}

func TestCreateAndGetByPaymentID(t *testing.T) {
	db := openTestDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	org := id.NewID32()
	p := makePayment(org, domain.StatusPendingApproval)
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	got, err := repo.GetByPaymentID(ctx, p.PaymentID)
	if err != nil {
		t.Fatalf("GetByPaymentID: %v", err)
	}
	if got.OrganizationID != org || got.Status != domain.StatusPendingApproval {
		t.Fatalf("got %+v", got)
	}
	if got.IsApproved() {
		t.Fatalf("pending payment reported approved")
	}
}

func TestGetByPaymentID_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewPaymentRepository(db)

	_, err := repo.GetByPaymentID(context.Background(), id.NewID32())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSave_PersistsStatusChange(t *testing.T) {
	db := openTestDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	p := makePayment(id.NewID32(), domain.StatusPendingApproval)
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	p.Status = domain.StatusApproved
	p.ApprovedBy = id.NewID32()
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByPaymentID(ctx, p.PaymentID)
	if err != nil {
		t.Fatalf("GetByPaymentID: %v", err)
	}
	if got.Status != domain.StatusApproved || got.ApprovedBy != p.ApprovedBy {
		t.Fatalf("status change lost: %+v", got)
	}
}

func TestList_PartitionIsExhaustiveAndDisjoint(t *testing.T) {
	db := openTestDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()
	org := id.NewID32()

	seed := []*domain.BulkPayment{
		makePayment(org, domain.StatusPendingApproval),
		makePayment(org, domain.StatusApproved),
		makePayment(org, domain.StatusRejected),
		makePayment(org, domain.StatusPendingApproval),
	}
	for _, p := range seed {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	// another org's payment must never appear
	other := makePayment(id.NewID32(), domain.StatusPendingApproval)
	if err := repo.Create(ctx, other); err != nil {
		t.Fatalf("Create: %v", err)
	}

	all, err := repo.List(ctx, org, domain.FilterAll)
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	pending, err := repo.List(ctx, org, domain.FilterPending)
	if err != nil {
		t.Fatalf("List pending: %v", err)
	}
	processed, err := repo.List(ctx, org, domain.FilterProcessed)
	if err != nil {
		t.Fatalf("List processed: %v", err)
	}

	if len(all) != 4 {
		t.Fatalf("all = %d, want 4", len(all))
	}
	if len(pending)+len(processed) != len(all) {
		t.Fatalf("partition not exhaustive: %d + %d != %d", len(pending), len(processed), len(all))
	}
	seen := map[string]int{}
	for _, p := range pending {
		if p.Status != domain.StatusPendingApproval {
			t.Fatalf("pending partition holds %s", p.Status)
		}
		seen[p.PaymentID]++
	}
	for _, p := range processed {
		if !p.Status.Terminal() {
			t.Fatalf("processed partition holds %s", p.Status)
		}
		seen[p.PaymentID]++
	}
	for pid, n := range seen {
		if n != 1 {
			t.Fatalf("payment %s appears in %d partitions", pid, n)
		}
	}
}

func TestSnapshot_CreateAllAndListInOrder(t *testing.T) {
	db := openTestDB(t)
	payments := NewPaymentRepository(db)
	snapshots := NewSnapshotRepository(db)
	ctx := context.Background()

	p := makePayment(id.NewID32(), domain.StatusPendingApproval)
	if err := payments.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rows := []domain.SnapshotRecipient{
		{PaymentID: p.ID, RecipientID: id.NewID32(), Name: "Jane Smith", PhoneNumber: "256772345678", Amount: 500.50, Position: 1},
		{PaymentID: p.ID, RecipientID: id.NewID32(), Name: "John Doe", PhoneNumber: "256701234567", Amount: 1500, Position: 0},
	}
	if err := snapshots.CreateAll(ctx, rows); err != nil {
		t.Fatalf("CreateAll: %v", err)
	}

	got, err := snapshots.ListByPaymentID(ctx, p.ID)
	if err != nil {
		t.Fatalf("ListByPaymentID: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("rows = %d, want 2", len(got))
	}
	// ordered by position, not insertion
	if got[0].Name != "John Doe" || got[1].Name != "Jane Smith" {
		t.Fatalf("order lost: %s, %s", got[0].Name, got[1].Name)
	}
}

func TestSnapshot_CreateAllEmptyIsNoOp(t *testing.T) {
	db := openTestDB(t)
	snapshots := NewSnapshotRepository(db)
	if err := snapshots.CreateAll(context.Background(), nil); err != nil {
		t.Fatalf("CreateAll(nil): %v", err)
	}
}

func TestGormUoW_RollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	tx := NewGormUoW(db)
	payments := NewPaymentRepository(db)
	ctx := context.Background()

	p := makePayment(id.NewID32(), domain.StatusPendingApproval)
	wantErr := errors.New("boom")
	err := tx.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("WithinTx err = %v, want boom", err)
	}
	if _, err := payments.GetByPaymentID(ctx, p.PaymentID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("row survived rollback: err=%v", err)
	}
}
