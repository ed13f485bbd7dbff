package http

import (
	"bytes"
	"encoding/json"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bulkpay-backend/internal/testutil/registrymock"
	ucBatch "bulkpay-backend/internal/usecase/batch"

	"github.com/labstack/echo/v4"
)

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func newBatchUsecase() *ucBatch.Usecase {
	return ucBatch.NewUsecase(registrymock.Table(map[string]string{
		"256701234567": "John Doe",
	}), 0)
}

func decodeBatch(t *testing.T, rec *httptest.ResponseRecorder) ucBatch.BatchDTO {
	t.Helper()
	var dto ucBatch.BatchDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("bad json: %v; raw=%s", err, rec.Body.String())
	}
	return dto
}

func TestCreateBatch_ReturnsSingleEmptyRow(t *testing.T) {
	e := newEchoWithValidator()
	h := NewBatchHandler(newBatchUsecase())

	req := httptest.NewRequest(stdhttp.MethodPost, "/batches", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateBatch(c); err != nil {
		t.Fatalf("CreateBatch error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	dto := decodeBatch(t, rec)
	if len(dto.BatchID) != 32 {
		t.Fatalf("batch id length = %d", len(dto.BatchID))
	}
	if len(dto.Recipients) != 1 || dto.Ready {
		t.Fatalf("fresh batch: rows=%d ready=%v", len(dto.Recipients), dto.Ready)
	}
}

func TestGetBatch_NotFound(t *testing.T) {
	e := newEchoWithValidator()
	h := NewBatchHandler(newBatchUsecase())

	req := httptest.NewRequest(stdhttp.MethodGet, "/batches/nope", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("batch_id")
	c.SetParamValues("nope")

	if err := h.GetBatch(c); err != nil {
		t.Fatalf("GetBatch error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestUpdateRecipient_RejectsBadAmount(t *testing.T) {
	e := newEchoWithValidator()
	uc := newBatchUsecase()
	h := NewBatchHandler(uc)
	b := uc.CreateBatch()

	body := map[string]any{"amount": 10.999} // three decimal places
	req := httptest.NewRequest(stdhttp.MethodPatch, "/", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("batch_id", "recipient_id")
	c.SetParamValues(b.BatchID, b.Recipients[0].ID)

	if err := h.UpdateRecipient(c); err != nil {
		t.Fatalf("UpdateRecipient error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if !containsFieldMsg(er.Details, "Amount", "2 decimal places") {
		t.Fatalf("details = %+v", er.Details)
	}
}

func TestValidateRecipientRoute_FullFlow(t *testing.T) {
	e := newEchoWithValidator()
	uc := newBatchUsecase()
	h := NewBatchHandler(uc)
	b := uc.CreateBatch()
	rid := b.Recipients[0].ID

	// fill the row
	body := map[string]any{"name": "John Doe", "phone_number": "256701234567", "amount": 1000}
	req := httptest.NewRequest(stdhttp.MethodPatch, "/", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("batch_id", "recipient_id")
	c.SetParamValues(b.BatchID, rid)
	if err := h.UpdateRecipient(c); err != nil {
		t.Fatalf("UpdateRecipient error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("update status = %d: %s", rec.Code, rec.Body.String())
	}

	// validate it
	req = httptest.NewRequest(stdhttp.MethodPost, "/", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("batch_id", "recipient_id")
	c.SetParamValues(b.BatchID, rid)
	if err := h.ValidateRecipient(c); err != nil {
		t.Fatalf("ValidateRecipient error: %v", err)
	}
	dto := decodeBatch(t, rec)
	if !dto.Ready {
		t.Fatalf("batch should be ready after validation: %+v", dto.Recipients)
	}
	if dto.Recipients[0].ValidationMessage != "Name matches network registration" {
		t.Fatalf("message = %q", dto.Recipients[0].ValidationMessage)
	}
}

func TestExportCSV_EmitsAuditColumns(t *testing.T) {
	e := newEchoWithValidator()
	uc := newBatchUsecase()
	h := NewBatchHandler(uc)
	b := uc.CreateBatch()

	req := httptest.NewRequest(stdhttp.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("batch_id")
	c.SetParamValues(b.BatchID)

	if err := h.ExportCSV(c); err != nil {
		t.Fatalf("ExportCSV error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content-type = %q", ct)
	}
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if lines[0] != "id,name,phoneNumber,amount,status,reason" {
		t.Fatalf("header = %q", lines[0])
	}
	if len(lines) != 2 { // header + the one empty row
		t.Fatalf("lines = %d, want 2", len(lines))
	}
}

func TestRemoveRecipient_LastRowStays(t *testing.T) {
	e := newEchoWithValidator()
	uc := newBatchUsecase()
	h := NewBatchHandler(uc)
	b := uc.CreateBatch()

	req := httptest.NewRequest(stdhttp.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("batch_id", "recipient_id")
	c.SetParamValues(b.BatchID, b.Recipients[0].ID)

	if err := h.RemoveRecipient(c); err != nil {
		t.Fatalf("RemoveRecipient error: %v", err)
	}
	dto := decodeBatch(t, rec)
	if len(dto.Recipients) != 1 {
		t.Fatalf("rows = %d, want 1 (last row is kept)", len(dto.Recipients))
	}
}
