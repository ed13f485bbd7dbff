package http

import (
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"

	ucBatch "bulkpay-backend/internal/usecase/batch"

	"github.com/labstack/echo/v4"
)

// BatchHandler exposes the recipient-validation surface: row editing,
// per-row and whole-batch validation, readiness, and CSV export.
type BatchHandler struct{ uc *ucBatch.Usecase }

func NewBatchHandler(uc *ucBatch.Usecase) *BatchHandler { return &BatchHandler{uc: uc} }

func (h *BatchHandler) CreateBatch(c echo.Context) error {
	return c.JSON(http.StatusCreated, h.uc.CreateBatch())
}

func (h *BatchHandler) GetBatch(c echo.Context) error {
	dto, err := h.uc.Get(c.Param("batch_id"))
	if err != nil {
		return batchErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *BatchHandler) AddRecipient(c echo.Context) error {
	dto, err := h.uc.AddRecipient(c.Param("batch_id"))
	if err != nil {
		return batchErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type updateRecipientReq struct {
	Name *string `json:"name"`
	// Deliberately no msisdn tag: rows hold partial, in-progress
	// edits, and a malformed number surfaces as a registry miss at
	// validation time rather than a rejected save.
	PhoneNumber *string  `json:"phone_number"`
	Amount      *float64 `json:"amount" validate:"omitempty,gte=0,dec2"`
}

func (h *BatchHandler) UpdateRecipient(c echo.Context) error {
	var req updateRecipientReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.UpdateRecipient(c.Param("batch_id"), c.Param("recipient_id"), ucBatch.UpdateRecipientInput{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Amount:      req.Amount,
	})
	if err != nil {
		return batchErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *BatchHandler) RemoveRecipient(c echo.Context) error {
	dto, err := h.uc.RemoveRecipient(c.Param("batch_id"), c.Param("recipient_id"))
	if err != nil {
		return batchErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *BatchHandler) ValidateRecipient(c echo.Context) error {
	dto, err := h.uc.ValidateRecipient(c.Request().Context(), c.Param("batch_id"), c.Param("recipient_id"))
	if err != nil {
		return batchErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *BatchHandler) ValidateAll(c echo.Context) error {
	dto, err := h.uc.ValidateAll(c.Request().Context(), c.Param("batch_id"))
	if err != nil {
		return batchErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// ExportCSV streams the audit row set:
// id, name, phoneNumber, amount, status, reason.
func (h *BatchHandler) ExportCSV(c echo.Context) error {
	dto, err := h.uc.Get(c.Param("batch_id"))
	if err != nil {
		return batchErr(c, err)
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/csv")
	res.Header().Set(echo.HeaderContentDisposition, `attachment; filename="recipients.csv"`)
	res.WriteHeader(http.StatusOK)

	w := csv.NewWriter(res)
	if err := w.Write([]string{"id", "name", "phoneNumber", "amount", "status", "reason"}); err != nil {
		return err
	}
	for _, r := range dto.Recipients {
		rec := []string{
			r.ID,
			r.Name,
			r.PhoneNumber,
			strconv.FormatFloat(r.Amount, 'f', 2, 64),
			string(r.Status),
			r.ValidationMessage,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func batchErr(c echo.Context, err error) error {
	if errors.Is(err, ucBatch.ErrBatchNotFound) {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "batch not found"})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}
