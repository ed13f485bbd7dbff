package http

import (
	"errors"
	"net/http"
	"strings"

	domainPayment "bulkpay-backend/internal/domain/bulkpayment"
	ucBatch "bulkpay-backend/internal/usecase/batch"
	ucPayment "bulkpay-backend/internal/usecase/payment"

	"github.com/labstack/echo/v4"
)

// PaymentHandler exposes batch submission and the approval workflow.
type PaymentHandler struct{ uc *ucPayment.Usecase }

func NewPaymentHandler(uc *ucPayment.Usecase) *PaymentHandler { return &PaymentHandler{uc: uc} }

type submitBatchReq struct {
	OrganizationID string `json:"organization_id" validate:"required,hex32"`
	Currency       string `json:"currency"        validate:"required,len=3,uppercase"`
}

func (h *PaymentHandler) SubmitBatch(c echo.Context) error {
	batchID := c.Param("batch_id")
	if batchID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing batch_id path param"})
	}
	var req submitBatchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Submit(c.Request().Context(), ucPayment.SubmitInput{
		BatchID:        batchID,
		OrganizationID: req.OrganizationID,
		Currency:       req.Currency,
	})
	if err != nil {
		return paymentErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *PaymentHandler) ApprovePayment(c echo.Context) error {
	paymentID := c.Param("payment_id")
	if paymentID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing payment_id path param"})
	}
	// Acting approver arrives with the idempotency headers; the
	// middleware has already checked format and presence.
	approverID := strings.TrimSpace(c.Request().Header.Get("Ax-Actor-Id"))
	if approverID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing Ax-Actor-Id"})
	}
	dto, err := h.uc.Approve(c.Request().Context(), paymentID, approverID)
	if err != nil {
		return paymentErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PaymentHandler) RejectPayment(c echo.Context) error {
	paymentID := c.Param("payment_id")
	if paymentID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing payment_id path param"})
	}
	dto, err := h.uc.Reject(c.Request().Context(), paymentID)
	if err != nil {
		return paymentErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PaymentHandler) GetPayment(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("payment_id"))
	if err != nil {
		return paymentErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type listPaymentsReq struct {
	OrganizationID string `query:"organization_id" validate:"required,hex32"`
	Filter         string `query:"filter"          validate:"omitempty,oneof=all pending processed"`
}

func (h *PaymentHandler) ListPayments(c echo.Context) error {
	var req listPaymentsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	filter := domainPayment.ListFilter(req.Filter)
	if req.Filter == "" {
		filter = domainPayment.FilterAll
	}
	out, err := h.uc.List(c.Request().Context(), req.OrganizationID, filter)
	if err != nil {
		return paymentErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"payments": out})
}

// Map domain errors → HTTP codes.
func paymentErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domainPayment.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "payment not found"})
	case errors.Is(err, ucBatch.ErrBatchNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "batch not found"})
	case errors.Is(err, domainPayment.ErrBatchNotReady):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "batch is not ready for submission"})
	case errors.Is(err, domainPayment.ErrAlreadyApproved),
		errors.Is(err, domainPayment.ErrAlreadyRejected),
		errors.Is(err, domainPayment.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}
