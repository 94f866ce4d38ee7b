package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	request "findoc_service/internal/adapter/http/dto/request"
	response "findoc_service/internal/adapter/http/dto/response"
	"findoc_service/internal/infrastructure/logger"
	"findoc_service/internal/usecase"
	"findoc_service/pkg"

	"github.com/gin-gonic/gin"
)

const paymentComponent = "payment-handler"

// InvoicePaymentHandler handles HTTP requests for invoice payments.
type InvoicePaymentHandler struct {
	usecase  usecase.IInvoicePaymentUseCase
	mockMode bool
	now      Clock
}

// NewInvoicePaymentHandler builds the handler. With mockMode set an unreadable charge body
// falls back to an empty Mercado Pago payload instead of a 400.
func NewInvoicePaymentHandler(uc usecase.IInvoicePaymentUseCase, mockMode bool) *InvoicePaymentHandler {
	return &InvoicePaymentHandler{usecase: uc, mockMode: mockMode, now: defaultClock}
}

// Charge godoc
// @Summary      Charge an invoice through Mercado Pago
// @Description  Body is the raw Mercado Pago payload or {"amount": 85.00, "mp_payload": {...}}. Amount defaults to the balance due.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        uuid  path  string  true  "Invoice uuid"
// @Success      200  {object}  response.ChargeResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Router       /invoices/{uuid}/payments [post]
func (h *InvoicePaymentHandler) Charge(c *gin.Context) {
	invoiceID := c.Param("uuid")
	log := logger.WithComponent(paymentComponent).With().Str("uuid", invoiceID).Logger()
	log.Debug().Msg("charge start")

	req, err := readChargeRequest(c)
	if err != nil {
		if !h.mockMode {
			log.Warn().Err(err).Msg("invalid charge payload")
			respondError(c, errInvalidPayload)
			return
		}
		log.Warn().Err(err).Msg("charge payload invalid in mock mode; fallback to empty payload")
		req = request.ChargeRequest{MPPayload: json.RawMessage("{}")}
	}

	res, err := h.usecase.Charge(c.Request.Context(), actorFromRequest(c), invoiceID, req.Amount, req.MPPayload)
	if err != nil {
		fail(c, paymentComponent, err, mapPaymentError(err))
		return
	}
	log.Info().
		Str("payment_id", res.Payment.ID).
		Str("status", string(res.Payment.Status)).
		Str("invoice_status", string(res.Invoice.Status)).
		Msg("charge success")

	c.JSON(http.StatusOK, response.FromChargeResult(res, h.now()))
}

// RecordManual godoc
// @Summary  Record a payment received outside the gateway
// @Tags     payments
// @Accept   json
// @Produce  json
// @Param    uuid  path  string                        true  "Invoice uuid"
// @Param    body  body  request.RecordPaymentRequest  true  "Amount"
// @Success  200  {object}  response.ChargeResponse
// @Failure  400  {object}  pkg.HTTPError
// @Failure  409  {object}  pkg.HTTPError
// @Router   /invoices/{uuid}/payments/record [post]
func (h *InvoicePaymentHandler) RecordManual(c *gin.Context) {
	var payload request.RecordPaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidPayload)
		return
	}
	amount, err := payload.ResolveAmount()
	if err != nil {
		respondError(c, pkg.NewDomainErrorSimple("VALIDATION_FAILED", "Invalid document input", http.StatusBadRequest).
			WithDetails(map[string]string{"amount": err.Error()}))
		return
	}

	res, err := h.usecase.RecordManual(c.Request.Context(), actorFromRequest(c), c.Param("uuid"), amount)
	if err != nil {
		fail(c, paymentComponent, err, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromChargeResult(res, h.now()))
}

// ListPayments godoc
// @Summary  List the payments of an invoice, oldest first
// @Tags     payments
// @Produce  json
// @Param    uuid  path  string  true  "Invoice uuid"
// @Success  200  {array}  response.PaymentResponse
// @Failure  404  {object}  pkg.HTTPError
// @Router   /invoices/{uuid}/payments [get]
func (h *InvoicePaymentHandler) ListPayments(c *gin.Context) {
	payments, err := h.usecase.ListPayments(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		fail(c, paymentComponent, err, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPayments(payments))
}

// GetPayment godoc
// @Summary  Get one payment of an invoice
// @Tags     payments
// @Produce  json
// @Param    uuid        path  string  true  "Invoice uuid"
// @Param    payment_id  path  string  true  "Payment id"
// @Success  200  {object}  response.PaymentResponse
// @Failure  404  {object}  pkg.HTTPError
// @Router   /invoices/{uuid}/payments/{payment_id} [get]
func (h *InvoicePaymentHandler) GetPayment(c *gin.Context) {
	p, err := h.usecase.GetPayment(c.Request.Context(), c.Param("uuid"), c.Param("payment_id"))
	if err != nil {
		fail(c, paymentComponent, err, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPayment(p))
}

func readChargeRequest(c *gin.Context) (request.ChargeRequest, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return request.ChargeRequest{}, err
	}
	return request.ParseChargeRequest(raw)
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidMPPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainError("COLLABORATOR_NOT_CONFIGURED", "Service not configured", err, http.StatusServiceUnavailable)
	default:
		return mapDocumentError(err)
	}
}
