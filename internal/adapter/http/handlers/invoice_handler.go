package handlers

import (
	"net/http"

	request "findoc_service/internal/adapter/http/dto/request"
	response "findoc_service/internal/adapter/http/dto/response"
	"findoc_service/internal/domain/entities"
	"findoc_service/internal/usecase"

	"github.com/gin-gonic/gin"
)

const invoiceComponent = "invoice-handler"

// InvoiceHandler handles HTTP requests for invoices.
type InvoiceHandler struct {
	usecase usecase.IInvoiceUseCase
	now     Clock
}

func NewInvoiceHandler(uc usecase.IInvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{usecase: uc, now: defaultClock}
}

// Create godoc
// @Summary  Create an invoice draft; the invoice number is allocated on creation
// @Tags     invoices
// @Accept   json
// @Produce  json
// @Param    X-Actor-ID  header  string                       true  "Acting user"
// @Param    body        body    request.CreateInvoiceRequest true  "Invoice"
// @Success  201  {object}  response.InvoiceResponse
// @Failure  400  {object}  pkg.HTTPError
// @Router   /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var payload request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidPayload)
		return
	}

	inv, err := h.usecase.CreateDraft(c.Request.Context(), actorFromRequest(c), payload.ToInput())
	h.respond(c, http.StatusCreated, inv, err)
}

// Get godoc
// @Summary  Get an invoice with its effective status
// @Tags     invoices
// @Produce  json
// @Param    uuid  path  string  true  "Invoice uuid"
// @Success  200  {object}  response.InvoiceResponse
// @Failure  404  {object}  pkg.HTTPError
// @Router   /invoices/{uuid} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	inv, err := h.usecase.Get(c.Request.Context(), c.Param("uuid"))
	h.respond(c, http.StatusOK, inv, err)
}

// List godoc
// @Summary  List the invoices of a service order
// @Tags     invoices
// @Produce  json
// @Param    order_ref  query  string  true  "Service order reference"
// @Success  200  {array}  response.InvoiceResponse
// @Router   /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	list, err := h.usecase.ListByOrderRef(c.Request.Context(), c.Query("order_ref"))
	if err != nil {
		fail(c, invoiceComponent, err, mapDocumentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromInvoices(list, h.now()))
}

// Update godoc
// @Summary  Edit a draft invoice
// @Tags     invoices
// @Accept   json
// @Produce  json
// @Param    uuid  path  string                       true  "Invoice uuid"
// @Param    body  body  request.UpdateInvoiceRequest true  "Patch"
// @Success  200  {object}  response.InvoiceResponse
// @Failure  409  {object}  pkg.HTTPError
// @Router   /invoices/{uuid} [patch]
func (h *InvoiceHandler) Update(c *gin.Context) {
	var payload request.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidPayload)
		return
	}

	inv, err := h.usecase.UpdateDraft(c.Request.Context(), actorFromRequest(c), c.Param("uuid"), payload.ToInput())
	h.respond(c, http.StatusOK, inv, err)
}

// Delete godoc
// @Summary  Delete a draft invoice
// @Tags     invoices
// @Param    uuid  path  string  true  "Invoice uuid"
// @Success  204
// @Failure  409  {object}  pkg.HTTPError
// @Router   /invoices/{uuid} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), actorFromRequest(c), c.Param("uuid")); err != nil {
		fail(c, invoiceComponent, err, mapDocumentError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// GeneratePDF godoc
// @Summary  Render the invoice PDF
// @Tags     invoices
// @Produce  json
// @Param    uuid  path  string  true  "Invoice uuid"
// @Success  200  {object}  response.InvoiceResponse
// @Failure  502  {object}  pkg.HTTPError
// @Router   /invoices/{uuid}/pdf [post]
func (h *InvoiceHandler) GeneratePDF(c *gin.Context) {
	inv, err := h.usecase.GeneratePDF(c.Request.Context(), actorFromRequest(c), c.Param("uuid"))
	h.respond(c, http.StatusOK, inv, err)
}

// Send godoc
// @Summary  Deliver the invoice to the client
// @Tags     invoices
// @Produce  json
// @Param    uuid  path  string  true  "Invoice uuid"
// @Success  200  {object}  response.InvoiceResponse
// @Failure  412  {object}  pkg.HTTPError
// @Failure  502  {object}  pkg.HTTPError
// @Router   /invoices/{uuid}/send [post]
func (h *InvoiceHandler) Send(c *gin.Context) {
	inv, err := h.usecase.Send(c.Request.Context(), actorFromRequest(c), c.Param("uuid"))
	h.respond(c, http.StatusOK, inv, err)
}

// MarkPending godoc
// @Summary  Mark a sent invoice as pending payment
// @Tags     invoices
// @Produce  json
// @Param    uuid  path  string  true  "Invoice uuid"
// @Success  200  {object}  response.InvoiceResponse
// @Failure  409  {object}  pkg.HTTPError
// @Router   /invoices/{uuid}/pending [post]
func (h *InvoiceHandler) MarkPending(c *gin.Context) {
	inv, err := h.usecase.MarkPending(c.Request.Context(), actorFromRequest(c), c.Param("uuid"))
	h.respond(c, http.StatusOK, inv, err)
}

// Cancel godoc
// @Summary  Cancel an unpaid invoice
// @Tags     invoices
// @Produce  json
// @Param    uuid  path  string  true  "Invoice uuid"
// @Success  200  {object}  response.InvoiceResponse
// @Failure  409  {object}  pkg.HTTPError
// @Router   /invoices/{uuid}/cancel [post]
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	inv, err := h.usecase.Cancel(c.Request.Context(), actorFromRequest(c), c.Param("uuid"))
	h.respond(c, http.StatusOK, inv, err)
}

// Void godoc
// @Summary  Void a non-draft invoice (admin only)
// @Tags     invoices
// @Accept   json
// @Produce  json
// @Param    uuid  path  string               true  "Invoice uuid"
// @Param    body  body  request.VoidRequest  true  "Reason"
// @Success  200  {object}  response.InvoiceResponse
// @Failure  403  {object}  pkg.HTTPError
// @Router   /invoices/{uuid}/void [post]
func (h *InvoiceHandler) Void(c *gin.Context) {
	var payload request.VoidRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidPayload)
		return
	}

	inv, err := h.usecase.Void(c.Request.Context(), actorFromRequest(c), c.Param("uuid"), payload.ResolveReason())
	h.respond(c, http.StatusOK, inv, err)
}

func (h *InvoiceHandler) respond(c *gin.Context, status int, inv entities.Invoice, err error) {
	if err != nil {
		fail(c, invoiceComponent, err, mapDocumentError(err))
		return
	}
	c.JSON(status, response.FromInvoice(inv, h.now()))
}
