package handlers

import (
	"net/http"

	request "findoc_service/internal/adapter/http/dto/request"
	response "findoc_service/internal/adapter/http/dto/response"
	"findoc_service/internal/usecase"

	"github.com/gin-gonic/gin"
)

const estimationComponent = "estimation-handler"

// EstimationHandler handles HTTP requests for estimations (quotes).
type EstimationHandler struct {
	usecase  usecase.IEstimationUseCase
	invoices usecase.IInvoiceUseCase
	now      Clock
}

func NewEstimationHandler(uc usecase.IEstimationUseCase, invoices usecase.IInvoiceUseCase) *EstimationHandler {
	return &EstimationHandler{usecase: uc, invoices: invoices, now: defaultClock}
}

// Create godoc
// @Summary      Create an estimation draft
// @Tags         estimations
// @Accept       json
// @Produce      json
// @Param        X-Actor-ID  header  string                          true  "Acting user"
// @Param        body        body    request.CreateEstimationRequest true  "Estimation"
// @Success      201  {object}  response.EstimationResponse
// @Failure      400  {object}  pkg.HTTPError
// @Router       /estimations [post]
func (h *EstimationHandler) Create(c *gin.Context) {
	var payload request.CreateEstimationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidPayload)
		return
	}

	e, err := h.usecase.CreateDraft(c.Request.Context(), actorFromRequest(c), payload.ToInput())
	if err != nil {
		fail(c, estimationComponent, err, mapDocumentError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromEstimation(e, h.now()))
}

// Get godoc
// @Summary  Get an estimation with its effective status
// @Tags     estimations
// @Produce  json
// @Param    uuid  path  string  true  "Estimation uuid"
// @Success  200  {object}  response.EstimationResponse
// @Failure  404  {object}  pkg.HTTPError
// @Router   /estimations/{uuid} [get]
func (h *EstimationHandler) Get(c *gin.Context) {
	e, err := h.usecase.Get(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		fail(c, estimationComponent, err, mapDocumentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromEstimation(e, h.now()))
}

// List godoc
// @Summary  List the estimations of a service order
// @Tags     estimations
// @Produce  json
// @Param    order_ref  query  string  true  "Service order reference"
// @Success  200  {array}  response.EstimationResponse
// @Router   /estimations [get]
func (h *EstimationHandler) List(c *gin.Context) {
	list, err := h.usecase.ListByOrderRef(c.Request.Context(), c.Query("order_ref"))
	if err != nil {
		fail(c, estimationComponent, err, mapDocumentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromEstimations(list, h.now()))
}

// Update godoc
// @Summary  Edit a draft estimation; totals are recomputed and the PDF is discarded
// @Tags     estimations
// @Accept   json
// @Produce  json
// @Param    uuid  path  string                          true  "Estimation uuid"
// @Param    body  body  request.UpdateEstimationRequest true  "Patch"
// @Success  200  {object}  response.EstimationResponse
// @Failure  409  {object}  pkg.HTTPError
// @Router   /estimations/{uuid} [patch]
func (h *EstimationHandler) Update(c *gin.Context) {
	var payload request.UpdateEstimationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidPayload)
		return
	}

	e, err := h.usecase.UpdateDraft(c.Request.Context(), actorFromRequest(c), c.Param("uuid"), payload.ToInput())
	if err != nil {
		fail(c, estimationComponent, err, mapDocumentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromEstimation(e, h.now()))
}

// Delete godoc
// @Summary  Delete a draft estimation
// @Tags     estimations
// @Param    uuid  path  string  true  "Estimation uuid"
// @Success  204
// @Failure  409  {object}  pkg.HTTPError
// @Router   /estimations/{uuid} [delete]
func (h *EstimationHandler) Delete(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), actorFromRequest(c), c.Param("uuid")); err != nil {
		fail(c, estimationComponent, err, mapDocumentError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// GeneratePDF godoc
// @Summary  Render the estimation PDF
// @Tags     estimations
// @Produce  json
// @Param    uuid  path  string  true  "Estimation uuid"
// @Success  200  {object}  response.EstimationResponse
// @Failure  502  {object}  pkg.HTTPError
// @Router   /estimations/{uuid}/pdf [post]
func (h *EstimationHandler) GeneratePDF(c *gin.Context) {
	e, err := h.usecase.GeneratePDF(c.Request.Context(), actorFromRequest(c), c.Param("uuid"))
	if err != nil {
		fail(c, estimationComponent, err, mapDocumentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromEstimation(e, h.now()))
}

// Send godoc
// @Summary  Deliver the estimation to the client
// @Tags     estimations
// @Produce  json
// @Param    uuid  path  string  true  "Estimation uuid"
// @Success  200  {object}  response.EstimationResponse
// @Failure  412  {object}  pkg.HTTPError
// @Failure  502  {object}  pkg.HTTPError
// @Router   /estimations/{uuid}/send [post]
func (h *EstimationHandler) Send(c *gin.Context) {
	e, err := h.usecase.Send(c.Request.Context(), actorFromRequest(c), c.Param("uuid"))
	if err != nil {
		fail(c, estimationComponent, err, mapDocumentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromEstimation(e, h.now()))
}

// RecordDecision godoc
// @Summary  Record the client decision on a sent estimation
// @Tags     estimations
// @Accept   json
// @Produce  json
// @Param    uuid  path  string                   true  "Estimation uuid"
// @Param    body  body  request.DecisionRequest  true  "approved or rejected"
// @Success  200  {object}  response.EstimationResponse
// @Failure  409  {object}  pkg.HTTPError
// @Router   /estimations/{uuid}/decision [post]
func (h *EstimationHandler) RecordDecision(c *gin.Context) {
	var payload request.DecisionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidPayload)
		return
	}
	decision, err := payload.ResolveDecision()
	if err != nil {
		respondError(c, errInvalidPayload)
		return
	}

	e, err := h.usecase.RecordDecision(c.Request.Context(), actorFromRequest(c), c.Param("uuid"), decision)
	if err != nil {
		fail(c, estimationComponent, err, mapDocumentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromEstimation(e, h.now()))
}

// Void godoc
// @Summary  Void a sent estimation (admin only)
// @Tags     estimations
// @Accept   json
// @Produce  json
// @Param    uuid  path  string               true  "Estimation uuid"
// @Param    body  body  request.VoidRequest  true  "Reason"
// @Success  200  {object}  response.EstimationResponse
// @Failure  403  {object}  pkg.HTTPError
// @Router   /estimations/{uuid}/void [post]
func (h *EstimationHandler) Void(c *gin.Context) {
	var payload request.VoidRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidPayload)
		return
	}

	e, err := h.usecase.Void(c.Request.Context(), actorFromRequest(c), c.Param("uuid"), payload.ResolveReason())
	if err != nil {
		fail(c, estimationComponent, err, mapDocumentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromEstimation(e, h.now()))
}

// CreateInvoice godoc
// @Summary  Create an invoice draft from an approved estimation
// @Tags     estimations
// @Accept   json
// @Produce  json
// @Param    uuid  path  string                                true   "Estimation uuid"
// @Param    body  body  request.InvoiceFromEstimationRequest  false  "Due date"
// @Success  201  {object}  response.InvoiceResponse
// @Failure  409  {object}  pkg.HTTPError
// @Failure  412  {object}  pkg.HTTPError
// @Router   /estimations/{uuid}/invoice [post]
func (h *EstimationHandler) CreateInvoice(c *gin.Context) {
	var payload request.InvoiceFromEstimationRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			respondError(c, errInvalidPayload)
			return
		}
	}

	inv, err := h.invoices.CreateFromEstimation(c.Request.Context(), actorFromRequest(c), c.Param("uuid"), payload.DueDate)
	if err != nil {
		fail(c, estimationComponent, err, mapDocumentError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromInvoice(inv, h.now()))
}
