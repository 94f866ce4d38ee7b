package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"findoc_service/internal/domain/entities"
	"findoc_service/internal/infrastructure/logger"
	"findoc_service/internal/usecase"
	"findoc_service/pkg"

	"github.com/gin-gonic/gin"
)

const (
	HeaderActorID    = "X-Actor-ID"
	HeaderActorName  = "X-Actor-Name"
	HeaderActorEmail = "X-Actor-Email"
	HeaderActorRole  = "X-Actor-Role"
)

var (
	errInvalidPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
)

// Clock lets tests pin the time used to derive expired/overdue views.
type Clock func() time.Time

func defaultClock() time.Time { return time.Now().UTC() }

// actorFromRequest reads the acting user from the headers set by the gateway in front of the service.
func actorFromRequest(c *gin.Context) entities.Actor {
	return entities.Actor{
		ID:    strings.TrimSpace(c.GetHeader(HeaderActorID)),
		Name:  strings.TrimSpace(c.GetHeader(HeaderActorName)),
		Email: strings.TrimSpace(c.GetHeader(HeaderActorEmail)),
		Role:  entities.ParseRole(c.GetHeader(HeaderActorRole)),
	}
}

func respondError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// mapDocumentError translates the lifecycle error taxonomy into HTTP answers. Collaborator
// failures that report themselves as retryable are flagged as such.
func mapDocumentError(err error) *pkg.AppError {
	return documentAppError(err).WithRetryable(entities.IsRetryable(err))
}

func documentAppError(err error) *pkg.AppError {
	var (
		validation *entities.ValidationError
		illegal    *entities.IllegalStateError
		transition *entities.InvalidTransitionError
		conflict   *entities.ConflictError
		precond    *entities.PreconditionError
		forbidden  *entities.ForbiddenError
		notFound   *entities.NotFoundError
		render     *entities.RenderError
		delivery   *entities.DeliveryError
	)

	switch {
	case errors.As(err, &validation):
		return pkg.NewDomainErrorSimple("VALIDATION_FAILED", "Invalid document input", http.StatusBadRequest).
			WithDetails(validation.Fields)
	case errors.Is(err, usecase.ErrInvalidDocumentID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrActorRequired):
		return pkg.NewDomainErrorSimple("ACTOR_REQUIRED", "X-Actor-ID header is required", http.StatusUnauthorized)
	case errors.As(err, &notFound):
		return pkg.NewDomainErrorSimple("NOT_FOUND", notFound.Error(), http.StatusNotFound)
	case errors.As(err, &forbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", forbidden.Error(), http.StatusForbidden)
	case errors.As(err, &illegal):
		return pkg.NewDomainErrorSimple("ILLEGAL_STATE", illegal.Error(), http.StatusConflict)
	case errors.As(err, &transition):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", transition.Error(), http.StatusConflict).
			WithDetails(map[string]string{"from": transition.From, "to": transition.To})
	case errors.As(err, &conflict):
		return pkg.NewDomainErrorSimple("CONFLICT", conflict.Error(), http.StatusConflict)
	case errors.Is(err, usecase.ErrEstimationAlreadyInvoiced):
		return pkg.NewDomainErrorSimple("ESTIMATION_ALREADY_INVOICED", "Estimation already has an active invoice", http.StatusConflict)
	case errors.As(err, &precond):
		return pkg.NewDomainErrorSimple("PRECONDITION_FAILED", precond.Error(), http.StatusPreconditionFailed)
	case errors.As(err, &render):
		return pkg.NewDomainError("RENDER_FAILED", "PDF rendering failed, try again", err, http.StatusBadGateway)
	case errors.As(err, &delivery):
		return pkg.NewDomainError("DELIVERY_FAILED", "Delivery to the client failed, try again", err, http.StatusBadGateway)
	case errors.Is(err, usecase.ErrPDFRendererNotConfigured), errors.Is(err, usecase.ErrDeliveryNotConfigured):
		return pkg.NewDomainError("COLLABORATOR_NOT_CONFIGURED", "Service not configured", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

// fail logs the failure with its route and answers with the mapped error.
func fail(c *gin.Context, component string, err error, appErr *pkg.AppError) {
	log := logger.WithComponent(component)
	ev := log.Warn()
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		ev = log.Error()
	}
	ev.Err(err).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Str("uuid", c.Param("uuid")).
		Int("status", appErr.HTTPStatus).
		Msg("request failed")
	respondError(c, appErr)
}
