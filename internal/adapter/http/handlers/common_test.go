package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"findoc_service/internal/domain/entities"
	"findoc_service/internal/usecase"

	"github.com/gin-gonic/gin"
)

func TestMapDocumentError(t *testing.T) {
	cases := []struct {
		err       error
		code      int
		retryable bool
	}{
		{&entities.ValidationError{Fields: []entities.FieldError{{Field: "rate", Message: "must not be negative"}}}, http.StatusBadRequest, false},
		{usecase.ErrInvalidDocumentID, http.StatusBadRequest, false},
		{usecase.ErrActorRequired, http.StatusUnauthorized, false},
		{fmt.Errorf("load: %w", &entities.NotFoundError{Kind: "estimation", ID: "x"}), http.StatusNotFound, false},
		{&entities.ForbiddenError{Op: "void", ActorID: "u-1"}, http.StatusForbidden, false},
		{&entities.IllegalStateError{Op: "update", Status: "sent"}, http.StatusConflict, false},
		{&entities.InvalidTransitionError{From: "paid", To: "cancelled"}, http.StatusConflict, false},
		{&entities.ConflictError{Kind: "invoice", ID: "x"}, http.StatusConflict, false},
		{usecase.ErrEstimationAlreadyInvoiced, http.StatusConflict, false},
		{&entities.PreconditionError{Op: "send", Reason: "no pdf"}, http.StatusPreconditionFailed, false},
		{&entities.RenderError{Err: errors.New("boom")}, http.StatusBadGateway, true},
		{&entities.DeliveryError{Err: errors.New("boom")}, http.StatusBadGateway, true},
		{fmt.Errorf("send: %w", &entities.DeliveryError{Err: errors.New("boom")}), http.StatusBadGateway, true},
		{usecase.ErrPDFRendererNotConfigured, http.StatusServiceUnavailable, false},
		{errors.New("other"), http.StatusInternalServerError, false},
	}

	for _, tc := range cases {
		got := mapDocumentError(tc.err)
		if got.HTTPStatus != tc.code || got.Retryable != tc.retryable {
			t.Fatalf("for err %v expected %d/%v got %d/%v", tc.err, tc.code, tc.retryable, got.HTTPStatus, got.Retryable)
		}
	}
}

func TestActorFromRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	c.Request.Header.Set(HeaderActorID, " u-9 ")
	c.Request.Header.Set(HeaderActorEmail, "head@shop.test")
	c.Request.Header.Set(HeaderActorRole, "Service_Head")

	actor := actorFromRequest(c)
	if actor.ID != "u-9" || actor.Email != "head@shop.test" || actor.Role != entities.RoleServiceHead {
		t.Fatalf("unexpected actor: %+v", actor)
	}

	c.Request.Header.Set(HeaderActorRole, "root")
	if actorFromRequest(c).Role != entities.RoleOperator {
		t.Fatalf("unknown roles fall back to operator")
	}
}
