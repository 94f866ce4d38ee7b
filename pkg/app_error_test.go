package pkg

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

func TestAppError(t *testing.T) {
	cause := errors.New("dynamodb timeout")
	appErr := NewDomainError("INTERNAL_ERROR", "An internal error occurred", cause, http.StatusInternalServerError)

	if !errors.Is(appErr, cause) {
		t.Fatalf("expected wrapped cause")
	}

	b, err := json.Marshal(appErr.ToHTTPError())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != `{"code":"INTERNAL_ERROR","message":"An internal error occurred"}` {
		t.Fatalf("cause must not leak into the body: %s", b)
	}
}

func TestAppError_DetailsAndRetryable(t *testing.T) {
	appErr := NewDomainErrorSimple("RENDER_FAILED", "PDF rendering failed", http.StatusBadGateway).
		WithRetryable(true).
		WithDetails(map[string]string{"uuid": "est-1"})

	b, _ := json.Marshal(appErr.ToHTTPError())
	want := `{"code":"RENDER_FAILED","message":"PDF rendering failed","details":{"uuid":"est-1"},"retryable":true}`
	if string(b) != want {
		t.Fatalf("expected %s, got %s", want, b)
	}
	if appErr.Error() != "RENDER_FAILED: PDF rendering failed" {
		t.Fatalf("unexpected message: %s", appErr.Error())
	}
}
