package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"findoc_service/internal/adapter/http/handlers/mocks"
	"findoc_service/internal/domain/entities"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newTestRouter(t *testing.T) (*gin.Engine, *mocks.MockIEstimationUseCase, *mocks.MockIInvoiceUseCase, *mocks.MockIInvoicePaymentUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	est := mocks.NewMockIEstimationUseCase(ctrl)
	inv := mocks.NewMockIInvoiceUseCase(ctrl)
	pay := mocks.NewMockIInvoicePaymentUseCase(ctrl)
	return NewRouter(Dependencies{Estimations: est, Invoices: inv, Payments: pay}), est, inv, pay
}

func TestPing(t *testing.T) {
	r, _, _, _ := newTestRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRoutesAreWired(t *testing.T) {
	r, est, inv, pay := newTestRouter(t)
	est.EXPECT().Get(gomock.Any(), "est-1").Return(entities.Estimation{UUID: "est-1", Status: entities.EstimationStatusDraft}, nil)
	inv.EXPECT().Cancel(gomock.Any(), gomock.Any(), "inv-1").Return(entities.Invoice{UUID: "inv-1", Status: entities.InvoiceStatusCancelled}, nil)
	pay.EXPECT().ListPayments(gomock.Any(), "inv-1").Return(nil, nil)
	pay.EXPECT().GetPayment(gomock.Any(), "inv-1", "pay-1").Return(entities.Payment{ID: "pay-1", InvoiceID: "inv-1"}, nil)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/v1/estimations/est-1"},
		{http.MethodPost, "/v1/invoices/inv-1/cancel"},
		{http.MethodGet, "/v1/invoices/inv-1/payments"},
		{http.MethodGet, "/v1/invoices/inv-1/payments/pay-1"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(tc.method, tc.path, nil)
		req.Header.Set("X-Actor-ID", "u-1")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("%s %s: expected 200, got %d", tc.method, tc.path, w.Code)
		}
	}
}

func TestUnknownRoute(t *testing.T) {
	r, _, _, _ := newTestRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/estimates", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestRecovererAnswers500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	setMiddlewares(r)
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}
