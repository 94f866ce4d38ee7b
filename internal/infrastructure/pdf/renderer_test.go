package pdf

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"findoc_service/internal/domain/entities"
	"findoc_service/internal/infrastructure/httpjson"
	"findoc_service/internal/usecase/interfaces"

	"github.com/sebdah/goldie/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var issuedAt = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func invoiceRequest() interfaces.RenderRequest {
	due := time.Date(2026, 10, 30, 0, 0, 0, 0, time.UTC)
	paid, balance := d("85"), d("200")
	return interfaces.RenderRequest{
		Kind:   interfaces.KindInvoice,
		UUID:   "inv-1",
		Number: "INV-2026-00001",
		Items: []entities.LineItem{
			{Name: "Brake pads", Description: "Front axle", Quantity: d("2"), Rate: d("100"), Amount: d("200")},
			{Name: "Labour", Quantity: d("1.5"), Rate: d("40"), Amount: d("60")},
		},
		Totals: entities.Totals{
			Subtotal:       d("260"),
			TaxPercentage:  d("12.5"),
			TaxAmount:      d("32.5"),
			DiscountAmount: d("7.5"),
			TotalAmount:    d("285"),
		},
		AmountPaid:  &paid,
		BalanceDue:  &balance,
		Client:      entities.ClientSnapshot{Name: "Bruno", Email: "bruno@client.test"},
		SenderName:  "Ana",
		SenderEmail: "ana@shop.test",
		IssuedAt:    issuedAt,
		DueDate:     &due,
	}
}

func estimationRequest() interfaces.RenderRequest {
	valid := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	return interfaces.RenderRequest{
		Kind:  interfaces.KindEstimation,
		UUID:  "est-1",
		Title: "Brake service",
		Items: []entities.LineItem{
			{Name: "Brake pads", Quantity: d("2"), Rate: d("100"), Amount: d("200")},
		},
		Totals: entities.Totals{
			Subtotal:       d("200"),
			TaxPercentage:  decimal.Zero,
			TaxAmount:      decimal.Zero,
			DiscountAmount: decimal.Zero,
			TotalAmount:    d("200"),
		},
		Client:     entities.ClientSnapshot{Name: "Bruno"},
		IssuedAt:   issuedAt,
		ValidUntil: &valid,
	}
}

func TestBuildPayload_Golden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for name, req := range map[string]interfaces.RenderRequest{
		"invoice_payload":    invoiceRequest(),
		"estimation_payload": estimationRequest(),
	} {
		t.Run(name, func(t *testing.T) {
			out, err := json.MarshalIndent(buildPayload(req), "", "  ")
			require.NoError(t, err)
			g.Assert(t, name, out)
		})
	}
}

func TestHTTPRenderer_Render(t *testing.T) {
	var got renderPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/render", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pdf_url":"https://cdn.test/inv-1.pdf","pdf_public_id":"pdf-inv-1"}`))
	}))
	defer srv.Close()

	res, err := NewHTTPRenderer(srv.URL+"/", time.Second).Render(context.Background(), invoiceRequest())
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/inv-1.pdf", res.PDFURL)
	assert.Equal(t, "pdf-inv-1", res.PDFPublicID)
	assert.Equal(t, "285.00", got.TotalAmount)
	assert.Equal(t, "200.00", got.BalanceDue)
}

func TestHTTPRenderer_Failures(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "renderer down", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := NewHTTPRenderer(srv.URL, time.Second).Render(context.Background(), estimationRequest())
		var se *httpjson.StatusError
		require.True(t, errors.As(err, &se), "got %v", err)
		assert.Equal(t, http.StatusServiceUnavailable, se.StatusCode)
	})

	t.Run("empty result", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		_, err := NewHTTPRenderer(srv.URL, time.Second).Render(context.Background(), estimationRequest())
		assert.ErrorIs(t, err, ErrEmptyRenderResult)
	})
}

func TestMockRenderer(t *testing.T) {
	r := New("", true, time.Second)
	res, err := r.Render(context.Background(), estimationRequest())
	require.NoError(t, err)
	assert.Equal(t, "mock://pdf/estimation/est-1.pdf", res.PDFURL)
	assert.Equal(t, "estimation-est-1", res.PDFPublicID)
}
