package pdf

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"findoc_service/internal/infrastructure/httpjson"
	"findoc_service/internal/infrastructure/logger"
	"findoc_service/internal/usecase/interfaces"

	"github.com/rs/zerolog"
)

var ErrEmptyRenderResult = errors.New("renderer returned no pdf url")

type renderItem struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Quantity    string `json:"quantity"`
	Rate        string `json:"rate"`
	Amount      string `json:"amount"`
}

type renderParty struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// renderPayload is the wire body of POST /render. Money travels as fixed two-place strings.
type renderPayload struct {
	Kind           string       `json:"kind"`
	UUID           string       `json:"uuid"`
	Number         string       `json:"number,omitempty"`
	Title          string       `json:"title,omitempty"`
	Items          []renderItem `json:"items"`
	Subtotal       string       `json:"subtotal"`
	TaxPercentage  string       `json:"tax_percentage"`
	TaxAmount      string       `json:"tax_amount"`
	DiscountAmount string       `json:"discount_amount"`
	TotalAmount    string       `json:"total_amount"`
	AmountPaid     string       `json:"amount_paid,omitempty"`
	BalanceDue     string       `json:"balance_due,omitempty"`
	Client         renderParty  `json:"client"`
	Sender         *renderParty `json:"sender,omitempty"`
	IssuedAt       string       `json:"issued_at"`
	DueDate        string       `json:"due_date,omitempty"`
	ValidUntil     string       `json:"valid_until,omitempty"`
}

func buildPayload(req interfaces.RenderRequest) renderPayload {
	items := make([]renderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, renderItem{
			Name:        it.Name,
			Description: it.Description,
			Quantity:    it.Quantity.String(),
			Rate:        it.Rate.StringFixed(2),
			Amount:      it.Amount.StringFixed(2),
		})
	}
	p := renderPayload{
		Kind:           string(req.Kind),
		UUID:           req.UUID,
		Number:         req.Number,
		Title:          req.Title,
		Items:          items,
		Subtotal:       req.Totals.Subtotal.StringFixed(2),
		TaxPercentage:  req.Totals.TaxPercentage.String(),
		TaxAmount:      req.Totals.TaxAmount.StringFixed(2),
		DiscountAmount: req.Totals.DiscountAmount.StringFixed(2),
		TotalAmount:    req.Totals.TotalAmount.StringFixed(2),
		Client: renderParty{
			Name:    req.Client.Name,
			Email:   req.Client.Email,
			Phone:   req.Client.Phone,
			Address: req.Client.Address,
		},
		IssuedAt: req.IssuedAt.UTC().Format(time.RFC3339),
	}
	if req.AmountPaid != nil {
		p.AmountPaid = req.AmountPaid.StringFixed(2)
	}
	if req.BalanceDue != nil {
		p.BalanceDue = req.BalanceDue.StringFixed(2)
	}
	if req.SenderName != "" || req.SenderEmail != "" {
		p.Sender = &renderParty{Name: req.SenderName, Email: req.SenderEmail}
	}
	if req.DueDate != nil {
		p.DueDate = req.DueDate.UTC().Format(time.DateOnly)
	}
	if req.ValidUntil != nil {
		p.ValidUntil = req.ValidUntil.UTC().Format(time.DateOnly)
	}
	return p
}

// HTTPRenderer posts documents to the external rendering service.
type HTTPRenderer struct {
	client *httpjson.Client
	log    zerolog.Logger
}

var _ interfaces.IPDFRenderer = (*HTTPRenderer)(nil)

func NewHTTPRenderer(baseURL string, timeout time.Duration) *HTTPRenderer {
	return &HTTPRenderer{
		client: httpjson.New(baseURL, timeout),
		log:    logger.WithComponent("pdf-renderer"),
	}
}

func (r *HTTPRenderer) Render(ctx context.Context, req interfaces.RenderRequest) (interfaces.RenderResult, error) {
	var out interfaces.RenderResult
	if err := r.client.Do(ctx, http.MethodPost, "/render", nil, buildPayload(req), &out); err != nil {
		r.log.Error().Err(err).Str("uuid", req.UUID).Str("kind", string(req.Kind)).Msg("render failed")
		return interfaces.RenderResult{}, err
	}
	if out.PDFURL == "" {
		return interfaces.RenderResult{}, ErrEmptyRenderResult
	}
	r.log.Info().Str("uuid", req.UUID).Str("pdf_public_id", out.PDFPublicID).Msg("render success")
	return out, nil
}

// MockRenderer returns a deterministic location without rendering anything.
type MockRenderer struct {
	log zerolog.Logger
}

var _ interfaces.IPDFRenderer = (*MockRenderer)(nil)

func NewMockRenderer() *MockRenderer {
	return &MockRenderer{log: logger.WithComponent("pdf-renderer")}
}

func (r *MockRenderer) Render(_ context.Context, req interfaces.RenderRequest) (interfaces.RenderResult, error) {
	publicID := fmt.Sprintf("%s-%s", req.Kind, req.UUID)
	r.log.Info().Str("uuid", req.UUID).Msg("mock render")
	return interfaces.RenderResult{
		PDFURL:      fmt.Sprintf("mock://pdf/%s/%s.pdf", req.Kind, req.UUID),
		PDFPublicID: publicID,
	}, nil
}

// New picks the mock or the HTTP renderer.
func New(baseURL string, mock bool, timeout time.Duration) interfaces.IPDFRenderer {
	if mock {
		return NewMockRenderer()
	}
	return NewHTTPRenderer(baseURL, timeout)
}
