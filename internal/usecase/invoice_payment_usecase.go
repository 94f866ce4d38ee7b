package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"findoc_service/internal/domain/entities"
	"findoc_service/internal/domain/totals"
	"findoc_service/internal/infrastructure/logger"
	"findoc_service/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidMPPayload               = errors.New("invalid mercado pago payload")
	ErrPaymentGatewayNotConfigured    = errors.New("payment gateway not configured")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// PaymentOptions configures the gateway flow. The values come from config, never from the
// environment directly.
type PaymentOptions struct {
	// MockMode approves every charge without calling the provider.
	MockMode bool
	// SandboxToken is true when the provider access token is a TEST- token.
	SandboxToken    bool
	TestPayerEmail  string
	TestPayerUserID string
	Now             func() time.Time
}

// ChargeResult pairs the recorded payment with the invoice state after it.
type ChargeResult struct {
	Payment entities.Payment
	Invoice entities.Invoice
}

// IInvoicePaymentUseCase is the payment intake in front of the invoice controller.
//
//   - Charge creates a provider payment and, once the provider approves it, records it on the invoice.
//   - RecordManual records an offline payment (cash, transfer) and keeps a payment record of it.
type IInvoicePaymentUseCase interface {
	Charge(ctx context.Context, actor entities.Actor, invoiceUUID string, amount *decimal.Decimal, mpPayload json.RawMessage) (ChargeResult, error)
	RecordManual(ctx context.Context, actor entities.Actor, invoiceUUID string, amount decimal.Decimal) (ChargeResult, error)
	ListPayments(ctx context.Context, invoiceUUID string) ([]entities.Payment, error)
	GetPayment(ctx context.Context, invoiceUUID, paymentID string) (entities.Payment, error)
}

type InvoicePaymentUseCase struct {
	repo     interfaces.IPaymentRepository
	invoices IInvoiceUseCase
	gateway  interfaces.IPaymentGateway
	opts     PaymentOptions
	now      func() time.Time
	// locks is held per invoice from the balance check until the payment is applied,
	// so a second charge sees the balance left by the first.
	locks *keyedLocks
	log   zerolog.Logger
}

var _ IInvoicePaymentUseCase = (*InvoicePaymentUseCase)(nil)

func NewInvoicePaymentUseCase(repo interfaces.IPaymentRepository, invoices IInvoiceUseCase, gateway interfaces.IPaymentGateway, opts PaymentOptions) *InvoicePaymentUseCase {
	now := opts.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &InvoicePaymentUseCase{
		repo:     repo,
		invoices: invoices,
		gateway:  gateway,
		opts:     opts,
		now:      now,
		locks:    newKeyedLocks(),
		log:      logger.WithComponent("payment-usecase"),
	}
}

func (u *InvoicePaymentUseCase) Charge(ctx context.Context, actor entities.Actor, invoiceUUID string, amount *decimal.Decimal, mpPayload json.RawMessage) (ChargeResult, error) {
	if err := requireActor(actor); err != nil {
		return ChargeResult{}, err
	}
	invoiceUUID, err := normalizeID(invoiceUUID)
	if err != nil {
		return ChargeResult{}, err
	}
	log := u.log.With().Str("invoice", invoiceUUID).Logger()
	log.Info().Int("payload_len", len(mpPayload)).Bool("mock", u.opts.MockMode).Msg("charge start")

	if len(mpPayload) == 0 || !json.Valid(mpPayload) {
		if !u.opts.MockMode {
			log.Warn().Msg("invalid payload")
			return ChargeResult{}, ErrInvalidMPPayload
		}
		mpPayload = json.RawMessage("{}")
	}
	if u.gateway == nil && !u.opts.MockMode {
		return ChargeResult{}, ErrPaymentGatewayNotConfigured
	}

	unlock := u.locks.lock(invoiceUUID)
	defer unlock()
	inv, err := u.invoices.Get(ctx, invoiceUUID)
	if err != nil {
		return ChargeResult{}, err
	}
	if err := inv.CheckPayment(); err != nil {
		return ChargeResult{}, err
	}
	charge := inv.BalanceDue
	if amount != nil {
		charge = totals.Round2(*amount)
	}
	if !charge.IsPositive() || charge.GreaterThan(inv.BalanceDue) {
		v := &entities.ValidationError{}
		v.Add("amount", fmt.Sprintf("must be greater than 0 and at most %s", inv.BalanceDue.StringFixed(2)))
		return ChargeResult{}, v
	}

	var reqMap map[string]any
	if err := json.Unmarshal(mpPayload, &reqMap); err != nil || reqMap == nil {
		if !u.opts.MockMode {
			return ChargeResult{}, ErrInvalidMPPayload
		}
		reqMap = map[string]any{}
	}
	if !u.opts.MockMode {
		if !hasNonEmptyString(reqMap, "payment_method_id") {
			log.Warn().Msg("missing payment_method_id")
			return ChargeResult{}, ErrInvalidMPPayload
		}
		u.normalizeSandboxPayer(reqMap)
		u.ensurePayerDefaults(reqMap)
		if !hasPayer(reqMap) {
			log.Warn().Msg("missing or invalid payer")
			return ChargeResult{}, ErrInvalidMPPayload
		}
	}
	if _, ok := reqMap["external_reference"]; !ok {
		reqMap["external_reference"] = inv.UUID
	}
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("Invoice %s", inv.InvoiceNumber)
	}
	// The invoice balance is the source of truth for the amount.
	reqMap["transaction_amount"] = charge.InexactFloat64()
	payload, err := json.Marshal(reqMap)
	if err != nil {
		return ChargeResult{}, err
	}

	providerID, providerStatus, providerResp, err := u.createPayment(ctx, inv, charge, payload)
	if err != nil {
		log.Error().Err(err).Msg("payment gateway failed")
		return ChargeResult{}, mapGatewayError(err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.Warn().Err(err).Msg("provider response unmarshal failed")
	}
	if providerID == "" {
		providerID = uuid.NewString()
	}
	p := entities.Payment{
		ID:                 providerID,
		InvoiceID:          inv.UUID,
		Amount:             charge,
		Date:               u.now(),
		Status:             paymentStatusFromProvider(providerStatus),
		Source:             entities.PaymentSourceGateway,
		ProviderPaymentID:  providerID,
		ProviderPayloadRaw: providerResp,
		ProviderPayload:    parsed,
	}
	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Error().Err(err).Str("payment_id", p.ID).Msg("payment repository create failed")
		return ChargeResult{}, err
	}
	log.Info().Str("payment_id", created.ID).Str("provider_status", providerStatus).Msg("payment stored")

	if created.Status != entities.PaymentStatusApproved {
		return ChargeResult{Payment: created, Invoice: inv}, nil
	}
	updated, err := u.invoices.RecordPayment(ctx, actor, inv.UUID, charge)
	if err != nil {
		log.Error().Err(err).Str("payment_id", created.ID).Msg("approved payment could not be applied to invoice")
		return ChargeResult{}, err
	}
	return ChargeResult{Payment: created, Invoice: updated}, nil
}

func (u *InvoicePaymentUseCase) createPayment(ctx context.Context, inv entities.Invoice, amount decimal.Decimal, payload json.RawMessage) (string, string, json.RawMessage, error) {
	if !u.opts.MockMode {
		return u.gateway.CreatePayment(ctx, payload)
	}
	u.log.Info().Str("invoice", inv.UUID).Msg("mock mode enabled; skipping external payment gateway")
	id := strconv.FormatInt(u.now().UnixNano(), 10)
	stamp := u.now().Format(time.RFC3339Nano)
	resp := map[string]any{}
	_ = json.Unmarshal(payload, &resp)
	resp["id"] = id
	resp["status"] = "approved"
	resp["status_detail"] = "accredited"
	resp["date_created"] = stamp
	resp["date_approved"] = stamp
	resp["transaction_amount"] = amount.InexactFloat64()
	b, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}
	return id, "approved", b, nil
}

func (u *InvoicePaymentUseCase) RecordManual(ctx context.Context, actor entities.Actor, invoiceUUID string, amount decimal.Decimal) (ChargeResult, error) {
	if err := requireActor(actor); err != nil {
		return ChargeResult{}, err
	}
	invoiceUUID, err := normalizeID(invoiceUUID)
	if err != nil {
		return ChargeResult{}, err
	}
	unlock := u.locks.lock(invoiceUUID)
	defer unlock()
	inv, err := u.invoices.RecordPayment(ctx, actor, invoiceUUID, amount)
	if err != nil {
		return ChargeResult{}, err
	}
	p := entities.Payment{
		ID:        uuid.NewString(),
		InvoiceID: inv.UUID,
		Amount:    totals.Round2(amount),
		Date:      u.now(),
		Status:    entities.PaymentStatusApproved,
		Source:    entities.PaymentSourceManual,
	}
	created, err := u.repo.Create(ctx, p)
	if err != nil {
		// The invoice already moved; the missing record is only an audit gap.
		u.log.Error().Err(err).Str("invoice", inv.UUID).Str("amount", p.Amount.StringFixed(2)).Msg("manual payment record not stored")
		return ChargeResult{}, err
	}
	u.log.Info().Str("invoice", inv.UUID).Str("payment_id", created.ID).Str("status", string(inv.Status)).Msg("manual payment recorded")
	return ChargeResult{Payment: created, Invoice: inv}, nil
}

func (u *InvoicePaymentUseCase) ListPayments(ctx context.Context, invoiceUUID string) ([]entities.Payment, error) {
	inv, err := u.invoices.Get(ctx, invoiceUUID)
	if err != nil {
		return nil, err
	}
	return u.repo.ListByInvoiceID(ctx, inv.UUID)
}

// GetPayment returns one payment of the invoice. A payment that belongs to another invoice
// is reported as not found.
func (u *InvoicePaymentUseCase) GetPayment(ctx context.Context, invoiceUUID, paymentID string) (entities.Payment, error) {
	invoiceUUID, err := normalizeID(invoiceUUID)
	if err != nil {
		return entities.Payment{}, err
	}
	paymentID, err = normalizeID(paymentID)
	if err != nil {
		return entities.Payment{}, err
	}
	p, err := u.repo.GetByID(ctx, paymentID)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" || p.InvoiceID != invoiceUUID {
		return entities.Payment{}, &entities.NotFoundError{Kind: "payment", ID: paymentID}
	}
	return p, nil
}

func paymentStatusFromProvider(s string) entities.PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "approved", "authorized":
		return entities.PaymentStatusApproved
	case "rejected", "cancelled", "refunded", "charged_back":
		return entities.PaymentStatusDenied
	}
	return entities.PaymentStatusPending
}

func mapGatewayError(err error) error {
	switch {
	case isGatewayCustomerNotFound(err):
		return ErrPaymentGatewayCustomerNotFound
	case isGatewayInvalidUsers(err):
		return ErrPaymentGatewayInvalidUsers
	case isGatewayUnauthorized(err):
		return ErrPaymentGatewayUnauthorized
	case isGatewayBadRequest(err):
		return ErrPaymentGatewayBadRequest
	}
	return err
}

func hasNonEmptyString(m map[string]any, key string) bool {
	s, ok := m[key].(string)
	return ok && strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}

func (u *InvoicePaymentUseCase) ensurePayerDefaults(m map[string]any) {
	v, ok := m["payer"]
	if !ok || v == nil {
		v = map[string]any{}
		m["payer"] = v
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}
	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}

	// In sandbox either payer.id or payer.email works; fill email only when both are missing.
	if hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}
	if u.opts.TestPayerEmail != "" {
		payer["email"] = u.opts.TestPayerEmail
	} else if u.opts.SandboxToken {
		payer["email"] = "test_user_br@testuser.com"
	}
}

func (u *InvoicePaymentUseCase) normalizeSandboxPayer(m map[string]any) {
	payer, ok := m["payer"].(map[string]any)
	if !ok || !u.opts.SandboxToken {
		return
	}
	if !hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}
	if u.opts.TestPayerUserID == "" || u.opts.TestPayerEmail == "" {
		return
	}
	if strings.TrimSpace(fmt.Sprintf("%v", payer["id"])) != u.opts.TestPayerUserID {
		return
	}
	payer["email"] = u.opts.TestPayerEmail
	delete(payer, "id")
	u.log.Debug().Msg("mapped sandbox payer user_id to payer.email")
}

func gatewayErrorContains(err error, needles ...string) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, n := range needles {
		if strings.Contains(msg, n) {
			return true
		}
	}
	return false
}

func isGatewayBadRequest(err error) bool {
	return gatewayErrorContains(err, `"error":"bad_request"`, `"status":400`)
}

func isGatewayUnauthorized(err error) bool {
	return gatewayErrorContains(err, `"error":"unauthorized"`, `"status":401`)
}

func isGatewayInvalidUsers(err error) bool {
	return gatewayErrorContains(err, "invalid users involved", `"code":2034`)
}

func isGatewayCustomerNotFound(err error) bool {
	return gatewayErrorContains(err, "customer not found", `"code":2002`)
}
