package usecase

import (
	"context"
	"errors"
	"fmt"
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

const kindInvoice = "invoice"

var ErrEstimationAlreadyInvoiced = errors.New("estimation already has an active invoice")

// CreateInvoiceInput is the operator input for a new invoice draft.
type CreateInvoiceInput struct {
	OrderRef       string
	EstimationRef  string
	Items          []entities.LineItemInput
	TaxPercentage  decimal.Decimal
	DiscountAmount decimal.Decimal
	DueDate        *time.Time
	Client         entities.ClientSnapshot
}

// UpdateInvoiceInput is a draft patch. Nil fields are left unchanged.
type UpdateInvoiceInput struct {
	Items          []entities.LineItemInput
	TaxPercentage  *decimal.Decimal
	DiscountAmount *decimal.Decimal
	DueDate        *time.Time
	Client         *entities.ClientSnapshot
}

// IInvoiceUseCase is the lifecycle controller for invoices.
type IInvoiceUseCase interface {
	CreateDraft(ctx context.Context, actor entities.Actor, in CreateInvoiceInput) (entities.Invoice, error)
	CreateFromEstimation(ctx context.Context, actor entities.Actor, estimationUUID string, dueDate *time.Time) (entities.Invoice, error)
	UpdateDraft(ctx context.Context, actor entities.Actor, uuid string, patch UpdateInvoiceInput) (entities.Invoice, error)
	GeneratePDF(ctx context.Context, actor entities.Actor, uuid string) (entities.Invoice, error)
	Send(ctx context.Context, actor entities.Actor, uuid string) (entities.Invoice, error)
	MarkPending(ctx context.Context, actor entities.Actor, uuid string) (entities.Invoice, error)
	RecordPayment(ctx context.Context, actor entities.Actor, uuid string, amount decimal.Decimal) (entities.Invoice, error)
	Cancel(ctx context.Context, actor entities.Actor, uuid string) (entities.Invoice, error)
	Void(ctx context.Context, actor entities.Actor, uuid string, reason string) (entities.Invoice, error)
	Delete(ctx context.Context, actor entities.Actor, uuid string) error
	Get(ctx context.Context, uuid string) (entities.Invoice, error)
	ListByOrderRef(ctx context.Context, orderRef string) ([]entities.Invoice, error)
}

type InvoiceUseCase struct {
	repo        interfaces.IInvoiceRepository
	estimations interfaces.IEstimationRepository
	numbers     interfaces.IInvoiceNumberSequence
	renderer    interfaces.IPDFRenderer
	delivery    interfaces.IDeliveryService
	directory   interfaces.IOrderDirectory

	timeout time.Duration
	now     func() time.Time
	locks   *keyedLocks
	log     zerolog.Logger
}

var _ IInvoiceUseCase = (*InvoiceUseCase)(nil)

func NewInvoiceUseCase(
	repo interfaces.IInvoiceRepository,
	estimations interfaces.IEstimationRepository,
	numbers interfaces.IInvoiceNumberSequence,
	renderer interfaces.IPDFRenderer,
	delivery interfaces.IDeliveryService,
	directory interfaces.IOrderDirectory,
	opts Options,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		repo:        repo,
		estimations: estimations,
		numbers:     numbers,
		renderer:    renderer,
		delivery:    delivery,
		directory:   directory,
		timeout:     opts.timeout(),
		now:         opts.clock(),
		locks:       newKeyedLocks(),
		log:         logger.WithComponent("invoice-usecase"),
	}
}

func (u *InvoiceUseCase) CreateDraft(ctx context.Context, actor entities.Actor, in CreateInvoiceInput) (entities.Invoice, error) {
	if err := requireActor(actor); err != nil {
		return entities.Invoice{}, err
	}
	now := u.now()

	v := &entities.ValidationError{}
	orderRef := strings.TrimSpace(in.OrderRef)
	if orderRef == "" {
		v.Add("order_ref", "is required")
	}
	validateDueDate(v, in.DueDate, now)
	res, calcErr := totals.Calculate(totals.Input{
		Items:          in.Items,
		TaxPercentage:  in.TaxPercentage,
		DiscountAmount: in.DiscountAmount,
		ItemsField:     "line_items",
	})
	mergeCalcError(v, calcErr)
	if err := v.Err(); err != nil {
		return entities.Invoice{}, err
	}

	estimationRef := strings.TrimSpace(in.EstimationRef)
	if estimationRef == "" {
		return u.create(ctx, actor, orderRef, "", res, in.DueDate, in.Client, now)
	}

	unlock := u.locks.lock("estimation:" + estimationRef)
	defer unlock()
	est, err := u.approvedEstimation(ctx, estimationRef)
	if err != nil {
		return entities.Invoice{}, err
	}
	if est.OrderRef != orderRef {
		v.Add("estimation_ref", "belongs to a different order")
		return entities.Invoice{}, v
	}
	if err := reconcile(res.TotalAmount, est); err != nil {
		return entities.Invoice{}, err
	}
	client := in.Client.FillBlanks(est.Client)
	return u.create(ctx, actor, orderRef, est.UUID, res, in.DueDate, client, now)
}

func (u *InvoiceUseCase) CreateFromEstimation(ctx context.Context, actor entities.Actor, estimationUUID string, dueDate *time.Time) (entities.Invoice, error) {
	if err := requireActor(actor); err != nil {
		return entities.Invoice{}, err
	}
	estimationUUID, err := normalizeID(estimationUUID)
	if err != nil {
		return entities.Invoice{}, err
	}
	now := u.now()
	v := &entities.ValidationError{}
	validateDueDate(v, dueDate, now)
	if err := v.Err(); err != nil {
		return entities.Invoice{}, err
	}

	unlock := u.locks.lock("estimation:" + estimationUUID)
	defer unlock()
	est, err := u.approvedEstimation(ctx, estimationUUID)
	if err != nil {
		return entities.Invoice{}, err
	}

	res, err := totals.Calculate(totals.Input{
		Items:          entities.LineItemInputs(est.CostBreakdown),
		TaxPercentage:  est.TaxPercentage,
		DiscountAmount: est.DiscountAmount,
		ItemsField:     "line_items",
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	if err := reconcile(res.TotalAmount, est); err != nil {
		return entities.Invoice{}, err
	}
	return u.create(ctx, actor, est.OrderRef, est.UUID, res, dueDate, est.Client, now)
}

func (u *InvoiceUseCase) create(
	ctx context.Context,
	actor entities.Actor,
	orderRef, estimationRef string,
	res totals.Result,
	dueDate *time.Time,
	explicit entities.ClientSnapshot,
	now time.Time,
) (entities.Invoice, error) {
	client, err := snapshotClient(ctx, u.directory, orderRef, explicit)
	if err != nil {
		u.log.Error().Err(err).Str("order_ref", orderRef).Msg("order directory lookup failed")
		return entities.Invoice{}, err
	}
	number, err := u.nextNumber(ctx, now)
	if err != nil {
		return entities.Invoice{}, err
	}

	inv := entities.Invoice{
		ID:            uuid.NewString(),
		UUID:          uuid.NewString(),
		InvoiceNumber: number,
		OrderRef:      orderRef,
		EstimationRef: estimationRef,
		AmountPaid:    decimal.Zero,
		DueDate:       dueDate,
		Status:        entities.InvoiceStatusDraft,
		SenderName:    actor.Name,
		SenderEmail:   actor.Email,
		Client:        client,
		CreatedBy:     actor.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
		Version:       1,
	}
	inv.ApplyTotals(res.Items, res.Totals, totals.BalanceDue(res.TotalAmount, decimal.Zero))

	created, err := u.repo.Create(ctx, inv)
	if err != nil {
		u.log.Error().Err(err).Str("order_ref", orderRef).Msg("create draft failed")
		return entities.Invoice{}, err
	}
	u.log.Info().
		Str("uuid", created.UUID).
		Str("invoice_number", created.InvoiceNumber).
		Str("estimation_ref", estimationRef).
		Str("total", created.TotalAmount.StringFixed(2)).
		Msg("draft created")
	return created, nil
}

func (u *InvoiceUseCase) nextNumber(ctx context.Context, now time.Time) (string, error) {
	if u.numbers == nil {
		return "", errors.New("invoice number sequence not configured")
	}
	year := now.Year()
	n, err := u.numbers.Next(ctx, fmt.Sprintf("invoice-%d", year))
	if err != nil {
		u.log.Error().Err(err).Int("year", year).Msg("invoice number allocation failed")
		return "", fmt.Errorf("allocate invoice number: %w", err)
	}
	return FormatInvoiceNumber(year, n), nil
}

// FormatInvoiceNumber renders the human-facing invoice number.
func FormatInvoiceNumber(year int, seq int64) string {
	return fmt.Sprintf("INV-%d-%05d", year, seq)
}

// approvedEstimation loads an estimation that may originate a new invoice.
// Callers hold the estimation lock.
func (u *InvoiceUseCase) approvedEstimation(ctx context.Context, estimationUUID string) (entities.Estimation, error) {
	if u.estimations == nil {
		return entities.Estimation{}, errors.New("estimation repository not configured")
	}
	est, err := u.estimations.GetByUUID(ctx, estimationUUID)
	if err != nil {
		return entities.Estimation{}, err
	}
	if est.ID == "" {
		return entities.Estimation{}, &entities.NotFoundError{Kind: kindEstimation, ID: estimationUUID}
	}
	if !est.IsApproved() {
		return entities.Estimation{}, &entities.PreconditionError{Op: "create invoice", Reason: "estimation is not approved"}
	}

	existing, err := u.repo.ListByEstimationRef(ctx, est.UUID)
	if err != nil {
		return entities.Estimation{}, err
	}
	for _, inv := range existing {
		if inv.Status != entities.InvoiceStatusCancelled && !inv.IsVoided() {
			u.log.Warn().Str("estimation_ref", est.UUID).Str("invoice", inv.UUID).Msg("estimation already invoiced")
			return entities.Estimation{}, ErrEstimationAlreadyInvoiced
		}
	}
	return est, nil
}

func reconcile(total decimal.Decimal, est entities.Estimation) error {
	if total.Equal(est.Total()) {
		return nil
	}
	v := &entities.ValidationError{}
	v.Add("line_items", fmt.Sprintf("invoice total %s does not match estimation total %s", total.StringFixed(2), est.Total().StringFixed(2)))
	return v
}

func (u *InvoiceUseCase) UpdateDraft(ctx context.Context, actor entities.Actor, id string, patch UpdateInvoiceInput) (entities.Invoice, error) {
	if err := requireActor(actor); err != nil {
		return entities.Invoice{}, err
	}
	return u.mutate(ctx, id, "update", func(inv *entities.Invoice, now time.Time) error {
		if err := inv.CheckDraft("update"); err != nil {
			return err
		}
		if !actor.CanEditDraftOf(inv.CreatedBy) {
			return &entities.ForbiddenError{Op: "update draft", ActorID: actor.ID}
		}

		in := totals.Input{
			Items:          entities.LineItemInputs(inv.LineItems),
			TaxPercentage:  inv.TaxPercentage,
			DiscountAmount: inv.DiscountAmount,
			ItemsField:     "line_items",
		}
		if patch.Items != nil {
			in.Items = patch.Items
		}
		if patch.TaxPercentage != nil {
			in.TaxPercentage = *patch.TaxPercentage
		}
		if patch.DiscountAmount != nil {
			in.DiscountAmount = *patch.DiscountAmount
		}

		v := &entities.ValidationError{}
		if patch.DueDate != nil {
			validateDueDate(v, patch.DueDate, now)
		}
		res, calcErr := totals.Calculate(in)
		mergeCalcError(v, calcErr)
		if err := v.Err(); err != nil {
			return err
		}
		if inv.EstimationRef != "" && u.estimations != nil {
			est, err := u.estimations.GetByUUID(ctx, inv.EstimationRef)
			if err != nil {
				return err
			}
			if est.ID != "" {
				if err := reconcile(res.TotalAmount, est); err != nil {
					return err
				}
			}
		}

		if patch.DueDate != nil {
			inv.DueDate = patch.DueDate
		}
		if patch.Client != nil {
			inv.Client = *patch.Client
		}
		inv.ApplyTotals(res.Items, res.Totals, totals.BalanceDue(res.TotalAmount, inv.AmountPaid))
		inv.ClearPDF()
		inv.UpdatedAt = now
		return nil
	})
}

func (u *InvoiceUseCase) GeneratePDF(ctx context.Context, actor entities.Actor, id string) (entities.Invoice, error) {
	if err := requireActor(actor); err != nil {
		return entities.Invoice{}, err
	}
	return u.mutate(ctx, id, "generate pdf", func(inv *entities.Invoice, now time.Time) error {
		if err := inv.CheckDraft("generate pdf"); err != nil {
			return err
		}
		if u.renderer == nil {
			return ErrPDFRendererNotConfigured
		}
		var out interfaces.RenderResult
		err := callWithTimeout(ctx, u.timeout, func(cctx context.Context) error {
			var rerr error
			out, rerr = u.renderer.Render(cctx, invoiceRenderRequest(*inv, now))
			return rerr
		})
		if err != nil {
			u.log.Warn().Err(err).Str("uuid", inv.UUID).Msg("pdf render failed")
			return &entities.RenderError{Err: err}
		}
		return inv.AttachPDF(out.PDFURL, out.PDFPublicID, now)
	})
}

func (u *InvoiceUseCase) Send(ctx context.Context, actor entities.Actor, id string) (entities.Invoice, error) {
	if err := requireActor(actor); err != nil {
		return entities.Invoice{}, err
	}
	return u.mutate(ctx, id, "send", func(inv *entities.Invoice, now time.Time) error {
		if err := inv.CheckSend(); err != nil {
			return err
		}
		if u.delivery == nil {
			return ErrDeliveryNotConfigured
		}
		req := interfaces.DeliveryRequest{
			Kind:           interfaces.KindInvoice,
			UUID:           inv.UUID,
			Number:         inv.InvoiceNumber,
			PDFURL:         inv.PDFURL,
			Recipient:      inv.Recipient(),
			IdempotencyKey: fmt.Sprintf("%s:%d", inv.UUID, inv.Version),
		}
		err := callWithTimeout(ctx, u.timeout, func(cctx context.Context) error {
			return u.delivery.Deliver(cctx, req)
		})
		if err != nil {
			u.log.Warn().Err(err).Str("uuid", inv.UUID).Msg("delivery failed")
			return &entities.DeliveryError{Err: err}
		}
		return inv.MarkSent(now)
	})
}

func (u *InvoiceUseCase) MarkPending(ctx context.Context, actor entities.Actor, id string) (entities.Invoice, error) {
	if err := requireActor(actor); err != nil {
		return entities.Invoice{}, err
	}
	return u.mutate(ctx, id, "mark pending", func(inv *entities.Invoice, now time.Time) error {
		return inv.MarkPending(now)
	})
}

// RecordPayment adds amount to the paid total. A zero amount is only accepted to settle an
// invoice whose balance is already zero.
func (u *InvoiceUseCase) RecordPayment(ctx context.Context, actor entities.Actor, id string, amount decimal.Decimal) (entities.Invoice, error) {
	if err := requireActor(actor); err != nil {
		return entities.Invoice{}, err
	}
	return u.mutate(ctx, id, "record payment", func(inv *entities.Invoice, now time.Time) error {
		if err := inv.CheckPayment(); err != nil {
			return err
		}
		amount = totals.Round2(amount)
		v := &entities.ValidationError{}
		switch {
		case amount.IsNegative():
			v.Add("amount", "must be zero or positive")
		case amount.IsZero() && inv.BalanceDue.IsPositive():
			v.Add("amount", "must be greater than 0")
		case amount.GreaterThan(inv.BalanceDue):
			v.Add("amount", fmt.Sprintf("exceeds balance due %s", inv.BalanceDue.StringFixed(2)))
		}
		if err := v.Err(); err != nil {
			return err
		}
		paid := totals.Round2(inv.AmountPaid.Add(amount))
		return inv.ApplyPayment(paid, totals.BalanceDue(inv.TotalAmount, paid), now)
	})
}

func (u *InvoiceUseCase) Cancel(ctx context.Context, actor entities.Actor, id string) (entities.Invoice, error) {
	if err := requireActor(actor); err != nil {
		return entities.Invoice{}, err
	}
	return u.mutate(ctx, id, "cancel", func(inv *entities.Invoice, now time.Time) error {
		return inv.Cancel(now)
	})
}

func (u *InvoiceUseCase) Void(ctx context.Context, actor entities.Actor, id string, reason string) (entities.Invoice, error) {
	if err := requireActor(actor); err != nil {
		return entities.Invoice{}, err
	}
	if !actor.CanVoid() {
		return entities.Invoice{}, &entities.ForbiddenError{Op: "void", ActorID: actor.ID}
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		v := &entities.ValidationError{}
		v.Add("reason", "is required")
		return entities.Invoice{}, v
	}
	return u.mutate(ctx, id, "void", func(inv *entities.Invoice, now time.Time) error {
		return inv.Void(actor.ID, reason, now)
	})
}

func (u *InvoiceUseCase) Delete(ctx context.Context, actor entities.Actor, id string) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	id, err := normalizeID(id)
	if err != nil {
		return err
	}
	unlock := u.locks.lock(id)
	defer unlock()

	inv, err := u.load(ctx, id)
	if err != nil {
		return err
	}
	if err := inv.CheckDraft("delete"); err != nil {
		return err
	}
	if !actor.CanEditDraftOf(inv.CreatedBy) {
		return &entities.ForbiddenError{Op: "delete draft", ActorID: actor.ID}
	}
	if err := u.repo.Delete(ctx, inv.ID, inv.Version); err != nil {
		return mapWriteError(err, kindInvoice, inv.UUID)
	}
	u.log.Info().Str("uuid", inv.UUID).Str("invoice_number", inv.InvoiceNumber).Str("actor", actor.ID).Msg("draft deleted")
	return nil
}

func (u *InvoiceUseCase) Get(ctx context.Context, id string) (entities.Invoice, error) {
	id, err := normalizeID(id)
	if err != nil {
		return entities.Invoice{}, err
	}
	return u.load(ctx, id)
}

func (u *InvoiceUseCase) ListByOrderRef(ctx context.Context, orderRef string) ([]entities.Invoice, error) {
	orderRef = strings.TrimSpace(orderRef)
	if orderRef == "" {
		v := &entities.ValidationError{}
		v.Add("order_ref", "is required")
		return nil, v
	}
	return u.repo.ListByOrderRef(ctx, orderRef)
}

func (u *InvoiceUseCase) load(ctx context.Context, id string) (entities.Invoice, error) {
	inv, err := u.repo.GetByUUID(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.ID == "" {
		return entities.Invoice{}, &entities.NotFoundError{Kind: kindInvoice, ID: id}
	}
	return inv, nil
}

func (u *InvoiceUseCase) mutate(ctx context.Context, id, op string, fn func(inv *entities.Invoice, now time.Time) error) (entities.Invoice, error) {
	id, err := normalizeID(id)
	if err != nil {
		return entities.Invoice{}, err
	}
	unlock := u.locks.lock(id)
	defer unlock()

	current, err := u.load(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	next := current
	if err := fn(&next, u.now()); err != nil {
		return entities.Invoice{}, err
	}
	next.Version = current.Version + 1

	saved, err := u.repo.Update(ctx, next, current.Version)
	if err != nil {
		u.log.Error().Err(err).Str("uuid", current.UUID).Str("op", op).Msg("persist failed")
		return entities.Invoice{}, mapWriteError(err, kindInvoice, current.UUID)
	}
	u.log.Info().
		Str("uuid", saved.UUID).
		Str("op", op).
		Str("status", string(saved.Status)).
		Str("balance_due", saved.BalanceDue.StringFixed(2)).
		Msg("invoice updated")
	return saved, nil
}

func validateDueDate(v *entities.ValidationError, dueDate *time.Time, now time.Time) {
	if dueDate != nil && dueDate.Before(now.Truncate(24*time.Hour)) {
		v.Add("due_date", "must not be in the past")
	}
}

func invoiceRenderRequest(inv entities.Invoice, now time.Time) interfaces.RenderRequest {
	paid, balance := inv.AmountPaid, inv.BalanceDue
	return interfaces.RenderRequest{
		Kind:        interfaces.KindInvoice,
		UUID:        inv.UUID,
		Number:      inv.InvoiceNumber,
		Items:       inv.LineItems,
		Totals:      inv.Totals,
		AmountPaid:  &paid,
		BalanceDue:  &balance,
		Client:      inv.Client,
		SenderName:  inv.SenderName,
		SenderEmail: inv.SenderEmail,
		IssuedAt:    now,
		DueDate:     inv.DueDate,
	}
}
