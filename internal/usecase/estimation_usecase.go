package usecase

import (
	"context"
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

const kindEstimation = "estimation"

// CreateEstimationInput is the operator input for a new estimation draft.
type CreateEstimationInput struct {
	OrderRef              string
	Title                 string
	Description           string
	Items                 []entities.LineItemInput
	TaxPercentage         decimal.Decimal
	DiscountAmount        decimal.Decimal
	EstimatedTimelineDays int
	ValidUntil            *time.Time
	Client                entities.ClientSnapshot
}

// UpdateEstimationInput is a draft patch. Nil fields are left unchanged.
type UpdateEstimationInput struct {
	Title                 *string
	Description           *string
	Items                 []entities.LineItemInput
	TaxPercentage         *decimal.Decimal
	DiscountAmount        *decimal.Decimal
	EstimatedTimelineDays *int
	ValidUntil            *time.Time
	Client                *entities.ClientSnapshot
}

// IEstimationUseCase is the lifecycle controller for estimations.
type IEstimationUseCase interface {
	CreateDraft(ctx context.Context, actor entities.Actor, in CreateEstimationInput) (entities.Estimation, error)
	UpdateDraft(ctx context.Context, actor entities.Actor, uuid string, patch UpdateEstimationInput) (entities.Estimation, error)
	GeneratePDF(ctx context.Context, actor entities.Actor, uuid string) (entities.Estimation, error)
	Send(ctx context.Context, actor entities.Actor, uuid string) (entities.Estimation, error)
	RecordDecision(ctx context.Context, actor entities.Actor, uuid string, decision entities.EstimationDecision) (entities.Estimation, error)
	Void(ctx context.Context, actor entities.Actor, uuid string, reason string) (entities.Estimation, error)
	Delete(ctx context.Context, actor entities.Actor, uuid string) error
	Get(ctx context.Context, uuid string) (entities.Estimation, error)
	ListByOrderRef(ctx context.Context, orderRef string) ([]entities.Estimation, error)
}

type EstimationUseCase struct {
	repo      interfaces.IEstimationRepository
	renderer  interfaces.IPDFRenderer
	delivery  interfaces.IDeliveryService
	directory interfaces.IOrderDirectory

	timeout time.Duration
	now     func() time.Time
	locks   *keyedLocks
	log     zerolog.Logger
}

var _ IEstimationUseCase = (*EstimationUseCase)(nil)

func NewEstimationUseCase(
	repo interfaces.IEstimationRepository,
	renderer interfaces.IPDFRenderer,
	delivery interfaces.IDeliveryService,
	directory interfaces.IOrderDirectory,
	opts Options,
) *EstimationUseCase {
	return &EstimationUseCase{
		repo:      repo,
		renderer:  renderer,
		delivery:  delivery,
		directory: directory,
		timeout:   opts.timeout(),
		now:       opts.clock(),
		locks:     newKeyedLocks(),
		log:       logger.WithComponent("estimation-usecase"),
	}
}

func (u *EstimationUseCase) CreateDraft(ctx context.Context, actor entities.Actor, in CreateEstimationInput) (entities.Estimation, error) {
	if err := requireActor(actor); err != nil {
		return entities.Estimation{}, err
	}
	now := u.now()

	v := &entities.ValidationError{}
	orderRef := strings.TrimSpace(in.OrderRef)
	if orderRef == "" {
		v.Add("order_ref", "is required")
	}
	validateEstimationHeader(v, in.Title, in.EstimatedTimelineDays, in.ValidUntil, now)
	res, calcErr := totals.Calculate(totals.Input{
		Items:          in.Items,
		TaxPercentage:  in.TaxPercentage,
		DiscountAmount: in.DiscountAmount,
		ItemsField:     "cost_breakdown",
	})
	mergeCalcError(v, calcErr)
	if err := v.Err(); err != nil {
		return entities.Estimation{}, err
	}

	client, err := snapshotClient(ctx, u.directory, orderRef, in.Client)
	if err != nil {
		u.log.Error().Err(err).Str("order_ref", orderRef).Msg("order directory lookup failed")
		return entities.Estimation{}, err
	}

	e := entities.Estimation{
		ID:                    uuid.NewString(),
		UUID:                  uuid.NewString(),
		OrderRef:              orderRef,
		Title:                 strings.TrimSpace(in.Title),
		Description:           strings.TrimSpace(in.Description),
		EstimatedTimelineDays: in.EstimatedTimelineDays,
		ValidUntil:            in.ValidUntil,
		Status:                entities.EstimationStatusDraft,
		Client:                client,
		CreatedBy:             actor.ID,
		CreatedAt:             now,
		UpdatedAt:             now,
		Version:               1,
	}
	e.ApplyTotals(res.Items, res.Totals)

	created, err := u.repo.Create(ctx, e)
	if err != nil {
		u.log.Error().Err(err).Str("order_ref", orderRef).Msg("create draft failed")
		return entities.Estimation{}, err
	}
	u.log.Info().Str("uuid", created.UUID).Str("order_ref", orderRef).Str("total", created.TotalAmount.StringFixed(2)).Msg("draft created")
	return created, nil
}

func (u *EstimationUseCase) UpdateDraft(ctx context.Context, actor entities.Actor, id string, patch UpdateEstimationInput) (entities.Estimation, error) {
	if err := requireActor(actor); err != nil {
		return entities.Estimation{}, err
	}
	return u.mutate(ctx, id, "update", func(e *entities.Estimation, now time.Time) error {
		if err := e.CheckDraft("update"); err != nil {
			return err
		}
		if !actor.CanEditDraftOf(e.CreatedBy) {
			return &entities.ForbiddenError{Op: "update draft", ActorID: actor.ID}
		}

		title, timeline, validUntil := e.Title, e.EstimatedTimelineDays, e.ValidUntil
		if patch.Title != nil {
			title = *patch.Title
		}
		if patch.EstimatedTimelineDays != nil {
			timeline = *patch.EstimatedTimelineDays
		}
		if patch.ValidUntil != nil {
			validUntil = patch.ValidUntil
		}
		in := totals.Input{
			Items:          entities.LineItemInputs(e.CostBreakdown),
			TaxPercentage:  e.TaxPercentage,
			DiscountAmount: e.DiscountAmount,
			ItemsField:     "cost_breakdown",
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
		validateEstimationHeader(v, title, timeline, validUntil, now)
		res, calcErr := totals.Calculate(in)
		mergeCalcError(v, calcErr)
		if err := v.Err(); err != nil {
			return err
		}

		e.Title = strings.TrimSpace(title)
		e.EstimatedTimelineDays = timeline
		e.ValidUntil = validUntil
		if patch.Description != nil {
			e.Description = strings.TrimSpace(*patch.Description)
		}
		if patch.Client != nil {
			e.Client = *patch.Client
		}
		e.ApplyTotals(res.Items, res.Totals)
		e.ClearPDF()
		e.UpdatedAt = now
		return nil
	})
}

func (u *EstimationUseCase) GeneratePDF(ctx context.Context, actor entities.Actor, id string) (entities.Estimation, error) {
	if err := requireActor(actor); err != nil {
		return entities.Estimation{}, err
	}
	return u.mutate(ctx, id, "generate pdf", func(e *entities.Estimation, now time.Time) error {
		if err := e.CheckDraft("generate pdf"); err != nil {
			return err
		}
		if u.renderer == nil {
			return ErrPDFRendererNotConfigured
		}
		var out interfaces.RenderResult
		err := callWithTimeout(ctx, u.timeout, func(cctx context.Context) error {
			var rerr error
			out, rerr = u.renderer.Render(cctx, estimationRenderRequest(*e, now))
			return rerr
		})
		if err != nil {
			u.log.Warn().Err(err).Str("uuid", e.UUID).Msg("pdf render failed")
			return &entities.RenderError{Err: err}
		}
		return e.AttachPDF(out.PDFURL, out.PDFPublicID, now)
	})
}

func (u *EstimationUseCase) Send(ctx context.Context, actor entities.Actor, id string) (entities.Estimation, error) {
	if err := requireActor(actor); err != nil {
		return entities.Estimation{}, err
	}
	return u.mutate(ctx, id, "send", func(e *entities.Estimation, now time.Time) error {
		if err := e.CheckSend(); err != nil {
			return err
		}
		if u.delivery == nil {
			return ErrDeliveryNotConfigured
		}
		req := interfaces.DeliveryRequest{
			Kind:           interfaces.KindEstimation,
			UUID:           e.UUID,
			PDFURL:         e.PDFURL,
			Recipient:      e.Recipient(),
			IdempotencyKey: fmt.Sprintf("%s:%d", e.UUID, e.Version),
		}
		err := callWithTimeout(ctx, u.timeout, func(cctx context.Context) error {
			return u.delivery.Deliver(cctx, req)
		})
		if err != nil {
			u.log.Warn().Err(err).Str("uuid", e.UUID).Msg("delivery failed")
			return &entities.DeliveryError{Err: err}
		}
		return e.MarkSent(now)
	})
}

func (u *EstimationUseCase) RecordDecision(ctx context.Context, actor entities.Actor, id string, decision entities.EstimationDecision) (entities.Estimation, error) {
	if err := requireActor(actor); err != nil {
		return entities.Estimation{}, err
	}
	return u.mutate(ctx, id, "record decision", func(e *entities.Estimation, now time.Time) error {
		return e.Decide(decision, now)
	})
}

func (u *EstimationUseCase) Void(ctx context.Context, actor entities.Actor, id string, reason string) (entities.Estimation, error) {
	if err := requireActor(actor); err != nil {
		return entities.Estimation{}, err
	}
	if !actor.CanVoid() {
		return entities.Estimation{}, &entities.ForbiddenError{Op: "void", ActorID: actor.ID}
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		v := &entities.ValidationError{}
		v.Add("reason", "is required")
		return entities.Estimation{}, v
	}
	return u.mutate(ctx, id, "void", func(e *entities.Estimation, now time.Time) error {
		return e.Void(actor.ID, reason, now)
	})
}

func (u *EstimationUseCase) Delete(ctx context.Context, actor entities.Actor, id string) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	id, err := normalizeID(id)
	if err != nil {
		return err
	}
	unlock := u.locks.lock(id)
	defer unlock()

	e, err := u.load(ctx, id)
	if err != nil {
		return err
	}
	if err := e.CheckDraft("delete"); err != nil {
		return err
	}
	if !actor.CanEditDraftOf(e.CreatedBy) {
		return &entities.ForbiddenError{Op: "delete draft", ActorID: actor.ID}
	}
	if err := u.repo.Delete(ctx, e.ID, e.Version); err != nil {
		return mapWriteError(err, kindEstimation, e.UUID)
	}
	u.log.Info().Str("uuid", e.UUID).Str("actor", actor.ID).Msg("draft deleted")
	return nil
}

func (u *EstimationUseCase) Get(ctx context.Context, id string) (entities.Estimation, error) {
	id, err := normalizeID(id)
	if err != nil {
		return entities.Estimation{}, err
	}
	return u.load(ctx, id)
}

func (u *EstimationUseCase) ListByOrderRef(ctx context.Context, orderRef string) ([]entities.Estimation, error) {
	orderRef = strings.TrimSpace(orderRef)
	if orderRef == "" {
		v := &entities.ValidationError{}
		v.Add("order_ref", "is required")
		return nil, v
	}
	return u.repo.ListByOrderRef(ctx, orderRef)
}

func (u *EstimationUseCase) load(ctx context.Context, id string) (entities.Estimation, error) {
	e, err := u.repo.GetByUUID(ctx, id)
	if err != nil {
		return entities.Estimation{}, err
	}
	if e.ID == "" {
		return entities.Estimation{}, &entities.NotFoundError{Kind: kindEstimation, ID: id}
	}
	return e, nil
}

// mutate runs one atomic read-modify-write: load, apply fn, compare-and-set on version.
// Nothing is written when fn fails.
func (u *EstimationUseCase) mutate(ctx context.Context, id, op string, fn func(e *entities.Estimation, now time.Time) error) (entities.Estimation, error) {
	id, err := normalizeID(id)
	if err != nil {
		return entities.Estimation{}, err
	}
	unlock := u.locks.lock(id)
	defer unlock()

	current, err := u.load(ctx, id)
	if err != nil {
		return entities.Estimation{}, err
	}
	next := current
	if err := fn(&next, u.now()); err != nil {
		return entities.Estimation{}, err
	}
	next.Version = current.Version + 1

	saved, err := u.repo.Update(ctx, next, current.Version)
	if err != nil {
		u.log.Error().Err(err).Str("uuid", current.UUID).Str("op", op).Msg("persist failed")
		return entities.Estimation{}, mapWriteError(err, kindEstimation, current.UUID)
	}
	u.log.Info().Str("uuid", saved.UUID).Str("op", op).Str("status", string(saved.Status)).Msg("estimation updated")
	return saved, nil
}

func validateEstimationHeader(v *entities.ValidationError, title string, timelineDays int, validUntil *time.Time, now time.Time) {
	if strings.TrimSpace(title) == "" {
		v.Add("title", "is required")
	}
	if timelineDays <= 0 {
		v.Add("estimated_timeline_days", "must be greater than 0")
	}
	if validUntil != nil && !validUntil.After(now) {
		v.Add("valid_until", "must be in the future")
	}
}

func estimationRenderRequest(e entities.Estimation, now time.Time) interfaces.RenderRequest {
	return interfaces.RenderRequest{
		Kind:       interfaces.KindEstimation,
		UUID:       e.UUID,
		Title:      e.Title,
		Items:      e.CostBreakdown,
		Totals:     e.Totals,
		Client:     e.Client,
		IssuedAt:   now,
		ValidUntil: e.ValidUntil,
	}
}
