package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"findoc_service/internal/domain/entities"
	"findoc_service/internal/usecase/interfaces"
	mock_interfaces "findoc_service/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func approvedEstimation() entities.Estimation {
	e := draftEstimation()
	e.Status = entities.EstimationStatusApproved
	approved := fixedNow.Add(-time.Hour)
	e.ApprovedAt = &approved
	e.Version = 3
	return e
}

func sentInvoice() entities.Invoice {
	return entities.Invoice{
		ID:            "inv-id-1",
		UUID:          "inv-1",
		InvoiceNumber: "INV-2026-00001",
		OrderRef:      "os-1",
		LineItems:     []entities.LineItem{{Name: "Pads", Quantity: dec("1"), Rate: dec("250"), Amount: dec("250")}},
		Totals:        entities.Totals{Subtotal: dec("250"), TaxPercentage: dec("18"), TaxAmount: dec("45"), DiscountAmount: dec("10"), TotalAmount: dec("285")},
		AmountPaid:    dec("0"),
		BalanceDue:    dec("285"),
		Status:        entities.InvoiceStatusSent,
		PDFURL:        "https://pdf/inv-1.pdf",
		Client:        entities.ClientSnapshot{Name: "Bruno", Email: "bruno@client.test"},
		CreatedBy:     operator.ID,
		CreatedAt:     fixedNow,
		UpdatedAt:     fixedNow,
		Version:       2,
	}
}

func newInvoiceUC(invoices interfaces.IInvoiceRepository, estimations interfaces.IEstimationRepository) *InvoiceUseCase {
	return NewInvoiceUseCase(invoices, estimations, &memSequence{}, nil, nil, nil, testOptions())
}

func TestFormatInvoiceNumber(t *testing.T) {
	if got := FormatInvoiceNumber(2026, 42); got != "INV-2026-00042" {
		t.Fatalf("unexpected invoice number %q", got)
	}
}

func TestInvoiceUseCase_CreateDraft(t *testing.T) {
	t.Run("allocates sequential numbers and sender snapshot", func(t *testing.T) {
		repo := newMemInvoices()
		uc := newInvoiceUC(repo, nil)

		in := CreateInvoiceInput{OrderRef: "os-1", Items: referenceItems(), TaxPercentage: dec("18"), DiscountAmount: dec("10")}
		first, err := uc.CreateDraft(context.Background(), operator, in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := uc.CreateDraft(context.Background(), operator, in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first.InvoiceNumber != "INV-2026-00001" || second.InvoiceNumber != "INV-2026-00002" {
			t.Fatalf("unexpected numbers %q %q", first.InvoiceNumber, second.InvoiceNumber)
		}
		if first.SenderName != operator.Name || first.SenderEmail != operator.Email {
			t.Fatalf("expected sender snapshot from actor, got %q %q", first.SenderName, first.SenderEmail)
		}
		if first.BalanceDue.StringFixed(2) != "285.00" || !first.AmountPaid.IsZero() || first.Status != entities.InvoiceStatusDraft {
			t.Fatalf("unexpected amounts: %+v", first)
		}
	})

	t.Run("validation lists line item fields", func(t *testing.T) {
		uc := newInvoiceUC(nil, nil)
		past := fixedNow.Add(-72 * time.Hour)
		_, err := uc.CreateDraft(context.Background(), operator, CreateInvoiceInput{
			OrderRef: "os-1",
			Items:    []entities.LineItemInput{{Name: "", Rate: dec("-1")}},
			DueDate:  &past,
		})
		var v *entities.ValidationError
		if !errors.As(err, &v) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		for _, f := range []string{"line_items[0].name", "line_items[0].rate", "due_date"} {
			if !v.HasField(f) {
				t.Fatalf("missing field %s in %v", f, v.Fields)
			}
		}
	})

	t.Run("estimation ref must be approved", func(t *testing.T) {
		est := approvedEstimation()
		est.Status = entities.EstimationStatusSent
		uc := newInvoiceUC(newMemInvoices(), newMemEstimations(est))

		_, err := uc.CreateDraft(context.Background(), operator, CreateInvoiceInput{
			OrderRef: "os-1", EstimationRef: "est-1", Items: referenceItems(), TaxPercentage: dec("18"), DiscountAmount: dec("10"),
		})
		var pe *entities.PreconditionError
		if !errors.As(err, &pe) {
			t.Fatalf("expected PreconditionError, got %v", err)
		}
	})

	t.Run("estimation ref total must reconcile", func(t *testing.T) {
		uc := newInvoiceUC(newMemInvoices(), newMemEstimations(approvedEstimation()))

		_, err := uc.CreateDraft(context.Background(), operator, CreateInvoiceInput{
			OrderRef: "os-1", EstimationRef: "est-1", Items: referenceItems(),
		})
		var v *entities.ValidationError
		if !errors.As(err, &v) || !v.HasField("line_items") {
			t.Fatalf("expected reconciliation ValidationError, got %v", err)
		}
	})

	t.Run("estimation ref with matching total", func(t *testing.T) {
		uc := newInvoiceUC(newMemInvoices(), newMemEstimations(approvedEstimation()))

		inv, err := uc.CreateDraft(context.Background(), operator, CreateInvoiceInput{
			OrderRef: "os-1", EstimationRef: "est-1", Items: referenceItems(), TaxPercentage: dec("18"), DiscountAmount: dec("10"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if inv.EstimationRef != "est-1" || inv.Client.Email != "bruno@client.test" {
			t.Fatalf("unexpected invoice: %+v", inv)
		}
	})
}

func TestInvoiceUseCase_CreateFromEstimation(t *testing.T) {
	t.Run("copies items and client", func(t *testing.T) {
		invoices := newMemInvoices()
		uc := newInvoiceUC(invoices, newMemEstimations(approvedEstimation()))

		due := fixedNow.Add(30 * 24 * time.Hour)
		inv, err := uc.CreateFromEstimation(context.Background(), operator, "est-1", &due)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if inv.TotalAmount.StringFixed(2) != "285.00" || len(inv.LineItems) != 1 || inv.OrderRef != "os-1" {
			t.Fatalf("unexpected invoice: %+v", inv)
		}
		if inv.Client.Name != "Bruno" || inv.DueDate == nil {
			t.Fatalf("expected client and due date copied, got %+v", inv)
		}

		_, err = uc.CreateFromEstimation(context.Background(), operator, "est-1", nil)
		if !errors.Is(err, ErrEstimationAlreadyInvoiced) {
			t.Fatalf("expected ErrEstimationAlreadyInvoiced, got %v", err)
		}
	})

	t.Run("cancelled invoice frees the estimation", func(t *testing.T) {
		cancelled := sentInvoice()
		cancelled.EstimationRef = "est-1"
		cancelled.Status = entities.InvoiceStatusCancelled
		uc := newInvoiceUC(newMemInvoices(cancelled), newMemEstimations(approvedEstimation()))

		if _, err := uc.CreateFromEstimation(context.Background(), operator, "est-1", nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unknown estimation", func(t *testing.T) {
		uc := newInvoiceUC(newMemInvoices(), newMemEstimations())
		_, err := uc.CreateFromEstimation(context.Background(), operator, "nope", nil)
		var nf *entities.NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
	})

	t.Run("sequence failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		seq := mock_interfaces.NewMockIInvoiceNumberSequence(ctrl)
		uc := NewInvoiceUseCase(newMemInvoices(), newMemEstimations(approvedEstimation()), seq, nil, nil, nil, testOptions())

		seq.EXPECT().Next(gomock.Any(), "invoice-2026").Return(int64(0), errors.New("throttled"))

		_, err := uc.CreateFromEstimation(context.Background(), operator, "est-1", nil)
		if err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestInvoiceUseCase_RecordPayment(t *testing.T) {
	t.Run("partial then paid", func(t *testing.T) {
		repo := newMemInvoices(sentInvoice())
		uc := newInvoiceUC(repo, nil)

		inv, err := uc.RecordPayment(context.Background(), operator, "inv-1", dec("100"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if inv.Status != entities.InvoiceStatusPartial || inv.BalanceDue.StringFixed(2) != "185.00" || inv.PaidAt != nil {
			t.Fatalf("unexpected invoice after partial: %+v", inv)
		}

		inv, err = uc.RecordPayment(context.Background(), operator, "inv-1", dec("185"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if inv.Status != entities.InvoiceStatusPaid || !inv.BalanceDue.IsZero() || inv.PaidAt == nil {
			t.Fatalf("unexpected invoice after settle: %+v", inv)
		}
		if !inv.AmountPaid.Equal(inv.TotalAmount) {
			t.Fatalf("amount paid %s != total %s", inv.AmountPaid, inv.TotalAmount)
		}

		_, err = uc.RecordPayment(context.Background(), operator, "inv-1", dec("1"))
		var ise *entities.IllegalStateError
		if !errors.As(err, &ise) || ise.Status != "paid" {
			t.Fatalf("expected IllegalStateError on paid invoice, got %v", err)
		}
	})

	t.Run("overpayment and zero amount rejected", func(t *testing.T) {
		uc := newInvoiceUC(newMemInvoices(sentInvoice()), nil)

		var v *entities.ValidationError
		if _, err := uc.RecordPayment(context.Background(), operator, "inv-1", dec("285.01")); !errors.As(err, &v) {
			t.Fatalf("expected ValidationError for overpayment, got %v", err)
		}
		if _, err := uc.RecordPayment(context.Background(), operator, "inv-1", dec("0")); !errors.As(err, &v) {
			t.Fatalf("expected ValidationError for zero amount, got %v", err)
		}
	})

	t.Run("zero total invoice settles with zero amount", func(t *testing.T) {
		inv := sentInvoice()
		inv.Totals.TotalAmount = dec("0")
		inv.Totals.DiscountAmount = dec("295")
		inv.BalanceDue = dec("0")
		uc := newInvoiceUC(newMemInvoices(inv), nil)

		res, err := uc.RecordPayment(context.Background(), operator, "inv-1", dec("0"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.InvoiceStatusPaid {
			t.Fatalf("expected paid, got %s", res.Status)
		}
	})

	t.Run("draft does not accept payments", func(t *testing.T) {
		inv := sentInvoice()
		inv.Status = entities.InvoiceStatusDraft
		uc := newInvoiceUC(newMemInvoices(inv), nil)

		_, err := uc.RecordPayment(context.Background(), operator, "inv-1", dec("10"))
		var ise *entities.IllegalStateError
		if !errors.As(err, &ise) {
			t.Fatalf("expected IllegalStateError, got %v", err)
		}
	})
}

func TestInvoiceUseCase_MutationsRequireActorID(t *testing.T) {
	anonymousAdmin := entities.Actor{Role: entities.RoleAdmin}
	discount := dec("0")

	calls := map[string]func(uc *InvoiceUseCase) error{
		"update": func(uc *InvoiceUseCase) error {
			_, err := uc.UpdateDraft(context.Background(), anonymousAdmin, "inv-1", UpdateInvoiceInput{DiscountAmount: &discount})
			return err
		},
		"delete": func(uc *InvoiceUseCase) error {
			return uc.Delete(context.Background(), anonymousAdmin, "inv-1")
		},
		"mark pending": func(uc *InvoiceUseCase) error {
			_, err := uc.MarkPending(context.Background(), anonymousAdmin, "inv-1")
			return err
		},
		"record payment": func(uc *InvoiceUseCase) error {
			_, err := uc.RecordPayment(context.Background(), anonymousAdmin, "inv-1", dec("10"))
			return err
		},
		"void": func(uc *InvoiceUseCase) error {
			_, err := uc.Void(context.Background(), anonymousAdmin, "inv-1", "issued twice")
			return err
		},
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			repo := newMemInvoices(sentInvoice())
			uc := newInvoiceUC(repo, nil)

			if err := call(uc); !errors.Is(err, ErrActorRequired) {
				t.Fatalf("expected ErrActorRequired, got %v", err)
			}
			stored, _ := repo.GetByUUID(context.Background(), "inv-1")
			if stored.Version != 2 || stored.Status != entities.InvoiceStatusSent {
				t.Fatalf("invoice changed without an actor: %+v", stored)
			}
		})
	}
}

func TestInvoiceUseCase_Lifecycle(t *testing.T) {
	t.Run("generate pdf then send", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		renderer := mock_interfaces.NewMockIPDFRenderer(ctrl)
		delivery := mock_interfaces.NewMockIDeliveryService(ctrl)
		draft := sentInvoice()
		draft.Status = entities.InvoiceStatusDraft
		draft.PDFURL = ""
		repo := newMemInvoices(draft)
		uc := NewInvoiceUseCase(repo, nil, &memSequence{}, renderer, delivery, nil, testOptions())

		renderer.EXPECT().Render(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req interfaces.RenderRequest) (interfaces.RenderResult, error) {
				if req.Number != "INV-2026-00001" || req.BalanceDue == nil || req.BalanceDue.StringFixed(2) != "285.00" {
					t.Fatalf("unexpected render request: %+v", req)
				}
				return interfaces.RenderResult{PDFURL: "https://pdf/new.pdf", PDFPublicID: "pub"}, nil
			},
		).Times(2)
		delivery.EXPECT().Deliver(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req interfaces.DeliveryRequest) error {
				if req.Kind != interfaces.KindInvoice || req.Number != "INV-2026-00001" || req.IdempotencyKey != "inv-1:4" {
					t.Fatalf("unexpected delivery request: %+v", req)
				}
				return nil
			},
		)

		if _, err := uc.GeneratePDF(context.Background(), operator, "inv-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// Regenerating overwrites instead of duplicating.
		res, err := uc.GeneratePDF(context.Background(), operator, "inv-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.PDFURL != "https://pdf/new.pdf" || res.Version != 4 {
			t.Fatalf("unexpected pdf state: %+v", res)
		}
		res, err = uc.Send(context.Background(), operator, "inv-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.InvoiceStatusSent || res.SentAt == nil {
			t.Fatalf("unexpected sent state: %+v", res)
		}
	})

	t.Run("pending then cancel", func(t *testing.T) {
		uc := newInvoiceUC(newMemInvoices(sentInvoice()), nil)

		res, err := uc.MarkPending(context.Background(), operator, "inv-1")
		if err != nil || res.Status != entities.InvoiceStatusPending {
			t.Fatalf("unexpected pending result: %+v %v", res, err)
		}
		res, err = uc.Cancel(context.Background(), operator, "inv-1")
		if err != nil || res.Status != entities.InvoiceStatusCancelled || res.CancelledAt == nil {
			t.Fatalf("unexpected cancel result: %+v %v", res, err)
		}
		var te *entities.InvalidTransitionError
		if _, err := uc.MarkPending(context.Background(), operator, "inv-1"); !errors.As(err, &te) {
			t.Fatalf("expected InvalidTransitionError, got %v", err)
		}
	})

	t.Run("update draft reconciles against estimation", func(t *testing.T) {
		draft := sentInvoice()
		draft.Status = entities.InvoiceStatusDraft
		draft.EstimationRef = "est-1"
		uc := newInvoiceUC(newMemInvoices(draft), newMemEstimations(approvedEstimation()))

		_, err := uc.UpdateDraft(context.Background(), operator, "inv-1", UpdateInvoiceInput{DiscountAmount: decPtr("0")})
		var v *entities.ValidationError
		if !errors.As(err, &v) {
			t.Fatalf("expected ValidationError, got %v", err)
		}

		due := fixedNow.Add(48 * time.Hour)
		res, err := uc.UpdateDraft(context.Background(), operator, "inv-1", UpdateInvoiceInput{DueDate: &due})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.DueDate == nil || !res.DueDate.Equal(due) || res.PDFURL != "" {
			t.Fatalf("unexpected draft after update: %+v", res)
		}
	})

	t.Run("void blocks further payments", func(t *testing.T) {
		uc := newInvoiceUC(newMemInvoices(sentInvoice()), nil)

		if _, err := uc.Void(context.Background(), admin, "inv-1", "issued twice"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var ie *entities.IllegalStateError
		if _, err := uc.RecordPayment(context.Background(), operator, "inv-1", dec("10")); !errors.As(err, &ie) {
			t.Fatalf("expected IllegalStateError, got %v", err)
		}
	})

	t.Run("delete refuses sent invoices", func(t *testing.T) {
		uc := newInvoiceUC(newMemInvoices(sentInvoice()), nil)
		var ie *entities.IllegalStateError
		if err := uc.Delete(context.Background(), admin, "inv-1"); !errors.As(err, &ie) {
			t.Fatalf("expected IllegalStateError, got %v", err)
		}
	})
}
