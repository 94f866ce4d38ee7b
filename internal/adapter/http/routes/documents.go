package routes

import (
	"findoc_service/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathEstimations = "/estimations"
	PathInvoices    = "/invoices"
)

func addEstimationRoutes(rg *gin.RouterGroup, h *handlers.EstimationHandler) {
	estimations := rg.Group(PathEstimations)
	{
		estimations.POST("", h.Create)
		estimations.GET("", h.List)
		estimations.GET("/:uuid", h.Get)
		estimations.PATCH("/:uuid", h.Update)
		estimations.DELETE("/:uuid", h.Delete)
		estimations.POST("/:uuid/pdf", h.GeneratePDF)
		estimations.POST("/:uuid/send", h.Send)
		estimations.POST("/:uuid/decision", h.RecordDecision)
		estimations.POST("/:uuid/void", h.Void)
		estimations.POST("/:uuid/invoice", h.CreateInvoice)
	}
}

func addInvoiceRoutes(rg *gin.RouterGroup, h *handlers.InvoiceHandler, payments *handlers.InvoicePaymentHandler) {
	invoices := rg.Group(PathInvoices)
	{
		invoices.POST("", h.Create)
		invoices.GET("", h.List)
		invoices.GET("/:uuid", h.Get)
		invoices.PATCH("/:uuid", h.Update)
		invoices.DELETE("/:uuid", h.Delete)
		invoices.POST("/:uuid/pdf", h.GeneratePDF)
		invoices.POST("/:uuid/send", h.Send)
		invoices.POST("/:uuid/pending", h.MarkPending)
		invoices.POST("/:uuid/cancel", h.Cancel)
		invoices.POST("/:uuid/void", h.Void)

		// Payment intake.
		invoices.POST("/:uuid/payments", payments.Charge)
		invoices.POST("/:uuid/payments/record", payments.RecordManual)
		invoices.GET("/:uuid/payments", payments.ListPayments)
		invoices.GET("/:uuid/payments/:payment_id", payments.GetPayment)
	}
}
