// Package handlers wires the payment engine to the HTTP surface.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator"

	"github.com/ficommerce/payment-service/internal/application/services"
)

type Handlers struct {
	payments *services.PaymentService
	queries  *services.QueryService
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandlers(
	payments *services.PaymentService,
	queries *services.QueryService,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		payments: payments,
		queries:  queries,
		validate: validator.New(),
		logger:   logger,
	}
}

// Register mounts every payment route on the mux.
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/payments", h.CreatePayment)
	mux.HandleFunc("PATCH /api/v1/payments/refund/{reference}", h.RefundPayment)
	mux.HandleFunc("PATCH /api/v1/payments/cancel/{reference}", h.CancelPayment)

	mux.HandleFunc("GET /api/v1/payments", h.ListPayments)
	mux.HandleFunc("GET /api/v1/payments/{id}", h.GetPayment)
	mux.HandleFunc("GET /api/v1/payments/reference/{reference}", h.GetPaymentByReference)
	mux.HandleFunc("GET /api/v1/payments/order/{orderId}", h.GetPaymentByOrder)
	mux.HandleFunc("GET /api/v1/payments/customer/{customerId}", h.ListPaymentsByCustomer)
	mux.HandleFunc("GET /api/v1/payments/status/{status}", h.ListPaymentsByStatus)
}
