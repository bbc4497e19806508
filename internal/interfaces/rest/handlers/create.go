package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ficommerce/payment-service/internal/application"
	"github.com/ficommerce/payment-service/internal/application/services"
	"github.com/ficommerce/payment-service/internal/interfaces/rest"
)

func (h *Handlers) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req rest.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, application.NewInvalidInputError(err), h.logger)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		rest.WriteError(w, application.NewInvalidInputError(err), h.logger)
		return
	}

	payment, err := h.payments.Create(r.Context(), services.CreatePaymentCommand{
		OrderID:    req.OrderID,
		CustomerID: req.CustomerID,
		Amount:     req.Amount,
		Currency:   req.Currency,
		Method:     req.PaymentMethod,
	})
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, rest.ToPaymentResponse(payment))
}
