package handlers

import (
	"net/http"

	"github.com/ficommerce/payment-service/internal/interfaces/rest"
)

func (h *Handlers) RefundPayment(w http.ResponseWriter, r *http.Request) {
	reference := r.PathValue("reference")

	payment, err := h.payments.Refund(r.Context(), reference)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.ToPaymentResponse(payment))
}

func (h *Handlers) CancelPayment(w http.ResponseWriter, r *http.Request) {
	reference := r.PathValue("reference")

	payment, err := h.payments.Cancel(r.Context(), reference)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.ToPaymentResponse(payment))
}
