package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/ficommerce/payment-service/internal/application"
	"github.com/ficommerce/payment-service/internal/domain"
	"github.com/ficommerce/payment-service/internal/interfaces/rest"
)

func (h *Handlers) GetPayment(w http.ResponseWriter, r *http.Request) {
	payment, err := h.queries.ByID(r.Context(), r.PathValue("id"))
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.ToPaymentResponse(payment))
}

func (h *Handlers) GetPaymentByReference(w http.ResponseWriter, r *http.Request) {
	payment, err := h.queries.ByReference(r.Context(), r.PathValue("reference"))
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.ToPaymentResponse(payment))
}

func (h *Handlers) GetPaymentByOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(r.PathValue("orderId"), 10, 64)
	if err != nil {
		rest.WriteError(w, application.NewInvalidInputError(err), h.logger)
		return
	}

	payment, err := h.queries.ByOrderID(r.Context(), orderID)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.ToPaymentResponse(payment))
}

func (h *Handlers) ListPaymentsByCustomer(w http.ResponseWriter, r *http.Request) {
	pageReq := rest.ParsePageRequest(r)

	page, err := h.queries.ByCustomerID(r.Context(), r.PathValue("customerId"), pageReq)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.ToPageResponse(page, pageReq))
}

func (h *Handlers) ListPaymentsByStatus(w http.ResponseWriter, r *http.Request) {
	status, ok := domain.ParseStatus(r.PathValue("status"))
	if !ok {
		rest.WriteError(w, application.NewInvalidInputError(
			fmt.Errorf("unknown payment status %q", r.PathValue("status"))), h.logger)
		return
	}

	pageReq := rest.ParsePageRequest(r)

	page, err := h.queries.ByStatus(r.Context(), status, pageReq)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.ToPageResponse(page, pageReq))
}

func (h *Handlers) ListPayments(w http.ResponseWriter, r *http.Request) {
	pageReq := rest.ParsePageRequest(r)

	page, err := h.queries.All(r.Context(), pageReq)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.ToPageResponse(page, pageReq))
}
