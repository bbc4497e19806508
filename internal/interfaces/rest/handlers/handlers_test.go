package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ficommerce/payment-service/internal/application"
	"github.com/ficommerce/payment-service/internal/application/services"
	"github.com/ficommerce/payment-service/internal/interfaces/rest"
	"github.com/ficommerce/payment-service/internal/interfaces/rest/handlers"
)

func declineWith(reason string) func(context.Context, application.SettlementRequest) (application.SettlementResult, error) {
	return func(context.Context, application.SettlementRequest) (application.SettlementResult, error) {
		return application.SettlementResult{Ok: false, Reason: reason}, nil
	}
}

type fixture struct {
	server  *httptest.Server
	repo    *services.MockPaymentRepository
	gateway *services.MockSettlementGateway
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := services.NewMockPaymentRepository()
	gateway := &services.MockSettlementGateway{}
	engine := services.NewPaymentService(repo, &services.MockCustomerValidator{}, gateway, &services.MockEventPublisher{}, logger)
	queries := services.NewQueryService(repo)

	mux := http.NewServeMux()
	handlers.NewHandlers(engine, queries, logger).Register(mux)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &fixture{server: server, repo: repo, gateway: gateway}
}

func (f *fixture) do(t *testing.T, method, path string, body any) (*http.Response, map[string]json.RawMessage) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, f.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var envelope map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}

func (f *fixture) createPayment(t *testing.T, orderID int64) rest.PaymentResponse {
	t.Helper()

	resp, envelope := f.do(t, http.MethodPost, "/api/v1/payments", map[string]any{
		"orderId":       orderID,
		"customerId":    "CUST-1",
		"amount":        "99.95",
		"currency":      "USD",
		"paymentMethod": "CREDIT_CARD",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var payment rest.PaymentResponse
	require.NoError(t, json.Unmarshal(envelope["data"], &payment))
	return payment
}

func TestCreatePayment(t *testing.T) {
	f := newFixture(t)

	payment := f.createPayment(t, 1001)

	assert.Equal(t, int64(1001), payment.OrderID)
	assert.Equal(t, "CUST-1", payment.CustomerID)
	assert.Equal(t, "PAID", payment.Status)
	assert.Regexp(t, `^PAY-`, payment.PaymentReference)
	require.NotNil(t, payment.SettlementID)
	assert.Regexp(t, `^TXN-`, *payment.SettlementID)
}

func TestCreatePaymentDeclined(t *testing.T) {
	f := newFixture(t)
	f.gateway.AttemptFn = declineWith("insufficient funds")

	resp, envelope := f.do(t, http.MethodPost, "/api/v1/payments", map[string]any{
		"orderId":       1002,
		"customerId":    "CUST-1",
		"amount":        "10.00",
		"currency":      "USD",
		"paymentMethod": "PAYPAL",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var payment rest.PaymentResponse
	require.NoError(t, json.Unmarshal(envelope["data"], &payment))
	assert.Equal(t, "FAILED", payment.Status)
	require.NotNil(t, payment.FailureReason)
	assert.Equal(t, "insufficient funds", *payment.FailureReason)
}

func TestCreatePaymentRejectsBadBody(t *testing.T) {
	f := newFixture(t)

	resp, envelope := f.do(t, http.MethodPost, "/api/v1/payments", map[string]any{
		"customerId": "CUST-1",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assertErrorCode(t, envelope, "INVALID_INPUT")
}

func TestCreatePaymentUnknownMethod(t *testing.T) {
	f := newFixture(t)

	resp, envelope := f.do(t, http.MethodPost, "/api/v1/payments", map[string]any{
		"orderId":       1003,
		"customerId":    "CUST-1",
		"amount":        "10.00",
		"currency":      "USD",
		"paymentMethod": "BARTER",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assertErrorCode(t, envelope, "INVALID_PAYMENT_METHOD")
}

func TestCreatePaymentDuplicateOrder(t *testing.T) {
	f := newFixture(t)
	f.createPayment(t, 1004)

	resp, envelope := f.do(t, http.MethodPost, "/api/v1/payments", map[string]any{
		"orderId":       1004,
		"customerId":    "CUST-1",
		"amount":        "10.00",
		"currency":      "USD",
		"paymentMethod": "CREDIT_CARD",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assertErrorCode(t, envelope, "DUPLICATE_ORDER_PAYMENT")
}

func TestRefundPayment(t *testing.T) {
	f := newFixture(t)
	created := f.createPayment(t, 1005)

	resp, envelope := f.do(t, http.MethodPatch, "/api/v1/payments/refund/"+created.PaymentReference, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payment rest.PaymentResponse
	require.NoError(t, json.Unmarshal(envelope["data"], &payment))
	assert.Equal(t, "REFUNDED", payment.Status)
}

func TestRefundUnknownReference(t *testing.T) {
	f := newFixture(t)

	resp, envelope := f.do(t, http.MethodPatch, "/api/v1/payments/refund/PAY-missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assertErrorCode(t, envelope, "PAYMENT_NOT_FOUND")
}

func TestCancelPayment(t *testing.T) {
	f := newFixture(t)
	f.gateway.AttemptFn = declineWith("card expired")
	created := f.createPayment(t, 1006)
	require.Equal(t, "FAILED", created.Status)

	resp, envelope := f.do(t, http.MethodPatch, "/api/v1/payments/cancel/"+created.PaymentReference, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payment rest.PaymentResponse
	require.NoError(t, json.Unmarshal(envelope["data"], &payment))
	assert.Equal(t, "CANCELLED", payment.Status)
}

func TestCancelPaidPaymentRejected(t *testing.T) {
	f := newFixture(t)
	created := f.createPayment(t, 1007)

	resp, envelope := f.do(t, http.MethodPatch, "/api/v1/payments/cancel/"+created.PaymentReference, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assertErrorCode(t, envelope, "INVALID_TRANSITION")
}

func TestGetPaymentByID(t *testing.T) {
	f := newFixture(t)
	created := f.createPayment(t, 1008)

	resp, envelope := f.do(t, http.MethodGet, "/api/v1/payments/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payment rest.PaymentResponse
	require.NoError(t, json.Unmarshal(envelope["data"], &payment))
	assert.Equal(t, created.PaymentReference, payment.PaymentReference)
}

func TestGetPaymentByReferenceAndOrder(t *testing.T) {
	f := newFixture(t)
	created := f.createPayment(t, 1009)

	resp, envelope := f.do(t, http.MethodGet, "/api/v1/payments/reference/"+created.PaymentReference, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var byRef rest.PaymentResponse
	require.NoError(t, json.Unmarshal(envelope["data"], &byRef))
	assert.Equal(t, created.ID, byRef.ID)

	resp, envelope = f.do(t, http.MethodGet, "/api/v1/payments/order/1009", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var byOrder rest.PaymentResponse
	require.NoError(t, json.Unmarshal(envelope["data"], &byOrder))
	assert.Equal(t, created.ID, byOrder.ID)
}

func TestGetPaymentByOrderRejectsNonNumeric(t *testing.T) {
	f := newFixture(t)

	resp, envelope := f.do(t, http.MethodGet, "/api/v1/payments/order/not-a-number", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assertErrorCode(t, envelope, "INVALID_INPUT")
}

func TestGetUnknownPayment(t *testing.T) {
	f := newFixture(t)

	resp, envelope := f.do(t, http.MethodGet, "/api/v1/payments/no-such-id", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assertErrorCode(t, envelope, "PAYMENT_NOT_FOUND")
}

func TestListPaymentsPaged(t *testing.T) {
	f := newFixture(t)
	for i := int64(0); i < 5; i++ {
		f.createPayment(t, 2000+i)
	}

	resp, envelope := f.do(t, http.MethodGet, "/api/v1/payments?page=0&size=2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page rest.PageResponse
	require.NoError(t, json.Unmarshal(envelope["data"], &page))
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, 2, page.Size)
}

func TestListPaymentsByCustomerAndStatus(t *testing.T) {
	f := newFixture(t)
	for i := int64(0); i < 3; i++ {
		f.createPayment(t, 3000+i)
	}

	resp, envelope := f.do(t, http.MethodGet, "/api/v1/payments/customer/CUST-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var byCustomer rest.PageResponse
	require.NoError(t, json.Unmarshal(envelope["data"], &byCustomer))
	assert.Equal(t, int64(3), byCustomer.Total)

	resp, envelope = f.do(t, http.MethodGet, "/api/v1/payments/status/PAID", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var byStatus rest.PageResponse
	require.NoError(t, json.Unmarshal(envelope["data"], &byStatus))
	assert.Equal(t, int64(3), byStatus.Total)
}

func TestListPaymentsByUnknownStatus(t *testing.T) {
	f := newFixture(t)

	resp, envelope := f.do(t, http.MethodGet, "/api/v1/payments/status/SHIPPED", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assertErrorCode(t, envelope, "INVALID_INPUT")
}

func assertErrorCode(t *testing.T, envelope map[string]json.RawMessage, want string) {
	t.Helper()

	var detail struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(envelope["error"], &detail))
	assert.Equal(t, want, detail.Code, fmt.Sprintf("error body: %s", envelope["error"]))
}
