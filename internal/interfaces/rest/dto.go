// Package rest holds the HTTP wire types and response plumbing shared
// by the handlers.
package rest

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ficommerce/payment-service/internal/application"
	"github.com/ficommerce/payment-service/internal/domain"
)

type CreatePaymentRequest struct {
	OrderID       int64           `json:"orderId" validate:"required,gt=0"`
	CustomerID    string          `json:"customerId" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency" validate:"required,len=3"`
	PaymentMethod string          `json:"paymentMethod" validate:"required"`
}

type PaymentResponse struct {
	ID               string          `json:"id"`
	PaymentReference string          `json:"paymentReference"`
	OrderID          int64           `json:"orderId"`
	CustomerID       string          `json:"customerId"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	PaymentMethod    string          `json:"paymentMethod"`
	Status           string          `json:"status"`
	SettlementID     *string         `json:"settlementId,omitempty"`
	FailureReason    *string         `json:"failureReason,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:               p.ID,
		PaymentReference: p.Reference,
		OrderID:          p.OrderID,
		CustomerID:       p.CustomerID,
		Amount:           p.Amount.Amount(),
		Currency:         p.Amount.Currency(),
		PaymentMethod:    string(p.Method),
		Status:           string(p.Status),
		SettlementID:     p.SettlementID,
		FailureReason:    p.FailureReason,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

type PageResponse struct {
	Items []PaymentResponse `json:"items"`
	Page  int               `json:"page"`
	Size  int               `json:"size"`
	Total int64             `json:"total"`
}

func ToPageResponse(page *application.Page, req application.PageRequest) PageResponse {
	items := make([]PaymentResponse, 0, len(page.Items))
	for _, p := range page.Items {
		items = append(items, ToPaymentResponse(p))
	}
	return PageResponse{
		Items: items,
		Page:  req.Page,
		Size:  req.Size,
		Total: page.Total,
	}
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// sortColumns maps the query-parameter names clients use to the
// columns the store can sort on.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"amount":    "amount",
	"status":    "status",
}

// ParsePageRequest reads page, size, sortBy and sortDirection query
// parameters, clamping everything to sane values.
func ParsePageRequest(r *http.Request) application.PageRequest {
	q := r.URL.Query()

	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 0 {
		page = 0
	}

	size, err := strconv.Atoi(q.Get("size"))
	if err != nil || size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	sortBy, ok := sortColumns[q.Get("sortBy")]
	if !ok {
		sortBy = "created_at"
	}

	descending := !strings.EqualFold(q.Get("sortDirection"), "asc")

	return application.PageRequest{
		Page:           page,
		Size:           size,
		SortBy:         sortBy,
		SortDescending: descending,
	}
}
