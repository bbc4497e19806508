package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentConfirmationEvent is a point-in-time snapshot of a payment,
// taken at the moment of a state change that downstream consumers
// must hear about. Consumers are expected to be idempotent.
type PaymentConfirmationEvent struct {
	PaymentReference string          `json:"paymentReference"`
	OrderID          int64           `json:"orderId"`
	CustomerID       string          `json:"customerId"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	PaymentMethod    PaymentMethod   `json:"paymentMethod"`
	Status           PaymentStatus   `json:"status"`
	SettlementID     *string         `json:"settlementId,omitempty"`
	EmittedAt        time.Time       `json:"emittedAt"`
}

// NewConfirmationEvent snapshots the payment as it stands now.
func NewConfirmationEvent(p *Payment) PaymentConfirmationEvent {
	return PaymentConfirmationEvent{
		PaymentReference: p.Reference,
		OrderID:          p.OrderID,
		CustomerID:       p.CustomerID,
		Amount:           p.Amount.Amount(),
		Currency:         p.Amount.Currency(),
		PaymentMethod:    p.Method,
		Status:           p.Status,
		SettlementID:     p.SettlementID,
		EmittedAt:        time.Now().UTC(),
	}
}
