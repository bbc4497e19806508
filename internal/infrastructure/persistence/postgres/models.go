package postgres

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentModel mirrors the payments table.
type PaymentModel struct {
	ID            string
	Reference     string
	OrderID       int64
	CustomerID    string
	Amount        decimal.Decimal
	Currency      string
	Method        string
	Status        string
	SettlementID  *string
	FailureReason *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
