package services

import "github.com/shopspring/decimal"

type CreatePaymentCommand struct {
	OrderID    int64
	CustomerID string
	Amount     decimal.Decimal
	Currency   string
	Method     string
}
