// Package domain encodes the payment aggregate and its lifecycle.
package domain

import (
	"errors"
	"time"
)

// PaymentStatus represents the current state of a payment in its lifecycle
type PaymentStatus string

const (
	StatusPending   PaymentStatus = "PENDING"
	StatusPaid      PaymentStatus = "PAID"
	StatusFailed    PaymentStatus = "FAILED"
	StatusRefunded  PaymentStatus = "REFUNDED"
	StatusCancelled PaymentStatus = "CANCELLED"
)

// ParseStatus validates a status string received from the boundary.
func ParseStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case StatusPending, StatusPaid, StatusFailed, StatusRefunded, StatusCancelled:
		return PaymentStatus(s), true
	}
	return "", false
}

// PaymentMethod is how the customer chose to pay.
type PaymentMethod string

const (
	MethodCreditCard     PaymentMethod = "CREDIT_CARD"
	MethodDebitCard      PaymentMethod = "DEBIT_CARD"
	MethodPaypal         PaymentMethod = "PAYPAL"
	MethodStripe         PaymentMethod = "STRIPE"
	MethodBankTransfer   PaymentMethod = "BANK_TRANSFER"
	MethodCashOnDelivery PaymentMethod = "CASH_ON_DELIVERY"
)

func ParseMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case MethodCreditCard, MethodDebitCard, MethodPaypal, MethodStripe, MethodBankTransfer, MethodCashOnDelivery:
		return PaymentMethod(s), nil
	}
	return "", NewInvalidPaymentMethodError(s)
}

// Payment is the aggregate. Status changes go through the transition
// functions below, never through direct field writes. Records are
// retained in terminal states for audit, never deleted.
type Payment struct {
	ID         string
	Reference  string
	OrderID    int64
	CustomerID string
	Amount     Money
	Method     PaymentMethod
	Status     PaymentStatus

	SettlementID  *string
	FailureReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPayment constructs a PENDING payment with a freshly assigned
// reference. The amount must be strictly positive.
func NewPayment(orderID int64, customerID string, amount Money, method PaymentMethod) (*Payment, error) {
	if orderID <= 0 {
		return nil, errors.New("order ID is required")
	}
	if customerID == "" {
		return nil, errors.New("customer ID is required")
	}
	if !amount.IsPositive() {
		return nil, NewInvalidAmountError(amount.Amount())
	}

	now := time.Now().UTC()
	return &Payment{
		ID:         NewPaymentID(),
		Reference:  NewPaymentReference(),
		OrderID:    orderID,
		CustomerID: customerID,
		Amount:     amount,
		Method:     method,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// MarkPaid records a successful settlement. Clears any failure reason.
func (p *Payment) MarkPaid(settlementID string) error {
	out, err := Transition(p.Status, EventSettlementSucceeded)
	if err != nil {
		return err
	}
	p.Status = out.Status
	p.SettlementID = &settlementID
	p.FailureReason = nil
	p.touch()
	return nil
}

// MarkFailed records a declined settlement. Clears any settlement id.
func (p *Payment) MarkFailed(reason string) error {
	out, err := Transition(p.Status, EventSettlementDeclined)
	if err != nil {
		return err
	}
	p.Status = out.Status
	p.FailureReason = &reason
	p.SettlementID = nil
	p.touch()
	return nil
}

// Refund moves a PAID payment to REFUNDED.
func (p *Payment) Refund() error {
	out, err := Transition(p.Status, EventRefund)
	if err != nil {
		return err
	}
	p.Status = out.Status
	p.touch()
	return nil
}

// Cancel moves a PENDING or FAILED payment to CANCELLED.
func (p *Payment) Cancel() error {
	out, err := Transition(p.Status, EventCancel)
	if err != nil {
		return err
	}
	p.Status = out.Status
	p.touch()
	return nil
}

func (p *Payment) IsPaid() bool {
	return p.Status == StatusPaid
}

// IsTerminal reports whether no further transition is defined.
func (p *Payment) IsTerminal() bool {
	switch p.Status {
	case StatusFailed, StatusRefunded, StatusCancelled:
		return true
	default:
		return false
	}
}

func (p *Payment) touch() {
	p.UpdatedAt = time.Now().UTC()
}
