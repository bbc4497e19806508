package domain

import (
	"github.com/shopspring/decimal"
)

// Money is an immutable amount in a single currency. Arithmetic and
// comparison across currencies is not defined.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney builds a Money value. The currency must be a 3-letter
// uppercase ISO code. Negative amounts are rejected here; callers that
// require a strictly positive amount (payment creation) check
// IsPositive themselves.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, NewInvalidAmountError(amount)
	}
	if !isValidCurrency(currency) {
		return Money{}, NewInvalidCurrencyError(currency)
	}
	return Money{amount: amount, currency: currency}, nil
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Currency() string {
	return m.currency
}

func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Compare returns -1, 0 or 1 ordering m against other. Both values
// must share a currency.
func (m Money) Compare(other Money) (int, error) {
	if m.currency != other.currency {
		return 0, NewCurrencyMismatchError(m.currency, other.currency)
	}
	return m.amount.Cmp(other.amount), nil
}

func (m Money) IsGreaterThan(other Money) (bool, error) {
	cmp, err := m.Compare(other)
	if err != nil {
		return false, err
	}
	return cmp > 0, nil
}

func (m Money) String() string {
	return m.amount.String() + " " + m.currency
}

func isValidCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
