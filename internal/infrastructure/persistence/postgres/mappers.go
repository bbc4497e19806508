package postgres

import (
	"github.com/ficommerce/payment-service/internal/domain"
)

func toDBModel(p *domain.Payment) PaymentModel {
	return PaymentModel{
		ID:            p.ID,
		Reference:     p.Reference,
		OrderID:       p.OrderID,
		CustomerID:    p.CustomerID,
		Amount:        p.Amount.Amount(),
		Currency:      p.Amount.Currency(),
		Method:        string(p.Method),
		Status:        string(p.Status),
		SettlementID:  p.SettlementID,
		FailureReason: p.FailureReason,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toDomainModel(m PaymentModel) (*domain.Payment, error) {
	amount, err := domain.NewMoney(m.Amount, m.Currency)
	if err != nil {
		return nil, err
	}

	return &domain.Payment{
		ID:            m.ID,
		Reference:     m.Reference,
		OrderID:       m.OrderID,
		CustomerID:    m.CustomerID,
		Amount:        amount,
		Method:        domain.PaymentMethod(m.Method),
		Status:        domain.PaymentStatus(m.Status),
		SettlementID:  m.SettlementID,
		FailureReason: m.FailureReason,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}
