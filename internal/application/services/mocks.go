package services

import (
	"context"
	"sort"
	"sync"

	"github.com/ficommerce/payment-service/internal/application"
	"github.com/ficommerce/payment-service/internal/domain"
)

// In-memory collaborators for tests. Each behavior can be overridden
// through its *Fn field; without an override they act as a faithful
// store, an always-true validator, an always-approving gateway and an
// event recorder.

// MockPaymentRepository
type MockPaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*domain.Payment

	SaveFn             func(ctx context.Context, payment *domain.Payment) error
	UpdateStatusFromFn func(ctx context.Context, payment *domain.Payment, expected domain.PaymentStatus) (bool, error)
	FindByReferenceFn  func(ctx context.Context, reference string) (*domain.Payment, error)
}

func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{payments: make(map[string]*domain.Payment)}
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *domain.Payment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, payment)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.payments {
		if p.OrderID == payment.OrderID && p.ID != payment.ID {
			return domain.NewDuplicateOrderPaymentError(payment.OrderID)
		}
	}
	clone := *payment
	m.payments[payment.ID] = &clone
	return nil
}

func (m *MockPaymentRepository) UpdateStatusFrom(ctx context.Context, payment *domain.Payment, expected domain.PaymentStatus) (bool, error) {
	if m.UpdateStatusFromFn != nil {
		return m.UpdateStatusFromFn(ctx, payment, expected)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.payments[payment.ID]
	if !ok || stored.Status != expected {
		return false, nil
	}
	clone := *payment
	m.payments[payment.ID] = &clone
	return true, nil
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id string) (*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.payments[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, domain.NewPaymentNotFoundError(id)
}

func (m *MockPaymentRepository) FindByReference(ctx context.Context, reference string) (*domain.Payment, error) {
	if m.FindByReferenceFn != nil {
		return m.FindByReferenceFn(ctx, reference)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.payments {
		if p.Reference == reference {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.NewPaymentNotFoundError(reference)
}

func (m *MockPaymentRepository) FindByOrderID(ctx context.Context, orderID int64) (*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.payments {
		if p.OrderID == orderID {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.NewPaymentNotFoundError("for order")
}

func (m *MockPaymentRepository) FindByCustomerID(ctx context.Context, customerID string, page application.PageRequest) (*application.Page, error) {
	return m.paged(func(p *domain.Payment) bool { return p.CustomerID == customerID }, page), nil
}

func (m *MockPaymentRepository) FindByStatus(ctx context.Context, status domain.PaymentStatus, page application.PageRequest) (*application.Page, error) {
	return m.paged(func(p *domain.Payment) bool { return p.Status == status }, page), nil
}

func (m *MockPaymentRepository) FindAll(ctx context.Context, page application.PageRequest) (*application.Page, error) {
	return m.paged(func(*domain.Payment) bool { return true }, page), nil
}

func (m *MockPaymentRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.payments)
}

func (m *MockPaymentRepository) paged(match func(*domain.Payment) bool, page application.PageRequest) *application.Page {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var all []*domain.Payment
	for _, p := range m.payments {
		if match(p) {
			clone := *p
			all = append(all, &clone)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if page.SortDescending {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	total := int64(len(all))
	start := page.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + page.Limit()
	if end > len(all) {
		end = len(all)
	}
	return &application.Page{Items: all[start:end], Total: total}
}

// MockCustomerValidator
type MockCustomerValidator struct {
	ExistsByIDFn func(ctx context.Context, customerID string) (bool, error)
}

func (m *MockCustomerValidator) ExistsByID(ctx context.Context, customerID string) (bool, error) {
	if m.ExistsByIDFn != nil {
		return m.ExistsByIDFn(ctx, customerID)
	}
	return true, nil
}

// MockSettlementGateway
type MockSettlementGateway struct {
	AttemptFn func(ctx context.Context, req application.SettlementRequest) (application.SettlementResult, error)
}

func (m *MockSettlementGateway) Attempt(ctx context.Context, req application.SettlementRequest) (application.SettlementResult, error) {
	if m.AttemptFn != nil {
		return m.AttemptFn(ctx, req)
	}
	return application.SettlementResult{Ok: true, SettlementID: domain.NewSettlementID()}, nil
}

// MockEventPublisher records every published event.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []domain.PaymentConfirmationEvent
}

func (m *MockEventPublisher) Publish(event domain.PaymentConfirmationEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *MockEventPublisher) Events() []domain.PaymentConfirmationEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.PaymentConfirmationEvent, len(m.events))
	copy(out, m.events)
	return out
}
