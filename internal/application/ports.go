package application

import (
	"context"

	"github.com/ficommerce/payment-service/internal/domain"
)

// CustomerValidator answers whether a customer is known to the
// customer service. A transport failure or an indeterminate answer
// must be treated by callers as "not found", never as "found".
type CustomerValidator interface {
	ExistsByID(ctx context.Context, customerID string) (bool, error)
}

// SettlementRequest carries what the gateway needs to move funds.
type SettlementRequest struct {
	Reference  string
	OrderID    int64
	CustomerID string
	Amount     domain.Money
	Method     domain.PaymentMethod
}

// SettlementResult is the gateway's decision. A decline is a normal
// outcome, not an error: Ok false with a Reason.
type SettlementResult struct {
	Ok           bool
	SettlementID string
	Reason       string
}

// SettlementGateway attempts to settle funds. The stub implementation
// is replaceable by a real gateway client without changing engine
// logic.
type SettlementGateway interface {
	Attempt(ctx context.Context, req SettlementRequest) (SettlementResult, error)
}

// PageRequest is limit/offset pagination with optional sorting.
type PageRequest struct {
	Page           int
	Size           int
	SortBy         string
	SortDescending bool
}

func (p PageRequest) Limit() int {
	return p.Size
}

func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Page is one slice of a larger result set.
type Page struct {
	Items []*domain.Payment
	Total int64
}

// PaymentRepository is the port for durable payment storage.
// Save is an upsert keyed by the internal id. UpdateStatusFrom applies
// the record's current state only if the stored row still carries
// expectedStatus, so racing terminal transitions are serialized by the
// store and the loser sees no rows updated.
type PaymentRepository interface {
	Save(ctx context.Context, payment *domain.Payment) error
	UpdateStatusFrom(ctx context.Context, payment *domain.Payment, expectedStatus domain.PaymentStatus) (bool, error)
	FindByID(ctx context.Context, id string) (*domain.Payment, error)
	FindByReference(ctx context.Context, reference string) (*domain.Payment, error)
	FindByOrderID(ctx context.Context, orderID int64) (*domain.Payment, error)
	FindByCustomerID(ctx context.Context, customerID string, page PageRequest) (*Page, error)
	FindByStatus(ctx context.Context, status domain.PaymentStatus, page PageRequest) (*Page, error)
	FindAll(ctx context.Context, page PageRequest) (*Page, error)
}

// EventPublisher broadcasts lifecycle outcomes. Fire-and-forget from
// the engine's perspective: the engine neither blocks on delivery nor
// rolls back a committed transition when a publish fails.
type EventPublisher interface {
	Publish(event domain.PaymentConfirmationEvent)
}
