// Package services hosts the payment lifecycle engine: it sequences
// customer validation, settlement, the state transition, persistence
// and downstream notification.
package services

import (
	"context"
	"log/slog"

	"github.com/ficommerce/payment-service/internal/application"
	"github.com/ficommerce/payment-service/internal/domain"
)

type PaymentService struct {
	repo      application.PaymentRepository
	customers application.CustomerValidator
	gateway   application.SettlementGateway
	publisher application.EventPublisher
	logger    *slog.Logger
}

func NewPaymentService(
	repo application.PaymentRepository,
	customers application.CustomerValidator,
	gateway application.SettlementGateway,
	publisher application.EventPublisher,
	logger *slog.Logger,
) *PaymentService {
	return &PaymentService{
		repo:      repo,
		customers: customers,
		gateway:   gateway,
		publisher: publisher,
		logger:    logger,
	}
}

// Create runs the full lifecycle for a new payment. Validation and
// settlement are resolved before anything touches storage, so the only
// record ever persisted is the fully-decided PAID or FAILED one — a
// bare PENDING row never hits the store. A settlement decline is a
// normal FAILED outcome, not an error.
func (s *PaymentService) Create(ctx context.Context, cmd CreatePaymentCommand) (*domain.Payment, error) {
	s.logger.Info("creating payment", "order_id", cmd.OrderID, "customer_id", cmd.CustomerID)

	method, err := domain.ParseMethod(cmd.Method)
	if err != nil {
		return nil, err
	}

	amount, err := domain.NewMoney(cmd.Amount, cmd.Currency)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, domain.NewInvalidAmountError(cmd.Amount)
	}

	exists, err := s.customers.ExistsByID(ctx, cmd.CustomerID)
	if err != nil {
		s.logger.Warn("customer lookup failed, treating as not found",
			"customer_id", cmd.CustomerID, "error", err)
		return nil, domain.NewCustomerNotFoundError(cmd.CustomerID)
	}
	if !exists {
		return nil, domain.NewCustomerNotFoundError(cmd.CustomerID)
	}

	payment, err := domain.NewPayment(cmd.OrderID, cmd.CustomerID, amount, method)
	if err != nil {
		return nil, err
	}

	result, err := s.gateway.Attempt(ctx, application.SettlementRequest{
		Reference:  payment.Reference,
		OrderID:    payment.OrderID,
		CustomerID: payment.CustomerID,
		Amount:     payment.Amount,
		Method:     payment.Method,
	})
	if err != nil {
		// Indeterminate settlement: nothing is persisted, the caller
		// retries with a fresh request.
		s.logger.Error("settlement gateway unavailable",
			"reference", payment.Reference, "error", err)
		return nil, application.NewInternalError(err)
	}

	if result.Ok {
		if err := payment.MarkPaid(result.SettlementID); err != nil {
			return nil, application.NewInternalError(err)
		}
		s.logger.Info("payment settled",
			"reference", payment.Reference, "settlement_id", result.SettlementID)
	} else {
		if err := payment.MarkFailed(result.Reason); err != nil {
			return nil, application.NewInternalError(err)
		}
		s.logger.Info("payment declined",
			"reference", payment.Reference, "reason", result.Reason)
	}

	if err := s.repo.Save(ctx, payment); err != nil {
		return nil, err
	}

	s.publisher.Publish(domain.NewConfirmationEvent(payment))

	return payment, nil
}

// Refund moves a PAID payment to REFUNDED and notifies downstream.
// The refund is applied with a status guard so that of two racing
// refunds only one wins; the loser observes InvalidTransition against
// the updated record rather than silently overwriting it.
func (s *PaymentService) Refund(ctx context.Context, reference string) (*domain.Payment, error) {
	payment, err := s.repo.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	previous := payment.Status
	if err := payment.Refund(); err != nil {
		return nil, err
	}

	applied, err := s.repo.UpdateStatusFrom(ctx, payment, previous)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, s.loseTransitionRace(ctx, reference, "only PAID payments may be refunded")
	}

	s.logger.Info("payment refunded", "reference", reference)
	s.publisher.Publish(domain.NewConfirmationEvent(payment))

	return payment, nil
}

// Cancel moves a PENDING or FAILED payment to CANCELLED. PAID payments
// must be refunded instead. Cancellation does not notify downstream.
func (s *PaymentService) Cancel(ctx context.Context, reference string) (*domain.Payment, error) {
	payment, err := s.repo.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	previous := payment.Status
	if err := payment.Cancel(); err != nil {
		return nil, err
	}

	applied, err := s.repo.UpdateStatusFrom(ctx, payment, previous)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, s.loseTransitionRace(ctx, reference, "payment was updated concurrently")
	}

	s.logger.Info("payment cancelled", "reference", reference)

	return payment, nil
}

// loseTransitionRace reloads the record a concurrent writer beat us to
// and surfaces the precondition failure against its current status.
func (s *PaymentService) loseTransitionRace(ctx context.Context, reference, reason string) error {
	current, err := s.repo.FindByReference(ctx, reference)
	if err != nil {
		return err
	}
	return domain.NewInvalidTransitionError(current.Status, reason)
}
