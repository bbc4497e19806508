package services

import (
	"context"

	"github.com/ficommerce/payment-service/internal/application"
	"github.com/ficommerce/payment-service/internal/domain"
)

// QueryService serves pure lookups. No side effects, no events.
type QueryService struct {
	repo application.PaymentRepository
}

func NewQueryService(repo application.PaymentRepository) *QueryService {
	return &QueryService{repo: repo}
}

func (s *QueryService) ByID(ctx context.Context, id string) (*domain.Payment, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *QueryService) ByReference(ctx context.Context, reference string) (*domain.Payment, error) {
	return s.repo.FindByReference(ctx, reference)
}

func (s *QueryService) ByOrderID(ctx context.Context, orderID int64) (*domain.Payment, error) {
	return s.repo.FindByOrderID(ctx, orderID)
}

func (s *QueryService) ByCustomerID(ctx context.Context, customerID string, page application.PageRequest) (*application.Page, error) {
	return s.repo.FindByCustomerID(ctx, customerID, page)
}

func (s *QueryService) ByStatus(ctx context.Context, status domain.PaymentStatus, page application.PageRequest) (*application.Page, error) {
	return s.repo.FindByStatus(ctx, status, page)
}

func (s *QueryService) All(ctx context.Context, page application.PageRequest) (*application.Page, error) {
	return s.repo.FindAll(ctx, page)
}
