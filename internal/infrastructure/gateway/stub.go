// Package gateway holds settlement gateway implementations. The stub
// stands in for a real provider client (Stripe, Adyen); both sides of
// the SettlementGateway port stay identical when one replaces it.
package gateway

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/ficommerce/payment-service/internal/application"
	"github.com/ficommerce/payment-service/internal/config"
	"github.com/ficommerce/payment-service/internal/domain"
)

// StubGateway approves a configurable fraction of settlement attempts.
type StubGateway struct {
	successRate float64
	latency     time.Duration
}

var _ application.SettlementGateway = (*StubGateway)(nil)

func NewStubGateway(cfg config.GatewayConfig) *StubGateway {
	return &StubGateway{
		successRate: cfg.SuccessRate,
		latency:     cfg.Latency,
	}
}

func (g *StubGateway) Attempt(ctx context.Context, req application.SettlementRequest) (application.SettlementResult, error) {
	if g.latency > 0 {
		select {
		case <-time.After(g.latency):
		case <-ctx.Done():
			return application.SettlementResult{}, ctx.Err()
		}
	}

	if rand.Float64() < g.successRate {
		return application.SettlementResult{
			Ok:           true,
			SettlementID: domain.NewSettlementID(),
		}, nil
	}

	return application.SettlementResult{
		Ok:     false,
		Reason: "settlement declined by gateway",
	}, nil
}
