package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ficommerce/payment-service/internal/application/services"
	"github.com/ficommerce/payment-service/internal/config"
	"github.com/ficommerce/payment-service/internal/infrastructure/customer"
	"github.com/ficommerce/payment-service/internal/infrastructure/gateway"
	"github.com/ficommerce/payment-service/internal/infrastructure/messaging"
	"github.com/ficommerce/payment-service/internal/infrastructure/persistence"
	"github.com/ficommerce/payment-service/internal/infrastructure/persistence/postgres"
	"github.com/ficommerce/payment-service/internal/interfaces/rest/handlers"
	"github.com/ficommerce/payment-service/internal/interfaces/rest/middleware"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting payment service",
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
	)

	if err := persistence.Migrate(cfg.Database.ConnString()); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := persistence.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	paymentRepo := postgres.NewPaymentRepository(db.Pool)
	customerClient := customer.NewClient(cfg.Customer)
	settlementGateway := gateway.NewStubGateway(cfg.Gateway)

	producer := messaging.NewProducer(cfg.Kafka)
	defer producer.Close()
	publisher := messaging.NewAsyncPublisher(producer, cfg.Kafka.BufferSize, cfg.Kafka.SendTimeout, logger)

	paymentService := services.NewPaymentService(paymentRepo, customerClient, settlementGateway, publisher, logger)
	queryService := services.NewQueryService(paymentRepo)

	mux := http.NewServeMux()
	handlers.NewHandlers(paymentService, queryService, logger).Register(mux)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := middleware.Recovery(logger)(mux)
	handler = middleware.Metrics()(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Timeout(cfg.Server.ReadTimeout)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	publisher.Stop()

	logger.Info("server exited")
}
