package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"depositflow/claim"
	"depositflow/config"
	"depositflow/db"
	"depositflow/jurisdiction"
	"depositflow/payment"
)

// autoApproveGateway reports every session as paid. It stands in until a
// real payment-processor adapter is wired; the Gateway interface is the
// only seam the rest of the system sees.
type autoApproveGateway struct{}

func (autoApproveGateway) SessionStatus(context.Context, string) (payment.SessionStatus, error) {
	return payment.SessionStatusPaid, nil
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}

	registry := jurisdiction.NewRegistry()
	if cfg.RulesFile != "" {
		if err := registry.LoadFile(cfg.RulesFile); err != nil {
			logger.Error("load rules file", "err", err, "path", cfg.RulesFile)
			os.Exit(1)
		}
	}

	ctx := context.Background()

	var store claim.Store
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("bootstrap database pool", "err", err)
			os.Exit(1)
		}
		defer pool.Close()

		repo := claim.NewRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			logger.Error("ensure schema", "err", err)
			os.Exit(1)
		}
		store = repo
	} else {
		logger.Warn("DATABASE_URL not set; cases are stored in memory and lost on restart")
		store = claim.NewMemoryStore()
	}

	caseService := claim.NewService(store, registry)
	tokens := payment.NewTokenIssuer(cfg.PaymentSigningSecret)
	paymentService := payment.NewService(autoApproveGateway{}, tokens, caseService)
	logger.Warn("payment gateway running in auto-approve mode")

	server := NewServer(caseService, paymentService, registry, logger)

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("listening", "addr", cfg.ListenAddr)
	if err := httpServer.ListenAndServe(); err != nil {
		logger.Error("serve", "err", err)
		os.Exit(1)
	}
}
