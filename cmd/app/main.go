package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"subscription-billing/internal/config"
	"subscription-billing/internal/domain/ports/adapter"
	"subscription-billing/internal/domain/ports/repository"
	payAdapters "subscription-billing/internal/infra/adapters/payment"
	pg "subscription-billing/internal/infra/db/postgres"
	"subscription-billing/internal/infra/logging"
	"subscription-billing/internal/infra/metrics"
	red "subscription-billing/internal/infra/redis"
	"subscription-billing/internal/infra/web"
	"subscription-billing/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (no-op payment provider, relaxed secrets)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		log.Warn().Msg("developer mode enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	maxConns := cfg.Database.MaxConns
	if maxConns <= 0 {
		maxConns = 10
	}
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, maxConns)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	// ---- Redis (optional, advisory duplicate cache only) ----
	var eventCache repository.EventCache
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		eventCache = red.NewEventCache(redisClient, cfg.Redis.TTL)
	} else {
		log.Warn().Msg("redis.url not set; webhook duplicate cache disabled")
	}

	// ---- Repositories ----
	subRepo := pg.NewSubscriptionRepo(pool)
	idemRepo := pg.NewIdempotencyRepo(pool)
	txManager := pg.NewTxManager(pool)

	// ---- Payment provider ----
	var provider adapter.PaymentProvider
	if cfg.Runtime.Dev {
		provider = payAdapters.NewNoopProvider()
		log.Warn().Msg("payment provider: noop (dev mode)")
	} else {
		provider, err = payAdapters.NewStripeProvider(cfg.Payment.Stripe.APIKey)
		if err != nil {
			log.Fatal().Err(err).Msg("stripe provider")
		}
	}

	webhookSecret := cfg.Payment.Stripe.WebhookSecret
	if webhookSecret == "" && cfg.Runtime.Dev {
		log.Warn().Msg("STRIPE_WEBHOOK_SECRET not set; using dev signing secret (INSECURE)")
		webhookSecret = "whsec_dev_only"
	}
	verifier, err := payAdapters.NewStripeWebhookVerifier(webhookSecret, cfg.Payment.Stripe.SignatureTolerance)
	if err != nil {
		log.Fatal().Err(err).Msg("webhook verifier")
	}

	// ---- Use cases ----
	checkoutUC := usecase.NewCheckoutUseCase(provider, cfg.Payment.Stripe.MinChargeAmount, cfg.Payment.Stripe.RequestTimeout, log)
	entUC := usecase.NewEntitlementUseCase(subRepo, idemRepo, eventCache, txManager, log)
	webhookUC := usecase.NewWebhookUseCase(entUC, log)

	// ---- HTTP server ----
	auth := web.NewAuthManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	srv := web.NewServer(checkoutUC, entUC, webhookUC, verifier, auth, cfg.Server.RequestTimeout, log)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Router(),
	}
	go func() {
		log.Info().Str("addr", server.Addr).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("http server")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	log.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	cancel()
}
