// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"insurance-api/internal/api"
	"insurance-api/internal/audit"
	"insurance-api/internal/checkout"
	"insurance-api/internal/common/aws"
	"insurance-api/internal/common/config"
	"insurance-api/internal/common/database"
	"insurance-api/internal/common/logger"
	"insurance-api/internal/common/observability"
	"insurance-api/internal/intents"
	"insurance-api/internal/leads"
	"insurance-api/internal/notify"
	"insurance-api/internal/policy"
	"insurance-api/internal/quote"
	"insurance-api/internal/storage"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting insurance API server...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Elasticsearch (optional, quote audit trail) ---
	var auditor quote.Auditor
	if cfg.Audit.Enabled {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		auditor = audit.NewIndexer(esClient.Client, cfg.Audit.Index, log)
		zapLog.Info("Elasticsearch connected successfully")
	}

	// --- Init notification clients (optional) ---
	var notifier checkout.Notifier
	if cfg.Notify.Enabled {
		sesClient, err := aws.NewSESClient(ctx, cfg.Notify.AWSRegion)
		if err != nil {
			zapLog.Fatal("ses client init failed", zap.Error(err))
		}
		snsClient, err := aws.NewSNSClient(ctx, cfg.Notify.AWSRegion)
		if err != nil {
			zapLog.Fatal("sns client init failed", zap.Error(err))
		}
		notifier = notify.New(sesClient, snsClient, cfg.Notify, log)
		zapLog.Info("Notification clients initialized")
	}

	// --- Assemble domain services ---
	store := storage.NewStore(rdb.Client, log)
	policies := policy.NewStore(pg.DB, log)
	leadStore := leads.NewStore(pg.DB, log)
	intentStore := intents.NewStore(rdb.Client, log)

	schemaCtx, cancelSchema := context.WithTimeout(context.Background(), 30*time.Second)
	if err := policies.EnsureSchema(schemaCtx); err != nil {
		cancelSchema()
		zapLog.Fatal("policy schema init failed", zap.Error(err))
	}
	if err := leadStore.EnsureSchema(schemaCtx); err != nil {
		cancelSchema()
		zapLog.Fatal("leads schema init failed", zap.Error(err))
	}
	cancelSchema()

	var remote quote.RemotePricer
	if cfg.Pricing.RemoteURL != "" {
		remote = quote.NewRemoteClient(cfg.Pricing.RemoteURL, config.GetDuration(cfg.Pricing.RemoteTimeout))
	}
	quotes := quote.NewService(remote, store, auditor, obs, log)

	var issuer checkout.PolicyIssuer = policies
	if cfg.Checkout.IssuanceURL != "" {
		issuer = policy.NewRemoteIssuer(cfg.Checkout.IssuanceURL, config.GetDuration(cfg.Checkout.IssuanceTimeout), log)
	}

	authorizer := checkout.NewProbabilisticAuthorizer(
		cfg.Checkout.ApprovalRate,
		config.GetDuration(cfg.Checkout.AuthorizeDelay),
		time.Now().UnixNano(),
	)
	orchestrator := checkout.NewOrchestrator(
		store, store, issuer, policies,
		authorizer, checkout.UUIDGenerator{}, notifier, log,
	)

	server := api.NewServer(quotes, store, orchestrator, policies, intentStore, leadStore, cfg.Admin, log)

	httpServer := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      server.Router(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}

	zapLog.Info("Server stopped")
}
