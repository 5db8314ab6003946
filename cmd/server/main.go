package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"skillproof/internal/audit"
	ledgermetrics "skillproof/internal/ledger/metrics"
	ledgerservice "skillproof/internal/ledger/service"
	ledgerstore "skillproof/internal/ledger/store"
	mintingmetrics "skillproof/internal/minting/metrics"
	mintingservice "skillproof/internal/minting/service"
	mintingstore "skillproof/internal/minting/store"
	"skillproof/internal/platform/config"
	"skillproof/internal/platform/health"
	"skillproof/internal/platform/logger"
	"skillproof/internal/platform/tracer"
	"skillproof/internal/policy"
	queryservice "skillproof/internal/query/service"
	registrymetrics "skillproof/internal/registry/metrics"
	registryservice "skillproof/internal/registry/service"
	registrystore "skillproof/internal/registry/store"
	"skillproof/pkg/domain"
	"skillproof/pkg/platform/sequence"
	"skillproof/pkg/platform/storetx"
)

// app bundles the wired services. Domain operations are exposed as Go APIs;
// the HTTP listener serves operational endpoints only.
type app struct {
	registry *registryservice.Service
	ledger   *ledgerservice.Service
	minting  *mintingservice.Service
	query    *queryservice.Service
	events   *audit.Publisher
}

// main wires high-level dependencies, exposes the ops router, and keeps the
// process lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	log.Info("initializing skillproof",
		"addr", cfg.Addr,
		"owner", cfg.Owner,
		"minting_fee", cfg.MintingFee,
	)

	a := wire(cfg, log)
	defer a.events.Close()

	if err := a.registry.Bootstrap(context.Background(), cfg.OwnerName); err != nil {
		log.Error("failed to bootstrap owner verifier", "error", err)
		os.Exit(1)
	}

	healthHandler := health.New(cfg.Env)
	healthHandler.RegisterCheck("query", func() error {
		_, err := a.query.TotalVerifications(context.Background())
		return err
	})

	router := chi.NewRouter()
	healthHandler.Register(router)
	router.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: cfg.Addr, Handler: router}

	log.Info("starting ops http server", "addr", cfg.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}

// wire builds the service graph. All mutating services share one transaction
// boundary so cross-context writes stay serializable.
func wire(cfg *config.Config, log *slog.Logger) *app {
	tx := storetx.NewInMemory()
	events := audit.NewPublisher(audit.NewInMemoryStore(),
		audit.WithPublisherLogger(log),
		audit.WithAsyncBuffer(cfg.AuditBuffer),
	)
	fees := policy.New(
		domain.Principal(cfg.Owner),
		domain.Amount(cfg.VerificationFee),
		domain.Amount(cfg.MintingFee),
		policy.WithLogger(log),
		policy.WithAuditPublisher(events),
	)
	tr := tracer.NewOTel()

	registry := registryservice.New(registrystore.NewInMemory(), fees, tx,
		registryservice.WithLogger(log),
		registryservice.WithAuditPublisher(events),
		registryservice.WithMetrics(registrymetrics.New()),
	)
	verifications := ledgerstore.NewInMemory(sequence.New())
	tokens := mintingstore.NewInMemory(sequence.New())

	ledger := ledgerservice.New(verifications, registry, tx,
		ledgerservice.WithLogger(log),
		ledgerservice.WithAuditPublisher(events),
		ledgerservice.WithMetrics(ledgermetrics.New()),
		ledgerservice.WithTracer(tr),
	)
	minting := mintingservice.New(tokens, verifications, fees, tx,
		mintingservice.WithLogger(log),
		mintingservice.WithAuditPublisher(events),
		mintingservice.WithMetrics(mintingmetrics.New()),
		mintingservice.WithTracer(tr),
	)
	query := queryservice.New(verifications, tokens, fees)

	return &app{
		registry: registry,
		ledger:   ledger,
		minting:  minting,
		query:    query,
		events:   events,
	}
}
