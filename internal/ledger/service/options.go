package service

import (
	"log/slog"
	"time"

	ledgermetrics "skillproof/internal/ledger/metrics"
	"skillproof/internal/platform/tracer"
)

// serviceConfig holds optional dependencies for the ledger service.
type serviceConfig struct {
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *ledgermetrics.Metrics
	tracer         tracer.Tracer
	clock          func() time.Time
}

// Option configures the ledger service.
type Option func(c *serviceConfig)

func WithLogger(logger *slog.Logger) Option {
	return func(c *serviceConfig) {
		c.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(c *serviceConfig) {
		c.auditPublisher = publisher
	}
}

func WithMetrics(m *ledgermetrics.Metrics) Option {
	return func(c *serviceConfig) {
		c.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(c *serviceConfig) {
		c.tracer = t
	}
}

// WithClock overrides the time source, used in tests.
func WithClock(clock func() time.Time) Option {
	return func(c *serviceConfig) {
		c.clock = clock
	}
}
