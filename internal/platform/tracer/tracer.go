// Package tracer provides a lightweight tracing abstraction for the ledger
// and minting services.
//
// The internal Tracer interface keeps domain packages decoupled from
// OpenTelemetry APIs while still emitting distributed traces in production.
//
// Implementations:
//   - NoopTracer: for tests (zero overhead)
//   - OTelTracer: OpenTelemetry adapter for production
package tracer

import "context"

// Span represents an active trace span.
type Span interface {
	// End completes the span, recording any error that occurred.
	// If err is non-nil, the span is marked as failed.
	// End must be called exactly once, typically via defer.
	End(err error)

	// SetAttributes adds key-value pairs to the span.
	SetAttributes(attrs ...Attribute)

	// AddEvent records a timestamped event within the span.
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans for distributed tracing.
// Implementations must be safe for concurrent use.
type Tracer interface {
	// Start creates a new span with the given name and attributes.
	// The returned context contains the new span and should be passed to
	// child operations. The span must be ended by calling Span.End().
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

// String creates a string attribute.
func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Int64 creates an int64 attribute.
func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Span names used by the domain services.
const (
	SpanLedgerSubmit  = "ledger.submit"
	SpanLedgerApprove = "ledger.approve"
	SpanLedgerReject  = "ledger.reject"
	SpanMintingMint   = "minting.mint"
)

// Attribute keys used by the domain services.
const (
	AttrVerificationID = "verification_id"
	AttrTokenID        = "token_id"
	AttrCaller         = "caller"
	AttrStatus         = "status"
	AttrSkillCount     = "skill_count"
	AttrPaidAmount     = "paid_amount"
)
