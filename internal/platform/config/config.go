// Package config defines process configuration and its loading rules.
package config

import (
	"time"

	"skillproof/pkg/domain"
)

// Default fee parameters in base monetary units. They mirror the reference
// deployment values (0.01 and 0.005 units at 1e18 base units per unit).
const (
	DefaultVerificationFee = domain.Amount(10_000_000_000_000_000)
	DefaultMintingFee      = domain.Amount(5_000_000_000_000_000)
)

// Config captures everything the process needs at startup. Domain operations
// are exposed as Go APIs only; Addr serves the operational endpoints
// (metrics, health).
type Config struct {
	// Addr configures the ops HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Env names the deployment environment reported by the health endpoint.
	Env string `koanf:"env"`

	// Owner is the administrative principal. It is auto-registered as the
	// first active verifier at startup and is the only caller allowed to
	// perform privileged mutations.
	Owner string `koanf:"owner"`

	// OwnerName is the display name for the bootstrapped owner verifier.
	OwnerName string `koanf:"owner_name"`

	// VerificationFee is stored and owner-settable but charged by no
	// operation today; it is reserved for future submission-fee enforcement.
	VerificationFee uint64 `koanf:"verification_fee"`

	// MintingFee gates credential token creation.
	MintingFee uint64 `koanf:"minting_fee"`

	// AuditBuffer sets the async audit queue size. Zero keeps emission
	// synchronous so events commit with the operation.
	AuditBuffer int `koanf:"audit_buffer"`

	// ShutdownTimeout bounds graceful shutdown of the ops listener.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Addr:            ":8080",
		LogLevel:        "info",
		Env:             "development",
		Owner:           "owner",
		OwnerName:       "Contract Owner",
		VerificationFee: uint64(DefaultVerificationFee),
		MintingFee:      uint64(DefaultMintingFee),
		AuditBuffer:     0,
		ShutdownTimeout: 10 * time.Second,
	}
}
