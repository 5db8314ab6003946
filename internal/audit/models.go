package audit

import (
	"time"

	"github.com/google/uuid"

	"skillproof/pkg/domain"
)

// Event is emitted from domain logic to capture key actions. Every mutating
// operation emits exactly one event after its domain write. A sink failure is
// logged by the emitting service and never unwinds the committed write. Keep
// the shape transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID             uuid.UUID
	Timestamp      time.Time
	Action         Action
	Actor          domain.Principal // principal that performed the mutation
	Subject        domain.Principal // principal the record is about
	VerificationID domain.VerificationID
	TokenID        domain.TokenID
	Detail         map[string]string // remaining event-specific fields
}

// Action names the domain event stream.
type Action string

const (
	ActionClientRegistered       Action = "client_registered"
	ActionVerifierRegistered     Action = "verifier_registered"
	ActionClientDeactivated      Action = "client_deactivated"
	ActionVerifierDeactivated    Action = "verifier_deactivated"
	ActionVerificationSubmitted  Action = "verification_submitted"
	ActionVerificationApproved   Action = "verification_approved"
	ActionVerificationRejected   Action = "verification_rejected"
	ActionNFTMinted              Action = "nft_minted"
	ActionVerificationFeeUpdated Action = "verification_fee_updated"
	ActionMintingFeeUpdated      Action = "minting_fee_updated"
)
