package domain

import (
	"github.com/google/uuid"
)

// Identifier generation. References and settlement ids are UUIDv7:
// 128-bit, collision-resistant without a storage round-trip, and
// time-ordered so the reference index stays roughly append-only.
// The store-level unique constraint on reference is a backstop, not
// the primary uniqueness mechanism.

const (
	referencePrefix  = "PAY-"
	settlementPrefix = "TXN-"
)

// NewPaymentID allocates the internal payment identifier.
func NewPaymentID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// NewPaymentReference allocates the external-facing payment handle.
// Assigned exactly once at creation, never reassigned.
func NewPaymentReference() string {
	return referencePrefix + uuid.Must(uuid.NewV7()).String()
}

// NewSettlementID allocates an id for a successful settlement,
// distinguishable from payment references by prefix.
func NewSettlementID() string {
	return settlementPrefix + uuid.Must(uuid.NewV7()).String()
}
