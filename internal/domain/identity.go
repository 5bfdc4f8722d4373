package domain

import "time"

// IdentityStatus is the lifecycle state of a local identity.
type IdentityStatus int

const (
	IdentityActive IdentityStatus = iota
	IdentityArchived
)

// String returns the lowercase name of the status.
func (s IdentityStatus) String() string {
	switch s {
	case IdentityActive:
		return "active"
	case IdentityArchived:
		return "archived"
	default:
		return "unknown"
	}
}

// Identity holds a local key set. At most one identity is active at a time;
// archived identities may keep their private key material so envelopes
// addressed to an older key version remain readable.
type Identity struct {
	ID          string
	DisplayName string

	AgreementPriv X25519Private
	AgreementPub  X25519Public

	// Signing keys are optional; an identity without them can only produce
	// unsigned envelopes.
	SigningPriv Ed25519Private
	SigningPub  Ed25519Public

	Fingerprint Fingerprint
	Status      IdentityStatus
	KeyVersion  int
	CreatedAt   time.Time
}

// HasSigningKey reports whether the identity carries signing key material.
func (i Identity) HasSigningKey() bool { return !i.SigningPub.IsZero() }

// CanDecrypt reports whether the identity still holds its agreement private
// key. Retired identities keep public metadata only.
func (i Identity) CanDecrypt() bool { return !i.AgreementPriv.IsZero() }
