package domain

import "time"

// TrustLevel is the verification state of a contact's current key material.
type TrustLevel int

const (
	TrustUnverified TrustLevel = iota
	TrustVerified
	TrustRevoked
)

// String returns the lowercase name of the trust level.
func (t TrustLevel) String() string {
	switch t {
	case TrustUnverified:
		return "unverified"
	case TrustVerified:
		return "verified"
	case TrustRevoked:
		return "revoked"
	default:
		return "unknown"
	}
}

// CanTransition reports whether moving from t to next is a legal user-driven
// transition: unverified -> verified (out-of-band confirmation),
// verified -> revoked (explicit revocation), revoked -> unverified
// (re-verification allowed). Key rotation bypasses this and forces
// unverified regardless of prior state.
func (t TrustLevel) CanTransition(next TrustLevel) bool {
	switch t {
	case TrustUnverified:
		return next == TrustVerified
	case TrustVerified:
		return next == TrustRevoked
	case TrustRevoked:
		return next == TrustUnverified
	default:
		return false
	}
}

// KeyHistoryEntry records a contact's superseded key material. Old keys stay
// usable for decrypting previously received envelopes, never for
// establishing new trust.
type KeyHistoryEntry struct {
	KeyVersion   int
	AgreementPub X25519Public
	SigningPub   Ed25519Public
	CreatedAt    time.Time
}

// Contact is a known peer. Fingerprint, ShortFingerprint, SASWords and RKID
// are pure functions of the current agreement public key and are recomputed,
// never copied, whenever the key changes.
type Contact struct {
	ID          string
	DisplayName string

	AgreementPub X25519Public
	SigningPub   Ed25519Public

	Fingerprint      Fingerprint
	ShortFingerprint string
	SASWords         []string
	RKID             RecipientKeyID

	TrustLevel TrustLevel
	IsBlocked  bool

	KeyVersion int
	KeyHistory []KeyHistoryEntry

	CreatedAt  time.Time
	LastSeenAt time.Time
	Note       string
}

// HasSigningKey reports whether the contact's current key set can be used for
// signature verification.
func (c Contact) HasSigningKey() bool { return !c.SigningPub.IsZero() }

// NeedsReVerification is true when the contact's keys have rotated at least
// once and the current keys have not been verified out of band.
func (c Contact) NeedsReVerification() bool {
	return len(c.KeyHistory) > 0 && c.TrustLevel == TrustUnverified
}
