package policy

import (
	"errors"

	"github.com/memetcircus/whisper-core/internal/domain"
)

// Config holds the four independent policy booleans.
type Config struct {
	// ContactRequiredToSend rejects encryption to raw public keys that do
	// not resolve to a known contact.
	ContactRequiredToSend bool `yaml:"contact_required_to_send"`
	// RequireSignatureForVerified rejects unsigned envelopes to or from
	// verified contacts.
	RequireSignatureForVerified bool `yaml:"require_signature_for_verified"`
	// AutoArchiveOnRotation retires the previous identity's private key
	// material when rotating.
	AutoArchiveOnRotation bool `yaml:"auto_archive_on_rotation"`
	// BiometricGatedSigning routes signing through the injected Signer
	// capability, which may prompt the user and may be cancelled.
	BiometricGatedSigning bool `yaml:"biometric_gated_signing"`
}

// ViolationKind identifies which policy was violated.
type ViolationKind int

const (
	ViolationContactRequired ViolationKind = iota
	ViolationSignatureRequired
	ViolationRawKeyBlocked
	ViolationBiometricRequired
)

// String returns the canonical name of the violation kind.
func (k ViolationKind) String() string {
	switch k {
	case ViolationContactRequired:
		return "contactRequired"
	case ViolationSignatureRequired:
		return "signatureRequired"
	case ViolationRawKeyBlocked:
		return "rawKeyBlocked"
	case ViolationBiometricRequired:
		return "biometricRequired"
	default:
		return "unknown"
	}
}

// Violation is a typed policy failure.
type Violation struct {
	Kind ViolationKind
}

// Error returns the actionable user-facing message for the violation.
func (v *Violation) Error() string {
	switch v.Kind {
	case ViolationContactRequired:
		return "sending requires a saved contact; add the recipient first"
	case ViolationSignatureRequired:
		return "this verified contact requires signed messages"
	case ViolationRawKeyBlocked:
		return "the recipient is blocked"
	case ViolationBiometricRequired:
		return "signing requires biometric confirmation"
	default:
		return "policy violation"
	}
}

// AsViolation unwraps err into a *Violation when it is one.
func AsViolation(err error) (*Violation, bool) {
	var v *Violation
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// Engine evaluates policies against a send/receive context.
type Engine struct {
	cfg Config
}

// New returns an engine for the given configuration.
func New(cfg Config) *Engine { return &Engine{cfg: cfg} }

// Config returns the engine's configuration.
func (e *Engine) Config() Config { return e.cfg }

// ValidateSend checks the recipient against the send policies. recipient is
// nil when the caller supplied a raw public key that resolves to no contact.
func (e *Engine) ValidateSend(recipient *domain.Contact) error {
	if recipient == nil {
		if e.cfg.ContactRequiredToSend {
			return &Violation{Kind: ViolationContactRequired}
		}
		return nil
	}
	if recipient.IsBlocked {
		return &Violation{Kind: ViolationRawKeyBlocked}
	}
	return nil
}

// ValidateSignature checks that a signature accompanies envelopes for
// verified contacts when the policy demands one.
func (e *Engine) ValidateSignature(recipient *domain.Contact, hasSignature bool) error {
	if !e.cfg.RequireSignatureForVerified || recipient == nil {
		return nil
	}
	if recipient.TrustLevel == domain.TrustVerified && !hasSignature {
		return &Violation{Kind: ViolationSignatureRequired}
	}
	return nil
}

// RequiresBiometricForSigning reports whether signing must go through the
// biometric-gated Signer capability.
func (e *Engine) RequiresBiometricForSigning() bool { return e.cfg.BiometricGatedSigning }

// ShouldArchiveOnRotation reports whether identity rotation retires the old
// key material.
func (e *Engine) ShouldArchiveOnRotation() bool { return e.cfg.AutoArchiveOnRotation }
