package whisper

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/memetcircus/whisper-core/internal/crypto"
	"github.com/memetcircus/whisper-core/internal/domain"
	"github.com/memetcircus/whisper-core/internal/envelope"
	"github.com/memetcircus/whisper-core/internal/policy"
	"github.com/memetcircus/whisper-core/internal/replay"
)

// genericFailureMessage is the single user-facing message for every
// non-policy failure. Internal error kinds remain available to diagnostics
// via errors.Is.
const genericFailureMessage = "unable to process this message"

// Recipient addresses an envelope: either a saved contact or a raw agreement
// public key.
type Recipient struct {
	Contact *domain.Contact
	RawKey  domain.X25519Public
}

// ToContact addresses a saved contact.
func ToContact(c domain.Contact) Recipient { return Recipient{Contact: &c} }

// ToRawKey addresses a bare agreement public key.
func ToRawKey(pub domain.X25519Public) Recipient { return Recipient{RawKey: pub} }

// Service wires the core together. All collaborators are injected; the
// service holds no mutable state of its own and is safe for concurrent use.
type Service struct {
	identities domain.IdentityStore
	contacts   domain.ContactStore
	replay     *replay.Cache
	policy     *policy.Engine
	signer     domain.Signer
	log        zerolog.Logger
}

// New constructs the orchestration service. signer may be nil when the
// biometric-gated signing policy is off.
func New(
	identities domain.IdentityStore,
	contacts domain.ContactStore,
	cache *replay.Cache,
	pol *policy.Engine,
	signer domain.Signer,
	log zerolog.Logger,
) *Service {
	return &Service{
		identities: identities,
		contacts:   contacts,
		replay:     cache,
		policy:     pol,
		signer:     signer,
		log:        log,
	}
}

// Encrypt seals plaintext into a wire envelope for the recipient.
//
// Flow: resolve the recipient against the contact store, run the send and
// signature policy pre-checks, gate signing behind the Signer capability when
// the policy demands it, then delegate to the codec and engine.
func (s *Service) Encrypt(ctx context.Context, plaintext []byte, sender domain.Identity, r Recipient, requireSignature bool) (string, error) {
	wire, err := s.encrypt(ctx, plaintext, sender, r, requireSignature)
	if err != nil {
		encryptsTotal.WithLabelValues(encryptOutcome(err)).Inc()
		return "", err
	}
	encryptsTotal.WithLabelValues("ok").Inc()
	return wire, nil
}

func (s *Service) encrypt(ctx context.Context, plaintext []byte, sender domain.Identity, r Recipient, requireSignature bool) (string, error) {
	contact := r.Contact
	recipientPub := r.RawKey
	if contact != nil {
		recipientPub = contact.AgreementPub
	} else {
		// A raw key that resolves to a saved contact is treated as that
		// contact for policy purposes, including blocking.
		if c, ok, err := s.contacts.GetByRecipientKeyID(crypto.RecipientKeyID(recipientPub)); err != nil {
			return "", err
		} else if ok {
			contact = &c
		}
	}

	if err := s.policy.ValidateSend(contact); err != nil {
		return "", err
	}
	if err := s.policy.ValidateSignature(contact, requireSignature); err != nil {
		return "", err
	}

	var sign envelope.SignFunc
	if requireSignature {
		var err error
		if sign, err = s.signFunc(ctx, sender); err != nil {
			return "", err
		}
	}
	return envelope.Create(plaintext, recipientPub, sign)
}

// signFunc selects the signing path: the biometric-gated Signer capability
// when policy requires it, otherwise the sender's in-memory signing key.
func (s *Service) signFunc(ctx context.Context, sender domain.Identity) (envelope.SignFunc, error) {
	if !sender.HasSigningKey() {
		return nil, domain.ErrSigningKeyUnavailable
	}
	if !s.policy.RequiresBiometricForSigning() {
		priv := sender.SigningPriv
		return func(data []byte) ([]byte, error) {
			return crypto.Sign(priv, data), nil
		}, nil
	}
	if s.signer == nil {
		return nil, &policy.Violation{Kind: policy.ViolationBiometricRequired}
	}
	keyID := sender.ID
	return func(data []byte) ([]byte, error) {
		sig, err := s.signer.Sign(ctx, data, keyID)
		if errors.Is(err, domain.ErrSigningCancelled) {
			// A dismissed prompt is a policy outcome, never a crash, and is
			// not retried.
			return nil, &policy.Violation{Kind: policy.ViolationBiometricRequired}
		}
		return sig, err
	}, nil
}

// Decrypt parses, validates and opens a wire envelope, returning the
// plaintext and the resolved sender attribution.
func (s *Service) Decrypt(ctx context.Context, wire string) ([]byte, domain.Attribution, error) {
	pt, attr, err := s.decrypt(ctx, wire)
	decryptsTotal.WithLabelValues(decryptOutcome(err)).Inc()
	return pt, attr, err
}

func (s *Service) decrypt(_ context.Context, wire string) ([]byte, domain.Attribution, error) {
	var none domain.Attribution

	comp, err := envelope.Parse(wire)
	if err != nil {
		return nil, none, err
	}

	id, ok, err := s.identities.GetByRecipientKeyID(comp.RKID)
	if err != nil {
		return nil, none, err
	}
	if !ok {
		return nil, none, domain.ErrMessageNotForMe
	}
	if !id.CanDecrypt() {
		// Addressed to a retired key version; indistinguishable from any
		// other decryption failure on the user-facing surface.
		return nil, none, domain.ErrCryptographicFailure
	}

	if err := s.replay.CheckAndCommit(comp.MessageID, comp.Timestamp); err != nil {
		switch {
		case errors.Is(err, replay.ErrExpired):
			return nil, none, domain.ErrMessageExpired
		case errors.Is(err, replay.ErrReplayed):
			replayRejectsTotal.Inc()
			return nil, none, domain.ErrReplayDetected
		default:
			return nil, none, err
		}
	}

	pt, ctxBytes, err := envelope.Open(comp, id.AgreementPriv, id.AgreementPub)
	if err != nil {
		return nil, none, err
	}

	attr, err := s.resolveAttribution(comp, ctxBytes)
	if err != nil {
		return nil, none, err
	}
	if attr.Kind == domain.AttributionInvalidSignature &&
		s.policy.Config().RequireSignatureForVerified &&
		attr.TrustLevel == domain.TrustVerified {
		// The policy demands valid signatures from this contact; do not
		// surface the plaintext.
		return nil, none, domain.ErrCryptographicFailure
	}

	s.log.Debug().
		Str("attribution", attr.Kind.String()).
		Int("plaintext_len", len(pt)).
		Msg("envelope decrypted")
	return pt, attr, nil
}

// Detect reports whether text looks like a Whisper envelope. Callers use it
// to decide whether to offer decryption.
func (s *Service) Detect(text string) bool { return envelope.Detect(text) }

// UserMessage maps an error from Encrypt or Decrypt to its user-facing text.
// Policy violations keep their actionable message; everything else collapses
// into one generic, non-revealing string.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if v, ok := policy.AsViolation(err); ok {
		return v.Error()
	}
	return genericFailureMessage
}

func encryptOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case isViolation(err):
		return "policy_violation"
	case errors.Is(err, domain.ErrRandomGenerationFailure):
		return "random_failure"
	default:
		return "error"
	}
}

func decryptOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidEnvelope):
		return "invalid_envelope"
	case errors.Is(err, domain.ErrMessageNotForMe):
		return "not_for_me"
	case errors.Is(err, domain.ErrReplayDetected):
		return "replay"
	case errors.Is(err, domain.ErrMessageExpired):
		return "expired"
	case errors.Is(err, domain.ErrCryptographicFailure):
		return "crypto_failure"
	default:
		return "error"
	}
}

func isViolation(err error) bool {
	_, ok := policy.AsViolation(err)
	return ok
}
