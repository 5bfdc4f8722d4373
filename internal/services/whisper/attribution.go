package whisper

import (
	"github.com/memetcircus/whisper-core/internal/crypto"
	"github.com/memetcircus/whisper-core/internal/domain"
	"github.com/memetcircus/whisper-core/internal/envelope"
)

// resolveAttribution decides who sent a decrypted envelope.
//
// Signed envelopes are checked against every known contact's signing keys,
// current keys first and then key history; a rotated-away key still
// attributes the envelopes it signed, and the attribution carries the
// contact's current trust level.
// If no key verifies but the envelope's rkid matches a contact that carries a
// signing key, that expected signer failed to verify: invalid signature.
// Otherwise the signer is simply unknown to us.
//
// Unsigned envelopes attribute only on an exact rkid match against a known
// contact's derived rkid.
func (s *Service) resolveAttribution(comp envelope.Components, ctxBytes []byte) (domain.Attribution, error) {
	if !comp.HasSignature() {
		c, ok, err := s.contacts.GetByRecipientKeyID(comp.RKID)
		if err != nil {
			return domain.Attribution{}, err
		}
		if !ok {
			return domain.Attribution{Kind: domain.AttributionUnknown}, nil
		}
		return domain.Attribution{
			Kind:        domain.AttributionUnsigned,
			ContactName: c.DisplayName,
			TrustLevel:  c.TrustLevel,
		}, nil
	}

	input := envelope.SigningInput(ctxBytes, comp.Ciphertext)

	all, err := s.contacts.ListContacts()
	if err != nil {
		return domain.Attribution{}, err
	}
	for _, c := range all {
		if c.HasSigningKey() && crypto.Verify(c.SigningPub, input, comp.Signature) {
			return domain.Attribution{
				Kind:        domain.AttributionSigned,
				ContactName: c.DisplayName,
				TrustLevel:  c.TrustLevel,
			}, nil
		}
		for _, h := range c.KeyHistory {
			if !h.SigningPub.IsZero() && crypto.Verify(h.SigningPub, input, comp.Signature) {
				return domain.Attribution{
					Kind:        domain.AttributionSigned,
					ContactName: c.DisplayName,
					TrustLevel:  c.TrustLevel,
				}, nil
			}
		}
	}

	expected, ok, err := s.contacts.GetByRecipientKeyID(comp.RKID)
	if err != nil {
		return domain.Attribution{}, err
	}
	if ok && expected.HasSigningKey() {
		return domain.Attribution{
			Kind:        domain.AttributionInvalidSignature,
			ContactName: expected.DisplayName,
			TrustLevel:  expected.TrustLevel,
		}, nil
	}
	return domain.Attribution{Kind: domain.AttributionSignedUnknown}, nil
}
