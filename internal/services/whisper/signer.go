package whisper

import (
	"context"
	"errors"

	"github.com/memetcircus/whisper-core/internal/crypto"
	"github.com/memetcircus/whisper-core/internal/domain"
)

// ErrUnknownSigningKey is returned by LocalSigner for a key id it does not
// hold.
var ErrUnknownSigningKey = errors.New("unknown signing key id")

// LocalSigner is a Signer backed by the identity store, for hosts without a
// biometric-gated keystore. Interactive implementations replace it and may
// return domain.ErrSigningCancelled.
type LocalSigner struct {
	Identities domain.IdentityStore
}

// Sign signs data with the identity whose id matches keyID.
func (l *LocalSigner) Sign(_ context.Context, data []byte, keyID string) ([]byte, error) {
	ids, err := l.Identities.ListIdentities()
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if id.ID == keyID {
			if !id.HasSigningKey() || id.SigningPriv.IsZero() {
				return nil, domain.ErrSigningKeyUnavailable
			}
			return crypto.Sign(id.SigningPriv, data), nil
		}
	}
	return nil, ErrUnknownSigningKey
}

var _ domain.Signer = (*LocalSigner)(nil)
