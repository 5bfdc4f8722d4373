package crypto

import (
	"fmt"

	"golang.org/x/crypto/curve25519"

	"github.com/memetcircus/whisper-core/internal/domain"
)

// GenerateAgreementKeyPair returns a fresh Curve25519 key pair.
// The private key is clamped per RFC 7748.
func GenerateAgreementKeyPair() (priv domain.X25519Private, pub domain.X25519Public, err error) {
	if err = Fill(priv[:]); err != nil {
		return priv, pub, err
	}
	clamp(&priv)
	pb, err := curve25519.X25519(priv.Slice(), curve25519.Basepoint)
	if err != nil {
		return priv, pub, fmt.Errorf("%w: %v", domain.ErrCryptographicFailure, err)
	}
	copy(pub[:], pb)
	return priv, pub, nil
}

// GenerateEphemeralKeyPair returns a fresh per-envelope key pair. The caller
// must zeroize the private half immediately after agreement.
func GenerateEphemeralKeyPair() (domain.X25519Private, domain.X25519Public, error) {
	return GenerateAgreementKeyPair()
}

// Agree computes the X25519 shared secret between priv and pub.
func Agree(priv domain.X25519Private, pub domain.X25519Public) ([]byte, error) {
	secret, err := curve25519.X25519(priv.Slice(), pub.Slice())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCryptographicFailure, err)
	}
	return secret, nil
}

func clamp(k *domain.X25519Private) {
	kb := k[:]
	kb[0] &= 248
	kb[31] &= 127
	kb[31] |= 64
}
