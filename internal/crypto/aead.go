package crypto

import (
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/memetcircus/whisper-core/internal/domain"
)

// Overhead is the AEAD authentication tag length added to every ciphertext.
const Overhead = chacha20poly1305.Overhead

// Seal encrypts and authenticates plaintext, binding aad into the tag.
func Seal(key [KeySize]byte, nonce [NonceSize]byte, plaintext, aad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCryptographicFailure, err)
	}
	return aead.Seal(nil, nonce[:], plaintext, aad), nil
}

// Open authenticates and decrypts ciphertext. An authentication failure is
// reported as a generic cryptographic failure; the cause is never
// distinguishable to callers.
func Open(key [KeySize]byte, nonce [NonceSize]byte, ciphertext, aad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCryptographicFailure, err)
	}
	pt, err := aead.Open(nil, nonce[:], ciphertext, aad)
	if err != nil {
		return nil, domain.ErrCryptographicFailure
	}
	return pt, nil
}
