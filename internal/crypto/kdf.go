package crypto

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"github.com/memetcircus/whisper-core/internal/domain"
)

const (
	// KeySize is the AEAD key length.
	KeySize = chacha20poly1305.KeySize
	// NonceSize is the AEAD nonce length.
	NonceSize = chacha20poly1305.NonceSize
)

// Info labels keeping the key and nonce derivations independent. Deriving
// each from its own HKDF instance avoids splitting one output stream in two.
var (
	infoEncKey = []byte("|enc-key")
	infoNonce  = []byte("|nonce")
)

// DeriveKeys derives the AEAD key and nonce from a shared secret, a
// per-envelope salt, and the canonical context via HKDF-SHA256. The context
// binds the derived material to a specific sender, recipient, policy state
// and session.
func DeriveKeys(shared []byte, salt domain.Salt, context []byte) (key [KeySize]byte, nonce [NonceSize]byte, err error) {
	if err = hkdfRead(shared, salt, context, infoEncKey, key[:]); err != nil {
		return key, nonce, err
	}
	if err = hkdfRead(shared, salt, context, infoNonce, nonce[:]); err != nil {
		return key, nonce, err
	}
	return key, nonce, nil
}

func hkdfRead(shared []byte, salt domain.Salt, context, label, out []byte) error {
	info := make([]byte, 0, len(context)+len(label))
	info = append(info, context...)
	info = append(info, label...)

	r := hkdf.New(sha256.New, shared, salt.Slice(), info)
	if _, err := io.ReadFull(r, out); err != nil {
		return fmt.Errorf("%w: hkdf: %v", domain.ErrCryptographicFailure, err)
	}
	return nil
}
