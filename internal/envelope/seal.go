package envelope

import (
	"time"

	"github.com/memetcircus/whisper-core/internal/crypto"
	"github.com/memetcircus/whisper-core/internal/domain"
	"github.com/memetcircus/whisper-core/internal/util/memzero"
)

// SignFunc signs the envelope's signing input. A nil SignFunc produces an
// unsigned envelope.
type SignFunc func(data []byte) ([]byte, error)

// Create seals plaintext to a recipient agreement key and serialises the
// result. It generates the ephemeral key pair, salt and message id, derives
// the AEAD key and nonce from the canonical context, pads the plaintext to a
// fixed bucket, and optionally signs context‖ciphertext.
func Create(plaintext []byte, recipientPub domain.X25519Public, sign SignFunc) (string, error) {
	ephPriv, ephPub, err := crypto.GenerateEphemeralKeyPair()
	if err != nil {
		return "", err
	}
	defer memzero.Zero(ephPriv[:])

	var salt domain.Salt
	if err := crypto.Fill(salt[:]); err != nil {
		return "", err
	}
	var msgid domain.MessageID
	if err := crypto.Fill(msgid[:]); err != nil {
		return "", err
	}

	c := Components{
		Version:      Version,
		RKID:         crypto.RecipientKeyID(recipientPub),
		EphemeralPub: ephPub,
		Salt:         salt,
		MessageID:    msgid,
		Timestamp:    time.Now().Unix(),
	}
	if sign != nil {
		c.Flags |= FlagHasSignature
	}

	context := BuildContext(ContextParams{
		Version:              c.Version,
		SenderFingerprint:    crypto.Fingerprint(ephPub),
		RecipientFingerprint: crypto.Fingerprint(recipientPub),
		Flags:                c.Flags,
		RKID:                 c.RKID,
		EphemeralPub:         c.EphemeralPub,
		Salt:                 c.Salt,
		MessageID:            c.MessageID,
		Timestamp:            c.Timestamp,
	})

	shared, err := crypto.Agree(ephPriv, recipientPub)
	if err != nil {
		return "", err
	}
	defer memzero.Zero(shared)

	key, nonce, err := crypto.DeriveKeys(shared, salt, context)
	if err != nil {
		return "", err
	}
	defer memzero.Zero(key[:])

	padded, err := crypto.Pad(plaintext)
	if err != nil {
		return "", err
	}
	defer memzero.Zero(padded)

	c.Ciphertext, err = crypto.Seal(key, nonce, padded, context)
	if err != nil {
		return "", err
	}

	if sign != nil {
		c.Signature, err = sign(SigningInput(context, c.Ciphertext))
		if err != nil {
			return "", err
		}
	}
	return Encode(c), nil
}

// Open reverses Create for a recipient holding the matching agreement key
// pair. It returns the recovered plaintext and the canonical context so the
// caller can verify an attached signature.
func Open(c Components, recipientPriv domain.X25519Private, recipientPub domain.X25519Public) (plaintext, context []byte, err error) {
	context = BuildContext(ContextParams{
		Version:              c.Version,
		SenderFingerprint:    crypto.Fingerprint(c.EphemeralPub),
		RecipientFingerprint: crypto.Fingerprint(recipientPub),
		Flags:                c.Flags,
		RKID:                 c.RKID,
		EphemeralPub:         c.EphemeralPub,
		Salt:                 c.Salt,
		MessageID:            c.MessageID,
		Timestamp:            c.Timestamp,
	})

	shared, err := crypto.Agree(recipientPriv, c.EphemeralPub)
	if err != nil {
		return nil, nil, err
	}
	defer memzero.Zero(shared)

	key, nonce, err := crypto.DeriveKeys(shared, c.Salt, context)
	if err != nil {
		return nil, nil, err
	}
	defer memzero.Zero(key[:])

	padded, err := crypto.Open(key, nonce, c.Ciphertext, context)
	if err != nil {
		return nil, nil, err
	}
	defer memzero.Zero(padded)

	pt, err := crypto.Unpad(padded)
	if err != nil {
		return nil, nil, err
	}
	plaintext = append([]byte(nil), pt...)
	return plaintext, context, nil
}
