package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"github.com/memetcircus/whisper-core/internal/crypto"
)

// keystoreVersion is the on-disk format version of encrypted store files.
const keystoreVersion = 1

// errWrongPassphrase covers both a bad passphrase and a corrupted blob; the
// two are indistinguishable by construction.
var errWrongPassphrase = errors.New("wrong passphrase or corrupted key store")

// kdfParams are the scrypt cost parameters. They are recorded alongside each
// blob so stored data survives future changes to the defaults.
type kdfParams struct {
	N int `json:"n"`
	R int `json:"r"`
	P int `json:"p"`
}

var defaultKDFParams = kdfParams{N: 1 << 15, R: 8, P: 1}

// keystoreBlob is the JSON envelope wrapping encrypted store contents.
type keystoreBlob struct {
	Version int       `json:"v"`
	Salt    []byte    `json:"salt"`
	KDF     kdfParams `json:"kdf"`
	Box     []byte    `json:"box"`
}

func storeKey(passphrase string, salt []byte, p kdfParams) ([]byte, error) {
	return scrypt.Key([]byte(passphrase), salt, p.N, p.R, p.P, chacha20poly1305.KeySize)
}

// sealBlob encrypts raw under a passphrase-derived key. The nonce is all
// zeros: every blob gets a fresh salt, so a derived key is never reused.
func sealBlob(passphrase string, raw []byte) ([]byte, error) {
	salt, err := crypto.Random(16)
	if err != nil {
		return nil, err
	}
	key, err := storeKey(passphrase, salt, defaultKDFParams)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, chacha20poly1305.NonceSize)
	return json.Marshal(keystoreBlob{
		Version: keystoreVersion,
		Salt:    salt,
		KDF:     defaultKDFParams,
		Box:     aead.Seal(nil, nonce, raw, salt),
	})
}

// openBlob reverses sealBlob using the parameters recorded in the blob.
func openBlob(passphrase string, b []byte) ([]byte, error) {
	var blob keystoreBlob
	if err := json.Unmarshal(b, &blob); err != nil {
		return nil, err
	}
	if blob.Version > keystoreVersion {
		return nil, fmt.Errorf("unsupported keystore version %d", blob.Version)
	}
	key, err := storeKey(passphrase, blob.Salt, blob.KDF)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, chacha20poly1305.NonceSize)
	raw, err := aead.Open(nil, nonce, blob.Box, blob.Salt)
	if err != nil {
		return nil, errWrongPassphrase
	}
	return raw, nil
}
