package crypto

import (
	"crypto/subtle"
	"encoding/binary"
	"fmt"

	"github.com/memetcircus/whisper-core/internal/domain"
)

// Padding buckets hide plaintext length behind a small set of fixed sizes.
// Payloads that do not fit the largest bucket round up to the next multiple
// of it.
const (
	padBucketSmall  = 256
	padBucketMedium = 512
	padBucketLarge  = 1024

	padLenPrefix = 2
	maxPlaintext = 1<<16 - 1
)

// Pad frames plaintext as a 2-byte big-endian length prefix plus payload,
// zero-filled to the smallest bucket that fits.
func Pad(plaintext []byte) ([]byte, error) {
	if len(plaintext) > maxPlaintext {
		return nil, fmt.Errorf("%w: plaintext too large", domain.ErrCryptographicFailure)
	}
	need := padLenPrefix + len(plaintext)
	size := padBucketSmall
	switch {
	case need <= padBucketSmall:
		size = padBucketSmall
	case need <= padBucketMedium:
		size = padBucketMedium
	case need <= padBucketLarge:
		size = padBucketLarge
	default:
		size = ((need + padBucketLarge - 1) / padBucketLarge) * padBucketLarge
	}
	out := make([]byte, size)
	binary.BigEndian.PutUint16(out[:padLenPrefix], uint16(len(plaintext)))
	copy(out[padLenPrefix:], plaintext)
	return out, nil
}

// Unpad recovers the plaintext from a padded frame. The whole padding region
// is always read and OR-combined before validity is decided, so rejection
// time does not depend on where a non-zero byte occurs.
func Unpad(padded []byte) ([]byte, error) {
	if len(padded) < padLenPrefix {
		return nil, fmt.Errorf("%w: short padded frame", domain.ErrCryptographicFailure)
	}
	n := int(binary.BigEndian.Uint16(padded[:padLenPrefix]))
	if n > len(padded)-padLenPrefix {
		return nil, fmt.Errorf("%w: bad length prefix", domain.ErrCryptographicFailure)
	}

	var acc byte
	for _, b := range padded[padLenPrefix+n:] {
		acc |= b
	}
	if subtle.ConstantTimeByteEq(acc, 0) != 1 {
		return nil, fmt.Errorf("%w: bad padding", domain.ErrCryptographicFailure)
	}
	return padded[padLenPrefix : padLenPrefix+n], nil
}
