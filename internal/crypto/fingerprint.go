package crypto

import (
	"crypto/sha256"
	"encoding/base32"

	"github.com/tyler-smith/go-bip39/wordlists"

	"github.com/memetcircus/whisper-core/internal/domain"
)

const (
	// ShortFingerprintLength is the display length of a short fingerprint.
	ShortFingerprintLength = 12
	// SASWordCount is the number of words in a SAS phrase.
	SASWordCount = 6
	// sasWordBits indexes the 2048-entry BIP-39 wordlist.
	sasWordBits = 11
)

// crockford is Douglas Crockford's base32 alphabet: no I, L, O or U, so
// short fingerprints survive transcription by hand.
var crockford = base32.NewEncoding("0123456789ABCDEFGHJKMNPQRSTVWXYZ").WithPadding(base32.NoPadding)

// Fingerprint returns the SHA-256 digest of an agreement public key.
func Fingerprint(pub domain.X25519Public) domain.Fingerprint {
	return sha256.Sum256(pub.Slice())
}

// RecipientKeyID derives the 8-byte routing hint from an agreement public
// key: the trailing 8 bytes of its fingerprint. Non-reversible and not a
// secret.
func RecipientKeyID(pub domain.X25519Public) domain.RecipientKeyID {
	fp := Fingerprint(pub)
	var rkid domain.RecipientKeyID
	copy(rkid[:], fp[len(fp)-len(rkid):])
	return rkid
}

// ShortFingerprint renders the first 12 Crockford base32 characters of a
// fingerprint for human comparison.
func ShortFingerprint(fp domain.Fingerprint) string {
	return crockford.EncodeToString(fp.Slice())[:ShortFingerprintLength]
}

// SASWords derives a 6-word phrase from a fingerprint for out-of-band
// verification. Each word indexes the BIP-39 English wordlist with 11
// consecutive bits of the digest.
func SASWords(fp domain.Fingerprint) []string {
	words := make([]string, SASWordCount)
	for i := range words {
		words[i] = wordlists.English[bitsAt(fp.Slice(), i*sasWordBits, sasWordBits)]
	}
	return words
}

// bitsAt extracts width bits starting at bit offset off, most significant
// bit first.
func bitsAt(b []byte, off, width int) int {
	v := 0
	for i := 0; i < width; i++ {
		bit := (b[(off+i)/8] >> (7 - (off+i)%8)) & 1
		v = v<<1 | int(bit)
	}
	return v
}
