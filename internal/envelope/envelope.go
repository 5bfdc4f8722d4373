package envelope

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/memetcircus/whisper-core/internal/crypto"
	"github.com/memetcircus/whisper-core/internal/domain"
)

const (
	// Prefix marks a string as a Whisper envelope.
	Prefix = "whisper1:"
	// Version is the single supported algorithm identifier:
	// X25519 + HKDF-SHA256 + ChaCha20-Poly1305 + Ed25519.
	Version = "v1.c20p"

	// FlagHasSignature is set in the flags byte when a signature field is
	// appended.
	FlagHasSignature = 0x01

	// The version literal contains one dot, so a split of the post-prefix
	// body yields these segment counts.
	segmentsUnsigned = 9
	segmentsSigned   = 10

	timestampSize = 8
	flagsSize     = 1

	// Ciphertext is never smaller than the smallest padding bucket plus the
	// AEAD tag.
	minCiphertext = 256 + crypto.Overhead
)

var b64 = base64.RawURLEncoding

// Components is a parsed envelope. Immutable once constructed: produced by
// the codec, consumed by the crypto engine.
type Components struct {
	Version      string
	RKID         domain.RecipientKeyID
	Flags        byte
	EphemeralPub domain.X25519Public
	Salt         domain.Salt
	MessageID    domain.MessageID
	Timestamp    int64
	Ciphertext   []byte
	Signature    []byte
}

// HasSignature reports whether the signature flag bit is set.
func (c Components) HasSignature() bool { return c.Flags&FlagHasSignature != 0 }

// Encode serialises components to the wire string.
func Encode(c Components) string {
	var ts [timestampSize]byte
	binary.BigEndian.PutUint64(ts[:], uint64(c.Timestamp))

	var sb strings.Builder
	sb.WriteString(Prefix)
	sb.WriteString(c.Version)
	for _, field := range [][]byte{
		c.RKID.Slice(),
		{c.Flags},
		c.EphemeralPub.Slice(),
		c.Salt.Slice(),
		c.MessageID.Slice(),
		ts[:],
		c.Ciphertext,
	} {
		sb.WriteByte('.')
		sb.WriteString(b64.EncodeToString(field))
	}
	if c.HasSignature() {
		sb.WriteByte('.')
		sb.WriteString(b64.EncodeToString(c.Signature))
	}
	return sb.String()
}

// Parse validates and decodes a wire string. Surrounding whitespace is
// ignored, matching Detect. Any deviation from the format (wrong prefix,
// wrong version literal, wrong segment count, an empty or malformed field,
// a size mismatch, or a flags/signature disagreement) fails with
// ErrInvalidEnvelope and never partially parses.
func Parse(wire string) (Components, error) {
	var c Components

	body, ok := strings.CutPrefix(strings.TrimSpace(wire), Prefix)
	if !ok {
		return c, fmt.Errorf("%w: missing prefix", domain.ErrInvalidEnvelope)
	}
	segs := strings.Split(body, ".")
	if len(segs) != segmentsUnsigned && len(segs) != segmentsSigned {
		return c, fmt.Errorf("%w: %d segments", domain.ErrInvalidEnvelope, len(segs))
	}

	// Strict algorithm lock: the two leading segments must spell the one
	// supported version literal exactly.
	c.Version = segs[0] + "." + segs[1]
	if c.Version != Version {
		return c, fmt.Errorf("%w: unsupported version %q", domain.ErrInvalidEnvelope, c.Version)
	}

	fields := segs[2:]
	rkid, err := decodeField(fields[0], len(c.RKID))
	if err != nil {
		return c, err
	}
	copy(c.RKID[:], rkid)

	flags, err := decodeField(fields[1], flagsSize)
	if err != nil {
		return c, err
	}
	c.Flags = flags[0]

	epk, err := decodeField(fields[2], len(c.EphemeralPub))
	if err != nil {
		return c, err
	}
	copy(c.EphemeralPub[:], epk)

	salt, err := decodeField(fields[3], len(c.Salt))
	if err != nil {
		return c, err
	}
	copy(c.Salt[:], salt)

	msgid, err := decodeField(fields[4], len(c.MessageID))
	if err != nil {
		return c, err
	}
	copy(c.MessageID[:], msgid)

	ts, err := decodeField(fields[5], timestampSize)
	if err != nil {
		return c, err
	}
	c.Timestamp = int64(binary.BigEndian.Uint64(ts))

	c.Ciphertext, err = decodeField(fields[6], -1)
	if err != nil {
		return c, err
	}
	if len(c.Ciphertext) < minCiphertext {
		return c, fmt.Errorf("%w: ciphertext too short", domain.ErrInvalidEnvelope)
	}

	signed := len(segs) == segmentsSigned
	if signed != c.HasSignature() {
		return c, fmt.Errorf("%w: flags disagree with signature presence", domain.ErrInvalidEnvelope)
	}
	if signed {
		c.Signature, err = decodeField(fields[7], crypto.SignatureSize)
		if err != nil {
			return c, err
		}
	}
	return c, nil
}

// Detect is a cheap prefix/shape check for whether text looks like a Whisper
// envelope. It never decodes field contents.
func Detect(text string) bool {
	body, ok := strings.CutPrefix(strings.TrimSpace(text), Prefix)
	if !ok {
		return false
	}
	n := strings.Count(body, ".") + 1
	return n == segmentsUnsigned || n == segmentsSigned
}

// decodeField decodes one base64url segment; size -1 means variable length.
func decodeField(s string, size int) ([]byte, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty field", domain.ErrInvalidEnvelope)
	}
	b, err := b64.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: bad base64url", domain.ErrInvalidEnvelope)
	}
	if size >= 0 && len(b) != size {
		return nil, fmt.Errorf("%w: field size %d, want %d", domain.ErrInvalidEnvelope, len(b), size)
	}
	return b, nil
}
