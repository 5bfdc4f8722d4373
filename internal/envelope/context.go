package envelope

import (
	"encoding/binary"

	"github.com/memetcircus/whisper-core/internal/domain"
)

// contextAppID namespaces the canonical context against other protocols that
// might reuse the same keys.
const contextAppID = "whisper1"

// ContextParams collects every field bound into the canonical context. The
// sender fingerprint is the fingerprint of the ephemeral public key, the
// only sender-side value a recipient can reconstruct from the envelope alone.
type ContextParams struct {
	Version              string
	SenderFingerprint    domain.Fingerprint
	RecipientFingerprint domain.Fingerprint
	Flags                byte
	RKID                 domain.RecipientKeyID
	EphemeralPub         domain.X25519Public
	Salt                 domain.Salt
	MessageID            domain.MessageID
	Timestamp            int64
}

// BuildContext produces the deterministic byte string binding a ciphertext to
// its sender, recipient, policy flags and session parameters. Variable-length
// fields carry a 4-byte big-endian length prefix; the flags byte and the
// timestamp are fixed width and appended big-endian directly. Equal inputs
// always yield byte-identical output, and any one differing field changes it.
func BuildContext(p ContextParams) []byte {
	out := make([]byte, 0, 256)
	out = appendPrefixed(out, []byte(contextAppID))
	out = appendPrefixed(out, []byte(p.Version))
	out = appendPrefixed(out, p.SenderFingerprint.Slice())
	out = appendPrefixed(out, p.RecipientFingerprint.Slice())
	out = append(out, p.Flags)
	out = appendPrefixed(out, p.RKID.Slice())
	out = appendPrefixed(out, p.EphemeralPub.Slice())
	out = appendPrefixed(out, p.Salt.Slice())
	out = appendPrefixed(out, p.MessageID.Slice())
	out = binary.BigEndian.AppendUint64(out, uint64(p.Timestamp))
	return out
}

// SigningInput is the byte string covered by the optional envelope signature.
func SigningInput(context, ciphertext []byte) []byte {
	in := make([]byte, 0, len(context)+len(ciphertext))
	in = append(in, context...)
	in = append(in, ciphertext...)
	return in
}

func appendPrefixed(out, field []byte) []byte {
	out = binary.BigEndian.AppendUint32(out, uint32(len(field)))
	return append(out, field...)
}
