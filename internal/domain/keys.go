package domain

// X25519Public is a Curve25519 agreement public key.
type X25519Public [32]byte

func (p X25519Public) Slice() []byte { return p[:] }

// IsZero reports whether the key is unset.
func (p X25519Public) IsZero() bool { return p == X25519Public{} }

// X25519Private is a Curve25519 agreement private key.
type X25519Private [32]byte

func (k X25519Private) Slice() []byte { return k[:] }

func (k X25519Private) IsZero() bool { return k == X25519Private{} }

// Ed25519Public is a signing public key.
type Ed25519Public [32]byte

func (p Ed25519Public) Slice() []byte { return p[:] }

func (p Ed25519Public) IsZero() bool { return p == Ed25519Public{} }

// Ed25519Private is a signing private key (ed25519.PrivateKey layout).
type Ed25519Private [64]byte

func (k Ed25519Private) Slice() []byte { return k[:] }

func (k Ed25519Private) IsZero() bool { return k == Ed25519Private{} }

// Fingerprint is the full SHA-256 digest of an agreement public key.
type Fingerprint [32]byte

func (f Fingerprint) Slice() []byte { return f[:] }

// RecipientKeyID is an 8-byte non-secret routing hint: the trailing 8 bytes
// of a key's fingerprint. It locates the matching identity or contact without
// revealing the key.
type RecipientKeyID [8]byte

func (r RecipientKeyID) Slice() []byte { return r[:] }

// MessageID uniquely identifies an envelope for replay protection.
type MessageID [16]byte

func (m MessageID) Slice() []byte { return m[:] }

// Salt is the per-envelope HKDF salt.
type Salt [16]byte

func (s Salt) Slice() []byte { return s[:] }
