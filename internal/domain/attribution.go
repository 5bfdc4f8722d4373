package domain

// AttributionKind classifies who a decrypted envelope came from and with what
// signature status.
type AttributionKind int

const (
	// AttributionUnknown: unsigned envelope, no contact matched.
	AttributionUnknown AttributionKind = iota
	// AttributionUnsigned: no signature, but the recipient key id matched a
	// known contact's derived rkid exactly.
	AttributionUnsigned
	// AttributionSigned: a known contact's signing key verified the signature.
	AttributionSigned
	// AttributionSignedUnknown: a signature is present but no known key can
	// verify it; the signer is unknown to us.
	AttributionSignedUnknown
	// AttributionInvalidSignature: the contact we expected to have signed this
	// envelope has a signing key, and verification failed.
	AttributionInvalidSignature
)

// String returns a short name for the attribution kind.
func (k AttributionKind) String() string {
	switch k {
	case AttributionUnsigned:
		return "unsigned"
	case AttributionSigned:
		return "signed"
	case AttributionSignedUnknown:
		return "signedUnknown"
	case AttributionInvalidSignature:
		return "invalidSignature"
	default:
		return "unknown"
	}
}

// Attribution is the resolved claim about an envelope's sender. ContactName
// and TrustLevel are meaningful only for the Signed, Unsigned and
// InvalidSignature kinds.
type Attribution struct {
	Kind        AttributionKind
	ContactName string
	TrustLevel  TrustLevel
}
