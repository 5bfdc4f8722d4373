// Package envelope implements the Whisper wire codec.
//
// An envelope is a self-describing, versioned, authenticated string that can
// travel over any out-of-band channel (clipboard, QR code, file):
//
//	whisper1:v1.c20p.<rkid>.<flags>.<epk>.<salt>.<msgid>.<ts>.<ct>[.<sig>]
//
// Every field after the version literal is unpadded base64url. The format is
// version-locked to a single algorithm identifier; there is no negotiation
// and no downgrade path.
//
// The package also builds the canonical authenticated context: a
// deterministic, length-prefixed byte string binding a ciphertext to its
// sender, recipient, policy flags and session parameters. The context is both
// the HKDF info input and the AEAD associated data, so a ciphertext cannot be
// replayed into a different context.
package envelope
