// Package memzero wipes key material from byte slices.
package memzero

import "crypto/subtle"

// Zero overwrites b with zero bytes. Use it on shared secrets, derived
// keys and ephemeral private keys as soon as they are no longer needed.
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	subtle.ConstantTimeCopy(1, b, make([]byte, len(b)))
}
