// Package crypto exposes the primitive engine used by Whisper Core.
//
// Contents
//
//   - X25519 key generation, clamping and Diffie–Hellman agreement
//     (GenerateAgreementKeyPair, GenerateEphemeralKeyPair, Agree)
//   - Ed25519 key generation, signing and verification
//     (GenerateSigningKeyPair, Sign, Verify)
//   - HKDF-SHA256 key and nonce derivation with independent info strings
//     (DeriveKeys)
//   - ChaCha20-Poly1305 AEAD seal/open (Seal, Open)
//   - Fingerprint, short fingerprint, SAS word and recipient-key-id
//     derivation (Fingerprint, ShortFingerprint, SASWords, RecipientKeyID)
//   - Bucketed padding with constant-time unpadding (Pad, Unpad)
//   - Secure random bytes (Random)
//
// # Notes
//
// All functions are stateless and safe for concurrent use. Fixed-size array
// types from internal/domain avoid accidental reallocations. Callers should
// treat returned secrets as sensitive and rely on memzero.Zero when practical
// to reduce lifetime in memory. The engine never logs or persists private key
// bytes.
package crypto
