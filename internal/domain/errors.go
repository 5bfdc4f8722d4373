package domain

import "errors"

// Error taxonomy for the messaging core. Internal call sites wrap these with
// diagnostic detail via fmt.Errorf("...: %w", err); the user-facing surface
// collapses them into short, non-revealing messages so a caller cannot
// distinguish a wrong key from a tampered ciphertext.
var (
	// ErrInvalidEnvelope is returned for malformed, unparseable, or
	// wrong-algorithm wire strings.
	ErrInvalidEnvelope = errors.New("invalid envelope")

	// ErrReplayDetected is returned when an envelope's message id has been
	// seen before. Permanent for that envelope.
	ErrReplayDetected = errors.New("replay detected")

	// ErrMessageExpired is returned when an envelope's timestamp falls
	// outside the freshness window. Permanent for that envelope.
	ErrMessageExpired = errors.New("message expired")

	// ErrMessageNotForMe is returned when no known identity matches the
	// envelope's recipient key id.
	ErrMessageNotForMe = errors.New("message not addressed to a known identity")

	// ErrCryptographicFailure covers AEAD authentication failures, bad
	// padding, and signature mismatches treated as hard failures.
	ErrCryptographicFailure = errors.New("cryptographic failure")

	// ErrRandomGenerationFailure is returned when the platform entropy
	// source fails.
	ErrRandomGenerationFailure = errors.New("random generation failure")

	// ErrSigningKeyUnavailable is returned when a signature was requested
	// but the sender identity has no signing key.
	ErrSigningKeyUnavailable = errors.New("sender identity has no signing key")

	// ErrSigningCancelled is returned by a Signer when the user dismisses a
	// biometric prompt. The orchestration layer maps it to a policy
	// violation and never retries.
	ErrSigningCancelled = errors.New("signing cancelled")
)
