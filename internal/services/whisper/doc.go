// Package whisper is the orchestration façade combining the crypto engine,
// envelope codec, replay cache, policy engine and trust model into encrypt,
// decrypt, detect and attribution resolution.
//
// The package owns the generic-error-message contract: every non-policy
// failure collapses into one short, non-revealing user-facing message so a
// caller (or an attacker reading over their shoulder) cannot distinguish a
// wrong key from a tampered ciphertext from a replay. Policy violations keep
// specific, actionable text because they reflect caller configuration, not
// cryptographic state.
package whisper
