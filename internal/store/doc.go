// Package store provides file-based persistence for Whisper Core's records.
//
// It contains concrete implementations of the domain storage interfaces,
// serialising data as JSON on disk. Identity key material is encrypted at
// rest with a passphrase-derived key; contacts hold public data only and are
// stored in the clear. All methods are concurrency-safe via internal locking.
// Stored files live under the caller's configured home directory.
//
// The package includes:
//   - Identities (IdentityFileStore, encrypted)
//   - Contacts (ContactFileStore)
package store
