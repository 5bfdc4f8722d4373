package domain

import "context"

// IdentityStore persists local identities. The core never owns the storage
// engine; implementations are injected by the caller.
type IdentityStore interface {
	ListIdentities() ([]Identity, error)
	GetActive() (Identity, bool, error)
	GetByRecipientKeyID(rkid RecipientKeyID) (Identity, bool, error)
	SaveIdentity(id Identity) error
}

// ContactStore persists known peers.
type ContactStore interface {
	ListContacts() ([]Contact, error)
	GetContact(id string) (Contact, bool, error)
	GetByRecipientKeyID(rkid RecipientKeyID) (Contact, bool, error)
	Search(query string) ([]Contact, error)
	SaveContact(c Contact) error
}

// Signer produces signatures for envelope contexts. Implementations may be
// biometric-gated and user-interactive; a dismissed prompt returns
// ErrSigningCancelled.
type Signer interface {
	Sign(ctx context.Context, data []byte, keyID string) ([]byte, error)
}
