package contact

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/memetcircus/whisper-core/internal/crypto"
	"github.com/memetcircus/whisper-core/internal/domain"
)

var (
	// ErrNotFound is returned when no contact matches the given id.
	ErrNotFound = errors.New("contact not found")
	// ErrInvalidTransition is returned for a trust-level change the state
	// machine does not allow.
	ErrInvalidTransition = errors.New("invalid trust transition")
)

// Service manages contacts in a backing store.
type Service struct {
	store domain.ContactStore
}

// New returns a contact service backed by the given store.
func New(store domain.ContactStore) *Service { return &Service{store: store} }

// Add saves a new, unverified contact. Fingerprint, short fingerprint, SAS
// words and rkid are derived from the agreement key.
func (s *Service) Add(displayName string, agreementPub domain.X25519Public, signingPub domain.Ed25519Public, note string) (domain.Contact, error) {
	now := time.Now()
	c := domain.Contact{
		ID:           uuid.NewString(),
		DisplayName:  displayName,
		AgreementPub: agreementPub,
		SigningPub:   signingPub,
		TrustLevel:   domain.TrustUnverified,
		KeyVersion:   1,
		CreatedAt:    now,
		LastSeenAt:   now,
		Note:         note,
	}
	deriveKeyMaterial(&c)
	if err := s.store.SaveContact(c); err != nil {
		return domain.Contact{}, err
	}
	return c, nil
}

// Verify marks the contact's current keys as confirmed out of band.
func (s *Service) Verify(id string) (domain.Contact, error) {
	return s.transition(id, domain.TrustVerified)
}

// Revoke explicitly withdraws trust from the contact's current keys.
func (s *Service) Revoke(id string) (domain.Contact, error) {
	return s.transition(id, domain.TrustRevoked)
}

// AllowReVerification moves a revoked contact back to unverified so it can be
// verified again.
func (s *Service) AllowReVerification(id string) (domain.Contact, error) {
	return s.transition(id, domain.TrustUnverified)
}

// SetBlocked toggles the contact's blocked flag.
func (s *Service) SetBlocked(id string, blocked bool) (domain.Contact, error) {
	c, ok, err := s.store.GetContact(id)
	if err != nil {
		return domain.Contact{}, err
	}
	if !ok {
		return domain.Contact{}, ErrNotFound
	}
	c.IsBlocked = blocked
	if err := s.store.SaveContact(c); err != nil {
		return domain.Contact{}, err
	}
	return c, nil
}

// RotateKeys replaces the contact's key material. The previous keys move to
// the history (still usable for decrypting earlier envelopes), all derived
// values are recomputed from the new agreement key, and trust is forced back
// to unverified regardless of prior state.
func (s *Service) RotateKeys(id string, newAgreementPub domain.X25519Public, newSigningPub domain.Ed25519Public) (domain.Contact, error) {
	c, ok, err := s.store.GetContact(id)
	if err != nil {
		return domain.Contact{}, err
	}
	if !ok {
		return domain.Contact{}, ErrNotFound
	}

	c.KeyHistory = append(c.KeyHistory, domain.KeyHistoryEntry{
		KeyVersion:   c.KeyVersion,
		AgreementPub: c.AgreementPub,
		SigningPub:   c.SigningPub,
		CreatedAt:    time.Now(),
	})
	c.AgreementPub = newAgreementPub
	c.SigningPub = newSigningPub
	c.KeyVersion++
	c.TrustLevel = domain.TrustUnverified
	deriveKeyMaterial(&c)

	if err := s.store.SaveContact(c); err != nil {
		return domain.Contact{}, err
	}
	return c, nil
}

// Get returns the contact with the given id.
func (s *Service) Get(id string) (domain.Contact, error) {
	c, ok, err := s.store.GetContact(id)
	if err != nil {
		return domain.Contact{}, err
	}
	if !ok {
		return domain.Contact{}, ErrNotFound
	}
	return c, nil
}

// List returns every stored contact.
func (s *Service) List() ([]domain.Contact, error) { return s.store.ListContacts() }

// Search returns contacts matching the query.
func (s *Service) Search(query string) ([]domain.Contact, error) { return s.store.Search(query) }

// ByRecipientKeyID returns the contact whose derived rkid matches exactly.
func (s *Service) ByRecipientKeyID(rkid domain.RecipientKeyID) (domain.Contact, bool, error) {
	return s.store.GetByRecipientKeyID(rkid)
}

func (s *Service) transition(id string, next domain.TrustLevel) (domain.Contact, error) {
	c, ok, err := s.store.GetContact(id)
	if err != nil {
		return domain.Contact{}, err
	}
	if !ok {
		return domain.Contact{}, ErrNotFound
	}
	if !c.TrustLevel.CanTransition(next) {
		return domain.Contact{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, c.TrustLevel, next)
	}
	c.TrustLevel = next
	if err := s.store.SaveContact(c); err != nil {
		return domain.Contact{}, err
	}
	return c, nil
}

// deriveKeyMaterial recomputes every value that is a pure function of the
// current agreement public key.
func deriveKeyMaterial(c *domain.Contact) {
	c.Fingerprint = crypto.Fingerprint(c.AgreementPub)
	c.ShortFingerprint = crypto.ShortFingerprint(c.Fingerprint)
	c.SASWords = crypto.SASWords(c.Fingerprint)
	c.RKID = crypto.RecipientKeyID(c.AgreementPub)
}
