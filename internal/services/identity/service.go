package identity

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/memetcircus/whisper-core/internal/crypto"
	"github.com/memetcircus/whisper-core/internal/domain"
	"github.com/memetcircus/whisper-core/internal/policy"
)

var (
	// ErrNoActiveIdentity is returned when an operation needs an active
	// identity and none exists.
	ErrNoActiveIdentity = errors.New("no active identity; generate one first")
	// ErrIdentityNotFound is returned when no identity matches the given id.
	ErrIdentityNotFound = errors.New("identity not found")
	// ErrIdentityRetired is returned when a retired identity (private key
	// material stripped) is asked to become active again.
	ErrIdentityRetired = errors.New("identity key material retired")
)

// Service manages identity key creation and rotation using a backing store.
//
// Each identity carries:
//   - an X25519 key pair for envelope key agreement, and
//   - an optional Ed25519 key pair for envelope signing.
type Service struct {
	store  domain.IdentityStore
	policy *policy.Engine
}

// New returns an identity service backed by the given store and policy engine.
func New(store domain.IdentityStore, pol *policy.Engine) *Service {
	return &Service{store: store, policy: pol}
}

// Generate creates a fresh identity and makes it the active one. Any
// previously active identity is archived but keeps its key material.
func (s *Service) Generate(displayName string, withSigning bool) (domain.Identity, error) {
	id, err := newIdentity(displayName, withSigning, 1)
	if err != nil {
		return domain.Identity{}, err
	}
	if err := s.demoteActive(false); err != nil {
		return domain.Identity{}, err
	}
	if err := s.store.SaveIdentity(id); err != nil {
		return domain.Identity{}, err
	}
	return id, nil
}

// Rotate replaces the active identity with a fresh key version. The old
// identity is archived; when the auto-archive policy is on its private key
// material is stripped, otherwise it stays usable for decrypting envelopes
// addressed to the old key.
func (s *Service) Rotate() (domain.Identity, error) {
	old, ok, err := s.store.GetActive()
	if err != nil {
		return domain.Identity{}, err
	}
	if !ok {
		return domain.Identity{}, ErrNoActiveIdentity
	}

	next, err := newIdentity(old.DisplayName, old.HasSigningKey(), old.KeyVersion+1)
	if err != nil {
		return domain.Identity{}, err
	}
	if err := s.demoteActive(s.policy.ShouldArchiveOnRotation()); err != nil {
		return domain.Identity{}, err
	}
	if err := s.store.SaveIdentity(next); err != nil {
		return domain.Identity{}, err
	}
	return next, nil
}

// Active returns the current active identity.
func (s *Service) Active() (domain.Identity, bool, error) {
	return s.store.GetActive()
}

// SetActive makes the identity with the given id the active one, archiving
// whichever identity was active before. The identity must still hold its
// private key material.
func (s *Service) SetActive(id string) (domain.Identity, error) {
	target, err := s.byID(id)
	if err != nil {
		return domain.Identity{}, err
	}
	if !target.CanDecrypt() {
		return domain.Identity{}, ErrIdentityRetired
	}
	if err := s.demoteActive(false); err != nil {
		return domain.Identity{}, err
	}
	target.Status = domain.IdentityActive
	if err := s.store.SaveIdentity(target); err != nil {
		return domain.Identity{}, err
	}
	return target, nil
}

// Archive archives the identity with the given id, keeping its key material.
// Archiving the active identity leaves no identity active.
func (s *Service) Archive(id string) (domain.Identity, error) {
	target, err := s.byID(id)
	if err != nil {
		return domain.Identity{}, err
	}
	target.Status = domain.IdentityArchived
	if err := s.store.SaveIdentity(target); err != nil {
		return domain.Identity{}, err
	}
	return target, nil
}

func (s *Service) byID(id string) (domain.Identity, error) {
	all, err := s.store.ListIdentities()
	if err != nil {
		return domain.Identity{}, err
	}
	for _, cand := range all {
		if cand.ID == id {
			return cand, nil
		}
	}
	return domain.Identity{}, ErrIdentityNotFound
}

// List returns every stored identity.
func (s *Service) List() ([]domain.Identity, error) {
	return s.store.ListIdentities()
}

// demoteActive archives the active identity, stripping private key material
// when retire is set.
func (s *Service) demoteActive(retire bool) error {
	cur, ok, err := s.store.GetActive()
	if err != nil || !ok {
		return err
	}
	cur.Status = domain.IdentityArchived
	if retire {
		cur.AgreementPriv = domain.X25519Private{}
		cur.SigningPriv = domain.Ed25519Private{}
	}
	return s.store.SaveIdentity(cur)
}

func newIdentity(displayName string, withSigning bool, keyVersion int) (domain.Identity, error) {
	aPriv, aPub, err := crypto.GenerateAgreementKeyPair()
	if err != nil {
		return domain.Identity{}, err
	}
	id := domain.Identity{
		ID:            uuid.NewString(),
		DisplayName:   displayName,
		AgreementPriv: aPriv,
		AgreementPub:  aPub,
		Fingerprint:   crypto.Fingerprint(aPub),
		Status:        domain.IdentityActive,
		KeyVersion:    keyVersion,
		CreatedAt:     time.Now(),
	}
	if withSigning {
		sPriv, sPub, err := crypto.GenerateSigningKeyPair()
		if err != nil {
			return domain.Identity{}, err
		}
		id.SigningPriv = sPriv
		id.SigningPub = sPub
	}
	return id, nil
}
