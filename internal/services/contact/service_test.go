package contact_test

import (
	"errors"
	"testing"

	"github.com/memetcircus/whisper-core/internal/crypto"
	"github.com/memetcircus/whisper-core/internal/domain"
	"github.com/memetcircus/whisper-core/internal/services/contact"
)

// memContactStore is an in-memory domain.ContactStore for tests.
type memContactStore struct {
	contacts map[string]domain.Contact
}

func newMemContactStore() *memContactStore {
	return &memContactStore{contacts: make(map[string]domain.Contact)}
}

func (s *memContactStore) ListContacts() ([]domain.Contact, error) {
	out := make([]domain.Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		out = append(out, c)
	}
	return out, nil
}

func (s *memContactStore) GetContact(id string) (domain.Contact, bool, error) {
	c, ok := s.contacts[id]
	return c, ok, nil
}

func (s *memContactStore) GetByRecipientKeyID(rkid domain.RecipientKeyID) (domain.Contact, bool, error) {
	for _, c := range s.contacts {
		if c.RKID == rkid {
			return c, true, nil
		}
	}
	return domain.Contact{}, false, nil
}

func (s *memContactStore) Search(string) ([]domain.Contact, error) { return s.ListContacts() }

func (s *memContactStore) SaveContact(c domain.Contact) error {
	s.contacts[c.ID] = c
	return nil
}

func freshKeys(t *testing.T) (domain.X25519Public, domain.Ed25519Public) {
	t.Helper()
	_, aPub, err := crypto.GenerateAgreementKeyPair()
	if err != nil {
		t.Fatalf("GenerateAgreementKeyPair: %v", err)
	}
	_, sPub, err := crypto.GenerateSigningKeyPair()
	if err != nil {
		t.Fatalf("GenerateSigningKeyPair: %v", err)
	}
	return aPub, sPub
}

func TestAdd_DerivesKeyMaterial(t *testing.T) {
	svc := contact.New(newMemContactStore())
	aPub, sPub := freshKeys(t)

	c, err := svc.Add("Bob", aPub, sPub, "met at the conference")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if c.TrustLevel != domain.TrustUnverified {
		t.Fatalf("new contact trust = %v, want unverified", c.TrustLevel)
	}
	if c.Fingerprint != crypto.Fingerprint(aPub) {
		t.Fatalf("fingerprint not derived from agreement key")
	}
	if c.RKID != crypto.RecipientKeyID(aPub) {
		t.Fatalf("rkid not derived from agreement key")
	}
	if c.ShortFingerprint != crypto.ShortFingerprint(c.Fingerprint) {
		t.Fatalf("short fingerprint not derived from fingerprint")
	}
	if len(c.SASWords) != crypto.SASWordCount {
		t.Fatalf("got %d SAS words, want %d", len(c.SASWords), crypto.SASWordCount)
	}
	if c.KeyVersion != 1 || len(c.KeyHistory) != 0 {
		t.Fatalf("new contact key version %d / history %d, want 1 / 0", c.KeyVersion, len(c.KeyHistory))
	}
}

func TestTrustTransitions(t *testing.T) {
	svc := contact.New(newMemContactStore())
	aPub, sPub := freshKeys(t)
	c, err := svc.Add("Bob", aPub, sPub, "")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	// The only legal cycle: unverified -> verified -> revoked -> unverified.
	if c, err = svc.Verify(c.ID); err != nil || c.TrustLevel != domain.TrustVerified {
		t.Fatalf("Verify: %v (trust %v)", err, c.TrustLevel)
	}
	if c, err = svc.Revoke(c.ID); err != nil || c.TrustLevel != domain.TrustRevoked {
		t.Fatalf("Revoke: %v (trust %v)", err, c.TrustLevel)
	}
	if c, err = svc.AllowReVerification(c.ID); err != nil || c.TrustLevel != domain.TrustUnverified {
		t.Fatalf("AllowReVerification: %v (trust %v)", err, c.TrustLevel)
	}

	// Illegal moves are rejected: unverified -> revoked, then once verified,
	// verified -> verified.
	if _, err := svc.Revoke(c.ID); !errors.Is(err, contact.ErrInvalidTransition) {
		t.Fatalf("Revoke from unverified: got %v, want ErrInvalidTransition", err)
	}
	if _, err := svc.Verify(c.ID); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if _, err := svc.Verify(c.ID); !errors.Is(err, contact.ErrInvalidTransition) {
		t.Fatalf("Verify from verified: got %v, want ErrInvalidTransition", err)
	}
	if _, err := svc.AllowReVerification(c.ID); !errors.Is(err, contact.ErrInvalidTransition) {
		t.Fatalf("AllowReVerification from verified: got %v, want ErrInvalidTransition", err)
	}
}

func TestRotateKeys_ForcesReVerification(t *testing.T) {
	svc := contact.New(newMemContactStore())
	oldAgreement, oldSigning := freshKeys(t)
	c, err := svc.Add("Bob", oldAgreement, oldSigning, "")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if c, err = svc.Verify(c.ID); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	newAgreement, newSigning := freshKeys(t)
	c, err = svc.RotateKeys(c.ID, newAgreement, newSigning)
	if err != nil {
		t.Fatalf("RotateKeys: %v", err)
	}

	if c.TrustLevel != domain.TrustUnverified {
		t.Fatalf("trust after rotation = %v, want unverified", c.TrustLevel)
	}
	if !c.NeedsReVerification() {
		t.Fatalf("rotated contact does not report needing re-verification")
	}
	if c.KeyVersion != 2 {
		t.Fatalf("key version after rotation = %d, want 2", c.KeyVersion)
	}
	if len(c.KeyHistory) != 1 {
		t.Fatalf("key history length = %d, want 1", len(c.KeyHistory))
	}
	h := c.KeyHistory[0]
	if h.KeyVersion != 1 || h.AgreementPub != oldAgreement || h.SigningPub != oldSigning {
		t.Fatalf("key history entry does not preserve the superseded keys")
	}

	// Every derived value follows the new agreement key.
	if c.Fingerprint != crypto.Fingerprint(newAgreement) {
		t.Fatalf("fingerprint not recomputed after rotation")
	}
	if c.RKID != crypto.RecipientKeyID(newAgreement) {
		t.Fatalf("rkid not recomputed after rotation")
	}
	if c.RKID == crypto.RecipientKeyID(oldAgreement) {
		t.Fatalf("rkid still matches the old key")
	}
}

func TestSetBlocked(t *testing.T) {
	svc := contact.New(newMemContactStore())
	aPub, sPub := freshKeys(t)
	c, err := svc.Add("Mallory", aPub, sPub, "")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if c, err = svc.SetBlocked(c.ID, true); err != nil || !c.IsBlocked {
		t.Fatalf("SetBlocked(true): %v blocked=%v", err, c.IsBlocked)
	}
	if c, err = svc.SetBlocked(c.ID, false); err != nil || c.IsBlocked {
		t.Fatalf("SetBlocked(false): %v blocked=%v", err, c.IsBlocked)
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := contact.New(newMemContactStore())
	if _, err := svc.Get("missing"); !errors.Is(err, contact.ErrNotFound) {
		t.Fatalf("Get(missing): got %v, want ErrNotFound", err)
	}
	if _, err := svc.Verify("missing"); !errors.Is(err, contact.ErrNotFound) {
		t.Fatalf("Verify(missing): got %v, want ErrNotFound", err)
	}
}
