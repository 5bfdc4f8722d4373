package store_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/memetcircus/whisper-core/internal/crypto"
	"github.com/memetcircus/whisper-core/internal/domain"
	"github.com/memetcircus/whisper-core/internal/store"
)

func makeIdentity(t *testing.T, name string, active bool) domain.Identity {
	t.Helper()
	aPriv, aPub, err := crypto.GenerateAgreementKeyPair()
	if err != nil {
		t.Fatalf("GenerateAgreementKeyPair: %v", err)
	}
	sPriv, sPub, err := crypto.GenerateSigningKeyPair()
	if err != nil {
		t.Fatalf("GenerateSigningKeyPair: %v", err)
	}
	status := domain.IdentityArchived
	if active {
		status = domain.IdentityActive
	}
	return domain.Identity{
		ID:            "id-" + name,
		DisplayName:   name,
		AgreementPriv: aPriv,
		AgreementPub:  aPub,
		SigningPriv:   sPriv,
		SigningPub:    sPub,
		Fingerprint:   crypto.Fingerprint(aPub),
		Status:        status,
		KeyVersion:    1,
		CreatedAt:     time.Now(),
	}
}

func TestIdentityFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := store.NewIdentityFileStore(dir, "correct horse")

	id := makeIdentity(t, "alice", true)
	if err := s.SaveIdentity(id); err != nil {
		t.Fatalf("SaveIdentity: %v", err)
	}

	// A fresh store over the same directory sees the identity.
	reopened := store.NewIdentityFileStore(dir, "correct horse")
	got, ok, err := reopened.GetActive()
	if err != nil || !ok {
		t.Fatalf("GetActive: ok=%v err=%v", ok, err)
	}
	if got.ID != id.ID || got.AgreementPriv != id.AgreementPriv || got.SigningPriv != id.SigningPriv {
		t.Fatalf("reloaded identity differs from saved one")
	}

	byRKID, ok, err := reopened.GetByRecipientKeyID(crypto.RecipientKeyID(id.AgreementPub))
	if err != nil || !ok {
		t.Fatalf("GetByRecipientKeyID: ok=%v err=%v", ok, err)
	}
	if byRKID.ID != id.ID {
		t.Fatalf("rkid lookup returned wrong identity")
	}
}

func TestIdentityFileStore_WrongPassphrase(t *testing.T) {
	dir := t.TempDir()
	s := store.NewIdentityFileStore(dir, "correct horse")
	if err := s.SaveIdentity(makeIdentity(t, "alice", true)); err != nil {
		t.Fatalf("SaveIdentity: %v", err)
	}

	wrong := store.NewIdentityFileStore(dir, "battery staple")
	if _, _, err := wrong.GetActive(); err == nil {
		t.Fatalf("GetActive with wrong passphrase succeeded")
	}
}

func TestIdentityFileStore_FileIsEncrypted(t *testing.T) {
	dir := t.TempDir()
	s := store.NewIdentityFileStore(dir, "pw")
	id := makeIdentity(t, "alice", true)
	if err := s.SaveIdentity(id); err != nil {
		t.Fatalf("SaveIdentity: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "identities.json.enc"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if strings.Contains(string(raw), id.DisplayName) {
		t.Fatalf("identity file leaks plaintext fields")
	}
}

// Saves replace the identity file atomically: repeated writes leave exactly
// one intact file behind and no temporary siblings.
func TestIdentityFileStore_AtomicSave(t *testing.T) {
	dir := t.TempDir()
	s := store.NewIdentityFileStore(dir, "pw")

	var last domain.Identity
	for i := 0; i < 3; i++ {
		last = makeIdentity(t, fmt.Sprintf("alice-%d", i), i == 2)
		if err := s.SaveIdentity(last); err != nil {
			t.Fatalf("SaveIdentity: %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "identities.json.enc" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("directory holds %v, want only identities.json.enc", names)
	}

	got, ok, err := store.NewIdentityFileStore(dir, "pw").GetActive()
	if err != nil || !ok {
		t.Fatalf("GetActive after repeated saves: ok=%v err=%v", ok, err)
	}
	if got.ID != last.ID {
		t.Fatalf("reloaded identity %q, want %q", got.ID, last.ID)
	}
}

func TestIdentityFileStore_ListSortsNewestFirst(t *testing.T) {
	s := store.NewIdentityFileStore(t.TempDir(), "pw")

	old := makeIdentity(t, "v1", false)
	old.KeyVersion = 1
	cur := makeIdentity(t, "v2", true)
	cur.KeyVersion = 2
	if err := s.SaveIdentity(old); err != nil {
		t.Fatalf("SaveIdentity: %v", err)
	}
	if err := s.SaveIdentity(cur); err != nil {
		t.Fatalf("SaveIdentity: %v", err)
	}

	all, err := s.ListIdentities()
	if err != nil {
		t.Fatalf("ListIdentities: %v", err)
	}
	if len(all) != 2 || all[0].KeyVersion != 2 {
		t.Fatalf("ListIdentities order: got %d entries, first version %d", len(all), all[0].KeyVersion)
	}
}

func makeContact(t *testing.T, name string) domain.Contact {
	t.Helper()
	_, aPub, err := crypto.GenerateAgreementKeyPair()
	if err != nil {
		t.Fatalf("GenerateAgreementKeyPair: %v", err)
	}
	fp := crypto.Fingerprint(aPub)
	return domain.Contact{
		ID:               "contact-" + name,
		DisplayName:      name,
		AgreementPub:     aPub,
		Fingerprint:      fp,
		ShortFingerprint: crypto.ShortFingerprint(fp),
		SASWords:         crypto.SASWords(fp),
		RKID:             crypto.RecipientKeyID(aPub),
		TrustLevel:       domain.TrustUnverified,
		KeyVersion:       1,
		CreatedAt:        time.Now(),
	}
}

func TestContactFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := store.NewContactFileStore(dir)

	bob := makeContact(t, "Bob")
	if err := s.SaveContact(bob); err != nil {
		t.Fatalf("SaveContact: %v", err)
	}

	reopened := store.NewContactFileStore(dir)
	got, ok, err := reopened.GetContact(bob.ID)
	if err != nil || !ok {
		t.Fatalf("GetContact: ok=%v err=%v", ok, err)
	}
	if got.DisplayName != "Bob" || got.AgreementPub != bob.AgreementPub || got.RKID != bob.RKID {
		t.Fatalf("reloaded contact differs from saved one")
	}

	byRKID, ok, err := reopened.GetByRecipientKeyID(bob.RKID)
	if err != nil || !ok {
		t.Fatalf("GetByRecipientKeyID: ok=%v err=%v", ok, err)
	}
	if byRKID.ID != bob.ID {
		t.Fatalf("rkid lookup returned wrong contact")
	}
}

func TestContactFileStore_Search(t *testing.T) {
	s := store.NewContactFileStore(t.TempDir())

	bob := makeContact(t, "Bob Marley")
	bob.Note = "reggae"
	carol := makeContact(t, "Carol")
	for _, c := range []domain.Contact{bob, carol} {
		if err := s.SaveContact(c); err != nil {
			t.Fatalf("SaveContact: %v", err)
		}
	}

	hits, err := s.Search("marley")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != bob.ID {
		t.Fatalf("Search(marley): got %d hits", len(hits))
	}

	hits, err = s.Search("REGGAE")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("note search is not case-insensitive")
	}

	hits, err = s.Search("nobody")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 0 {
		t.Fatalf("Search(nobody): got %d hits, want 0", len(hits))
	}
}

func TestStores_EmptyDirectory(t *testing.T) {
	dir := t.TempDir()

	ids := store.NewIdentityFileStore(dir, "pw")
	if _, ok, err := ids.GetActive(); err != nil || ok {
		t.Fatalf("GetActive on empty dir: ok=%v err=%v", ok, err)
	}
	all, err := ids.ListIdentities()
	if err != nil || len(all) != 0 {
		t.Fatalf("ListIdentities on empty dir: %d entries, err=%v", len(all), err)
	}

	contacts := store.NewContactFileStore(dir)
	list, err := contacts.ListContacts()
	if err != nil || len(list) != 0 {
		t.Fatalf("ListContacts on empty dir: %d entries, err=%v", len(list), err)
	}
}
