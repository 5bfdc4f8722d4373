package store

import (
	"encoding/json"
	"path/filepath"
	"sort"
	"sync"

	"github.com/memetcircus/whisper-core/internal/crypto"
	"github.com/memetcircus/whisper-core/internal/domain"
)

const identitiesFilename = "identities.json.enc"

// IdentityFileStore persists local identities to disk, encrypted with a
// passphrase-derived key.
type IdentityFileStore struct {
	dir        string
	passphrase string
	mu         sync.Mutex
}

// NewIdentityFileStore returns an IdentityFileStore rooted at dir.
func NewIdentityFileStore(dir, passphrase string) *IdentityFileStore {
	return &IdentityFileStore{dir: dir, passphrase: passphrase}
}

// ListIdentities returns every stored identity, newest key version first.
func (s *IdentityFileStore) ListIdentities() ([]domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Identity, 0, len(m))
	for _, id := range m {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].KeyVersion > out[j].KeyVersion })
	return out, nil
}

// GetActive returns the single active identity, if any.
func (s *IdentityFileStore) GetActive() (domain.Identity, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return domain.Identity{}, false, err
	}
	for _, id := range m {
		if id.Status == domain.IdentityActive {
			return id, true, nil
		}
	}
	return domain.Identity{}, false, nil
}

// GetByRecipientKeyID returns the identity whose agreement key derives rkid.
func (s *IdentityFileStore) GetByRecipientKeyID(rkid domain.RecipientKeyID) (domain.Identity, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return domain.Identity{}, false, err
	}
	for _, id := range m {
		if crypto.RecipientKeyID(id.AgreementPub) == rkid {
			return id, true, nil
		}
	}
	return domain.Identity{}, false, nil
}

// SaveIdentity inserts or replaces one identity.
func (s *IdentityFileStore) SaveIdentity(id domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return err
	}
	m[id.ID] = id
	return s.save(m)
}

func (s *IdentityFileStore) load() (map[string]domain.Identity, error) {
	m := make(map[string]domain.Identity)
	b, err := readFile(filepath.Join(s.dir, identitiesFilename))
	if err != nil {
		return nil, err
	}
	if b == nil {
		return m, nil
	}
	raw, err := openBlob(s.passphrase, b)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *IdentityFileStore) save(m map[string]domain.Identity) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	ct, err := sealBlob(s.passphrase, raw)
	if err != nil {
		return err
	}
	// Key material goes through the same atomic replace as every other
	// store file; a crash mid-write must never corrupt stored identities.
	return writeFile(filepath.Join(s.dir, identitiesFilename), ct, 0o600)
}

// Compile-time assertion that IdentityFileStore implements domain.IdentityStore.
var _ domain.IdentityStore = (*IdentityFileStore)(nil)
