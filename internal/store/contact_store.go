package store

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/memetcircus/whisper-core/internal/domain"
)

const contactsFilename = "contacts.json"

// ContactFileStore persists contacts to disk as plain JSON; contacts hold
// public key material only.
type ContactFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewContactFileStore returns a ContactFileStore rooted at dir.
func NewContactFileStore(dir string) *ContactFileStore {
	return &ContactFileStore{dir: dir}
}

// ListContacts returns every stored contact.
func (s *ContactFileStore) ListContacts() ([]domain.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Contact, 0, len(m))
	for _, c := range m {
		out = append(out, c)
	}
	return out, nil
}

// GetContact returns the contact with the given id.
func (s *ContactFileStore) GetContact(id string) (domain.Contact, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return domain.Contact{}, false, err
	}
	c, ok := m[id]
	return c, ok, nil
}

// GetByRecipientKeyID returns the contact whose derived rkid matches exactly.
func (s *ContactFileStore) GetByRecipientKeyID(rkid domain.RecipientKeyID) (domain.Contact, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return domain.Contact{}, false, err
	}
	for _, c := range m {
		if c.RKID == rkid {
			return c, true, nil
		}
	}
	return domain.Contact{}, false, nil
}

// Search returns contacts whose display name or note contains the query,
// case-insensitively.
func (s *ContactFileStore) Search(query string) ([]domain.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	var out []domain.Contact
	for _, c := range m {
		if strings.Contains(strings.ToLower(c.DisplayName), q) ||
			strings.Contains(strings.ToLower(c.Note), q) {
			out = append(out, c)
		}
	}
	return out, nil
}

// SaveContact inserts or replaces one contact.
func (s *ContactFileStore) SaveContact(c domain.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return err
	}
	m[c.ID] = c
	return writeJSON(filepath.Join(s.dir, contactsFilename), m, 0o600)
}

func (s *ContactFileStore) load() (map[string]domain.Contact, error) {
	m := make(map[string]domain.Contact)
	if err := readJSON(filepath.Join(s.dir, contactsFilename), &m); err != nil {
		return nil, err
	}
	return m, nil
}

// Compile-time assertion that ContactFileStore implements domain.ContactStore.
var _ domain.ContactStore = (*ContactFileStore)(nil)
