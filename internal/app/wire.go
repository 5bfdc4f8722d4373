package app

import (
	"path/filepath"

	"github.com/memetcircus/whisper-core/internal/policy"
	"github.com/memetcircus/whisper-core/internal/replay"
	contactsvc "github.com/memetcircus/whisper-core/internal/services/contact"
	identitysvc "github.com/memetcircus/whisper-core/internal/services/identity"
	whispersvc "github.com/memetcircus/whisper-core/internal/services/whisper"
	"github.com/memetcircus/whisper-core/internal/store"
)

const replayDBFilename = "replay.db"

// Wire bundles all stores and services for the CLI.
type Wire struct {
	Identities *identitysvc.Service
	Contacts   *contactsvc.Service
	Whisper    *whispersvc.Service
	Replay     *replay.Cache

	replayStore replay.Store
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	identityStore := store.NewIdentityFileStore(cfg.Home, cfg.Passphrase)
	contactStore := store.NewContactFileStore(cfg.Home)

	replayStore, err := replay.OpenBoltStore(filepath.Join(cfg.Home, replayDBFilename))
	if err != nil {
		return nil, err
	}
	cache := replay.NewCache(replayStore, cfg.Logger)

	engine := policy.New(cfg.Policy)
	signer := &whispersvc.LocalSigner{Identities: identityStore}

	return &Wire{
		Identities:  identitysvc.New(identityStore, engine),
		Contacts:    contactsvc.New(contactStore),
		Whisper:     whispersvc.New(identityStore, contactStore, cache, engine, signer, cfg.Logger),
		Replay:      cache,
		replayStore: replayStore,
	}, nil
}

// Close releases the replay database.
func (w *Wire) Close() error { return w.replayStore.Close() }
