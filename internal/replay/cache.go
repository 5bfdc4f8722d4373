package replay

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/memetcircus/whisper-core/internal/domain"
)

const (
	// FreshnessWindow bounds acceptable clock skew and deliberate delay in
	// either direction.
	FreshnessWindow = 48 * time.Hour
	// Retention is how long committed entries are kept.
	Retention = 30 * 24 * time.Hour
	// MaxEntries caps the store; cleanup evicts oldest-first above it.
	MaxEntries = 10_000

	// evictBatch bounds how long one cleanup slice holds the lock.
	evictBatch = 512
)

var (
	// ErrReplayed means the message id was committed before.
	ErrReplayed = errors.New("message id already seen")
	// ErrExpired means the timestamp fell outside the freshness window.
	ErrExpired = errors.New("timestamp outside freshness window")
)

// Cache is the atomic "have I seen this message id, and is it fresh" store.
type Cache struct {
	mu    sync.Mutex
	store Store
	log   zerolog.Logger
}

// NewCache wraps a Store.
func NewCache(store Store, log zerolog.Logger) *Cache {
	return &Cache{store: store, log: log}
}

// IsWithinFreshnessWindow reports whether ts (unix seconds) is within
// ±FreshnessWindow of the local clock.
func (c *Cache) IsWithinFreshnessWindow(ts int64) bool {
	d := time.Since(time.Unix(ts, 0))
	if d < 0 {
		d = -d
	}
	return d <= FreshnessWindow
}

// CheckAndCommit accepts a message id exactly once. It returns nil and
// commits only on first-seen-and-fresh; ErrExpired and ErrReplayed failures
// are permanent for that envelope. The freshness check, uniqueness check and
// insertion form one logical unit under the cache lock.
func (c *Cache) CheckAndCommit(id domain.MessageID, ts int64) error {
	if !c.IsWithinFreshnessWindow(ts) {
		return ErrExpired
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	seen, err := c.store.Has(id)
	if err != nil {
		return err
	}
	if seen {
		return ErrReplayed
	}
	return c.store.Put(Entry{
		MessageID:  id,
		Timestamp:  ts,
		ReceivedAt: time.Now().Unix(),
	})
}

// Cleanup runs one retention-and-cap pass. Store methods are atomic on their
// own and the cache lock only guards the check-then-insert pair, so the purge
// runs without it; eviction takes it per bounded batch. A concurrent
// CheckAndCommit is never blocked for more than one slice.
func (c *Cache) Cleanup() error {
	cutoff := time.Now().Add(-Retention).Unix()

	purged, err := c.store.PurgeBefore(cutoff)
	if err != nil {
		return err
	}

	evicted := 0
	for {
		c.mu.Lock()
		n, err := c.store.Len()
		if err != nil {
			c.mu.Unlock()
			return err
		}
		over := n - MaxEntries
		if over <= 0 {
			c.mu.Unlock()
			break
		}
		if over > evictBatch {
			over = evictBatch
		}
		removed, err := c.store.EvictOldest(over)
		c.mu.Unlock()
		if err != nil {
			return err
		}
		evicted += removed
		if removed == 0 {
			break
		}
	}

	if purged > 0 || evicted > 0 {
		c.log.Debug().Int("purged", purged).Int("evicted", evicted).Msg("replay cache cleanup")
	}
	return nil
}

// Run executes Cleanup on the given interval until ctx is cancelled.
func (c *Cache) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := c.Cleanup(); err != nil {
				c.log.Warn().Err(err).Msg("replay cache cleanup failed")
			}
		}
	}
}
