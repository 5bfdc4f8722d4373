package replay

import "github.com/memetcircus/whisper-core/internal/domain"

// Entry records one accepted message id.
type Entry struct {
	MessageID  domain.MessageID
	Timestamp  int64 // sender-claimed, seconds
	ReceivedAt int64 // local commit time, seconds
}

// Store is the persistent backing for the cache. Implementations must make
// each method atomic on its own; the Cache serialises the check-and-commit
// sequence above them.
type Store interface {
	// Has reports whether the message id is present.
	Has(id domain.MessageID) (bool, error)
	// Put inserts an entry, overwriting nothing: ids are checked first by
	// the cache under its lock.
	Put(e Entry) error
	// Len returns the number of entries.
	Len() (int, error)
	// PurgeBefore removes entries received before the cutoff and returns
	// how many were removed.
	PurgeBefore(receivedBefore int64) (int, error)
	// EvictOldest removes the n entries with the oldest receive times and
	// returns how many were removed.
	EvictOldest(n int) (int, error)
	// Close releases the underlying resources.
	Close() error
}
