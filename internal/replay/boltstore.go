package replay

import (
	"encoding/binary"
	"path/filepath"
	"sort"
	"time"

	"github.com/boltdb/bolt"

	"github.com/memetcircus/whisper-core/internal/domain"
)

var bucketReplay = []byte("replay")

// BoltStore persists replay entries in a bolt bucket. Keys are message ids;
// values are the 8-byte big-endian claimed timestamp followed by the 8-byte
// big-endian receive time.
type BoltStore struct {
	db *bolt.DB
}

// OpenBoltStore opens (or creates) the replay database at path.
func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(filepath.Clean(path), 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists(bucketReplay)
		return e
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Has(id domain.MessageID) (bool, error) {
	var ok bool
	err := s.db.View(func(tx *bolt.Tx) error {
		ok = tx.Bucket(bucketReplay).Get(id.Slice()) != nil
		return nil
	})
	return ok, err
}

func (s *BoltStore) Put(e Entry) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		var v [16]byte
		binary.BigEndian.PutUint64(v[:8], uint64(e.Timestamp))
		binary.BigEndian.PutUint64(v[8:], uint64(e.ReceivedAt))
		return tx.Bucket(bucketReplay).Put(e.MessageID.Slice(), v[:])
	})
}

func (s *BoltStore) Len() (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketReplay).Stats().KeyN
		return nil
	})
	return n, err
}

func (s *BoltStore) PurgeBefore(receivedBefore int64) (int, error) {
	removed := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketReplay).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if len(v) == 16 && int64(binary.BigEndian.Uint64(v[8:])) < receivedBefore {
				if err := c.Delete(); err != nil {
					return err
				}
				removed++
			}
		}
		return nil
	})
	return removed, err
}

func (s *BoltStore) EvictOldest(n int) (int, error) {
	if n <= 0 {
		return 0, nil
	}
	type aged struct {
		key        []byte
		receivedAt int64
	}
	removed := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketReplay)
		var all []aged
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if len(v) != 16 {
				continue
			}
			all = append(all, aged{
				key:        append([]byte(nil), k...),
				receivedAt: int64(binary.BigEndian.Uint64(v[8:])),
			})
		}
		sort.Slice(all, func(i, j int) bool { return all[i].receivedAt < all[j].receivedAt })
		if n > len(all) {
			n = len(all)
		}
		for _, a := range all[:n] {
			if err := b.Delete(a.key); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	return removed, err
}

func (s *BoltStore) Close() error { return s.db.Close() }

var _ Store = (*BoltStore)(nil)
