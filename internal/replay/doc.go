// Package replay implements the replay-protection cache.
//
// The single entry point is Cache.CheckAndCommit: freshness check,
// uniqueness check and insertion happen under one lock, so two decrypt
// attempts racing on the same envelope cannot both succeed. A background
// cleanup pass enforces the 30-day retention window and the 10,000-entry cap
// (oldest evicted first) in bounded batches that never hold the lock across
// a whole sweep.
//
// Persistence is behind the Store interface: BoltStore for durable state,
// MemStore for tests and ephemeral callers.
package replay
