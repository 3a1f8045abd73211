// Package refstore provides SQLite-backed durable storage for per-feed
// reference sets.
//
// The store is the persistence collaborator of the classification engine:
//   - Snapshot(feed) materializes an immutable reference-set snapshot for
//     one classification run
//   - MergeDeliverable records delivered article identities, and only those;
//     blocked buckets are never persisted
//   - RecordRun appends an audit row per classification run, keyed by a
//     UUIDv7 run token
//
// Callers must serialize classify / deliver / merge per feed; the store
// enforces idempotency (ON CONFLICT DO NOTHING) but not cycle ordering.
//
// Database configuration:
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON
//
// Schema migrations run off PRAGMA user_version and are idempotent.
package refstore
