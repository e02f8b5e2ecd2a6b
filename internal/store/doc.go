// Package store provides SQLite-backed durable storage for player state.
//
// The store is a small key/value table holding whole JSON aggregates:
//   - userProfile: the UserProfile record
//   - userStatistics: sessions, achievements, daily quests and health stats
//   - hasCompletedOnboarding: a boolean flag
//
// # Loading
//
// LoadProfile and LoadStatistics never fail on bad data. A missing or
// undecodable row yields the default aggregate and a warning in the log.
// Only I/O errors from the database itself are returned.
//
// # Saving
//
// Saves encode the full aggregate and upsert it unconditionally. There is no
// partial update and no versioning beyond the updated_at column.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
