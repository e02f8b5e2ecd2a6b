// Package model defines the game's value types and persisted aggregates.
//
// Two aggregates are persisted independently, one instance each per
// installation:
//   - UserProfile: identity, preferences and cross-session counters
//   - UserStatistics: session history, achievements, daily quests, health stats
//
// Everything else (GlyphCell, GameSession, DailyQuest, Achievement) is a plain
// value owned by one of the aggregates or by an in-progress puzzle.
//
// All types serialise to JSON. Decoding into a default-constructed value
// (DefaultProfile, DefaultStatistics) leaves absent fields at their defaults,
// which is how older or partial records are upgraded on load.
package model
