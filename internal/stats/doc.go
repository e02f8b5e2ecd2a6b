// Package stats implements the meta-game around puzzle sessions: daily
// quests, achievements, profile counters and step-count health stats.
//
// The package has two layers. The functions in quests.go, achievements.go,
// record.go and health.go are pure: they mutate the aggregates they are
// given and report what changed, with the current time passed in. Service
// wraps them with a Store, loading the latest copy of each aggregate,
// applying the change and writing the whole aggregate back.
package stats
