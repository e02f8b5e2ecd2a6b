package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/roach88/mindglyph/internal/model"
)

// marshalAggregate converts a profile or statistics record to JSON for
// storage. HTML escaping is disabled so symbols and names are stored as
// written.
func marshalAggregate(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("marshal aggregate: %w", err)
	}
	// Encoder adds a trailing newline, remove it
	return bytes.TrimSpace(buf.Bytes()), nil
}

// unmarshalProfile decodes a stored profile over the defaults, so fields
// missing from older records keep their default values.
func unmarshalProfile(data []byte, now time.Time) (model.UserProfile, error) {
	p := model.DefaultProfile(now)
	if err := json.Unmarshal(data, &p); err != nil {
		return model.UserProfile{}, fmt.Errorf("unmarshal profile: %w", err)
	}
	if !p.PreferredDifficulty.Valid() {
		p.PreferredDifficulty = model.Easy
	}
	if p.HighestLevel < 1 {
		p.HighestLevel = 1
	}
	if p.TotalGamesWon > p.TotalGamesPlayed {
		p.TotalGamesWon = p.TotalGamesPlayed
	}
	return p, nil
}

// unmarshalStatistics decodes a stored statistics record and fills in what
// older records lack (see model.UserStatistics.Normalize).
func unmarshalStatistics(data []byte, ids model.IDGenerator, now time.Time) (model.UserStatistics, error) {
	var st model.UserStatistics
	if err := json.Unmarshal(data, &st); err != nil {
		return model.UserStatistics{}, fmt.Errorf("unmarshal statistics: %w", err)
	}
	st.Normalize(ids, now)
	return st, nil
}
