package stats

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeUsername(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   string
		wantOK bool
	}{
		{"plain", "Ada", "Ada", true},
		{"trims", "  Ada Lovelace \n", "Ada Lovelace", true},
		{"composes accents", "Zoe\u0308", "Zo\u00eb", true},
		{"drops control chars", "A\x00d\x07a", "Ada", true},
		{"empty", "", "", false},
		{"only spaces", " \t ", "", false},
		{"emoji kept", "🌟 star", "🌟 star", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeUsername(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeUsername_Truncates(t *testing.T) {
	got, ok := NormalizeUsername(strings.Repeat("é", 50))
	assert.True(t, ok)
	assert.Equal(t, MaxUsernameLength, utf8.RuneCountInString(got))
}
