package stats

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// MaxUsernameLength caps display names, counted in runes after
// normalisation.
const MaxUsernameLength = 32

// NormalizeUsername trims surrounding space, drops control characters and
// converts to NFC so visually equal names compare equal. ok is false when
// nothing is left.
func NormalizeUsername(name string) (string, bool) {
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
	name = norm.NFC.String(strings.TrimSpace(name))
	if name == "" {
		return "", false
	}
	if r := []rune(name); len(r) > MaxUsernameLength {
		name = strings.TrimSpace(string(r[:MaxUsernameLength]))
	}
	return name, true
}
