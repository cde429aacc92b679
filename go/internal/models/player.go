package models

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PlayerID identifies a player in the league universe. Values are always
// stored in normalized form, see NormalizePlayerID.
type PlayerID string

// NormalizePlayerID trims surrounding whitespace and upper-cases the identifier
// so lookups are case-insensitive.
func NormalizePlayerID(raw string) PlayerID {
	return PlayerID(strings.ToUpper(strings.TrimSpace(raw)))
}

func (p PlayerID) String() string {
	return string(p)
}

// DisplayName returns the title-cased form used when rendering player names
func (p PlayerID) DisplayName() string {
	return cases.Title(language.Und).String(string(p))
}

// PlayerIDStrings converts ids to plain strings for wire messages
func PlayerIDStrings(ids []PlayerID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
