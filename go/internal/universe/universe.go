// Package universe holds the fixed set of valid player identifiers for a league
package universe

import (
	"fmt"

	"github.com/mcdev12/rosterbot/go/internal/models"
)

// Universe is an immutable, ordered set of player identifiers
type Universe struct {
	players []models.PlayerID
	index   map[models.PlayerID]int
}

// New builds a universe from raw identifiers. Identifiers are normalized,
// blank entries are skipped and duplicates keep their first position.
func New(raw []string) (*Universe, error) {
	u := &Universe{
		index: make(map[models.PlayerID]int, len(raw)),
	}
	for _, r := range raw {
		id := models.NormalizePlayerID(r)
		if id == "" {
			continue
		}
		if _, exists := u.index[id]; exists {
			continue
		}
		u.index[id] = len(u.players)
		u.players = append(u.players, id)
	}
	if len(u.players) == 0 {
		return nil, fmt.Errorf("universe has no players")
	}
	return u, nil
}

// Contains reports whether the player is part of the universe
func (u *Universe) Contains(player models.PlayerID) bool {
	_, ok := u.index[player]
	return ok
}

// Players returns every player in load order. The returned slice is a copy.
func (u *Universe) Players() []models.PlayerID {
	out := make([]models.PlayerID, len(u.players))
	copy(out, u.players)
	return out
}

// Len returns the number of players
func (u *Universe) Len() int {
	return len(u.players)
}

// Position returns the load-order position of player, or -1 if unknown
func (u *Universe) Position(player models.PlayerID) int {
	if i, ok := u.index[player]; ok {
		return i
	}
	return -1
}

// Without returns the universe players, in order, that are not in taken
func (u *Universe) Without(taken map[models.PlayerID]models.OwnerID) []models.PlayerID {
	out := make([]models.PlayerID, 0, len(u.players))
	for _, p := range u.players {
		if _, ok := taken[p]; !ok {
			out = append(out, p)
		}
	}
	return out
}
