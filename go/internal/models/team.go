package models

import (
	"time"
)

// OwnerID identifies the user who owns a team
type OwnerID string

func (o OwnerID) String() string {
	return string(o)
}

// Team is a fantasy team and its roster. Players keeps the order in which
// players joined the roster.
type Team struct {
	OwnerID   OwnerID    `json:"owner_id"`
	Name      string     `json:"name"`
	Players   []PlayerID `json:"players"`
	CreatedAt time.Time  `json:"created_at"`
}

// HasPlayer reports whether the player is on this team's roster
func (t *Team) HasPlayer(player PlayerID) bool {
	for _, p := range t.Players {
		if p == player {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the team
func (t Team) Clone() Team {
	players := make([]PlayerID, len(t.Players))
	copy(players, t.Players)
	t.Players = players
	return t
}
