// Package fantasyteamv1 holds the wire messages of
// league.fantasyteam.v1.FantasyTeamService.
package fantasyteamv1

import "time"

type FantasyTeam struct {
	OwnerId   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Players   []string  `json:"players"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateFantasyTeamRequest struct {
	OwnerId string `json:"owner_id"`
	Name    string `json:"name"`
}

type CreateFantasyTeamResponse struct {
	FantasyTeam *FantasyTeam `json:"fantasy_team"`
}

type GetFantasyTeamRequest struct {
	OwnerId string `json:"owner_id"`
}

type GetFantasyTeamResponse struct {
	FantasyTeam *FantasyTeam `json:"fantasy_team"`
}

type ListFantasyTeamsRequest struct{}

type ListFantasyTeamsResponse struct {
	FantasyTeams []*FantasyTeam `json:"fantasy_teams"`
}

type DeleteFantasyTeamRequest struct {
	OwnerId string `json:"owner_id"`
}

// DeleteFantasyTeamResponse returns the removed team; its players are free agents again
type DeleteFantasyTeamResponse struct {
	FantasyTeam *FantasyTeam `json:"fantasy_team"`
}
