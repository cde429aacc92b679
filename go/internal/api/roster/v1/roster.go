// Package rosterv1 holds the wire messages of league.roster.v1.RosterService.
package rosterv1

type AddPlayerRequest struct {
	OwnerId  string `json:"owner_id"`
	PlayerId string `json:"player_id"`
}

type AddPlayerResponse struct {
	OwnerId string   `json:"owner_id"`
	Players []string `json:"players"`
}

type DropPlayerRequest struct {
	OwnerId  string `json:"owner_id"`
	PlayerId string `json:"player_id"`
}

type DropPlayerResponse struct {
	OwnerId string   `json:"owner_id"`
	Players []string `json:"players"`
}

type GetRosterPlayersRequest struct {
	OwnerId string `json:"owner_id"`
}

type GetRosterPlayersResponse struct {
	Players []string `json:"players"`
}

type ListFreeAgentsRequest struct{}

type ListFreeAgentsResponse struct {
	Players []string `json:"players"`
}
