package fantasyteam

import "github.com/mcdev12/rosterbot/go/internal/models"

// CreateFantasyTeamRequest represents the data needed to create a fantasy team
type CreateFantasyTeamRequest struct {
	OwnerID models.OwnerID
	Name    string
}
