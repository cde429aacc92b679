package roster

import (
	"context"

	"connectrpc.com/connect"
	rosterv1 "github.com/mcdev12/rosterbot/go/internal/api/roster/v1"
	"github.com/mcdev12/rosterbot/go/internal/api/roster/v1/rosterv1connect"
	"github.com/mcdev12/rosterbot/go/internal/connectjson"
	"github.com/mcdev12/rosterbot/go/internal/models"
)

// RosterApp defines what the service layer needs from the roster application
type RosterApp interface {
	AddPlayer(ctx context.Context, owner models.OwnerID, player models.PlayerID) (*models.Team, error)
	DropPlayer(ctx context.Context, owner models.OwnerID, player models.PlayerID) (*models.Team, error)
	GetRosterPlayers(ctx context.Context, owner models.OwnerID) ([]models.PlayerID, error)
	ListFreeAgents(ctx context.Context) ([]models.PlayerID, error)
}

// Service implements the RosterService connect interface
type Service struct {
	app RosterApp
}

// NewService creates a new roster service
func NewService(app RosterApp) *Service {
	return &Service{
		app: app,
	}
}

var _ rosterv1connect.RosterServiceHandler = (*Service)(nil)

// AddPlayer signs a free agent
func (s *Service) AddPlayer(ctx context.Context, req *connect.Request[rosterv1.AddPlayerRequest]) (*connect.Response[rosterv1.AddPlayerResponse], error) {
	team, err := s.app.AddPlayer(ctx, models.OwnerID(req.Msg.OwnerId), models.PlayerID(req.Msg.PlayerId))
	if err != nil {
		return nil, connectjson.ToConnectError(err)
	}

	return connect.NewResponse(&rosterv1.AddPlayerResponse{
		OwnerId: team.OwnerID.String(),
		Players: models.PlayerIDStrings(team.Players),
	}), nil
}

// DropPlayer releases a rostered player
func (s *Service) DropPlayer(ctx context.Context, req *connect.Request[rosterv1.DropPlayerRequest]) (*connect.Response[rosterv1.DropPlayerResponse], error) {
	team, err := s.app.DropPlayer(ctx, models.OwnerID(req.Msg.OwnerId), models.PlayerID(req.Msg.PlayerId))
	if err != nil {
		return nil, connectjson.ToConnectError(err)
	}

	return connect.NewResponse(&rosterv1.DropPlayerResponse{
		OwnerId: team.OwnerID.String(),
		Players: models.PlayerIDStrings(team.Players),
	}), nil
}

// GetRosterPlayers lists an owner's players
func (s *Service) GetRosterPlayers(ctx context.Context, req *connect.Request[rosterv1.GetRosterPlayersRequest]) (*connect.Response[rosterv1.GetRosterPlayersResponse], error) {
	players, err := s.app.GetRosterPlayers(ctx, models.OwnerID(req.Msg.OwnerId))
	if err != nil {
		return nil, connectjson.ToConnectError(err)
	}

	return connect.NewResponse(&rosterv1.GetRosterPlayersResponse{
		Players: models.PlayerIDStrings(players),
	}), nil
}

// ListFreeAgents lists every unrostered player
func (s *Service) ListFreeAgents(ctx context.Context, req *connect.Request[rosterv1.ListFreeAgentsRequest]) (*connect.Response[rosterv1.ListFreeAgentsResponse], error) {
	players, err := s.app.ListFreeAgents(ctx)
	if err != nil {
		return nil, connectjson.ToConnectError(err)
	}

	return connect.NewResponse(&rosterv1.ListFreeAgentsResponse{
		Players: models.PlayerIDStrings(players),
	}), nil
}
