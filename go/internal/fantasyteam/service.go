package fantasyteam

import (
	"context"

	"connectrpc.com/connect"
	fantasyteamv1 "github.com/mcdev12/rosterbot/go/internal/api/fantasyteam/v1"
	"github.com/mcdev12/rosterbot/go/internal/api/fantasyteam/v1/fantasyteamv1connect"
	"github.com/mcdev12/rosterbot/go/internal/connectjson"
	"github.com/mcdev12/rosterbot/go/internal/models"
)

// FantasyTeamApp defines what the service layer needs from the fantasy teams application
type FantasyTeamApp interface {
	CreateFantasyTeam(ctx context.Context, req CreateFantasyTeamRequest) (*models.Team, error)
	GetFantasyTeam(ctx context.Context, owner models.OwnerID) (*models.Team, error)
	ListFantasyTeams(ctx context.Context) ([]models.Team, error)
	DeleteFantasyTeam(ctx context.Context, owner models.OwnerID) (*models.Team, error)
}

// Service implements the FantasyTeamService connect interface
type Service struct {
	app FantasyTeamApp
}

// NewService creates a new fantasy teams service
func NewService(app FantasyTeamApp) *Service {
	return &Service{
		app: app,
	}
}

// Verify that Service implements the FantasyTeamServiceHandler interface
var _ fantasyteamv1connect.FantasyTeamServiceHandler = (*Service)(nil)

// CreateFantasyTeam creates a new fantasy team
func (s *Service) CreateFantasyTeam(ctx context.Context, req *connect.Request[fantasyteamv1.CreateFantasyTeamRequest]) (*connect.Response[fantasyteamv1.CreateFantasyTeamResponse], error) {
	team, err := s.app.CreateFantasyTeam(ctx, CreateFantasyTeamRequest{
		OwnerID: models.OwnerID(req.Msg.OwnerId),
		Name:    req.Msg.Name,
	})
	if err != nil {
		return nil, connectjson.ToConnectError(err)
	}

	return connect.NewResponse(&fantasyteamv1.CreateFantasyTeamResponse{
		FantasyTeam: fantasyTeamToProto(team),
	}), nil
}

// GetFantasyTeam retrieves an owner's team
func (s *Service) GetFantasyTeam(ctx context.Context, req *connect.Request[fantasyteamv1.GetFantasyTeamRequest]) (*connect.Response[fantasyteamv1.GetFantasyTeamResponse], error) {
	team, err := s.app.GetFantasyTeam(ctx, models.OwnerID(req.Msg.OwnerId))
	if err != nil {
		return nil, connectjson.ToConnectError(err)
	}

	return connect.NewResponse(&fantasyteamv1.GetFantasyTeamResponse{
		FantasyTeam: fantasyTeamToProto(team),
	}), nil
}

// ListFantasyTeams lists all teams
func (s *Service) ListFantasyTeams(ctx context.Context, req *connect.Request[fantasyteamv1.ListFantasyTeamsRequest]) (*connect.Response[fantasyteamv1.ListFantasyTeamsResponse], error) {
	teams, err := s.app.ListFantasyTeams(ctx)
	if err != nil {
		return nil, connectjson.ToConnectError(err)
	}

	return connect.NewResponse(&fantasyteamv1.ListFantasyTeamsResponse{
		FantasyTeams: fantasyTeamsToProto(teams),
	}), nil
}

// DeleteFantasyTeam deletes an owner's team
func (s *Service) DeleteFantasyTeam(ctx context.Context, req *connect.Request[fantasyteamv1.DeleteFantasyTeamRequest]) (*connect.Response[fantasyteamv1.DeleteFantasyTeamResponse], error) {
	team, err := s.app.DeleteFantasyTeam(ctx, models.OwnerID(req.Msg.OwnerId))
	if err != nil {
		return nil, connectjson.ToConnectError(err)
	}

	return connect.NewResponse(&fantasyteamv1.DeleteFantasyTeamResponse{
		FantasyTeam: fantasyTeamToProto(team),
	}), nil
}

func fantasyTeamToProto(team *models.Team) *fantasyteamv1.FantasyTeam {
	return &fantasyteamv1.FantasyTeam{
		OwnerId:   team.OwnerID.String(),
		Name:      team.Name,
		Players:   models.PlayerIDStrings(team.Players),
		CreatedAt: team.CreatedAt,
	}
}

func fantasyTeamsToProto(teams []models.Team) []*fantasyteamv1.FantasyTeam {
	protoTeams := make([]*fantasyteamv1.FantasyTeam, len(teams))
	for i := range teams {
		protoTeams[i] = fantasyTeamToProto(&teams[i])
	}
	return protoTeams
}
