// Package fantasyteamv1connect wires FantasyTeamService to connect handlers and clients
package fantasyteamv1connect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	v1 "github.com/mcdev12/rosterbot/go/internal/api/fantasyteam/v1"
	"github.com/mcdev12/rosterbot/go/internal/connectjson"
)

// FantasyTeamServiceName is the fully-qualified name of the FantasyTeamService service.
const FantasyTeamServiceName = "league.fantasyteam.v1.FantasyTeamService"

const (
	FantasyTeamServiceCreateFantasyTeamProcedure = "/league.fantasyteam.v1.FantasyTeamService/CreateFantasyTeam"
	FantasyTeamServiceGetFantasyTeamProcedure    = "/league.fantasyteam.v1.FantasyTeamService/GetFantasyTeam"
	FantasyTeamServiceListFantasyTeamsProcedure  = "/league.fantasyteam.v1.FantasyTeamService/ListFantasyTeams"
	FantasyTeamServiceDeleteFantasyTeamProcedure = "/league.fantasyteam.v1.FantasyTeamService/DeleteFantasyTeam"
)

// FantasyTeamServiceHandler is implemented by the server side of the service
type FantasyTeamServiceHandler interface {
	CreateFantasyTeam(context.Context, *connect.Request[v1.CreateFantasyTeamRequest]) (*connect.Response[v1.CreateFantasyTeamResponse], error)
	GetFantasyTeam(context.Context, *connect.Request[v1.GetFantasyTeamRequest]) (*connect.Response[v1.GetFantasyTeamResponse], error)
	ListFantasyTeams(context.Context, *connect.Request[v1.ListFantasyTeamsRequest]) (*connect.Response[v1.ListFantasyTeamsResponse], error)
	DeleteFantasyTeam(context.Context, *connect.Request[v1.DeleteFantasyTeamRequest]) (*connect.Response[v1.DeleteFantasyTeamResponse], error)
}

// NewFantasyTeamServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewFantasyTeamServiceHandler(svc FantasyTeamServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = connectjson.HandlerOptions(opts...)
	mux := http.NewServeMux()
	mux.Handle(FantasyTeamServiceCreateFantasyTeamProcedure, connect.NewUnaryHandler(
		FantasyTeamServiceCreateFantasyTeamProcedure, svc.CreateFantasyTeam, opts...))
	mux.Handle(FantasyTeamServiceGetFantasyTeamProcedure, connect.NewUnaryHandler(
		FantasyTeamServiceGetFantasyTeamProcedure, svc.GetFantasyTeam, opts...))
	mux.Handle(FantasyTeamServiceListFantasyTeamsProcedure, connect.NewUnaryHandler(
		FantasyTeamServiceListFantasyTeamsProcedure, svc.ListFantasyTeams, opts...))
	mux.Handle(FantasyTeamServiceDeleteFantasyTeamProcedure, connect.NewUnaryHandler(
		FantasyTeamServiceDeleteFantasyTeamProcedure, svc.DeleteFantasyTeam, opts...))
	return "/" + FantasyTeamServiceName + "/", mux
}

// FantasyTeamServiceClient calls FantasyTeamService. League errors returned
// by the server are rebuilt so they match the models sentinels.
type FantasyTeamServiceClient struct {
	createFantasyTeam *connect.Client[v1.CreateFantasyTeamRequest, v1.CreateFantasyTeamResponse]
	getFantasyTeam    *connect.Client[v1.GetFantasyTeamRequest, v1.GetFantasyTeamResponse]
	listFantasyTeams  *connect.Client[v1.ListFantasyTeamsRequest, v1.ListFantasyTeamsResponse]
	deleteFantasyTeam *connect.Client[v1.DeleteFantasyTeamRequest, v1.DeleteFantasyTeamResponse]
}

// NewFantasyTeamServiceClient constructs a client for the service at baseURL
func NewFantasyTeamServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *FantasyTeamServiceClient {
	opts = connectjson.ClientOptions(opts...)
	return &FantasyTeamServiceClient{
		createFantasyTeam: connect.NewClient[v1.CreateFantasyTeamRequest, v1.CreateFantasyTeamResponse](
			httpClient, baseURL+FantasyTeamServiceCreateFantasyTeamProcedure, opts...),
		getFantasyTeam: connect.NewClient[v1.GetFantasyTeamRequest, v1.GetFantasyTeamResponse](
			httpClient, baseURL+FantasyTeamServiceGetFantasyTeamProcedure, opts...),
		listFantasyTeams: connect.NewClient[v1.ListFantasyTeamsRequest, v1.ListFantasyTeamsResponse](
			httpClient, baseURL+FantasyTeamServiceListFantasyTeamsProcedure, opts...),
		deleteFantasyTeam: connect.NewClient[v1.DeleteFantasyTeamRequest, v1.DeleteFantasyTeamResponse](
			httpClient, baseURL+FantasyTeamServiceDeleteFantasyTeamProcedure, opts...),
	}
}

func (c *FantasyTeamServiceClient) CreateFantasyTeam(ctx context.Context, req *v1.CreateFantasyTeamRequest) (*v1.CreateFantasyTeamResponse, error) {
	return connectjson.CallUnary(ctx, c.createFantasyTeam, req)
}

func (c *FantasyTeamServiceClient) GetFantasyTeam(ctx context.Context, req *v1.GetFantasyTeamRequest) (*v1.GetFantasyTeamResponse, error) {
	return connectjson.CallUnary(ctx, c.getFantasyTeam, req)
}

func (c *FantasyTeamServiceClient) ListFantasyTeams(ctx context.Context, req *v1.ListFantasyTeamsRequest) (*v1.ListFantasyTeamsResponse, error) {
	return connectjson.CallUnary(ctx, c.listFantasyTeams, req)
}

func (c *FantasyTeamServiceClient) DeleteFantasyTeam(ctx context.Context, req *v1.DeleteFantasyTeamRequest) (*v1.DeleteFantasyTeamResponse, error) {
	return connectjson.CallUnary(ctx, c.deleteFantasyTeam, req)
}
