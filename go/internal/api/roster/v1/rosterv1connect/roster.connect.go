// Package rosterv1connect wires RosterService to connect handlers and clients
package rosterv1connect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	v1 "github.com/mcdev12/rosterbot/go/internal/api/roster/v1"
	"github.com/mcdev12/rosterbot/go/internal/connectjson"
)

// RosterServiceName is the fully-qualified name of the RosterService service.
const RosterServiceName = "league.roster.v1.RosterService"

const (
	RosterServiceAddPlayerProcedure        = "/league.roster.v1.RosterService/AddPlayer"
	RosterServiceDropPlayerProcedure       = "/league.roster.v1.RosterService/DropPlayer"
	RosterServiceGetRosterPlayersProcedure = "/league.roster.v1.RosterService/GetRosterPlayers"
	RosterServiceListFreeAgentsProcedure   = "/league.roster.v1.RosterService/ListFreeAgents"
)

type RosterServiceHandler interface {
	AddPlayer(context.Context, *connect.Request[v1.AddPlayerRequest]) (*connect.Response[v1.AddPlayerResponse], error)
	DropPlayer(context.Context, *connect.Request[v1.DropPlayerRequest]) (*connect.Response[v1.DropPlayerResponse], error)
	GetRosterPlayers(context.Context, *connect.Request[v1.GetRosterPlayersRequest]) (*connect.Response[v1.GetRosterPlayersResponse], error)
	ListFreeAgents(context.Context, *connect.Request[v1.ListFreeAgentsRequest]) (*connect.Response[v1.ListFreeAgentsResponse], error)
}

// NewRosterServiceHandler returns the mount path and handler for the service
func NewRosterServiceHandler(svc RosterServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = connectjson.HandlerOptions(opts...)
	mux := http.NewServeMux()
	mux.Handle(RosterServiceAddPlayerProcedure, connect.NewUnaryHandler(
		RosterServiceAddPlayerProcedure, svc.AddPlayer, opts...))
	mux.Handle(RosterServiceDropPlayerProcedure, connect.NewUnaryHandler(
		RosterServiceDropPlayerProcedure, svc.DropPlayer, opts...))
	mux.Handle(RosterServiceGetRosterPlayersProcedure, connect.NewUnaryHandler(
		RosterServiceGetRosterPlayersProcedure, svc.GetRosterPlayers, opts...))
	mux.Handle(RosterServiceListFreeAgentsProcedure, connect.NewUnaryHandler(
		RosterServiceListFreeAgentsProcedure, svc.ListFreeAgents, opts...))
	return "/" + RosterServiceName + "/", mux
}

type RosterServiceClient struct {
	addPlayer        *connect.Client[v1.AddPlayerRequest, v1.AddPlayerResponse]
	dropPlayer       *connect.Client[v1.DropPlayerRequest, v1.DropPlayerResponse]
	getRosterPlayers *connect.Client[v1.GetRosterPlayersRequest, v1.GetRosterPlayersResponse]
	listFreeAgents   *connect.Client[v1.ListFreeAgentsRequest, v1.ListFreeAgentsResponse]
}

func NewRosterServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *RosterServiceClient {
	opts = connectjson.ClientOptions(opts...)
	return &RosterServiceClient{
		addPlayer: connect.NewClient[v1.AddPlayerRequest, v1.AddPlayerResponse](
			httpClient, baseURL+RosterServiceAddPlayerProcedure, opts...),
		dropPlayer: connect.NewClient[v1.DropPlayerRequest, v1.DropPlayerResponse](
			httpClient, baseURL+RosterServiceDropPlayerProcedure, opts...),
		getRosterPlayers: connect.NewClient[v1.GetRosterPlayersRequest, v1.GetRosterPlayersResponse](
			httpClient, baseURL+RosterServiceGetRosterPlayersProcedure, opts...),
		listFreeAgents: connect.NewClient[v1.ListFreeAgentsRequest, v1.ListFreeAgentsResponse](
			httpClient, baseURL+RosterServiceListFreeAgentsProcedure, opts...),
	}
}

func (c *RosterServiceClient) AddPlayer(ctx context.Context, req *v1.AddPlayerRequest) (*v1.AddPlayerResponse, error) {
	return connectjson.CallUnary(ctx, c.addPlayer, req)
}

func (c *RosterServiceClient) DropPlayer(ctx context.Context, req *v1.DropPlayerRequest) (*v1.DropPlayerResponse, error) {
	return connectjson.CallUnary(ctx, c.dropPlayer, req)
}

func (c *RosterServiceClient) GetRosterPlayers(ctx context.Context, req *v1.GetRosterPlayersRequest) (*v1.GetRosterPlayersResponse, error) {
	return connectjson.CallUnary(ctx, c.getRosterPlayers, req)
}

func (c *RosterServiceClient) ListFreeAgents(ctx context.Context, req *v1.ListFreeAgentsRequest) (*v1.ListFreeAgentsResponse, error) {
	return connectjson.CallUnary(ctx, c.listFreeAgents, req)
}
