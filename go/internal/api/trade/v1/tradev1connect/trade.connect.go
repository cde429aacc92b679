// Package tradev1connect wires TradeService to connect handlers and clients
package tradev1connect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	v1 "github.com/mcdev12/rosterbot/go/internal/api/trade/v1"
	"github.com/mcdev12/rosterbot/go/internal/connectjson"
)

// TradeServiceName is the fully-qualified name of the TradeService service.
const TradeServiceName = "league.trade.v1.TradeService"

const (
	TradeServiceProposeTradeProcedure      = "/league.trade.v1.TradeService/ProposeTrade"
	TradeServiceAssignCorrelationProcedure = "/league.trade.v1.TradeService/AssignCorrelation"
	TradeServiceGetTradeProcedure          = "/league.trade.v1.TradeService/GetTrade"
	TradeServiceListTradesProcedure        = "/league.trade.v1.TradeService/ListTrades"
	TradeServiceExecuteTradeProcedure      = "/league.trade.v1.TradeService/ExecuteTrade"
	TradeServiceCancelTradeProcedure       = "/league.trade.v1.TradeService/CancelTrade"
	TradeServiceAcceptTradeProcedure       = "/league.trade.v1.TradeService/AcceptTrade"
	TradeServiceDenyTradeProcedure         = "/league.trade.v1.TradeService/DenyTrade"
	TradeServiceWithdrawTradeProcedure     = "/league.trade.v1.TradeService/WithdrawTrade"
	TradeServiceSweepTradesProcedure       = "/league.trade.v1.TradeService/SweepTrades"
)

type TradeServiceHandler interface {
	ProposeTrade(context.Context, *connect.Request[v1.ProposeTradeRequest]) (*connect.Response[v1.ProposeTradeResponse], error)
	AssignCorrelation(context.Context, *connect.Request[v1.AssignCorrelationRequest]) (*connect.Response[v1.AssignCorrelationResponse], error)
	GetTrade(context.Context, *connect.Request[v1.GetTradeRequest]) (*connect.Response[v1.GetTradeResponse], error)
	ListTrades(context.Context, *connect.Request[v1.ListTradesRequest]) (*connect.Response[v1.ListTradesResponse], error)
	ExecuteTrade(context.Context, *connect.Request[v1.ExecuteTradeRequest]) (*connect.Response[v1.ExecuteTradeResponse], error)
	CancelTrade(context.Context, *connect.Request[v1.CancelTradeRequest]) (*connect.Response[v1.CancelTradeResponse], error)
	AcceptTrade(context.Context, *connect.Request[v1.RespondTradeRequest]) (*connect.Response[v1.RespondTradeResponse], error)
	DenyTrade(context.Context, *connect.Request[v1.RespondTradeRequest]) (*connect.Response[v1.RespondTradeResponse], error)
	WithdrawTrade(context.Context, *connect.Request[v1.RespondTradeRequest]) (*connect.Response[v1.RespondTradeResponse], error)
	SweepTrades(context.Context, *connect.Request[v1.SweepTradesRequest]) (*connect.Response[v1.SweepTradesResponse], error)
}

// NewTradeServiceHandler returns the mount path and handler for the service
func NewTradeServiceHandler(svc TradeServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = connectjson.HandlerOptions(opts...)
	mux := http.NewServeMux()
	mux.Handle(TradeServiceProposeTradeProcedure, connect.NewUnaryHandler(
		TradeServiceProposeTradeProcedure, svc.ProposeTrade, opts...))
	mux.Handle(TradeServiceAssignCorrelationProcedure, connect.NewUnaryHandler(
		TradeServiceAssignCorrelationProcedure, svc.AssignCorrelation, opts...))
	mux.Handle(TradeServiceGetTradeProcedure, connect.NewUnaryHandler(
		TradeServiceGetTradeProcedure, svc.GetTrade, opts...))
	mux.Handle(TradeServiceListTradesProcedure, connect.NewUnaryHandler(
		TradeServiceListTradesProcedure, svc.ListTrades, opts...))
	mux.Handle(TradeServiceExecuteTradeProcedure, connect.NewUnaryHandler(
		TradeServiceExecuteTradeProcedure, svc.ExecuteTrade, opts...))
	mux.Handle(TradeServiceCancelTradeProcedure, connect.NewUnaryHandler(
		TradeServiceCancelTradeProcedure, svc.CancelTrade, opts...))
	mux.Handle(TradeServiceAcceptTradeProcedure, connect.NewUnaryHandler(
		TradeServiceAcceptTradeProcedure, svc.AcceptTrade, opts...))
	mux.Handle(TradeServiceDenyTradeProcedure, connect.NewUnaryHandler(
		TradeServiceDenyTradeProcedure, svc.DenyTrade, opts...))
	mux.Handle(TradeServiceWithdrawTradeProcedure, connect.NewUnaryHandler(
		TradeServiceWithdrawTradeProcedure, svc.WithdrawTrade, opts...))
	mux.Handle(TradeServiceSweepTradesProcedure, connect.NewUnaryHandler(
		TradeServiceSweepTradesProcedure, svc.SweepTrades, opts...))
	return "/" + TradeServiceName + "/", mux
}

type TradeServiceClient struct {
	proposeTrade      *connect.Client[v1.ProposeTradeRequest, v1.ProposeTradeResponse]
	assignCorrelation *connect.Client[v1.AssignCorrelationRequest, v1.AssignCorrelationResponse]
	getTrade          *connect.Client[v1.GetTradeRequest, v1.GetTradeResponse]
	listTrades        *connect.Client[v1.ListTradesRequest, v1.ListTradesResponse]
	executeTrade      *connect.Client[v1.ExecuteTradeRequest, v1.ExecuteTradeResponse]
	cancelTrade       *connect.Client[v1.CancelTradeRequest, v1.CancelTradeResponse]
	acceptTrade       *connect.Client[v1.RespondTradeRequest, v1.RespondTradeResponse]
	denyTrade         *connect.Client[v1.RespondTradeRequest, v1.RespondTradeResponse]
	withdrawTrade     *connect.Client[v1.RespondTradeRequest, v1.RespondTradeResponse]
	sweepTrades       *connect.Client[v1.SweepTradesRequest, v1.SweepTradesResponse]
}

func NewTradeServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *TradeServiceClient {
	opts = connectjson.ClientOptions(opts...)
	return &TradeServiceClient{
		proposeTrade: connect.NewClient[v1.ProposeTradeRequest, v1.ProposeTradeResponse](
			httpClient, baseURL+TradeServiceProposeTradeProcedure, opts...),
		assignCorrelation: connect.NewClient[v1.AssignCorrelationRequest, v1.AssignCorrelationResponse](
			httpClient, baseURL+TradeServiceAssignCorrelationProcedure, opts...),
		getTrade: connect.NewClient[v1.GetTradeRequest, v1.GetTradeResponse](
			httpClient, baseURL+TradeServiceGetTradeProcedure, opts...),
		listTrades: connect.NewClient[v1.ListTradesRequest, v1.ListTradesResponse](
			httpClient, baseURL+TradeServiceListTradesProcedure, opts...),
		executeTrade: connect.NewClient[v1.ExecuteTradeRequest, v1.ExecuteTradeResponse](
			httpClient, baseURL+TradeServiceExecuteTradeProcedure, opts...),
		cancelTrade: connect.NewClient[v1.CancelTradeRequest, v1.CancelTradeResponse](
			httpClient, baseURL+TradeServiceCancelTradeProcedure, opts...),
		acceptTrade: connect.NewClient[v1.RespondTradeRequest, v1.RespondTradeResponse](
			httpClient, baseURL+TradeServiceAcceptTradeProcedure, opts...),
		denyTrade: connect.NewClient[v1.RespondTradeRequest, v1.RespondTradeResponse](
			httpClient, baseURL+TradeServiceDenyTradeProcedure, opts...),
		withdrawTrade: connect.NewClient[v1.RespondTradeRequest, v1.RespondTradeResponse](
			httpClient, baseURL+TradeServiceWithdrawTradeProcedure, opts...),
		sweepTrades: connect.NewClient[v1.SweepTradesRequest, v1.SweepTradesResponse](
			httpClient, baseURL+TradeServiceSweepTradesProcedure, opts...),
	}
}

func (c *TradeServiceClient) ProposeTrade(ctx context.Context, req *v1.ProposeTradeRequest) (*v1.ProposeTradeResponse, error) {
	return connectjson.CallUnary(ctx, c.proposeTrade, req)
}

func (c *TradeServiceClient) AssignCorrelation(ctx context.Context, req *v1.AssignCorrelationRequest) (*v1.AssignCorrelationResponse, error) {
	return connectjson.CallUnary(ctx, c.assignCorrelation, req)
}

func (c *TradeServiceClient) GetTrade(ctx context.Context, req *v1.GetTradeRequest) (*v1.GetTradeResponse, error) {
	return connectjson.CallUnary(ctx, c.getTrade, req)
}

func (c *TradeServiceClient) ListTrades(ctx context.Context, req *v1.ListTradesRequest) (*v1.ListTradesResponse, error) {
	return connectjson.CallUnary(ctx, c.listTrades, req)
}

func (c *TradeServiceClient) ExecuteTrade(ctx context.Context, req *v1.ExecuteTradeRequest) (*v1.ExecuteTradeResponse, error) {
	return connectjson.CallUnary(ctx, c.executeTrade, req)
}

func (c *TradeServiceClient) CancelTrade(ctx context.Context, req *v1.CancelTradeRequest) (*v1.CancelTradeResponse, error) {
	return connectjson.CallUnary(ctx, c.cancelTrade, req)
}

func (c *TradeServiceClient) AcceptTrade(ctx context.Context, req *v1.RespondTradeRequest) (*v1.RespondTradeResponse, error) {
	return connectjson.CallUnary(ctx, c.acceptTrade, req)
}

func (c *TradeServiceClient) DenyTrade(ctx context.Context, req *v1.RespondTradeRequest) (*v1.RespondTradeResponse, error) {
	return connectjson.CallUnary(ctx, c.denyTrade, req)
}

func (c *TradeServiceClient) WithdrawTrade(ctx context.Context, req *v1.RespondTradeRequest) (*v1.RespondTradeResponse, error) {
	return connectjson.CallUnary(ctx, c.withdrawTrade, req)
}

func (c *TradeServiceClient) SweepTrades(ctx context.Context, req *v1.SweepTradesRequest) (*v1.SweepTradesResponse, error) {
	return connectjson.CallUnary(ctx, c.sweepTrades, req)
}
