package trade

import (
	"context"
	"fmt"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	tradev1 "github.com/mcdev12/rosterbot/go/internal/api/trade/v1"
	"github.com/mcdev12/rosterbot/go/internal/api/trade/v1/tradev1connect"
	"github.com/mcdev12/rosterbot/go/internal/connectjson"
	"github.com/mcdev12/rosterbot/go/internal/models"
)

// TradeApp defines what the service layer needs from the trade application
type TradeApp interface {
	ProposeTrade(ctx context.Context, req ProposeTradeRequest) (*models.Trade, error)
	AssignCorrelation(ctx context.Context, req AssignCorrelationRequest) (*models.Trade, error)
	GetTrade(ctx context.Context, key string) (*models.Trade, error)
	ListTrades(ctx context.Context) ([]models.Trade, error)
	ListTradesForOwner(ctx context.Context, owner models.OwnerID) ([]models.Trade, error)
	ExecuteTrade(ctx context.Context, key string) (*models.Trade, error)
	CancelTrade(ctx context.Context, key string) (*models.Trade, error)
	AcceptTrade(ctx context.Context, key string, actor models.OwnerID) (*models.Trade, error)
	DenyTrade(ctx context.Context, key string, actor models.OwnerID) (*models.Trade, error)
	WithdrawTrade(ctx context.Context, key string, actor models.OwnerID) (*models.Trade, error)
	Sweep(ctx context.Context) ([]ExpiredTrade, error)
}

// Service implements the TradeService connect interface
type Service struct {
	app TradeApp
}

// NewService creates a new trade service
func NewService(app TradeApp) *Service {
	return &Service{
		app: app,
	}
}

var _ tradev1connect.TradeServiceHandler = (*Service)(nil)

// ProposeTrade creates a pending trade
func (s *Service) ProposeTrade(ctx context.Context, req *connect.Request[tradev1.ProposeTradeRequest]) (*connect.Response[tradev1.ProposeTradeResponse], error) {
	t, err := s.app.ProposeTrade(ctx, ProposeTradeRequest{
		ProposerID:     models.OwnerID(req.Msg.ProposerId),
		CounterpartyID: models.OwnerID(req.Msg.CounterpartyId),
		Offered:        models.PlayerID(req.Msg.OfferedPlayer),
		Requested:      models.PlayerID(req.Msg.RequestedPlayer),
	})
	if err != nil {
		return nil, connectjson.ToConnectError(err)
	}
	return connect.NewResponse(&tradev1.ProposeTradeResponse{Trade: tradeToProto(t)}), nil
}

// AssignCorrelation attaches the front end's key to a trade
func (s *Service) AssignCorrelation(ctx context.Context, req *connect.Request[tradev1.AssignCorrelationRequest]) (*connect.Response[tradev1.AssignCorrelationResponse], error) {
	appReq := AssignCorrelationRequest{
		ProposerID:     models.OwnerID(req.Msg.ProposerId),
		CounterpartyID: models.OwnerID(req.Msg.CounterpartyId),
		Offered:        models.PlayerID(req.Msg.OfferedPlayer),
		Requested:      models.PlayerID(req.Msg.RequestedPlayer),
		Key:            req.Msg.CorrelationKey,
	}
	if req.Msg.TradeId != "" {
		id, err := uuid.Parse(req.Msg.TradeId)
		if err != nil {
			return nil, connectjson.ToConnectError(fmt.Errorf("%w: invalid trade ID: %v", models.ErrInvalidArgument, err))
		}
		appReq.TradeID = id
	}

	t, err := s.app.AssignCorrelation(ctx, appReq)
	if err != nil {
		return nil, connectjson.ToConnectError(err)
	}
	return connect.NewResponse(&tradev1.AssignCorrelationResponse{Trade: tradeToProto(t)}), nil
}

// GetTrade returns a pending trade by correlation key or ID
func (s *Service) GetTrade(ctx context.Context, req *connect.Request[tradev1.GetTradeRequest]) (*connect.Response[tradev1.GetTradeResponse], error) {
	t, err := s.app.GetTrade(ctx, req.Msg.CorrelationKey)
	if err != nil {
		return nil, connectjson.ToConnectError(err)
	}
	return connect.NewResponse(&tradev1.GetTradeResponse{Trade: tradeToProto(t)}), nil
}

// ListTrades lists pending trades, optionally for one owner
func (s *Service) ListTrades(ctx context.Context, req *connect.Request[tradev1.ListTradesRequest]) (*connect.Response[tradev1.ListTradesResponse], error) {
	var (
		trades []models.Trade
		err    error
	)
	if req.Msg.OwnerId != "" {
		trades, err = s.app.ListTradesForOwner(ctx, models.OwnerID(req.Msg.OwnerId))
	} else {
		trades, err = s.app.ListTrades(ctx)
	}
	if err != nil {
		return nil, connectjson.ToConnectError(err)
	}

	protoTrades := make([]*tradev1.Trade, len(trades))
	for i := range trades {
		protoTrades[i] = tradeToProto(&trades[i])
	}
	return connect.NewResponse(&tradev1.ListTradesResponse{Trades: protoTrades}), nil
}

// ExecuteTrade applies the swap
func (s *Service) ExecuteTrade(ctx context.Context, req *connect.Request[tradev1.ExecuteTradeRequest]) (*connect.Response[tradev1.ExecuteTradeResponse], error) {
	t, err := s.app.ExecuteTrade(ctx, req.Msg.CorrelationKey)
	if err != nil {
		return nil, connectjson.ToConnectError(err)
	}
	return connect.NewResponse(&tradev1.ExecuteTradeResponse{Trade: tradeToProto(t)}), nil
}

// CancelTrade removes the trade
func (s *Service) CancelTrade(ctx context.Context, req *connect.Request[tradev1.CancelTradeRequest]) (*connect.Response[tradev1.CancelTradeResponse], error) {
	t, err := s.app.CancelTrade(ctx, req.Msg.CorrelationKey)
	if err != nil {
		return nil, connectjson.ToConnectError(err)
	}
	return connect.NewResponse(&tradev1.CancelTradeResponse{Trade: tradeToProto(t)}), nil
}

// AcceptTrade executes the trade for its counterparty
func (s *Service) AcceptTrade(ctx context.Context, req *connect.Request[tradev1.RespondTradeRequest]) (*connect.Response[tradev1.RespondTradeResponse], error) {
	return s.respond(ctx, req, s.app.AcceptTrade)
}

// DenyTrade cancels the trade for its counterparty
func (s *Service) DenyTrade(ctx context.Context, req *connect.Request[tradev1.RespondTradeRequest]) (*connect.Response[tradev1.RespondTradeResponse], error) {
	return s.respond(ctx, req, s.app.DenyTrade)
}

// WithdrawTrade cancels the trade for its proposer
func (s *Service) WithdrawTrade(ctx context.Context, req *connect.Request[tradev1.RespondTradeRequest]) (*connect.Response[tradev1.RespondTradeResponse], error) {
	return s.respond(ctx, req, s.app.WithdrawTrade)
}

func (s *Service) respond(
	ctx context.Context,
	req *connect.Request[tradev1.RespondTradeRequest],
	action func(ctx context.Context, key string, actor models.OwnerID) (*models.Trade, error),
) (*connect.Response[tradev1.RespondTradeResponse], error) {
	if req.Msg.ActorId == "" {
		return nil, connectjson.ToConnectError(fmt.Errorf("%w: actor ID is required", models.ErrInvalidArgument))
	}
	t, err := action(ctx, req.Msg.CorrelationKey, models.OwnerID(req.Msg.ActorId))
	if err != nil {
		return nil, connectjson.ToConnectError(err)
	}
	return connect.NewResponse(&tradev1.RespondTradeResponse{Trade: tradeToProto(t)}), nil
}

// SweepTrades runs one expiration pass on demand
func (s *Service) SweepTrades(ctx context.Context, req *connect.Request[tradev1.SweepTradesRequest]) (*connect.Response[tradev1.SweepTradesResponse], error) {
	expired, err := s.app.Sweep(ctx)
	if err != nil {
		return nil, connectjson.ToConnectError(err)
	}

	out := make([]*tradev1.ExpiredTrade, len(expired))
	for i := range expired {
		out[i] = &tradev1.ExpiredTrade{
			Trade:  tradeToProto(&expired[i].Trade),
			Reason: models.ErrorCode(expired[i].Reason),
		}
	}
	return connect.NewResponse(&tradev1.SweepTradesResponse{Expired: out}), nil
}

func tradeToProto(t *models.Trade) *tradev1.Trade {
	return &tradev1.Trade{
		Id:              t.ID.String(),
		ProposerId:      t.ProposerID.String(),
		CounterpartyId:  t.CounterpartyID.String(),
		OfferedPlayer:   t.Offered.String(),
		RequestedPlayer: t.Requested.String(),
		CorrelationKey:  t.Key(),
		Status:          string(t.Status),
		CreatedAt:       t.CreatedAt,
	}
}
