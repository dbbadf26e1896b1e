package game

import (
	"casino_engine/internal/game/catalog"
	"casino_engine/internal/game/rng"
	"casino_engine/internal/model"
	"casino_engine/internal/service"
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

type serv struct {
	bets    service.BetService
	src     rng.Source
	history *catalog.DoubleHistory
	log     *logrus.Logger
}

// NewGameService - одиночные игры каталога. src должен быть потокобезопасным
func NewGameService(bets service.BetService, src rng.Source, log *logrus.Logger) service.GameService {
	return &serv{
		bets:    bets,
		src:     src,
		history: catalog.NewDoubleHistory(),
		log:     log,
	}
}

// Play проверяет ставку, разыгрывает исход и проводит его через расчёт ставок.
// Отклонённый расчёт отменяет исход целиком
func (s *serv) Play(ctx context.Context, accountID int64, req service.PlayRequest) (*service.PlayResult, error) {
	if req.Game == nil {
		return nil, fmt.Errorf("%w: no game", model.ErrUnknownGame)
	}
	if err := req.Game.Validate(); err != nil {
		return nil, err
	}
	if err := s.bets.ValidateWager(ctx, accountID, req.Bet); err != nil {
		return nil, err
	}

	out := req.Game.Play(s.src)
	settlement, err := s.bets.SettleBet(ctx, model.SettleRequest{
		AccountID: accountID,
		BetAmount: req.Bet,
		NetChange: catalog.NetChange(req.Bet, out),
		Game:      out.Game,
		Result:    out.Result(),
	})
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{"account_id": accountID, "game": out.Game}).Debug("play rejected")
		return nil, err
	}

	if d, ok := out.Detail.(catalog.DoubleDetail); ok {
		s.history.Push(d.Color)
	}
	return &service.PlayResult{Outcome: out, Settlement: settlement}, nil
}

// DoubleHistory - последние выпадения double, от старых к новым
func (s *serv) DoubleHistory() []catalog.DoubleColor {
	return s.history.Last()
}
