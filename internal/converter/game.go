package converter

import (
	"casino_engine/internal/api/dto/game"
	"casino_engine/internal/game/catalog"
	"casino_engine/internal/model"
	"casino_engine/internal/service"
	"strings"
)

// ToPlayRequest собирает игру каталога из запроса
func ToPlayRequest(req game.PlayRequest) (service.PlayRequest, error) {
	g, err := catalog.New(model.GameType(strings.ToLower(strings.TrimSpace(req.Game))), catalog.Params{
		Choice: req.Choice,
		Target: req.Target,
		Picks:  req.Picks,
	})
	if err != nil {
		return service.PlayRequest{}, err
	}
	return service.PlayRequest{Game: g, Bet: req.Bet}, nil
}

func ToSettlementResponse(s *model.Settlement) game.SettlementResponse {
	return game.SettlementResponse{
		Bet:       s.BetAmount,
		Payout:    s.BetAmount + s.NetChange,
		NetChange: s.NetChange,
		Result:    string(s.Result),
		Balance:   s.Balance,
		Unlocked:  ToAchievementsResponse(s.Unlocked),
	}
}

func ToPlayResponse(r *service.PlayResult) game.PlayResponse {
	return game.PlayResponse{
		Game:       string(r.Outcome.Game),
		Multiplier: r.Outcome.Multiplier,
		Detail:     r.Outcome.Detail,
		Settlement: ToSettlementResponse(r.Settlement),
	}
}

func ToDoubleHistoryResponse(last []catalog.DoubleColor) game.DoubleHistoryResponse {
	out := make([]string, 0, len(last))
	for _, c := range last {
		out = append(out, string(c))
	}
	return game.DoubleHistoryResponse{Last: out}
}
