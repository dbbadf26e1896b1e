package converter

import (
	dto "casino_engine/internal/api/dto/session"
	"casino_engine/internal/model"
	"casino_engine/internal/service"
	"fmt"
	"strings"
)

func ToStartRequest(req dto.StartRequest) service.StartRequest {
	return service.StartRequest{
		Game:       model.GameType(strings.ToLower(strings.TrimSpace(req.Game))),
		Bet:        req.Bet,
		Difficulty: req.Difficulty,
	}
}

// ToMove переводит ход из запроса. Позиции hold вне 0-4 - ErrInvalidMove
func ToMove(req dto.MoveRequest) (model.Move, error) {
	m := model.Move{
		Kind:  model.MoveKind(strings.ToLower(strings.TrimSpace(req.Move))),
		Index: req.Index,
	}
	for _, i := range req.Hold {
		if i < 0 || i >= len(m.Hold) {
			return model.Move{}, fmt.Errorf("%w: hold position %d", model.ErrInvalidMove, i)
		}
		m.Hold[i] = true
	}
	return m, nil
}

func ToSessionResponse(info model.SessionInfo) dto.SessionResponse {
	return dto.SessionResponse{
		ID:        info.ID,
		Game:      string(info.Game),
		Bet:       info.Bet,
		Terminal:  info.Terminal,
		ExpiresAt: info.ExpiresAt,
		View:      info.View,
	}
}

func ToMoveResponse(r *model.MoveResult) dto.SessionResponse {
	out := ToSessionResponse(r.Session)
	if r.Resolution != nil {
		out.Resolution = &dto.ResolutionResponse{Result: string(r.Resolution.Result), Multiplier: r.Resolution.Multiplier}
	}
	if r.Settlement != nil {
		s := ToSettlementResponse(r.Settlement)
		out.Settlement = &s
	}
	return out
}
