package converter

import (
	"casino_engine/internal/api/dto/stats"
	"casino_engine/internal/model"
)

func ToRTPResponse(list []model.RTPStats) []stats.RTPResponse {
	out := make([]stats.RTPResponse, 0, len(list))
	for _, s := range list {
		out = append(out, stats.RTPResponse{
			Game:        string(s.Game),
			Rounds:      s.Rounds,
			TotalBet:    s.TotalBet,
			TotalPayout: s.TotalPayout,
			RTP:         s.RTP,
			WindowRTP:   s.WindowRTP,
			WindowSize:  s.WindowSize,
		})
	}
	return out
}
