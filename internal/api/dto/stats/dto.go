package stats

type RTPResponse struct {
	Game        string  `json:"game"`
	Rounds      int64   `json:"rounds"`
	TotalBet    int64   `json:"total_bet"`
	TotalPayout int64   `json:"total_payout"`
	RTP         float64 `json:"rtp"`        // Проценты за всё время
	WindowRTP   float64 `json:"window_rtp"` // Проценты в окне последних раундов
	WindowSize  int     `json:"window_size"`
}
