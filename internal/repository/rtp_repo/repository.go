package rtp_repo

import (
	"casino_engine/internal/model"
	"casino_engine/internal/repository"
	"sort"
	"sync"
)

// DefaultWindowSize - сколько последних раундов игры входит в окно
const DefaultWindowSize = 500

type round struct {
	bet    int64
	payout int64
}

type gameState struct {
	rounds      int64
	totalBet    int64
	totalPayout int64

	// кольцевой буфер последних раундов
	window       []round
	next         int
	windowBet    int64
	windowPayout int64
}

type repo struct {
	mtx        sync.RWMutex
	windowSize int
	games      map[model.GameType]*gameState
}

func NewRTPRepository(windowSize int) repository.RTPRepository {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	return &repo{
		windowSize: windowSize,
		games:      make(map[model.GameType]*gameState),
	}
}

// Record учитывает раунд: ставку и полную выплату (bet + net, 0 при проигрыше)
func (r *repo) Record(game model.GameType, bet, payout int64) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	st, ok := r.games[game]
	if !ok {
		st = &gameState{window: make([]round, 0, r.windowSize)}
		r.games[game] = st
	}

	st.rounds++
	st.totalBet += bet
	st.totalPayout += payout

	cur := round{bet: bet, payout: payout}
	if len(st.window) < r.windowSize {
		st.window = append(st.window, cur)
	} else {
		old := st.window[st.next]
		st.windowBet -= old.bet
		st.windowPayout -= old.payout
		st.window[st.next] = cur
		st.next = (st.next + 1) % r.windowSize
	}
	st.windowBet += bet
	st.windowPayout += payout
}

// Snapshot - копия статистики, отсортированная по игре
func (r *repo) Snapshot() []model.RTPStats {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	out := make([]model.RTPStats, 0, len(r.games))
	for game, st := range r.games {
		out = append(out, model.RTPStats{
			Game:        game,
			Rounds:      st.rounds,
			TotalBet:    st.totalBet,
			TotalPayout: st.totalPayout,
			RTP:         percent(st.totalPayout, st.totalBet),
			WindowRTP:   percent(st.windowPayout, st.windowBet),
			WindowSize:  len(st.window),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Game < out[j].Game })
	return out
}

func percent(payout, bet int64) float64 {
	if bet <= 0 {
		return 0
	}
	return float64(payout) / float64(bet) * 100
}
