package catalog

import (
	"casino_engine/internal/game/cards"
	"casino_engine/internal/game/rng"
	"casino_engine/internal/model"
	"strings"
)

type BaccaratSide string

const (
	BaccaratPlayer BaccaratSide = "player"
	BaccaratBanker BaccaratSide = "banker"
	BaccaratTie    BaccaratSide = "tie"
)

var baccaratPayouts = map[BaccaratSide]float64{
	BaccaratPlayer: 2,
	BaccaratBanker: 1.95,
	BaccaratTie:    9,
}

var baccaratAliases = map[string]BaccaratSide{
	"player":  BaccaratPlayer,
	"jogador": BaccaratPlayer,
	"banker":  BaccaratBanker,
	"banca":   BaccaratBanker,
	"tie":     BaccaratTie,
	"empate":  BaccaratTie,
}

type Baccarat struct {
	Side BaccaratSide
}

type BaccaratDetail struct {
	Player      []int        `json:"player"`
	Banker      []int        `json:"banker"`
	PlayerTotal int          `json:"player_total"`
	BankerTotal int          `json:"banker_total"`
	Natural     bool         `json:"natural"`
	Winner      BaccaratSide `json:"winner"`
}

func ParseBaccaratBet(s string) (Baccarat, error) {
	side, ok := baccaratAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return Baccarat{}, invalid("unknown baccarat bet %q", s)
	}
	return Baccarat{Side: side}, nil
}

func (Baccarat) Type() model.GameType { return model.GameBaccarat }
func (Baccarat) sealed() {}

func (g Baccarat) Validate() error {
	if _, ok := baccaratPayouts[g.Side]; !ok {
		return invalid("unknown baccarat bet %q", g.Side)
	}
	return nil
}

// baccaratValue: туз - 1, картинки и десятки - 0
func baccaratValue(rank int) int {
	if rank >= 10 {
		return 0
	}
	return rank
}

func handTotal(ranks []int) int {
	total := 0
	for _, r := range ranks {
		total += baccaratValue(r)
	}
	return total % 10
}

// bankerDraws - правило третьей карты банкира при взятой третьей карте игрока
func bankerDraws(banker, playerThird int) bool {
	switch banker {
	case 0, 1, 2:
		return true
	case 3:
		return playerThird != 8
	case 4:
		return playerThird >= 2 && playerThird <= 7
	case 5:
		return playerThird >= 4 && playerThird <= 7
	case 6:
		return playerThird == 6 || playerThird == 7
	default:
		return false
	}
}

// DealBaccarat раздаёт руки, беря ранги из next по порядку
func DealBaccarat(next func() int) BaccaratDetail {
	player := []int{next()}
	banker := []int{next()}
	player = append(player, next())
	banker = append(banker, next())

	d := BaccaratDetail{}
	pt, bt := handTotal(player), handTotal(banker)
	if pt >= 8 || bt >= 8 {
		d.Natural = true
	} else {
		playerThird := -1
		if pt <= 5 {
			c := next()
			player = append(player, c)
			playerThird = baccaratValue(c)
		}
		if playerThird < 0 {
			if bt <= 5 {
				banker = append(banker, next())
			}
		} else if bankerDraws(bt, playerThird) {
			banker = append(banker, next())
		}
	}

	d.Player, d.Banker = player, banker
	d.PlayerTotal, d.BankerTotal = handTotal(player), handTotal(banker)
	switch {
	case d.PlayerTotal > d.BankerTotal:
		d.Winner = BaccaratPlayer
	case d.BankerTotal > d.PlayerTotal:
		d.Winner = BaccaratBanker
	default:
		d.Winner = BaccaratTie
	}
	return d
}

func (Baccarat) Sample(src rng.Source) BaccaratDetail {
	return DealBaccarat(func() int { return cards.RandomRank(src) })
}

// Settle: при ничьей ставки на игрока и банкира возвращаются
func (g Baccarat) Settle(d BaccaratDetail) Outcome {
	switch {
	case d.Winner == g.Side:
		return outcome(g.Type(), baccaratPayouts[g.Side], d)
	case d.Winner == BaccaratTie:
		return outcome(g.Type(), 1, d)
	default:
		return outcome(g.Type(), 0, d)
	}
}

func (g Baccarat) Play(src rng.Source) Outcome {
	return g.Settle(g.Sample(src))
}
