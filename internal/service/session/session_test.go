package session

import (
	"casino_engine/internal/config/env"
	"casino_engine/internal/events"
	"casino_engine/internal/game/mines"
	"casino_engine/internal/game/rng"
	"casino_engine/internal/game/videopoker"
	"casino_engine/internal/logger"
	"casino_engine/internal/model"
	"casino_engine/internal/repository/rtp_repo"
	"casino_engine/internal/repository/sqlite/sqlitetest"
	"casino_engine/internal/service"
	"casino_engine/internal/service/bet"
	"casino_engine/internal/service/ledger"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

type fakeBets struct {
	service.BetService
	mu        sync.Mutex
	holdErr   error
	settleErr error
	held      []int64
	settled   []model.SettleRequest
}

func (f *fakeBets) HoldStake(_ context.Context, accountID, amount int64, _ model.GameType) (*model.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.holdErr != nil {
		return nil, f.holdErr
	}
	f.held = append(f.held, amount)
	return &model.Account{ID: accountID}, nil
}

func (f *fakeBets) SettleBet(_ context.Context, req model.SettleRequest) (*model.Settlement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.settleErr != nil {
		return nil, f.settleErr
	}
	f.settled = append(f.settled, req)
	return &model.Settlement{AccountID: req.AccountID, BetAmount: req.BetAmount, NetChange: req.NetChange, Game: req.Game, Result: req.Result}, nil
}

func (f *fakeBets) requests() []model.SettleRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.SettleRequest(nil), f.settled...)
}

// scripted: hit двигает игру, cashout закрывает её с x2
type scripted struct {
	terminal bool
	progress bool
	res      model.Resolution
}

func (g *scripted) Type() model.GameType { return model.GameTower }
func (g *scripted) Terminal() bool { return g.terminal }
func (g *scripted) Resolution() model.Resolution { return g.res }
func (g *scripted) Progress() bool { return g.progress }
func (g *scripted) View() any { return g.progress }

func (g *scripted) Apply(m model.Move) error {
	switch m.Kind {
	case model.MoveHit:
		g.progress = true
		return nil
	case model.MoveCashOut:
		g.terminal = true
		g.res = model.Resolution{Result: model.ResultWin, Multiplier: 2}
		return nil
	default:
		return fmt.Errorf("%w: %s", model.ErrInvalidMove, m.Kind)
	}
}

func (g *scripted) CashOut() model.Resolution {
	g.terminal = true
	g.res = model.Resolution{Result: model.ResultWin, Multiplier: 1.5}
	return g.res
}

func newCoordinator(bets *fakeBets, newGame func() Game) *serv {
	factory := func(model.GameType, string) (Game, error) { return newGame(), nil }
	s := NewSessionService(bets, factory, events.Nop(), logger.Discard(), time.Hour)
	return s.(*serv)
}

func start(t *testing.T, s *serv, accountID int64) *model.MoveResult {
	t.Helper()
	res, err := s.Start(context.Background(), accountID, service.StartRequest{Game: model.GameTower, Bet: 100})
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()

	bets := &fakeBets{}
	s := newCoordinator(bets, func() Game { return &scripted{} })
	ctx := context.Background()

	started := start(t, s, 1)
	if started.Session.Terminal || started.Settlement != nil {
		t.Fatalf("started = %+v", started)
	}
	if _, ok := s.Active(1); !ok {
		t.Fatal("no active session after start")
	}

	res, err := s.ApplyMove(ctx, 1, started.Session.ID, model.Move{Kind: model.MoveHit})
	if err != nil {
		t.Fatal(err)
	}
	if res.Session.Terminal || len(bets.requests()) != 0 {
		t.Fatalf("after hit = %+v", res)
	}

	res, err = s.ApplyMove(ctx, 1, started.Session.ID, model.Move{Kind: model.MoveCashOut})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Session.Terminal || res.Settlement == nil || res.Settlement.NetChange != 100 {
		t.Fatalf("after cashout = %+v", res)
	}

	if _, err := s.ApplyMove(ctx, 1, started.Session.ID, model.Move{Kind: model.MoveHit}); !errors.Is(err, model.ErrAlreadyTerminal) {
		t.Errorf("move after finish = %v, want ErrAlreadyTerminal", err)
	}
	if info, err := s.Get(1, started.Session.ID); err != nil || !info.Terminal {
		t.Errorf("Get() after finish = %+v, %v", info, err)
	}
	if _, ok := s.Active(1); ok {
		t.Error("session still active after finish")
	}
	reqs := bets.requests()
	if len(reqs) != 1 || !reqs[0].StakeHeld {
		t.Errorf("settle requests = %+v, want one with held stake", reqs)
	}

	next := start(t, s, 1)
	if _, err := s.Get(1, started.Session.ID); !errors.Is(err, model.ErrSessionNotFound) {
		t.Errorf("old session after new start = %v, want ErrSessionNotFound", err)
	}
	if next.Session.ID == started.Session.ID {
		t.Error("session id reused")
	}
}

func TestSessionActive(t *testing.T) {
	t.Parallel()

	s := newCoordinator(&fakeBets{}, func() Game { return &scripted{} })
	start(t, s, 1)

	_, err := s.Start(context.Background(), 1, service.StartRequest{Game: model.GameTower, Bet: 100})
	if !errors.Is(err, model.ErrSessionActive) {
		t.Fatalf("second Start() = %v, want ErrSessionActive", err)
	}
	// другой счёт не мешает
	start(t, s, 2)
}

func TestSessionNotFound(t *testing.T) {
	t.Parallel()

	s := newCoordinator(&fakeBets{}, func() Game { return &scripted{} })
	started := start(t, s, 1)
	ctx := context.Background()

	tests := []struct {
		name      string
		accountID int64
		id        string
	}{
		{name: "foreign", accountID: 2, id: started.Session.ID},
		{name: "unknown", accountID: 1, id: "no-such-session"},
	}
	for _, tt := range tests {
		if _, err := s.ApplyMove(ctx, tt.accountID, tt.id, model.Move{Kind: model.MoveHit}); !errors.Is(err, model.ErrSessionNotFound) {
			t.Errorf("%s: ApplyMove() = %v, want ErrSessionNotFound", tt.name, err)
		}
		if _, err := s.Get(tt.accountID, tt.id); !errors.Is(err, model.ErrSessionNotFound) {
			t.Errorf("%s: Get() = %v, want ErrSessionNotFound", tt.name, err)
		}
	}
}

func TestInvalidMoveKeepsSession(t *testing.T) {
	t.Parallel()

	s := newCoordinator(&fakeBets{}, func() Game { return &scripted{} })
	started := start(t, s, 1)

	_, err := s.ApplyMove(context.Background(), 1, started.Session.ID, model.Move{Kind: model.MoveDraw})
	if !errors.Is(err, model.ErrInvalidMove) {
		t.Fatalf("ApplyMove() = %v, want ErrInvalidMove", err)
	}
	if _, ok := s.Active(1); !ok {
		t.Error("invalid move ended the session")
	}
}

func TestStartRejected(t *testing.T) {
	t.Parallel()

	s := newCoordinator(&fakeBets{holdErr: model.ErrInsufficientFunds}, func() Game { return &scripted{} })
	if _, err := s.Start(context.Background(), 1, service.StartRequest{Game: model.GameTower, Bet: 100}); !errors.Is(err, model.ErrInsufficientFunds) {
		t.Fatalf("Start() = %v, want ErrInsufficientFunds", err)
	}
	if _, ok := s.Active(1); ok {
		t.Error("rejected start reserved the account")
	}
	if live := s.registry.Live(); len(live) != 0 {
		t.Errorf("registry keeps %d sessions after rejected start", len(live))
	}
}

func TestTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		moves      []model.Move
		wantNet    int64
		wantResult model.Result
	}{
		{name: "no progress forfeits", wantNet: -100, wantResult: model.ResultLoss},
		{name: "progress cashes out", moves: []model.Move{{Kind: model.MoveHit}}, wantNet: 50, wantResult: model.ResultWin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			bets := &fakeBets{}
			s := newCoordinator(bets, func() Game { return &scripted{} })
			base := time.Now()
			s.now = func() time.Time { return base }

			started := start(t, s, 1)
			for _, m := range tt.moves {
				if _, err := s.ApplyMove(context.Background(), 1, started.Session.ID, m); err != nil {
					t.Fatal(err)
				}
			}
			h, ok := s.registry.Lookup(started.Session.ID)
			if !ok {
				t.Fatal("handle not registered")
			}

			// срок ещё не вышел
			s.expire(h, false)
			if len(bets.requests()) != 0 {
				t.Fatal("expired before deadline")
			}

			s.now = func() time.Time { return base.Add(2 * time.Hour) }
			s.expire(h, false)
			s.expire(h, false)

			reqs := bets.requests()
			if len(reqs) != 1 {
				t.Fatalf("settled %d times, want 1", len(reqs))
			}
			if reqs[0].NetChange != tt.wantNet || reqs[0].Result != tt.wantResult {
				t.Errorf("settle request = %+v", reqs[0])
			}
			if _, ok := s.Active(1); ok {
				t.Error("expired session still active")
			}
			if _, err := s.ApplyMove(context.Background(), 1, started.Session.ID, model.Move{Kind: model.MoveHit}); !errors.Is(err, model.ErrAlreadyTerminal) {
				t.Errorf("move after timeout = %v, want ErrAlreadyTerminal", err)
			}
		})
	}
}

func TestTimerFires(t *testing.T) {
	t.Parallel()

	bets := &fakeBets{}
	factory := func(model.GameType, string) (Game, error) { return &scripted{}, nil }
	s := NewSessionService(bets, factory, events.Nop(), logger.Discard(), 20*time.Millisecond).(*serv)
	start(t, s, 1)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := s.Active(1); !ok {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if _, ok := s.Active(1); ok {
		t.Fatal("session did not time out")
	}
	if reqs := bets.requests(); len(reqs) != 1 || reqs[0].Result != model.ResultLoss {
		t.Errorf("settle requests = %+v", reqs)
	}
}

func TestTerminalAtDeal(t *testing.T) {
	t.Parallel()

	bets := &fakeBets{}
	s := newCoordinator(bets, func() Game {
		return &scripted{terminal: true, res: model.Resolution{Result: model.ResultWin, Multiplier: 2.5}}
	})

	res := start(t, s, 1)
	if !res.Session.Terminal || res.Settlement == nil || res.Settlement.NetChange != 150 {
		t.Fatalf("Start() = %+v", res)
	}
	if _, ok := s.Active(1); ok {
		t.Error("session active after resolving at deal")
	}
}

func TestSettlementRejectedEndsSession(t *testing.T) {
	t.Parallel()

	bets := &fakeBets{}
	s := newCoordinator(bets, func() Game { return &scripted{} })
	started := start(t, s, 1)

	bets.mu.Lock()
	bets.settleErr = model.ErrInsufficientFunds
	bets.mu.Unlock()

	_, err := s.ApplyMove(context.Background(), 1, started.Session.ID, model.Move{Kind: model.MoveCashOut})
	if !errors.Is(err, model.ErrInsufficientFunds) {
		t.Fatalf("ApplyMove() = %v, want ErrInsufficientFunds", err)
	}
	if _, ok := s.Active(1); ok {
		t.Error("session still active after rejected settlement")
	}
	if _, err := s.ApplyMove(context.Background(), 1, started.Session.ID, model.Move{Kind: model.MoveCashOut}); !errors.Is(err, model.ErrAlreadyTerminal) {
		t.Errorf("second move = %v, want ErrAlreadyTerminal", err)
	}
}

func TestShutdown(t *testing.T) {
	t.Parallel()

	bets := &fakeBets{}
	s := newCoordinator(bets, func() Game { return &scripted{} })
	for id := int64(1); id <= 3; id++ {
		start(t, s, id)
	}

	s.Shutdown(context.Background())
	if got := len(bets.requests()); got != 3 {
		t.Errorf("settled %d sessions, want 3", got)
	}
	for id := int64(1); id <= 3; id++ {
		if _, ok := s.Active(id); ok {
			t.Errorf("account %d still has a session", id)
		}
	}
}

func TestMinesSession(t *testing.T) {
	t.Parallel()

	bets := &fakeBets{}
	factory := func(model.GameType, string) (Game, error) { return mines.WithLayout([]int{0, 1, 2, 3, 4}), nil }
	s := NewSessionService(bets, factory, events.Nop(), logger.Discard(), time.Hour)
	ctx := context.Background()

	started, err := s.Start(ctx, 1, service.StartRequest{Game: model.GameMines, Bet: 100})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.ApplyMove(ctx, 1, started.Session.ID, model.Move{Kind: model.MoveReveal, Index: 12}); err != nil {
		t.Fatal(err)
	}
	res, err := s.ApplyMove(ctx, 1, started.Session.ID, model.Move{Kind: model.MoveCashOut})
	if err != nil {
		t.Fatal(err)
	}
	// 1 + 0.5*5/20 = 1.125
	if res.Settlement == nil || res.Settlement.NetChange != 12 || res.Settlement.Game != model.GameMines {
		t.Errorf("settlement = %+v", res.Settlement)
	}
}

func TestFactory(t *testing.T) {
	t.Parallel()

	f := NewFactory(nil)
	if _, err := f(model.GameDice, ""); !errors.Is(err, model.ErrUnknownGame) {
		t.Errorf("factory(dice) = %v, want ErrUnknownGame", err)
	}
	if _, err := f(model.GameMines, "impossible"); !errors.Is(err, model.ErrInvalidWager) {
		t.Errorf("factory(mines, impossible) = %v, want ErrInvalidWager", err)
	}
}

func TestStakeHeldAcrossTransfer(t *testing.T) {
	t.Parallel()

	store := sqlitetest.Open(t)
	log := logger.Discard()
	l := ledger.NewLedgerService(store.Accounts(), store.Transactions(), store.Outcomes(), store.TxManager(), log, 1000)
	bets := bet.NewBetService(l, nil, rtp_repo.NewRTPRepository(0), events.Nop(), env.DefaultEconomyConfig(), log)
	factory := func(model.GameType, string) (Game, error) { return mines.WithLayout([]int{0, 1, 2, 3, 4}), nil }
	s := NewSessionService(bets, factory, events.Nop(), log, time.Hour)
	ctx := context.Background()

	for _, id := range []int64{1, 2} {
		if _, err := l.GetOrCreateAccount(ctx, id, "player"); err != nil {
			t.Fatal(err)
		}
	}
	balance := func(id int64) int64 {
		t.Helper()
		a, err := l.Account(ctx, id)
		if err != nil {
			t.Fatal(err)
		}
		return a.Balance
	}

	started, err := s.Start(ctx, 1, service.StartRequest{Game: model.GameMines, Bet: 1000})
	if err != nil {
		t.Fatal(err)
	}
	if got := balance(1); got != 0 {
		t.Fatalf("balance after start = %d, want 0", got)
	}

	// ставка уже списана, переводить нечего
	if _, err := bets.Transfer(ctx, 1, 2, 1000); !errors.Is(err, model.ErrInsufficientFunds) {
		t.Fatalf("Transfer() during session = %v, want ErrInsufficientFunds", err)
	}

	res, err := s.ApplyMove(ctx, 1, started.Session.ID, model.Move{Kind: model.MoveReveal, Index: 0})
	if err != nil {
		t.Fatal(err)
	}
	if res.Settlement == nil || res.Settlement.NetChange != -1000 || res.Settlement.Result != model.ResultLoss {
		t.Fatalf("settlement = %+v", res.Settlement)
	}
	if got := balance(1); got != 0 {
		t.Errorf("balance after loss = %d, want 0", got)
	}
	if got := balance(2); got != 1000 {
		t.Errorf("recipient balance = %d, want 1000", got)
	}

	outcomes, err := l.Outcomes(ctx, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(outcomes) != 1 || outcomes[0].NetChange != -1000 {
		t.Errorf("outcomes = %+v, want one loss of 1000", outcomes)
	}
	txs, err := l.Transactions(ctx, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	var sum int64
	for _, tx := range txs {
		sum += tx.Amount
	}
	if len(txs) != 1 || sum != -1000 {
		t.Errorf("transactions = %+v, want a single stake row", txs)
	}

	acc, err := l.Account(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if acc.GamesPlayed != 1 || acc.TotalLost != 1000 {
		t.Errorf("stats = played %d lost %d", acc.GamesPlayed, acc.TotalLost)
	}
}

func TestStakeHeldCashOut(t *testing.T) {
	t.Parallel()

	store := sqlitetest.Open(t)
	log := logger.Discard()
	l := ledger.NewLedgerService(store.Accounts(), store.Transactions(), store.Outcomes(), store.TxManager(), log, 1000)
	bets := bet.NewBetService(l, nil, rtp_repo.NewRTPRepository(0), events.Nop(), env.DefaultEconomyConfig(), log)
	factory := func(model.GameType, string) (Game, error) { return mines.WithLayout([]int{0, 1, 2, 3, 4}), nil }
	s := NewSessionService(bets, factory, events.Nop(), log, time.Hour)
	ctx := context.Background()

	if _, err := l.GetOrCreateAccount(ctx, 1, "player"); err != nil {
		t.Fatal(err)
	}
	started, err := s.Start(ctx, 1, service.StartRequest{Game: model.GameMines, Bet: 100})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.ApplyMove(ctx, 1, started.Session.ID, model.Move{Kind: model.MoveReveal, Index: 12}); err != nil {
		t.Fatal(err)
	}
	res, err := s.ApplyMove(ctx, 1, started.Session.ID, model.Move{Kind: model.MoveCashOut})
	if err != nil {
		t.Fatal(err)
	}
	if res.Settlement == nil || res.Settlement.Balance != 1012 {
		t.Fatalf("settlement = %+v, want balance 1012", res.Settlement)
	}

	txs, err := l.Transactions(ctx, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	var sum int64
	for _, tx := range txs {
		sum += tx.Amount
	}
	if len(txs) != 2 || sum != 12 {
		t.Errorf("transactions = %+v, want stake and win summing to 12", txs)
	}
}

func TestVideoPokerTimeoutForfeits(t *testing.T) {
	t.Parallel()

	bets := &fakeBets{}
	factory := func(model.GameType, string) (Game, error) { return videopoker.New(rng.Seeded(7)), nil }
	s := NewSessionService(bets, factory, events.Nop(), logger.Discard(), time.Hour).(*serv)
	base := time.Now()
	s.now = func() time.Time { return base }

	started, err := s.Start(context.Background(), 1, service.StartRequest{Game: model.GameVideoPoker, Bet: 100})
	if err != nil {
		t.Fatal(err)
	}
	h, ok := s.registry.Lookup(started.Session.ID)
	if !ok {
		t.Fatal("handle not registered")
	}

	s.now = func() time.Time { return base.Add(2 * time.Hour) }
	s.expire(h, false)

	reqs := bets.requests()
	if len(reqs) != 1 || reqs[0].Result != model.ResultLoss || reqs[0].NetChange != -100 {
		t.Errorf("settle requests = %+v, want one loss of the stake", reqs)
	}
}
