// Package session - многошаговые игры: одна живая сессия на счёт, таймаут хода, расчёт ровно один раз
package session

import (
	"casino_engine/internal/events"
	"casino_engine/internal/game/catalog"
	"casino_engine/internal/metrics"
	"casino_engine/internal/model"
	"casino_engine/internal/service"
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	policyCashOut = "cashout"
	policyForfeit = "forfeit"
	policyStop    = "shutdown"
)

type handle struct {
	mu         sync.Mutex
	id         string
	accountID  int64
	bet        int64
	game       Game
	expiresAt  time.Time
	timer      *time.Timer
	finished   bool
	resolution *model.Resolution
	settlement *model.Settlement
}

type serv struct {
	bets      service.BetService
	registry  *Registry
	newGame   Factory
	publisher events.Publisher
	log       *logrus.Logger
	timeout   time.Duration
	now       func() time.Time
}

// NewSessionService - координатор сессий. timeout - сколько ждать следующего хода
func NewSessionService(
	bets service.BetService,
	factory Factory,
	publisher events.Publisher,
	log *logrus.Logger,
	timeout time.Duration,
) service.SessionService {
	return &serv{
		bets:      bets,
		registry:  NewRegistry(),
		newGame:   factory,
		publisher: publisher,
		log:       log,
		timeout:   timeout,
		now:       time.Now,
	}
}

// Start занимает счёт, списывает ставку и раздаёт игру.
// Если игра закончилась на раздаче (натуральный блэкджек), она тут же рассчитывается
func (s *serv) Start(ctx context.Context, accountID int64, req service.StartRequest) (*model.MoveResult, error) {
	if _, ok := s.registry.Active(accountID); ok {
		return nil, model.ErrSessionActive
	}
	g, err := s.newGame(req.Game, req.Difficulty)
	if err != nil {
		return nil, err
	}

	h := &handle{
		id:        uuid.NewString(),
		accountID: accountID,
		bet:       req.Bet,
		game:      g,
		expiresAt: s.now().Add(s.timeout),
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := s.registry.Reserve(h); err != nil {
		return nil, err
	}
	if _, err := s.bets.HoldStake(ctx, accountID, req.Bet, g.Type()); err != nil {
		h.finished = true
		s.registry.Cancel(h)
		return nil, err
	}
	metrics.SessionsActive.Inc()
	s.logger(h).Info("session started")

	if g.Terminal() {
		if err := s.finish(context.WithoutCancel(ctx), h, g.Resolution()); err != nil {
			return nil, err
		}
		return s.result(h), nil
	}
	h.timer = time.AfterFunc(s.timeout, func() { s.expire(h, false) })
	return s.result(h), nil
}

// ApplyMove применяет ход к сессии счёта. Чужая или неизвестная сессия - ErrSessionNotFound
func (s *serv) ApplyMove(ctx context.Context, accountID int64, sessionID string, move model.Move) (*model.MoveResult, error) {
	h, err := s.lookup(accountID, sessionID)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.finished {
		return nil, model.ErrAlreadyTerminal
	}
	if err := h.game.Apply(move); err != nil {
		return nil, err
	}

	if h.game.Terminal() {
		if err := s.finish(context.WithoutCancel(ctx), h, h.game.Resolution()); err != nil {
			return nil, err
		}
		return s.result(h), nil
	}

	h.expiresAt = s.now().Add(s.timeout)
	h.timer.Reset(s.timeout)
	return s.result(h), nil
}

func (s *serv) Get(accountID int64, sessionID string) (*model.SessionInfo, error) {
	h, err := s.lookup(accountID, sessionID)
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	info := s.info(h)
	return &info, nil
}

func (s *serv) Active(accountID int64) (*model.SessionInfo, bool) {
	h, ok := s.registry.Active(accountID)
	if !ok {
		return nil, false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.finished {
		return nil, false
	}
	info := s.info(h)
	return &info, true
}

// Shutdown рассчитывает все живые сессии по правилу таймаута
func (s *serv) Shutdown(ctx context.Context) {
	for _, h := range s.registry.Live() {
		if ctx.Err() != nil {
			s.log.WithError(ctx.Err()).Warn("session shutdown interrupted")
			return
		}
		s.expire(h, true)
	}
}

func (s *serv) lookup(accountID int64, sessionID string) (*handle, error) {
	h, ok := s.registry.Lookup(sessionID)
	if !ok || h.accountID != accountID {
		return nil, model.ErrSessionNotFound
	}
	return h, nil
}

// expire срабатывает по таймеру. Ход, пришедший раньше, уже сдвинул срок, тогда ничего не делаем
func (s *serv) expire(h *handle, force bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.finished {
		return
	}
	if !force && s.now().Before(h.expiresAt) {
		return
	}

	policy := policyForfeit
	res := model.Resolution{Result: model.ResultLoss}
	if h.game.Progress() {
		policy = policyCashOut
		res = h.game.CashOut()
	}
	if force {
		policy = policyStop
	}
	metrics.SessionTimeouts.WithLabelValues(string(h.game.Type()), policy).Inc()
	s.logger(h).WithField("policy", policy).Info("session timed out")

	if err := s.finish(context.Background(), h, res); err != nil {
		s.logger(h).WithError(err).Error("failed to settle expired session")
	}
}

// finish рассчитывает сессию. Вызывается под h.mu, повторный вызов ничего не делает.
// Сессия завершается, даже если расчёт отклонён
func (s *serv) finish(ctx context.Context, h *handle, res model.Resolution) error {
	if h.finished {
		return nil
	}
	h.finished = true
	h.resolution = &res
	if h.timer != nil {
		h.timer.Stop()
	}
	defer func() {
		s.registry.Release(h)
		metrics.SessionsActive.Dec()
	}()

	net := catalog.Payout(h.bet, res.Multiplier) - h.bet
	settlement, err := s.bets.SettleBet(ctx, model.SettleRequest{
		AccountID: h.accountID,
		BetAmount: h.bet,
		NetChange: net,
		Game:      h.game.Type(),
		Result:    res.Result,
		StakeHeld: true,
	})
	if err != nil {
		s.logger(h).WithError(err).Warn("session settlement rejected")
		return err
	}
	h.settlement = settlement

	s.logger(h).WithFields(logrus.Fields{"result": res.Result, "net": net}).Info("session finished")
	if err := s.publisher.Publish(ctx, events.Event{
		Type:      events.SessionFinished,
		AccountID: h.accountID,
		At:        s.now().UTC(),
		Payload:   s.info(h),
	}); err != nil {
		s.logger(h).WithError(err).Warn("failed to publish event")
	}
	return nil
}

func (s *serv) info(h *handle) model.SessionInfo {
	return model.SessionInfo{
		ID:        h.id,
		AccountID: h.accountID,
		Game:      h.game.Type(),
		Bet:       h.bet,
		Terminal:  h.finished,
		ExpiresAt: h.expiresAt,
		View:      h.game.View(),
	}
}

func (s *serv) result(h *handle) *model.MoveResult {
	return &model.MoveResult{
		Session:    s.info(h),
		Resolution: h.resolution,
		Settlement: h.settlement,
	}
}

func (s *serv) logger(h *handle) *logrus.Entry {
	return s.log.WithFields(logrus.Fields{
		"account_id": h.accountID,
		"session_id": h.id,
		"game":       h.game.Type(),
	})
}
