package account

import (
	dto "casino_engine/internal/api/dto/account"
	"casino_engine/internal/converter"
	"casino_engine/internal/middleware"
	"casino_engine/internal/model"
	"casino_engine/internal/service"
	"casino_engine/pkg/req"
	"casino_engine/pkg/resp"
	"errors"
	"net/http"
	"strconv"
)

// maxHistoryLimit - потолок параметра limit для истории
const maxHistoryLimit = 100

type HandlerDeps struct {
	Ledger       service.LedgerService
	Bets         service.BetService
	Achievements service.AchievementService
	HistoryLimit int
}

type Handler struct {
	ledger       service.LedgerService
	bets         service.BetService
	achievements service.AchievementService
	historyLimit int
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		ledger:       deps.Ledger,
		bets:         deps.Bets,
		achievements: deps.Achievements,
		historyLimit: deps.HistoryLimit,
	}
}

// Me возвращает счёт игрока. Счёт заводится при первом обращении в middleware.Auth
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	a, err := h.ledger.Account(r.Context(), middleware.AccountID(r.Context()))
	if err != nil {
		resp.WriteError(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToAccountResponse(a))
}

func (h *Handler) Transactions(w http.ResponseWriter, r *http.Request) {
	limit, ok := h.limit(w, r)
	if !ok {
		return
	}
	txs, err := h.ledger.Transactions(r.Context(), middleware.AccountID(r.Context()), limit)
	if err != nil {
		resp.WriteError(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToTransactionsResponse(txs))
}

func (h *Handler) Outcomes(w http.ResponseWriter, r *http.Request) {
	limit, ok := h.limit(w, r)
	if !ok {
		return
	}
	outcomes, err := h.ledger.Outcomes(r.Context(), middleware.AccountID(r.Context()), limit)
	if err != nil {
		resp.WriteError(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToOutcomesResponse(outcomes))
}

func (h *Handler) Transfer(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.TransferRequest](r.Body)
	if err != nil {
		resp.WriteBadRequest(w, "invalid request")
		return
	}

	res, err := h.bets.Transfer(r.Context(), middleware.AccountID(r.Context()), payload.To, payload.Amount)
	if err != nil {
		resp.WriteError(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToTransferResponse(res))
}

func (h *Handler) Daily(w http.ResponseWriter, r *http.Request) {
	claim, err := h.bets.ClaimDaily(r.Context(), middleware.AccountID(r.Context()))
	if errors.Is(err, model.ErrDailyNotReady) && claim != nil {
		status, code := resp.Status(err)
		resp.WriteJSONResponse(w, status, dto.DailyNotReadyResponse{
			Error:  err.Error(),
			Code:   code,
			Streak: claim.Streak,
			NextAt: claim.NextAt,
		})
		return
	}
	if err != nil {
		resp.WriteError(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToDailyResponse(claim))
}

func (h *Handler) Achievements(w http.ResponseWriter, r *http.Request) {
	list, err := h.achievements.List(r.Context(), middleware.AccountID(r.Context()))
	if err != nil {
		resp.WriteError(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToUnlockedResponse(list))
}

// EvaluateAchievements - ручная проверка достижений, отдаёт только новые
func (h *Handler) EvaluateAchievements(w http.ResponseWriter, r *http.Request) {
	unlocked, err := h.achievements.Evaluate(r.Context(), middleware.AccountID(r.Context()))
	if err != nil {
		resp.WriteError(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToAchievementsResponse(unlocked))
}

func (h *Handler) limit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return h.historyLimit, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		resp.WriteBadRequest(w, "limit must be a positive integer")
		return 0, false
	}
	return min(n, maxHistoryLimit), true
}
