package resp

import (
	"casino_engine/internal/model"
	"encoding/json"
	"errors"
	"net/http"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func WriteJSONResponse(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

var statuses = []struct {
	err    error
	status int
	code   string
}{
	{model.ErrInvalidWager, http.StatusBadRequest, "invalid_wager"},
	{model.ErrInvalidMove, http.StatusBadRequest, "invalid_move"},
	{model.ErrInvalidTransfer, http.StatusBadRequest, "invalid_transfer"},
	{model.ErrUnknownGame, http.StatusBadRequest, "unknown_game"},
	{model.ErrInsufficientFunds, http.StatusUnprocessableEntity, "insufficient_funds"},
	{model.ErrAccountNotFound, http.StatusNotFound, "account_not_found"},
	{model.ErrSessionNotFound, http.StatusNotFound, "session_not_found"},
	{model.ErrAlreadyTerminal, http.StatusConflict, "already_terminal"},
	{model.ErrSessionActive, http.StatusConflict, "session_active"},
	{model.ErrAlreadyUnlocked, http.StatusConflict, "already_unlocked"},
	{model.ErrNotEarned, http.StatusConflict, "not_earned"},
	{model.ErrConcurrencyConflict, http.StatusConflict, "conflict"},
	{model.ErrDailyNotReady, http.StatusTooManyRequests, "daily_not_ready"},
}

// Status - HTTP-статус и код ошибки. Всё, что не доменная ошибка, отдаётся как internal
func Status(err error) (int, string) {
	for _, s := range statuses {
		if errors.Is(err, s.err) {
			return s.status, s.code
		}
	}
	return http.StatusInternalServerError, "internal"
}

// WriteError пишет ошибку без внутренних подробностей
func WriteError(w http.ResponseWriter, err error) {
	status, code := Status(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = model.ErrInternal.Error()
	}
	WriteJSONResponse(w, status, ErrorResponse{Error: msg, Code: code})
}

func WriteBadRequest(w http.ResponseWriter, msg string) {
	WriteJSONResponse(w, http.StatusBadRequest, ErrorResponse{Error: msg, Code: "bad_request"})
}
