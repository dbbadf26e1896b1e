package game

import (
	dto "casino_engine/internal/api/dto/game"
	"casino_engine/internal/converter"
	"casino_engine/internal/middleware"
	"casino_engine/internal/service"
	"casino_engine/pkg/req"
	"casino_engine/pkg/resp"
	"net/http"
)

type HandlerDeps struct {
	Serv service.GameService
}

type Handler struct {
	serv service.GameService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Play - одна ставка на игру каталога
func (h *Handler) Play(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.PlayRequest](r.Body)
	if err != nil {
		resp.WriteBadRequest(w, "invalid request")
		return
	}
	play, err := converter.ToPlayRequest(payload)
	if err != nil {
		resp.WriteError(w, err)
		return
	}

	result, err := h.serv.Play(r.Context(), middleware.AccountID(r.Context()), play)
	if err != nil {
		resp.WriteError(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToPlayResponse(result))
}

func (h *Handler) DoubleHistory(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToDoubleHistoryResponse(h.serv.DoubleHistory()))
}
