package session

import (
	dto "casino_engine/internal/api/dto/session"
	"casino_engine/internal/converter"
	"casino_engine/internal/middleware"
	"casino_engine/internal/model"
	"casino_engine/internal/service"
	"casino_engine/pkg/req"
	"casino_engine/pkg/resp"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type HandlerDeps struct {
	Serv service.SessionService
}

type Handler struct {
	serv service.SessionService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.StartRequest](r.Body)
	if err != nil {
		resp.WriteBadRequest(w, "invalid request")
		return
	}

	res, err := h.serv.Start(r.Context(), middleware.AccountID(r.Context()), converter.ToStartRequest(payload))
	if err != nil {
		resp.WriteError(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToMoveResponse(res))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	info, err := h.serv.Get(middleware.AccountID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		resp.WriteError(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSessionResponse(*info))
}

// Active - живая сессия игрока, 404 если её нет
func (h *Handler) Active(w http.ResponseWriter, r *http.Request) {
	info, ok := h.serv.Active(middleware.AccountID(r.Context()))
	if !ok {
		resp.WriteError(w, model.ErrSessionNotFound)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSessionResponse(*info))
}

func (h *Handler) Move(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.MoveRequest](r.Body)
	if err != nil {
		resp.WriteBadRequest(w, "invalid request")
		return
	}
	move, err := converter.ToMove(payload)
	if err != nil {
		resp.WriteError(w, err)
		return
	}

	res, err := h.serv.ApplyMove(r.Context(), middleware.AccountID(r.Context()), chi.URLParam(r, "id"), move)
	if err != nil {
		resp.WriteError(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToMoveResponse(res))
}
