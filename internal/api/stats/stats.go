package stats

import (
	"casino_engine/internal/converter"
	"casino_engine/internal/repository"
	"casino_engine/pkg/resp"
	"net/http"
)

type HandlerDeps struct {
	Repo repository.RTPRepository
}

type Handler struct {
	repo repository.RTPRepository
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{repo: deps.Repo}
}

// RTP - наблюдаемый RTP по играм с момента запуска процесса
func (h *Handler) RTP(w http.ResponseWriter, _ *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToRTPResponse(h.repo.Snapshot()))
}
