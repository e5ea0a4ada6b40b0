package finance

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/finboard/service-api-go/pkg/httpx"
)

// Handler exposes the exchange rate dashboard endpoint.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) Main(w http.ResponseWriter, r *http.Request) {
	rates, err := h.svc.Latest(r.Context())
	if err != nil {
		h.logger.Errorw("finance request failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rates)
}
