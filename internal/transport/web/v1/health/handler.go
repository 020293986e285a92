package health

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/domain"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/logx"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/mw"
	v1 "github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/v1"
)

type Pinger interface {
	Ping(context.Context) error
}

type Handler struct {
	Log   *log.Logger
	DB    Pinger
	Cache Pinger
}

// Liveness godoc
// @Summary      Liveness probe
// @Description  Проверка, жив ли сервис (не зависит от БД/кэша)
// @Tags         health
// @Produce      json
// @Success      200 {object} v1.MessageResponse
// @Router       /healthz [get]
func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	v1.WriteMessage(w, r, http.StatusOK, "ok")
}

// Readiness godoc
// @Summary      Readiness probe
// @Description  Проверка готовности сервиса (включая пинг БД и Redis)
// @Tags         health
// @Produce      json
// @Success      200 {object} v1.MessageResponse
// @Failure      500 {object} v1.MessageResponse
// @Router       /readyz [get]
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	const op = "health.readiness"
	reqID := mw.RequestIDFromCtx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.DB.Ping(ctx); err != nil {
		logx.Error(h.Log, reqID, op, "db ping failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}
	if err := h.Cache.Ping(ctx); err != nil {
		logx.Error(h.Log, reqID, op, "cache ping failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	v1.WriteMessage(w, r, http.StatusOK, "ready")
}
