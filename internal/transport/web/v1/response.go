package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/domain"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/mw"
)

// Конверт ошибок/статусов API: {"message": "..."}
type MessageResponse struct {
	Message string `json:"message"`
}

// MapDomainError решает HTTP-статус + текст message
func MapDomainError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrBadParams), errors.Is(err, domain.ErrInvalidRef):
		return http.StatusBadRequest, "invalid request"
	case errors.Is(err, domain.ErrMissingToken),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrExpiredToken),
		errors.Is(err, domain.ErrUnauth):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "permission denied"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "conflict"
	default:
		// ErrStorage / ErrPersistence / всё неожиданное
		return http.StatusInternalServerError, "internal server error"
	}
}

func WriteJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", mw.RequestIDFromCtx(r.Context()))
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteMessage(w http.ResponseWriter, r *http.Request, status int, msg string) {
	WriteJSON(w, r, status, MessageResponse{Message: msg})
}

func WriteDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := MapDomainError(err)
	WriteMessage(w, r, status, msg)
}
