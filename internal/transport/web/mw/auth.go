package mw

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/domain"
)

type AuthDeps struct {
	Log    *log.Logger
	Tokens domain.TokenManager
}

// Auth — гейт на каждый запрос. Без токена пропускаем только
// маршруты из allow-list (анонимно); с токеном — валидируем всегда,
// провал валидации режет запрос до любого хендлера.
// Public: точные пути либо префиксы, оканчивающиеся на "/".
func Auth(deps AuthDeps, public []string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := extractBearer(r.Header.Get("Authorization"))
		if raw == "" {
			if isPublic(r.URL.Path, public) {
				next.ServeHTTP(w, r) // анонимный доступ
				return
			}
			reject(w, deps, r, domain.ErrMissingToken)
			return
		}

		principal, err := deps.Tokens.Parse(r.Context(), raw)
		if err != nil {
			reject(w, deps, r, err)
			return
		}

		ctx := domain.WithPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// reject пишет 401 сразу и завершает конвейер; хендлер не вызывается
func reject(w http.ResponseWriter, deps AuthDeps, r *http.Request, err error) {
	msg := "unauthorized"
	switch {
	case errors.Is(err, domain.ErrMissingToken):
		msg = "authentication required"
	case errors.Is(err, domain.ErrExpiredToken):
		msg = "token expired"
	case errors.Is(err, domain.ErrInvalidToken):
		msg = "invalid token"
	}
	deps.Log.Printf("lvl=info req_id=%s auth rejected path=%q reason=%v",
		RequestIDFromCtx(r.Context()), r.URL.Path, err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprintf(w, `{"message": %q}`, msg)
}

func isPublic(path string, public []string) bool {
	for _, p := range public {
		if p != "/" && strings.HasSuffix(p, "/") {
			if strings.HasPrefix(path, p) {
				return true
			}
			continue
		}
		if path == p {
			return true
		}
	}
	return false
}

func extractBearer(h string) string {
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
