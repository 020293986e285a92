package user

import (
	"encoding/json"
	"net/http"

	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/domain"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/logx"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/mw"
	v1 "github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/v1"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Login godoc
// @Summary     Authenticate user
// @Description Возвращает JWT при валидных email и пароле.
// @Tags        user
// @Accept      json
// @Produce     json
// @Param       request body loginRequest true "email, password"
// @Success     200 {object} loginResponse
// @Failure     400 {object} v1.MessageResponse
// @Failure     401 {object} v1.MessageResponse
// @Failure     500 {object} v1.MessageResponse
// @Router      /user/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	const op = "user.login"
	reqID := mw.RequestIDFromCtx(r.Context())

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logx.Error(h.Log, reqID, op, "bad json", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	if req.Email == "" || req.Password == "" {
		logx.Error(h.Log, reqID, op, "empty email or password", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	u, err := h.Users.UserByEmail(r.Context(), req.Email)
	if err != nil {
		logx.Error(h.Log, reqID, op, "user not found", err, "email", req.Email)
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	ok, err := h.Hasher.Verify(req.Password, u.PassHash)
	if err != nil || !ok {
		logx.Error(h.Log, reqID, op, "password verify failed", err, "email", req.Email)
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	token, _, err := h.Tokens.Issue(r.Context(), u.ID)
	if err != nil {
		logx.Error(h.Log, reqID, op, "issue token failed", err, "user_id", u.ID)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "user_id", u.ID)
	v1.WriteJSON(w, r, http.StatusOK, loginResponse{Token: token, User: u})
}
