package user

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/coordinator"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/domain"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/logx"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/mw"
	v1 "github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/v1"
)

// Me godoc
// @Summary     Current user profile
// @Tags        user
// @Produce     json
// @Success     200 {object} domain.User
// @Failure     401 {object} v1.MessageResponse
// @Router      /user/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := domain.PrincipalFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}
	u, err := h.Users.UserByID(r.Context(), p.UserID)
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}
	v1.WriteJSON(w, r, http.StatusOK, u)
}

// UpdateProfile godoc
// @Summary     Update profile (nickname and/or image)
// @Description multipart: nickname (опционально), profileImage (опционально).
// @Description Новая картинка пишется до коммита, старая удаляется после.
// @Tags        user
// @Accept      multipart/form-data
// @Produce     json
// @Param       nickname     formData string false "nickname"
// @Param       profileImage formData file   false "profile image"
// @Success     200 {object} domain.User
// @Failure     400 {object} v1.MessageResponse
// @Failure     401 {object} v1.MessageResponse
// @Failure     409 {object} v1.MessageResponse
// @Router      /user/profile [patch]
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	const op = "user.profile"
	reqID := mw.RequestIDFromCtx(r.Context())

	p, ok := domain.PrincipalFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		logx.Error(h.Log, reqID, op, "bad multipart", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	patch := domain.ProfilePatch{Nickname: domain.PatchString(r.FormValue("nickname"))}
	if patch.Nickname != nil && !domain.ValidNickname(*patch.Nickname) {
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	var newBlob *domain.BlobUpload
	if file, hdr, err := r.FormFile("profileImage"); err == nil {
		defer file.Close()
		newBlob = &domain.BlobUpload{Reader: file, Namespace: domain.NSProfileUploads, Name: hdr.Filename}
	}

	if patch.IsEmpty() && newBlob == nil {
		v1.WriteMessage(w, r, http.StatusBadRequest, "no valid fields to update")
		return
	}

	// текущая строка нужна ради старой ссылки на картинку
	cur, err := h.Users.UserByID(r.Context(), p.UserID)
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	var updated domain.User
	_, err = h.Coord.Run(r.Context(), coordinator.Intent{
		OldRef:  cur.ProfileImgURL,
		NewBlob: newBlob,
		Mutate: func(ctx context.Context, ref domain.BlobRef) error {
			if ref != "" {
				patch.ImageRef = &ref
			}
			return h.Tx.InTx(ctx, func(ctx context.Context) error {
				u, err := h.Users.UpdateProfile(ctx, p.UserID, patch)
				if err != nil {
					return err
				}
				updated = u
				return nil
			})
		},
	})
	if err != nil {
		logx.Error(h.Log, reqID, op, "update failed", err, "user_id", p.UserID)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "user_id", p.UserID)
	v1.WriteJSON(w, r, http.StatusOK, updated)
}

// UpdatePassword godoc
// @Summary     Change password
// @Tags        user
// @Accept      json
// @Produce     json
// @Success     200 {object} v1.MessageResponse
// @Failure     400 {object} v1.MessageResponse
// @Failure     401 {object} v1.MessageResponse
// @Router      /user/password [patch]
func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	const op = "user.password"
	reqID := mw.RequestIDFromCtx(r.Context())

	p, ok := domain.PrincipalFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !domain.ValidPassword(req.Password) {
		logx.Error(h.Log, reqID, op, "bad password", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	hashStr, err := h.Hasher.Hash(req.Password)
	if err != nil {
		logx.Error(h.Log, reqID, op, "hash failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}
	if err := h.Users.UpdatePassword(r.Context(), p.UserID, hashStr); err != nil {
		logx.Error(h.Log, reqID, op, "update failed", err, "user_id", p.UserID)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "user_id", p.UserID)
	v1.WriteMessage(w, r, http.StatusOK, "password_updated")
}

// Withdraw godoc
// @Summary     Deactivate account
// @Description Мягкое удаление: строка остаётся, личные поля затираются,
// @Description картинка профиля удаляется best-effort после коммита.
// @Tags        user
// @Produce     json
// @Success     200 {object} v1.MessageResponse
// @Failure     401 {object} v1.MessageResponse
// @Router      /user/withdraw [delete]
func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	const op = "user.withdraw"
	reqID := mw.RequestIDFromCtx(r.Context())

	p, ok := domain.PrincipalFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	cur, err := h.Users.UserByID(r.Context(), p.UserID)
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	if err := h.Tx.InTx(r.Context(), func(ctx context.Context) error {
		return h.Users.Deactivate(ctx, p.UserID)
	}); err != nil {
		logx.Error(h.Log, reqID, op, "deactivate failed", err, "user_id", p.UserID)
		v1.WriteDomainError(w, r, err)
		return
	}

	// строка уже не ссылается на файл — удаляем best-effort
	if cur.ProfileImgURL != "" {
		if err := h.Blobs.Delete(r.Context(), cur.ProfileImgURL); err != nil {
			logx.Error(h.Log, reqID, op, "stale profile image delete failed", err, "ref", cur.ProfileImgURL)
		}
	}

	logx.Info(h.Log, reqID, op, "ok", "user_id", p.UserID)
	v1.WriteMessage(w, r, http.StatusOK, "withdraw_success")
}
