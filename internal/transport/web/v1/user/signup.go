package user

import (
	"context"
	"net/http"

	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/coordinator"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/domain"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/logx"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/mw"
	v1 "github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/v1"
)

type signupResponse struct {
	Message string      `json:"message"`
	User    domain.User `json:"user"`
}

// Signup godoc
// @Summary     Register new user
// @Description Регистрация: multipart с email/password/nickname и обязательной картинкой профиля.
// @Tags        user
// @Accept      multipart/form-data
// @Produce     json
// @Param       email        formData string true "email"
// @Param       password     formData string true "password"
// @Param       nickname     formData string true "nickname"
// @Param       profileImage formData file   true "profile image"
// @Success     201 {object} signupResponse
// @Failure     400 {object} v1.MessageResponse
// @Failure     409 {object} v1.MessageResponse
// @Failure     500 {object} v1.MessageResponse
// @Router      /user/signup [post]
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	const op = "user.signup"
	reqID := mw.RequestIDFromCtx(r.Context())

	if err := r.ParseMultipartForm(16 << 20); err != nil {
		logx.Error(h.Log, reqID, op, "bad multipart", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	email := r.FormValue("email")
	pswd := r.FormValue("password")
	nickname := r.FormValue("nickname")
	if !domain.ValidEmail(email) || !domain.ValidPassword(pswd) || !domain.ValidNickname(nickname) {
		logx.Error(h.Log, reqID, op, "validation failed", domain.ErrBadParams, "email", email)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	file, hdr, err := r.FormFile("profileImage")
	if err != nil {
		logx.Error(h.Log, reqID, op, "missing profile image", err)
		v1.WriteMessage(w, r, http.StatusBadRequest, "profile image is required")
		return
	}
	defer file.Close()

	hashStr, err := h.Hasher.Hash(pswd)
	if err != nil {
		logx.Error(h.Log, reqID, op, "hash failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	// файл + строка пользователя через координатор: картинка не
	// должна пережить несостоявшуюся регистрацию
	var created domain.User
	_, err = h.Coord.Run(r.Context(), coordinator.Intent{
		NewBlob: &domain.BlobUpload{Reader: file, Namespace: domain.NSProfileUploads, Name: hdr.Filename},
		Mutate: func(ctx context.Context, ref domain.BlobRef) error {
			return h.Tx.InTx(ctx, func(ctx context.Context) error {
				u, err := h.Users.CreateUser(ctx, email, hashStr, nickname, ref)
				if err != nil {
					return err
				}
				created = u
				return nil
			})
		},
	})
	if err != nil {
		logx.Error(h.Log, reqID, op, "create user failed", err, "email", email)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "user_id", created.ID, "email", created.Email)
	v1.WriteJSON(w, r, http.StatusCreated, signupResponse{Message: "signup_success", User: created})
}
