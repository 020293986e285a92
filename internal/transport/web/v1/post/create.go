package post

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

type postRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (p postRequest) valid() bool {
	return p.Title != "" && len([]rune(p.Title)) <= 26 && p.Content != ""
}

// Create godoc
// @Summary     Create post
// @Description multipart: data (JSON title/content) + postImage (опционально).
// @Description Картинка и строка поста согласуются координатором.
// @Tags        post
// @Accept      multipart/form-data
// @Produce     json
// @Param       data      formData string true  "JSON: title, content"
// @Param       postImage formData file   false "post image"
// @Success     201 {object} v1.MessageResponse
// @Failure     400 {object} v1.MessageResponse
// @Failure     401 {object} v1.MessageResponse
// @Failure     500 {object} v1.MessageResponse
// @Router      /post [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "post.create"
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

	var req postRequest
	if err := json.Unmarshal([]byte(r.FormValue("data")), &req); err != nil || !req.valid() {
		logx.Error(h.Log, reqID, op, "bad data", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	var newBlob *domain.BlobUpload
	if file, hdr, err := r.FormFile("postImage"); err == nil {
		defer file.Close()
		newBlob = &domain.BlobUpload{Reader: file, Namespace: domain.NSPostUploads, Name: hdr.Filename}
	}

	newPost := domain.Post{AuthorID: p.UserID, Title: req.Title, Content: req.Content}
	_, err := h.Coord.Run(r.Context(), coordinator.Intent{
		NewBlob: newBlob,
		Mutate: func(ctx context.Context, ref domain.BlobRef) error {
			newPost.PostImgURL = ref
			return h.Tx.InTx(ctx, func(ctx context.Context) error {
				return h.Posts.CreatePost(ctx, &newPost)
			})
		},
	})
	if err != nil {
		logx.Error(h.Log, reqID, op, "create failed", err, "user_id", p.UserID)
		v1.WriteDomainError(w, r, err)
		return
	}

	h.invalidate(r.Context())

	logx.Info(h.Log, reqID, op, "ok", "post_id", newPost.ID, "user_id", p.UserID)
	v1.WriteMessage(w, r, http.StatusCreated, "post_created")
}
