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

// Update godoc
// @Summary     Update post (owner only)
// @Description multipart: data (JSON title/content, опционально) + postImage (опционально).
// @Description При замене картинки старый файл удаляется только после коммита.
// @Tags        post
// @Accept      multipart/form-data
// @Produce     json
// @Param       postId    path     int    true  "post id"
// @Param       data      formData string false "JSON: title, content"
// @Param       postImage formData file   false "post image"
// @Success     200 {object} v1.MessageResponse
// @Failure     400 {object} v1.MessageResponse
// @Failure     403 {object} v1.MessageResponse
// @Failure     404 {object} v1.MessageResponse
// @Router      /post/{postId} [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "post.update"
	reqID := mw.RequestIDFromCtx(r.Context())

	principal, ok := domain.PrincipalFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}
	id, err := postIDFromPath(r)
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	var patch domain.PostPatch
	if s := r.FormValue("data"); s != "" {
		var req struct {
			Title   string `json:"title"`
			Content string `json:"content"`
		}
		if err := json.Unmarshal([]byte(s), &req); err != nil {
			v1.WriteDomainError(w, r, domain.ErrBadParams)
			return
		}
		if len([]rune(req.Title)) > 26 {
			v1.WriteDomainError(w, r, domain.ErrBadParams)
			return
		}
		patch.Title = domain.PatchString(req.Title)
		patch.Content = domain.PatchString(req.Content)
	}

	var newBlob *domain.BlobUpload
	if file, hdr, err := r.FormFile("postImage"); err == nil {
		defer file.Close()
		newBlob = &domain.BlobUpload{Reader: file, Namespace: domain.NSPostUploads, Name: hdr.Filename}
	}

	if patch.IsEmpty() && newBlob == nil {
		v1.WriteMessage(w, r, http.StatusBadRequest, "no valid fields to update")
		return
	}

	cur, err := h.Posts.PostByID(r.Context(), id)
	if err != nil {
		logx.Error(h.Log, reqID, op, "post not found", err, "post_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}
	if cur.AuthorID != principal.UserID {
		v1.WriteDomainError(w, r, domain.ErrForbidden)
		return
	}

	_, err = h.Coord.Run(r.Context(), coordinator.Intent{
		OldRef:  cur.PostImgURL,
		NewBlob: newBlob,
		Mutate: func(ctx context.Context, ref domain.BlobRef) error {
			if ref != "" {
				patch.ImageRef = &ref
			}
			return h.Tx.InTx(ctx, func(ctx context.Context) error {
				return h.Posts.UpdatePost(ctx, id, patch)
			})
		},
	})
	if err != nil {
		logx.Error(h.Log, reqID, op, "update failed", err, "post_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	h.invalidate(r.Context(), id)

	logx.Info(h.Log, reqID, op, "ok", "post_id", id)
	v1.WriteMessage(w, r, http.StatusOK, "post_updated")
}

// Delete godoc
// @Summary     Delete post (owner only)
// @Description Сначала строка (коммит), затем best-effort удаление картинки.
// @Tags        post
// @Produce     json
// @Param       postId path int true "post id"
// @Success     200 {object} v1.MessageResponse
// @Failure     403 {object} v1.MessageResponse
// @Failure     404 {object} v1.MessageResponse
// @Router      /post/{postId} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "post.delete"
	reqID := mw.RequestIDFromCtx(r.Context())

	principal, ok := domain.PrincipalFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}
	id, err := postIDFromPath(r)
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	cur, err := h.Posts.PostByID(r.Context(), id)
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}
	if cur.AuthorID != principal.UserID {
		v1.WriteDomainError(w, r, domain.ErrForbidden)
		return
	}

	if err := h.Tx.InTx(r.Context(), func(ctx context.Context) error {
		return h.Posts.DeletePost(ctx, id)
	}); err != nil {
		logx.Error(h.Log, reqID, op, "delete failed", err, "post_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	// строка удалена — файл больше никем не упоминается
	if cur.PostImgURL != "" {
		if err := h.Blobs.Delete(r.Context(), cur.PostImgURL); err != nil {
			logx.Error(h.Log, reqID, op, "stale post image delete failed", err, "ref", cur.PostImgURL)
		}
	}

	h.invalidate(r.Context(), id)

	logx.Info(h.Log, reqID, op, "ok", "post_id", id)
	v1.WriteMessage(w, r, http.StatusOK, "post_deleted")
}
