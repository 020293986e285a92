package like

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/domain"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/logx"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/mw"
	v1 "github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/v1"
)

type Handler struct {
	Log   *log.Logger
	Likes domain.LikesRepo
	Posts domain.PostsRepo
	Tx    domain.TxRunner
	Cache domain.Cache
}

type likeResponse struct {
	Message    string `json:"message"`
	LikesCount int    `json:"likesCount"`
}

func (h *Handler) invalidate(ctx context.Context, postID domain.PostID) {
	_ = h.Cache.Del(ctx, domain.CacheKeyPostList(), domain.CacheKeyPost(postID))
}

func postIDFromPath(r *http.Request) (domain.PostID, error) {
	id, err := strconv.ParseInt(r.PathValue("postId"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrBadParams
	}
	return id, nil
}

// Like godoc
// @Summary     Like post
// @Description Повторный лайк -> 409.
// @Tags        like
// @Produce     json
// @Param       postId path int true "post id"
// @Success     200 {object} likeResponse
// @Failure     404 {object} v1.MessageResponse
// @Failure     409 {object} v1.MessageResponse
// @Router      /post/{postId}/likes [post]
func (h *Handler) Like(w http.ResponseWriter, r *http.Request) {
	const op = "like.create"
	reqID := mw.RequestIDFromCtx(r.Context())

	principal, ok := domain.PrincipalFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}
	postID, err := postIDFromPath(r)
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}
	if _, err := h.Posts.PostByID(r.Context(), postID); err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	if err := h.Tx.InTx(r.Context(), func(ctx context.Context) error {
		return h.Likes.Like(ctx, principal.UserID, postID)
	}); err != nil {
		logx.Error(h.Log, reqID, op, "like failed", err, "post_id", postID)
		v1.WriteDomainError(w, r, err)
		return
	}

	h.invalidate(r.Context(), postID)

	n, _ := h.Likes.LikesCount(r.Context(), postID)
	v1.WriteJSON(w, r, http.StatusOK, likeResponse{Message: "like_updated", LikesCount: n})
}

// Unlike godoc
// @Summary     Unlike post
// @Tags        like
// @Produce     json
// @Param       postId path int true "post id"
// @Success     200 {object} likeResponse
// @Failure     404 {object} v1.MessageResponse
// @Failure     409 {object} v1.MessageResponse
// @Router      /post/{postId}/likes [delete]
func (h *Handler) Unlike(w http.ResponseWriter, r *http.Request) {
	const op = "like.delete"
	reqID := mw.RequestIDFromCtx(r.Context())

	principal, ok := domain.PrincipalFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}
	postID, err := postIDFromPath(r)
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}
	if _, err := h.Posts.PostByID(r.Context(), postID); err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	if err := h.Tx.InTx(r.Context(), func(ctx context.Context) error {
		return h.Likes.Unlike(ctx, principal.UserID, postID)
	}); err != nil {
		logx.Error(h.Log, reqID, op, "unlike failed", err, "post_id", postID)
		v1.WriteDomainError(w, r, err)
		return
	}

	h.invalidate(r.Context(), postID)

	n, _ := h.Likes.LikesCount(r.Context(), postID)
	v1.WriteJSON(w, r, http.StatusOK, likeResponse{Message: "like_deleted", LikesCount: n})
}
