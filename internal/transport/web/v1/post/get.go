package post

import (
	"encoding/json"
	"net/http"

	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/domain"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/logx"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/mw"
	v1 "github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/v1"
)

type detailResponse struct {
	Data                 domain.Post      `json:"data"`
	Comments             []domain.Comment `json:"comments"`
	IsLikedByCurrentUser bool             `json:"isLikedByCurrentUser"`
}

// Get godoc
// @Summary     Post detail with comments
// @Tags        post
// @Produce     json
// @Param       postId path int true "post id"
// @Success     200 {object} detailResponse
// @Failure     404 {object} v1.MessageResponse
// @Router      /post/{postId} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "post.get"
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

	// карточка поста кешируется без isLiked (он зависит от вызывающего)
	var post domain.Post
	var comments []domain.Comment
	cached := false
	if b, err := h.Cache.Get(r.Context(), domain.CacheKeyPost(id)); err == nil && b != nil {
		var env struct {
			Post     domain.Post      `json:"post"`
			Comments []domain.Comment `json:"comments"`
		}
		if json.Unmarshal(b, &env) == nil {
			post, comments, cached = env.Post, env.Comments, true
		}
	}

	if !cached {
		post, err = h.Posts.PostByID(r.Context(), id)
		if err != nil {
			logx.Error(h.Log, reqID, op, "post not found", err, "post_id", id)
			v1.WriteDomainError(w, r, err)
			return
		}
		comments, err = h.Comments.CommentsByPost(r.Context(), id)
		if err != nil {
			v1.WriteDomainError(w, r, err)
			return
		}
		env := struct {
			Post     domain.Post      `json:"post"`
			Comments []domain.Comment `json:"comments"`
		}{post, comments}
		if b, err := json.Marshal(env); err == nil {
			_ = h.Cache.Set(r.Context(), domain.CacheKeyPost(id), b, h.CacheTTL)
		}
	}
	if comments == nil {
		comments = []domain.Comment{}
	}

	isLiked, err := h.Likes.IsLiked(r.Context(), principal.UserID, id)
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	v1.WriteJSON(w, r, http.StatusOK, detailResponse{
		Data:                 post,
		Comments:             comments,
		IsLikedByCurrentUser: isLiked,
	})
}

// IncrementViews godoc
// @Summary     Increment post views
// @Tags        post
// @Produce     json
// @Param       postId path int true "post id"
// @Success     200 {object} v1.MessageResponse
// @Failure     404 {object} v1.MessageResponse
// @Router      /post/{postId}/views [patch]
func (h *Handler) IncrementViews(w http.ResponseWriter, r *http.Request) {
	const op = "post.views"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := postIDFromPath(r)
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}
	if err := h.Posts.IncrementViews(r.Context(), id); err != nil {
		logx.Error(h.Log, reqID, op, "increment failed", err, "post_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}
	h.invalidate(r.Context(), id)
	v1.WriteMessage(w, r, http.StatusOK, "views_updated")
}
