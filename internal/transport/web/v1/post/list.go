package post

import (
	"encoding/json"
	"net/http"

	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/domain"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/logx"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/mw"
	v1 "github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/v1"
)

type listResponse struct {
	TotalPosts int           `json:"total_posts"`
	Data       []domain.Post `json:"data"`
}

// List godoc
// @Summary     List posts (newest first)
// @Tags        post
// @Produce     json
// @Success     200 {object} listResponse
// @Failure     401 {object} v1.MessageResponse
// @Router      /post/posts [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "post.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	// кеш списка: короткий TTL + инвалидация на мутациях
	if b, err := h.Cache.Get(r.Context(), domain.CacheKeyPostList()); err == nil && b != nil {
		var resp listResponse
		if json.Unmarshal(b, &resp) == nil {
			v1.WriteJSON(w, r, http.StatusOK, resp)
			return
		}
	}

	posts, err := h.Posts.PostsList(r.Context())
	if err != nil {
		logx.Error(h.Log, reqID, op, "list failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}
	if posts == nil {
		posts = []domain.Post{}
	}

	resp := listResponse{TotalPosts: len(posts), Data: posts}
	if b, err := json.Marshal(resp); err == nil {
		_ = h.Cache.Set(r.Context(), domain.CacheKeyPostList(), b, h.CacheTTL)
	}
	v1.WriteJSON(w, r, http.StatusOK, resp)
}
