package comment

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/domain"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/logx"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/mw"
	v1 "github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/v1"
)

type Handler struct {
	Log      *log.Logger
	Comments domain.CommentsRepo
	Posts    domain.PostsRepo
	Tx       domain.TxRunner
	Cache    domain.Cache
}

type commentRequest struct {
	Comment string `json:"comment"`
}

type listResponse struct {
	TotalComments int              `json:"total_comments"`
	Data          []domain.Comment `json:"data"`
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrBadParams
	}
	return id, nil
}

// счётчики комментариев видны в списке и карточке поста
func (h *Handler) invalidate(ctx context.Context, postID domain.PostID) {
	_ = h.Cache.Del(ctx, domain.CacheKeyPostList(), domain.CacheKeyPost(postID))
}

// Create godoc
// @Summary     Create comment
// @Tags        comment
// @Accept      json
// @Produce     json
// @Param       postId  path int            true "post id"
// @Param       request body commentRequest true "comment"
// @Success     201 {object} v1.MessageResponse
// @Failure     400 {object} v1.MessageResponse
// @Failure     404 {object} v1.MessageResponse
// @Router      /post/{postId}/comments [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "comment.create"
	reqID := mw.RequestIDFromCtx(r.Context())

	principal, ok := domain.PrincipalFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}
	postID, err := pathID(r, "postId")
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Comment == "" {
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	// пост должен существовать
	if _, err := h.Posts.PostByID(r.Context(), postID); err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	c := domain.Comment{PostID: postID, AuthorID: principal.UserID, Content: req.Comment}
	if err := h.Tx.InTx(r.Context(), func(ctx context.Context) error {
		return h.Comments.CreateComment(ctx, &c)
	}); err != nil {
		logx.Error(h.Log, reqID, op, "create failed", err, "post_id", postID)
		v1.WriteDomainError(w, r, err)
		return
	}

	h.invalidate(r.Context(), postID)

	logx.Info(h.Log, reqID, op, "ok", "comment_id", c.ID, "post_id", postID)
	v1.WriteMessage(w, r, http.StatusCreated, "comment_created")
}

// List godoc
// @Summary     List comments for post (newest first)
// @Tags        comment
// @Produce     json
// @Param       postId path int true "post id"
// @Success     200 {object} listResponse
// @Failure     404 {object} v1.MessageResponse
// @Router      /post/{postId}/comments [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postId")
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}
	if _, err := h.Posts.PostByID(r.Context(), postID); err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}
	comments, err := h.Comments.CommentsByPost(r.Context(), postID)
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	v1.WriteJSON(w, r, http.StatusOK, listResponse{TotalComments: len(comments), Data: comments})
}

// Update godoc
// @Summary     Update comment (owner only)
// @Tags        comment
// @Accept      json
// @Produce     json
// @Param       postId    path int            true "post id"
// @Param       commentId path int            true "comment id"
// @Param       request   body commentRequest true "comment"
// @Success     200 {object} v1.MessageResponse
// @Failure     403 {object} v1.MessageResponse
// @Failure     404 {object} v1.MessageResponse
// @Router      /post/{postId}/comments/{commentId} [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "comment.update"
	reqID := mw.RequestIDFromCtx(r.Context())

	principal, ok := domain.PrincipalFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}
	postID, err := pathID(r, "postId")
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}
	commentID, err := pathID(r, "commentId")
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Comment == "" {
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	cur, err := h.Comments.CommentByID(r.Context(), commentID)
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}
	if cur.PostID != postID {
		v1.WriteDomainError(w, r, domain.ErrNotFound)
		return
	}
	if cur.AuthorID != principal.UserID {
		v1.WriteDomainError(w, r, domain.ErrForbidden)
		return
	}

	if err := h.Tx.InTx(r.Context(), func(ctx context.Context) error {
		return h.Comments.UpdateComment(ctx, commentID, req.Comment)
	}); err != nil {
		logx.Error(h.Log, reqID, op, "update failed", err, "comment_id", commentID)
		v1.WriteDomainError(w, r, err)
		return
	}

	h.invalidate(r.Context(), postID)
	v1.WriteMessage(w, r, http.StatusOK, "comment_updated")
}

// Delete godoc
// @Summary     Delete comment (owner only)
// @Tags        comment
// @Produce     json
// @Param       postId    path int true "post id"
// @Param       commentId path int true "comment id"
// @Success     200 {object} v1.MessageResponse
// @Failure     403 {object} v1.MessageResponse
// @Failure     404 {object} v1.MessageResponse
// @Router      /post/{postId}/comments/{commentId} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "comment.delete"
	reqID := mw.RequestIDFromCtx(r.Context())

	principal, ok := domain.PrincipalFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}
	postID, err := pathID(r, "postId")
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}
	commentID, err := pathID(r, "commentId")
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	cur, err := h.Comments.CommentByID(r.Context(), commentID)
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}
	if cur.PostID != postID {
		v1.WriteDomainError(w, r, domain.ErrNotFound)
		return
	}
	if cur.AuthorID != principal.UserID {
		v1.WriteDomainError(w, r, domain.ErrForbidden)
		return
	}

	if err := h.Tx.InTx(r.Context(), func(ctx context.Context) error {
		return h.Comments.DeleteComment(ctx, commentID)
	}); err != nil {
		logx.Error(h.Log, reqID, op, "delete failed", err, "comment_id", commentID)
		v1.WriteDomainError(w, r, err)
		return
	}

	h.invalidate(r.Context(), postID)
	v1.WriteMessage(w, r, http.StatusOK, "comment_deleted")
}
