package post

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/coordinator"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/domain"
)

type Handler struct {
	Log      *log.Logger
	Posts    domain.PostsRepo
	Comments domain.CommentsRepo
	Likes    domain.LikesRepo
	Tx       domain.TxRunner
	Coord    *coordinator.Coordinator
	Blobs    domain.BlobStore // best-effort удаление картинки при delete
	Cache    domain.Cache
	CacheTTL int // секунд
}

func postIDFromPath(r *http.Request) (domain.PostID, error) {
	id, err := strconv.ParseInt(r.PathValue("postId"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrBadParams
	}
	return id, nil
}

// invalidate сбрасывает кеш списка и, опционально, карточки поста
func (h *Handler) invalidate(ctx context.Context, ids ...domain.PostID) {
	keys := []string{domain.CacheKeyPostList()}
	for _, id := range ids {
		keys = append(keys, domain.CacheKeyPost(id))
	}
	_ = h.Cache.Del(ctx, keys...)
}
