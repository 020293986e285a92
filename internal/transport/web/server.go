package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/config"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/coordinator"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/domain"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/mw"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/v1/comment"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/v1/health"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/v1/like"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/v1/post"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/v1/user"
)

type Server struct {
	log    *log.Logger
	server *http.Server
	cfg    *config.Config
}

func New(
	logger *log.Logger,
	cfg *config.Config,
	rep Repos,
	auth AuthDeps,
	blobs domain.BlobStore,
	coord *coordinator.Coordinator,
	cache domain.Cache,
	db health.Pinger,
) *Server {
	userLog := log.New(logger.Writer(), logger.Prefix()+"[user] ", logger.Flags())
	postLog := log.New(logger.Writer(), logger.Prefix()+"[post] ", logger.Flags())
	commentLog := log.New(logger.Writer(), logger.Prefix()+"[comment] ", logger.Flags())
	likeLog := log.New(logger.Writer(), logger.Prefix()+"[like] ", logger.Flags())
	healthLog := log.New(logger.Writer(), logger.Prefix()+"[health] ", logger.Flags())
	authLog := log.New(logger.Writer(), logger.Prefix()+"[auth] ", logger.Flags())

	uh := &user.Handler{
		Log: userLog, Users: rep.Users, Hasher: auth.Hasher, Tokens: auth.Tokens,
		Tx: rep.Tx, Coord: coord, Blobs: blobs,
	}
	ph := &post.Handler{
		Log: postLog, Posts: rep.Posts, Comments: rep.Comments, Likes: rep.Likes,
		Tx: rep.Tx, Coord: coord, Blobs: blobs, Cache: cache, CacheTTL: cfg.PostCacheTTL,
	}
	ch := &comment.Handler{Log: commentLog, Comments: rep.Comments, Posts: rep.Posts, Tx: rep.Tx, Cache: cache}
	lh := &like.Handler{Log: likeLog, Likes: rep.Likes, Posts: rep.Posts, Tx: rep.Tx, Cache: cache}
	hh := &health.Handler{Log: healthLog, DB: db, Cache: cache}

	authMW := mw.AuthDeps{Log: authLog, Tokens: auth.Tokens}

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           newRouter(uh, ph, ch, lh, hh, authMW, cfg.UploadDir, logger),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		MaxHeaderBytes:    1 << 20,
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return &Server{server: srv, cfg: cfg, log: logger}
}

func (ws *Server) Run() {
	ws.log.Printf("started on %s", ws.server.Addr)
	if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		ws.log.Fatalf("error: %v", err)
	}
}

func (ws *Server) Close(ctx context.Context) {
	if err := ws.server.Shutdown(ctx); err != nil {
		ws.log.Printf("forced to shutdown: %v", err)
	}
	ws.log.Println("exited gracefully")
}
