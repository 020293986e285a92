package web

import (
	"log"
	"net/http"
	"path/filepath"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/100-hours-a-week/2-naheun-lee-community-be/internal/docs"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/domain"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/mw"
	v1 "github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/v1"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/v1/comment"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/v1/health"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/v1/like"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/v1/post"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web/v1/user"
)

// Маршруты, доступные без токена. Префиксы оканчиваются на "/",
// остальное сверяется точно.
var publicRoutes = []string{
	"/",
	"/user/signup",
	"/user/login",
	"/healthz",
	"/readyz",
	"/" + domain.NSProfileUploads + "/",
	"/" + domain.NSPostUploads + "/",
	"/swagger/",
}

func newRouter(
	uh *user.Handler,
	ph *post.Handler,
	ch *comment.Handler,
	lh *like.Handler,
	hh *health.Handler,
	authMW mw.AuthDeps,
	uploadDir string,
	logger *log.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// root
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		v1.WriteMessage(w, r, http.StatusOK, "community board api")
	})

	// health
	mux.HandleFunc("GET /healthz", hh.Liveness)
	mux.HandleFunc("GET /readyz", hh.Readiness)

	// user
	mux.HandleFunc("POST /user/signup", limitBody(16<<20, uh.Signup))
	mux.HandleFunc("POST /user/login", uh.Login)
	mux.HandleFunc("GET /user/me", uh.Me)
	mux.HandleFunc("PATCH /user/profile", limitBody(16<<20, uh.UpdateProfile))
	mux.HandleFunc("PATCH /user/password", uh.UpdatePassword)
	mux.HandleFunc("DELETE /user/withdraw", uh.Withdraw)

	// post
	mux.HandleFunc("POST /post", limitBody(16<<20, ph.Create))
	mux.HandleFunc("GET /post/posts", ph.List)
	mux.HandleFunc("GET /post/{postId}", ph.Get)
	mux.HandleFunc("PATCH /post/{postId}", limitBody(16<<20, ph.Update))
	mux.HandleFunc("DELETE /post/{postId}", ph.Delete)
	mux.HandleFunc("PATCH /post/{postId}/views", ph.IncrementViews)

	// comments
	mux.HandleFunc("POST /post/{postId}/comments", ch.Create)
	mux.HandleFunc("GET /post/{postId}/comments", ch.List)
	mux.HandleFunc("PATCH /post/{postId}/comments/{commentId}", ch.Update)
	mux.HandleFunc("DELETE /post/{postId}/comments/{commentId}", ch.Delete)

	// likes
	mux.HandleFunc("POST /post/{postId}/likes", lh.Like)
	mux.HandleFunc("DELETE /post/{postId}/likes", lh.Unlike)

	// статика: картинки отдаются по тем же путям, что лежат в BlobRef
	for _, ns := range []string{domain.NSProfileUploads, domain.NSPostUploads} {
		prefix := "/" + ns + "/"
		mux.Handle("GET "+prefix,
			http.StripPrefix(prefix, http.FileServer(http.Dir(filepath.Join(uploadDir, ns)))))
	}

	// swagger
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// 🔗 middleware: req_id → логирование → auth-гейт → mux
	return mw.WithRequestID(mw.Logging(logger)(mw.Auth(authMW, publicRoutes, mux)))
}

func limitBody(n int64, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, n)
		h(w, r)
	}
}
