package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/auth/password"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/auth/token"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/config"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/coordinator"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/domain"
	redisx "github.com/100-hours-a-week/2-naheun-lee-community-be/internal/infra/cache/redis"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/infra/database/postgres"
	fsstore "github.com/100-hours-a-week/2-naheun-lee-community-be/internal/infra/storage/fs"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/transport/web"
)

type App struct {
	config *config.Config
	server *web.Server
	log    *log.Logger
	cache  domain.Cache
	repo   *postgres.PGRepo
}

func Build(ctx context.Context) (*App, error) {
	base := log.New(os.Stdout, "[app] ", log.LstdFlags)

	serverLog := log.New(base.Writer(), base.Prefix()+"[server] ", base.Flags())
	pgLog := log.New(base.Writer(), base.Prefix()+"[postgres] ", base.Flags())
	fsLog := log.New(base.Writer(), base.Prefix()+"[storage] ", base.Flags())
	redisLog := log.New(base.Writer(), base.Prefix()+"[redis] ", base.Flags())
	coordLog := log.New(base.Writer(), base.Prefix()+"[coordinator] ", base.Flags())

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed load config: %w", err)
	}
	base.Printf("\n  configuration: %s-------------------", cfg)

	base.Println("init PostgreSQL")
	pgRepo, err := postgres.NewPGRepo(ctx, pgLog, cfg.GetDSN(), cfg.DBScheme)
	if err != nil {
		return nil, fmt.Errorf("failed init postgres: %w", err)
	}
	base.Println("PostgreSQL is initialized")

	base.Println("init file storage")
	blobs, err := fsstore.New(cfg.UploadDir, fsLog)
	if err != nil {
		return nil, fmt.Errorf("failed init file storage: %w", err)
	}

	base.Println("init Redis")
	rc := redisx.New(redisx.Config{
		Addr:     cfg.RedisAddr,
		DB:       cfg.RedisDB,
		Password: cfg.RedisPassword,
	}, redisLog)
	if err := rc.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed init redis: %w", err)
	}
	base.Println("Redis is initialized")

	// Auth primitives
	hasher := password.NewDefault()
	tm := token.New(cfg.AuthJWTSecret, cfg.AuthIssuer, cfg.AuthTokenTTL)

	// Координатор файл+строка
	coord := coordinator.New(blobs, coordLog)

	base.Println("init Server")
	rep := web.Repos{Users: pgRepo, Posts: pgRepo, Comments: pgRepo, Likes: pgRepo, Tx: pgRepo}
	auth := web.AuthDeps{Hasher: hasher, Tokens: tm}
	server := web.New(serverLog, cfg, rep, auth, blobs, coord, rc, pgRepo)
	base.Println("Server is initialized")

	base.Println("build ended")
	return &App{
		config: cfg,
		server: server,
		log:    base,
		cache:  rc,
		repo:   pgRepo,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Println("start application...")
	go a.server.Run()
	<-ctx.Done()
	a.log.Println("stop application...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.server.Close(stopCtx)
	a.repo.Close()
	a.cache.Close()

	return nil
}
