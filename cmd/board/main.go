package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/app"
)

// @title       Community Board API
// @version     1.0
// @description Бэкенд доски сообщества: пользователи, посты, комментарии, лайки.
// @BasePath    /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx)
	if err != nil {
		log.Fatalf("build failed: %v", err)
	}

	if err := a.Run(ctx); err != nil {
		log.Fatalf("run failed: %v", err)
	}
}
