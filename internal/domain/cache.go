package domain

import (
	"context"
	"strconv"
)

// Ключи кеша — единое место, чтобы не расползались по коду.
func CacheKeyPostList() string      { return "posts:all" }
func CacheKeyPost(id PostID) string { return "post:" + strconv.FormatInt(id, 10) }

// Простой k/v интерфейс. Реализация — Redis.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttlSeconds int) error
	Del(ctx context.Context, keys ...string) error
	Ping(context.Context) error
	Close()
}
