package domain

import (
	"context"
	"time"
)

// Токен — подписанная строка, живёт у клиента до истечения exp.
// Серверного отзыва нет: logout — чисто клиентская операция.
type Token = string

// Principal — проверенная личность вызывающего на время одного запроса.
// Создаётся в TokenManager.Parse, дальше живёт только в контексте запроса.
type Principal struct {
	UserID    UserID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Управление токенами (JWT, реализация в internal/auth/token)
type TokenManager interface {
	Issue(ctx context.Context, userID UserID) (Token, Principal, error)
	// Parse проверяет подпись и срок; ошибки — ErrInvalidToken / ErrExpiredToken
	Parse(ctx context.Context, raw Token) (Principal, error)
}

// Хеширование паролей
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, encodedHash string) (bool, error)
}
