package token

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/domain"
)

type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func New(secret string, issuer string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

// NewWithClock — для тестов: подменяемые часы
func NewWithClock(secret string, issuer string, ttl time.Duration, now func() time.Time) *Manager {
	return &Manager{secret: []byte(secret), issuer: issuer, ttl: ttl, now: now}
}

// внутренний тип для подписи/парсинга с jwt.RegisteredClaims
type jwtClaims struct {
	UserID domain.UserID `json:"uid"`
	jwt.RegisteredClaims
}

// Ensure: Manager implements domain.TokenManager
var _ domain.TokenManager = (*Manager)(nil)

// Issue выпускает JWT: uid + iat/exp (exp = now + ttl, жёсткая граница)
func (m *Manager) Issue(_ context.Context, userID domain.UserID) (domain.Token, domain.Principal, error) {
	now := m.now().UTC()

	cl := jwtClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, cl)
	tokenStr, err := t.SignedString(m.secret)
	if err != nil {
		return "", domain.Principal{}, err
	}

	return tokenStr, domain.Principal{
		UserID:    cl.UserID,
		IssuedAt:  cl.IssuedAt.Time,
		ExpiresAt: cl.ExpiresAt.Time,
	}, nil
}

// Parse валидирует подпись и сроки; битый токен никогда не доходит до
// проверки exp с мусорными данными — библиотека сперва сверяет подпись.
func (m *Manager) Parse(_ context.Context, raw domain.Token) (domain.Principal, error) {
	var out jwtClaims
	tkn, err := jwt.ParseWithClaims(string(raw), &out, func(token *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Principal{}, domain.ErrExpiredToken
		}
		return domain.Principal{}, domain.ErrInvalidToken
	}
	if !tkn.Valid || out.UserID == 0 || out.IssuedAt == nil || out.ExpiresAt == nil {
		return domain.Principal{}, domain.ErrInvalidToken
	}

	return domain.Principal{
		UserID:    out.UserID,
		IssuedAt:  out.IssuedAt.Time,
		ExpiresAt: out.ExpiresAt.Time,
	}, nil
}
