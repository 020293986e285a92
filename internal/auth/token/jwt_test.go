package token

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/domain"
)

const testSecret = "unit-test-secret"

func clockAt(sec int64) func() time.Time {
	return func() time.Time { return time.Unix(sec, 0).UTC() }
}

func TestIssueParseRoundTrip(t *testing.T) {
	m := NewWithClock(testSecret, "board", time.Hour, clockAt(1000))

	tok, p, err := m.Issue(context.Background(), 42)
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	require.Equal(t, domain.UserID(42), p.UserID)
	require.Equal(t, int64(1000), p.IssuedAt.Unix())
	require.Equal(t, int64(4600), p.ExpiresAt.Unix())

	// токен ещё действителен
	later := NewWithClock(testSecret, "board", time.Hour, clockAt(1500))
	got, err := later.Parse(context.Background(), tok)
	require.NoError(t, err)
	require.Equal(t, p.UserID, got.UserID)
	require.True(t, got.IssuedAt.Equal(p.IssuedAt))
	require.True(t, got.ExpiresAt.Equal(p.ExpiresAt))
}

func TestParseExpired(t *testing.T) {
	m := NewWithClock(testSecret, "board", time.Hour, clockAt(1000))
	tok, _, err := m.Issue(context.Background(), 42)
	require.NoError(t, err)

	// exp = 4600; секунда после границы
	late := NewWithClock(testSecret, "board", time.Hour, clockAt(4601))
	_, err = late.Parse(context.Background(), tok)
	require.ErrorIs(t, err, domain.ErrExpiredToken)
}

func TestParseWrongSignature(t *testing.T) {
	other := NewWithClock("another-secret", "board", time.Hour, clockAt(1000))
	tok, _, err := other.Issue(context.Background(), 42)
	require.NoError(t, err)

	m := NewWithClock(testSecret, "board", time.Hour, clockAt(1000))
	_, err = m.Parse(context.Background(), tok)
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestParseMalformed(t *testing.T) {
	m := NewWithClock(testSecret, "board", time.Hour, clockAt(1000))

	for _, raw := range []domain.Token{"", "garbage", "a.b.c"} {
		_, err := m.Parse(context.Background(), raw)
		require.ErrorIs(t, err, domain.ErrInvalidToken)
	}
}

func TestParseMissingExpiration(t *testing.T) {
	// корректно подписанный токен без exp отклоняется
	cl := jwtClaims{UserID: 42, RegisteredClaims: jwt.RegisteredClaims{
		IssuedAt: jwt.NewNumericDate(time.Unix(1000, 0)),
	}}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString([]byte(testSecret))
	require.NoError(t, err)

	m := NewWithClock(testSecret, "board", time.Hour, clockAt(1500))
	_, err = m.Parse(context.Background(), raw)
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestParseZeroUserID(t *testing.T) {
	cl := jwtClaims{UserID: 0, RegisteredClaims: jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(time.Unix(1000, 0)),
		ExpiresAt: jwt.NewNumericDate(time.Unix(4600, 0)),
	}}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString([]byte(testSecret))
	require.NoError(t, err)

	m := NewWithClock(testSecret, "board", time.Hour, clockAt(1500))
	_, err = m.Parse(context.Background(), raw)
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}
