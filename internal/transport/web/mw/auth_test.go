package mw

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/domain"
)

type fakeTokens struct {
	principal domain.Principal
	err       error
	lastRaw   domain.Token
}

func (f *fakeTokens) Issue(context.Context, domain.UserID) (domain.Token, domain.Principal, error) {
	return "", domain.Principal{}, nil
}

func (f *fakeTokens) Parse(_ context.Context, raw domain.Token) (domain.Principal, error) {
	f.lastRaw = raw
	return f.principal, f.err
}

var testPublic = []string{"/", "/user/login", "/profileuploads/"}

func runAuth(t *testing.T, tokens *fakeTokens, method, target, authz string) (*httptest.ResponseRecorder, bool, domain.Principal) {
	t.Helper()

	var called bool
	var got domain.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		got, _ = domain.PrincipalFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	deps := AuthDeps{Log: log.New(io.Discard, "", 0), Tokens: tokens}
	h := Auth(deps, testPublic, next)

	req := httptest.NewRequest(method, target, nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, called, got
}

func TestAuthMissingTokenProtected(t *testing.T) {
	tokens := &fakeTokens{}
	rec, called, _ := runAuth(t, tokens, http.MethodGet, "/user/me", "")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, called)
	require.JSONEq(t, `{"message": "authentication required"}`, rec.Body.String())
	require.Empty(t, tokens.lastRaw)
}

func TestAuthPublicAnonymous(t *testing.T) {
	for _, target := range []string{"/", "/user/login", "/profileuploads/abc_x.png"} {
		_, called, got := runAuth(t, &fakeTokens{}, http.MethodGet, target, "")
		require.True(t, called, "target=%s", target)
		require.Zero(t, got.UserID)
	}
}

func TestAuthPublicPrefixNoFalseMatch(t *testing.T) {
	// "/" точный, не префикс; "/user/login" не покрывает вложенные пути
	for _, target := range []string{"/user/me", "/user/login/extra", "/post/posts"} {
		rec, called, _ := runAuth(t, &fakeTokens{}, http.MethodGet, target, "")
		require.False(t, called, "target=%s", target)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}
}

func TestAuthValidToken(t *testing.T) {
	p := domain.Principal{UserID: 7, IssuedAt: time.Unix(1000, 0), ExpiresAt: time.Unix(4600, 0)}
	tokens := &fakeTokens{principal: p}

	rec, called, got := runAuth(t, tokens, http.MethodGet, "/user/me", "Bearer abc.def.ghi")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, called)
	require.Equal(t, p, got)
	require.Equal(t, domain.Token("abc.def.ghi"), tokens.lastRaw)
}

func TestAuthExpiredToken(t *testing.T) {
	tokens := &fakeTokens{err: domain.ErrExpiredToken}
	rec, called, _ := runAuth(t, tokens, http.MethodGet, "/user/me", "Bearer old")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, called)
	require.JSONEq(t, `{"message": "token expired"}`, rec.Body.String())
}

func TestAuthInvalidTokenOnPublicRoute(t *testing.T) {
	// предъявленный токен валидируется даже там, где он не обязателен
	tokens := &fakeTokens{err: domain.ErrInvalidToken}
	rec, called, _ := runAuth(t, tokens, http.MethodGet, "/user/login", "Bearer bad")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, called)
	require.JSONEq(t, `{"message": "invalid token"}`, rec.Body.String())
}

func TestExtractBearer(t *testing.T) {
	require.Equal(t, "tok", extractBearer("Bearer tok"))
	require.Equal(t, "tok", extractBearer("bearer tok"))
	require.Equal(t, "", extractBearer(""))
	require.Equal(t, "", extractBearer("Basic dXNlcjpwYXNz"))
	require.Equal(t, "", extractBearer("Bearer"))
}
