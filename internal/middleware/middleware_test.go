package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/theater-seating/internal/config"
	"github.com/iliyamo/theater-seating/internal/logger"
	"github.com/iliyamo/theater-seating/internal/utils"
)

const secret = "test-secret"

func protected(roles ...string) *echo.Echo {
	e := echo.New()
	g := e.Group("/v1", JWTAuth(secret), RequireRole(roles...))
	g.GET("/whoami", func(c echo.Context) error {
		return c.String(http.StatusOK, UserID(c))
	})
	return e
}

func do(e *echo.Echo, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/v1/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuth(t *testing.T) {
	e := protected(utils.RoleOperator)

	assert.Equal(t, http.StatusUnauthorized, do(e, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, "garbage").Code)

	at, err := utils.NewAccessToken(secret, "alice", utils.RoleOperator, 5)
	require.NoError(t, err)
	rec := do(e, at.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", rec.Body.String())
}

func TestRequireRole_Forbidden(t *testing.T) {
	e := protected(utils.RoleOperator)
	at, err := utils.NewAccessToken(secret, "bob", "VIEWER", 5)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, do(e, at.Token).Code)
}

func TestUserID_Anonymous(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Equal(t, "anon", UserID(c))
}

func TestRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/seats/best", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.1")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/seats/best")
	c.Set(CtxUserID, "op")

	cfg := config.RateLimitConfig{Prefix: "rl"}
	tests := map[string]string{
		"ip":         "rl:ip:10.0.0.1",
		"user":       "rl:user:op",
		"route":      "rl:route:POST /v1/seats/best",
		"ip_user":    "rl:ip:10.0.0.1:user:op",
		"user_route": "rl:user:op:route:POST /v1/seats/best",
		"":           "rl:ip:10.0.0.1:user:op:route:POST /v1/seats/best",
	}
	for strategy, want := range tests {
		cfg.KeyStrategy = strategy
		assert.Equal(t, want, rateKey(cfg, c), strategy)
	}
}

func TestNewTokenBucket_PassThroughWithoutRedis(t *testing.T) {
	mw := NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil, logger.Discard())
	e := echo.New()
	e.GET("/x", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }, mw)

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRetryAfterSeconds(t *testing.T) {
	assert.Equal(t, 0, retryAfterSeconds(0))
	assert.Equal(t, 1, retryAfterSeconds(1))
	assert.Equal(t, 2, retryAfterSeconds(1500))
}

func TestEntryCodec(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodeEntry(http.StatusOK, hdr, []byte(`{"free":3}`))
	require.NoError(t, err)

	status, got, body, ok := decodeEntry(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, `{"free":3}`, string(body))

	_, _, _, ok = decodeEntry(bs[:6])
	assert.False(t, ok)
	_, _, _, ok = decodeEntry(append([]byte{0, 0, 0, 200, 0, 0, 1, 0}, 'x'))
	assert.False(t, ok)
}

func TestCacheKey_Strategies(t *testing.T) {
	e := echo.New()
	newCtx := func(query string) echo.Context {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/seats"+query, nil), httptest.NewRecorder())
		c.SetPath("/v1/seats")
		return c
	}
	cfg := config.CacheConfig{Prefix: "seating:cache", KeyStrategy: "route_query"}
	a, b := cacheKey(cfg, newCtx("?x=1"), 0), cacheKey(cfg, newCtx("?x=2"), 0)
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "seating:cache:g0:"))
	assert.NotEqual(t, a, cacheKey(cfg, newCtx("?x=1"), 1))

	cfg.KeyStrategy = "route"
	assert.Equal(t, cacheKey(cfg, newCtx("?x=1"), 0), cacheKey(cfg, newCtx("?x=2"), 0))
}

func TestResponseCache_DisabledWithoutRedis(t *testing.T) {
	rc := NewResponseCache(config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}}, nil, logger.Discard())
	e := echo.New()
	e.GET("/x", func(c echo.Context) error { return c.String(http.StatusOK, "fresh") }, rc.Middleware())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, "fresh", rec.Body.String())
	assert.Empty(t, rec.Header().Get("X-Cache"))
	assert.NoError(t, rc.Purge(context.Background()))
}

func TestCaptureWriter_Truncates(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, limit: 4}
	_, _ = cw.Write([]byte("abc"))
	_, _ = cw.Write([]byte("def"))
	assert.True(t, cw.truncated)
	assert.Equal(t, "abc", cw.buf.String())
	assert.Equal(t, "abcdef", rec.Body.String())
}
