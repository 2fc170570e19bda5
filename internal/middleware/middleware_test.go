package middleware

import (
    "context"
    "errors"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/alicebob/miniredis/v2"
    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/booth-market/internal/config"
    "github.com/iliyamo/booth-market/internal/utils"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
    t.Helper()
    mr := miniredis.RunT(t)
    rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
    t.Cleanup(func() { _ = rdb.Close() })
    return mr, rdb
}

func do(e *echo.Echo, method, target, token string) *httptest.ResponseRecorder {
    req := httptest.NewRequest(method, target, nil)
    if token != "" {
        req.Header.Set("Authorization", "Bearer "+token)
    }
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    return rec
}

func TestJWTAuthAndRequireSelf(t *testing.T) {
    e := echo.New()
    e.PUT("/vendor/:id", func(c echo.Context) error {
        vid, _ := VendorID(c)
        return c.JSON(http.StatusOK, echo.Map{"vid": vid})
    }, JWTAuth("secret"), RequireSelf("id"))

    tok, err := utils.NewAccessToken("secret", 7, "a@b.c", 5)
    require.NoError(t, err)

    assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodPut, "/vendor/7", "").Code)
    assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodPut, "/vendor/7", "bogus").Code)
    assert.Equal(t, http.StatusForbidden, do(e, http.MethodPut, "/vendor/8", tok.Token).Code)

    rec := do(e, http.MethodPut, "/vendor/7", tok.Token)
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.JSONEq(t, `{"vid":7}`, rec.Body.String())
}

func TestRequireOwner(t *testing.T) {
    owners := map[uint64]uint64{77: 1}
    lookup := func(_ context.Context, id uint64) (uint64, bool, error) {
        if id == 500 {
            return 0, false, errors.New("db down")
        }
        vid, ok := owners[id]
        return vid, ok, nil
    }
    e := echo.New()
    e.DELETE("/product/:id", func(c echo.Context) error {
        return c.NoContent(http.StatusNoContent)
    }, JWTAuth("secret"), RequireOwner("id", lookup))

    owner, err := utils.NewAccessToken("secret", 1, "", 5)
    require.NoError(t, err)
    other, err := utils.NewAccessToken("secret", 2, "", 5)
    require.NoError(t, err)

    assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodDelete, "/product/77", "").Code)
    assert.Equal(t, http.StatusForbidden, do(e, http.MethodDelete, "/product/77", other.Token).Code)
    assert.Equal(t, http.StatusNoContent, do(e, http.MethodDelete, "/product/77", owner.Token).Code)
    assert.Equal(t, http.StatusNoContent, do(e, http.MethodDelete, "/product/78", other.Token).Code)
    assert.Equal(t, http.StatusInternalServerError, do(e, http.MethodDelete, "/product/500", other.Token).Code)
}

func TestIdentifyVendor_FeedsVendorRateKey(t *testing.T) {
    _, rdb := newRedis(t)
    cfg := config.RateLimitConfig{
        Enabled: true, Capacity: 1, RefillTokens: 1, RefillInterval: time.Hour,
        TTL: 5 * time.Hour, KeyStrategy: "vendor", Prefix: "test:rl",
    }
    e := echo.New()
    e.Use(IdentifyVendor("secret"), NewTokenBucket(cfg, rdb))
    e.GET("/booth", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

    one, err := utils.NewAccessToken("secret", 1, "", 5)
    require.NoError(t, err)
    two, err := utils.NewAccessToken("secret", 2, "", 5)
    require.NoError(t, err)

    assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/booth", one.Token).Code)
    assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/booth", two.Token).Code)
    assert.Equal(t, http.StatusTooManyRequests, do(e, http.MethodGet, "/booth", one.Token).Code)

    // an invalid token is treated as anonymous, not rejected
    assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/booth", "bogus").Code)
    assert.Equal(t, http.StatusTooManyRequests, do(e, http.MethodGet, "/booth", "").Code)
}

func TestTokenBucket_BlocksAfterCapacity(t *testing.T) {
    _, rdb := newRedis(t)
    cfg := config.RateLimitConfig{
        Enabled: true, Capacity: 2, RefillTokens: 1, RefillInterval: time.Hour,
        TTL: 5 * time.Hour, KeyStrategy: "ip", Prefix: "test:rl",
    }
    e := echo.New()
    e.Use(NewTokenBucket(cfg, rdb))
    e.GET("/booth", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

    first := do(e, http.MethodGet, "/booth", "")
    assert.Equal(t, http.StatusOK, first.Code)
    assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
    assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))
    assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/booth", "").Code)

    blocked := do(e, http.MethodGet, "/booth", "")
    assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
    assert.NotEmpty(t, blocked.Header().Get("Retry-After"))
}

func TestTokenBucket_PassThroughWithoutRedis(t *testing.T) {
    e := echo.New()
    e.Use(NewTokenBucket(config.RateLimitConfig{Enabled: true, Capacity: 1}, nil))
    e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
    for i := 0; i < 3; i++ {
        assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/", "").Code)
    }
}

func TestBuildRateKey(t *testing.T) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/booth/1", nil)
    req.Header.Set("X-Real-IP", "10.0.0.1")
    c := e.NewContext(req, httptest.NewRecorder())
    c.SetPath("/booth/:id")

    cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_route"}
    assert.Equal(t, "rl:ip:10.0.0.1:route:GET /booth/:id", buildRateKey(cfg, c))

    cfg.KeyStrategy = "vendor"
    assert.Equal(t, "rl:vendor:anon", buildRateKey(cfg, c))
    c.Set(ctxVendorID, uint64(3))
    assert.Equal(t, "rl:vendor:3", buildRateKey(cfg, c))
}

func cacheConfig() config.CacheConfig {
    return config.CacheConfig{
        Enabled: true, Methods: map[string]bool{"GET": true}, TTL: time.Minute,
        KeyStrategy: "route_query", Prefix: "test:cache", MaxBodyBytes: 1 << 10, PurgeOnWrite: true,
    }
}

func TestRedisCache_HitAfterMiss(t *testing.T) {
    _, rdb := newRedis(t)
    calls := 0
    e := echo.New()
    e.Use(NewRedisCache(cacheConfig(), rdb))
    e.GET("/booth", func(c echo.Context) error {
        calls++
        return c.JSON(http.StatusOK, []string{"b1"})
    })

    miss := do(e, http.MethodGet, "/booth", "")
    assert.Equal(t, "MISS", miss.Header().Get("X-Cache"))
    hit := do(e, http.MethodGet, "/booth", "")
    assert.Equal(t, "HIT", hit.Header().Get("X-Cache"))
    assert.Equal(t, miss.Body.String(), hit.Body.String())
    assert.Equal(t, echo.MIMEApplicationJSON, hit.Header().Get(echo.HeaderContentType))
    assert.Equal(t, 1, calls)

    other := do(e, http.MethodGet, "/booth?x=1", "")
    assert.Equal(t, "MISS", other.Header().Get("X-Cache"))
    assert.Equal(t, 2, calls)
}

func TestRedisCache_SkipsErrorsAndLargeBodies(t *testing.T) {
    _, rdb := newRedis(t)
    e := echo.New()
    e.Use(NewRedisCache(cacheConfig(), rdb))
    e.GET("/missing", func(c echo.Context) error { return c.String(http.StatusNotFound, "nope") })
    e.GET("/big", func(c echo.Context) error { return c.String(http.StatusOK, strings.Repeat("x", 2048)) })

    do(e, http.MethodGet, "/missing", "")
    assert.Equal(t, "MISS", do(e, http.MethodGet, "/missing", "").Header().Get("X-Cache"))

    first := do(e, http.MethodGet, "/big", "")
    assert.Len(t, first.Body.String(), 2048)
    assert.Equal(t, "MISS", do(e, http.MethodGet, "/big", "").Header().Get("X-Cache"))
}

func TestRedisCache_PurgeOnWrite(t *testing.T) {
    mr, rdb := newRedis(t)
    require.NoError(t, mr.Set("unrelated", "keep"))

    e := echo.New()
    e.Use(NewRedisCache(cacheConfig(), rdb))
    e.GET("/reservation", func(c echo.Context) error { return c.JSON(http.StatusOK, []int{}) })
    e.POST("/reservation", func(c echo.Context) error { return c.JSON(http.StatusCreated, echo.Map{"id": 1}) })
    e.POST("/fail", func(c echo.Context) error { return c.String(http.StatusBadRequest, "bad") })

    do(e, http.MethodGet, "/reservation", "")
    require.Len(t, mr.Keys(), 2)

    do(e, http.MethodPost, "/fail", "")
    assert.Len(t, mr.Keys(), 2)

    do(e, http.MethodPost, "/reservation", "")
    assert.Equal(t, []string{"unrelated"}, mr.Keys())
    assert.Equal(t, "MISS", do(e, http.MethodGet, "/reservation", "").Header().Get("X-Cache"))
}

func TestPayloadRoundTrip(t *testing.T) {
    h := http.Header{"Content-Type": {"text/plain"}}
    bs, err := encodePayload(201, h, []byte("body"))
    require.NoError(t, err)
    status, hdr, body, ok := decodePayload(bs)
    require.True(t, ok)
    assert.Equal(t, 201, status)
    assert.Equal(t, "text/plain", hdr.Get("Content-Type"))
    assert.Equal(t, "body", string(body))

    _, _, _, ok = decodePayload([]byte{0, 1})
    assert.False(t, ok)
}
