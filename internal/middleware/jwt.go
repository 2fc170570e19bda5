package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/booth-market/internal/utils"
)

// Context keys set by JWTAuth.
const (
    ctxVendorID = "vendor_id"
    ctxClaims   = "claims"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and stores the authenticated vendor id in the request context.  The
// secret must match the one used when issuing tokens at login.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            raw, ok := bearer(c)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            if !authenticate(c, secret, raw) {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }
            return next(c)
        }
    }
}

// IdentifyVendor records the vendor of a valid bearer token, like JWTAuth,
// but never rejects.  Installed ahead of the rate limiter it lets vendor
// key strategies tell vendors apart on every route.
func IdentifyVendor(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if raw, ok := bearer(c); ok {
                authenticate(c, secret, raw)
            }
            return next(c)
        }
    }
}

func bearer(c echo.Context) (string, bool) {
    auth := c.Request().Header.Get("Authorization")
    if !strings.HasPrefix(auth, "Bearer ") {
        return "", false
    }
    return strings.TrimPrefix(auth, "Bearer "), true
}

func authenticate(c echo.Context, secret, raw string) bool {
    claims, err := utils.ParseAccessToken(secret, raw)
    if err != nil {
        return false
    }
    vid, _ := claims.VendorID()
    c.Set(ctxVendorID, vid)
    c.Set(ctxClaims, claims)
    return true
}

// VendorID returns the vendor authenticated by JWTAuth, if any.
func VendorID(c echo.Context) (uint64, bool) {
    v, ok := c.Get(ctxVendorID).(uint64)
    return v, ok
}
