package middleware

import (
    "context"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"
)

// RequireSelf rejects requests whose path parameter param names a vendor
// other than the one authenticated by JWTAuth.  It must run after JWTAuth.
func RequireSelf(param string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            vid, ok := VendorID(c)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            id, err := strconv.ParseUint(c.Param(param), 10, 64)
            if err != nil || id != vid {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
            }
            return next(c)
        }
    }
}

// OwnerFunc reports which vendor owns the resource with the given id.
// found is false when no such resource exists.
type OwnerFunc func(ctx context.Context, id uint64) (vendorID uint64, found bool, err error)

// RequireOwner rejects requests for a resource, named by path parameter
// param, that belongs to a vendor other than the authenticated one.
// Unknown or malformed ids pass through so the handler can answer them.
// It must run after JWTAuth.
func RequireOwner(param string, owner OwnerFunc) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            vid, ok := VendorID(c)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            id, err := strconv.ParseUint(c.Param(param), 10, 64)
            if err != nil {
                return next(c)
            }
            ownerID, found, err := owner(c.Request().Context(), id)
            if err != nil {
                c.Logger().Errorf("owner lookup %s %s: %v", c.Request().Method, c.Path(), err)
                return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
            }
            if found && ownerID != vid {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
            }
            return next(c)
        }
    }
}
