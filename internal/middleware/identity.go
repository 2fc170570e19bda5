package middleware

// identity.go holds helpers shared across middleware files.

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// currentVendorID returns the authenticated vendor id as a string, or
// "anon" when the request carries no verified token.
func currentVendorID(c echo.Context) string {
    if vid, ok := VendorID(c); ok {
        return strconv.FormatUint(vid, 10)
    }
    return "anon"
}
