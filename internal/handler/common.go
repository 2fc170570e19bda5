package handler

import (
    "context"
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/booth-market/internal/service"
)

// requestTimeout bounds every database round trip made for one request.
const requestTimeout = 5 * time.Second

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
    return context.WithTimeout(c.Request().Context(), requestTimeout)
}

// parseID reads a positive integer path parameter.
func parseID(c echo.Context, name string) (uint64, bool) {
    id, err := strconv.ParseUint(c.Param(name), 10, 64)
    return id, err == nil && id > 0
}

// statusOf maps a service error kind to an HTTP status.
func statusOf(err error) int {
    switch {
    case errors.Is(err, service.ErrValidation):
        return http.StatusBadRequest
    case errors.Is(err, service.ErrAuth):
        return http.StatusUnauthorized
    case errors.Is(err, service.ErrNotFound):
        return http.StatusNotFound
    case errors.Is(err, service.ErrConflict):
        return http.StatusConflict
    }
    return http.StatusInternalServerError
}

// messageOf returns the client-facing text of err.  Errors that did not
// come from the service layer are never shown verbatim.
func messageOf(err error) string {
    var se *service.Error
    if errors.As(err, &se) {
        return se.Msg
    }
    return "Server error"
}

func logFailure(c echo.Context, status int, err error) {
    if status < http.StatusInternalServerError {
        return
    }
    var se *service.Error
    if errors.As(err, &se) && se.Cause != nil {
        c.Logger().Errorf("%s %s: %s: %v", c.Request().Method, c.Path(), se.Msg, se.Cause)
        return
    }
    c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
}

// jsonError answers write endpoints: {"error": message}.
func jsonError(c echo.Context, err error) error {
    status := statusOf(err)
    logFailure(c, status, err)
    return c.JSON(status, echo.Map{"error": messageOf(err)})
}

// textError answers read endpoints with a plain-text message.
func textError(c echo.Context, err error) error {
    status := statusOf(err)
    logFailure(c, status, err)
    return c.String(status, messageOf(err))
}

// serveList runs fetch for the id in path parameter param and writes the
// resulting array.
func serveList[T any](c echo.Context, param string, fetch func(context.Context, uint64) ([]T, error)) error {
    id, ok := parseID(c, param)
    if !ok {
        return badID(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    list, err := fetch(ctx, id)
    if err != nil {
        return textError(c, err)
    }
    return c.JSON(http.StatusOK, list)
}

func badID(c echo.Context) error {
    return c.String(http.StatusBadRequest, "invalid id")
}
