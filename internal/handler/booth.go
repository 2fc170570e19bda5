package handler

import (
    "context"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/booth-market/internal/middleware"
    "github.com/iliyamo/booth-market/internal/model"
    "github.com/iliyamo/booth-market/internal/service"
)

// BoothService is implemented by *service.BoothService.
type BoothService interface {
    ListBooths(ctx context.Context) ([]model.Booth, error)
    GetBooth(ctx context.Context, id uint64) ([]model.Booth, error)
    ListReservations(ctx context.Context) ([]model.Reservation, error)
    ListReservationsForBooth(ctx context.Context, boothID uint64, day string) ([]model.Reservation, error)
    ListReservationsForDay(ctx context.Context, day string) ([]model.DayReservation, error)
    LatestBoothForVendor(ctx context.Context, vendorID uint64) ([]model.VendorBooth, error)
    CreateReservation(ctx context.Context, in service.ReservationInput) (uint64, error)
    ReservationPass(ctx context.Context, id uint64) ([]byte, error)
}

// BoothHandler serves booths and reservations.
type BoothHandler struct {
    Booths BoothService
}

func NewBoothHandler(s BoothService) *BoothHandler { return &BoothHandler{Booths: s} }

func (h *BoothHandler) List(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    list, err := h.Booths.ListBooths(ctx)
    if err != nil {
        return textError(c, err)
    }
    return c.JSON(http.StatusOK, list)
}

func (h *BoothHandler) Get(c echo.Context) error { return serveList(c, "id", h.Booths.GetBooth) }

// ForVendor handles GET /vendor/:id/booth: the booth of the vendor's
// latest reservation.
func (h *BoothHandler) ForVendor(c echo.Context) error {
    return serveList(c, "id", h.Booths.LatestBoothForVendor)
}

// BoothReservations handles GET /booth/:id/reservation?day=YYYY-MM-DD.
func (h *BoothHandler) BoothReservations(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return badID(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    list, err := h.Booths.ListReservationsForBooth(ctx, id, c.QueryParam("day"))
    if err != nil {
        return textError(c, err)
    }
    return c.JSON(http.StatusOK, list)
}

func (h *BoothHandler) Reservations(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    list, err := h.Booths.ListReservations(ctx)
    if err != nil {
        return textError(c, err)
    }
    return c.JSON(http.StatusOK, list)
}

// DayReservations handles GET /reservations?date=YYYY-MM-DD.
func (h *BoothHandler) DayReservations(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    list, err := h.Booths.ListReservationsForDay(ctx, c.QueryParam("date"))
    if err != nil {
        return textError(c, err)
    }
    return c.JSON(http.StatusOK, list)
}

// CreateReservation handles POST /reservation.  Errors are plain text.
// Behind JWTAuth the body vid defaults to, and must match, the token's
// vendor.
func (h *BoothHandler) CreateReservation(c echo.Context) error {
    var req service.ReservationInput
    if err := c.Bind(&req); err != nil {
        return c.String(http.StatusBadRequest, "Missing required reservation fields")
    }
    // an authenticated vendor books only for itself
    if vid, ok := middleware.VendorID(c); ok {
        if req.VendorID == 0 {
            req.VendorID = vid
        } else if req.VendorID != vid {
            return c.String(http.StatusForbidden, "Cannot reserve for another vendor")
        }
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    id, err := h.Booths.CreateReservation(ctx, req)
    if err != nil {
        return textError(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{"message": "Reservation created successfully", "id": id})
}

// Pass handles GET /reservation/:id/pass and answers a PNG QR code.
func (h *BoothHandler) Pass(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return badID(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    png, err := h.Booths.ReservationPass(ctx, id)
    if err != nil {
        return textError(c, err)
    }
    return c.Blob(http.StatusOK, "image/png", png)
}
