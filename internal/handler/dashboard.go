package handler

import (
    "context"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/booth-market/internal/model"
)

// DashboardService is implemented by *service.DashboardService.
type DashboardService interface {
    Stats(ctx context.Context, vendorID uint64) (model.DashboardStats, error)
    RecentSales(ctx context.Context, vendorID uint64) ([]model.RecentSale, error)
    TopProducts(ctx context.Context, vendorID uint64) ([]model.TopProduct, error)
    MonthlySales(ctx context.Context, vendorID uint64) ([]model.MonthlySales, error)
}

// DashboardHandler serves /dashboard/:vid/* analytics.
type DashboardHandler struct {
    Dashboard DashboardService
}

func NewDashboardHandler(s DashboardService) *DashboardHandler {
    return &DashboardHandler{Dashboard: s}
}

func (h *DashboardHandler) Stats(c echo.Context) error {
    vid, ok := parseID(c, "vid")
    if !ok {
        return badID(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    st, err := h.Dashboard.Stats(ctx, vid)
    if err != nil {
        return textError(c, err)
    }
    return c.JSON(http.StatusOK, st)
}

func (h *DashboardHandler) RecentSales(c echo.Context) error {
    return serveList(c, "vid", h.Dashboard.RecentSales)
}

func (h *DashboardHandler) TopProducts(c echo.Context) error {
    return serveList(c, "vid", h.Dashboard.TopProducts)
}

func (h *DashboardHandler) MonthlySales(c echo.Context) error {
    return serveList(c, "vid", h.Dashboard.MonthlySales)
}
