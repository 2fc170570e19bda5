package handler

import (
    "context"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/booth-market/internal/model"
)

// SalesService is implemented by *service.SalesService.
type SalesService interface {
    ListForVendor(ctx context.Context, vendorID uint64) ([]model.Sale, error)
    Get(ctx context.Context, id uint64) ([]model.Sale, error)
    Items(ctx context.Context, id uint64) ([]model.SaleItem, error)
    Products(ctx context.Context, id uint64) ([]model.SaleProduct, error)
    Vendors(ctx context.Context, id uint64) ([]model.Vendor, error)
}

// SaleHandler serves read-only sale queries.  Every endpoint answers a
// JSON array.
type SaleHandler struct {
    Sales SalesService
}

func NewSaleHandler(s SalesService) *SaleHandler { return &SaleHandler{Sales: s} }

// ListForVendor handles GET /vendor/:id/sale.
func (h *SaleHandler) ListForVendor(c echo.Context) error { return serveList(c, "id", h.Sales.ListForVendor) }

func (h *SaleHandler) Get(c echo.Context) error      { return serveList(c, "id", h.Sales.Get) }
func (h *SaleHandler) Items(c echo.Context) error    { return serveList(c, "id", h.Sales.Items) }
func (h *SaleHandler) Products(c echo.Context) error { return serveList(c, "id", h.Sales.Products) }
func (h *SaleHandler) Vendors(c echo.Context) error  { return serveList(c, "id", h.Sales.Vendors) }
