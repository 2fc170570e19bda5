package handler

import (
    "context"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/booth-market/internal/model"
    "github.com/iliyamo/booth-market/internal/service"
)

// CatalogService is implemented by *service.CatalogService.
type CatalogService interface {
    ListForVendor(ctx context.Context, vendorID uint64) ([]model.Product, error)
    Get(ctx context.Context, id uint64) ([]model.Product, error)
    Create(ctx context.Context, vendorID uint64, in service.ProductInput) (*model.Product, error)
    Update(ctx context.Context, id uint64, in service.ProductInput) (*model.Product, error)
    Delete(ctx context.Context, id uint64) error
    Paginate(ctx context.Context, page, limit int, search string) (model.ProductPage, error)
    SaleItems(ctx context.Context, productID uint64) ([]model.SaleItem, error)
}

// ProductHandler serves vendor products and the product search.
type ProductHandler struct {
    Catalog CatalogService
}

func NewProductHandler(s CatalogService) *ProductHandler { return &ProductHandler{Catalog: s} }

// ListForVendor handles GET /vendor/:id/product.
func (h *ProductHandler) ListForVendor(c echo.Context) error {
    vid, ok := parseID(c, "id")
    if !ok {
        return badID(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    list, err := h.Catalog.ListForVendor(ctx, vid)
    if err != nil {
        return textError(c, err)
    }
    return c.JSON(http.StatusOK, list)
}

// Create handles POST /vendor/:id/product.
func (h *ProductHandler) Create(c echo.Context) error {
    vid, ok := parseID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req service.ProductInput
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    p, err := h.Catalog.Create(ctx, vid, req)
    if err != nil {
        return jsonError(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{"message": "Product created", "product": p})
}

func (h *ProductHandler) Update(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req service.ProductInput
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    p, err := h.Catalog.Update(ctx, id, req)
    if err != nil {
        return jsonError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "Product updated", "product": p})
}

func (h *ProductHandler) Delete(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    if err := h.Catalog.Delete(ctx, id); err != nil {
        return jsonError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted"})
}

// Get answers an array holding the product, or an empty array.
func (h *ProductHandler) Get(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return badID(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    list, err := h.Catalog.Get(ctx, id)
    if err != nil {
        return textError(c, err)
    }
    return c.JSON(http.StatusOK, list)
}

// Paginate handles GET /product?page=&limit=&search=.  Unparseable
// numbers fall back to the defaults.
func (h *ProductHandler) Paginate(c echo.Context) error {
    page, _ := strconv.Atoi(c.QueryParam("page"))
    limit, _ := strconv.Atoi(c.QueryParam("limit"))
    ctx, cancel := reqCtx(c)
    defer cancel()

    res, err := h.Catalog.Paginate(ctx, page, limit, c.QueryParam("search"))
    if err != nil {
        return textError(c, err)
    }
    return c.JSON(http.StatusOK, res)
}

// Owner reports the vendor owning product id.  It backs the ownership
// guard on product writes.
func (h *ProductHandler) Owner(ctx context.Context, id uint64) (uint64, bool, error) {
    ctx, cancel := context.WithTimeout(ctx, requestTimeout)
    defer cancel()
    list, err := h.Catalog.Get(ctx, id)
    if err != nil || len(list) == 0 {
        return 0, false, err
    }
    return list[0].VendorID, true, nil
}

// SaleItems handles GET /product/:id/item.
func (h *ProductHandler) SaleItems(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return badID(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    list, err := h.Catalog.SaleItems(ctx, id)
    if err != nil {
        return textError(c, err)
    }
    return c.JSON(http.StatusOK, list)
}
