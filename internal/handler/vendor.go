package handler

import (
    "context"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/booth-market/internal/model"
    "github.com/iliyamo/booth-market/internal/service"
)

// IdentityService is implemented by *service.IdentityService.
type IdentityService interface {
    Register(ctx context.Context, in service.RegisterInput) (*model.Vendor, error)
    Login(ctx context.Context, email, password string) (*service.Session, error)
    ForgotPassword(ctx context.Context, in service.RecoveryInput) (bool, error)
    List(ctx context.Context) ([]model.Vendor, error)
    Get(ctx context.Context, id uint64) ([]model.Vendor, error)
    Update(ctx context.Context, id uint64, in service.VendorInput) (*model.Vendor, error)
    Delete(ctx context.Context, id uint64) error
}

// VendorHandler serves vendor accounts: registration, login, password
// recovery and profile maintenance.
type VendorHandler struct {
    Identity IdentityService
}

func NewVendorHandler(s IdentityService) *VendorHandler { return &VendorHandler{Identity: s} }

type loginReq struct {
    Email    string `json:"email"`
    Password string `json:"password"`
}

func (h *VendorHandler) Register(c echo.Context) error {
    var req service.RegisterInput
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    v, err := h.Identity.Register(ctx, req)
    if err != nil {
        return jsonError(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{"vendor": v})
}

// Login verifies credentials and returns the vendor with an access token.
func (h *VendorHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    sess, err := h.Identity.Login(ctx, req.Email, req.Password)
    if err != nil {
        return jsonError(c, err)
    }
    return c.JSON(http.StatusOK, sess)
}

func (h *VendorHandler) ForgotPassword(c echo.Context) error {
    var req service.RecoveryInput
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    created, err := h.Identity.ForgotPassword(ctx, req)
    if err != nil {
        return jsonError(c, err)
    }
    if created {
        return c.JSON(http.StatusOK, echo.Map{"message": "Password set"})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "Password updated"})
}

func (h *VendorHandler) List(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    list, err := h.Identity.List(ctx)
    if err != nil {
        return textError(c, err)
    }
    return c.JSON(http.StatusOK, list)
}

// Get answers an array holding the vendor, or an empty array.
func (h *VendorHandler) Get(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return badID(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    list, err := h.Identity.Get(ctx, id)
    if err != nil {
        return textError(c, err)
    }
    return c.JSON(http.StatusOK, list)
}

func (h *VendorHandler) Update(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req service.VendorInput
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    v, err := h.Identity.Update(ctx, id, req)
    if err != nil {
        return jsonError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "Vendor updated", "vendor": v})
}

func (h *VendorHandler) Delete(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    if err := h.Identity.Delete(ctx, id); err != nil {
        return jsonError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "Vendor account deleted"})
}
