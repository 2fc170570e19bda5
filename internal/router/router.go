package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/booth-market/internal/handler"
    "github.com/iliyamo/booth-market/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by Register.
type Handlers struct {
    Vendor    *handler.VendorHandler
    Product   *handler.ProductHandler
    Sale      *handler.SaleHandler
    Booth     *handler.BoothHandler
    Dashboard *handler.DashboardHandler
}

// Options controls the API prefix and the optional token guard.
type Options struct {
    Prefix       string
    AuthRequired bool
    JWTSecret    string
}

// Register mounts /healthz at the root and every API route under
// opt.Prefix.  With AuthRequired, mutating vendor-scoped routes need a
// bearer token, /vendor/:id writes are limited to that vendor and product
// writes to the product's vendor.
func Register(e *echo.Echo, h Handlers, opt Options) {
    e.GET("/healthz", handler.Health)

    var authed, self, owned []echo.MiddlewareFunc
    if opt.AuthRequired {
        jwt := middleware.JWTAuth(opt.JWTSecret)
        authed = []echo.MiddlewareFunc{jwt}
        self = []echo.MiddlewareFunc{jwt, middleware.RequireSelf("id")}
        owned = []echo.MiddlewareFunc{jwt, middleware.RequireOwner("id", h.Product.Owner)}
    }

    api := e.Group(opt.Prefix)
    api.GET("", handler.Welcome)
    api.GET("/", handler.Welcome)

    // vendors and accounts
    api.GET("/vendor", h.Vendor.List)
    api.GET("/vendor/:id", h.Vendor.Get)
    api.PUT("/vendor/:id", h.Vendor.Update, self...)
    api.DELETE("/vendor/:id", h.Vendor.Delete, self...)
    api.POST("/vendor/register", h.Vendor.Register)
    api.POST("/vendor/login", h.Vendor.Login)
    api.POST("/vendor/forgot-password", h.Vendor.ForgotPassword)

    // products
    api.GET("/vendor/:id/product", h.Product.ListForVendor)
    api.POST("/vendor/:id/product", h.Product.Create, self...)
    api.GET("/product", h.Product.Paginate)
    api.GET("/product/:id", h.Product.Get)
    api.PUT("/product/:id", h.Product.Update, owned...)
    api.DELETE("/product/:id", h.Product.Delete, owned...)
    api.GET("/product/:id/item", h.Product.SaleItems)

    // sales
    api.GET("/vendor/:id/sale", h.Sale.ListForVendor)
    api.GET("/sale/:id", h.Sale.Get)
    api.GET("/sale/:id/item", h.Sale.Items)
    api.GET("/sale/:id/product", h.Sale.Products)
    api.GET("/sale/:id/vendor", h.Sale.Vendors)

    // booths and reservations
    api.GET("/booth", h.Booth.List)
    api.GET("/booth/:id", h.Booth.Get)
    api.GET("/booth/:id/reservation", h.Booth.BoothReservations)
    api.GET("/reservation", h.Booth.Reservations)
    api.POST("/reservation", h.Booth.CreateReservation, authed...)
    api.GET("/reservation/:id/pass", h.Booth.Pass)
    api.GET("/reservations", h.Booth.DayReservations)
    api.GET("/vendor/:id/booth", h.Booth.ForVendor)

    // dashboard
    dash := api.Group("/dashboard/:vid")
    dash.GET("/stats", h.Dashboard.Stats)
    dash.GET("/recent-sales", h.Dashboard.RecentSales)
    dash.GET("/top-products", h.Dashboard.TopProducts)
    dash.GET("/monthly-sales", h.Dashboard.MonthlySales)
}
