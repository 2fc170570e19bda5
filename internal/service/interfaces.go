package service

import (
	"context"

	"github.com/iliyamo/booth-market/internal/model"
)

// VendorStore is the persistence surface used by IdentityService.
type VendorStore interface {
	List(ctx context.Context) ([]model.Vendor, error)
	GetByID(ctx context.Context, id uint64) (*model.Vendor, error)
	CreateWithAuth(ctx context.Context, v *model.Vendor, email, passwordHash string) error
	Update(ctx context.Context, v *model.Vendor) error
	Delete(ctx context.Context, id uint64, policy string) error
	GetAuthByEmail(ctx context.Context, email string) (*model.VendorAuth, error)
	FindForRecovery(ctx context.Context, email, phone, owner string) (*model.Vendor, error)
	SetPassword(ctx context.Context, vendorID uint64, email, passwordHash string) (bool, error)
}

// ProductStore is the persistence surface used by CatalogService.
type ProductStore interface {
	ListByVendor(ctx context.Context, vendorID uint64) ([]model.Product, error)
	GetByID(ctx context.Context, id uint64) (*model.Product, error)
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id uint64, policy string) error
	Search(ctx context.Context, search string, page, limit int) ([]model.Product, int64, error)
	SaleItems(ctx context.Context, productID uint64) ([]model.SaleItem, error)
}

// SaleStore is the persistence surface used by SalesService.
type SaleStore interface {
	ListByVendor(ctx context.Context, vendorID uint64) ([]model.Sale, error)
	GetByID(ctx context.Context, id uint64) ([]model.Sale, error)
	Items(ctx context.Context, saleID uint64) ([]model.SaleItem, error)
	Products(ctx context.Context, saleID uint64) ([]model.SaleProduct, error)
	Vendors(ctx context.Context, saleID uint64) ([]model.Vendor, error)
}

// BoothStore and ReservationStore back BoothService.
type BoothStore interface {
	List(ctx context.Context) ([]model.Booth, error)
	GetByID(ctx context.Context, id uint64) ([]model.Booth, error)
	LatestForVendor(ctx context.Context, vendorID uint64) ([]model.VendorBooth, error)
}

type ReservationStore interface {
	List(ctx context.Context) ([]model.Reservation, error)
	GetByID(ctx context.Context, id uint64) (*model.Reservation, error)
	ListByBooth(ctx context.Context, boothID uint64, day string) ([]model.Reservation, error)
	ListByDay(ctx context.Context, day string) ([]model.DayReservation, error)
	Create(ctx context.Context, res *model.Reservation, policy string) error
}

// DashboardStore is the persistence surface used by DashboardService.
type DashboardStore interface {
	Stats(ctx context.Context, vendorID uint64) (model.DashboardStats, error)
	RecentSales(ctx context.Context, vendorID uint64) ([]model.RecentSale, error)
	TopProducts(ctx context.Context, vendorID uint64) ([]model.TopProduct, error)
	MonthlySales(ctx context.Context, vendorID uint64) ([]model.MonthlySales, error)
}
