package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/booth-market/internal/model"
)

// SaleRepo reads sales and their line items.  Sales are recorded by the
// point-of-sale system so there are no write methods.
type SaleRepo struct {
	db *sql.DB
}

func NewSaleRepo(db *sql.DB) *SaleRepo { return &SaleRepo{db: db} }

func scanSales(rows *sql.Rows) ([]model.Sale, error) {
	out := make([]model.Sale, 0)
	for rows.Next() {
		var s model.Sale
		if err := rows.Scan(&s.ID, &s.Date, &s.Discount); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanSaleItems(rows *sql.Rows) ([]model.SaleItem, error) {
	out := make([]model.SaleItem, 0)
	for rows.Next() {
		var si model.SaleItem
		if err := rows.Scan(&si.SaleID, &si.ProductID, &si.Quantity); err != nil {
			return nil, err
		}
		out = append(out, si)
	}
	return out, rows.Err()
}

// ListByVendor returns each sale containing at least one of the vendor's
// products, once.
func (r *SaleRepo) ListByVendor(ctx context.Context, vendorID uint64) ([]model.Sale, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT s.id, s.date, s.discount
		 FROM sale s
		 JOIN saleitem si ON si.sid = s.id
		 JOIN product p ON si.pid = p.id
		 WHERE p.vid = ?
		 ORDER BY s.id`, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSales(rows)
}

// GetByID returns the sale with the given id as a zero-or-one slice.
func (r *SaleRepo) GetByID(ctx context.Context, id uint64) ([]model.Sale, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, date, discount FROM sale WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSales(rows)
}

// Items returns the line items of a sale.
func (r *SaleRepo) Items(ctx context.Context, saleID uint64) ([]model.SaleItem, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT sid, pid, quantity FROM saleitem WHERE sid = ? ORDER BY pid", saleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSaleItems(rows)
}

// Products returns the line items of a sale joined with their products.
func (r *SaleRepo) Products(ctx context.Context, saleID uint64) ([]model.SaleProduct, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT si.sid, si.pid, si.quantity,
		        p.id, p.name, COALESCE(p.description, ''), p.count, p.price, p.vid
		 FROM saleitem si
		 JOIN product p ON si.pid = p.id
		 WHERE si.sid = ?
		 ORDER BY si.pid`, saleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.SaleProduct, 0)
	for rows.Next() {
		var sp model.SaleProduct
		if err := rows.Scan(&sp.SaleID, &sp.ProductID, &sp.Quantity,
			&sp.Product.ID, &sp.Name, &sp.Description, &sp.Count, &sp.Price, &sp.VendorID); err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	return out, rows.Err()
}

// Vendors returns the distinct vendors whose products appear in a sale.
func (r *SaleRepo) Vendors(ctx context.Context, saleID uint64) ([]model.Vendor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT v.id, v.name, v.phone, v.email, COALESCE(v.description, ''), v.owner, v.logo
		 FROM saleitem si
		 JOIN product p ON si.pid = p.id
		 JOIN vendor v ON p.vid = v.id
		 WHERE si.sid = ?
		 ORDER BY v.id`, saleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Vendor, 0)
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}
