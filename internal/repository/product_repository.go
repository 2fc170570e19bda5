package repository

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"strings"

	"github.com/iliyamo/booth-market/internal/config"
	"github.com/iliyamo/booth-market/internal/model"
)

// ProductRepo provides CRUD operations for products.  Every product belongs
// to a vendor through the vid column.
type ProductRepo struct {
	db *sql.DB
}

// NewProductRepo returns a new ProductRepo bound to the given database.
func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{db: db} }

const productColumns = "id, name, COALESCE(description, ''), count, price, vid"

func scanProduct(s scanner) (*model.Product, error) {
	var p model.Product
	if err := s.Scan(&p.ID, &p.Name, &p.Description, &p.Count, &p.Price, &p.VendorID); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) query(ctx context.Context, q string, args ...any) ([]model.Product, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// ListByVendor returns the vendor's products ordered by id.
func (r *ProductRepo) ListByVendor(ctx context.Context, vendorID uint64) ([]model.Product, error) {
	return r.query(ctx, "SELECT "+productColumns+" FROM product WHERE vid = ? ORDER BY id", vendorID)
}

// GetByID fetches one product or ErrNotFound.
func (r *ProductRepo) GetByID(ctx context.Context, id uint64) (*model.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, "SELECT "+productColumns+" FROM product WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

// Create inserts p and reads the stored row back into it.
func (r *ProductRepo) Create(ctx context.Context, p *model.Product) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO product (name, description, count, price, vid) VALUES (?, ?, ?, ?, ?)",
		p.Name, p.Description, p.Count, p.Price, p.VendorID)
	if err != nil {
		return translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	stored, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*p = *stored
	return nil
}

// Update overwrites name, description, count and price of product p.ID and
// reads the stored row back.  It returns ErrNotFound when no row matches.
func (r *ProductRepo) Update(ctx context.Context, p *model.Product) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE product SET name = ?, description = ?, count = ?, price = ? WHERE id = ?",
		p.Name, p.Description, p.Count, p.Price, p.ID)
	if err != nil {
		return translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	stored, err := r.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	*p = *stored
	return nil
}

// Delete removes a product.  Under the restrict policy a product referenced
// by any sale item is kept and ErrConflict returned; under orphan the sale
// items keep a dangling pid.
func (r *ProductRepo) Delete(ctx context.Context, id uint64, policy string) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if policy == config.DeleteRestrict {
			var n int64
			if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM saleitem WHERE pid = ?", id).Scan(&n); err != nil {
				return err
			}
			if n > 0 {
				return ErrConflict
			}
		}
		res, err := tx.ExecContext(ctx, "DELETE FROM product WHERE id = ?", id)
		if err != nil {
			return translate(err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// escapeLike escapes LIKE wildcards so search text matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// Search returns one page of products whose name contains search
// (case-insensitive) and the total number of matches.  page and limit must
// already be at least 1.  A page too far out to address yields no items.
func (r *ProductRepo) Search(ctx context.Context, search string, page, limit int) ([]model.Product, int64, error) {
	pattern := "%" + escapeLike(strings.ToLower(search)) + "%"

	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM product WHERE LOWER(name) LIKE ?", pattern).Scan(&total); err != nil {
		return nil, 0, err
	}
	// offsets past math.MaxInt cannot reach any row
	if page-1 > math.MaxInt/limit {
		return []model.Product{}, total, nil
	}
	offset := (page - 1) * limit
	items, err := r.query(ctx,
		"SELECT "+productColumns+" FROM product WHERE LOWER(name) LIKE ? ORDER BY id LIMIT ? OFFSET ?",
		pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// SaleItems returns the sale items that reference a product.
func (r *ProductRepo) SaleItems(ctx context.Context, productID uint64) ([]model.SaleItem, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT sid, pid, quantity FROM saleitem WHERE pid = ? ORDER BY sid", productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSaleItems(rows)
}
