package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/booth-market/internal/config"
	"github.com/iliyamo/booth-market/internal/model"
)

// VendorRepo encapsulates queries on the vendor and vendor_auth tables.
// Operations that touch both tables run in a single transaction so a vendor
// is never left without its credential row by a failure halfway through.
type VendorRepo struct {
	db *sql.DB
}

// NewVendorRepo constructs a VendorRepo with the provided DB handle.
func NewVendorRepo(db *sql.DB) *VendorRepo { return &VendorRepo{db: db} }

const vendorColumns = "id, name, phone, email, COALESCE(description, ''), owner, logo"

func scanVendor(s scanner) (*model.Vendor, error) {
	var v model.Vendor
	var logo sql.NullString
	if err := s.Scan(&v.ID, &v.Name, &v.Phone, &v.Email, &v.Description, &v.Owner, &logo); err != nil {
		return nil, err
	}
	if logo.Valid {
		l := logo.String
		v.Logo = &l
	}
	return &v, nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// List returns every vendor ordered by id.
func (r *VendorRepo) List(ctx context.Context) ([]model.Vendor, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+vendorColumns+" FROM vendor ORDER BY id")
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

// GetByID fetches a vendor.  It returns ErrNotFound if no row matches.
func (r *VendorRepo) GetByID(ctx context.Context, id uint64) (*model.Vendor, error) {
	v, err := scanVendor(r.db.QueryRowContext(ctx, "SELECT "+vendorColumns+" FROM vendor WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return v, err
}

// CreateWithAuth inserts the vendor and its credential row in one
// transaction and populates v.ID.  A duplicate credential email yields
// ErrDuplicate and leaves no vendor row behind.
func (r *VendorRepo) CreateWithAuth(ctx context.Context, v *model.Vendor, email, passwordHash string) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO vendor (name, phone, email, description, owner, logo) VALUES (?, ?, ?, ?, ?, ?)",
			v.Name, v.Phone, v.Email, v.Description, v.Owner, nullable(v.Logo))
		if err != nil {
			return translate(err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		v.ID = uint64(id)
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO vendor_auth (vendor_id, email, password) VALUES (?, ?, ?)",
			v.ID, email, passwordHash); err != nil {
			return translate(err)
		}
		return nil
	})
}

// Update overwrites every profile column.  It returns ErrNotFound when no
// vendor has the given id.
func (r *VendorRepo) Update(ctx context.Context, v *model.Vendor) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE vendor SET name = ?, phone = ?, email = ?, description = ?, owner = ?, logo = ? WHERE id = ?",
		v.Name, v.Phone, v.Email, v.Description, v.Owner, nullable(v.Logo), v.ID)
	if err != nil {
		return translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a vendor.  Credential rows are always removed first so the
// vendor_auth foreign key never blocks the delete.  What happens to the
// vendor's products and reservations depends on policy:
//   orphan   – they are left in place with a dangling vid
//   cascade  – reservations, sale items of the products and the products go too
//   restrict – ErrConflict when any product or reservation exists
// All statements share one transaction; ErrNotFound rolls everything back.
func (r *VendorRepo) Delete(ctx context.Context, id uint64, policy string) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		switch policy {
		case config.DeleteRestrict:
			var n int64
			if err := tx.QueryRowContext(ctx,
				"SELECT (SELECT COUNT(*) FROM product WHERE vid = ?) + (SELECT COUNT(*) FROM reservation WHERE vid = ?)",
				id, id).Scan(&n); err != nil {
				return err
			}
			if n > 0 {
				return ErrConflict
			}
		case config.DeleteCascade:
			for _, q := range []string{
				"DELETE FROM reservation WHERE vid = ?",
				"DELETE si FROM saleitem si JOIN product p ON p.id = si.pid WHERE p.vid = ?",
				"DELETE FROM product WHERE vid = ?",
			} {
				if _, err := tx.ExecContext(ctx, q, id); err != nil {
					return translate(err)
				}
			}
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM vendor_auth WHERE vendor_id = ?", id); err != nil {
			return translate(err)
		}
		res, err := tx.ExecContext(ctx, "DELETE FROM vendor WHERE id = ?", id)
		if err != nil {
			return translate(err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// GetAuthByEmail fetches the credential row for an email.  It returns
// ErrNotFound if no row matches.
func (r *VendorRepo) GetAuthByEmail(ctx context.Context, email string) (*model.VendorAuth, error) {
	var a model.VendorAuth
	var created sql.NullTime
	err := r.db.QueryRowContext(ctx,
		"SELECT id, vendor_id, email, password, created_at FROM vendor_auth WHERE email = ? LIMIT 1",
		email).Scan(&a.ID, &a.VendorID, &a.Email, &a.PasswordHash, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	a.CreatedAt = created.Time
	return &a, nil
}

// FindForRecovery returns the first vendor whose email, phone and owner all
// match exactly.  It returns ErrNotFound otherwise.
func (r *VendorRepo) FindForRecovery(ctx context.Context, email, phone, owner string) (*model.Vendor, error) {
	v, err := scanVendor(r.db.QueryRowContext(ctx,
		"SELECT "+vendorColumns+" FROM vendor WHERE email = ? AND phone = ? AND owner = ? ORDER BY id LIMIT 1",
		email, phone, owner))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return v, err
}

// SetPassword stores a new hash for the vendor.  When the vendor already has
// credential rows they are updated in place; otherwise a row is inserted
// with the given email.  created reports which path was taken.  The lookup
// locks the vendor's credential rows so two concurrent resets cannot both
// insert.
func (r *VendorRepo) SetPassword(ctx context.Context, vendorID uint64, email, passwordHash string) (created bool, err error) {
	err = withTx(ctx, r.db, func(tx *sql.Tx) error {
		var n int64
		if err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM vendor_auth WHERE vendor_id = ? FOR UPDATE", vendorID).Scan(&n); err != nil {
			return err
		}
		if n > 0 {
			_, err := tx.ExecContext(ctx, "UPDATE vendor_auth SET password = ? WHERE vendor_id = ?", passwordHash, vendorID)
			return translate(err)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO vendor_auth (vendor_id, email, password) VALUES (?, ?, ?)",
			vendorID, email, passwordHash); err != nil {
			return translate(err)
		}
		created = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}
