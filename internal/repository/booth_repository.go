package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/booth-market/internal/model"
)

// BoothRepo reads the static booth pool.
type BoothRepo struct {
	db *sql.DB
}

func NewBoothRepo(db *sql.DB) *BoothRepo { return &BoothRepo{db: db} }

func (r *BoothRepo) query(ctx context.Context, q string, args ...any) ([]model.Booth, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booth, 0)
	for rows.Next() {
		var b model.Booth
		if err := rows.Scan(&b.ID, &b.Name, &b.Location, &b.Size); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// List returns every booth ordered by id.
func (r *BoothRepo) List(ctx context.Context) ([]model.Booth, error) {
	return r.query(ctx, "SELECT id, name, location, size FROM booth ORDER BY id")
}

// GetByID returns the booth with the given id as a zero-or-one slice.
func (r *BoothRepo) GetByID(ctx context.Context, id uint64) ([]model.Booth, error) {
	return r.query(ctx, "SELECT id, name, location, size FROM booth WHERE id = ?", id)
}

// LatestForVendor returns the booth of the vendor's most recent reservation
// (by reservation date) together with that reservation's date and duration,
// as a zero-or-one slice.
func (r *BoothRepo) LatestForVendor(ctx context.Context, vendorID uint64) ([]model.VendorBooth, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT b.id, b.name, b.location, b.size, r.date, r.duration
		 FROM booth b
		 JOIN reservation r ON r.bid = b.id
		 WHERE r.vid = ?
		 ORDER BY r.date DESC, r.id DESC
		 LIMIT 1`, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.VendorBooth, 0, 1)
	for rows.Next() {
		var vb model.VendorBooth
		if err := rows.Scan(&vb.ID, &vb.Name, &vb.Location, &vb.Size, &vb.ReservationDate, &vb.Duration); err != nil {
			return nil, err
		}
		out = append(out, vb)
	}
	return out, rows.Err()
}
