package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/booth-market/internal/config"
	"github.com/iliyamo/booth-market/internal/model"
)

// ReservationRepo provides access to booth reservations.  All timestamps
// are stored in UTC.  Day filters compare DATE(date) so the time of day
// never affects which day a reservation belongs to.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DayLayout is the format of day filters (DATE(date) = ?).
const DayLayout = "2006-01-02"

const reservationColumns = "id, vid, bid, date, duration"

func (r *ReservationRepo) query(ctx context.Context, q string, args ...any) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(&res.ID, &res.VendorID, &res.BoothID, &res.Date, &res.Duration); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// List returns every reservation ordered by id.
func (r *ReservationRepo) List(ctx context.Context) ([]model.Reservation, error) {
	return r.query(ctx, "SELECT "+reservationColumns+" FROM reservation ORDER BY id")
}

// GetByID fetches one reservation or ErrNotFound.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	list, err := r.query(ctx, "SELECT "+reservationColumns+" FROM reservation WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrNotFound
	}
	return &list[0], nil
}

// ListByBooth returns the booth's reservations.  When day is non-empty
// (YYYY-MM-DD) only reservations starting on that calendar day are
// returned.
func (r *ReservationRepo) ListByBooth(ctx context.Context, boothID uint64, day string) ([]model.Reservation, error) {
	q := "SELECT " + reservationColumns + " FROM reservation WHERE bid = ?"
	args := []any{boothID}
	if day != "" {
		q += " AND DATE(date) = ?"
		args = append(args, day)
	}
	return r.query(ctx, q+" ORDER BY date, id", args...)
}

// ListByDay returns the reservations starting on day (YYYY-MM-DD) with the
// holding vendor's name, ordered by booth and start time.
func (r *ReservationRepo) ListByDay(ctx context.Context, day string) ([]model.DayReservation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT r.id, r.bid, r.vid, r.date, r.duration, v.name AS vendor_name
		 FROM reservation r
		 JOIN vendor v ON r.vid = v.id
		 WHERE DATE(r.date) = ?
		 ORDER BY r.bid, r.date`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.DayReservation, 0)
	for rows.Next() {
		var d model.DayReservation
		if err := rows.Scan(&d.ID, &d.BoothID, &d.VendorID, &d.Date, &d.Duration, &d.VendorName); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Create inserts res and sets its ID.  Under the reject policy the booth
// row and every overlapping reservation are locked first and ErrConflict is
// returned when any overlap exists, so concurrent bookings of one booth
// serialize.  Under allow the insert is unconditional.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation, policy string) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if policy == config.ConflictReject {
			if err := lockOverlaps(ctx, tx, res); err != nil {
				return err
			}
		}
		result, err := tx.ExecContext(ctx,
			"INSERT INTO reservation (vid, bid, date, duration) VALUES (?, ?, ?, ?)",
			res.VendorID, res.BoothID, res.Date, res.Duration)
		if err != nil {
			return translate(err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		res.ID = uint64(id)
		return nil
	})
}

func lockOverlaps(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	var bid uint64
	err := tx.QueryRowContext(ctx, "SELECT id FROM booth WHERE id = ? FOR UPDATE", res.BoothID).Scan(&bid)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	var n int64
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reservation
		 WHERE bid = ? AND date < ? AND DATE_ADD(date, INTERVAL duration MINUTE) > ?
		 FOR UPDATE`,
		res.BoothID, res.End(), res.Date).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	return nil
}
