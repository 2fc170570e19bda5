package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/booth-market/internal/model"
)

// DashboardRepo runs the read-only aggregates behind the vendor dashboard.
// Revenue is quantity * product price; the recent sales list applies the
// sale discount, the totals do not.
type DashboardRepo struct {
	db *sql.DB
}

func NewDashboardRepo(db *sql.DB) *DashboardRepo { return &DashboardRepo{db: db} }

// Stats returns sale count, revenue and product count for a vendor.
func (r *DashboardRepo) Stats(ctx context.Context, vendorID uint64) (model.DashboardStats, error) {
	var st model.DashboardStats
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT s.id), COALESCE(SUM(si.quantity * p.price), 0)
		 FROM sale s
		 JOIN saleitem si ON si.sid = s.id
		 JOIN product p ON si.pid = p.id
		 WHERE p.vid = ?`, vendorID).Scan(&st.TotalSales, &st.TotalRevenue); err != nil {
		return st, err
	}
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM product WHERE vid = ?", vendorID).Scan(&st.ActiveProducts); err != nil {
		return st, err
	}
	return st, nil
}

// RecentSales returns the vendor's latest ten sale lines.
func (r *DashboardRepo) RecentSales(ctx context.Context, vendorID uint64) ([]model.RecentSale, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT s.id, p.name, s.date,
		        si.quantity * p.price * (1 - s.discount / 100),
		        'Customer'
		 FROM sale s
		 JOIN saleitem si ON si.sid = s.id
		 JOIN product p ON si.pid = p.id
		 WHERE p.vid = ?
		 ORDER BY s.date DESC
		 LIMIT 10`, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.RecentSale, 0)
	for rows.Next() {
		var rs model.RecentSale
		if err := rows.Scan(&rs.ID, &rs.Product, &rs.Date, &rs.Amount, &rs.Buyer); err != nil {
			return nil, err
		}
		out = append(out, rs)
	}
	return out, rows.Err()
}

// TopProducts returns the vendor's five best products by revenue.  Products
// that never sold are included with zero revenue.
func (r *DashboardRepo) TopProducts(ctx context.Context, vendorID uint64) ([]model.TopProduct, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT p.name, COUNT(si.sid), COALESCE(SUM(si.quantity * p.price), 0) AS revenue
		 FROM product p
		 LEFT JOIN saleitem si ON si.pid = p.id
		 WHERE p.vid = ?
		 GROUP BY p.id, p.name
		 ORDER BY revenue DESC
		 LIMIT 5`, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.TopProduct, 0)
	for rows.Next() {
		var tp model.TopProduct
		if err := rows.Scan(&tp.Name, &tp.Sales, &tp.Revenue); err != nil {
			return nil, err
		}
		out = append(out, tp)
	}
	return out, rows.Err()
}

// MonthlySales returns revenue per month for the current and previous five
// months, oldest first.  Months without sales are absent.
func (r *DashboardRepo) MonthlySales(ctx context.Context, vendorID uint64) ([]model.MonthlySales, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DATE_FORMAT(s.date, '%b') AS month, COALESCE(SUM(si.quantity * p.price), 0)
		 FROM sale s
		 JOIN saleitem si ON si.sid = s.id
		 JOIN product p ON si.pid = p.id
		 WHERE p.vid = ?
		   AND s.date >= DATE_SUB(CURDATE(), INTERVAL 5 MONTH)
		 GROUP BY DATE_FORMAT(s.date, '%Y-%m'), DATE_FORMAT(s.date, '%b')
		 ORDER BY DATE_FORMAT(s.date, '%Y-%m')`, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.MonthlySales, 0)
	for rows.Next() {
		var ms model.MonthlySales
		if err := rows.Scan(&ms.Month, &ms.Sales); err != nil {
			return nil, err
		}
		out = append(out, ms)
	}
	return out, rows.Err()
}
