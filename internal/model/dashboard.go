package model

import "time"

// DashboardStats summarises a vendor's sales.  Rating, views and conversion
// are not tracked yet and are reported with fixed placeholder values the
// dashboard expects.
type DashboardStats struct {
    TotalRevenue   float64 `json:"totalRevenue"`
    TotalSales     int64   `json:"totalSales"`
    ActiveProducts int64   `json:"activeProducts"`
    AverageRating  float64 `json:"averageRating"`
    ViewsThisMonth int64   `json:"viewsThisMonth"`
    ConversionRate float64 `json:"conversionRate"`
}

// RecentSale is one line of the recent sales table.
type RecentSale struct {
    ID      uint64    `json:"id"`
    Product string    `json:"Product"`
    Date    time.Time `json:"date"`
    Amount  float64   `json:"amount"`
    Buyer   string    `json:"buyer"`
}

// TopProduct ranks a product by revenue.
type TopProduct struct {
    Name    string  `json:"name"`
    Sales   int64   `json:"sales"`
    Revenue float64 `json:"revenue"`
}

// MonthlySales is the revenue for one calendar month.
type MonthlySales struct {
    Month string  `json:"month"`
    Sales float64 `json:"sales"`
}
