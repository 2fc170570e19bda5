package model

import "time"

// Sale is a completed checkout.  Sales are written by the point-of-sale
// system; this API only reads them.
type Sale struct {
    ID       uint64    `json:"id"`
    Date     time.Time `json:"date"`
    Discount float64   `json:"discount"` // percent
}

// SaleItem links a sale to a product with a quantity.
type SaleItem struct {
    SaleID    uint64 `json:"sid"`
    ProductID uint64 `json:"pid"`
    Quantity  int    `json:"quantity"`
}

// SaleProduct is a sale item joined with the product it refers to.
type SaleProduct struct {
    SaleItem
    Product
}
