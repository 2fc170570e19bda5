package model

// Product is an item offered by a vendor.
type Product struct {
    ID          uint64  `json:"id"`
    Name        string  `json:"name"`
    Description string  `json:"description"`
    Count       int     `json:"count"`
    Price       float64 `json:"price"`
    VendorID    uint64  `json:"vid"`
}

// ProductPage is one page of a product search together with the number of
// matches across all pages.
type ProductPage struct {
    Items []Product `json:"products"`
    Total int64     `json:"total"`
}
