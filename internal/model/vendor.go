package model

import "time"

// Vendor represents a marketplace seller.  The struct maps one row of the
// `vendor` table and is returned as-is by the API, so json tags follow the
// column names the frontend already reads.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name, required.
//  Phone       – contact phone ('' when not given).
//  Email       – contact email, also used for password recovery.
//  Description – free text profile ('' when not given).
//  Owner       – name of the person running the stall.
//  Logo        – optional logo URL (NULL when not given).
type Vendor struct {
    ID          uint64  `json:"id"`          // vendor.id
    Name        string  `json:"name"`        // vendor.name
    Phone       string  `json:"phone"`       // vendor.phone
    Email       string  `json:"email"`       // vendor.email
    Description string  `json:"description"` // vendor.description
    Owner       string  `json:"owner"`       // vendor.owner
    Logo        *string `json:"logo"`        // vendor.logo (nullable)
}

// VendorAuth is a credential record for a vendor.  Only the bcrypt hash of
// the password is stored.  The schema allows several rows per vendor but
// the service keeps at most one.
type VendorAuth struct {
    ID           uint64    // vendor_auth.id
    VendorID     uint64    // vendor_auth.vendor_id
    Email        string    // vendor_auth.email (unique)
    PasswordHash string    // vendor_auth.password
    CreatedAt    time.Time // vendor_auth.created_at
}
