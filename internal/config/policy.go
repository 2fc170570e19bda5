package config

import "strings"

// Reservation conflict policies.
const (
    ConflictAllow  = "allow"
    ConflictReject = "reject"
)

// Delete policies for vendors and products.
const (
    DeleteOrphan   = "orphan"
    DeleteCascade  = "cascade"
    DeleteRestrict = "restrict"
)

// PolicyConfig collects the behavioural switches that decide how the API
// treats overlapping reservations and rows left behind by deletes.  The
// defaults keep the permissive behaviour clients already depend on.
type PolicyConfig struct {
    ReservationConflict string // allow | reject
    VendorDelete        string // orphan | cascade | restrict
    ProductDelete       string // orphan | restrict
}

// LoadPolicyConfig reads the policy switches.  Unknown values fall back to
// the permissive default rather than failing startup.
func LoadPolicyConfig() PolicyConfig {
    return PolicyConfig{
        ReservationConflict: oneOf(envStr("RESERVATION_CONFLICT_POLICY", ConflictAllow), ConflictAllow, ConflictAllow, ConflictReject),
        VendorDelete:        oneOf(envStr("VENDOR_DELETE_POLICY", DeleteOrphan), DeleteOrphan, DeleteOrphan, DeleteCascade, DeleteRestrict),
        ProductDelete:       oneOf(envStr("PRODUCT_DELETE_POLICY", DeleteOrphan), DeleteOrphan, DeleteOrphan, DeleteRestrict),
    }
}

// oneOf lower-cases v and returns it when it is one of allowed, def otherwise.
func oneOf(v, def string, allowed ...string) string {
    v = strings.ToLower(strings.TrimSpace(v))
    for _, a := range allowed {
        if v == a {
            return v
        }
    }
    return def
}
