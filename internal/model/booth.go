package model

import "time"

// Booth is a reservable slot at an event.  Booths are seeded by the
// organiser and never modified through the API.
type Booth struct {
    ID       uint64 `json:"id"`
    Name     string `json:"name"`
    Location string `json:"location"`
    Size     string `json:"size"`
}

// VendorBooth is a booth joined with the reservation that assigned it to a
// vendor.
type VendorBooth struct {
    Booth
    ReservationDate time.Time `json:"reservationDate"`
    Duration        int       `json:"duration"`
}
