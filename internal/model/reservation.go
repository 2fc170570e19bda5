package model

import "time"

// Reservation is a vendor's claim on a booth for a time window starting at
// Date and lasting Duration minutes.
//
// Fields:
//  ID       – primary key identifier.
//  VendorID – vendor holding the booth.
//  BoothID  – booth being reserved.
//  Date     – start of the window (UTC).
//  Duration – length of the window in minutes.
type Reservation struct {
    ID       uint64    `json:"id"`       // reservation.id
    VendorID uint64    `json:"vid"`      // reservation.vid
    BoothID  uint64    `json:"bid"`      // reservation.bid
    Date     time.Time `json:"date"`     // reservation.date
    Duration int       `json:"duration"` // reservation.duration
}

// End returns the instant the reservation window closes.
func (r Reservation) End() time.Time {
    return r.Date.Add(time.Duration(r.Duration) * time.Minute)
}

// Overlaps reports whether r and o claim the same booth for intersecting
// half-open windows [Date, End).
func (r Reservation) Overlaps(o Reservation) bool {
    return r.BoothID == o.BoothID && r.Date.Before(o.End()) && o.Date.Before(r.End())
}

// DayReservation is a reservation with the name of the vendor holding it,
// as listed on the daily booth board.
type DayReservation struct {
    Reservation
    VendorName string `json:"vendor_name"`
}
