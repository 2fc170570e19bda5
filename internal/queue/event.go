// Package queue defines message payloads exchanged over the message broker
// and the publishers and consumers that move them.
package queue

import (
    "time"

    "github.com/google/uuid"
)

// Routing keys.  With RabbitMQ each key is also the name of a durable
// queue; with Kafka it is the message key on the shared topic.
const (
    ReservationCreated = "reservation.created"
    VendorRegistered   = "vendor.registered"
)

// ReservationCreatedEvent is published after a reservation is committed.
// It carries enough information for downstream consumers to log or notify
// without querying the primary database.
type ReservationCreatedEvent struct {
    EventID       string `json:"event_id"`
    ReservationID uint64 `json:"reservation_id"`
    VendorID      uint64 `json:"vendor_id"`
    BoothID       uint64 `json:"booth_id"`
    StartsAt      string `json:"starts_at"`
    EndsAt        string `json:"ends_at"`
    Duration      int    `json:"duration_minutes"`
    CreatedAt     string `json:"created_at"`
}

// NewReservationCreated builds the event for a reservation window starting
// at start and lasting minutes.
func NewReservationCreated(id, vendorID, boothID uint64, start time.Time, minutes int) ReservationCreatedEvent {
    return ReservationCreatedEvent{
        EventID:       uuid.NewString(),
        ReservationID: id,
        VendorID:      vendorID,
        BoothID:       boothID,
        StartsAt:      start.UTC().Format(time.RFC3339),
        EndsAt:        start.Add(time.Duration(minutes) * time.Minute).UTC().Format(time.RFC3339),
        Duration:      minutes,
        CreatedAt:     time.Now().UTC().Format(time.RFC3339),
    }
}

// VendorRegisteredEvent is published after a vendor and its credentials
// are committed.
type VendorRegisteredEvent struct {
    EventID      string `json:"event_id"`
    VendorID     uint64 `json:"vendor_id"`
    Name         string `json:"name"`
    Email        string `json:"email"`
    RegisteredAt string `json:"registered_at"`
}

// NewVendorRegistered builds the event for a freshly registered vendor.
func NewVendorRegistered(id uint64, name, email string) VendorRegisteredEvent {
    return VendorRegisteredEvent{
        EventID:      uuid.NewString(),
        VendorID:     id,
        Name:         name,
        Email:        email,
        RegisteredAt: time.Now().UTC().Format(time.RFC3339),
    }
}
