package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/booth-market/internal/model"
	"github.com/iliyamo/booth-market/internal/queue"
	"github.com/iliyamo/booth-market/internal/repository"
)

// BoothService lists booths and books them for vendors.
type BoothService struct {
	booths         BoothStore
	reservations   ReservationStore
	events         queue.Publisher
	conflictPolicy string
	passes         PassGenerator
}

func NewBoothService(booths BoothStore, reservations ReservationStore, events queue.Publisher, conflictPolicy string) *BoothService {
	return &BoothService{
		booths:         booths,
		reservations:   reservations,
		events:         events,
		conflictPolicy: conflictPolicy,
		passes:         QRPassGenerator{Size: 256},
	}
}

// ReservationInput is the body of a reservation request.  Date accepts
// RFC 3339, "YYYY-MM-DD HH:MM[:SS]", "YYYY-MM-DDTHH:MM[:SS]" or a bare day;
// values without a zone are taken as UTC.  Duration is in minutes.
type ReservationInput struct {
	VendorID uint64 `json:"vid"`
	BoothID  uint64 `json:"bid"`
	Date     string `json:"date"`
	Duration int    `json:"duration"`
}

var reservationLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	repository.DayLayout,
}

// ParseReservationDate parses a reservation start in any accepted layout
// and returns it in UTC.
func ParseReservationDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range reservationLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognised date")
}

func (s *BoothService) ListBooths(ctx context.Context) ([]model.Booth, error) {
	list, err := s.booths.List(ctx)
	if err != nil {
		return nil, storage("Error fetching booths", err)
	}
	return list, nil
}

// GetBooth returns the booth with the given id as a zero-or-one slice.
func (s *BoothService) GetBooth(ctx context.Context, id uint64) ([]model.Booth, error) {
	list, err := s.booths.GetByID(ctx, id)
	if err != nil {
		return nil, storage("Error fetching booth", err)
	}
	return list, nil
}

func (s *BoothService) ListReservations(ctx context.Context) ([]model.Reservation, error) {
	list, err := s.reservations.List(ctx)
	if err != nil {
		return nil, storage("Error fetching reservations", err)
	}
	return list, nil
}

// validDay reports whether day is a YYYY-MM-DD calendar date.
func validDay(day string) bool {
	_, err := time.Parse(repository.DayLayout, day)
	return err == nil
}

// ListReservationsForBooth returns the booth's reservations, limited to
// those starting on day when day is not empty.
func (s *BoothService) ListReservationsForBooth(ctx context.Context, boothID uint64, day string) ([]model.Reservation, error) {
	if day != "" && !validDay(day) {
		return nil, invalid("day must be YYYY-MM-DD")
	}
	list, err := s.reservations.ListByBooth(ctx, boothID, day)
	if err != nil {
		return nil, storage("Error fetching reservations", err)
	}
	return list, nil
}

// ListReservationsForDay returns every reservation starting on day with
// the holding vendor's name, ordered by booth then start.
func (s *BoothService) ListReservationsForDay(ctx context.Context, day string) ([]model.DayReservation, error) {
	if day == "" {
		return nil, invalid("Missing date parameter")
	}
	if !validDay(day) {
		return nil, invalid("date must be YYYY-MM-DD")
	}
	list, err := s.reservations.ListByDay(ctx, day)
	if err != nil {
		return nil, storage("Error fetching reservations", err)
	}
	return list, nil
}

// LatestBoothForVendor returns the booth of the vendor's most recent
// reservation as a zero-or-one slice.
func (s *BoothService) LatestBoothForVendor(ctx context.Context, vendorID uint64) ([]model.VendorBooth, error) {
	list, err := s.booths.LatestForVendor(ctx, vendorID)
	if err != nil {
		return nil, storage("Error fetching booth", err)
	}
	return list, nil
}

// CreateReservation books a booth and returns the new reservation id.
// Overlapping reservations are accepted or rejected according to the
// configured conflict policy.
func (s *BoothService) CreateReservation(ctx context.Context, in ReservationInput) (uint64, error) {
	if in.VendorID == 0 || in.BoothID == 0 || in.Date == "" || in.Duration == 0 {
		return 0, invalid("Missing required reservation fields")
	}
	if in.Duration < 0 {
		return 0, invalid("duration must be positive")
	}
	start, err := ParseReservationDate(in.Date)
	if err != nil {
		return 0, invalid("date is not a valid date")
	}
	res := &model.Reservation{VendorID: in.VendorID, BoothID: in.BoothID, Date: start, Duration: in.Duration}
	if err := s.reservations.Create(ctx, res, s.conflictPolicy); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return 0, conflict("Booth is already reserved for that time", err)
		}
		return 0, storage("Error creating reservation", err)
	}
	publish(ctx, s.events, queue.ReservationCreated,
		queue.NewReservationCreated(res.ID, res.VendorID, res.BoothID, res.Date, res.Duration))
	return res.ID, nil
}

// ReservationPass returns a PNG QR code identifying the reservation for
// check-in at the booth.
func (s *BoothService) ReservationPass(ctx context.Context, id uint64) ([]byte, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("Reservation not found")
	}
	if err != nil {
		return nil, storage("Error fetching reservation", err)
	}
	png, err := s.passes.Generate(*res)
	if err != nil {
		return nil, storage("Error generating pass", err)
	}
	return png, nil
}
