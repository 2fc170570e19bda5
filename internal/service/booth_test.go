package service

import (
	"bytes"
	"context"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/booth-market/internal/config"
	"github.com/iliyamo/booth-market/internal/model"
	"github.com/iliyamo/booth-market/internal/queue"
)

func newBooths(policy string, pub queue.Publisher) (*BoothService, *memReservations) {
	res := &memReservations{}
	booths := &memBooths{booths: []model.Booth{{ID: 1, Name: "A1"}, {ID: 2, Name: "A2"}}}
	return NewBoothService(booths, res, pub, policy), res
}

func TestParseReservationDate(t *testing.T) {
	want := time.Date(2025, 11, 7, 11, 0, 0, 0, time.UTC)
	for _, in := range []string{
		"2025-11-07T11:00:00Z",
		"2025-11-07T12:00:00+01:00",
		"2025-11-07 11:00:00",
		"2025-11-07 11:00",
		"2025-11-07T11:00",
	} {
		got, err := ParseReservationDate(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
		assert.Equal(t, time.UTC, got.Location(), in)
	}
	day, err := ParseReservationDate("2025-11-07")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 11, 7, 0, 0, 0, 0, time.UTC), day)

	_, err = ParseReservationDate("next tuesday")
	assert.Error(t, err)
}

func TestCreateReservation_OverlapAllowedByDefault(t *testing.T) {
	s, store := newBooths(config.ConflictAllow, nil)
	in := ReservationInput{VendorID: 1, BoothID: 2, Date: "2025-11-07 11:00:00", Duration: 60}

	id1, err := s.CreateReservation(context.Background(), in)
	require.NoError(t, err)
	id2, err := s.CreateReservation(context.Background(), in)
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)
	assert.Len(t, store.rows, 2)
}

func TestCreateReservation_RejectPolicy(t *testing.T) {
	s, store := newBooths(config.ConflictReject, nil)
	ctx := context.Background()

	_, err := s.CreateReservation(ctx, ReservationInput{VendorID: 1, BoothID: 2, Date: "2025-11-07 11:00:00", Duration: 60})
	require.NoError(t, err)

	_, err = s.CreateReservation(ctx, ReservationInput{VendorID: 3, BoothID: 2, Date: "2025-11-07 11:30:00", Duration: 60})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = s.CreateReservation(ctx, ReservationInput{VendorID: 3, BoothID: 2, Date: "2025-11-07 12:00:00", Duration: 60})
	assert.NoError(t, err, "back-to-back windows do not overlap")

	_, err = s.CreateReservation(ctx, ReservationInput{VendorID: 3, BoothID: 1, Date: "2025-11-07 11:00:00", Duration: 60})
	assert.NoError(t, err, "other booth")
	assert.Len(t, store.rows, 3)
}

func TestCreateReservation_Validation(t *testing.T) {
	s, _ := newBooths(config.ConflictAllow, nil)
	for _, in := range []ReservationInput{
		{BoothID: 2, Date: "2025-11-07", Duration: 60},
		{VendorID: 1, Date: "2025-11-07", Duration: 60},
		{VendorID: 1, BoothID: 2, Duration: 60},
		{VendorID: 1, BoothID: 2, Date: "2025-11-07"},
	} {
		_, err := s.CreateReservation(context.Background(), in)
		assert.ErrorIs(t, err, ErrValidation)
		assert.EqualError(t, err, "Missing required reservation fields")
	}
	_, err := s.CreateReservation(context.Background(), ReservationInput{VendorID: 1, BoothID: 2, Date: "soon", Duration: 5})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.CreateReservation(context.Background(), ReservationInput{VendorID: 1, BoothID: 2, Date: "2025-11-07", Duration: -5})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateReservation_PublishesEvent(t *testing.T) {
	pub := newChanPublisher()
	s, _ := newBooths(config.ConflictAllow, pub)

	id, err := s.CreateReservation(context.Background(), ReservationInput{VendorID: 1, BoothID: 2, Date: "2025-11-07T11:00:00Z", Duration: 90})
	require.NoError(t, err)

	select {
	case ev := <-pub.ch:
		assert.Equal(t, queue.ReservationCreated, ev.key)
		got := ev.event.(queue.ReservationCreatedEvent)
		assert.Equal(t, id, got.ReservationID)
		assert.Equal(t, "2025-11-07T12:30:00Z", got.EndsAt)
	case <-time.After(time.Second):
		t.Fatal("reservation.created not published")
	}
}

func TestListReservationsForDay_IgnoresTimeOfDay(t *testing.T) {
	s, _ := newBooths(config.ConflictAllow, nil)
	ctx := context.Background()
	for _, d := range []string{"2025-11-07 23:30:00", "2025-11-07 00:00:00", "2025-11-08 00:00:00"} {
		_, err := s.CreateReservation(ctx, ReservationInput{VendorID: 1, BoothID: 1, Date: d, Duration: 30})
		require.NoError(t, err)
	}

	list, err := s.ListReservationsForDay(ctx, "2025-11-07")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].Date.Before(list[1].Date))

	_, err = s.ListReservationsForDay(ctx, "")
	assert.EqualError(t, err, "Missing date parameter")
	_, err = s.ListReservationsForDay(ctx, "07/11/2025")
	assert.ErrorIs(t, err, ErrValidation)

	byBooth, err := s.ListReservationsForBooth(ctx, 1, "2025-11-08")
	require.NoError(t, err)
	assert.Len(t, byBooth, 1)
}

func TestReservationPass(t *testing.T) {
	s, _ := newBooths(config.ConflictAllow, nil)
	id, err := s.CreateReservation(context.Background(), ReservationInput{VendorID: 1, BoothID: 2, Date: "2025-11-07 11:00", Duration: 60})
	require.NoError(t, err)

	data, err := s.ReservationPass(context.Background(), id)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())

	_, err = s.ReservationPass(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPassContent(t *testing.T) {
	res := model.Reservation{ID: 3, VendorID: 1, BoothID: 2, Date: time.Date(2025, 11, 7, 11, 0, 0, 0, time.UTC), Duration: 30}
	assert.Equal(t, "reservation=3;vendor=1;booth=2;from=2025-11-07T11:00:00Z;to=2025-11-07T11:30:00Z", PassContent(res))
}
