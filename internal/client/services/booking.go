// Package services contains application services for the VoltMate client:
// thin typed wrappers over the API client plus the client-side booking slot
// logic that validates a requested window before it ever hits the network.
package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/voltmate/voltmate/internal/client/api"
	"github.com/voltmate/voltmate/internal/client/models"
	"github.com/voltmate/voltmate/internal/common"
)

// Slot is a free half-open window [Start, End) on a connector.
type Slot struct {
	Start time.Time
	End   time.Time
}

// BookingService reserves and releases connector time windows.
//
// Contract:
//   - DayBookings: fetch a station's bookings for one calendar day.
//   - FreeSlots: compute the free windows on a connector for a day, given
//     the station's opening hours and the day's existing bookings.
//   - Book: validate the requested window (well-formed, inside opening
//     hours, no overlap with an existing confirmed booking on the same
//     connector) and create the booking.
//   - Cancel: cancel a booking by id.
//
// All methods must honor context cancellation/timeouts.
type BookingService interface {
	DayBookings(ctx context.Context, stationID string, day time.Time) ([]models.Booking, error)
	FreeSlots(station *models.Station, connectorID string, day time.Time, bookings []models.Booking) ([]Slot, error)
	Book(ctx context.Context, req *api.BookingRequest) (*models.Booking, error)
	Cancel(ctx context.Context, id string) error
}

type bookingService struct {
	api api.Client
}

// NewBookingService constructs a BookingService bound to the given API client.
func NewBookingService(client api.Client) BookingService {
	return &bookingService{api: client}
}

func (s *bookingService) DayBookings(ctx context.Context, stationID string, day time.Time) ([]models.Booking, error) {
	bookings, err := s.api.ListBookings(ctx, stationID, day)
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}
	return bookings, nil
}

// Book rejects malformed or conflicting requests locally, then forwards the
// request to the backend, which performs the authoritative check again.
func (s *bookingService) Book(ctx context.Context, req *api.BookingRequest) (*models.Booking, error) {
	if !req.StartsAt.Before(req.EndsAt) {
		return nil, common.ErrInvalidSlot
	}

	station, err := s.api.GetStation(ctx, req.StationID)
	if err != nil {
		return nil, fmt.Errorf("loading station: %w", err)
	}
	open, close, err := openingHours(station, req.StartsAt)
	if err != nil {
		return nil, err
	}
	if req.StartsAt.Before(open) || req.EndsAt.After(close) {
		return nil, common.ErrOutsideHours
	}

	existing, err := s.api.ListBookings(ctx, req.StationID, req.StartsAt)
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}
	for _, b := range existing {
		if b.ConnectorID != req.ConnectorID || b.Status != models.BookingStatusConfirmed {
			continue
		}
		if overlaps(req.StartsAt, req.EndsAt, b.StartsAt, b.EndsAt) {
			return nil, common.ErrSlotConflict
		}
	}

	booking, err := s.api.CreateBooking(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("creating booking: %w", err)
	}
	return booking, nil
}

func (s *bookingService) Cancel(ctx context.Context, id string) error {
	if err := s.api.CancelBooking(ctx, id); err != nil {
		return fmt.Errorf("cancelling booking: %w", err)
	}
	return nil
}

// FreeSlots subtracts the day's confirmed bookings on the connector from the
// station's opening window. Returned slots are sorted and non-overlapping.
func (s *bookingService) FreeSlots(station *models.Station, connectorID string, day time.Time, bookings []models.Booking) ([]Slot, error) {
	open, close, err := openingHours(station, day)
	if err != nil {
		return nil, err
	}

	var taken []models.Booking
	for _, b := range bookings {
		if b.ConnectorID == connectorID && b.Status == models.BookingStatusConfirmed {
			taken = append(taken, b)
		}
	}
	sort.Slice(taken, func(i, j int) bool { return taken[i].StartsAt.Before(taken[j].StartsAt) })

	var free []Slot
	cursor := open
	for _, b := range taken {
		start, end := b.StartsAt, b.EndsAt
		if !end.After(open) || !start.Before(close) {
			continue
		}
		if start.Before(cursor) {
			start = cursor
		}
		if cursor.Before(start) {
			free = append(free, Slot{Start: cursor, End: start})
		}
		if end.After(cursor) {
			cursor = end
		}
	}
	if cursor.Before(close) {
		free = append(free, Slot{Start: cursor, End: close})
	}
	return free, nil
}

// overlaps reports whether two half-open windows [aStart,aEnd) and
// [bStart,bEnd) intersect. Touching endpoints do not count.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// openingHours resolves the station's "HH:MM" opening window for the day
// containing t, in t's location. "00:00"–"00:00" means open around the clock.
func openingHours(station *models.Station, t time.Time) (time.Time, time.Time, error) {
	openH, openM, err := parseClock(station.OpensAt)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("station %s: bad opening time: %w", station.ID, err)
	}
	closeH, closeM, err := parseClock(station.ClosesAt)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("station %s: bad closing time: %w", station.ID, err)
	}

	y, m, d := t.Date()
	open := time.Date(y, m, d, openH, openM, 0, 0, t.Location())
	close := time.Date(y, m, d, closeH, closeM, 0, 0, t.Location())
	if !close.After(open) {
		// Midnight close (or 24h when open is midnight too) rolls to next day.
		close = close.AddDate(0, 0, 1)
	}
	return open, close, nil
}

func parseClock(s string) (int, int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, 0, fmt.Errorf("parsing %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("clock value %q out of range", s)
	}
	return h, m, nil
}
