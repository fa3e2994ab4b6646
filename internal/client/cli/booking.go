package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/voltmate/voltmate/internal/client/api"
	"github.com/voltmate/voltmate/internal/common"
)

func (a *App) book(ctx context.Context) error {
	stationID, err := getSimpleText(a.reader, "Station id", os.Stdout)
	if err != nil {
		return err
	}
	connectorID, err := getSimpleText(a.reader, "Connector id", os.Stdout)
	if err != nil {
		return err
	}
	vehicleID, err := getSimpleText(a.reader, "Vehicle id", os.Stdout)
	if err != nil {
		return err
	}
	start, err := GetTime(a.reader, "From (2006-01-02 15:04)", os.Stdout)
	if err != nil {
		return err
	}
	end, err := GetTime(a.reader, "To (2006-01-02 15:04)", os.Stdout)
	if err != nil {
		return err
	}

	booking, err := a.bookings.Book(ctx, &api.BookingRequest{
		StationID:   stationID,
		ConnectorID: connectorID,
		VehicleID:   vehicleID,
		StartsAt:    start,
		EndsAt:      end,
	})
	switch {
	case errors.Is(err, common.ErrSlotConflict):
		fmt.Fprintln(a.out, "That slot is already taken; try 'slots' to see free windows")
		return nil
	case errors.Is(err, common.ErrOutsideHours):
		fmt.Fprintln(a.out, "The station is closed during that window")
		return nil
	case errors.Is(err, common.ErrInvalidSlot):
		fmt.Fprintln(a.out, "The end time must be after the start time")
		return nil
	case err != nil:
		return err
	}

	fmt.Fprintf(a.out, "Booked! id=%s %s – %s\n", booking.ID,
		booking.StartsAt.Format("2006-01-02 15:04"), booking.EndsAt.Format("15:04"))
	return nil
}

func (a *App) listBookings(ctx context.Context) error {
	stationID, err := getSimpleText(a.reader, "Station id", os.Stdout)
	if err != nil {
		return err
	}
	day, err := GetTime(a.reader, "Day (2006-01-02)", os.Stdout)
	if err != nil {
		return err
	}

	bookings, err := a.bookings.DayBookings(ctx, stationID, day)
	if err != nil {
		return err
	}
	if len(bookings) == 0 {
		fmt.Fprintln(a.out, "No bookings")
		return nil
	}
	for _, b := range bookings {
		fmt.Fprintf(a.out, "%s  %s  %s – %s  [%s]\n", b.ID, b.ConnectorID,
			b.StartsAt.Format("15:04"), b.EndsAt.Format("15:04"), b.Status)
	}
	return nil
}

func (a *App) cancelBooking(ctx context.Context, args []string) error {
	var id string
	if len(args) > 0 {
		id = args[0]
	} else {
		var err error
		id, err = getSimpleText(a.reader, "Booking id", os.Stdout)
		if err != nil {
			return err
		}
	}

	if err := a.bookings.Cancel(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			fmt.Fprintln(a.out, "No such booking")
			return nil
		}
		return err
	}
	fmt.Fprintln(a.out, "Cancelled")
	return nil
}
