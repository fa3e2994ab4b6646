package cli

import (
	"context"
	"fmt"
	"os"
)

func (a *App) listStations(ctx context.Context) error {
	lat, err := GetFloat(a.reader, "Latitude", os.Stdout)
	if err != nil {
		return err
	}
	lng, err := GetFloat(a.reader, "Longitude", os.Stdout)
	if err != nil {
		return err
	}
	radius, err := GetFloat(a.reader, "Radius (km)", os.Stdout)
	if err != nil {
		return err
	}

	stations, err := a.stations.Nearby(ctx, lat, lng, radius)
	if err != nil {
		return err
	}
	if len(stations) == 0 {
		fmt.Fprintln(a.out, "No stations found")
		return nil
	}
	for _, st := range stations {
		fmt.Fprintf(a.out, "%s  %s (%s)  open %s-%s\n", st.ID, st.Name, st.Address, st.OpensAt, st.ClosesAt)
		for _, c := range st.Connectors {
			status := "free"
			if !c.Available {
				status = "busy"
			}
			fmt.Fprintf(a.out, "    %s  %-8s %5.0f kW  %.2f/kWh  %s\n", c.ID, c.Type, c.MaxPowerKW, c.PricePerKWh, status)
		}
	}
	return nil
}

func (a *App) showFreeSlots(ctx context.Context) error {
	stationID, err := getSimpleText(a.reader, "Station id", os.Stdout)
	if err != nil {
		return err
	}
	connectorID, err := getSimpleText(a.reader, "Connector id", os.Stdout)
	if err != nil {
		return err
	}
	day, err := GetTime(a.reader, "Day (2006-01-02)", os.Stdout)
	if err != nil {
		return err
	}

	station, err := a.stations.Get(ctx, stationID)
	if err != nil {
		return err
	}
	bookings, err := a.bookings.DayBookings(ctx, stationID, day)
	if err != nil {
		return err
	}
	slots, err := a.bookings.FreeSlots(station, connectorID, day, bookings)
	if err != nil {
		return err
	}
	if len(slots) == 0 {
		fmt.Fprintln(a.out, "No free slots")
		return nil
	}
	for _, s := range slots {
		fmt.Fprintf(a.out, "  %s – %s\n", s.Start.Format("15:04"), s.End.Format("15:04"))
	}
	return nil
}
