package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/voltmate/voltmate/internal/client/models"
)

func (a *App) listVehicles(ctx context.Context) error {
	vehicles, err := a.vehicles.List(ctx)
	if err != nil {
		return err
	}
	if len(vehicles) == 0 {
		fmt.Fprintln(a.out, "No vehicles registered")
		return nil
	}
	for _, v := range vehicles {
		fmt.Fprintf(a.out, "%s  %s  %s %s (%s)\n", v.ID, v.Plate, v.Make, v.Model, v.ConnectorType)
	}
	return nil
}

func (a *App) addVehicle(ctx context.Context) error {
	plate, err := getSimpleText(a.reader, "Plate", os.Stdout)
	if err != nil {
		return err
	}
	make, err := getSimpleText(a.reader, "Make", os.Stdout)
	if err != nil {
		return err
	}
	model, err := getSimpleText(a.reader, "Model", os.Stdout)
	if err != nil {
		return err
	}
	connector, err := getSimpleText(a.reader, "Connector type (CCS/CHAdeMO/Type2)", os.Stdout)
	if err != nil {
		return err
	}

	v, err := a.vehicles.Add(ctx, &models.Vehicle{
		Plate:         plate,
		Make:          make,
		Model:         model,
		ConnectorType: connector,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Added vehicle", v.ID)
	return nil
}

func (a *App) removeVehicle(ctx context.Context, args []string) error {
	var id string
	if len(args) > 0 {
		id = args[0]
	} else {
		var err error
		id, err = getSimpleText(a.reader, "Vehicle id", os.Stdout)
		if err != nil {
			return err
		}
	}
	if err := a.vehicles.Remove(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Removed")
	return nil
}
