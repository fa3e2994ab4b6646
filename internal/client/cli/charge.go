package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/voltmate/voltmate/internal/client/models"
	"github.com/voltmate/voltmate/internal/common"
)

const watchInterval = 5 * time.Second

func (a *App) charge(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: charge start|stop|status|watch [id]")
		return nil
	}
	switch args[0] {
	case "start":
		return a.chargeStart(ctx)
	case "stop":
		return a.chargeStop(ctx, args[1:])
	case "status":
		return a.chargeStatus(ctx, args[1:])
	case "watch":
		return a.chargeWatch(ctx, args[1:])
	default:
		fmt.Fprintln(a.out, "Usage: charge start|stop|status|watch [id]")
		return nil
	}
}

func (a *App) chargeStart(ctx context.Context) error {
	connectorID, err := getSimpleText(a.reader, "Connector id", os.Stdout)
	if err != nil {
		return err
	}
	vehicleID, err := getSimpleText(a.reader, "Vehicle id", os.Stdout)
	if err != nil {
		return err
	}

	sess, err := a.charging.Start(ctx, connectorID, vehicleID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Charging started, session %s\n", sess.ID)
	return nil
}

func (a *App) chargeStop(ctx context.Context, args []string) error {
	id, err := a.sessionID(args)
	if err != nil {
		return err
	}
	sess, err := a.charging.Stop(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNoActiveCharge) {
			fmt.Fprintln(a.out, "No active charging session with that id")
			return nil
		}
		return err
	}
	a.printSession(sess)
	return nil
}

func (a *App) chargeStatus(ctx context.Context, args []string) error {
	id, err := a.sessionID(args)
	if err != nil {
		return err
	}
	sess, err := a.charging.Status(ctx, id)
	if err != nil {
		return err
	}
	a.printSession(sess)
	return nil
}

// chargeWatch follows a session until it finishes or the user interrupts.
func (a *App) chargeWatch(ctx context.Context, args []string) error {
	id, err := a.sessionID(args)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Watching (Ctrl+C to stop)...")
	last, err := a.charging.Watch(ctx, id, watchInterval, func(s *models.ChargingSession) {
		fmt.Fprintf(a.out, "  %.2f kWh  %.2f  [%s]\n", s.EnergyKWh, s.Cost, s.Status)
	})
	if err != nil && ctx.Err() == nil {
		return err
	}
	if last != nil && last.Status != models.ChargingStatusActive {
		fmt.Fprintln(a.out, "Session ended")
	}
	return nil
}

func (a *App) sessionID(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return getSimpleText(a.reader, "Session id", os.Stdout)
}

func (a *App) printSession(s *models.ChargingSession) {
	fmt.Fprintf(a.out, "%s  %.2f kWh  cost %.2f  [%s]\n", s.ID, s.EnergyKWh, s.Cost, s.Status)
}
