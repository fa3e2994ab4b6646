// Package cli is the interactive VoltMate terminal client: a small REPL over
// the session manager and the application services.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/voltmate/voltmate/internal/client/api"
	"github.com/voltmate/voltmate/internal/client/config"
	"github.com/voltmate/voltmate/internal/client/models"
	"github.com/voltmate/voltmate/internal/client/services"
	"github.com/voltmate/voltmate/internal/client/session"
)

// sessionController is the slice of the session manager the CLI needs.
// *session.Manager satisfies it; tests provide a stub.
type sessionController interface {
	Login(ctx context.Context, email string, password []byte) session.Result
	Logout(ctx context.Context) error
	Snapshot() session.Snapshot
	State() session.State
}

type App struct {
	config   *config.Config
	session  sessionController
	stations services.StationService
	bookings services.BookingService
	vehicles services.VehicleService
	plans    services.PlanService
	charging services.ChargingService
	payments services.PaymentService

	reader *bufio.Reader
	out    io.Writer
}

// NewApp wires the command surface over an API client and a session manager.
func NewApp(c *config.Config, sess *session.Manager, client api.Client) *App {
	return &App{
		config:   c,
		session:  sess,
		stations: services.NewStationService(client),
		bookings: services.NewBookingService(client),
		vehicles: services.NewVehicleService(client),
		plans:    services.NewPlanService(client),
		charging: services.NewChargingService(client),
		payments: services.NewPaymentService(client),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}
}

// Run enters the REPL and blocks until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.State() == session.StateAuthenticated
}

func (a *App) currentUser() *models.User {
	return a.session.Snapshot().User
}
