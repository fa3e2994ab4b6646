package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltmate/voltmate/internal/client/models"
	"github.com/voltmate/voltmate/internal/client/services"
	"github.com/voltmate/voltmate/internal/client/session"
)

// ------------ fakes ------------

type fakeSession struct {
	state session.State
	snap  session.Snapshot

	loginEmail    string
	loginPassword string
	loginResult   session.Result
	logoutCalled  bool
}

func (f *fakeSession) Login(_ context.Context, email string, password []byte) session.Result {
	f.loginEmail = email
	f.loginPassword = string(password)
	return f.loginResult
}

func (f *fakeSession) Logout(context.Context) error {
	f.logoutCalled = true
	f.state = session.StateUnauthenticated
	return nil
}

func (f *fakeSession) Snapshot() session.Snapshot { return f.snap }
func (f *fakeSession) State() session.State       { return f.state }

type fakeBookings struct {
	services.BookingService

	cancelledID string
}

func (f *fakeBookings) Cancel(_ context.Context, id string) error {
	f.cancelledID = id
	return nil
}

type fakeVehicles struct {
	services.VehicleService

	listOut []models.Vehicle
}

func (f *fakeVehicles) List(context.Context) ([]models.Vehicle, error) {
	return f.listOut, nil
}

// ------------ helpers ------------

func stubInput(t *testing.T, lines []string, password string) {
	t.Helper()
	oldText, oldPass := getSimpleText, getPassword
	t.Cleanup(func() { getSimpleText, getPassword = oldText, oldPass })

	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(lines) {
			t.Fatal("unexpected extra prompt")
		}
		line := lines[i]
		i++
		return line, nil
	}
	getPassword = func(io.Writer) ([]byte, error) {
		return []byte(password), nil
	}
}

func newTestApp(sess sessionController) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{
		session: sess,
		reader:  bufio.NewReader(strings.NewReader("")),
		out:     &out,
	}, &out
}

// ------------ tests ------------

func TestLoginCommand(t *testing.T) {
	sess := &fakeSession{loginResult: session.Result{Success: true}}
	app, out := newTestApp(sess)
	stubInput(t, []string{"a@x.com"}, "hunter2")

	require.NoError(t, app.Login(context.Background()))

	assert.Equal(t, "a@x.com", sess.loginEmail)
	assert.Equal(t, "hunter2", sess.loginPassword)
	assert.Contains(t, out.String(), "Welcome back!")
}

func TestLoginCommand_FailureShowsMessage(t *testing.T) {
	sess := &fakeSession{loginResult: session.Result{Success: false, Message: "wrong password"}}
	app, out := newTestApp(sess)
	stubInput(t, []string{"a@x.com"}, "nope")

	require.NoError(t, app.Login(context.Background()))
	assert.Contains(t, out.String(), "wrong password")
}

func TestDispatch_RequiresLogin(t *testing.T) {
	app, out := newTestApp(&fakeSession{state: session.StateUnauthenticated})

	require.NoError(t, app.dispatch(context.Background(), "stations", nil))
	assert.Contains(t, out.String(), "Please login first")
}

func TestDispatch_ExitSignal(t *testing.T) {
	app, _ := newTestApp(&fakeSession{})

	err := app.dispatch(context.Background(), "exit", nil)
	assert.Equal(t, errExit, err)
}

func TestDispatch_UnknownCommand(t *testing.T) {
	app, out := newTestApp(&fakeSession{state: session.StateAuthenticated})

	require.NoError(t, app.dispatch(context.Background(), "frobnicate", nil))
	assert.Contains(t, out.String(), "Unknown command")
}

func TestLogoutCommand(t *testing.T) {
	sess := &fakeSession{state: session.StateAuthenticated}
	app, out := newTestApp(sess)

	require.NoError(t, app.dispatch(context.Background(), "logout", nil))
	assert.True(t, sess.logoutCalled)
	assert.Contains(t, out.String(), "Logged out")
}

func TestWhoami(t *testing.T) {
	sess := &fakeSession{
		state: session.StateAuthenticated,
		snap: session.Snapshot{
			State:     session.StateAuthenticated,
			User:      &models.User{Name: "Ada", Email: "ada@x.com"},
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}
	app, out := newTestApp(sess)

	require.NoError(t, app.dispatch(context.Background(), "whoami", nil))
	assert.Contains(t, out.String(), "Ada <ada@x.com>")
	assert.Contains(t, out.String(), "session valid until")
}

func TestCancelBooking_TakesIDFromArgs(t *testing.T) {
	fb := &fakeBookings{}
	app, out := newTestApp(&fakeSession{state: session.StateAuthenticated})
	app.bookings = fb

	require.NoError(t, app.dispatch(context.Background(), "cancel", []string{"b42"}))
	assert.Equal(t, "b42", fb.cancelledID)
	assert.Contains(t, out.String(), "Cancelled")
}

func TestListVehicles(t *testing.T) {
	app, out := newTestApp(&fakeSession{state: session.StateAuthenticated})
	app.vehicles = &fakeVehicles{listOut: []models.Vehicle{
		{ID: "v1", Plate: "AB-123-C", Make: "Kia", Model: "EV6", ConnectorType: "CCS"},
	}}

	require.NoError(t, app.dispatch(context.Background(), "vehicles", nil))
	assert.Contains(t, out.String(), "AB-123-C")
	assert.Contains(t, out.String(), "Kia EV6")
}

// Compile-time check that the real manager still fits the CLI's seam.
var _ sessionController = (*session.Manager)(nil)
