package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if u := a.currentUser(); u != nil {
		return fmt.Sprintf("(%s)", u.Email)
	}
	return ""
}

// Root runs the command loop. It exits on EOF, "exit"/"quit", or when ctx
// is cancelled between commands.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to VoltMate (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		fmt.Fprintf(a.out, "vm %s> ", a.getStatus())
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		if err := a.dispatch(ctx, cmd, args); err != nil {
			if err == errExit {
				fmt.Fprintln(a.out, "Bye!")
				return
			}
			fmt.Fprintln(a.out, "Error:", err.Error())
		}
	}
}

var errExit = fmt.Errorf("exit")

func (a *App) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		a.help()
		return nil
	case "exit", "quit":
		return errExit
	case "login":
		return a.Login(ctx)
	}

	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please login first")
		return nil
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "whoami":
		return a.whoami()
	case "stations":
		return a.listStations(ctx)
	case "slots":
		return a.showFreeSlots(ctx)
	case "book":
		return a.book(ctx)
	case "bookings":
		return a.listBookings(ctx)
	case "cancel":
		return a.cancelBooking(ctx, args)
	case "vehicles":
		return a.listVehicles(ctx)
	case "addvehicle":
		return a.addVehicle(ctx)
	case "rmvehicle":
		return a.removeVehicle(ctx, args)
	case "plans":
		return a.listPlans(ctx)
	case "subscribe":
		return a.subscribe(ctx, args)
	case "charge":
		return a.charge(ctx, args)
	case "pay":
		return a.pay(ctx)
	default:
		fmt.Fprintln(a.out, "Unknown command:", cmd)
		return nil
	}
}

func (a *App) help() {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Available commands: whoami, stations, slots, book, bookings, cancel,")
		fmt.Fprintln(a.out, "  vehicles, addvehicle, rmvehicle, plans, subscribe,")
		fmt.Fprintln(a.out, "  charge start|stop|status|watch, pay, logout, exit")
	} else {
		fmt.Fprintln(a.out, "Available commands: login, exit")
	}
}
