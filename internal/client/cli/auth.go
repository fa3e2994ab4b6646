package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/voltmate/voltmate/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates through the session
// manager. The password byte slice is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res := a.session.Login(ctx, email, password)
	if !res.Success {
		fmt.Fprintln(a.out, "Login failed:", res.Message)
		return nil
	}

	fmt.Fprintln(a.out, "Welcome back!")
	return nil
}

// Logout ends the session, clearing stored tokens.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) whoami() error {
	snap := a.session.Snapshot()
	if snap.User == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s>\n", snap.User.Name, snap.User.Email)
	fmt.Fprintf(a.out, "session valid until %s\n", snap.ExpiresAt.Local().Format("2006-01-02 15:04:05"))
	return nil
}
