package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/voltmate/voltmate/internal/client/models"
)

func (a *App) pay(ctx context.Context) error {
	kind, err := getSimpleText(a.reader, "Pay for (booking/session)", os.Stdout)
	if err != nil {
		return err
	}
	id, err := getSimpleText(a.reader, "Id", os.Stdout)
	if err != nil {
		return err
	}
	amount, err := GetFloat(a.reader, "Amount", os.Stdout)
	if err != nil {
		return err
	}
	currency, err := getSimpleText(a.reader, "Currency (e.g. EUR)", os.Stdout)
	if err != nil {
		return err
	}

	var payment *models.Payment
	switch kind {
	case "booking":
		payment, err = a.payments.PayBooking(ctx, id, amount, currency)
	case "session":
		payment, err = a.payments.PaySession(ctx, id, amount, currency)
	default:
		fmt.Fprintln(a.out, "Expected 'booking' or 'session'")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Payment %s: %s\n", payment.ID, payment.Status)
	if payment.CheckoutURL != "" {
		fmt.Fprintln(a.out, "Complete checkout at:", payment.CheckoutURL)
	}
	return nil
}
