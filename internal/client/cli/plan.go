package cli

import (
	"context"
	"fmt"
	"os"
)

func (a *App) listPlans(ctx context.Context) error {
	plans, err := a.plans.List(ctx)
	if err != nil {
		return err
	}
	for _, p := range plans {
		fmt.Fprintf(a.out, "%s  %-12s %6.2f/mo  %2.0f%% off  %.0f kWh included\n",
			p.ID, p.Name, p.MonthlyFee, p.DiscountPct, p.IncludedKWh)
	}
	return nil
}

func (a *App) subscribe(ctx context.Context, args []string) error {
	var id string
	if len(args) > 0 {
		id = args[0]
	} else {
		var err error
		id, err = getSimpleText(a.reader, "Plan id", os.Stdout)
		if err != nil {
			return err
		}
	}
	if err := a.plans.Subscribe(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Subscribed")
	return nil
}
