package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vbonduro/trailplan/internal/fare"
	"github.com/vbonduro/trailplan/internal/service"
)

func newPlansCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "plans",
		Short: "List upcoming and past plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.tripService()
			if err != nil {
				return err
			}
			list := svc.ListPlans()
			w := cmd.OutOrStdout()

			headingColor.Fprintln(w, "これからの計画")
			printPlans(w, list.Upcoming)
			if len(list.Past) > 0 {
				headingColor.Fprintln(w, "\n過去の計画")
				printPlans(w, list.Past)
			}
			return nil
		},
	}
}

func printPlans(w io.Writer, plans []service.PlanSummary) {
	if len(plans) == 0 {
		fmt.Fprintln(w, "  (なし)")
		return
	}
	for _, p := range plans {
		mountain := "-"
		if p.Mountain != nil {
			mountain = p.Mountain.Name
		}
		fmt.Fprintf(w, "  %-10s  %s  [%s]  %s\n", p.Date, p.Title, mountain, p.ID)
	}
}

func newCostCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cost <plan-id>",
		Short: "Show the transport legs and fares of a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.tripService()
			if err != nil {
				return err
			}
			detail, err := svc.Plan(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			headingColor.Fprintln(w, detail.Title)
			for _, leg := range detail.Access {
				cost := leg.Cost
				if cost == "" {
					cost = "-"
				}
				fmt.Fprintf(w, "  %s  %s (%s)  %s\n", leg.Time, leg.Activity, leg.Transport, cost)
			}
			fmt.Fprintf(w, "片道 %s / 往復 %s\n", fare.Format(detail.OneWay), fare.Format(detail.RoundTrip))
			return nil
		},
	}
}
