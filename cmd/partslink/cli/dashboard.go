package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDashboardCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the aggregated dashboard summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.session(); err != nil {
				return fail(cmd, err)
			}
			summary, err := app.Dashboard.Summary(cmd.Context())
			if err != nil {
				return fail(cmd, err)
			}

			out := cmd.OutOrStdout()
			if summary.Orders != nil {
				fmt.Fprintf(out, "Orders: %d total, %d today\n",
					summary.Orders.TotalOrders, summary.Orders.TodayOrders)
				for status, count := range summary.Orders.ByStatus {
					fmt.Fprintf(out, "  %-12s %d\n", status, count)
				}
			}
			if len(summary.LowStock) > 0 {
				fmt.Fprintf(out, "Low stock (%d):\n", len(summary.LowStock))
				for _, alert := range summary.LowStock {
					fmt.Fprintf(out, "  %s @ %s: %.0f on hand (rack %s)\n",
						alert.PartNumber, alert.BranchCode, alert.OnHand, alert.RackLocation)
				}
			}
			fmt.Fprintf(out, "Active retailers: %d\n", summary.RetailerCount)
			if summary.Partial {
				fmt.Fprintln(out, "(some sources were unavailable)")
			}
			return nil
		},
	}
}
