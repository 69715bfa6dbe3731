package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/chiruit2077/partslink/internal/retailers"
)

func newRetailersCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retailers",
		Short: "Browse retailer accounts",
	}
	cmd.AddCommand(newRetailersListCommand(app))
	return cmd
}

func newRetailersListCommand(app *App) *cobra.Command {
	var activeOnly bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List retailers",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.session(); err != nil {
				return fail(cmd, err)
			}
			list, err := app.Retailers.List(cmd.Context(), retailers.ListFilter{ActiveOnly: activeOnly})
			if err != nil {
				return fail(cmd, err)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCONTACT\tCREDIT\tSTATE")
			for _, r := range list {
				state := "inactive"
				switch {
				case r.Pending:
					state = "pending"
				case r.Confirmed:
					state = "confirmed"
				case r.Active:
					state = "active"
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
					r.ID, r.DisplayName(), r.ContactName, app.money(r.CreditLimit), state)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&activeOnly, "active", false, "only active retailers")
	return cmd
}
