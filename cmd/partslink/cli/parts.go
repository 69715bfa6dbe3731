package cli

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/chiruit2077/partslink/internal/parts"
	"github.com/chiruit2077/partslink/internal/rbac"
)

func newPartsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parts",
		Short: "Browse the parts catalog and stock",
	}
	cmd.AddCommand(
		newPartsListCommand(app),
		newPartsShowCommand(app),
		newPartsStockCommand(app),
	)
	return cmd
}

func newPartsListCommand(app *App) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.session(); err != nil {
				return fail(cmd, err)
			}
			list, err := app.Parts.List(cmd.Context(), parts.ListFilter{Search: search})
			if err != nil {
				return fail(cmd, err)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PART\tDESCRIPTION\tMRP\tNET\tCATEGORY")
			for _, p := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					p.PartNumber, p.Description, app.money(p.MRP), app.money(p.NetPrice()), p.Category)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "search part number or description")
	return cmd
}

func newPartsShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <part-number>",
		Short: "Show one catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.session(); err != nil {
				return fail(cmd, err)
			}
			p, err := app.Parts.Get(cmd.Context(), args[0])
			if err != nil {
				return fail(cmd, err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %s\n", p.PartNumber, p.Description)
			fmt.Fprintf(out, "mrp=%s net=%s discounts=%.1f/%.1f/%.1f\n",
				app.money(p.MRP), app.money(p.NetPrice()),
				p.BasicDiscount, p.SchemeDiscount, p.AdditionalDiscount)
			fmt.Fprintf(out, "category=%s focus=%s min=%.0f max=%.0f guru=%d champion=%d\n",
				p.Category, p.FocusGroup, p.MinQuantity, p.MaxQuantity, p.GuruPoints, p.ChampionPoints)
			return nil
		},
	}
}

func newPartsStockCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stock <part-number> <quantity>",
		Short: "Update the stock quantity for a part",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.session()
			if err != nil {
				return fail(cmd, err)
			}
			if !rbac.Can(sess.User.Role, rbac.CapPartsUpdateStock) {
				return fail(cmd, errors.New("access denied: your role may not update stock"))
			}
			qty, err := strconv.ParseFloat(args[1], 64)
			if err != nil || qty < 0 {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
			if err := app.Parts.UpdateStock(cmd.Context(), args[0], qty); err != nil {
				return fail(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stock for %s set to %.0f\n", args[0], qty)
			return nil
		},
	}
}
