package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/chiruit2077/partslink/internal/orders"
	"github.com/chiruit2077/partslink/internal/rbac"
)

func newOrdersCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Browse and manage orders",
	}
	cmd.AddCommand(
		newOrdersListCommand(app),
		newOrdersShowCommand(app),
		newOrdersCreateCommand(app),
		newOrdersStatusCommand(app),
	)
	return cmd
}

func newOrdersListCommand(app *App) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.session(); err != nil {
				return fail(cmd, err)
			}
			list, err := app.Orders.List(cmd.Context(), orders.ListFilter{Status: orders.Status(status)})
			if err != nil {
				return fail(cmd, err)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tORDER\tRETAILER\tSTATUS\tTOTAL\tURGENT")
			for _, o := range list {
				urgent := ""
				if o.Urgent {
					urgent = "yes"
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
					o.ID, o.OrderNumber, o.Retailer.DisplayName(), o.Status, app.money(o.TotalAmount), urgent)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	return cmd
}

func newOrdersShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one order with its lines and history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.session(); err != nil {
				return fail(cmd, err)
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid order id %q", args[0])
			}
			o, err := app.Orders.Get(cmd.Context(), id)
			if err != nil {
				return fail(cmd, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %s  %s\n", o.OrderNumber, o.Retailer.DisplayName(), o.Status)
			fmt.Fprintf(out, "branch=%s po=%s total=%s\n", o.BranchCode, o.PONumber, app.money(o.TotalAmount))
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PART\tQTY\tPICKED\tRACK\tAMOUNT")
			for _, item := range o.Items {
				picked := ""
				if item.Picked {
					picked = "yes"
				}
				fmt.Fprintf(tw, "%s\t%.0f\t%s\t%s\t%s\n",
					item.PartNumber, item.Quantity, picked, item.RackLocation, app.money(item.LineAmount()))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			for _, h := range o.History {
				fmt.Fprintf(out, "  %s  %s  %s\n", h.At.Format("2006-01-02 15:04"), h.Status, h.Actor)
			}
			next := orders.AllowedTargets(o.Status)
			if len(next) > 0 {
				fmt.Fprintf(out, "allowed next: %v\n", next)
			}
			return nil
		},
	}
}

// parseItemSpec parses PART:QTY flags, e.g. BRK-PAD-2041:4.
func parseItemSpec(spec string) (orders.DraftItem, error) {
	partNumber, qtyRaw, found := strings.Cut(spec, ":")
	if !found || partNumber == "" {
		return orders.DraftItem{}, fmt.Errorf("item %q must be PART:QTY", spec)
	}
	qty, err := strconv.ParseFloat(qtyRaw, 64)
	if err != nil || qty <= 0 {
		return orders.DraftItem{}, fmt.Errorf("item %q has an invalid quantity", spec)
	}
	return orders.DraftItem{PartNumber: partNumber, Quantity: qty}, nil
}

func newOrdersCreateCommand(app *App) *cobra.Command {
	var (
		retailerID int64
		branch     string
		poNumber   string
		urgent     bool
		notes      string
		itemSpecs  []string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Submit a new order",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.session()
			if err != nil {
				return fail(cmd, err)
			}
			if !rbac.Can(sess.User.Role, rbac.CapOrdersCreate) {
				return fail(cmd, errors.New("access denied: your role may not create orders"))
			}

			draft := orders.Draft{
				RetailerID: retailerID,
				BranchCode: branch,
				PONumber:   poNumber,
				Urgent:     urgent,
				Notes:      notes,
			}
			for _, spec := range itemSpecs {
				item, err := parseItemSpec(spec)
				if err != nil {
					return err
				}
				part, err := app.Parts.Get(cmd.Context(), item.PartNumber)
				if err != nil {
					return fail(cmd, err)
				}
				item.MRP = part.MRP
				item.BasicDiscount = part.BasicDiscount
				item.SchemeDiscount = part.SchemeDiscount
				item.AdditionalDiscount = part.AdditionalDiscount
				draft.Items = append(draft.Items, item)
			}

			o, err := app.Orders.Create(cmd.Context(), draft)
			if err != nil {
				return fail(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (id %d), total %s\n",
				o.OrderNumber, o.ID, app.money(o.TotalAmount))
			return nil
		},
	}
	cmd.Flags().Int64Var(&retailerID, "retailer", 0, "retailer id")
	cmd.Flags().StringVar(&branch, "branch", "", "branch code")
	cmd.Flags().StringVar(&poNumber, "po", "", "purchase order number (generated when empty)")
	cmd.Flags().BoolVar(&urgent, "urgent", false, "mark urgent")
	cmd.Flags().StringVar(&notes, "notes", "", "free-text notes")
	cmd.Flags().StringArrayVar(&itemSpecs, "item", nil, "order line as PART:QTY (repeatable)")
	_ = cmd.MarkFlagRequired("retailer")
	_ = cmd.MarkFlagRequired("branch")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

func newOrdersStatusCommand(app *App) *cobra.Command {
	var notes string
	cmd := &cobra.Command{
		Use:   "status <id> <target>",
		Short: "Move an order to a new status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.session()
			if err != nil {
				return fail(cmd, err)
			}
			if !rbac.Can(sess.User.Role, rbac.CapOrdersUpdateStatus) {
				return fail(cmd, errors.New("access denied: your role may not update order status"))
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid order id %q", args[0])
			}
			target, ok := orders.ParseStatus(args[1])
			if !ok {
				return fmt.Errorf("unknown status %q", args[1])
			}

			o, err := app.Orders.Get(cmd.Context(), id)
			if err != nil {
				return fail(cmd, err)
			}
			if err := app.Orders.UpdateStatus(cmd.Context(), o, target, notes, sess.User.Name); err != nil {
				var guard *orders.GuardError
				if errors.As(err, &guard) {
					fmt.Fprintln(cmd.ErrOrStderr(), guard.Message)
					return err
				}
				if errors.Is(err, orders.ErrInvalidTransition) {
					fmt.Fprintf(cmd.ErrOrStderr(), "%v; allowed: %v\n", err, orders.AllowedTargets(o.Status))
					return err
				}
				return fail(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", o.OrderNumber, o.Status)
			return nil
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "", "notes for the status history")
	return cmd
}
