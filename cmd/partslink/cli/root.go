// Package cli wires the PartsLink client services into cobra commands.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/chiruit2077/partslink/internal/api"
	"github.com/chiruit2077/partslink/internal/app"
	"github.com/chiruit2077/partslink/internal/auth"
	"github.com/chiruit2077/partslink/internal/dashboard"
	"github.com/chiruit2077/partslink/internal/orders"
	"github.com/chiruit2077/partslink/internal/parts"
	"github.com/chiruit2077/partslink/internal/retailers"
)

// App aggregates the wired services behind the commands.
type App struct {
	Config    *app.Config
	Sessions  *auth.Manager
	Auth      *auth.Service
	Orders    *orders.Service
	Parts     *parts.Service
	Retailers *retailers.Service
	Dashboard *dashboard.Service

	printer *message.Printer
}

// BuildApp loads configuration and assembles the service graph.
func BuildApp() (*App, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := app.NewLogger(cfg, os.Stderr)

	client := api.NewClient(api.Config{
		BaseURL:    cfg.APIBaseURL,
		Timeout:    cfg.APITimeout,
		APIVersion: cfg.APIVersion,
		AppVersion: cfg.AppVersion,
		Platform:   cfg.Platform,
	}, logger)

	store := auth.NewFileStore(cfg.SessionPath, cfg.SessionSecret)
	sessions := auth.NewManager(store, client, logger)
	if err := sessions.Init(); err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	client.SetTokenProvider(sessions)

	racks := parts.DerivedRackLocator{}
	orderService := orders.NewService(client, racks, logger)
	partService := parts.NewService(client, racks)
	retailerService := retailers.NewService(client)

	return &App{
		Config:    cfg,
		Sessions:  sessions,
		Auth:      auth.NewService(client, sessions),
		Orders:    orderService,
		Parts:     partService,
		Retailers: retailerService,
		Dashboard: dashboard.NewService(orderService, partService, retailerService, logger),
		printer:   message.NewPrinter(language.English),
	}, nil
}

// session returns the active session or an instruction to log in.
func (a *App) session() (*auth.Session, error) {
	sess := a.Sessions.Current()
	if sess == nil {
		return nil, errors.New("not logged in; run `partslink login` first")
	}
	return sess, nil
}

// money renders a currency amount with locale-aware grouping.
func (a *App) money(amount float64) string {
	return a.printer.Sprintf("Rs %.2f", amount)
}

// fail prints the error the way screens would, with a retry hint for
// connection-class failures.
func fail(cmd *cobra.Command, err error) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		fmt.Fprintln(cmd.ErrOrStderr(), apiErr.Message)
		for _, detail := range apiErr.Details {
			fmt.Fprintln(cmd.ErrOrStderr(), " -", detail)
		}
		if apiErr.IsRetryable() {
			fmt.Fprintln(cmd.ErrOrStderr(), "You can retry the same command.")
		}
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), err)
	return err
}

// NewRootCommand builds the command tree.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "partslink",
		Short:         "Field CRM client for the PartsLink distribution backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newLoginCommand(app),
		newLogoutCommand(app),
		newWhoamiCommand(app),
		newOrdersCommand(app),
		newPartsCommand(app),
		newRetailersCommand(app),
		newDashboardCommand(app),
	)
	return root
}
