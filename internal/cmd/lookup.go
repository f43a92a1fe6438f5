package cmd

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jcmexdev/storefront-lookup/internal/config"
	"github.com/jcmexdev/storefront-lookup/internal/coordinator"
	"github.com/jcmexdev/storefront-lookup/internal/pkg/interceptors"
	"github.com/jcmexdev/storefront-lookup/internal/pkg/telemetry"
)

var (
	lookupPhone string
	gatewayURL  string
)

var errIncompletePhone = errors.New("enter a complete ten digit phone number")

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Look up a shopper's orders by phone number",
	Long: `Look up a shopper's orders by phone number.

Without --gateway the commerce platform is called in-process. With --gateway
the lookup goes through a running gateway's /api/customers and /api/orders.`,
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)

	lookupCmd.Flags().StringVar(&lookupPhone, "phone", "", "Phone number in any format")
	lookupCmd.Flags().StringVar(&gatewayURL, "gateway", "", "Gateway base URL (overrides GATEWAY_URL)")
	_ = lookupCmd.MarkFlagRequired("phone")
}

func runLookup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if gatewayURL != "" {
		cfg.Gateway.URL = gatewayURL
	}

	logger := telemetry.InitLogger(cfg.Telemetry.LogLevel)

	var forwarders coordinator.Forwarders
	if cfg.Gateway.URL != "" {
		client := &http.Client{
			Timeout:   cfg.Commerce.Timeout,
			Transport: interceptors.NewTransport(nil),
		}
		forwarders = coordinator.NewHTTPForwarders(cfg.Gateway.URL, client)
	} else {
		commerce, _, err := newCommerceClient(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		forwarders = coordinator.NewDirectForwarders(commerce)
	}

	session := coordinator.NewSession(coordinator.NewOrchestrator(forwarders), logger)
	formatted := session.SetPhone(lookupPhone)
	if !session.CanSubmit() {
		return fmt.Errorf("%w: got %q", errIncompletePhone, formatted)
	}

	if _, err := session.Submit(cmd.Context()); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), session.Message())
		return err
	}

	printResult(cmd.OutOrStdout(), formatted, session.Result())
	return nil
}

func printResult(w io.Writer, phone string, res *coordinator.Result) {
	fmt.Fprintf(w, "Orders for %s (customer %s)\n", phone, res.CustomerID)
	if len(res.Orders) == 0 {
		fmt.Fprintln(w, "  no orders yet")
	}
	for _, order := range res.Orders {
		fmt.Fprintf(w, "  Order #%s  %s\n", order.OrderNumber, order.CreatedDate())
		for _, item := range order.LineItems {
			fmt.Fprintf(w, "    %s x %d\n", item.Title, item.Quantity)
		}
	}

	fmt.Fprintln(w, "\nRecommended for you")
	for _, rec := range res.Recommendations {
		fmt.Fprintf(w, "  %s  %s  (%s)\n", rec.Name, rec.Price, rec.Category)
	}
}
