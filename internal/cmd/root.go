package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var useFake bool

var rootCmd = &cobra.Command{
	Use:   "order-lookup",
	Short: "Storefront order lookup by phone number",
	Long: `order-lookup resolves a shopper's phone number to a customer on the
commerce platform and lists their orders.

It runs as an HTTP gateway in front of the platform's admin API, or performs
a single lookup from the command line.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&useFake, "fake", false, "Use the in-memory catalogue instead of the commerce platform")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
