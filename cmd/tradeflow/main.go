package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/tradeflow/internal/cli"
	"github.com/example/tradeflow/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "tradeflow",
		Short:   "tradeflow - shipment document and negotiation engine",
		Version: version.String(),
		Long: `tradeflow drives coffee shipments from contract to confirmation: term
negotiation, per-phase document exchange, and the escrow that pays the
exporter once everything is approved.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.StatusCmd())
	rootCmd.AddCommand(cli.PartyCmd())
	rootCmd.AddCommand(cli.TradeCmd())
	rootCmd.AddCommand(cli.ShipmentCmd())
	rootCmd.AddCommand(cli.DocumentCmd())
	rootCmd.AddCommand(cli.EscrowCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
