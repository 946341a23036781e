package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/tradeflow/internal/ports/primary"
	"github.com/example/tradeflow/internal/wire"
)

var tradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "Manage trades",
	Long:  "Create, list, and contract trades between an exporter and an importer",
}

var tradeCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new draft trade",
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, _ := cmd.Flags().GetString("exporter")
		importer, _ := cmd.Flags().GetString("importer")
		commodity, _ := cmd.Flags().GetString("commodity")
		incoterms, _ := cmd.Flags().GetString("incoterms")

		party, err := actingParty()
		if err != nil {
			return err
		}

		trade, err := wire.TradeService().CreateTrade(partyContext(party), primary.CreateTradeRequest{
			ExporterDID: exporter,
			ImporterDID: importer,
			Commodity:   commodity,
			Incoterms:   incoterms,
		})
		if err != nil {
			return fmt.Errorf("failed to create trade: %w", err)
		}

		fmt.Printf("✓ Created trade %s (%s)\n", trade.ID, trade.Status)
		fmt.Printf("  Exporter: %s\n", trade.ExporterDID)
		fmt.Printf("  Importer: %s\n", trade.ImporterDID)
		fmt.Printf("  Commodity: %s\n", trade.Commodity)
		return nil
	},
}

var tradeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trades",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		partyFilter, _ := cmd.Flags().GetString("party")

		party, err := actingParty()
		if err != nil {
			return err
		}

		trades, err := wire.TradeService().ListTrades(partyContext(party), primary.TradeFilters{
			Status: status,
			Party:  partyFilter,
		})
		if err != nil {
			return fmt.Errorf("failed to list trades: %w", err)
		}

		if len(trades) == 0 {
			fmt.Println("No trades found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tEXPORTER\tIMPORTER\tCOMMODITY\tSTATUS")
		fmt.Fprintln(w, "--\t--------\t--------\t---------\t------")
		for _, t := range trades {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.ExporterDID, t.ImporterDID, t.Commodity, t.Status)
		}
		w.Flush()
		return nil
	},
}

var tradeShowCmd = &cobra.Command{
	Use:   "show [trade-id]",
	Short: "Show trade details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		party, err := actingParty()
		if err != nil {
			return err
		}
		ctx := partyContext(party)

		trade, err := wire.TradeService().GetTrade(ctx, args[0])
		if err != nil {
			return fmt.Errorf("trade not found: %w", err)
		}

		fmt.Printf("Trade: %s (%s)\n", trade.ID, trade.Status)
		fmt.Printf("  Exporter: %s\n", trade.ExporterDID)
		fmt.Printf("  Importer: %s\n", trade.ImporterDID)
		fmt.Printf("  Commodity: %s\n", trade.Commodity)
		if trade.Incoterms != "" {
			fmt.Printf("  Incoterms: %s\n", trade.Incoterms)
		}
		fmt.Printf("  Created: %s\n", trade.CreatedAt)

		shipments, err := wire.ShipmentService().ListShipments(ctx, primary.ShipmentFilters{TradeID: trade.ID})
		if err != nil {
			return fmt.Errorf("failed to list shipments: %w", err)
		}
		if len(shipments) > 0 {
			fmt.Println()
			fmt.Println("Shipments:")
			for _, s := range shipments {
				fmt.Printf("  %s  %s\n", s.ID, phaseBadge(s.Phase))
			}
		}
		return nil
	},
}

var tradeContractCmd = &cobra.Command{
	Use:   "contract [trade-id]",
	Short: "Contract a draft trade, making it shipment-eligible",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		party, err := actingParty()
		if err != nil {
			return err
		}

		trade, err := wire.TradeService().ContractTrade(partyContext(party), args[0])
		if err != nil {
			return fmt.Errorf("failed to contract trade: %w", err)
		}

		fmt.Printf("✓ Trade %s is now %s\n", trade.ID, trade.Status)
		fmt.Printf("  Create a shipment with: tradeflow shipment create --trade %s\n", trade.ID)
		return nil
	},
}

// TradeCmd returns the trade command
func TradeCmd() *cobra.Command {
	tradeCreateCmd.Flags().String("exporter", "", "Exporter DID")
	tradeCreateCmd.Flags().String("importer", "", "Importer DID")
	tradeCreateCmd.Flags().String("commodity", "", "Commodity description")
	tradeCreateCmd.Flags().String("incoterms", "", "Incoterms (FOB, CIF, ...)")
	tradeListCmd.Flags().StringP("status", "s", "", "Filter by status (draft, contracted, closed)")
	tradeListCmd.Flags().StringP("party", "p", "", "Filter by participating party DID")

	tradeCmd.AddCommand(tradeCreateCmd)
	tradeCmd.AddCommand(tradeListCmd)
	tradeCmd.AddCommand(tradeShowCmd)
	tradeCmd.AddCommand(tradeContractCmd)

	return tradeCmd
}
