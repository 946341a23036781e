package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/tradeflow/internal/models"
	"github.com/example/tradeflow/internal/ports/primary"
	"github.com/example/tradeflow/internal/wire"
)

var shipmentCmd = &cobra.Command{
	Use:   "shipment",
	Short: "Manage shipments",
	Long:  "Create shipments, negotiate terms, record evaluations, and track the phase lifecycle",
}

var shipmentCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a shipment under a contracted trade",
	RunE: func(cmd *cobra.Command, args []string) error {
		tradeID, _ := cmd.Flags().GetString("trade")
		if tradeID == "" {
			return fmt.Errorf("--trade is required")
		}

		party, err := actingParty()
		if err != nil {
			return err
		}

		agg, err := wire.ShipmentService().CreateShipment(partyContext(party), primary.CreateShipmentRequest{
			TradeID:     tradeID,
			ActingParty: party,
		})
		if err != nil {
			return fmt.Errorf("failed to create shipment: %w", err)
		}

		fmt.Printf("✓ Created shipment %s\n", agg.Shipment.ID)
		renderAggregate(agg)
		return nil
	},
}

var shipmentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List shipments",
	RunE: func(cmd *cobra.Command, args []string) error {
		tradeID, _ := cmd.Flags().GetString("trade")
		phase, _ := cmd.Flags().GetString("phase")

		party, err := actingParty()
		if err != nil {
			return err
		}

		shipments, err := wire.ShipmentService().ListShipments(partyContext(party), primary.ShipmentFilters{
			TradeID: tradeID,
			Phase:   phase,
		})
		if err != nil {
			return fmt.Errorf("failed to list shipments: %w", err)
		}

		if len(shipments) == 0 {
			fmt.Println("No shipments found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTRADE\tPHASE\tDETAILS\tSAMPLE\tQUALITY")
		fmt.Fprintln(w, "--\t-----\t-----\t-------\t------\t-------")
		for _, s := range shipments {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				s.ID, s.TradeID, phaseBadge(s.Phase),
				statusBadge(s.DetailsEvaluation), statusBadge(s.SampleEvaluation), statusBadge(s.QualityEvaluation))
		}
		w.Flush()
		return nil
	},
}

var shipmentShowCmd = &cobra.Command{
	Use:   "show [shipment-id]",
	Short: "Show the full shipment view",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		party, err := actingParty()
		if err != nil {
			return err
		}

		agg, err := wire.ShipmentService().GetShipment(partyContext(party), args[0])
		if err != nil {
			return fmt.Errorf("shipment not found: %w", err)
		}

		renderAggregate(agg)
		return nil
	},
}

var shipmentProposeCmd = &cobra.Command{
	Use:   "propose [shipment-id]",
	Short: "Propose the negotiable terms (exporter only)",
	Long: `Propose or re-propose the negotiable terms of a shipment. The proposal
replaces the previous terms wholesale and resets the importer's details
evaluation.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, _ := cmd.Flags().GetInt("number")
		expiration, _ := cmd.Flags().GetString("expiration")
		fixing, _ := cmd.Flags().GetString("fixing")
		exchange, _ := cmd.Flags().GetString("exchange")
		differential, _ := cmd.Flags().GetFloat64("differential")
		price, _ := cmd.Flags().GetFloat64("price")
		quantity, _ := cmd.Flags().GetInt("quantity")
		containers, _ := cmd.Flags().GetInt("containers")
		netWeight, _ := cmd.Flags().GetFloat64("net-weight")
		grossWeight, _ := cmd.Flags().GetFloat64("gross-weight")

		party, err := actingParty()
		if err != nil {
			return err
		}

		agg, err := wire.ShipmentService().ProposeDetails(partyContext(party), primary.ProposeDetailsRequest{
			ShipmentID: args[0],
			Terms: primary.ShipmentTerms{
				ShipmentNumber:      number,
				ExpirationDate:      expiration,
				FixingDate:          fixing,
				TargetExchange:      exchange,
				DifferentialApplied: differential,
				Price:               price,
				Quantity:            quantity,
				ContainersNumber:    containers,
				NetWeight:           netWeight,
				GrossWeight:         grossWeight,
			},
			ActingParty: party,
		})
		if err != nil {
			return fmt.Errorf("failed to propose details: %w", err)
		}

		fmt.Printf("✓ Proposed terms for %s\n", agg.Shipment.ID)
		renderAggregate(agg)
		return nil
	},
}

// evaluationRunE builds the RunE for the six approve/reject evaluation
// subcommands; they differ only in aspect and verdict.
func evaluationRunE(aspect string, verdict models.EvaluationStatus) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		party, err := actingParty()
		if err != nil {
			return err
		}

		req := primary.EvaluationRequest{
			ShipmentID:  args[0],
			Verdict:     verdict,
			ActingParty: party,
		}

		ctx := partyContext(party)
		var agg *primary.ShipmentAggregate
		switch aspect {
		case "details":
			agg, err = wire.ShipmentService().EvaluateDetails(ctx, req)
		case "sample":
			agg, err = wire.ShipmentService().EvaluateSample(ctx, req)
		case "quality":
			agg, err = wire.ShipmentService().EvaluateQuality(ctx, req)
		}
		if err != nil {
			return fmt.Errorf("failed to evaluate %s: %w", aspect, err)
		}

		fmt.Printf("✓ Recorded %s on %s %s\n", statusBadge(verdict), agg.Shipment.ID, aspect)
		renderAggregate(agg)
		return nil
	}
}

var shipmentApproveDetailsCmd = &cobra.Command{
	Use:   "approve-details [shipment-id]",
	Short: "Approve the proposed terms (importer only)",
	Args:  cobra.ExactArgs(1),
	RunE:  evaluationRunE("details", models.Approved),
}

var shipmentRejectDetailsCmd = &cobra.Command{
	Use:   "reject-details [shipment-id]",
	Short: "Reject the proposed terms (importer only)",
	Args:  cobra.ExactArgs(1),
	RunE:  evaluationRunE("details", models.NotApproved),
}

var shipmentApproveSampleCmd = &cobra.Command{
	Use:   "approve-sample [shipment-id]",
	Short: "Approve the physical sample (importer only)",
	Args:  cobra.ExactArgs(1),
	RunE:  evaluationRunE("sample", models.Approved),
}

var shipmentRejectSampleCmd = &cobra.Command{
	Use:   "reject-sample [shipment-id]",
	Short: "Reject the physical sample (importer only)",
	Args:  cobra.ExactArgs(1),
	RunE:  evaluationRunE("sample", models.NotApproved),
}

var shipmentApproveQualityCmd = &cobra.Command{
	Use:   "approve-quality [shipment-id]",
	Short: "Approve the quality report (importer only)",
	Args:  cobra.ExactArgs(1),
	RunE:  evaluationRunE("quality", models.Approved),
}

var shipmentRejectQualityCmd = &cobra.Command{
	Use:   "reject-quality [shipment-id]",
	Short: "Reject the quality report (importer only)",
	Args:  cobra.ExactArgs(1),
	RunE:  evaluationRunE("quality", models.NotApproved),
}

var shipmentArbitrateCmd = &cobra.Command{
	Use:   "arbitrate [shipment-id]",
	Short: "Move a shipment into arbitration",
	Long: `Freeze a shipment in the ARBITRATION phase. Document and negotiation
commands are rejected until the dispute is resolved out of band.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		party, err := actingParty()
		if err != nil {
			return err
		}

		agg, err := wire.ShipmentService().RequestArbitration(partyContext(party), primary.ArbitrationRequest{
			ShipmentID:  args[0],
			ActingParty: party,
		})
		if err != nil {
			return fmt.Errorf("failed to request arbitration: %w", err)
		}

		fmt.Printf("✓ Shipment %s is now in %s\n", agg.Shipment.ID, phaseBadge(agg.Shipment.Phase))
		return nil
	},
}

var shipmentAdvanceCmd = &cobra.Command{
	Use:   "advance [shipment-id]",
	Short: "Re-check the phase exit condition and advance if met",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		party, err := actingParty()
		if err != nil {
			return err
		}

		agg, err := wire.ShipmentService().AdvancePhaseIfReady(partyContext(party), args[0])
		if err != nil {
			return fmt.Errorf("failed to advance phase: %w", err)
		}

		fmt.Printf("Shipment %s is in %s\n", agg.Shipment.ID, phaseBadge(agg.Shipment.Phase))
		return nil
	},
}

// ShipmentCmd returns the shipment command
func ShipmentCmd() *cobra.Command {
	shipmentCreateCmd.Flags().StringP("trade", "t", "", "Trade ID the shipment belongs to")
	shipmentListCmd.Flags().StringP("trade", "t", "", "Filter by trade ID")
	shipmentListCmd.Flags().StringP("phase", "p", "", "Filter by phase")
	shipmentProposeCmd.Flags().Int("number", 0, "Shipment number within the trade")
	shipmentProposeCmd.Flags().String("expiration", "", "Expiration date (RFC 3339)")
	shipmentProposeCmd.Flags().String("fixing", "", "Price fixing date (RFC 3339)")
	shipmentProposeCmd.Flags().String("exchange", "", "Target exchange (e.g. NYC)")
	shipmentProposeCmd.Flags().Float64("differential", 0, "Differential applied over exchange price")
	shipmentProposeCmd.Flags().Float64("price", 0, "Agreed price")
	shipmentProposeCmd.Flags().Int("quantity", 0, "Quantity in bags")
	shipmentProposeCmd.Flags().Int("containers", 0, "Number of containers")
	shipmentProposeCmd.Flags().Float64("net-weight", 0, "Net weight in kg")
	shipmentProposeCmd.Flags().Float64("gross-weight", 0, "Gross weight in kg")
	shipmentCmd.AddCommand(shipmentCreateCmd)
	shipmentCmd.AddCommand(shipmentListCmd)
	shipmentCmd.AddCommand(shipmentShowCmd)
	shipmentCmd.AddCommand(shipmentProposeCmd)
	shipmentCmd.AddCommand(shipmentApproveDetailsCmd)
	shipmentCmd.AddCommand(shipmentRejectDetailsCmd)
	shipmentCmd.AddCommand(shipmentApproveSampleCmd)
	shipmentCmd.AddCommand(shipmentRejectSampleCmd)
	shipmentCmd.AddCommand(shipmentApproveQualityCmd)
	shipmentCmd.AddCommand(shipmentRejectQualityCmd)
	shipmentCmd.AddCommand(shipmentArbitrateCmd)
	shipmentCmd.AddCommand(shipmentAdvanceCmd)

	return shipmentCmd
}
