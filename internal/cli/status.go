package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/tradeflow/internal/db"
	"github.com/example/tradeflow/internal/models"
	"github.com/example/tradeflow/internal/ports/primary"
	"github.com/example/tradeflow/internal/wire"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the overall state of trades and shipments",
	RunE: func(cmd *cobra.Command, args []string) error {
		party, err := actingParty()
		if err != nil {
			return err
		}
		ctx := partyContext(party)

		dbPath, err := db.GetDBPath()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}

		org, err := wire.IdentityResolver().Resolve(ctx, party.DID)
		if err != nil {
			// Identity config may point at a DID registered elsewhere
			fmt.Printf("Acting as: %s (%s)\n", party.DID, party.Role)
		} else {
			fmt.Printf("Acting as: %s, %s (%s)\n", org.Name, party.Role, party.DID)
		}
		fmt.Printf("Database: %s\n", dbPath)
		fmt.Println()

		trades, err := wire.TradeService().ListTrades(ctx, primary.TradeFilters{Party: party.DID})
		if err != nil {
			return fmt.Errorf("failed to list trades: %w", err)
		}
		if len(trades) == 0 {
			fmt.Println("No trades yet. Create one with: tradeflow trade create")
			return nil
		}

		fmt.Printf("Trades: %d\n", len(trades))

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TRADE\tSHIPMENT\tPHASE\tYOUR NEXT ACTION")
		fmt.Fprintln(w, "-----\t--------\t-----\t----------------")
		for _, t := range trades {
			shipments, err := wire.ShipmentService().ListShipments(ctx, primary.ShipmentFilters{TradeID: t.ID})
			if err != nil {
				return fmt.Errorf("failed to list shipments: %w", err)
			}
			if len(shipments) == 0 {
				fmt.Fprintf(w, "%s\t-\t-\t%s\n", t.ID, tradeAction(t))
				continue
			}
			for _, s := range shipments {
				action, err := nextAction(ctx, s, party)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, s.ID, phaseBadge(s.Phase), action)
			}
		}
		w.Flush()
		return nil
	},
}

func tradeAction(t *primary.Trade) string {
	if t.Status == models.TradeStatusDraft {
		return "contract the trade"
	}
	if t.Status == models.TradeStatusContracted {
		return "create a shipment"
	}
	return "-"
}

// nextAction summarizes what the acting party should do on a shipment.
func nextAction(ctx context.Context, s *primary.Shipment, party primary.PartyRef) (string, error) {
	switch s.Phase {
	case models.PhaseConfirmed:
		if party.Role == models.RoleExporter {
			return "release escrow funds", nil
		}
		return color.New(color.FgGreen).Sprint("complete"), nil
	case models.PhaseArbitration:
		return color.New(color.FgRed).Sprint("in arbitration"), nil
	case models.PhaseApproval:
		if party.Role == models.RoleExporter {
			if s.DetailsEvaluation != models.Approved && s.ShipmentNumber == 0 {
				return "propose terms", nil
			}
			return "waiting on importer evaluations", nil
		}
		pending := pendingEvaluations(s)
		if len(pending) == 0 {
			return "waiting", nil
		}
		return "evaluate " + pending, nil
	}

	duties, err := wire.DocumentService().GetDuties(ctx, s.ID)
	if err != nil {
		return "", fmt.Errorf("failed to get duties for %s: %w", s.ID, err)
	}

	uploads, approvals := 0, 0
	for _, d := range duties {
		mine := d.ImporterDuty
		if party.Role == models.RoleExporter {
			mine = d.ExporterDuty
		}
		switch mine {
		case models.DutyUploadNeeded, models.DutyUploadPossible:
			uploads++
		case models.DutyApprovalNeeded:
			approvals++
		}
	}

	switch {
	case uploads > 0 && approvals > 0:
		return fmt.Sprintf("upload %d, approve %d document(s)", uploads, approvals), nil
	case uploads > 0:
		return fmt.Sprintf("upload %d document(s)", uploads), nil
	case approvals > 0:
		return fmt.Sprintf("approve %d document(s)", approvals), nil
	default:
		return "waiting on counterparty", nil
	}
}

func pendingEvaluations(s *primary.Shipment) string {
	out := ""
	for _, p := range []struct {
		name   string
		status models.EvaluationStatus
	}{
		{"details", s.DetailsEvaluation},
		{"sample", s.SampleEvaluation},
		{"quality", s.QualityEvaluation},
	} {
		if p.status == models.Approved {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += p.name
	}
	return out
}

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	return statusCmd
}
