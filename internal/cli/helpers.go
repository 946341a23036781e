package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/tradeflow/internal/config"
	"github.com/example/tradeflow/internal/ctxutil"
	"github.com/example/tradeflow/internal/models"
	"github.com/example/tradeflow/internal/ports/primary"
)

// actingParty loads the configured identity for mutating commands.
func actingParty() (primary.PartyRef, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return primary.PartyRef{}, fmt.Errorf("failed to get home directory: %w", err)
	}

	cfg, err := config.LoadConfig(home)
	if err != nil {
		return primary.PartyRef{}, fmt.Errorf("not initialized; run 'tradeflow init' first: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return primary.PartyRef{}, err
	}

	return primary.PartyRef{DID: cfg.PartyDID, Role: models.Role(cfg.Role)}, nil
}

// partyContext embeds the acting party DID so log lines and downstream
// calls can attribute the command.
func partyContext(party primary.PartyRef) context.Context {
	return ctxutil.WithPartyDID(context.Background(), party.DID)
}

func statusBadge(s models.EvaluationStatus) string {
	switch s {
	case models.Approved:
		return color.New(color.FgGreen).Sprint("APPROVED")
	case models.NotApproved:
		return color.New(color.FgRed).Sprint("NOT_APPROVED")
	default:
		return color.New(color.FgYellow).Sprint("NOT_EVALUATED")
	}
}

func phaseBadge(p models.ShipmentPhase) string {
	switch p {
	case models.PhaseConfirmed:
		return color.New(color.FgGreen).Sprint(string(p))
	case models.PhaseArbitration:
		return color.New(color.FgRed).Sprint(string(p))
	default:
		return color.New(color.FgCyan).Sprint(string(p))
	}
}

func dutyBadge(d models.Duty) string {
	switch d {
	case models.DutyUploadNeeded:
		return color.New(color.FgRed).Sprint("UPLOAD_NEEDED")
	case models.DutyApprovalNeeded:
		return color.New(color.FgYellow).Sprint("APPROVAL_NEEDED")
	case models.DutyUploadPossible:
		return color.New(color.FgCyan).Sprint("UPLOAD_POSSIBLE")
	default:
		return "-"
	}
}

func escrowBadge(s models.EscrowState) string {
	switch s {
	case models.EscrowActive:
		return color.New(color.FgGreen).Sprint("ACTIVE")
	case models.EscrowLocked:
		return color.New(color.FgYellow).Sprint("LOCKED")
	default:
		return color.New(color.FgBlue).Sprint("CLOSED")
	}
}

// renderAggregate prints the full shipment view returned by mutating calls.
func renderAggregate(agg *primary.ShipmentAggregate) {
	s := agg.Shipment
	fmt.Printf("Shipment: %s (trade %s)\n", s.ID, s.TradeID)
	fmt.Printf("  Phase: %s\n", phaseBadge(s.Phase))
	fmt.Printf("  Details:  %s\n", statusBadge(s.DetailsEvaluation))
	fmt.Printf("  Sample:   %s\n", statusBadge(s.SampleEvaluation))
	fmt.Printf("  Quality:  %s\n", statusBadge(s.QualityEvaluation))
	if s.ShipmentNumber > 0 {
		fmt.Printf("  Terms: #%d, %d bags, %.2f %s\n", s.ShipmentNumber, s.Quantity, s.Price, s.TargetExchange)
	}

	if agg.Escrow != nil {
		e := agg.Escrow
		fmt.Printf("  Escrow: %s at %s (deposited %.2f, withdrawable %.2f)\n",
			escrowBadge(e.State), e.Address, e.Deposited, e.Withdrawable)
	}

	if len(agg.Duties) > 0 {
		fmt.Println()
		renderDuties(agg.Duties)
	}
}

func renderDuties(duties []primary.DocumentDuty) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DOCUMENT\tUPLOADER\tEXPORTER DUTY\tIMPORTER DUTY\tSTATUS")
	fmt.Fprintln(w, "--------\t--------\t-------------\t-------------\t------")
	for _, d := range duties {
		docStatus := "-"
		if d.Document != nil {
			docStatus = statusBadge(d.Document.Status)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			d.DocumentType, d.UploaderRole, dutyBadge(d.ExporterDuty), dutyBadge(d.ImporterDuty), docStatus)
	}
	w.Flush()
}
