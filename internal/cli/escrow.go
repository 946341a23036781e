package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/tradeflow/internal/ports/primary"
	"github.com/example/tradeflow/internal/wire"
)

var escrowCmd = &cobra.Command{
	Use:   "escrow",
	Short: "Manage shipment escrow accounts",
	Long:  "Determine the escrow account on the ledger and move funds through it",
}

var escrowDetermineCmd = &cobra.Command{
	Use:   "determine [shipment-id]",
	Short: "Create the escrow account on the ledger",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		party, err := actingParty()
		if err != nil {
			return err
		}

		account, err := wire.EscrowService().DetermineEscrow(partyContext(party), primary.EscrowRequest{
			ShipmentID:  args[0],
			ActingParty: party,
		})
		if err != nil {
			return fmt.Errorf("failed to determine escrow: %w", err)
		}

		fmt.Printf("✓ Escrow determined for %s\n", account.ShipmentID)
		printEscrow(account)
		return nil
	},
}

var escrowShowCmd = &cobra.Command{
	Use:   "show [shipment-id]",
	Short: "Show the escrow account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		party, err := actingParty()
		if err != nil {
			return err
		}

		account, err := wire.EscrowService().GetEscrow(partyContext(party), args[0])
		if err != nil {
			return fmt.Errorf("failed to get escrow: %w", err)
		}
		if account == nil {
			fmt.Printf("No escrow determined for %s yet\n", args[0])
			fmt.Printf("  Run: tradeflow escrow determine %s\n", args[0])
			return nil
		}

		printEscrow(account)
		return nil
	},
}

var escrowDepositCmd = &cobra.Command{
	Use:   "deposit [shipment-id]",
	Short: "Deposit funds into the escrow (importer only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, _ := cmd.Flags().GetFloat64("amount")

		party, err := actingParty()
		if err != nil {
			return err
		}

		account, err := wire.EscrowService().DepositFunds(partyContext(party), primary.FundsRequest{
			ShipmentID:  args[0],
			Amount:      amount,
			ActingParty: party,
		})
		if err != nil {
			return fmt.Errorf("failed to deposit funds: %w", err)
		}

		fmt.Printf("✓ Deposited %.2f into escrow for %s\n", amount, account.ShipmentID)
		printEscrow(account)
		return nil
	},
}

var escrowLockCmd = &cobra.Command{
	Use:   "lock [shipment-id]",
	Short: "Lock the escrow",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return escrowTransition(args[0], wire.EscrowService().LockFunds, "locked")
	},
}

var escrowUnlockCmd = &cobra.Command{
	Use:   "unlock [shipment-id]",
	Short: "Unlock a locked escrow",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return escrowTransition(args[0], wire.EscrowService().UnlockFunds, "unlocked")
	},
}

var escrowReleaseCmd = &cobra.Command{
	Use:   "release [shipment-id]",
	Short: "Release escrowed funds to the exporter",
	Long: `Release the escrowed funds to the exporter. Allowed only once the
shipment is CONFIRMED and every required document is approved.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return escrowTransition(args[0], wire.EscrowService().ReleaseFunds, "released")
	},
}

func escrowTransition(
	shipmentID string,
	op func(ctx context.Context, req primary.EscrowRequest) (*primary.EscrowAccount, error),
	verb string,
) error {
	party, err := actingParty()
	if err != nil {
		return err
	}

	account, err := op(partyContext(party), primary.EscrowRequest{
		ShipmentID:  shipmentID,
		ActingParty: party,
	})
	if err != nil {
		return fmt.Errorf("failed to %s escrow: %w", verb, err)
	}

	fmt.Printf("✓ Escrow %s for %s\n", verb, account.ShipmentID)
	printEscrow(account)
	return nil
}

func printEscrow(account *primary.EscrowAccount) {
	fmt.Printf("  State: %s\n", escrowBadge(account.State))
	fmt.Printf("  Address: %s\n", account.Address)
	fmt.Printf("  Deposited: %.2f\n", account.Deposited)
	fmt.Printf("  Withdrawable: %.2f\n", account.Withdrawable)
}

// EscrowCmd returns the escrow command
func EscrowCmd() *cobra.Command {
	escrowDepositCmd.Flags().Float64P("amount", "a", 0, "Amount to deposit")

	escrowCmd.AddCommand(escrowDetermineCmd)
	escrowCmd.AddCommand(escrowShowCmd)
	escrowCmd.AddCommand(escrowDepositCmd)
	escrowCmd.AddCommand(escrowLockCmd)
	escrowCmd.AddCommand(escrowUnlockCmd)
	escrowCmd.AddCommand(escrowReleaseCmd)

	return escrowCmd
}
