package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/tradeflow/internal/ports/secondary"
	"github.com/example/tradeflow/internal/wire"
)

var partyCmd = &cobra.Command{
	Use:   "party",
	Short: "Manage the organization directory",
	Long:  "Register and inspect the counterparty organizations trades reference",
}

var partyRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register an organization",
	RunE: func(cmd *cobra.Command, args []string) error {
		did, _ := cmd.Flags().GetString("did")
		name, _ := cmd.Flags().GetString("name")
		country, _ := cmd.Flags().GetString("country")
		role, _ := cmd.Flags().GetString("role")

		if did == "" || name == "" || role == "" {
			return fmt.Errorf("--did, --name, and --role are required")
		}
		if role != "EXPORTER" && role != "IMPORTER" {
			return fmt.Errorf("role must be EXPORTER or IMPORTER, got %q", role)
		}

		ctx := context.Background()
		err := wire.PartyRepository().Create(ctx, &secondary.PartyRecord{
			DID:     did,
			Name:    name,
			Country: country,
			Role:    role,
		})
		if err != nil {
			return fmt.Errorf("failed to register organization: %w", err)
		}

		fmt.Printf("✓ Registered %s as %s (%s)\n", name, role, did)
		return nil
	},
}

var partyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered organizations",
	RunE: func(cmd *cobra.Command, args []string) error {
		parties, err := wire.PartyRepository().List(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list organizations: %w", err)
		}

		if len(parties) == 0 {
			fmt.Println("No organizations registered")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "DID\tNAME\tCOUNTRY\tROLE")
		fmt.Fprintln(w, "---\t----\t-------\t----")
		for _, p := range parties {
			country := p.Country
			if country == "" {
				country = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.DID, p.Name, country, p.Role)
		}
		w.Flush()
		return nil
	},
}

var partyShowCmd = &cobra.Command{
	Use:   "show [did]",
	Short: "Show organization details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := wire.IdentityResolver().Resolve(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("organization not found: %w", err)
		}

		fmt.Printf("Organization: %s\n", org.Name)
		fmt.Printf("  DID: %s\n", org.DID)
		fmt.Printf("  Role: %s\n", org.Role)
		if org.Country != "" {
			fmt.Printf("  Country: %s\n", org.Country)
		}
		return nil
	},
}

// PartyCmd returns the party command
func PartyCmd() *cobra.Command {
	partyRegisterCmd.Flags().String("did", "", "Organization DID (did:web:...)")
	partyRegisterCmd.Flags().StringP("name", "n", "", "Organization display name")
	partyRegisterCmd.Flags().StringP("country", "c", "", "Organization country")
	partyRegisterCmd.Flags().StringP("role", "r", "", "Trading role (EXPORTER or IMPORTER)")

	partyCmd.AddCommand(partyRegisterCmd)
	partyCmd.AddCommand(partyListCmd)
	partyCmd.AddCommand(partyShowCmd)

	return partyCmd
}
