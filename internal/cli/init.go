package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/tradeflow/internal/config"
	"github.com/example/tradeflow/internal/db"
	"github.com/example/tradeflow/internal/models"
	"github.com/example/tradeflow/internal/ports/primary"
	"github.com/example/tradeflow/internal/ports/secondary"
	"github.com/example/tradeflow/internal/wire"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the tradeflow database and operator identity",
	Long: `Initialize the tradeflow database at ~/.tradeflow/tradeflow.db, register
the operating organization, and write the identity config every command
acts under.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		did, _ := cmd.Flags().GetString("did")
		name, _ := cmd.Flags().GetString("name")
		country, _ := cmd.Flags().GetString("country")
		role, _ := cmd.Flags().GetString("role")

		if did == "" || name == "" || role == "" {
			return fmt.Errorf("--did, --name, and --role are required")
		}

		dbPath, err := db.GetDBPath()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}

		fmt.Printf("Initializing tradeflow database at %s\n", dbPath)

		if err := db.InitSchema(); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
		fmt.Println("✓ Database initialized successfully")

		cfg := &config.Config{
			Version:  "1.0",
			PartyDID: did,
			Role:     role,
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx := partyContext(primary.PartyRef{DID: did, Role: models.Role(role)})

		// Re-running init with the same DID is fine
		if existing, _ := wire.PartyRepository().GetByDID(ctx, did); existing == nil {
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
		} else {
			fmt.Printf("✓ Organization %s already registered\n", did)
		}

		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		if err := config.SaveConfig(home, cfg); err != nil {
			return err
		}
		fmt.Println("✓ Identity config written to ~/.tradeflow/config.json")
		fmt.Println()
		fmt.Println("Next steps:")
		fmt.Println("  tradeflow party register --did did:web:counterparty.example ...")
		fmt.Println("  tradeflow trade create --exporter ... --importer ... --commodity \"Arabica, washed\"")

		return nil
	},
}

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	initCmd.Flags().String("did", "", "Organization DID (did:web:...)")
	initCmd.Flags().StringP("name", "n", "", "Organization display name")
	initCmd.Flags().StringP("country", "c", "", "Organization country")
	initCmd.Flags().StringP("role", "r", "", "Trading role (EXPORTER or IMPORTER)")

	return initCmd
}
