package cli

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/tradeflow/internal/models"
	"github.com/example/tradeflow/internal/ports/primary"
	"github.com/example/tradeflow/internal/wire"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage shipment documents",
	Long:  "Upload, validate, and inspect the documents required by each shipment phase",
}

var documentUploadCmd = &cobra.Command{
	Use:   "upload [shipment-id]",
	Short: "Upload a document for the current phase",
	Long: `Upload a document file for the shipment's current phase. Re-uploading a
document type supersedes the previous revision and resets its approval.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docType, _ := cmd.Flags().GetString("type")
		file, _ := cmd.Flags().GetString("file")

		if docType == "" || file == "" {
			return fmt.Errorf("--type and --file are required")
		}
		if !models.DocumentType(docType).IsValid() {
			return fmt.Errorf("unknown document type %q", docType)
		}

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		mimeType := mime.TypeByExtension(filepath.Ext(file))
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}

		party, err := actingParty()
		if err != nil {
			return err
		}

		agg, err := wire.DocumentService().UploadDocument(partyContext(party), primary.UploadDocumentRequest{
			ShipmentID:   args[0],
			DocumentType: models.DocumentType(docType),
			Filename:     filepath.Base(file),
			MimeType:     mimeType,
			Content:      content,
			ActingParty:  party,
		})
		if err != nil {
			return fmt.Errorf("failed to upload document: %w", err)
		}

		fmt.Printf("✓ Uploaded %s for %s\n", docType, agg.Shipment.ID)
		renderAggregate(agg)
		return nil
	},
}

// validateRunE builds the RunE for the approve/reject subcommands.
func validateRunE(verdict models.EvaluationStatus) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		party, err := actingParty()
		if err != nil {
			return err
		}

		agg, err := wire.DocumentService().ValidateDocument(partyContext(party), primary.ValidateDocumentRequest{
			ShipmentID:  args[0],
			DocumentID:  args[1],
			Verdict:     verdict,
			ActingParty: party,
		})
		if err != nil {
			return fmt.Errorf("failed to validate document: %w", err)
		}

		fmt.Printf("✓ Recorded %s on %s\n", statusBadge(verdict), args[1])
		renderAggregate(agg)
		return nil
	}
}

var documentApproveCmd = &cobra.Command{
	Use:   "approve [shipment-id] [document-id]",
	Short: "Approve an uploaded document (counterpart only)",
	Args:  cobra.ExactArgs(2),
	RunE:  validateRunE(models.Approved),
}

var documentRejectCmd = &cobra.Command{
	Use:   "reject [shipment-id] [document-id]",
	Short: "Reject an uploaded document, allowing a re-upload",
	Args:  cobra.ExactArgs(2),
	RunE:  validateRunE(models.NotApproved),
}

var documentListCmd = &cobra.Command{
	Use:   "list [shipment-id]",
	Short: "List a shipment's documents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		history, _ := cmd.Flags().GetBool("history")

		party, err := actingParty()
		if err != nil {
			return err
		}

		docs, err := wire.DocumentService().ListDocuments(partyContext(party), args[0], history)
		if err != nil {
			return fmt.Errorf("failed to list documents: %w", err)
		}

		if len(docs) == 0 {
			fmt.Println("No documents found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTYPE\tPHASE\tSTATUS\tUPLOADED BY\tFILE")
		fmt.Fprintln(w, "--\t----\t-----\t------\t-----------\t----")
		for _, d := range docs {
			supersededMark := ""
			if d.Superseded {
				supersededMark = " [superseded]"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s%s\t%s\t%s\n",
				d.ID, d.DocumentType, d.Phase, statusBadge(d.Status), supersededMark, d.UploadedBy, d.Filename)
		}
		w.Flush()
		return nil
	},
}

var documentDutiesCmd = &cobra.Command{
	Use:   "duties [shipment-id]",
	Short: "Show what each party must do for the current phase",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		party, err := actingParty()
		if err != nil {
			return err
		}

		duties, err := wire.DocumentService().GetDuties(partyContext(party), args[0])
		if err != nil {
			return fmt.Errorf("failed to get duties: %w", err)
		}

		if len(duties) == 0 {
			fmt.Println("No documents required in the current phase")
			return nil
		}

		renderDuties(duties)
		return nil
	},
}

// DocumentCmd returns the document command
func DocumentCmd() *cobra.Command {
	documentUploadCmd.Flags().StringP("type", "t", "", "Document type (e.g. BILL_OF_LADING)")
	documentUploadCmd.Flags().StringP("file", "f", "", "Path to the document file")
	documentListCmd.Flags().Bool("history", false, "Include superseded revisions")

	documentCmd.AddCommand(documentUploadCmd)
	documentCmd.AddCommand(documentApproveCmd)
	documentCmd.AddCommand(documentRejectCmd)
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentDutiesCmd)

	return documentCmd
}
