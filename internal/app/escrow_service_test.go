package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/tradeflow/internal/core/faults"
	"github.com/example/tradeflow/internal/models"
	"github.com/example/tradeflow/internal/ports/primary"
	"github.com/example/tradeflow/internal/ports/secondary"
)

func newEscrowFixture() (*EscrowServiceImpl, *mockShipmentRepository, *mockDocumentRepository, *mockEscrowRepository, *mockLedgerClient) {
	shipmentRepo := newMockShipmentRepository()
	documentRepo := newMockDocumentRepository()
	escrowRepo := newMockEscrowRepository()
	ledger := &mockLedgerClient{}
	svc := NewEscrowService(escrowRepo, shipmentRepo, documentRepo, ledger, NewShipmentLocker())
	return svc, shipmentRepo, documentRepo, escrowRepo, ledger
}

func seedEscrow(repo *mockEscrowRepository, shipmentID, state string, deposited float64) {
	repo.escrows[shipmentID] = &secondary.EscrowRecord{
		ShipmentID: shipmentID,
		Address:    "0xescrow0001",
		State:      state,
		Deposited:  deposited,
	}
}

// seedCompletedShipment plants a CONFIRMED shipment with every phase's
// required documents approved, ready for funds release.
func seedCompletedShipment(shipmentRepo *mockShipmentRepository, documentRepo *mockDocumentRepository, id string) {
	seedShipment(shipmentRepo, id, "CONFIRMED")
	approveEvaluations(shipmentRepo, id, "details", "sample", "quality")
	for _, p := range models.OrderedPhases() {
		for _, dt := range requiredTypesFor(p) {
			seedApprovedDocument(documentRepo, id, p, dt, exporterDID)
		}
	}
}

func requiredTypesFor(p models.ShipmentPhase) []models.DocumentType {
	switch p {
	case models.Phase1:
		return []models.DocumentType{models.DocShippingInstructions, models.DocShippingNote}
	case models.Phase2:
		return []models.DocumentType{models.DocBookingConfirmation, models.DocCargoCollectionOrder}
	case models.Phase3:
		return []models.DocumentType{models.DocExportInvoice, models.DocOriginCertificate}
	case models.Phase4:
		return []models.DocumentType{models.DocPhytosanitaryCertificate, models.DocWeightCertificate, models.DocBillOfLading}
	case models.Phase5:
		return []models.DocumentType{models.DocInsuranceCertificate, models.DocContainerProofOfDelivery}
	}
	return nil
}

func TestDetermineEscrow(t *testing.T) {
	t.Run("creates ACTIVE account at ledger address", func(t *testing.T) {
		svc, shipmentRepo, _, escrowRepo, ledger := newEscrowFixture()
		seedShipment(shipmentRepo, "SHIP-001", "APPROVAL")

		acct, err := svc.DetermineEscrow(context.Background(), primary.EscrowRequest{
			ShipmentID:  "SHIP-001",
			ActingParty: importerRef,
		})
		if err != nil {
			t.Fatalf("DetermineEscrow failed: %v", err)
		}
		if acct.State != models.EscrowActive {
			t.Errorf("expected ACTIVE, got %s", acct.State)
		}
		if acct.Address == "" {
			t.Error("expected ledger-assigned escrow address")
		}
		if len(ledger.calls) != 1 || ledger.calls[0].Method != secondary.LedgerMethodDetermineEscrow {
			t.Errorf("expected one determine_escrow ledger call, got %v", ledger.calls)
		}
		if escrowRepo.escrows["SHIP-001"] == nil {
			t.Error("expected escrow record stored")
		}
	})

	t.Run("cannot determine twice", func(t *testing.T) {
		svc, shipmentRepo, _, escrowRepo, _ := newEscrowFixture()
		seedShipment(shipmentRepo, "SHIP-001", "APPROVAL")
		seedEscrow(escrowRepo, "SHIP-001", "ACTIVE", 0)

		_, err := svc.DetermineEscrow(context.Background(), primary.EscrowRequest{
			ShipmentID:  "SHIP-001",
			ActingParty: importerRef,
		})
		if !errors.Is(err, faults.ErrInvalidTransition) {
			t.Errorf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("ledger failure leaves no record", func(t *testing.T) {
		svc, shipmentRepo, _, escrowRepo, ledger := newEscrowFixture()
		seedShipment(shipmentRepo, "SHIP-001", "APPROVAL")
		ledger.submitErr = errors.New("chain unavailable")

		_, err := svc.DetermineEscrow(context.Background(), primary.EscrowRequest{
			ShipmentID:  "SHIP-001",
			ActingParty: importerRef,
		})
		if !errors.Is(err, faults.ErrExternalCall) {
			t.Errorf("expected ErrExternalCall, got %v", err)
		}
		if len(escrowRepo.escrows) != 0 {
			t.Error("expected no escrow record after ledger failure")
		}
	})
}

func TestDepositFunds(t *testing.T) {
	t.Run("fails before escrow is determined", func(t *testing.T) {
		svc, shipmentRepo, _, _, ledger := newEscrowFixture()
		seedShipment(shipmentRepo, "SHIP-001", "APPROVAL")

		_, err := svc.DepositFunds(context.Background(), primary.FundsRequest{
			ShipmentID:  "SHIP-001",
			Amount:      10000,
			ActingParty: importerRef,
		})
		if !errors.Is(err, faults.ErrEscrowNotDetermined) {
			t.Errorf("expected ErrEscrowNotDetermined, got %v", err)
		}
		if len(ledger.calls) != 0 {
			t.Errorf("ledger must not be called on a denied deposit, got %v", ledger.calls)
		}
	})

	t.Run("accumulates deposits", func(t *testing.T) {
		svc, _, _, escrowRepo, ledger := newEscrowFixture()
		seedEscrow(escrowRepo, "SHIP-001", "ACTIVE", 5000)

		acct, err := svc.DepositFunds(context.Background(), primary.FundsRequest{
			ShipmentID:  "SHIP-001",
			Amount:      2500,
			ActingParty: importerRef,
		})
		if err != nil {
			t.Fatalf("DepositFunds failed: %v", err)
		}
		if acct.Deposited != 7500 {
			t.Errorf("expected deposited 7500, got %f", acct.Deposited)
		}
		if len(ledger.calls) != 1 || ledger.calls[0].Method != secondary.LedgerMethodDeposit {
			t.Errorf("expected one deposit ledger call, got %v", ledger.calls)
		}
		if ledger.calls[0].Amount != 2500 {
			t.Errorf("expected ledger amount 2500, got %f", ledger.calls[0].Amount)
		}
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		svc, _, _, escrowRepo, _ := newEscrowFixture()
		seedEscrow(escrowRepo, "SHIP-001", "ACTIVE", 0)

		_, err := svc.DepositFunds(context.Background(), primary.FundsRequest{
			ShipmentID:  "SHIP-001",
			Amount:      0,
			ActingParty: importerRef,
		})
		if err == nil {
			t.Fatal("expected error for zero amount")
		}
	})

	t.Run("locked escrow rejects deposits", func(t *testing.T) {
		svc, _, _, escrowRepo, _ := newEscrowFixture()
		seedEscrow(escrowRepo, "SHIP-001", "LOCKED", 5000)

		_, err := svc.DepositFunds(context.Background(), primary.FundsRequest{
			ShipmentID:  "SHIP-001",
			Amount:      100,
			ActingParty: importerRef,
		})
		if !errors.Is(err, faults.ErrInvalidTransition) {
			t.Errorf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("ledger failure leaves balance unchanged", func(t *testing.T) {
		svc, _, _, escrowRepo, ledger := newEscrowFixture()
		seedEscrow(escrowRepo, "SHIP-001", "ACTIVE", 5000)
		ledger.submitErr = errors.New("chain unavailable")

		_, err := svc.DepositFunds(context.Background(), primary.FundsRequest{
			ShipmentID:  "SHIP-001",
			Amount:      2500,
			ActingParty: importerRef,
		})
		if !errors.Is(err, faults.ErrExternalCall) {
			t.Errorf("expected ErrExternalCall, got %v", err)
		}
		if escrowRepo.escrows["SHIP-001"].Deposited != 5000 {
			t.Errorf("expected deposited unchanged at 5000, got %f", escrowRepo.escrows["SHIP-001"].Deposited)
		}
	})
}

func TestLockUnlockFunds(t *testing.T) {
	t.Run("lock then unlock round trip", func(t *testing.T) {
		svc, _, _, escrowRepo, ledger := newEscrowFixture()
		seedEscrow(escrowRepo, "SHIP-001", "ACTIVE", 5000)

		locked, err := svc.LockFunds(context.Background(), primary.EscrowRequest{
			ShipmentID:  "SHIP-001",
			ActingParty: importerRef,
		})
		if err != nil {
			t.Fatalf("LockFunds failed: %v", err)
		}
		if locked.State != models.EscrowLocked {
			t.Errorf("expected LOCKED, got %s", locked.State)
		}

		unlocked, err := svc.UnlockFunds(context.Background(), primary.EscrowRequest{
			ShipmentID:  "SHIP-001",
			ActingParty: importerRef,
		})
		if err != nil {
			t.Fatalf("UnlockFunds failed: %v", err)
		}
		if unlocked.State != models.EscrowActive {
			t.Errorf("expected ACTIVE, got %s", unlocked.State)
		}
		if len(ledger.calls) != 2 {
			t.Errorf("expected 2 ledger calls, got %d", len(ledger.calls))
		}
	})

	t.Run("cannot unlock an active escrow", func(t *testing.T) {
		svc, _, _, escrowRepo, _ := newEscrowFixture()
		seedEscrow(escrowRepo, "SHIP-001", "ACTIVE", 0)

		_, err := svc.UnlockFunds(context.Background(), primary.EscrowRequest{
			ShipmentID:  "SHIP-001",
			ActingParty: importerRef,
		})
		if !errors.Is(err, faults.ErrInvalidTransition) {
			t.Errorf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("cannot lock an undetermined escrow", func(t *testing.T) {
		svc, _, _, _, _ := newEscrowFixture()

		_, err := svc.LockFunds(context.Background(), primary.EscrowRequest{
			ShipmentID:  "SHIP-001",
			ActingParty: importerRef,
		})
		if !errors.Is(err, faults.ErrEscrowNotDetermined) {
			t.Errorf("expected ErrEscrowNotDetermined, got %v", err)
		}
	})
}

func TestReleaseFunds(t *testing.T) {
	t.Run("releases and closes on completed shipment", func(t *testing.T) {
		svc, shipmentRepo, documentRepo, escrowRepo, ledger := newEscrowFixture()
		seedCompletedShipment(shipmentRepo, documentRepo, "SHIP-001")
		seedEscrow(escrowRepo, "SHIP-001", "ACTIVE", 48000)

		acct, err := svc.ReleaseFunds(context.Background(), primary.EscrowRequest{
			ShipmentID:  "SHIP-001",
			ActingParty: exporterRef,
		})
		if err != nil {
			t.Fatalf("ReleaseFunds failed: %v", err)
		}
		if acct.State != models.EscrowClosed {
			t.Errorf("expected CLOSED, got %s", acct.State)
		}
		if acct.Withdrawable != 48000 {
			t.Errorf("expected withdrawable 48000, got %f", acct.Withdrawable)
		}
		if len(ledger.calls) != 1 || ledger.calls[0].Method != secondary.LedgerMethodRelease {
			t.Errorf("expected one release ledger call, got %v", ledger.calls)
		}
	})

	t.Run("requires CONFIRMED phase", func(t *testing.T) {
		svc, shipmentRepo, _, escrowRepo, _ := newEscrowFixture()
		seedShipment(shipmentRepo, "SHIP-001", "PHASE_5")
		seedEscrow(escrowRepo, "SHIP-001", "ACTIVE", 48000)

		_, err := svc.ReleaseFunds(context.Background(), primary.EscrowRequest{
			ShipmentID:  "SHIP-001",
			ActingParty: exporterRef,
		})
		if !errors.Is(err, faults.ErrPhaseLocked) {
			t.Errorf("expected ErrPhaseLocked, got %v", err)
		}
	})

	t.Run("requires every document approved", func(t *testing.T) {
		svc, shipmentRepo, documentRepo, escrowRepo, _ := newEscrowFixture()
		seedCompletedShipment(shipmentRepo, documentRepo, "SHIP-001")
		seedEscrow(escrowRepo, "SHIP-001", "ACTIVE", 48000)
		// Knock one document back to rejected
		documentRepo.docs[0].Status = "NOT_APPROVED"

		_, err := svc.ReleaseFunds(context.Background(), primary.EscrowRequest{
			ShipmentID:  "SHIP-001",
			ActingParty: exporterRef,
		})
		if !errors.Is(err, faults.ErrPhaseLocked) {
			t.Errorf("expected ErrPhaseLocked, got %v", err)
		}
	})

	t.Run("cannot release twice", func(t *testing.T) {
		svc, shipmentRepo, documentRepo, escrowRepo, _ := newEscrowFixture()
		seedCompletedShipment(shipmentRepo, documentRepo, "SHIP-001")
		seedEscrow(escrowRepo, "SHIP-001", "CLOSED", 48000)

		_, err := svc.ReleaseFunds(context.Background(), primary.EscrowRequest{
			ShipmentID:  "SHIP-001",
			ActingParty: exporterRef,
		})
		if !errors.Is(err, faults.ErrInvalidTransition) {
			t.Errorf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("ledger failure keeps escrow open", func(t *testing.T) {
		svc, shipmentRepo, documentRepo, escrowRepo, ledger := newEscrowFixture()
		seedCompletedShipment(shipmentRepo, documentRepo, "SHIP-001")
		seedEscrow(escrowRepo, "SHIP-001", "ACTIVE", 48000)
		ledger.submitErr = errors.New("chain unavailable")

		_, err := svc.ReleaseFunds(context.Background(), primary.EscrowRequest{
			ShipmentID:  "SHIP-001",
			ActingParty: exporterRef,
		})
		if !errors.Is(err, faults.ErrExternalCall) {
			t.Errorf("expected ErrExternalCall, got %v", err)
		}
		if escrowRepo.escrows["SHIP-001"].State != "ACTIVE" {
			t.Errorf("expected escrow still ACTIVE, got %s", escrowRepo.escrows["SHIP-001"].State)
		}
	})
}
