// Package wire provides dependency injection for the tradeflow CLI.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"sync"

	"github.com/example/tradeflow/internal/adapters/content"
	"github.com/example/tradeflow/internal/adapters/directory"
	"github.com/example/tradeflow/internal/adapters/ledger"
	"github.com/example/tradeflow/internal/adapters/sqlite"
	"github.com/example/tradeflow/internal/app"
	"github.com/example/tradeflow/internal/db"
	"github.com/example/tradeflow/internal/ports/primary"
	"github.com/example/tradeflow/internal/ports/secondary"
)

var (
	tradeService     primary.TradeService
	shipmentService  primary.ShipmentService
	documentService  primary.DocumentService
	escrowService    primary.EscrowService
	identityResolver secondary.IdentityResolver
	partyRepo        secondary.PartyRepository
	once             sync.Once
)

// TradeService returns the singleton TradeService instance.
func TradeService() primary.TradeService {
	once.Do(initServices)
	return tradeService
}

// ShipmentService returns the singleton ShipmentService instance.
func ShipmentService() primary.ShipmentService {
	once.Do(initServices)
	return shipmentService
}

// DocumentService returns the singleton DocumentService instance.
func DocumentService() primary.DocumentService {
	once.Do(initServices)
	return documentService
}

// EscrowService returns the singleton EscrowService instance.
func EscrowService() primary.EscrowService {
	once.Do(initServices)
	return escrowService
}

// IdentityResolver returns the singleton IdentityResolver instance.
func IdentityResolver() secondary.IdentityResolver {
	once.Do(initServices)
	return identityResolver
}

// PartyRepository returns the singleton PartyRepository instance.
// The init and party commands register organizations directly.
func PartyRepository() secondary.PartyRepository {
	once.Do(initServices)
	return partyRepo
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Repository adapters (secondary ports) with injected DB
	tradeRepo := sqlite.NewTradeRepository(database)
	shipmentRepo := sqlite.NewShipmentRepository(database)
	documentRepo := sqlite.NewDocumentRepository(database)
	escrowRepo := sqlite.NewEscrowRepository(database)
	partyRepo = sqlite.NewPartyRepository(database)

	// External collaborators
	ledgerClient := ledger.NewSimulatedClient(database)

	contentRoot, err := content.DefaultRoot()
	if err != nil {
		log.Fatalf("failed to locate content directory: %v", err)
	}
	contentStore, err := content.NewFileStore(contentRoot)
	if err != nil {
		log.Fatalf("failed to initialize content store: %v", err)
	}

	identityResolver = directory.NewResolver(partyRepo)

	// One locker shared by every service so all mutating operations on a
	// shipment serialize on the same mutex
	locker := app.NewShipmentLocker()

	// Services (primary ports implementation)
	tradeService = app.NewTradeService(tradeRepo, partyRepo)
	shipmentService = app.NewShipmentService(shipmentRepo, documentRepo, escrowRepo, locker)
	documentService = app.NewDocumentService(documentRepo, shipmentRepo, escrowRepo, contentStore, locker)
	escrowService = app.NewEscrowService(escrowRepo, shipmentRepo, documentRepo, ledgerClient, locker)
}
