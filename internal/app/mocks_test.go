package app

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/example/tradeflow/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockShipmentRepository implements secondary.ShipmentRepository for testing.
type mockShipmentRepository struct {
	shipments         map[string]*secondary.ShipmentRecord
	tradeExistsResult bool
	getErr            error
	updatePhaseErr    error
	phaseUpdates      []string // record of phases set, for monotonicity checks
}

func newMockShipmentRepository() *mockShipmentRepository {
	return &mockShipmentRepository{
		shipments:         make(map[string]*secondary.ShipmentRecord),
		tradeExistsResult: true,
	}
}

func (m *mockShipmentRepository) Create(ctx context.Context, s *secondary.ShipmentRecord) error {
	rec := *s
	if rec.Phase == "" {
		rec.Phase = "APPROVAL"
	}
	if rec.DetailsEvaluation == "" {
		rec.DetailsEvaluation = "NOT_EVALUATED"
	}
	if rec.SampleEvaluation == "" {
		rec.SampleEvaluation = "NOT_EVALUATED"
	}
	if rec.QualityEvaluation == "" {
		rec.QualityEvaluation = "NOT_EVALUATED"
	}
	m.shipments[rec.ID] = &rec
	return nil
}

func (m *mockShipmentRepository) GetByID(ctx context.Context, id string) (*secondary.ShipmentRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if s, ok := m.shipments[id]; ok {
		copy := *s
		return &copy, nil
	}
	return nil, fmt.Errorf("shipment %s not found", id)
}

func (m *mockShipmentRepository) List(ctx context.Context, filters secondary.ShipmentFilters) ([]*secondary.ShipmentRecord, error) {
	var result []*secondary.ShipmentRecord
	for _, s := range m.shipments {
		if filters.TradeID != "" && s.TradeID != filters.TradeID {
			continue
		}
		if filters.Phase != "" && s.Phase != filters.Phase {
			continue
		}
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockShipmentRepository) UpdateTerms(ctx context.Context, id string, terms *secondary.ShipmentTerms) error {
	s, ok := m.shipments[id]
	if !ok {
		return fmt.Errorf("shipment %s not found", id)
	}
	s.ShipmentNumber = terms.ShipmentNumber
	s.ExpirationDate = terms.ExpirationDate
	s.FixingDate = terms.FixingDate
	s.TargetExchange = terms.TargetExchange
	s.DifferentialApplied = terms.DifferentialApplied
	s.Price = terms.Price
	s.Quantity = terms.Quantity
	s.ContainersNumber = terms.ContainersNumber
	s.NetWeight = terms.NetWeight
	s.GrossWeight = terms.GrossWeight
	s.DetailsEvaluation = "NOT_EVALUATED"
	return nil
}

func (m *mockShipmentRepository) UpdateEvaluation(ctx context.Context, id, field, status string) error {
	s, ok := m.shipments[id]
	if !ok {
		return fmt.Errorf("shipment %s not found", id)
	}
	switch field {
	case "details":
		s.DetailsEvaluation = status
	case "sample":
		s.SampleEvaluation = status
	case "quality":
		s.QualityEvaluation = status
	default:
		return fmt.Errorf("unknown evaluation field %s", field)
	}
	return nil
}

func (m *mockShipmentRepository) UpdatePhase(ctx context.Context, id, phase string) error {
	if m.updatePhaseErr != nil {
		return m.updatePhaseErr
	}
	s, ok := m.shipments[id]
	if !ok {
		return fmt.Errorf("shipment %s not found", id)
	}
	s.Phase = phase
	m.phaseUpdates = append(m.phaseUpdates, phase)
	return nil
}

func (m *mockShipmentRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("SHIP-%03d", len(m.shipments)+1), nil
}

func (m *mockShipmentRepository) TradeExists(ctx context.Context, tradeID string) (bool, error) {
	return m.tradeExistsResult, nil
}

var _ secondary.ShipmentRepository = (*mockShipmentRepository)(nil)

// mockDocumentRepository implements secondary.DocumentRepository for testing.
type mockDocumentRepository struct {
	docs      []*secondary.DocumentRecord
	createErr error
}

func newMockDocumentRepository() *mockDocumentRepository {
	return &mockDocumentRepository{}
}

func (m *mockDocumentRepository) Create(ctx context.Context, d *secondary.DocumentRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	rec := *d
	if rec.Status == "" {
		rec.Status = "NOT_EVALUATED"
	}
	m.docs = append(m.docs, &rec)
	return nil
}

func (m *mockDocumentRepository) GetByID(ctx context.Context, id string) (*secondary.DocumentRecord, error) {
	for _, d := range m.docs {
		if d.ID == id {
			copy := *d
			return &copy, nil
		}
	}
	return nil, fmt.Errorf("document %s not found", id)
}

func (m *mockDocumentRepository) GetActive(ctx context.Context, shipmentID, phase, documentType string) (*secondary.DocumentRecord, error) {
	for _, d := range m.docs {
		if !d.Superseded && d.ShipmentID == shipmentID && d.Phase == phase && d.DocumentType == documentType {
			copy := *d
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *mockDocumentRepository) ListActive(ctx context.Context, shipmentID string) ([]*secondary.DocumentRecord, error) {
	var result []*secondary.DocumentRecord
	for _, d := range m.docs {
		if !d.Superseded && d.ShipmentID == shipmentID {
			result = append(result, d)
		}
	}
	return result, nil
}

func (m *mockDocumentRepository) ListHistory(ctx context.Context, shipmentID string) ([]*secondary.DocumentRecord, error) {
	var result []*secondary.DocumentRecord
	for _, d := range m.docs {
		if d.ShipmentID == shipmentID {
			result = append(result, d)
		}
	}
	return result, nil
}

func (m *mockDocumentRepository) Supersede(ctx context.Context, id string) error {
	for _, d := range m.docs {
		if d.ID == id {
			d.Superseded = true
			return nil
		}
	}
	return fmt.Errorf("document %s not found", id)
}

func (m *mockDocumentRepository) UpdateStatus(ctx context.Context, id, status string) error {
	for _, d := range m.docs {
		if d.ID == id {
			d.Status = status
			return nil
		}
	}
	return fmt.Errorf("document %s not found", id)
}

var _ secondary.DocumentRepository = (*mockDocumentRepository)(nil)

// mockEscrowRepository implements secondary.EscrowRepository for testing.
type mockEscrowRepository struct {
	escrows map[string]*secondary.EscrowRecord
}

func newMockEscrowRepository() *mockEscrowRepository {
	return &mockEscrowRepository{escrows: make(map[string]*secondary.EscrowRecord)}
}

func (m *mockEscrowRepository) Create(ctx context.Context, e *secondary.EscrowRecord) error {
	rec := *e
	if rec.State == "" {
		rec.State = "ACTIVE"
	}
	m.escrows[rec.ShipmentID] = &rec
	return nil
}

func (m *mockEscrowRepository) GetByShipment(ctx context.Context, shipmentID string) (*secondary.EscrowRecord, error) {
	if e, ok := m.escrows[shipmentID]; ok {
		copy := *e
		return &copy, nil
	}
	return nil, nil
}

func (m *mockEscrowRepository) UpdateState(ctx context.Context, shipmentID, state string) error {
	e, ok := m.escrows[shipmentID]
	if !ok {
		return fmt.Errorf("escrow for %s not found", shipmentID)
	}
	e.State = state
	return nil
}

func (m *mockEscrowRepository) UpdateAmounts(ctx context.Context, shipmentID string, deposited, withdrawable float64) error {
	e, ok := m.escrows[shipmentID]
	if !ok {
		return fmt.Errorf("escrow for %s not found", shipmentID)
	}
	e.Deposited = deposited
	e.Withdrawable = withdrawable
	return nil
}

var _ secondary.EscrowRepository = (*mockEscrowRepository)(nil)

// mockTradeRepository implements secondary.TradeRepository for testing.
type mockTradeRepository struct {
	trades map[string]*secondary.TradeRecord
}

func newMockTradeRepository() *mockTradeRepository {
	return &mockTradeRepository{trades: make(map[string]*secondary.TradeRecord)}
}

func (m *mockTradeRepository) Create(ctx context.Context, t *secondary.TradeRecord) error {
	rec := *t
	if rec.Status == "" {
		rec.Status = "draft"
	}
	m.trades[rec.ID] = &rec
	return nil
}

func (m *mockTradeRepository) GetByID(ctx context.Context, id string) (*secondary.TradeRecord, error) {
	if t, ok := m.trades[id]; ok {
		copy := *t
		return &copy, nil
	}
	return nil, fmt.Errorf("trade %s not found", id)
}

func (m *mockTradeRepository) List(ctx context.Context, filters secondary.TradeFilters) ([]*secondary.TradeRecord, error) {
	var result []*secondary.TradeRecord
	for _, t := range m.trades {
		if filters.Status != "" && t.Status != filters.Status {
			continue
		}
		if filters.Party != "" && t.ExporterDID != filters.Party && t.ImporterDID != filters.Party {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

func (m *mockTradeRepository) UpdateStatus(ctx context.Context, id, status string) error {
	t, ok := m.trades[id]
	if !ok {
		return fmt.Errorf("trade %s not found", id)
	}
	t.Status = status
	return nil
}

func (m *mockTradeRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("TRADE-%03d", len(m.trades)+1), nil
}

var _ secondary.TradeRepository = (*mockTradeRepository)(nil)

// mockPartyRepository implements secondary.PartyRepository for testing.
type mockPartyRepository struct {
	parties map[string]*secondary.PartyRecord
}

func newMockPartyRepository() *mockPartyRepository {
	return &mockPartyRepository{parties: make(map[string]*secondary.PartyRecord)}
}

func (m *mockPartyRepository) Create(ctx context.Context, p *secondary.PartyRecord) error {
	rec := *p
	m.parties[rec.DID] = &rec
	return nil
}

func (m *mockPartyRepository) GetByDID(ctx context.Context, did string) (*secondary.PartyRecord, error) {
	if p, ok := m.parties[did]; ok {
		copy := *p
		return &copy, nil
	}
	return nil, fmt.Errorf("party %s not found", did)
}

func (m *mockPartyRepository) List(ctx context.Context) ([]*secondary.PartyRecord, error) {
	var result []*secondary.PartyRecord
	for _, p := range m.parties {
		result = append(result, p)
	}
	return result, nil
}

var _ secondary.PartyRepository = (*mockPartyRepository)(nil)

// mockLedgerClient implements secondary.LedgerClient for testing.
type mockLedgerClient struct {
	calls     []secondary.ContractCall
	submitErr error
}

func (m *mockLedgerClient) Submit(ctx context.Context, call secondary.ContractCall) (*secondary.TransactionReceipt, error) {
	if m.submitErr != nil {
		return nil, m.submitErr
	}
	m.calls = append(m.calls, call)
	return &secondary.TransactionReceipt{
		TxHash:        fmt.Sprintf("0xtx%04d", len(m.calls)),
		EscrowAddress: "0xescrow0001",
	}, nil
}

var _ secondary.LedgerClient = (*mockLedgerClient)(nil)

// mockContentStore implements secondary.ContentStore for testing.
type mockContentStore struct {
	puts   int
	putErr error
}

func (m *mockContentStore) Put(ctx context.Context, content []byte, spec secondary.ResourceSpec) (string, error) {
	if m.putErr != nil {
		return "", m.putErr
	}
	m.puts++
	return fmt.Sprintf("ref-%04d", m.puts), nil
}

func (m *mockContentStore) Get(ctx context.Context, ref string) ([]byte, *secondary.ResourceSpec, error) {
	return nil, nil, errors.New("not implemented in mock")
}

var _ secondary.ContentStore = (*mockContentStore)(nil)
