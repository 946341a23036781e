package app

import (
	"context"
	"fmt"

	"github.com/example/tradeflow/internal/ports/primary"
	"github.com/example/tradeflow/internal/ports/secondary"
)

// TradeServiceImpl implements the TradeService interface.
type TradeServiceImpl struct {
	tradeRepo secondary.TradeRepository
	partyRepo secondary.PartyRepository
}

// NewTradeService creates a new TradeService with injected dependencies.
func NewTradeService(tradeRepo secondary.TradeRepository, partyRepo secondary.PartyRepository) *TradeServiceImpl {
	return &TradeServiceImpl{tradeRepo: tradeRepo, partyRepo: partyRepo}
}

// CreateTrade registers a new draft trade between two registered parties.
func (s *TradeServiceImpl) CreateTrade(ctx context.Context, req primary.CreateTradeRequest) (*primary.Trade, error) {
	if req.Commodity == "" {
		return nil, fmt.Errorf("commodity is required")
	}

	// Both counterparties must be registered in the directory
	exporter, err := s.partyRepo.GetByDID(ctx, req.ExporterDID)
	if err != nil {
		return nil, fmt.Errorf("exporter %s not registered: %w", req.ExporterDID, err)
	}
	importer, err := s.partyRepo.GetByDID(ctx, req.ImporterDID)
	if err != nil {
		return nil, fmt.Errorf("importer %s not registered: %w", req.ImporterDID, err)
	}
	if exporter.Role != "EXPORTER" {
		return nil, fmt.Errorf("%s is registered as %s, not EXPORTER", exporter.DID, exporter.Role)
	}
	if importer.Role != "IMPORTER" {
		return nil, fmt.Errorf("%s is registered as %s, not IMPORTER", importer.DID, importer.Role)
	}

	nextID, err := s.tradeRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate trade ID: %w", err)
	}

	record := &secondary.TradeRecord{
		ID:          nextID,
		ExporterDID: req.ExporterDID,
		ImporterDID: req.ImporterDID,
		Commodity:   req.Commodity,
		Incoterms:   req.Incoterms,
	}
	if err := s.tradeRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create trade: %w", err)
	}

	created, err := s.tradeRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created trade: %w", err)
	}
	return recordToTrade(created), nil
}

// GetTrade retrieves a trade by ID.
func (s *TradeServiceImpl) GetTrade(ctx context.Context, tradeID string) (*primary.Trade, error) {
	record, err := s.tradeRepo.GetByID(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	return recordToTrade(record), nil
}

// ListTrades lists trades with optional filters.
func (s *TradeServiceImpl) ListTrades(ctx context.Context, filters primary.TradeFilters) ([]*primary.Trade, error) {
	records, err := s.tradeRepo.List(ctx, secondary.TradeFilters{
		Status: filters.Status,
		Party:  filters.Party,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}

	trades := make([]*primary.Trade, len(records))
	for i, r := range records {
		trades[i] = recordToTrade(r)
	}
	return trades, nil
}

// ContractTrade moves a draft trade to contracted.
func (s *TradeServiceImpl) ContractTrade(ctx context.Context, tradeID string) (*primary.Trade, error) {
	record, err := s.tradeRepo.GetByID(ctx, tradeID)
	if err != nil {
		return nil, err
	}

	// Guard: only draft trades can be contracted
	if record.Status != "draft" {
		return nil, fmt.Errorf("can only contract draft trades (current status: %s)", record.Status)
	}

	if err := s.tradeRepo.UpdateStatus(ctx, tradeID, "contracted"); err != nil {
		return nil, err
	}

	updated, err := s.tradeRepo.GetByID(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	return recordToTrade(updated), nil
}

func recordToTrade(r *secondary.TradeRecord) *primary.Trade {
	return &primary.Trade{
		ID:          r.ID,
		ExporterDID: r.ExporterDID,
		ImporterDID: r.ImporterDID,
		Commodity:   r.Commodity,
		Incoterms:   r.Incoterms,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// Ensure TradeServiceImpl implements the interface
var _ primary.TradeService = (*TradeServiceImpl)(nil)
