package primary

import "context"

// TradeService manages trades and their lifecycle up to the
// shipment-eligible status.
type TradeService interface {
	// CreateTrade registers a new draft trade between two parties.
	CreateTrade(ctx context.Context, req CreateTradeRequest) (*Trade, error)

	// GetTrade retrieves a trade by ID.
	GetTrade(ctx context.Context, tradeID string) (*Trade, error)

	// ListTrades lists trades with optional filters.
	ListTrades(ctx context.Context, filters TradeFilters) ([]*Trade, error)

	// ContractTrade moves a draft trade to contracted, making it
	// shipment-eligible.
	ContractTrade(ctx context.Context, tradeID string) (*Trade, error)
}

// CreateTradeRequest carries the fields for trade creation.
type CreateTradeRequest struct {
	ExporterDID string
	ImporterDID string
	Commodity   string
	Incoterms   string
}

// TradeFilters contains filter options for listing trades.
type TradeFilters struct {
	Status string
	Party  string
}
