package models

// Trade status constants. A shipment may only be created for a trade
// that has reached the contracted status.
const (
	TradeStatusDraft      = "draft"
	TradeStatusContracted = "contracted"
	TradeStatusClosed     = "closed"
)
