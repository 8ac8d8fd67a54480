package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Quote is one bid line joined with its parent bid, the read model the L1
// ranking is computed from.
type Quote struct {
	BidItemId         uuid.UUID       `json:"bidItemId" db:"bid_item_id"`
	BidId             uuid.UUID       `json:"bidId" db:"bid_id"`
	SupplierId        uuid.UUID       `json:"supplierId" db:"supplier_id"`
	RequirementItemId uuid.UUID       `json:"requirementItemId" db:"requirement_item_id"`
	UnitPrice         decimal.Decimal `json:"unitPrice" db:"unit_price"`
	Quantity          decimal.Decimal `json:"quantity" db:"quantity"`
	BidStatus         string          `json:"bidStatus" db:"bid_status"`
	BidCreatedAt      time.Time       `json:"bidCreatedAt" db:"bid_created_at"`
}

// L1Result holds the ranking for a single requirement line item. Ranked is
// sorted ascending by unit price, earlier-submitted bid first on equal price;
// Lowest is nil when no bid quotes the line.
type L1Result struct {
	Item   RequirementItem
	Lowest *Quote
	Ranked []Quote
}

// controller models
type L1OutputModel struct {
	RequirementId string              `json:"requirementId"`
	Items         []L1ItemOutputModel `json:"items"`
}

type L1ItemOutputModel struct {
	RequirementItemId string             `json:"requirementItemId"`
	ItemName          string             `json:"itemName"`
	Quantity          string             `json:"quantity"`
	Unit              string             `json:"unit"`
	Lowest            *RankedQuoteModel  `json:"lowest"`
	Ranked            []RankedQuoteModel `json:"ranked"`
}

type RankedQuoteModel struct {
	Rank       int    `json:"rank"`
	BidId      string `json:"bidId"`
	BidItemId  string `json:"bidItemId"`
	SupplierId string `json:"supplierId"`
	UnitPrice  string `json:"unitPrice"`
	Quantity   string `json:"quantity"`
}
