package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// db model
type Bid struct {
	Id            uuid.UUID       `json:"id" db:"id"`
	RequirementId uuid.UUID       `json:"requirementId" db:"requirement_id"`
	SupplierId    uuid.UUID       `json:"supplierId" db:"supplier_id"`
	BidAmount     decimal.Decimal `json:"bidAmount" db:"bid_amount"`
	TotalAmount   decimal.Decimal `json:"totalAmount" db:"total_amount"`
	DispatchedQty decimal.Decimal `json:"dispatchedQty" db:"dispatched_qty"`
	Status        string          `json:"status" db:"status"`
	Version       int             `json:"version" db:"version"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
}

// db model
type BidItem struct {
	Id                uuid.UUID       `json:"id" db:"id"`
	BidId             uuid.UUID       `json:"bidId" db:"bid_id"`
	RequirementItemId uuid.UUID       `json:"requirementItemId" db:"requirement_item_id"`
	UnitPrice         decimal.Decimal `json:"unitPrice" db:"unit_price"`
	Quantity          decimal.Decimal `json:"quantity" db:"quantity"`
	Total             decimal.Decimal `json:"total" db:"total"`
	DispatchedQty     decimal.Decimal `json:"dispatchedQty" db:"dispatched_qty"`
}

// service input model; the ledger derives status, version and all amounts
type SubmitBidInput struct {
	RequirementId string // given
	SupplierId    string // given
	Items         []BidItemInput
}

type BidItemInput struct {
	RequirementItemId string
	UnitPrice         decimal.Decimal
	Quantity          decimal.Decimal
}

// controller model
type BidOutputModel struct {
	Id            string               `json:"id"`
	RequirementId string               `json:"requirementId"`
	SupplierId    string               `json:"supplierId"`
	BidAmount     string               `json:"bidAmount"`
	DispatchedQty string               `json:"dispatchedQty"`
	Status        string               `json:"status"`
	Version       int                  `json:"version"`
	CreatedAt     string               `json:"createdAt"`
	Items         []BidItemOutputModel `json:"items,omitempty"`
}

type BidItemOutputModel struct {
	Id                string `json:"id"`
	RequirementItemId string `json:"requirementItemId"`
	UnitPrice         string `json:"unitPrice"`
	Quantity          string `json:"quantity"`
	Total             string `json:"total"`
	DispatchedQty     string `json:"dispatchedQty"`
}
