package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// db model
type Requirement struct {
	Id        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Status    string    `json:"status" db:"status"`
	BuyerId   uuid.UUID `json:"buyerId" db:"buyer_id"`
	Deadline  time.Time `json:"deadline" db:"deadline"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// db model
type RequirementItem struct {
	Id            uuid.UUID       `json:"id" db:"id"`
	RequirementId uuid.UUID       `json:"requirementId" db:"requirement_id"`
	ItemName      string          `json:"itemName" db:"item_name"`
	Quantity      decimal.Decimal `json:"quantity" db:"quantity"`
	Unit          string          `json:"unit" db:"unit"`
	Category      string          `json:"category" db:"category"`
}

// service + repo input model
type CreateRequirementInput struct {
	Title    string // given
	BuyerId  string // given
	Deadline time.Time
	Items    []CreateRequirementItemInput
	Status   string // should be set: "active"
	// Id UUID sets automatically
	// CreatedAt sets automatically
}

type CreateRequirementItemInput struct {
	ItemName string
	Quantity decimal.Decimal
	Unit     string
	Category string
}

// controller model
type RequirementOutputModel struct {
	Id        string                       `json:"id"`
	Title     string                       `json:"title"`
	Status    string                       `json:"status"`
	BuyerId   string                       `json:"buyerId"`
	Deadline  string                       `json:"deadline"`
	CreatedAt string                       `json:"createdAt"`
	Items     []RequirementItemOutputModel `json:"items"`
}

type RequirementItemOutputModel struct {
	Id       string `json:"id"`
	ItemName string `json:"itemName"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
	Category string `json:"category"`
}
