package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// db model, 1:1 with an accepted bid. Provisioned outside of this core at
// acceptance time; only the dispatch-driven recalculation mutates it here.
type CommissionRecord struct {
	Id                      uuid.UUID       `json:"id" db:"id"`
	BidId                   uuid.UUID       `json:"bidId" db:"bid_id"`
	PlatformFeePerUnit      decimal.Decimal `json:"platformFeePerUnit" db:"platform_fee_per_unit"`
	ReferralSharePercentage decimal.Decimal `json:"referralSharePercentage" db:"referral_share_percentage"`
	DispatchedQty           decimal.Decimal `json:"dispatchedQty" db:"dispatched_qty"`
	CommissionAmount        decimal.Decimal `json:"commissionAmount" db:"commission_amount"`
	PlatformNetRevenue      decimal.Decimal `json:"platformNetRevenue" db:"platform_net_revenue"`
	UpdatedAt               time.Time       `json:"updatedAt" db:"updated_at"`
}

// controller model
type CommissionOutputModel struct {
	Id                      string `json:"id"`
	BidId                   string `json:"bidId"`
	PlatformFeePerUnit      string `json:"platformFeePerUnit"`
	ReferralSharePercentage string `json:"referralSharePercentage"`
	DispatchedQty           string `json:"dispatchedQty"`
	CommissionAmount        string `json:"commissionAmount"`
	PlatformNetRevenue      string `json:"platformNetRevenue"`
	UpdatedAt               string `json:"updatedAt"`
}
