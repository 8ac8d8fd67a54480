package common

import "github.com/shopspring/decimal"

// Requirement lifecycle.
const (
	RequirementActive    = "active"
	RequirementAwarded   = "awarded"
	RequirementClosed    = "closed"
	RequirementCancelled = "cancelled"
)

// Bid lifecycle.
const (
	BidPending  = "pending"
	BidAccepted = "accepted"
	BidRejected = "rejected"
)

// Platform commission defaults, applied when a commission record carries no
// overrides of its own.
var (
	DefaultPlatformFeePerUnit      = decimal.NewFromInt(220)
	DefaultReferralSharePercentage = decimal.NewFromInt(20)
)

// QuantityScale is the maximum number of fractional digits accepted for
// quantities and dispatched quantities.
const QuantityScale = 2
