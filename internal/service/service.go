package service

import (
	"context"
	"procurement-bidding-api/internal/entity"
	"procurement-bidding-api/internal/metrics"
	"procurement-bidding-api/internal/repo"
	"procurement-bidding-api/pkg/logger"

	"github.com/shopspring/decimal"
)

type Diagnostics interface {
	Ping() error
}

type Requirement interface {
	CreateRequirement(ctx context.Context, input *entity.CreateRequirementInput) (*entity.RequirementOutputModel, error)
	GetRequirementById(ctx context.Context, requirementId string) (*entity.RequirementOutputModel, error)
	UpdateRequirementStatusById(ctx context.Context, requirementId string, newStatus string) (*entity.RequirementOutputModel, error)
}

type Bid interface {
	SubmitBid(ctx context.Context, input *entity.SubmitBidInput) (*entity.BidOutputModel, error)
	UpdateBid(ctx context.Context, bidId string, items []entity.BidItemInput) (*entity.BidOutputModel, error)
	UpdateBidStatusById(ctx context.Context, bidId string, newStatus string) (*entity.BidOutputModel, error)

	GetBidById(ctx context.Context, bidId string) (*entity.BidOutputModel, error)
	GetBidsForRequirement(ctx context.Context, requirementId string, pg *entity.PaginationInput) ([]entity.BidOutputModel, error)
	GetSupplierBids(ctx context.Context, supplierId string, pg *entity.PaginationInput) ([]entity.BidOutputModel, error)
}

type L1 interface {
	ComputeL1(ctx context.Context, requirementId string) (*entity.L1OutputModel, error)
}

type Dispatch interface {
	RecordDispatch(ctx context.Context, bidId string, perItem map[string]decimal.Decimal, closeRequirement bool) (*entity.BidOutputModel, error)
	RecordDispatchSingle(ctx context.Context, bidId string, qty decimal.Decimal, closeRequirement bool) (*entity.BidOutputModel, error)
}

type Commission interface {
	Recalculate(ctx context.Context, bidId string, totalDispatchedQty decimal.Decimal) (*entity.CommissionOutputModel, error)
	RecalculateFromBid(ctx context.Context, bidId string) (*entity.CommissionOutputModel, error)
	GetCommissionByBidId(ctx context.Context, bidId string) (*entity.CommissionOutputModel, error)
}

type Services struct {
	Diagnostics Diagnostics
	Requirement Requirement
	Bid         Bid
	L1          L1
	Dispatch    Dispatch
	Commission  Commission
}

func NewServices(repos *repo.Repositories, log logger.Logger, m *metrics.Metrics) *Services {
	commission := NewCommissionService(repos, log, m)

	return &Services{
		Diagnostics: NewDiagnosticsService(repos),
		Requirement: NewRequirementService(repos),
		Bid:         NewBidService(repos, log, m),
		L1:          NewL1Service(repos),
		Dispatch:    NewDispatchService(repos, commission, log, m),
		Commission:  commission,
	}
}
