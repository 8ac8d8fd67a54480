package repo

import (
	"context"
	"procurement-bidding-api/internal/entity"
	"procurement-bidding-api/pkg/postgres"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"procurement-bidding-api/internal/repo/pgdb"
)

type Diagnostics interface {
	Ping() error
}

type Requirement interface {
	CreateRequirement(ctx context.Context, input *entity.CreateRequirementInput) (uuid.UUID, error)
	GetRequirementById(ctx context.Context, id string) (*entity.Requirement, error)
	GetRequirementItems(ctx context.Context, requirementId string) ([]entity.RequirementItem, error)
	UpdateRequirementStatusById(ctx context.Context, id string, newStatus string) error
}

type Bid interface {
	CreateBid(ctx context.Context, bid *entity.Bid, items []entity.BidItem) (uuid.UUID, error)
	GetBidById(ctx context.Context, id string) (*entity.Bid, error)
	GetBidItems(ctx context.Context, bidId string) ([]entity.BidItem, error)
	UpdateBidItems(ctx context.Context, bidId string, items []entity.BidItem) error
	UpdateBidStatusById(ctx context.Context, id string, newStatus string) error
	GetBidsForRequirement(ctx context.Context, requirementId string, pg *entity.PaginationInput) ([]entity.Bid, error)
	GetSupplierBids(ctx context.Context, supplierId string, pg *entity.PaginationInput) ([]entity.Bid, error)
	GetQuotesForRequirement(ctx context.Context, requirementId string) ([]entity.Quote, error)
	// ApplyDispatch writes every bid item dispatched quantity plus the derived
	// bid aggregate as one transaction, compare-and-swapped on the bid row
	// version. Returns repo_errors.ErrVersionConflict when another writer got
	// there first.
	ApplyDispatch(ctx context.Context, bidId string, version int, perItem map[uuid.UUID]decimal.Decimal, total decimal.Decimal) error
}

type Commission interface {
	CreateCommission(ctx context.Context, rec *entity.CommissionRecord) (uuid.UUID, error)
	GetCommissionByBidId(ctx context.Context, bidId string) (*entity.CommissionRecord, error)
	UpdateCommission(ctx context.Context, rec *entity.CommissionRecord) error
}

type Repositories struct {
	Diagnostics
	Requirement
	Bid
	Commission
}

func NewRepositories(p *postgres.Postgres) *Repositories {
	return &Repositories{
		Diagnostics: pgdb.NewDiagnosticsRepo(p),
		Requirement: pgdb.NewRequirementRepo(p),
		Bid:         pgdb.NewBidRepo(p),
		Commission:  pgdb.NewCommissionRepo(p),
	}
}
