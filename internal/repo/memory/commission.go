package memory

import (
	"context"
	"sync"

	"procurement-bidding-api/internal/entity"
	"procurement-bidding-api/internal/repo"
	"procurement-bidding-api/internal/repo/repo_errors"

	"github.com/google/uuid"
)

type CommissionRepo struct {
	mu      sync.RWMutex
	records map[uuid.UUID]entity.CommissionRecord // keyed by bid id, 1:1
}

var _ repo.Commission = (*CommissionRepo)(nil)

func NewCommissionRepo() *CommissionRepo {
	return &CommissionRepo{
		records: make(map[uuid.UUID]entity.CommissionRecord),
	}
}

func (r *CommissionRepo) CreateCommission(ctx context.Context, rec *entity.CommissionRecord) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *rec
	stored.Id = uuid.New()
	r.records[stored.BidId] = stored

	return stored.Id, nil
}

func (r *CommissionRepo) GetCommissionByBidId(ctx context.Context, bidId string) (*entity.CommissionRecord, error) {
	uuidForm, err := uuid.Parse(bidId)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[uuidForm]
	if !ok {
		return &entity.CommissionRecord{}, repo_errors.ErrNotFound
	}

	return &rec, nil
}

func (r *CommissionRepo) UpdateCommission(ctx context.Context, rec *entity.CommissionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.records[rec.BidId]
	if !ok {
		return repo_errors.ErrNotFound
	}

	stored.DispatchedQty = rec.DispatchedQty
	stored.CommissionAmount = rec.CommissionAmount
	stored.PlatformNetRevenue = rec.PlatformNetRevenue
	stored.UpdatedAt = rec.UpdatedAt
	r.records[rec.BidId] = stored

	return nil
}
