package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"procurement-bidding-api/internal/common"
	"procurement-bidding-api/internal/entity"
	"procurement-bidding-api/internal/repo"
	"procurement-bidding-api/internal/repo/repo_errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BidRepo is an in-memory repo.Bid. Dispatch writes hold the same
// version-check contract as the Postgres compare-and-swap.
type BidRepo struct {
	mu    sync.RWMutex
	bids  map[uuid.UUID]entity.Bid
	items map[uuid.UUID][]entity.BidItem
}

var _ repo.Bid = (*BidRepo)(nil)

func NewBidRepo() *BidRepo {
	return &BidRepo{
		bids:  make(map[uuid.UUID]entity.Bid),
		items: make(map[uuid.UUID][]entity.BidItem),
	}
}

func (r *BidRepo) CreateBid(ctx context.Context, bid *entity.Bid, items []entity.BidItem) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bidId := uuid.New()
	stored := *bid
	stored.Id = bidId
	stored.CreatedAt = time.Now()
	r.bids[bidId] = stored

	storedItems := make([]entity.BidItem, 0, len(items))
	for _, item := range items {
		item.Id = uuid.New()
		item.BidId = bidId
		storedItems = append(storedItems, item)
	}
	r.items[bidId] = storedItems

	return bidId, nil
}

func (r *BidRepo) GetBidById(ctx context.Context, id string) (*entity.Bid, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	bid, ok := r.bids[uuidForm]
	if !ok {
		return &entity.Bid{}, repo_errors.ErrNotFound
	}

	return &bid, nil
}

func (r *BidRepo) GetBidItems(ctx context.Context, bidId string) ([]entity.BidItem, error) {
	uuidForm, err := uuid.Parse(bidId)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]entity.BidItem, 0)
	items = append(items, r.items[uuidForm]...)

	return items, nil
}

func (r *BidRepo) UpdateBidItems(ctx context.Context, bidId string, items []entity.BidItem) error {
	uuidForm, err := uuid.Parse(bidId)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	bid, ok := r.bids[uuidForm]
	if !ok {
		return repo_errors.ErrNotFound
	}

	stored := r.items[uuidForm]
	for _, item := range items {
		found := false
		for i := range stored {
			if stored[i].RequirementItemId == item.RequirementItemId {
				stored[i].UnitPrice = item.UnitPrice
				stored[i].Quantity = item.Quantity
				stored[i].Total = item.Total
				found = true
				break
			}
		}
		if !found {
			return repo_errors.ErrNotFound
		}
	}

	amount := decimal.Zero
	for _, item := range stored {
		amount = amount.Add(item.Total)
	}
	bid.BidAmount = amount
	bid.TotalAmount = amount
	bid.Version++
	r.bids[uuidForm] = bid
	r.items[uuidForm] = stored

	return nil
}

func (r *BidRepo) UpdateBidStatusById(ctx context.Context, id string, newStatus string) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	bid, ok := r.bids[uuidForm]
	if !ok {
		return repo_errors.ErrNotFound
	}

	bid.Status = newStatus
	r.bids[uuidForm] = bid

	return nil
}

func (r *BidRepo) GetBidsForRequirement(ctx context.Context, requirementId string, pg *entity.PaginationInput) ([]entity.Bid, error) {
	uuidForm, err := uuid.Parse(requirementId)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	bids := make([]entity.Bid, 0)
	for _, bid := range r.bids {
		if bid.RequirementId == uuidForm {
			bids = append(bids, bid)
		}
	}

	return paginateBids(sortBidsByCreation(bids), pg), nil
}

func (r *BidRepo) GetSupplierBids(ctx context.Context, supplierId string, pg *entity.PaginationInput) ([]entity.Bid, error) {
	uuidForm, err := uuid.Parse(supplierId)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	bids := make([]entity.Bid, 0)
	for _, bid := range r.bids {
		if bid.SupplierId == uuidForm {
			bids = append(bids, bid)
		}
	}

	return paginateBids(sortBidsByCreation(bids), pg), nil
}

func (r *BidRepo) GetQuotesForRequirement(ctx context.Context, requirementId string) ([]entity.Quote, error) {
	uuidForm, err := uuid.Parse(requirementId)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	quotes := make([]entity.Quote, 0)
	for bidId, bid := range r.bids {
		if bid.RequirementId != uuidForm || bid.Status == common.BidRejected {
			continue
		}
		for _, item := range r.items[bidId] {
			quotes = append(quotes, entity.Quote{
				BidItemId:         item.Id,
				BidId:             bidId,
				SupplierId:        bid.SupplierId,
				RequirementItemId: item.RequirementItemId,
				UnitPrice:         item.UnitPrice,
				Quantity:          item.Quantity,
				BidStatus:         bid.Status,
				BidCreatedAt:      bid.CreatedAt,
			})
		}
	}

	return quotes, nil
}

func (r *BidRepo) ApplyDispatch(ctx context.Context, bidId string, version int, perItem map[uuid.UUID]decimal.Decimal, total decimal.Decimal) error {
	uuidForm, err := uuid.Parse(bidId)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	bid, ok := r.bids[uuidForm]
	if !ok {
		return repo_errors.ErrNotFound
	}
	if bid.Version != version {
		return repo_errors.ErrVersionConflict
	}

	stored := r.items[uuidForm]
	// All item ids must resolve before anything is written.
	for itemId := range perItem {
		found := false
		for i := range stored {
			if stored[i].Id == itemId {
				found = true
				break
			}
		}
		if !found {
			return repo_errors.ErrNotFound
		}
	}

	for itemId, qty := range perItem {
		for i := range stored {
			if stored[i].Id == itemId {
				stored[i].DispatchedQty = qty
				break
			}
		}
	}

	bid.DispatchedQty = total
	bid.Version++
	r.bids[uuidForm] = bid
	r.items[uuidForm] = stored

	return nil
}

func sortBidsByCreation(bids []entity.Bid) []entity.Bid {
	sort.SliceStable(bids, func(i, j int) bool {
		return bids[i].CreatedAt.Before(bids[j].CreatedAt)
	})

	return bids
}

func paginateBids(bids []entity.Bid, pg *entity.PaginationInput) []entity.Bid {
	if pg == nil {
		return bids
	}
	if pg.Offset >= len(bids) {
		return []entity.Bid{}
	}
	bids = bids[pg.Offset:]
	if pg.Limit > 0 && pg.Limit < len(bids) {
		bids = bids[:pg.Limit]
	}

	return bids
}
