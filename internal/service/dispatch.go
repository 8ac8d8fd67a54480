package service

import (
	"context"
	"errors"
	"fmt"

	"procurement-bidding-api/internal/common"
	"procurement-bidding-api/internal/entity"
	"procurement-bidding-api/internal/metrics"
	"procurement-bidding-api/internal/repo"
	"procurement-bidding-api/internal/repo/repo_errors"
	"procurement-bidding-api/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DispatchService struct {
	bidRepo         repo.Bid
	requirementRepo repo.Requirement
	commission      Commission
	log             logger.Logger
	metrics         *metrics.Metrics
}

func NewDispatchService(repos *repo.Repositories, commission Commission, log logger.Logger, m *metrics.Metrics) *DispatchService {
	return &DispatchService{
		bidRepo:         repos.Bid,
		requirementRepo: repos.Requirement,
		commission:      commission,
		log:             log,
		metrics:         m,
	}
}

// RecordDispatch overwrites the dispatched quantities on a bid. Quantities
// are absolute values, not deltas, so replaying the same request leaves the
// bid unchanged. Lines absent from perItem keep their stored quantity. The
// write is guarded by the bid version; a losing writer gets a retryable
// conflict and nothing is persisted.
func (s *DispatchService) RecordDispatch(ctx context.Context, bidId string, perItem map[string]decimal.Decimal, closeRequirement bool) (*entity.BidOutputModel, error) {
	bid, err := s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, fmt.Errorf("bid %s: %w", bidId, ErrBidNotFound)
		}

		return nil, err
	}

	if bid.Status != common.BidAccepted {
		return nil, fmt.Errorf("bid %s is %s: %w", bidId, bid.Status, ErrBidNotAccepted)
	}

	items, err := s.bidRepo.GetBidItems(ctx, bidId)
	if err != nil {
		return nil, err
	}

	updates, total, err := resolveDispatch(items, perItem)
	if err != nil {
		s.metrics.IncDispatchEvent(metrics.DispatchRejected)

		return nil, err
	}

	if err = s.bidRepo.ApplyDispatch(ctx, bidId, bid.Version, updates, total); err != nil {
		if errors.Is(err, repo_errors.ErrVersionConflict) {
			s.metrics.IncDispatchEvent(metrics.DispatchConflict)

			return nil, fmt.Errorf("bid %s: %w", bidId, ErrDispatchConflict)
		}

		return nil, err
	}

	s.metrics.IncDispatchEvent(metrics.DispatchApplied)
	s.log.Infof("dispatch recorded for bid %s, total %s", bidId, total)

	// The dispatch write is already committed; a missing commission record
	// must not roll it back.
	if _, err = s.commission.Recalculate(ctx, bidId, total); err != nil {
		if !errors.Is(err, ErrCommissionRecordNotFound) {
			return nil, err
		}
	}

	if closeRequirement {
		err = s.requirementRepo.UpdateRequirementStatusById(ctx, bid.RequirementId.String(), common.RequirementClosed)
		if err != nil && !errors.Is(err, repo_errors.ErrNotFound) {
			return nil, err
		}
	}

	updated, err := s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		return nil, err
	}
	updatedItems, err := s.bidRepo.GetBidItems(ctx, bidId)
	if err != nil {
		return nil, err
	}

	return mapBidWithItems(updated, updatedItems), nil
}

// RecordDispatchSingle is the single-total form kept for one-line bids. On a
// multi-line bid the total cannot be attributed to a line, so the call is
// rejected instead of guessing.
func (s *DispatchService) RecordDispatchSingle(ctx context.Context, bidId string, qty decimal.Decimal, closeRequirement bool) (*entity.BidOutputModel, error) {
	if _, err := s.bidRepo.GetBidById(ctx, bidId); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, fmt.Errorf("bid %s: %w", bidId, ErrBidNotFound)
		}

		return nil, err
	}

	items, err := s.bidRepo.GetBidItems(ctx, bidId)
	if err != nil {
		return nil, err
	}

	if len(items) != 1 {
		return nil, fmt.Errorf("bid %s has %d items: %w", bidId, len(items), ErrSingleDispatchOnMultiItemBid)
	}

	perItem := map[string]decimal.Decimal{
		items[0].Id.String(): qty,
	}

	return s.RecordDispatch(ctx, bidId, perItem, closeRequirement)
}

// resolveDispatch validates the requested quantities against the bid lines
// and derives the new bid-level total as the sum over every line, mentioned
// or not. Keeping the aggregate equal to the sum of its lines is the one
// invariant this whole flow exists to protect.
func resolveDispatch(items []entity.BidItem, perItem map[string]decimal.Decimal) (map[uuid.UUID]decimal.Decimal, decimal.Decimal, error) {
	byId := make(map[uuid.UUID]*entity.BidItem, len(items))
	for i := range items {
		byId[items[i].Id] = &items[i]
	}

	updates := make(map[uuid.UUID]decimal.Decimal, len(perItem))
	for rawId, qty := range perItem {
		itemUuid, err := uuid.Parse(rawId)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("bid item `%s`: %w", rawId, ErrBidItemNotFound)
		}
		item, ok := byId[itemUuid]
		if !ok {
			return nil, decimal.Zero, fmt.Errorf("bid item %s: %w", itemUuid, ErrBidItemNotFound)
		}
		if qty.IsNegative() || !qty.Equal(qty.Round(common.QuantityScale)) {
			return nil, decimal.Zero, fmt.Errorf("bid item %s: %w", itemUuid, ErrInvalidDispatchQuantity)
		}
		if qty.GreaterThan(item.Quantity) {
			return nil, decimal.Zero, fmt.Errorf("bid item %s: %s > %s: %w",
				itemUuid, qty, item.Quantity, ErrDispatchExceedsCommitted)
		}
		updates[itemUuid] = qty
	}

	total := decimal.Zero
	for id, item := range byId {
		if qty, ok := updates[id]; ok {
			total = total.Add(qty)
		} else {
			total = total.Add(item.DispatchedQty)
		}
	}

	return updates, total, nil
}
