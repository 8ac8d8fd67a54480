package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"procurement-bidding-api/internal/common"
	"procurement-bidding-api/internal/entity"
	"procurement-bidding-api/internal/metrics"
	"procurement-bidding-api/internal/repo"
	"procurement-bidding-api/internal/repo/repo_errors"
	"procurement-bidding-api/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BidService struct {
	bidRepo         repo.Bid
	requirementRepo repo.Requirement
	log             logger.Logger
	metrics         *metrics.Metrics
}

func NewBidService(repos *repo.Repositories, log logger.Logger, m *metrics.Metrics) *BidService {
	return &BidService{
		bidRepo:         repos.Bid,
		requirementRepo: repos.Requirement,
		log:             log,
		metrics:         m,
	}
}

// SubmitBid records a sealed bid with one line per quoted requirement item.
// Line totals and the bid amount are derived here; the caller never supplies
// them. Bids from different suppliers are independent rows, so no
// cross-supplier locking happens on this path.
func (s *BidService) SubmitBid(ctx context.Context, input *entity.SubmitBidInput) (*entity.BidOutputModel, error) {
	requirement, err := s.requirementRepo.GetRequirementById(ctx, input.RequirementId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, fmt.Errorf("requirement %s: %w", input.RequirementId, ErrRequirementNotFound)
		}

		return nil, err
	}

	if err := bidWindowOpen(requirement); err != nil {
		return nil, err
	}

	supplierUuid, err := uuid.Parse(input.SupplierId)
	if err != nil {
		return nil, err
	}

	items, amount, err := s.buildBidItems(ctx, requirement.Id, input.Items)
	if err != nil {
		return nil, err
	}

	bid := &entity.Bid{
		RequirementId: requirement.Id,
		SupplierId:    supplierUuid,
		BidAmount:     amount,
		TotalAmount:   amount,
		DispatchedQty: decimal.Zero,
		Status:        common.BidPending,
		Version:       1,
	}

	bidId, err := s.bidRepo.CreateBid(ctx, bid, items)
	if err != nil {
		return nil, err
	}

	s.metrics.IncBidsSubmitted()
	s.log.Infof("bid %s submitted for requirement %s, amount %s", bidId, requirement.Id, amount)

	return s.GetBidById(ctx, bidId.String())
}

// UpdateBid is the re-bid flow: the supplier overwrites price and quantity on
// existing lines while the requirement is still open and the bid pending.
func (s *BidService) UpdateBid(ctx context.Context, bidId string, items []entity.BidItemInput) (*entity.BidOutputModel, error) {
	bid, err := s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, fmt.Errorf("bid %s: %w", bidId, ErrBidNotFound)
		}

		return nil, err
	}

	if bid.Status != common.BidPending {
		return nil, fmt.Errorf("bid %s: %w", bidId, ErrBidNotPending)
	}

	requirement, err := s.requirementRepo.GetRequirementById(ctx, bid.RequirementId.String())
	if err != nil {
		return nil, err
	}
	if err := bidWindowOpen(requirement); err != nil {
		return nil, err
	}

	existing, err := s.bidRepo.GetBidItems(ctx, bidId)
	if err != nil {
		return nil, err
	}
	owned := make(map[uuid.UUID]bool, len(existing))
	for _, item := range existing {
		owned[item.RequirementItemId] = true
	}

	updates, err := validateBidLines(items, owned)
	if err != nil {
		return nil, err
	}

	if err = s.bidRepo.UpdateBidItems(ctx, bidId, updates); err != nil {
		return nil, err
	}

	return s.GetBidById(ctx, bidId)
}

var bidTransitions = map[string][]string{
	common.BidPending: {common.BidAccepted, common.BidRejected},
}

func (s *BidService) UpdateBidStatusById(ctx context.Context, bidId string, newStatus string) (*entity.BidOutputModel, error) {
	bid, err := s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, fmt.Errorf("bid %s: %w", bidId, ErrBidNotFound)
		}

		return nil, err
	}

	allowed := false
	for _, target := range bidTransitions[bid.Status] {
		if target == newStatus {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("bid %s: %s -> %s: %w", bidId, bid.Status, newStatus, ErrInvalidStatusTransition)
	}

	if err = s.bidRepo.UpdateBidStatusById(ctx, bidId, newStatus); err != nil {
		return nil, err
	}

	return s.GetBidById(ctx, bidId)
}

func (s *BidService) GetBidById(ctx context.Context, bidId string) (*entity.BidOutputModel, error) {
	bid, err := s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, fmt.Errorf("bid %s: %w", bidId, ErrBidNotFound)
		}

		return nil, err
	}

	items, err := s.bidRepo.GetBidItems(ctx, bidId)
	if err != nil {
		return nil, err
	}

	return mapBidWithItems(bid, items), nil
}

func (s *BidService) GetBidsForRequirement(ctx context.Context, requirementId string, pg *entity.PaginationInput) ([]entity.BidOutputModel, error) {
	_, err := s.requirementRepo.GetRequirementById(ctx, requirementId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, fmt.Errorf("requirement %s: %w", requirementId, ErrRequirementNotFound)
		}

		return nil, err
	}

	bids, err := s.bidRepo.GetBidsForRequirement(ctx, requirementId, pg)
	if err != nil {
		return nil, err
	}

	return mapBids(bids), nil
}

func (s *BidService) GetSupplierBids(ctx context.Context, supplierId string, pg *entity.PaginationInput) ([]entity.BidOutputModel, error) {
	bids, err := s.bidRepo.GetSupplierBids(ctx, supplierId, pg)
	if err != nil {
		return nil, err
	}

	return mapBids(bids), nil
}

func (s *BidService) buildBidItems(ctx context.Context, requirementId uuid.UUID, inputs []entity.BidItemInput) ([]entity.BidItem, decimal.Decimal, error) {
	requirementItems, err := s.requirementRepo.GetRequirementItems(ctx, requirementId.String())
	if err != nil {
		return nil, decimal.Zero, err
	}

	owned := make(map[uuid.UUID]bool, len(requirementItems))
	for _, item := range requirementItems {
		owned[item.Id] = true
	}

	items, err := validateBidLines(inputs, owned)
	if err != nil {
		return nil, decimal.Zero, err
	}

	amount := decimal.Zero
	for _, item := range items {
		amount = amount.Add(item.Total)
	}

	return items, amount, nil
}

// validateBidLines checks every line against the set of requirement items the
// bid may quote and derives the stored totals. Nothing is written when any
// line fails.
func validateBidLines(inputs []entity.BidItemInput, owned map[uuid.UUID]bool) ([]entity.BidItem, error) {
	if len(inputs) == 0 {
		return nil, ErrNoItems
	}

	seen := make(map[uuid.UUID]bool, len(inputs))
	items := make([]entity.BidItem, 0, len(inputs))
	for _, input := range inputs {
		itemUuid, err := uuid.Parse(input.RequirementItemId)
		if err != nil {
			return nil, fmt.Errorf("requirement item `%s`: %w", input.RequirementItemId, ErrItemNotInRequirement)
		}
		if !owned[itemUuid] {
			return nil, fmt.Errorf("requirement item %s: %w", itemUuid, ErrItemNotInRequirement)
		}
		if seen[itemUuid] {
			return nil, fmt.Errorf("requirement item %s: %w", itemUuid, ErrDuplicateBidItem)
		}
		seen[itemUuid] = true

		if input.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("requirement item %s: %w", itemUuid, ErrNegativeUnitPrice)
		}
		if input.Quantity.Sign() <= 0 {
			return nil, fmt.Errorf("requirement item %s: %w", itemUuid, ErrNonPositiveQuantity)
		}

		items = append(items, entity.BidItem{
			RequirementItemId: itemUuid,
			UnitPrice:         input.UnitPrice,
			Quantity:          input.Quantity,
			Total:             input.UnitPrice.Mul(input.Quantity),
			DispatchedQty:     decimal.Zero,
		})
	}

	return items, nil
}

func bidWindowOpen(requirement *entity.Requirement) error {
	if requirement.Status != common.RequirementActive {
		return fmt.Errorf("requirement %s is %s: %w", requirement.Id, requirement.Status, ErrRequirementNotOpen)
	}
	if !requirement.Deadline.IsZero() && time.Now().After(requirement.Deadline) {
		return fmt.Errorf("requirement %s: %w", requirement.Id, ErrRequirementDeadlinePassed)
	}

	return nil
}
