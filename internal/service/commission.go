package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"procurement-bidding-api/internal/entity"
	"procurement-bidding-api/internal/metrics"
	"procurement-bidding-api/internal/repo"
	"procurement-bidding-api/internal/repo/repo_errors"
	"procurement-bidding-api/pkg/logger"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

type CommissionService struct {
	commissionRepo repo.Commission
	bidRepo        repo.Bid
	log            logger.Logger
	metrics        *metrics.Metrics
}

func NewCommissionService(repos *repo.Repositories, log logger.Logger, m *metrics.Metrics) *CommissionService {
	return &CommissionService{
		commissionRepo: repos.Commission,
		bidRepo:        repos.Bid,
		log:            log,
		metrics:        m,
	}
}

// Recalculate rewrites the commission figures of a bid from its current total
// dispatched quantity. The computation reads only the stored rates and the
// passed quantity, so replaying it with the same quantity is a no-op on the
// derived values.
func (s *CommissionService) Recalculate(ctx context.Context, bidId string, totalDispatchedQty decimal.Decimal) (*entity.CommissionOutputModel, error) {
	rec, err := s.commissionRepo.GetCommissionByBidId(ctx, bidId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			s.log.Warnf("commission record missing for bid %s, skipping recalculation", bidId)
			s.metrics.IncCommissionRecalc(metrics.CommissionSkipped)

			return nil, fmt.Errorf("bid %s: %w", bidId, ErrCommissionRecordNotFound)
		}

		return nil, err
	}

	fee := rec.PlatformFeePerUnit.Mul(totalDispatchedQty)
	commission := fee.Mul(rec.ReferralSharePercentage).Div(oneHundred)

	rec.DispatchedQty = totalDispatchedQty
	rec.CommissionAmount = commission
	rec.PlatformNetRevenue = fee.Sub(commission)
	rec.UpdatedAt = time.Now()

	if err = s.commissionRepo.UpdateCommission(ctx, rec); err != nil {
		return nil, err
	}

	s.metrics.IncCommissionRecalc(metrics.CommissionUpdated)

	return mapCommission(rec), nil
}

// RecalculateFromBid rebuilds the commission figures from the dispatched
// quantity currently stored on the bid. Used when an operator wants to force
// the record back in sync without touching dispatch state.
func (s *CommissionService) RecalculateFromBid(ctx context.Context, bidId string) (*entity.CommissionOutputModel, error) {
	bid, err := s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, fmt.Errorf("bid %s: %w", bidId, ErrBidNotFound)
		}

		return nil, err
	}

	return s.Recalculate(ctx, bidId, bid.DispatchedQty)
}

func (s *CommissionService) GetCommissionByBidId(ctx context.Context, bidId string) (*entity.CommissionOutputModel, error) {
	rec, err := s.commissionRepo.GetCommissionByBidId(ctx, bidId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, fmt.Errorf("bid %s: %w", bidId, ErrCommissionRecordNotFound)
		}

		return nil, err
	}

	return mapCommission(rec), nil
}
