package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"procurement-bidding-api/internal/entity"
	"procurement-bidding-api/internal/repo"
	"procurement-bidding-api/internal/repo/repo_errors"

	"github.com/google/uuid"
)

type L1Service struct {
	requirementRepo repo.Requirement
	bidRepo         repo.Bid
}

func NewL1Service(repos *repo.Repositories) *L1Service {
	return &L1Service{
		requirementRepo: repos.Requirement,
		bidRepo:         repos.Bid,
	}
}

// ComputeL1 ranks the live quotes of a requirement per line item. The lowest
// unit price wins; equal prices are broken by the earlier bid. Rejected bids
// never enter the ranking. Items nobody quoted come back with an empty
// ranking and no lowest quote.
func (s *L1Service) ComputeL1(ctx context.Context, requirementId string) (*entity.L1OutputModel, error) {
	_, err := s.requirementRepo.GetRequirementById(ctx, requirementId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, fmt.Errorf("requirement %s: %w", requirementId, ErrRequirementNotFound)
		}

		return nil, err
	}

	items, err := s.requirementRepo.GetRequirementItems(ctx, requirementId)
	if err != nil {
		return nil, err
	}

	quotes, err := s.bidRepo.GetQuotesForRequirement(ctx, requirementId)
	if err != nil {
		return nil, err
	}

	byItem := make(map[uuid.UUID][]entity.Quote, len(items))
	for _, quote := range quotes {
		byItem[quote.RequirementItemId] = append(byItem[quote.RequirementItemId], quote)
	}

	results := make([]entity.L1Result, 0, len(items))
	for _, item := range items {
		ranked := byItem[item.Id]
		sort.SliceStable(ranked, func(i, j int) bool {
			if !ranked[i].UnitPrice.Equal(ranked[j].UnitPrice) {
				return ranked[i].UnitPrice.LessThan(ranked[j].UnitPrice)
			}

			return ranked[i].BidCreatedAt.Before(ranked[j].BidCreatedAt)
		})

		result := entity.L1Result{
			Item:   item,
			Ranked: ranked,
		}
		if len(ranked) > 0 {
			result.Lowest = &ranked[0]
		}
		results = append(results, result)
	}

	return mapL1(requirementId, results), nil
}
