package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"procurement-bidding-api/internal/common"
	"procurement-bidding-api/internal/entity"
	"procurement-bidding-api/internal/repo"
	"procurement-bidding-api/internal/repo/repo_errors"
)

type RequirementService struct {
	requirementRepo repo.Requirement
}

func NewRequirementService(repos *repo.Repositories) *RequirementService {
	return &RequirementService{
		requirementRepo: repos.Requirement,
	}
}

func (s *RequirementService) CreateRequirement(ctx context.Context, input *entity.CreateRequirementInput) (*entity.RequirementOutputModel, error) {
	if len(input.Items) == 0 {
		return nil, ErrNoItems
	}

	for _, item := range input.Items {
		if strings.TrimSpace(item.ItemName) == "" {
			return nil, ErrEmptyItemName
		}
		if strings.TrimSpace(item.Unit) == "" {
			return nil, fmt.Errorf("item `%s`: %w", item.ItemName, ErrEmptyUnit)
		}
		if item.Quantity.Sign() <= 0 {
			return nil, fmt.Errorf("item `%s`: %w", item.ItemName, ErrNonPositiveQuantity)
		}
	}

	input.Status = common.RequirementActive
	id, err := s.requirementRepo.CreateRequirement(ctx, input)
	if err != nil {
		return nil, err
	}

	return s.GetRequirementById(ctx, id.String())
}

func (s *RequirementService) GetRequirementById(ctx context.Context, requirementId string) (*entity.RequirementOutputModel, error) {
	requirement, err := s.requirementRepo.GetRequirementById(ctx, requirementId)
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

	return mapRequirement(requirement, items), nil
}

// Allowed transitions. A requirement stays mutable until it reaches a
// terminal status; closed and cancelled are terminal.
var requirementTransitions = map[string][]string{
	common.RequirementActive:  {common.RequirementAwarded, common.RequirementClosed, common.RequirementCancelled},
	common.RequirementAwarded: {common.RequirementClosed, common.RequirementCancelled},
}

func (s *RequirementService) UpdateRequirementStatusById(ctx context.Context, requirementId string, newStatus string) (*entity.RequirementOutputModel, error) {
	requirement, err := s.requirementRepo.GetRequirementById(ctx, requirementId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, fmt.Errorf("requirement %s: %w", requirementId, ErrRequirementNotFound)
		}

		return nil, err
	}

	allowed := false
	for _, target := range requirementTransitions[requirement.Status] {
		if target == newStatus {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("requirement %s: %s -> %s: %w",
			requirementId, requirement.Status, newStatus, ErrInvalidStatusTransition)
	}

	if err = s.requirementRepo.UpdateRequirementStatusById(ctx, requirementId, newStatus); err != nil {
		return nil, err
	}

	return s.GetRequirementById(ctx, requirementId)
}
