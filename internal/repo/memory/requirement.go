package memory

import (
	"context"
	"sync"
	"time"

	"procurement-bidding-api/internal/entity"
	"procurement-bidding-api/internal/repo"
	"procurement-bidding-api/internal/repo/repo_errors"

	"github.com/google/uuid"
)

// RequirementRepo is an in-memory repo.Requirement used by tests and DB-less
// runs. Semantics mirror the pgdb implementation.
type RequirementRepo struct {
	mu           sync.RWMutex
	requirements map[uuid.UUID]entity.Requirement
	items        map[uuid.UUID][]entity.RequirementItem
}

var _ repo.Requirement = (*RequirementRepo)(nil)

func NewRequirementRepo() *RequirementRepo {
	return &RequirementRepo{
		requirements: make(map[uuid.UUID]entity.Requirement),
		items:        make(map[uuid.UUID][]entity.RequirementItem),
	}
}

func (r *RequirementRepo) CreateRequirement(ctx context.Context, input *entity.CreateRequirementInput) (uuid.UUID, error) {
	buyerUuid, err := uuid.Parse(input.BuyerId)
	if err != nil {
		return uuid.Nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	requirementId := uuid.New()
	r.requirements[requirementId] = entity.Requirement{
		Id:        requirementId,
		Title:     input.Title,
		Status:    input.Status,
		BuyerId:   buyerUuid,
		Deadline:  input.Deadline,
		CreatedAt: time.Now(),
	}

	items := make([]entity.RequirementItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, entity.RequirementItem{
			Id:            uuid.New(),
			RequirementId: requirementId,
			ItemName:      item.ItemName,
			Quantity:      item.Quantity,
			Unit:          item.Unit,
			Category:      item.Category,
		})
	}
	r.items[requirementId] = items

	return requirementId, nil
}

func (r *RequirementRepo) GetRequirementById(ctx context.Context, id string) (*entity.Requirement, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	requirement, ok := r.requirements[uuidForm]
	if !ok {
		return &entity.Requirement{}, repo_errors.ErrNotFound
	}

	return &requirement, nil
}

func (r *RequirementRepo) GetRequirementItems(ctx context.Context, requirementId string) ([]entity.RequirementItem, error) {
	uuidForm, err := uuid.Parse(requirementId)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]entity.RequirementItem, 0)
	items = append(items, r.items[uuidForm]...)

	return items, nil
}

func (r *RequirementRepo) UpdateRequirementStatusById(ctx context.Context, id string, newStatus string) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	requirement, ok := r.requirements[uuidForm]
	if !ok {
		return repo_errors.ErrNotFound
	}

	requirement.Status = newStatus
	r.requirements[uuidForm] = requirement

	return nil
}
