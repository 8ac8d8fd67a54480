package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"procurement-bidding-api/internal/entity"
	"procurement-bidding-api/internal/repo/repo_errors"
	"procurement-bidding-api/pkg/postgres"

	"github.com/google/uuid"
)

type RequirementRepo struct {
	*postgres.Postgres
}

func NewRequirementRepo(pgdb *postgres.Postgres) *RequirementRepo {
	return &RequirementRepo{pgdb}
}

func (r *RequirementRepo) CreateRequirement(ctx context.Context, input *entity.CreateRequirementInput) (uuid.UUID, error) {
	buyerUuid, err := uuid.Parse(input.BuyerId)
	if err != nil {
		return uuid.Nil, err
	}

	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}

	createRequirementReq, args, _ := r.SqlBuilder.
		Insert("requirement").
		Columns("title", "status", "buyer_id", "deadline").
		Values(input.Title, input.Status, buyerUuid, input.Deadline).
		Suffix("RETURNING id").
		RunWith(tx).
		ToSql()

	var requirementId uuid.UUID
	err = tx.QueryRow(createRequirementReq, args...).Scan(&requirementId)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return uuid.Nil, e
		}

		return uuid.Nil, err
	}

	for _, item := range input.Items {
		createItemReq, args, _ := r.SqlBuilder.
			Insert("requirement_item").
			Columns("requirement_id", "item_name", "quantity", "unit", "category").
			Values(requirementId, item.ItemName, item.Quantity, item.Unit, item.Category).
			RunWith(tx).
			ToSql()

		if _, err = tx.Exec(createItemReq, args...); err != nil {
			if e := tx.Rollback(); e != nil {
				return uuid.Nil, e
			}

			return uuid.Nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return uuid.Nil, err
	}

	return requirementId, nil
}

func (r *RequirementRepo) GetRequirementById(ctx context.Context, id string) (*entity.Requirement, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	getRequirementReq, args, _ := r.SqlBuilder.
		Select("id, title, status, buyer_id, deadline, created_at").
		From("requirement").
		Where("id = ?", uuidForm).
		ToSql()

	var requirement entity.Requirement
	row := r.Database.QueryRow(getRequirementReq, args...)
	err = row.Scan(&requirement.Id, &requirement.Title, &requirement.Status,
		&requirement.BuyerId, &requirement.Deadline, &requirement.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &requirement, repo_errors.ErrNotFound
		}

		return &requirement, err
	}

	return &requirement, nil
}

func (r *RequirementRepo) GetRequirementItems(ctx context.Context, requirementId string) ([]entity.RequirementItem, error) {
	uuidForm, err := uuid.Parse(requirementId)
	if err != nil {
		return nil, err
	}

	getItemsReq, args, _ := r.SqlBuilder.
		Select("id, requirement_id, item_name, quantity, unit, category").
		From("requirement_item").
		Where("requirement_id = ?", uuidForm).
		OrderBy("item_name ASC").
		ToSql()

	rows, err := r.Database.Query(getItemsReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]entity.RequirementItem, 0)
	for rows.Next() {
		var item entity.RequirementItem
		if err := rows.Scan(&item.Id, &item.RequirementId, &item.ItemName,
			&item.Quantity, &item.Unit, &item.Category); err != nil {
			return items, err
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return items, err
	}

	return items, nil
}

func (r *RequirementRepo) UpdateRequirementStatusById(ctx context.Context, id string, newStatus string) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return err
	}

	updateStatusSql, args, _ := r.SqlBuilder.
		Update("requirement").
		Set("status", newStatus).
		Where("id = ?", uuidForm).
		ToSql()

	res, err := r.Database.Exec(updateStatusSql, args...)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repo_errors.ErrNotFound
	}

	return nil
}
