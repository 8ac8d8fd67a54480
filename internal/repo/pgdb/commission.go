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

type CommissionRepo struct {
	*postgres.Postgres
}

func NewCommissionRepo(pgdb *postgres.Postgres) *CommissionRepo {
	return &CommissionRepo{pgdb}
}

func (r *CommissionRepo) CreateCommission(ctx context.Context, rec *entity.CommissionRecord) (uuid.UUID, error) {
	createCommissionReq, args, _ := r.SqlBuilder.
		Insert("commission_record").
		Columns("bid_id", "platform_fee_per_unit", "referral_share_percentage", "dispatched_qty", "commission_amount", "platform_net_revenue").
		Values(rec.BidId, rec.PlatformFeePerUnit, rec.ReferralSharePercentage, rec.DispatchedQty, rec.CommissionAmount, rec.PlatformNetRevenue).
		Suffix("RETURNING id").
		ToSql()

	var id uuid.UUID
	err := r.Database.QueryRow(createCommissionReq, args...).Scan(&id)
	if err != nil {
		return uuid.Nil, err
	}

	return id, nil
}

func (r *CommissionRepo) GetCommissionByBidId(ctx context.Context, bidId string) (*entity.CommissionRecord, error) {
	uuidForm, err := uuid.Parse(bidId)
	if err != nil {
		return nil, err
	}

	getCommissionReq, args, _ := r.SqlBuilder.
		Select("id, bid_id, platform_fee_per_unit, referral_share_percentage, dispatched_qty, commission_amount, platform_net_revenue, updated_at").
		From("commission_record").
		Where("bid_id = ?", uuidForm).
		ToSql()

	var rec entity.CommissionRecord
	row := r.Database.QueryRow(getCommissionReq, args...)
	err = row.Scan(&rec.Id, &rec.BidId, &rec.PlatformFeePerUnit, &rec.ReferralSharePercentage,
		&rec.DispatchedQty, &rec.CommissionAmount, &rec.PlatformNetRevenue, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &rec, repo_errors.ErrNotFound
		}

		return &rec, err
	}

	return &rec, nil
}

func (r *CommissionRepo) UpdateCommission(ctx context.Context, rec *entity.CommissionRecord) error {
	updateCommissionSql, args, _ := r.SqlBuilder.
		Update("commission_record").
		Set("dispatched_qty", rec.DispatchedQty).
		Set("commission_amount", rec.CommissionAmount).
		Set("platform_net_revenue", rec.PlatformNetRevenue).
		Set("updated_at", rec.UpdatedAt).
		Where("bid_id = ?", rec.BidId).
		ToSql()

	res, err := r.Database.Exec(updateCommissionSql, args...)
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
