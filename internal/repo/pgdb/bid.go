package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"procurement-bidding-api/internal/common"
	"procurement-bidding-api/internal/entity"
	"procurement-bidding-api/internal/repo/repo_errors"
	"procurement-bidding-api/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BidRepo struct {
	*postgres.Postgres
}

func NewBidRepo(pgdb *postgres.Postgres) *BidRepo {
	return &BidRepo{pgdb}
}

func (r *BidRepo) CreateBid(ctx context.Context, bid *entity.Bid, items []entity.BidItem) (uuid.UUID, error) {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}

	createBidReq, args, _ := r.SqlBuilder.
		Insert("bid").
		Columns("requirement_id", "supplier_id", "bid_amount", "total_amount", "dispatched_qty", "status", "version").
		Values(bid.RequirementId, bid.SupplierId, bid.BidAmount, bid.TotalAmount, bid.DispatchedQty, bid.Status, bid.Version).
		Suffix("RETURNING id").
		RunWith(tx).
		ToSql()

	var bidId uuid.UUID
	err = tx.QueryRow(createBidReq, args...).Scan(&bidId)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return uuid.Nil, e
		}

		return uuid.Nil, err
	}

	for _, item := range items {
		createItemReq, args, _ := r.SqlBuilder.
			Insert("bid_item").
			Columns("bid_id", "requirement_item_id", "unit_price", "quantity", "total", "dispatched_qty").
			Values(bidId, item.RequirementItemId, item.UnitPrice, item.Quantity, item.Total, item.DispatchedQty).
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

	return bidId, nil
}

func (r *BidRepo) GetBidById(ctx context.Context, id string) (*entity.Bid, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	getBidReq, args, _ := r.SqlBuilder.
		Select("id, requirement_id, supplier_id, bid_amount, total_amount, dispatched_qty, status, version, created_at").
		From("bid").
		Where("id = ?", uuidForm).
		ToSql()

	var bid entity.Bid
	row := r.Database.QueryRow(getBidReq, args...)
	err = row.Scan(&bid.Id, &bid.RequirementId, &bid.SupplierId, &bid.BidAmount,
		&bid.TotalAmount, &bid.DispatchedQty, &bid.Status, &bid.Version, &bid.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &bid, repo_errors.ErrNotFound
		}

		return &bid, err
	}

	return &bid, nil
}

func (r *BidRepo) GetBidItems(ctx context.Context, bidId string) ([]entity.BidItem, error) {
	uuidForm, err := uuid.Parse(bidId)
	if err != nil {
		return nil, err
	}

	getItemsReq, args, _ := r.SqlBuilder.
		Select("id, bid_id, requirement_item_id, unit_price, quantity, total, dispatched_qty").
		From("bid_item").
		Where("bid_id = ?", uuidForm).
		OrderBy("requirement_item_id ASC").
		ToSql()

	rows, err := r.Database.Query(getItemsReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]entity.BidItem, 0)
	for rows.Next() {
		var item entity.BidItem
		if err := rows.Scan(&item.Id, &item.BidId, &item.RequirementItemId,
			&item.UnitPrice, &item.Quantity, &item.Total, &item.DispatchedQty); err != nil {
			return items, err
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return items, err
	}

	return items, nil
}

// UpdateBidItems overwrites price and quantity on the existing bid item rows
// (the re-bid flow) and recomputes the bid amounts from the stored totals.
func (r *BidRepo) UpdateBidItems(ctx context.Context, bidId string, items []entity.BidItem) error {
	uuidForm, err := uuid.Parse(bidId)
	if err != nil {
		return err
	}

	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	for _, item := range items {
		updateItemSql, args, _ := r.SqlBuilder.
			Update("bid_item").
			Set("unit_price", item.UnitPrice).
			Set("quantity", item.Quantity).
			Set("total", item.Total).
			Where("bid_id = ?", uuidForm).
			Where("requirement_item_id = ?", item.RequirementItemId).
			RunWith(tx).
			ToSql()

		res, err := tx.Exec(updateItemSql, args...)
		if err != nil {
			if e := tx.Rollback(); e != nil {
				return e
			}

			return err
		}

		affected, err := res.RowsAffected()
		if err != nil {
			if e := tx.Rollback(); e != nil {
				return e
			}

			return err
		}
		if affected == 0 {
			if e := tx.Rollback(); e != nil {
				return e
			}

			return repo_errors.ErrNotFound
		}
	}

	updateAmountsSql, args, _ := r.SqlBuilder.
		Update("bid").
		Set("bid_amount", squirrel.Expr("(select coalesce(sum(total), 0) from bid_item where bid_id = ?)", uuidForm)).
		Set("total_amount", squirrel.Expr("(select coalesce(sum(total), 0) from bid_item where bid_id = ?)", uuidForm)).
		Set("version", squirrel.Expr("version + ?", 1)).
		Where("id = ?", uuidForm).
		RunWith(tx).
		ToSql()

	if _, err = tx.Exec(updateAmountsSql, args...); err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *BidRepo) UpdateBidStatusById(ctx context.Context, id string, newStatus string) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return err
	}

	updateStatusSql, args, _ := r.SqlBuilder.
		Update("bid").
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

func (r *BidRepo) GetBidsForRequirement(ctx context.Context, requirementId string, pg *entity.PaginationInput) ([]entity.Bid, error) {
	uuidForm, err := uuid.Parse(requirementId)
	if err != nil {
		return nil, err
	}

	getBidsSql, args, _ := paginate(r.SqlBuilder.
		Select("id, requirement_id, supplier_id, bid_amount, total_amount, dispatched_qty, status, version, created_at").
		From("bid").
		Where("requirement_id = ?", uuidForm).
		OrderBy("created_at ASC"), pg).
		ToSql()

	return r.scanBids(getBidsSql, args)
}

func (r *BidRepo) GetSupplierBids(ctx context.Context, supplierId string, pg *entity.PaginationInput) ([]entity.Bid, error) {
	uuidForm, err := uuid.Parse(supplierId)
	if err != nil {
		return nil, err
	}

	getBidsSql, args, _ := paginate(r.SqlBuilder.
		Select("id, requirement_id, supplier_id, bid_amount, total_amount, dispatched_qty, status, version, created_at").
		From("bid").
		Where("supplier_id = ?", uuidForm).
		OrderBy("created_at ASC"), pg).
		ToSql()

	return r.scanBids(getBidsSql, args)
}

// paginate applies offset and limit to a listing query. A nil input or a
// non-positive limit means the listing is unbounded.
func paginate(q squirrel.SelectBuilder, pg *entity.PaginationInput) squirrel.SelectBuilder {
	if pg == nil {
		return q
	}
	if pg.Offset > 0 {
		q = q.Offset(uint64(pg.Offset))
	}
	if pg.Limit > 0 {
		q = q.Limit(uint64(pg.Limit))
	}

	return q
}

func (r *BidRepo) scanBids(query string, args []interface{}) ([]entity.Bid, error) {
	rows, err := r.Database.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bids := make([]entity.Bid, 0)
	for rows.Next() {
		var bid entity.Bid
		if err := rows.Scan(&bid.Id, &bid.RequirementId, &bid.SupplierId, &bid.BidAmount,
			&bid.TotalAmount, &bid.DispatchedQty, &bid.Status, &bid.Version, &bid.CreatedAt); err != nil {
			return bids, err
		}
		bids = append(bids, bid)
	}
	if err = rows.Err(); err != nil {
		return bids, err
	}

	return bids, nil
}

func (r *BidRepo) GetQuotesForRequirement(ctx context.Context, requirementId string) ([]entity.Quote, error) {
	uuidForm, err := uuid.Parse(requirementId)
	if err != nil {
		return nil, err
	}

	getQuotesSql, args, _ := r.SqlBuilder.
		Select("bid_item.id, bid_item.bid_id, bid.supplier_id, bid_item.requirement_item_id, bid_item.unit_price, bid_item.quantity, bid.status, bid.created_at").
		From("bid_item").
		InnerJoin("bid on bid.id = bid_item.bid_id").
		Where("bid.requirement_id = ?", uuidForm).
		Where("bid.status <> ?", common.BidRejected).
		OrderBy("bid_item.unit_price ASC", "bid.created_at ASC").
		ToSql()

	rows, err := r.Database.Query(getQuotesSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quotes := make([]entity.Quote, 0)
	for rows.Next() {
		var quote entity.Quote
		if err := rows.Scan(&quote.BidItemId, &quote.BidId, &quote.SupplierId, &quote.RequirementItemId,
			&quote.UnitPrice, &quote.Quantity, &quote.BidStatus, &quote.BidCreatedAt); err != nil {
			return quotes, err
		}
		quotes = append(quotes, quote)
	}
	if err = rows.Err(); err != nil {
		return quotes, err
	}

	return quotes, nil
}

func (r *BidRepo) ApplyDispatch(ctx context.Context, bidId string, version int, perItem map[uuid.UUID]decimal.Decimal, total decimal.Decimal) error {
	uuidForm, err := uuid.Parse(bidId)
	if err != nil {
		return err
	}

	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	updateBidSql, args, _ := r.SqlBuilder.
		Update("bid").
		Set("dispatched_qty", total).
		Set("version", squirrel.Expr("version + ?", 1)).
		Where("id = ?", uuidForm).
		Where("version = ?", version).
		RunWith(tx).
		ToSql()

	res, err := tx.Exec(updateBidSql, args...)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}
	if affected == 0 {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return repo_errors.ErrVersionConflict
	}

	for itemId, qty := range perItem {
		updateItemSql, args, _ := r.SqlBuilder.
			Update("bid_item").
			Set("dispatched_qty", qty).
			Where("id = ?", itemId).
			Where("bid_id = ?", uuidForm).
			RunWith(tx).
			ToSql()

		res, err := tx.Exec(updateItemSql, args...)
		if err != nil {
			if e := tx.Rollback(); e != nil {
				return e
			}

			return err
		}

		affected, err := res.RowsAffected()
		if err != nil {
			if e := tx.Rollback(); e != nil {
				return e
			}

			return err
		}
		if affected == 0 {
			if e := tx.Rollback(); e != nil {
				return e
			}

			return repo_errors.ErrNotFound
		}
	}

	if err = tx.Commit(); err != nil {
		return err
	}

	return nil
}
