package memory_test

import (
	"context"
	"testing"

	"procurement-bidding-api/internal/common"
	"procurement-bidding-api/internal/entity"
	"procurement-bidding-api/internal/repo/memory"
	"procurement-bidding-api/internal/repo/repo_errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func seedBid(t *testing.T, r *memory.BidRepo) (uuid.UUID, entity.BidItem) {
	t.Helper()
	bidId, err := r.CreateBid(context.Background(), &entity.Bid{
		RequirementId: uuid.New(),
		SupplierId:    uuid.New(),
		BidAmount:     decimal.NewFromInt(1000),
		TotalAmount:   decimal.NewFromInt(1000),
		Status:        common.BidAccepted,
		Version:       1,
	}, []entity.BidItem{{
		RequirementItemId: uuid.New(),
		UnitPrice:         decimal.NewFromInt(100),
		Quantity:          decimal.NewFromInt(10),
		Total:             decimal.NewFromInt(1000),
	}})
	require.NoError(t, err)

	items, err := r.GetBidItems(context.Background(), bidId.String())
	require.NoError(t, err)
	require.Len(t, items, 1)

	return bidId, items[0]
}

func TestGetBidsForRequirementUnboundedListing(t *testing.T) {
	r := memory.NewBidRepo()
	ctx := context.Background()
	requirementId := uuid.New()

	for i := 0; i < 3; i++ {
		_, err := r.CreateBid(ctx, &entity.Bid{
			RequirementId: requirementId,
			SupplierId:    uuid.New(),
			BidAmount:     decimal.NewFromInt(100),
			TotalAmount:   decimal.NewFromInt(100),
			Status:        common.BidPending,
			Version:       1,
		}, []entity.BidItem{{
			RequirementItemId: uuid.New(),
			UnitPrice:         decimal.NewFromInt(10),
			Quantity:          decimal.NewFromInt(10),
			Total:             decimal.NewFromInt(100),
		}})
		require.NoError(t, err)
	}

	// nil pagination and a zero limit both mean the full listing
	bids, err := r.GetBidsForRequirement(ctx, requirementId.String(), nil)
	require.NoError(t, err)
	require.Len(t, bids, 3)

	bids, err = r.GetBidsForRequirement(ctx, requirementId.String(), entity.NewPaginationInput(0, 0))
	require.NoError(t, err)
	require.Len(t, bids, 3)

	bids, err = r.GetBidsForRequirement(ctx, requirementId.String(), entity.NewPaginationInput(2, 1))
	require.NoError(t, err)
	require.Len(t, bids, 2)
}

func TestApplyDispatchBumpsVersion(t *testing.T) {
	r := memory.NewBidRepo()
	ctx := context.Background()
	bidId, item := seedBid(t, r)

	err := r.ApplyDispatch(ctx, bidId.String(), 1,
		map[uuid.UUID]decimal.Decimal{item.Id: decimal.NewFromInt(4)}, decimal.NewFromInt(4))
	require.NoError(t, err)

	bid, err := r.GetBidById(ctx, bidId.String())
	require.NoError(t, err)
	require.Equal(t, 2, bid.Version)
	require.True(t, bid.DispatchedQty.Equal(decimal.NewFromInt(4)))
}

func TestApplyDispatchStaleVersion(t *testing.T) {
	r := memory.NewBidRepo()
	ctx := context.Background()
	bidId, item := seedBid(t, r)

	err := r.ApplyDispatch(ctx, bidId.String(), 1,
		map[uuid.UUID]decimal.Decimal{item.Id: decimal.NewFromInt(4)}, decimal.NewFromInt(4))
	require.NoError(t, err)

	// same version again loses the race
	err = r.ApplyDispatch(ctx, bidId.String(), 1,
		map[uuid.UUID]decimal.Decimal{item.Id: decimal.NewFromInt(5)}, decimal.NewFromInt(5))
	require.ErrorIs(t, err, repo_errors.ErrVersionConflict)

	bid, err := r.GetBidById(ctx, bidId.String())
	require.NoError(t, err)
	require.True(t, bid.DispatchedQty.Equal(decimal.NewFromInt(4)))
}

func TestApplyDispatchUnknownItemWritesNothing(t *testing.T) {
	r := memory.NewBidRepo()
	ctx := context.Background()
	bidId, item := seedBid(t, r)

	err := r.ApplyDispatch(ctx, bidId.String(), 1, map[uuid.UUID]decimal.Decimal{
		item.Id:    decimal.NewFromInt(4),
		uuid.New(): decimal.NewFromInt(1),
	}, decimal.NewFromInt(5))
	require.ErrorIs(t, err, repo_errors.ErrNotFound)

	items, err := r.GetBidItems(ctx, bidId.String())
	require.NoError(t, err)
	require.True(t, items[0].DispatchedQty.IsZero())
}
