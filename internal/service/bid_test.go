package service_test

import (
	"context"
	"testing"
	"time"

	"procurement-bidding-api/internal/common"
	"procurement-bidding-api/internal/entity"
	"procurement-bidding-api/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSubmitBidComputesAmount(t *testing.T) {
	env := newTestEnv()

	requirement := env.createRequirement(t, reqItem("Chairs", "40"), reqItem("Desks", "20"))
	chairs := itemId(t, requirement, "Chairs")
	desks := itemId(t, requirement, "Desks")

	bid := env.submitBid(t, requirement.Id, uuid.NewString(),
		line(chairs, "100", "40"),
		line(desks, "250.50", "20"),
	)

	require.Equal(t, common.BidPending, bid.Status)
	require.Equal(t, 1, bid.Version)
	require.Equal(t, "0", bid.DispatchedQty)
	// 100*40 + 250.50*20
	require.Equal(t, "9010", bid.BidAmount)
	require.Len(t, bid.Items, 2)
	require.Equal(t, "5010", bid.Items[1].Total)
}

func TestSubmitBidRejectsBadLines(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	requirement := env.createRequirement(t, reqItem("Chairs", "40"))
	chairs := itemId(t, requirement, "Chairs")
	other := env.createRequirement(t, reqItem("Cables", "100"))
	foreign := itemId(t, other, "Cables")

	cases := []struct {
		name  string
		lines []entity.BidItemInput
		want  error
	}{
		{"no lines", nil, service.ErrNoItems},
		{"foreign item", []entity.BidItemInput{line(foreign, "10", "5")}, service.ErrItemNotInRequirement},
		{"duplicate item", []entity.BidItemInput{line(chairs, "10", "5"), line(chairs, "11", "5")}, service.ErrDuplicateBidItem},
		{"negative price", []entity.BidItemInput{line(chairs, "-1", "5")}, service.ErrNegativeUnitPrice},
		{"zero quantity", []entity.BidItemInput{line(chairs, "10", "0")}, service.ErrNonPositiveQuantity},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.services.Bid.SubmitBid(ctx, &entity.SubmitBidInput{
				RequirementId: requirement.Id,
				SupplierId:    uuid.NewString(),
				Items:         tc.lines,
			})
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSubmitBidRequirementClosed(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	requirement := env.createRequirement(t, reqItem("Chairs", "40"))
	chairs := itemId(t, requirement, "Chairs")
	_, err := env.services.Requirement.UpdateRequirementStatusById(ctx, requirement.Id, common.RequirementClosed)
	require.NoError(t, err)

	_, err = env.services.Bid.SubmitBid(ctx, &entity.SubmitBidInput{
		RequirementId: requirement.Id,
		SupplierId:    uuid.NewString(),
		Items:         []entity.BidItemInput{line(chairs, "100", "40")},
	})
	require.ErrorIs(t, err, service.ErrRequirementNotOpen)
}

func TestSubmitBidDeadlinePassed(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	requirement, err := env.services.Requirement.CreateRequirement(ctx, &entity.CreateRequirementInput{
		Title:    "Expired requirement",
		BuyerId:  uuid.NewString(),
		Deadline: time.Now().Add(-time.Hour),
		Items:    []entity.CreateRequirementItemInput{reqItem("Chairs", "40")},
	})
	require.NoError(t, err)

	_, err = env.services.Bid.SubmitBid(ctx, &entity.SubmitBidInput{
		RequirementId: requirement.Id,
		SupplierId:    uuid.NewString(),
		Items:         []entity.BidItemInput{line(itemId(t, requirement, "Chairs"), "100", "40")},
	})
	require.ErrorIs(t, err, service.ErrRequirementDeadlinePassed)
}

func TestUpdateBidRecomputesAmount(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	requirement := env.createRequirement(t, reqItem("Chairs", "40"), reqItem("Desks", "20"))
	chairs := itemId(t, requirement, "Chairs")
	desks := itemId(t, requirement, "Desks")

	bid := env.submitBid(t, requirement.Id, uuid.NewString(),
		line(chairs, "100", "40"),
		line(desks, "250", "20"),
	)

	updated, err := env.services.Bid.UpdateBid(ctx, bid.Id, []entity.BidItemInput{
		line(chairs, "95", "40"),
	})
	require.NoError(t, err)
	// 95*40 + 250*20, desks untouched
	require.Equal(t, "8800", updated.BidAmount)
	require.Equal(t, 2, updated.Version)
}

func TestUpdateBidOnlyWhilePending(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	requirement := env.createRequirement(t, reqItem("Chairs", "40"))
	chairs := itemId(t, requirement, "Chairs")
	bid := env.submitBid(t, requirement.Id, uuid.NewString(), line(chairs, "100", "40"))
	env.acceptBid(t, bid.Id)

	_, err := env.services.Bid.UpdateBid(ctx, bid.Id, []entity.BidItemInput{line(chairs, "90", "40")})
	require.ErrorIs(t, err, service.ErrBidNotPending)
}

func TestBidStatusTransitions(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	requirement := env.createRequirement(t, reqItem("Chairs", "40"))
	chairs := itemId(t, requirement, "Chairs")
	bid := env.submitBid(t, requirement.Id, uuid.NewString(), line(chairs, "100", "40"))

	accepted, err := env.services.Bid.UpdateBidStatusById(ctx, bid.Id, common.BidAccepted)
	require.NoError(t, err)
	require.Equal(t, common.BidAccepted, accepted.Status)

	// accepted is terminal for the ledger
	_, err = env.services.Bid.UpdateBidStatusById(ctx, bid.Id, common.BidRejected)
	require.ErrorIs(t, err, service.ErrInvalidStatusTransition)
}

func TestGetBidsForRequirement(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	requirement := env.createRequirement(t, reqItem("Chairs", "40"))
	chairs := itemId(t, requirement, "Chairs")
	supplier := uuid.NewString()
	env.submitBid(t, requirement.Id, supplier, line(chairs, "100", "40"))
	env.submitBid(t, requirement.Id, uuid.NewString(), line(chairs, "90", "40"))

	bids, err := env.services.Bid.GetBidsForRequirement(ctx, requirement.Id, entity.NewPaginationInput(10, 0))
	require.NoError(t, err)
	require.Len(t, bids, 2)

	mine, err := env.services.Bid.GetSupplierBids(ctx, supplier, entity.NewPaginationInput(10, 0))
	require.NoError(t, err)
	require.Len(t, mine, 1)

	_, err = env.services.Bid.GetBidsForRequirement(ctx, uuid.NewString(), entity.NewPaginationInput(10, 0))
	require.ErrorIs(t, err, service.ErrRequirementNotFound)
}
