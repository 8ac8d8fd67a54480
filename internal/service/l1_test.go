package service_test

import (
	"context"
	"testing"

	"procurement-bidding-api/internal/common"
	"procurement-bidding-api/internal/entity"
	"procurement-bidding-api/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func l1Item(t *testing.T, result *entity.L1OutputModel, requirementItemId string) entity.L1ItemOutputModel {
	t.Helper()
	for _, item := range result.Items {
		if item.RequirementItemId == requirementItemId {
			return item
		}
	}
	t.Fatalf("no ranking for requirement item %s", requirementItemId)

	return entity.L1ItemOutputModel{}
}

func TestComputeL1PerLineItem(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	requirement := env.createRequirement(t, reqItem("Chairs", "40"), reqItem("Desks", "20"))
	chairs := itemId(t, requirement, "Chairs")
	desks := itemId(t, requirement, "Desks")

	supplierX := uuid.NewString()
	supplierY := uuid.NewString()
	env.submitBid(t, requirement.Id, supplierX, line(chairs, "100", "40"), line(desks, "200", "20"))
	env.submitBid(t, requirement.Id, supplierY, line(chairs, "90", "40"), line(desks, "210", "20"))

	result, err := env.services.L1.ComputeL1(ctx, requirement.Id)
	require.NoError(t, err)
	require.Equal(t, requirement.Id, result.RequirementId)
	require.Len(t, result.Items, 2)

	// supplier Y wins the chairs, supplier X keeps the desks
	chairsRank := l1Item(t, result, chairs)
	require.NotNil(t, chairsRank.Lowest)
	require.Equal(t, supplierY, chairsRank.Lowest.SupplierId)
	require.Equal(t, "90", chairsRank.Lowest.UnitPrice)
	require.Len(t, chairsRank.Ranked, 2)
	require.Equal(t, 1, chairsRank.Ranked[0].Rank)
	require.Equal(t, "90", chairsRank.Ranked[0].UnitPrice)
	require.Equal(t, "100", chairsRank.Ranked[1].UnitPrice)

	desksRank := l1Item(t, result, desks)
	require.NotNil(t, desksRank.Lowest)
	require.Equal(t, supplierX, desksRank.Lowest.SupplierId)
	require.Equal(t, "200", desksRank.Lowest.UnitPrice)
}

func TestComputeL1TieBreaksOnEarlierBid(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	requirement := env.createRequirement(t, reqItem("Chairs", "40"))
	chairs := itemId(t, requirement, "Chairs")

	first := env.submitBid(t, requirement.Id, uuid.NewString(), line(chairs, "100", "40"))
	env.submitBid(t, requirement.Id, uuid.NewString(), line(chairs, "100", "40"))

	result, err := env.services.L1.ComputeL1(ctx, requirement.Id)
	require.NoError(t, err)

	ranked := l1Item(t, result, chairs)
	require.NotNil(t, ranked.Lowest)
	require.Equal(t, first.Id, ranked.Lowest.BidId)
}

func TestComputeL1ExcludesRejectedBids(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	requirement := env.createRequirement(t, reqItem("Chairs", "40"))
	chairs := itemId(t, requirement, "Chairs")

	cheapest := env.submitBid(t, requirement.Id, uuid.NewString(), line(chairs, "80", "40"))
	runnerUp := env.submitBid(t, requirement.Id, uuid.NewString(), line(chairs, "95", "40"))
	_, err := env.services.Bid.UpdateBidStatusById(ctx, cheapest.Id, common.BidRejected)
	require.NoError(t, err)

	result, err := env.services.L1.ComputeL1(ctx, requirement.Id)
	require.NoError(t, err)

	ranked := l1Item(t, result, chairs)
	require.Len(t, ranked.Ranked, 1)
	require.Equal(t, runnerUp.Id, ranked.Lowest.BidId)
}

func TestComputeL1UnquotedItem(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	requirement := env.createRequirement(t, reqItem("Chairs", "40"), reqItem("Desks", "20"))
	chairs := itemId(t, requirement, "Chairs")
	desks := itemId(t, requirement, "Desks")
	env.submitBid(t, requirement.Id, uuid.NewString(), line(chairs, "100", "40"))

	result, err := env.services.L1.ComputeL1(ctx, requirement.Id)
	require.NoError(t, err)

	unquoted := l1Item(t, result, desks)
	require.Nil(t, unquoted.Lowest)
	require.Empty(t, unquoted.Ranked)
}

func TestComputeL1RequirementNotFound(t *testing.T) {
	env := newTestEnv()

	_, err := env.services.L1.ComputeL1(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, service.ErrRequirementNotFound)
}
