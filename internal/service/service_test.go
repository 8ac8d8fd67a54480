package service_test

import (
	"context"
	"testing"
	"time"

	"procurement-bidding-api/internal/common"
	"procurement-bidding-api/internal/entity"
	"procurement-bidding-api/internal/repo"
	"procurement-bidding-api/internal/repo/memory"
	"procurement-bidding-api/internal/service"
	"procurement-bidding-api/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type testEnv struct {
	repos    *repo.Repositories
	services *service.Services
}

func newTestEnv() *testEnv {
	repos := memory.NewRepositories()

	return &testEnv{
		repos:    repos,
		services: service.NewServices(repos, logger.Nop(), nil),
	}
}

func reqItem(name, qty string) entity.CreateRequirementItemInput {
	return entity.CreateRequirementItemInput{ItemName: name, Quantity: dec(qty), Unit: "pcs"}
}

func (e *testEnv) createRequirement(t *testing.T, items ...entity.CreateRequirementItemInput) *entity.RequirementOutputModel {
	t.Helper()
	requirement, err := e.services.Requirement.CreateRequirement(context.Background(), &entity.CreateRequirementInput{
		Title:    "Office fit-out",
		BuyerId:  uuid.NewString(),
		Deadline: time.Now().Add(24 * time.Hour),
		Items:    items,
	})
	require.NoError(t, err)

	return requirement
}

func itemId(t *testing.T, requirement *entity.RequirementOutputModel, name string) string {
	t.Helper()
	for _, item := range requirement.Items {
		if item.ItemName == name {
			return item.Id
		}
	}
	t.Fatalf("requirement has no item named %q", name)

	return ""
}

func line(requirementItemId, price, qty string) entity.BidItemInput {
	return entity.BidItemInput{
		RequirementItemId: requirementItemId,
		UnitPrice:         dec(price),
		Quantity:          dec(qty),
	}
}

func (e *testEnv) submitBid(t *testing.T, requirementId, supplierId string, lines ...entity.BidItemInput) *entity.BidOutputModel {
	t.Helper()
	bid, err := e.services.Bid.SubmitBid(context.Background(), &entity.SubmitBidInput{
		RequirementId: requirementId,
		SupplierId:    supplierId,
		Items:         lines,
	})
	require.NoError(t, err)

	return bid
}

func (e *testEnv) acceptBid(t *testing.T, bidId string) {
	t.Helper()
	_, err := e.services.Bid.UpdateBidStatusById(context.Background(), bidId, common.BidAccepted)
	require.NoError(t, err)
}

func (e *testEnv) provisionCommission(t *testing.T, bidId string) {
	t.Helper()
	_, err := e.repos.Commission.CreateCommission(context.Background(), &entity.CommissionRecord{
		BidId:                   uuid.MustParse(bidId),
		PlatformFeePerUnit:      common.DefaultPlatformFeePerUnit,
		ReferralSharePercentage: common.DefaultReferralSharePercentage,
		DispatchedQty:           decimal.Zero,
		CommissionAmount:        decimal.Zero,
		PlatformNetRevenue:      decimal.Zero,
		UpdatedAt:               time.Now(),
	})
	require.NoError(t, err)
}

func bidItemId(t *testing.T, bid *entity.BidOutputModel, requirementItemId string) string {
	t.Helper()
	for _, item := range bid.Items {
		if item.RequirementItemId == requirementItemId {
			return item.Id
		}
	}
	t.Fatalf("bid has no item for requirement item %s", requirementItemId)

	return ""
}
