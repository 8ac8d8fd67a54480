package service_test

import (
	"context"
	"testing"

	"procurement-bidding-api/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestRecalculateCommission(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	bid, _, _ := acceptedBid(t, env)

	rec, err := env.services.Commission.Recalculate(ctx, bid.Id, dec("15"))
	require.NoError(t, err)
	require.Equal(t, "220", rec.PlatformFeePerUnit)
	require.Equal(t, "20", rec.ReferralSharePercentage)
	require.Equal(t, "15", rec.DispatchedQty)
	require.Equal(t, "660", rec.CommissionAmount)
	require.Equal(t, "2640", rec.PlatformNetRevenue)
}

func TestRecalculateCommissionIsPure(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	bid, _, _ := acceptedBid(t, env)

	first, err := env.services.Commission.Recalculate(ctx, bid.Id, dec("7.5"))
	require.NoError(t, err)
	second, err := env.services.Commission.Recalculate(ctx, bid.Id, dec("7.5"))
	require.NoError(t, err)

	require.Equal(t, first.CommissionAmount, second.CommissionAmount)
	require.Equal(t, first.PlatformNetRevenue, second.PlatformNetRevenue)
	require.Equal(t, first.DispatchedQty, second.DispatchedQty)

	// shrinking the quantity overwrites, never accumulates
	smaller, err := env.services.Commission.Recalculate(ctx, bid.Id, dec("2"))
	require.NoError(t, err)
	require.Equal(t, "88", smaller.CommissionAmount)
	require.Equal(t, "352", smaller.PlatformNetRevenue)
}

func TestRecalculateCommissionMissingRecord(t *testing.T) {
	env := newTestEnv()

	_, err := env.services.Commission.Recalculate(context.Background(), uuid.NewString(), decimal.NewFromInt(5))
	require.ErrorIs(t, err, service.ErrCommissionRecordNotFound)
}

func TestRecalculateFromBid(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	bid, chairsLine, desksLine := acceptedBid(t, env)
	_, err := env.services.Dispatch.RecordDispatch(ctx, bid.Id, map[string]decimal.Decimal{
		chairsLine: dec("10"),
		desksLine:  dec("5"),
	}, false)
	require.NoError(t, err)

	rec, err := env.services.Commission.RecalculateFromBid(ctx, bid.Id)
	require.NoError(t, err)
	require.Equal(t, "15", rec.DispatchedQty)
	require.Equal(t, "660", rec.CommissionAmount)
}

func TestRecalculateFromBidUnknownBid(t *testing.T) {
	env := newTestEnv()

	_, err := env.services.Commission.RecalculateFromBid(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, service.ErrBidNotFound)
}
