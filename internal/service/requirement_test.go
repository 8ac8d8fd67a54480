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

func TestCreateRequirementStartsActive(t *testing.T) {
	env := newTestEnv()

	requirement := env.createRequirement(t, reqItem("Chairs", "40"), reqItem("Desks", "20"))

	require.Equal(t, common.RequirementActive, requirement.Status)
	require.Len(t, requirement.Items, 2)
	require.Equal(t, "40", requirement.Items[0].Quantity)
}

func TestCreateRequirementValidation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	cases := []struct {
		name  string
		items []entity.CreateRequirementItemInput
		want  error
	}{
		{"no items", nil, service.ErrNoItems},
		{"empty name", []entity.CreateRequirementItemInput{{ItemName: "  ", Quantity: dec("5"), Unit: "pcs"}}, service.ErrEmptyItemName},
		{"empty unit", []entity.CreateRequirementItemInput{{ItemName: "Chairs", Quantity: dec("5")}}, service.ErrEmptyUnit},
		{"zero quantity", []entity.CreateRequirementItemInput{{ItemName: "Chairs", Quantity: dec("0"), Unit: "pcs"}}, service.ErrNonPositiveQuantity},
		{"negative quantity", []entity.CreateRequirementItemInput{{ItemName: "Chairs", Quantity: dec("-3"), Unit: "pcs"}}, service.ErrNonPositiveQuantity},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.services.Requirement.CreateRequirement(ctx, &entity.CreateRequirementInput{
				Title:    "Broken requirement",
				BuyerId:  uuid.NewString(),
				Deadline: time.Now().Add(time.Hour),
				Items:    tc.items,
			})
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRequirementStatusTransitions(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	requirement := env.createRequirement(t, reqItem("Chairs", "40"))

	awarded, err := env.services.Requirement.UpdateRequirementStatusById(ctx, requirement.Id, common.RequirementAwarded)
	require.NoError(t, err)
	require.Equal(t, common.RequirementAwarded, awarded.Status)

	closed, err := env.services.Requirement.UpdateRequirementStatusById(ctx, requirement.Id, common.RequirementClosed)
	require.NoError(t, err)
	require.Equal(t, common.RequirementClosed, closed.Status)

	// closed is terminal
	_, err = env.services.Requirement.UpdateRequirementStatusById(ctx, requirement.Id, common.RequirementActive)
	require.ErrorIs(t, err, service.ErrInvalidStatusTransition)
	_, err = env.services.Requirement.UpdateRequirementStatusById(ctx, requirement.Id, common.RequirementCancelled)
	require.ErrorIs(t, err, service.ErrInvalidStatusTransition)
}

func TestGetRequirementNotFound(t *testing.T) {
	env := newTestEnv()

	_, err := env.services.Requirement.GetRequirementById(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, service.ErrRequirementNotFound)
}
