package controller

import (
	"errors"
	"net/http"

	"procurement-bidding-api/internal/entity"
	"procurement-bidding-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type bidRoutesHandler struct {
	bidService service.Bid
	validate   *validator.Validate
}

func newBidRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *bidRoutesHandler {
	h := &bidRoutesHandler{bidService: services.Bid, validate: v}
	outer.POST("/bids/new", h.PostBid)
	outer.GET("/bids/my", h.GetSupplierBids)
	outer.GET("/bids/:requirementId/list", h.GetRequirementBids)

	outer.GET("/bids/:bidId", h.GetBid)
	outer.PUT("/bids/:bidId/status", h.UpdateBidStatus)
	outer.PATCH("/bids/:bidId/edit", h.EditBid)

	return h
}

type bidItemJson struct {
	RequirementItemId string `json:"requirementItemId" validate:"required,uuid4"`
	UnitPrice         string `json:"unitPrice" validate:"required"`
	Quantity          string `json:"quantity" validate:"required"`
}

type postBidInput struct {
	RequirementId string        `json:"requirementId" validate:"required,uuid4"`
	SupplierId    string        `json:"supplierId" validate:"required,uuid4"`
	Items         []bidItemJson `json:"items" validate:"required,min=1,dive"`
}

func mapBidItemInputs(items []bidItemJson) ([]entity.BidItemInput, error) {
	inputs := make([]entity.BidItemInput, 0, len(items))
	for _, item := range items {
		unitPrice, err := parseDecimal("unitPrice", item.UnitPrice)
		if err != nil {
			return nil, err
		}
		quantity, err := parseDecimal("quantity", item.Quantity)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, entity.BidItemInput{
			RequirementItemId: item.RequirementItemId,
			UnitPrice:         unitPrice,
			Quantity:          quantity,
		})
	}

	return inputs, nil
}

// /bids/new
func (h *bidRoutesHandler) PostBid(c echo.Context) error {
	var input postBidInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	items, err := mapBidItemInputs(input.Items)
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
			return e
		}

		return err
	}

	model := &entity.SubmitBidInput{
		RequirementId: input.RequirementId,
		SupplierId:    input.SupplierId,
		Items:         items,
	}

	bid, err := h.bidService.SubmitBid(c.Request().Context(), model)
	if err == nil {
		if e := c.JSON(http.StatusOK, bid); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrRequirementNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no requirement with given id"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrRequirementNotOpen):
		if e := c.JSON(http.StatusForbidden, errorResponse{"Requirement isn't open, so you can't submit a bid"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrRequirementDeadlinePassed):
		if e := c.JSON(http.StatusForbidden, errorResponse{"Bidding deadline for the requirement has passed"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrItemNotInRequirement),
		errors.Is(err, service.ErrDuplicateBidItem),
		errors.Is(err, service.ErrNegativeUnitPrice),
		errors.Is(err, service.ErrNonPositiveQuantity),
		errors.Is(err, service.ErrNoItems):
		if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type getSupplierBidsInput struct {
	SupplierId string `query:"supplierId" validate:"required,uuid4"`
	Limit      int32  `query:"limit" validate:"gte=0,lte=50"`
	Offset     int32  `query:"offset" validate:"gte=0"`
}

func newGetSupplierBidsInput() getSupplierBidsInput {
	return getSupplierBidsInput{Limit: defaultLimit, Offset: defaultOffset}
}

// /bids/my
func (h *bidRoutesHandler) GetSupplierBids(c echo.Context) error {
	var input = newGetSupplierBidsInput()
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	bids, err := h.bidService.GetSupplierBids(c.Request().Context(), input.SupplierId, pg)
	if err == nil {
		if e := c.JSON(http.StatusOK, bids); e != nil {
			return e
		}

		return nil
	}

	if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
		return e
	}

	return err
}

type getRequirementBidsInput struct {
	RequirementId string `param:"requirementId" validate:"required,uuid4"`
	Limit         int32  `query:"limit" validate:"gte=0,lte=50"`
	Offset        int32  `query:"offset" validate:"gte=0"`
}

func newGetRequirementBidsInput() getRequirementBidsInput {
	return getRequirementBidsInput{Limit: defaultLimit, Offset: defaultOffset}
}

// /bids/:requirementId/list
func (h *bidRoutesHandler) GetRequirementBids(c echo.Context) error {
	var input = newGetRequirementBidsInput()
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	input.RequirementId = c.Param("requirementId")
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	bids, err := h.bidService.GetBidsForRequirement(c.Request().Context(), input.RequirementId, pg)
	if err == nil {
		if e := c.JSON(http.StatusOK, bids); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrRequirementNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no requirement with given id"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type getBidInput struct {
	BidId string `param:"bidId" validate:"required,uuid4"`
}

// /bids/:bidId
func (h *bidRoutesHandler) GetBid(c echo.Context) error {
	input := getBidInput{BidId: c.Param("bidId")}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	bid, err := h.bidService.GetBidById(c.Request().Context(), input.BidId)
	if err == nil {
		if e := c.JSON(http.StatusOK, bid); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrBidNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no bid with given id"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type updateBidStatusInput struct {
	BidId  string `param:"bidId" validate:"required,uuid4"`
	Status string `query:"status" validate:"required,oneof=accepted rejected"`
}

// /bids/:bidId/status
func (h *bidRoutesHandler) UpdateBidStatus(c echo.Context) error {
	input := updateBidStatusInput{
		BidId:  c.Param("bidId"),
		Status: c.QueryParam("status"),
	}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	bid, err := h.bidService.UpdateBidStatusById(c.Request().Context(), input.BidId, input.Status)
	if err == nil {
		if e := c.JSON(http.StatusOK, bid); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrBidNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no bid with given id"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrInvalidStatusTransition):
		if e := c.JSON(http.StatusForbidden, errorResponse{"Bid status can't change this way"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type editBidInput struct {
	BidId string        `param:"bidId" validate:"required,uuid4"`
	Items []bidItemJson `json:"items" validate:"required,min=1,dive"`
}

// /bids/:bidId/edit
func (h *bidRoutesHandler) EditBid(c echo.Context) error {
	var input editBidInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	input.BidId = c.Param("bidId")
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	items, err := mapBidItemInputs(input.Items)
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
			return e
		}

		return err
	}

	bid, err := h.bidService.UpdateBid(c.Request().Context(), input.BidId, items)
	if err == nil {
		if e := c.JSON(http.StatusOK, bid); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrBidNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no bid with given id"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrBidNotPending):
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only pending bids can be edited"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrRequirementNotOpen):
		if e := c.JSON(http.StatusForbidden, errorResponse{"Requirement isn't open, so the bid can't change"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrRequirementDeadlinePassed):
		if e := c.JSON(http.StatusForbidden, errorResponse{"Bidding deadline for the requirement has passed"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrItemNotInRequirement),
		errors.Is(err, service.ErrDuplicateBidItem),
		errors.Is(err, service.ErrNegativeUnitPrice),
		errors.Is(err, service.ErrNonPositiveQuantity),
		errors.Is(err, service.ErrNoItems):
		if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}
