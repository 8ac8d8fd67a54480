package controller

import (
	"errors"
	"net/http"

	"procurement-bidding-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
	"github.com/shopspring/decimal"
)

type dispatchRoutesHandler struct {
	dispatchService   service.Dispatch
	commissionService service.Commission
	validate          *validator.Validate
}

func newDispatchRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *dispatchRoutesHandler {
	h := &dispatchRoutesHandler{
		dispatchService:   services.Dispatch,
		commissionService: services.Commission,
		validate:          v,
	}
	outer.POST("/bids/:bidId/dispatch", h.RecordDispatch)
	outer.POST("/bids/:bidId/dispatch/single", h.RecordDispatchSingle)
	outer.GET("/bids/:bidId/commission", h.GetCommission)
	outer.POST("/bids/:bidId/commission/recalculate", h.RecalculateCommission)

	return h
}

type recordDispatchInput struct {
	BidId            string            `param:"bidId" validate:"required,uuid4"`
	Items            map[string]string `json:"items" validate:"required,min=1"`
	CloseRequirement bool              `json:"closeRequirement"`
}

// /bids/:bidId/dispatch
func (h *dispatchRoutesHandler) RecordDispatch(c echo.Context) error {
	var input recordDispatchInput
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

	perItem := make(map[string]decimal.Decimal, len(input.Items))
	for bidItemId, raw := range input.Items {
		qty, err := parseDecimal("items."+bidItemId, raw)
		if err != nil {
			if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
				return e
			}

			return err
		}
		perItem[bidItemId] = qty
	}

	bid, err := h.dispatchService.RecordDispatch(c.Request().Context(), input.BidId, perItem, input.CloseRequirement)
	if err == nil {
		if e := c.JSON(http.StatusOK, bid); e != nil {
			return e
		}

		return nil
	}

	return h.writeDispatchError(c, err)
}

type recordDispatchSingleInput struct {
	BidId            string `param:"bidId" validate:"required,uuid4"`
	Quantity         string `json:"quantity" validate:"required"`
	CloseRequirement bool   `json:"closeRequirement"`
}

// /bids/:bidId/dispatch/single
func (h *dispatchRoutesHandler) RecordDispatchSingle(c echo.Context) error {
	var input recordDispatchSingleInput
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

	qty, err := parseDecimal("quantity", input.Quantity)
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
			return e
		}

		return err
	}

	bid, err := h.dispatchService.RecordDispatchSingle(c.Request().Context(), input.BidId, qty, input.CloseRequirement)
	if err == nil {
		if e := c.JSON(http.StatusOK, bid); e != nil {
			return e
		}

		return nil
	}

	return h.writeDispatchError(c, err)
}

func (h *dispatchRoutesHandler) writeDispatchError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrBidNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no bid with given id"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrBidItemNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{"Dispatch references a bid item outside the bid"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrBidNotAccepted):
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only accepted bids can be dispatched against"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrSingleDispatchOnMultiItemBid):
		if e := c.JSON(http.StatusConflict, errorResponse{"Single-total dispatch isn't allowed on a bid with several items"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrDispatchConflict):
		if e := c.JSON(http.StatusConflict, errorResponse{"Bid was changed by someone else, please retry the dispatch"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrInvalidDispatchQuantity),
		errors.Is(err, service.ErrDispatchExceedsCommitted):
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

type commissionInput struct {
	BidId string `param:"bidId" validate:"required,uuid4"`
}

// /bids/:bidId/commission
func (h *dispatchRoutesHandler) GetCommission(c echo.Context) error {
	input := commissionInput{BidId: c.Param("bidId")}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	rec, err := h.commissionService.GetCommissionByBidId(c.Request().Context(), input.BidId)
	if err == nil {
		if e := c.JSON(http.StatusOK, rec); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrCommissionRecordNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no commission record for given bid"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

// /bids/:bidId/commission/recalculate
func (h *dispatchRoutesHandler) RecalculateCommission(c echo.Context) error {
	input := commissionInput{BidId: c.Param("bidId")}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	rec, err := h.commissionService.RecalculateFromBid(c.Request().Context(), input.BidId)
	if err == nil {
		if e := c.JSON(http.StatusOK, rec); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrBidNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no bid with given id"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrCommissionRecordNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no commission record for given bid"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}
