package controller

import (
	"errors"
	"net/http"
	"time"

	"procurement-bidding-api/internal/entity"
	"procurement-bidding-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type requirementRoutesHandler struct {
	requirementService service.Requirement
	l1Service          service.L1
	validate           *validator.Validate
}

func newRequirementRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *requirementRoutesHandler {
	h := &requirementRoutesHandler{
		requirementService: services.Requirement,
		l1Service:          services.L1,
		validate:           v,
	}
	outer.POST("/requirements/new", h.PostRequirement)
	outer.GET("/requirements/:requirementId", h.GetRequirement)
	outer.PUT("/requirements/:requirementId/status", h.UpdateRequirementStatus)
	outer.GET("/requirements/:requirementId/l1", h.GetL1)

	return h
}

type postRequirementItemInput struct {
	ItemName string `json:"itemName" validate:"required,max=200"`
	Quantity string `json:"quantity" validate:"required"`
	Unit     string `json:"unit" validate:"required,max=50"`
	Category string `json:"category" validate:"max=100"`
}

type postRequirementInput struct {
	Title    string                     `json:"title" validate:"required,max=200"`
	BuyerId  string                     `json:"buyerId" validate:"required,uuid4"`
	Deadline string                     `json:"deadline" validate:"required"`
	Items    []postRequirementItemInput `json:"items" validate:"required,min=1,dive"`
}

// /requirements/new
func (h *requirementRoutesHandler) PostRequirement(c echo.Context) error {
	var input postRequirementInput
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

	deadline, err := time.Parse(time.RFC3339, input.Deadline)
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"'deadline': should be a timestamp in RFC 3339 format"}); e != nil {
			return e
		}

		return err
	}

	model := &entity.CreateRequirementInput{
		Title:    input.Title,
		BuyerId:  input.BuyerId,
		Deadline: deadline,
		Items:    make([]entity.CreateRequirementItemInput, 0, len(input.Items)),
	}
	for _, item := range input.Items {
		quantity, err := parseDecimal("quantity", item.Quantity)
		if err != nil {
			if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
				return e
			}

			return err
		}
		model.Items = append(model.Items, entity.CreateRequirementItemInput{
			ItemName: item.ItemName,
			Quantity: quantity,
			Unit:     item.Unit,
			Category: item.Category,
		})
	}

	requirement, err := h.requirementService.CreateRequirement(c.Request().Context(), model)
	if err == nil {
		if e := c.JSON(http.StatusOK, requirement); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrNoItems),
		errors.Is(err, service.ErrEmptyItemName),
		errors.Is(err, service.ErrEmptyUnit),
		errors.Is(err, service.ErrNonPositiveQuantity):
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

type getRequirementInput struct {
	RequirementId string `param:"requirementId" validate:"required,uuid4"`
}

// /requirements/:requirementId
func (h *requirementRoutesHandler) GetRequirement(c echo.Context) error {
	input := getRequirementInput{RequirementId: c.Param("requirementId")}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	requirement, err := h.requirementService.GetRequirementById(c.Request().Context(), input.RequirementId)
	if err == nil {
		if e := c.JSON(http.StatusOK, requirement); e != nil {
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

type updateRequirementStatusInput struct {
	RequirementId string `param:"requirementId" validate:"required,uuid4"`
	Status        string `query:"status" validate:"required,oneof=awarded closed cancelled"`
}

// /requirements/:requirementId/status
func (h *requirementRoutesHandler) UpdateRequirementStatus(c echo.Context) error {
	input := updateRequirementStatusInput{
		RequirementId: c.Param("requirementId"),
		Status:        c.QueryParam("status"),
	}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	requirement, err := h.requirementService.UpdateRequirementStatusById(c.Request().Context(), input.RequirementId, input.Status)
	if err == nil {
		if e := c.JSON(http.StatusOK, requirement); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrRequirementNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no requirement with given id"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrInvalidStatusTransition):
		if e := c.JSON(http.StatusForbidden, errorResponse{"Requirement status can't change this way"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

// /requirements/:requirementId/l1
func (h *requirementRoutesHandler) GetL1(c echo.Context) error {
	input := getRequirementInput{RequirementId: c.Param("requirementId")}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	result, err := h.l1Service.ComputeL1(c.Request().Context(), input.RequirementId)
	if err == nil {
		if e := c.JSON(http.StatusOK, result); e != nil {
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
