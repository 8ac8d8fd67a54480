package controller

import (
	"procurement-bidding-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

func SetupRoutesHandlers(handler *echo.Echo, services *service.Services) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	api := handler.Group("/api")
	newDiagnosticsRoutesHandler(api, services)
	newRequirementRoutesHandler(api, services, validate)
	newBidRoutesHandler(api, services, validate)
	newDispatchRoutesHandler(api, services, validate)
}
