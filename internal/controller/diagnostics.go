package controller

import (
	"net/http"

	"procurement-bidding-api/internal/service"

	"github.com/labstack/echo"
)

type diagnosticsRoutesHandler struct {
	diagnosticsService service.Diagnostics
}

func newDiagnosticsRoutesHandler(outer *echo.Group, services *service.Services) *diagnosticsRoutesHandler {
	h := &diagnosticsRoutesHandler{services.Diagnostics}
	outer.GET("/ping", h.Ping)

	return h
}

func (h *diagnosticsRoutesHandler) Ping(c echo.Context) error {
	err := h.diagnosticsService.Ping()
	if err != nil {
		if e := c.NoContent(http.StatusInternalServerError); e != nil {
			return e
		}

		return err
	}
	if e := c.JSON(http.StatusOK, "ok"); e != nil {
		return e
	}

	return nil
}
