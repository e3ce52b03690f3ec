package handler

import (
	"errors"
	"greenmart-api/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
)

// httpError maps service sentinels onto status codes; anything unmapped
// bubbles to Echo's default 500 handler.
func httpError(err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return err
}
