package handler

import (
	"greenmart-api/internal/dto"
	"greenmart-api/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
)

type AdminOrderHandler struct {
	adminOrderService service.AdminOrderService
}

func NewAdminOrderHandler(adminOrderService service.AdminOrderService) *AdminOrderHandler {
	return &AdminOrderHandler{
		adminOrderService: adminOrderService,
	}
}

func (h *AdminOrderHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.adminOrderService.List(ctx)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *AdminOrderHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.adminOrderService.Get(ctx, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, order)
}

func (h *AdminOrderHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AdminOrderUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	order, err := h.adminOrderService.Update(ctx, c.Param("id"), &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, order)
}

func (h *AdminOrderHandler) SetPayment(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.PaymentToggleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	order, err := h.adminOrderService.SetPayment(ctx, c.Param("id"), req.IsPaid)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, order)
}

func (h *AdminOrderHandler) SetDeliveryStatus(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.DeliveryStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	order, err := h.adminOrderService.SetDeliveryStatus(ctx, c.Param("id"), req.DeliveryStatus)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, order)
}

func (h *AdminOrderHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.adminOrderService.Delete(ctx, c.Param("id")); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AdminOrderHandler) SalesSummary(c echo.Context) error {
	ctx := c.Request().Context()

	summary, err := h.adminOrderService.SalesSummary(ctx)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, summary)
}
