package handler

import (
	"greenmart-api/internal/dto"
	"greenmart-api/internal/middleware"
	"greenmart-api/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	review, err := h.reviewService.Create(ctx, middleware.UserID(c), c.Param("id"), &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) ListByProduct(c echo.Context) error {
	ctx := c.Request().Context()

	reviews, err := h.reviewService.ListByProduct(ctx, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, reviews)
}
