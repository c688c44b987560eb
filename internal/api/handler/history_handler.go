package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nutrition5k/nutrition-api/internal/api/middleware"
	"github.com/nutrition5k/nutrition-api/internal/core/ports"
)

// HistoryHandler serves the per-user prediction history view.
type HistoryHandler struct {
	service ports.HistoryService
}

func NewHistoryHandler(service ports.HistoryService) *HistoryHandler {
	return &HistoryHandler{service: service}
}

// Get returns the caller's most recent predictions, newest first.
// Anonymous callers get an empty list, not an error.
//
// @Summary      Recent prediction history
// @Tags         history
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse
// @Router       /history [get]
func (h *HistoryHandler) Get(c echo.Context) error {
	userID, _ := c.Get(middleware.CtxUserID).(string)

	predictions, err := h.service.RecentPredictions(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, successResponse{Success: true, Data: predictions})
}
