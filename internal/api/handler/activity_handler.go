package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/thehex/board/internal/core/domain"
	"github.com/thehex/board/internal/core/ports"
)

// ActivityHandler exposes the audit trail to administrators.
type ActivityHandler struct {
	service ports.ActivityService
}

func NewActivityHandler(service ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// Recent lists the newest audit entries.
//
// @Summary      Recent account activity
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum entries (default 20, max 100)"
// @Success      200    {object}  activityListResponse
// @Failure      401    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Router       /admin/activity [get]
func (h *ActivityHandler) Recent(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer")
		}
		limit = n
	}

	items, err := h.service.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	if items == nil {
		items = []domain.Activity{}
	}
	return c.JSON(http.StatusOK, activityListResponse{Items: items})
}
