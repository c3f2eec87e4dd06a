package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agencyops/crm-system/internal/core/ports"
)

// ReportHandler serves the dashboard aggregate.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Stats handles GET /api/stats.
//
// @Summary      Dashboard statistics
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Stats
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/stats [get]
func (h *ReportHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
