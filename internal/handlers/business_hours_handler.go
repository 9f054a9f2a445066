package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/appointment-scheduler/internal/middleware"
	"github.com/BruksfildServices01/appointment-scheduler/internal/usecase/businesshours"
)

type BusinessHoursHandler struct {
	get    *businesshours.GetBusinessHours
	save   *businesshours.SaveBusinessHours
	logger *slog.Logger
}

func NewBusinessHoursHandler(
	get *businesshours.GetBusinessHours,
	save *businesshours.SaveBusinessHours,
	logger *slog.Logger,
) *BusinessHoursHandler {
	return &BusinessHoursHandler{get: get, save: save, logger: logger}
}

// Body and response: {"0": {"isOpen": false, "intervals": []}, ..., "6": {...}}
func (h *BusinessHoursHandler) Get(c *gin.Context) {
	week, err := h.get.Execute(c.Request.Context(), middleware.BusinessID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.OK(c, week)
}

func (h *BusinessHoursHandler) Update(c *gin.Context) {
	var week schedule.Week
	if err := c.ShouldBindJSON(&week); err != nil {
		badRequest(c, "invalid_request")
		return
	}

	saved, err := h.save.Execute(c.Request.Context(), middleware.BusinessID(c), week)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.OK(c, saved)
}
