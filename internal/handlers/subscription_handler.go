package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointment-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/appointment-scheduler/internal/middleware"
	"github.com/BruksfildServices01/appointment-scheduler/internal/usecase/subscription"
)

type SubscriptionHandler struct {
	create *subscription.CreateSubscription
	mine   *subscription.GetMySubscription
	plans  *subscription.ListPlans
	logger *slog.Logger
}

func NewSubscriptionHandler(
	create *subscription.CreateSubscription,
	mine *subscription.GetMySubscription,
	plans *subscription.ListPlans,
	logger *slog.Logger,
) *SubscriptionHandler {
	return &SubscriptionHandler{create: create, mine: mine, plans: plans, logger: logger}
}

type CreateSubscriptionRequest struct {
	Plan string `json:"plan" binding:"required"`
}

func (h *SubscriptionHandler) Create(c *gin.Context) {
	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_request")
		return
	}

	out, err := h.create.Execute(c.Request.Context(), middleware.BusinessID(c), req.Plan)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.Created(c, out)
}

func (h *SubscriptionHandler) Mine(c *gin.Context) {
	out, err := h.mine.Execute(c.Request.Context(), middleware.BusinessID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.OK(c, out)
}

func (h *SubscriptionHandler) Plans(c *gin.Context) {
	httpresp.List(c, h.plans.Execute())
}
