package handlers

import (
	"net/http"

	"businessconnect/services/review"
	"businessconnect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	ReviewService review.ReviewService
}

// GetReviewsHandler handles GET /api/businesses/:id/reviews.
func (h *ReviewHandler) GetReviewsHandler(c *gin.Context) {
	reviews, err := h.ReviewService.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// CreateReviewHandler handles POST /api/businesses/:id/reviews.
func (h *ReviewHandler) CreateReviewHandler(c *gin.Context) {
	logger := getLogger(c)
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req review.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid review payload", zap.Error(err))
		utils.RespondError(c, utils.BadRequest("Invalid request payload"))
		return
	}

	created, err := h.ReviewService.Create(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	logger.Info("Review created", zap.String("businessId", created.BusinessID), zap.String("userId", actor.ID))
	c.JSON(http.StatusCreated, created)
}
