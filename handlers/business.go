package handlers

import (
	"net/http"
	"strconv"

	"businessconnect/services/business"
	"businessconnect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BusinessHandler serves the business directory endpoints under /api/businesses.
type BusinessHandler struct {
	BusinessService business.BusinessService
}

// CreateBusinessHandler handles POST /api/businesses.
func (h *BusinessHandler) CreateBusinessHandler(c *gin.Context) {
	logger := getLogger(c)
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req business.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid business payload", zap.Error(err))
		utils.RespondError(c, utils.BadRequest("Invalid request payload"))
		return
	}

	created, err := h.BusinessService.Create(c.Request.Context(), actor, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	logger.Info("Business created", zap.String("businessId", created.ID), zap.String("ownerId", actor.ID))
	c.JSON(http.StatusCreated, created)
}

// GetBusinessHandler handles GET /api/businesses/:id, where :id may also be a page name.
func (h *BusinessHandler) GetBusinessHandler(c *gin.Context) {
	b, err := h.BusinessService.Get(c.Request.Context(), c.Param("id"), viewerKey(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetMyBusinessesHandler handles GET /api/businesses.
func (h *BusinessHandler) GetMyBusinessesHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	list, err := h.BusinessService.ListOwn(c.Request.Context(), actor)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetAllBusinessesHandler handles GET /api/businesses/get-all.
func (h *BusinessHandler) GetAllBusinessesHandler(c *gin.Context) {
	query := business.PublicQuery{
		Category: c.Query("category"),
		Q:        c.Query("q"),
	}
	var err error
	if query.Page, err = intQuery(c, "page"); err != nil {
		utils.RespondError(c, err)
		return
	}
	if query.Limit, err = intQuery(c, "limit"); err != nil {
		utils.RespondError(c, err)
		return
	}

	listing, err := h.BusinessService.ListPublic(c.Request.Context(), query, viewerKey(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// UpdateBusinessHandler handles PUT /api/businesses/:id.
func (h *BusinessHandler) UpdateBusinessHandler(c *gin.Context) {
	logger := getLogger(c)
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req business.UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid business update payload", zap.Error(err))
		utils.RespondError(c, utils.BadRequest("Invalid request payload"))
		return
	}

	updated, err := h.BusinessService.Update(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteBusinessHandler handles DELETE /api/businesses/:id.
func (h *BusinessHandler) DeleteBusinessHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.BusinessService.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("Business deleted", zap.String("businessId", c.Param("id")))
	c.JSON(http.StatusOK, gin.H{"message": "Business deleted successfully"})
}

// GetStatsHandler handles GET /api/businesses/stats.
func (h *BusinessHandler) GetStatsHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	stats, err := h.BusinessService.Stats(c.Request.Context(), actor)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// RecordInquiryHandler handles POST /api/businesses/:id/inquiries.
func (h *BusinessHandler) RecordInquiryHandler(c *gin.Context) {
	if err := h.BusinessService.RecordInquiry(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inquiry recorded"})
}

// UploadImageHandler handles POST /api/businesses/upload/image with a multipart "image" field.
func (h *BusinessHandler) UploadImageHandler(c *gin.Context) {
	logger := getLogger(c)
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	header, err := c.FormFile("image")
	if err != nil {
		logger.Warn("Missing image upload", zap.Error(err))
		utils.RespondError(c, utils.BadRequest("No image file provided"))
		return
	}
	file, err := header.Open()
	if err != nil {
		utils.RespondError(c, utils.Internal("Failed to read uploaded file", err))
		return
	}
	defer file.Close()

	url, err := h.BusinessService.UploadImage(c.Request.Context(), actor, business.ImageUpload{File: file, Size: header.Size})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// intQuery reads an optional non-negative integer query parameter.
func intQuery(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, utils.BadRequest("Invalid " + key + " parameter")
	}
	return n, nil
}
