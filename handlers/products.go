package handlers

import (
	"net/http"

	"businessconnect/services/business"
	"businessconnect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type deleteProductRequest struct {
	Service string `json:"service"`
}

func (h *BusinessHandler) bindProduct(c *gin.Context) (business.ProductRequest, bool) {
	var req business.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		getLogger(c).Warn("Invalid product payload", zap.Error(err))
		utils.RespondError(c, utils.BadRequest("Invalid request payload"))
		return req, false
	}
	return req, true
}

// AddProductHandler handles POST /api/businesses/:id/products.
func (h *BusinessHandler) AddProductHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	req, ok := h.bindProduct(c)
	if !ok {
		return
	}
	b, err := h.BusinessService.AddProduct(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// UpdateProductHandler handles PUT /api/businesses/:id/products/:productId.
func (h *BusinessHandler) UpdateProductHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	req, ok := h.bindProduct(c)
	if !ok {
		return
	}
	b, err := h.BusinessService.UpdateProduct(c.Request.Context(), actor, c.Param("id"), c.Param("productId"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DeleteProductHandler handles DELETE /api/businesses/:id/products/:productId.
// The owning service is named in the body.
func (h *BusinessHandler) DeleteProductHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req deleteProductRequest
	// An empty body is reported by the service as a missing service name.
	_ = c.ShouldBindJSON(&req)

	b, err := h.BusinessService.DeleteProduct(c.Request.Context(), actor, c.Param("id"), c.Param("productId"), req.Service)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
