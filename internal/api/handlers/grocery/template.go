package grocery

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recipe-slot/internal/pkg/common"
)

// SaveTemplateRequest 把目前清單存成範本
type SaveTemplateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
}

// LoadTemplateRequest 套用範本到清單
type LoadTemplateRequest struct {
	Replace bool `json:"replace"` // true：先清空清單再套用
}

// ListTemplates 取得所有範本
// GET /api/v1/grocery-templates
func (h *Handler) ListTemplates(c *gin.Context) {
	templates, err := h.service.ListTemplates(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates, "count": len(templates)})
}

// SaveTemplate 把目前清單原樣存成範本
// POST /api/v1/grocery-templates
func (h *Handler) SaveTemplate(c *gin.Context) {
	var req SaveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.NewValidationError("template name is required"))
		return
	}

	template, err := h.service.SaveAsTemplate(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, template)
}

// LoadTemplate 套用範本到採購清單
// POST /api/v1/grocery-templates/:id/load
func (h *Handler) LoadTemplate(c *gin.Context) {
	templateID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req LoadTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		respondError(c, common.NewValidationError("invalid request body"))
		return
	}

	list, err := h.service.LoadTemplate(c.Request.Context(), templateID, req.Replace)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// DeleteTemplate 刪除範本（冪等）
// DELETE /api/v1/grocery-templates/:id
func (h *Handler) DeleteTemplate(c *gin.Context) {
	templateID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteTemplate(c.Request.Context(), templateID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
