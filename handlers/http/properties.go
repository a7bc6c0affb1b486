package httpHandler

import (
	"net/http"

	"rental-server/middleware"
	"rental-server/query"
	"rental-server/usecases"

	"github.com/gin-gonic/gin"
)

type PropertyHandler struct {
	useCase *usecases.PropertyUseCase
}

func NewPropertyHandler(useCase *usecases.PropertyUseCase) *PropertyHandler {
	return &PropertyHandler{
		useCase: useCase,
	}
}

// GetProperties handles GET /api/properties
func (h *PropertyHandler) GetProperties(c *gin.Context) {
	values := c.Request.URL.Query()
	filter, err := query.ParsePropertyFilter(values)
	if err != nil {
		respondError(c, err)
		return
	}
	page, err := query.ParsePage(values, query.DefaultPropertyLimit)
	if err != nil {
		respondError(c, err)
		return
	}

	properties, meta, err := h.useCase.ListProperties(c.Request.Context(), filter, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   meta.Count,
		"total":   meta.Total,
		"page":    meta.Page,
		"pages":   meta.Pages,
		"data":    emptyIfNil(properties),
	})
}

// GetProperty handles GET /api/properties/:id
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	property, err := h.useCase.GetProperty(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    property,
	})
}

// CreateProperty handles POST /api/properties
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)

	var in usecases.PropertyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c)
		return
	}

	property, err := h.useCase.CreateProperty(c.Request.Context(), caller, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    property,
	})
}

// UpdateProperty handles PUT /api/properties/:id
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)

	var in usecases.PropertyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c)
		return
	}

	property, err := h.useCase.UpdateProperty(c.Request.Context(), caller, c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    property,
	})
}

// DeleteProperty handles DELETE /api/properties/:id
func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)

	if err := h.useCase.DeleteProperty(c.Request.Context(), caller, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Property deleted successfully",
	})
}

// GetMyProperties handles GET /api/properties/agent/my-properties
func (h *PropertyHandler) GetMyProperties(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)

	properties, err := h.useCase.ListAgentProperties(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(properties),
		"data":    emptyIfNil(properties),
	})
}
