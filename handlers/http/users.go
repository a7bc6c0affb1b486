package httpHandler

import (
	"net/http"

	"rental-server/query"
	"rental-server/usecases"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	useCase *usecases.UserUseCase
}

func NewUserHandler(useCase *usecases.UserUseCase) *UserHandler {
	return &UserHandler{
		useCase: useCase,
	}
}

// GetAgents handles GET /api/users/agents
func (h *UserHandler) GetAgents(c *gin.Context) {
	page, err := query.ParsePage(c.Request.URL.Query(), query.DefaultDirectoryLimit)
	if err != nil {
		respondError(c, err)
		return
	}

	agents, meta, err := h.useCase.ListAgents(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   meta.Count,
		"total":   meta.Total,
		"data":    emptyIfNil(agents),
	})
}

// GetUser handles GET /api/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	user, stats, err := h.useCase.GetUserProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"user":  user,
			"stats": stats,
		},
	})
}

// GetUserProperties handles GET /api/users/:id/properties
func (h *UserHandler) GetUserProperties(c *gin.Context) {
	page, err := query.ParsePage(c.Request.URL.Query(), query.DefaultDirectoryLimit)
	if err != nil {
		respondError(c, err)
		return
	}

	properties, meta, err := h.useCase.GetUserProperties(c.Request.Context(), c.Param("id"), page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   meta.Count,
		"total":   meta.Total,
		"data":    emptyIfNil(properties),
	})
}

// UpdateUser handles PUT /api/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var in usecases.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c)
		return
	}

	user, err := h.useCase.UpdateUser(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User updated successfully",
		"data":    user,
	})
}
