package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"memeforge.backend/internal/domain/entities"
	"memeforge.backend/internal/interfaces/http/middleware"
	"memeforge.backend/internal/interfaces/http/response"
	"memeforge.backend/internal/usecases"
	"memeforge.backend/pkg/utils"
)

// ProjectHandler handles project endpoints
type ProjectHandler struct {
	projects *usecases.ProjectUseCase
	sites    *usecases.SiteUseCase
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projects *usecases.ProjectUseCase, sites *usecases.SiteUseCase) *ProjectHandler {
	return &ProjectHandler{projects: projects, sites: sites}
}

// Create handles POST /api/v1/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
		return
	}

	var input entities.CreateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "name and a valid subdomain are required")
		return
	}

	project, err := h.projects.Create(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"success": true,
		"project": project,
	})
}

// GetByID handles GET /api/v1/projects/:id
func (h *ProjectHandler) GetByID(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	project, err := h.projects.GetOwned(c.Request.Context(), userID, projectID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success": true,
		"project": project,
	})
}

// List handles GET /api/v1/projects
func (h *ProjectHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	projects, total, err := h.projects.ListByUser(c.Request.Context(), userID, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success":  true,
		"projects": projects,
		"meta":     utils.CalculateMeta(total, params.Page, params.Limit),
	})
}

// Publish handles POST /api/v1/projects/:id/publish
func (h *ProjectHandler) Publish(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	project, err := h.projects.Publish(c.Request.Context(), userID, projectID)
	if err != nil {
		response.Error(c, err)
		return
	}

	// A republish should not keep serving the old render.
	if h.sites != nil {
		h.sites.Invalidate(c.Request.Context(), project.Subdomain)
	}

	response.Success(c, http.StatusOK, gin.H{
		"success": true,
		"project": project,
	})
}
