package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"memeforge.backend/internal/interfaces/http/response"
	"memeforge.backend/internal/usecases"
)

// SiteHandler serves published sites
type SiteHandler struct {
	sites *usecases.SiteUseCase
}

// NewSiteHandler creates a new site handler
func NewSiteHandler(sites *usecases.SiteUseCase) *SiteHandler {
	return &SiteHandler{sites: sites}
}

// Render handles GET /sites/:subdomain
func (h *SiteHandler) Render(c *gin.Context) {
	subdomain := c.Param("subdomain")
	if subdomain == "" {
		response.BadRequest(c, "subdomain is required")
		return
	}

	site, err := h.sites.Render(c.Request.Context(), subdomain)
	if err != nil {
		response.Error(c, err)
		return
	}

	if site.Cached {
		c.Header("X-Cache", "HIT")
	} else {
		c.Header("X-Cache", "MISS")
	}
	c.Data(http.StatusOK, site.ContentType, site.Body)
}
