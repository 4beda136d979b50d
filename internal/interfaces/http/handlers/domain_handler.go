package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"memeforge.backend/internal/domain/entities"
	"memeforge.backend/internal/interfaces/http/middleware"
	"memeforge.backend/internal/interfaces/http/response"
	"memeforge.backend/internal/usecases"
)

// DomainHandler handles custom-domain endpoints
type DomainHandler struct {
	domains *usecases.DomainUseCase
}

// NewDomainHandler creates a new custom-domain handler
func NewDomainHandler(domains *usecases.DomainUseCase) *DomainHandler {
	return &DomainHandler{domains: domains}
}

// Add handles POST /api/v1/projects/:id/domains
func (h *DomainHandler) Add(c *gin.Context) {
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

	var input entities.AddDomainInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "a fully qualified domain is required")
		return
	}

	domain, err := h.domains.Add(c.Request.Context(), userID, projectID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"success": true,
		"domain":  domain,
		"dnsRecord": gin.H{
			"type":  "TXT",
			"name":  h.domains.TXTRecordName(domain.Domain),
			"value": domain.VerificationToken,
		},
	})
}

// List handles GET /api/v1/projects/:id/domains
func (h *DomainHandler) List(c *gin.Context) {
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

	domains, err := h.domains.ListByProject(c.Request.Context(), userID, projectID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success": true,
		"domains": domains,
	})
}

// Verify handles POST /api/v1/domains/:id/verify
func (h *DomainHandler) Verify(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
		return
	}

	domainID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid domain id")
		return
	}

	domain, err := h.domains.VerifyOwned(c.Request.Context(), userID, domainID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success":  true,
		"domain":   domain,
		"verified": domain.Status == entities.DomainStatusVerified,
	})
}
