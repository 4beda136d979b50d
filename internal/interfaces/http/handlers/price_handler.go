package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "memeforge.backend/internal/domain/errors"
	"memeforge.backend/internal/infrastructure/pricefeed"
	"memeforge.backend/internal/interfaces/http/response"
)

// PriceHandler handles price lookup endpoints
type PriceHandler struct {
	prices *pricefeed.Client
}

// NewPriceHandler creates a new price handler
func NewPriceHandler(prices *pricefeed.Client) *PriceHandler {
	return &PriceHandler{prices: prices}
}

// SOLPrice handles GET /api/v1/price/sol
func (h *PriceHandler) SOLPrice(c *gin.Context) {
	price, err := h.prices.SOLPriceUSD(c.Request.Context())
	if err != nil {
		response.Error(c, domainerrors.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success":  true,
		"currency": "SOL",
		"usd":      price,
	})
}
