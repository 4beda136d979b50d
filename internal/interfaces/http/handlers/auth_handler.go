package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"memeforge.backend/internal/domain/entities"
	"memeforge.backend/internal/interfaces/http/response"
	"memeforge.backend/internal/usecases"
)

// AuthHandler handles wallet authentication endpoints
type AuthHandler struct {
	walletAuth *usecases.WalletAuthUseCase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(walletAuth *usecases.WalletAuthUseCase) *AuthHandler {
	return &AuthHandler{walletAuth: walletAuth}
}

// WalletLogin handles POST /api/v1/auth/wallet
func (h *AuthHandler) WalletLogin(c *gin.Context) {
	var input entities.WalletAuthInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "wallet_address, signature and message are required")
		return
	}

	result, err := h.walletAuth.Authenticate(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success":      true,
		"message":      "Authentication successful",
		"user":         result.User,
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
	})
}
