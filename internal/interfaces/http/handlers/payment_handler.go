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

// PaymentHandler handles payment endpoints
type PaymentHandler struct {
	verifyPayment *usecases.VerifyPaymentUseCase
	payments      *usecases.PaymentUseCase
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(verifyPayment *usecases.VerifyPaymentUseCase, payments *usecases.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{
		verifyPayment: verifyPayment,
		payments:      payments,
	}
}

// Verify handles POST /api/v1/payments/verify
func (h *PaymentHandler) Verify(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
		return
	}

	var input entities.VerifyPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid verification request")
		return
	}

	result, err := h.verifyPayment.Verify(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success":      true,
		"paymentId":    result.PaymentID,
		"actualAmount": result.ActualAmount,
	})
}

// Create handles POST /api/v1/payments
func (h *PaymentHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
		return
	}

	var input entities.CreatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid payment request")
		return
	}

	payment, err := h.payments.CreateIntent(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"success": true,
		"payment": payment,
	})
}

// GetByID handles GET /api/v1/payments/:id
func (h *PaymentHandler) GetByID(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
		return
	}

	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid payment id")
		return
	}

	payment, err := h.payments.GetByID(c.Request.Context(), userID, paymentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success": true,
		"payment": payment,
	})
}

// List handles GET /api/v1/payments
func (h *PaymentHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	payments, total, err := h.payments.ListByUser(c.Request.Context(), userID, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success":  true,
		"payments": payments,
		"meta":     utils.CalculateMeta(total, params.Page, params.Limit),
	})
}
