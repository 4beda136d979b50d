package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "memeforge.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response shaped as {"success": false, "error": msg}
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, gin.H{
			"success": false,
			"error":   appErr.Message,
		})
		return
	}

	status, message := mapDomainError(err)
	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}

// mapDomainError resolves a domain sentinel to its HTTP status and
// client-facing message. Unknown errors never leak their text.
func mapDomainError(err error) (int, string) {
	switch {
	case errors.Is(err, domainerrors.ErrTransactionAlreadyUsed),
		errors.Is(err, domainerrors.ErrTransactionNotFound),
		errors.Is(err, domainerrors.ErrTransactionFailed),
		errors.Is(err, domainerrors.ErrTransactionTooOld),
		errors.Is(err, domainerrors.ErrInvalidPaymentAmount):
		return http.StatusBadRequest, err.Error()

	case errors.Is(err, domainerrors.ErrInvalidPaymentType),
		errors.Is(err, domainerrors.ErrInvalidCurrency),
		errors.Is(err, domainerrors.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()

	case errors.Is(err, domainerrors.ErrInvalidSignature),
		errors.Is(err, domainerrors.ErrInvalidWallet),
		errors.Is(err, domainerrors.ErrInvalidAuthMessage),
		errors.Is(err, domainerrors.ErrInvalidToken),
		errors.Is(err, domainerrors.ErrExpiredToken),
		errors.Is(err, domainerrors.ErrUnauthorized):
		return http.StatusUnauthorized, err.Error()

	case errors.Is(err, domainerrors.ErrProjectNotOwned):
		return http.StatusForbidden, err.Error()

	case errors.Is(err, domainerrors.ErrPaymentRequired):
		return http.StatusPaymentRequired, err.Error()

	case errors.Is(err, domainerrors.ErrPaymentNotFound),
		errors.Is(err, domainerrors.ErrUserNotFound),
		errors.Is(err, domainerrors.ErrProjectNotFound),
		errors.Is(err, domainerrors.ErrDomainNotFound),
		errors.Is(err, domainerrors.ErrSiteNotPublished):
		return http.StatusNotFound, err.Error()

	case errors.Is(err, domainerrors.ErrSubdomainTaken),
		errors.Is(err, domainerrors.ErrDomainAlreadyExists):
		return http.StatusConflict, err.Error()

	default:
		return http.StatusInternalServerError, domainerrors.ErrInternal.Error()
	}
}

// BadRequest sends a 400 with the given message
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   message,
	})
}
