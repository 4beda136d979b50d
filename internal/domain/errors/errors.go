package errors

import "errors"

// Domain errors
var (
	// Payment verification errors
	ErrTransactionAlreadyUsed = errors.New("Transaction already used")
	ErrTransactionNotFound    = errors.New("Transaction not found")
	ErrTransactionFailed      = errors.New("Transaction failed on chain")
	ErrTransactionTooOld      = errors.New("Transaction too old")
	ErrInvalidPaymentAmount   = errors.New("Invalid payment amount")

	// Payment errors
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrInvalidPaymentType  = errors.New("invalid payment type")
	ErrInvalidCurrency     = errors.New("invalid currency")
	ErrPaymentNotConfirmed = errors.New("payment not confirmed")
	ErrPaymentRequired     = errors.New("confirmed payment required")

	// Auth errors
	ErrInvalidSignature   = errors.New("invalid signature")
	ErrInvalidWallet      = errors.New("invalid wallet address")
	ErrInvalidAuthMessage = errors.New("invalid sign-in message")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token expired")

	// Project errors
	ErrProjectNotFound  = errors.New("project not found")
	ErrSubdomainTaken   = errors.New("subdomain already taken")
	ErrProjectNotOwned  = errors.New("project does not belong to user")
	ErrSiteNotPublished = errors.New("site not published")

	// Domain errors
	ErrDomainNotFound      = errors.New("custom domain not found")
	ErrDomainAlreadyExists = errors.New("custom domain already registered")
	ErrDomainNotVerified   = errors.New("custom domain not verified")

	// General errors
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("Internal server error")
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new application error
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// BadRequest creates a 400 error
func BadRequest(message string, err error) *AppError {
	return NewAppError(400, message, err)
}

// Unauthorized creates a 401 error
func Unauthorized(message string, err error) *AppError {
	return NewAppError(401, message, err)
}

// Forbidden creates a 403 error
func Forbidden(message string, err error) *AppError {
	return NewAppError(403, message, err)
}

// NotFound creates a 404 error
func NotFound(message string, err error) *AppError {
	return NewAppError(404, message, err)
}

// Conflict creates a 409 error
func Conflict(message string, err error) *AppError {
	return NewAppError(409, message, err)
}

// Internal creates a 500 error
func Internal(message string, err error) *AppError {
	return NewAppError(500, message, err)
}
