package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	domainerrors "memeforge.backend/internal/domain/errors"
)

func TestSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, http.StatusOK, gin.H{"ok": true})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)
}

func TestError_AppError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, domainerrors.NotFound("missing thing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "missing thing")
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestError_VerificationSentinels(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err     error
		status  int
		message string
	}{
		{domainerrors.ErrTransactionAlreadyUsed, http.StatusBadRequest, "Transaction already used"},
		{domainerrors.ErrTransactionNotFound, http.StatusBadRequest, "Transaction not found"},
		{domainerrors.ErrTransactionFailed, http.StatusBadRequest, "Transaction failed on chain"},
		{domainerrors.ErrTransactionTooOld, http.StatusBadRequest, "Transaction too old"},
		{domainerrors.ErrInvalidPaymentAmount, http.StatusBadRequest, "Invalid payment amount"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		Error(c, tc.err)
		assert.Equal(t, tc.status, w.Code)
		assert.Contains(t, w.Body.String(), tc.message)
	}
}

func TestError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
	}{
		{domainerrors.ErrInvalidSignature, http.StatusUnauthorized},
		{domainerrors.ErrInvalidWallet, http.StatusUnauthorized},
		{domainerrors.ErrInvalidAuthMessage, http.StatusUnauthorized},
		{domainerrors.ErrProjectNotOwned, http.StatusForbidden},
		{domainerrors.ErrPaymentNotFound, http.StatusNotFound},
		{domainerrors.ErrProjectNotFound, http.StatusNotFound},
		{domainerrors.ErrSiteNotPublished, http.StatusNotFound},
		{domainerrors.ErrSubdomainTaken, http.StatusConflict},
		{domainerrors.ErrDomainAlreadyExists, http.StatusConflict},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		Error(c, tc.err)
		assert.Equal(t, tc.status, w.Code, tc.err.Error())
	}
}

func TestError_UnknownErrorNeverLeaks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, errors.New("pq: connection refused on 10.0.0.3"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
	assert.NotContains(t, w.Body.String(), "10.0.0.3")
}

func TestBadRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	BadRequest(c, "name is required")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "name is required")
	assert.Contains(t, w.Body.String(), `"success":false`)
}
