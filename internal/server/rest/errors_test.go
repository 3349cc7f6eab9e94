package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/userhub/internal/common"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		message string
	}{
		{common.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{fmt.Errorf("%w: bad sig", common.ErrInvalidToken), http.StatusUnauthorized, "Invalid token"},
		{common.ErrTokenExpired, http.StatusUnauthorized, "Token expired"},
		{common.ErrDuplicateUsername, http.StatusBadRequest, "Username already exists"},
		{common.ErrInvalidIdentifier, http.StatusBadRequest, "Invalid user identifier"},
		{common.ErrorNotFound, http.StatusNotFound, "User not found"},
		{fmt.Errorf("%w: AccessDenied", common.ErrUploadFailed), http.StatusInternalServerError, "Failed to upload profile picture"},
		{fmt.Errorf("%w: db error: conn refused", common.ErrPersistenceFailure), http.StatusInternalServerError, internalErrorMessage},
		{common.ErrRateLimited, http.StatusTooManyRequests, "Too many requests"},
		{errors.New("something odd"), http.StatusInternalServerError, internalErrorMessage},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			status, msg := statusFor(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, msg)
		})
	}
}

func TestStatusFor_ValidationExposesMessage(t *testing.T) {
	err := fmt.Errorf("%w: password exceeds 72 bytes", common.ErrValidationFailed)
	status, msg := statusFor(err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, err.Error(), msg)
}

func TestRespondError_LogsOnlyServerFailures(t *testing.T) {
	for _, tc := range []struct {
		err     error
		wantLog bool
	}{
		{common.ErrInvalidCredentials, false},
		{common.ErrDuplicateUsername, false},
		{fmt.Errorf("%w: boom", common.ErrPersistenceFailure), true},
	} {
		logger := newRecordingLogger()
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

		respondError(c, logger, tc.err)

		assert.Equal(t, tc.wantLog, logger.has("error"), "err %v", tc.err)

		var body errorBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, w.Code, body.StatusCode)
		assert.Equal(t, http.StatusText(w.Code), body.Error)
		assert.NotContains(t, body.Message, "boom")
	}
}
