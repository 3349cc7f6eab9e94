package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/userhub/internal/common"
	"github.com/dmitrijs2005/userhub/internal/logging"
	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "Internal server error"

// errorBody is the JSON shape of every error response.
type errorBody struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

type errorKind struct {
	target  error
	status  int
	message string
	// expose answers with err.Error() instead of message
	expose bool
}

// errorKinds is matched in order with errors.Is.
var errorKinds = []errorKind{
	{target: common.ErrInvalidCredentials, status: http.StatusUnauthorized, message: "Invalid credentials"},
	{target: common.ErrTokenExpired, status: http.StatusUnauthorized, message: "Token expired"},
	{target: common.ErrInvalidToken, status: http.StatusUnauthorized, message: "Invalid token"},
	{target: common.ErrDuplicateUsername, status: http.StatusBadRequest, message: "Username already exists"},
	{target: common.ErrInvalidIdentifier, status: http.StatusBadRequest, message: "Invalid user identifier"},
	{target: common.ErrValidationFailed, status: http.StatusBadRequest, expose: true},
	{target: common.ErrorNotFound, status: http.StatusNotFound, message: "User not found"},
	{target: common.ErrRateLimited, status: http.StatusTooManyRequests, message: "Too many requests"},
	{target: common.ErrUploadFailed, status: http.StatusInternalServerError, message: "Failed to upload profile picture"},
	{target: common.ErrPersistenceFailure, status: http.StatusInternalServerError, message: internalErrorMessage},
}

// statusFor maps err to a status code and client-facing message. Unknown
// errors are 500 with a generic message.
func statusFor(err error) (int, string) {
	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			if k.expose {
				return k.status, err.Error()
			}
			return k.status, k.message
		}
	}
	return http.StatusInternalServerError, internalErrorMessage
}

func abortWithMessage(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorBody{
		StatusCode: status,
		Error:      http.StatusText(status),
		Message:    message,
	})
}

// respondError answers with the mapped status. Server-side failures are
// logged with their cause; expected domain outcomes are not.
func respondError(c *gin.Context, logger logging.Logger, err error) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", c.GetString(requestIDKey),
			"error", err.Error(),
		)
	}
	abortWithMessage(c, status, message)
}
