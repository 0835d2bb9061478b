// Package response writes the JSON envelopes shared by every API route.
package response

import (
	"errors"
	"net/http"
	"time"

	"blindbuy-escrow/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey is the gin context key the request ID middleware populates.
const RequestIDKey = "request_id"

// SuccessResponse wraps every 2xx payload.
type SuccessResponse struct {
	Data      any    `json:"data"`
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

// ErrorResponse carries an ESC_/AUTH_/SEC_/SYS_ code and a client-safe message.
type ErrorResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

func OK(c *gin.Context, data any) { success(c, http.StatusOK, data) }

func Created(c *gin.Context, data any) { success(c, http.StatusCreated, data) }

// Accepted is used for callbacks whose effect is applied asynchronously.
func Accepted(c *gin.Context, data any) { success(c, http.StatusAccepted, data) }

// Error renders err. Anything that is not an *apperror.AppError is reported
// as SYS_000 so internal details never reach the client.
func Error(c *gin.Context, err error) {
	appErr := &apperror.AppError{
		Code:       "SYS_000",
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
	}
	errors.As(err, &appErr)

	c.JSON(appErr.HTTPStatus, ErrorResponse{
		ErrorCode: appErr.Code,
		Message:   appErr.Message,
		RequestID: requestID(c),
		Timestamp: timestamp(),
	})
}

func success(c *gin.Context, status int, data any) {
	c.JSON(status, SuccessResponse{
		Data:      data,
		RequestID: requestID(c),
		Timestamp: timestamp(),
	})
}

func requestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	return uuid.New().String()
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
