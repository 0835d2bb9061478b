package middleware

import (
	"net/http"

	"blindbuy-escrow/pkg/apperror"
	"blindbuy-escrow/pkg/response"

	"github.com/gin-gonic/gin"
)

// ErrBodyTooLarge is returned for a declared Content-Length over the limit.
func ErrBodyTooLarge() *apperror.AppError {
	return apperror.New("ESC_002", "Request body too large", http.StatusRequestEntityTooLarge)
}

// MaxBodySize rejects requests whose declared length exceeds maxBytes and
// caps the body reader for the rest, so chunked uploads fail on read.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, ErrBodyTooLarge())
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
