package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const internalMessage = "Error interno del servidor"

type HTTPError struct {
	Success bool   `json:"success"`
	Code    string `json:"error_code"`
	Message string `json:"error"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Success: false,
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func TooManyRequests(c *gin.Context, code, message string) {
	Write(c, http.StatusTooManyRequests, code, message)
}

// FromError writes domain errors as 400 and everything else as a generic 500.
// Not-found errors stay 400 because they come from client supplied ids.
// It reports whether err was a domain error.
func FromError(c *gin.Context, err error, internalCode string) bool {
	if be, ok := AsBusiness(err); ok {
		msg := be.Message
		if msg == "" {
			msg = be.Code
		}
		BadRequest(c, be.Code, msg)
		return true
	}
	Internal(c, internalCode, internalMessage)
	return false
}
