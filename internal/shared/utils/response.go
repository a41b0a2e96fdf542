// Package utils holds small HTTP response and request helpers shared
// across handlers, mirroring the teacher's internal/shared/utils package.
package utils

import (
	"github.com/gin-gonic/gin"

	"nodal/internal/shared/apperror"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// SuccessResponse writes v itself as the JSON body with the given status;
// there is no {"data": ...} envelope.
func SuccessResponse(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

// ErrorResponse writes the {"error":{"code","message"}} envelope from
// spec.md §6, deriving the HTTP status and code from the error taxonomy.
func ErrorResponse(c *gin.Context, err error) {
	status := apperror.StatusOf(err)
	code := "internal_error"
	msg := "internal server error"
	if ae, ok := apperror.As(err); ok {
		code = string(ae.Kind)
		msg = ae.Message
	}
	c.JSON(status, errorEnvelope{Error: errorBody{Code: code, Message: msg}})
}

// ErrorResponseRaw writes the envelope from an explicit status/code/message,
// used by middleware that short-circuits before a handler-level error exists.
func ErrorResponseRaw(c *gin.Context, status int, code, message string) {
	c.JSON(status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}
