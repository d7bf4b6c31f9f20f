package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/foodgram/backend/internal/service"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

var statusByKind = map[service.ErrorKind]int{
	service.KindValidation:   http.StatusBadRequest,
	service.KindNotFound:     http.StatusNotFound,
	service.KindPermission:   http.StatusForbidden,
	service.KindConflict:     http.StatusBadRequest,
	service.KindUnauthorized: http.StatusUnauthorized,
}

// ErrorHandler renders the last error a handler attached with c.Error and
// turns panics into a 500
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("recovered from panic")
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		status, body := ErrorStatus(c.Errors.Last())
		if status >= http.StatusInternalServerError {
			log.Error().Err(c.Errors.Last().Err).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Msg("request failed")
		}
		c.AbortWithStatusJSON(status, body)
	}
}

// ErrorStatus maps an error onto its HTTP status and response body
func ErrorStatus(ginErr *gin.Error) (int, ErrorResponse) {
	var svcErr *service.Error
	if errors.As(ginErr.Err, &svcErr) {
		if status, ok := statusByKind[svcErr.Kind]; ok {
			return status, ErrorResponse{Error: svcErr.Message, Field: svcErr.Field}
		}
	}
	if ginErr.IsType(gin.ErrorTypeBind) {
		return http.StatusBadRequest, ErrorResponse{Error: ginErr.Err.Error()}
	}
	return http.StatusInternalServerError, ErrorResponse{Error: "internal server error"}
}
