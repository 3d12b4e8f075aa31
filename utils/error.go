package utils

import (
	"errors"
	"fmt"
	"net/http"

	"businessconnect/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// AppError carries an HTTP status alongside a client-facing message.
type AppError struct {
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newAppError(status int, message string, err error) *AppError {
	return &AppError{Status: status, Message: message, Err: err}
}

func BadRequest(message string) *AppError {
	return newAppError(http.StatusBadRequest, message, nil)
}

func Unauthorized(message string) *AppError {
	return newAppError(http.StatusUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return newAppError(http.StatusForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return newAppError(http.StatusNotFound, message, nil)
}

func Conflict(message string) *AppError {
	return newAppError(http.StatusConflict, message, nil)
}

func ServiceUnavailable(message string, err error) *AppError {
	return newAppError(http.StatusServiceUnavailable, message, err)
}

// Internal wraps an unexpected failure; the message is safe to show, err is not.
func Internal(message string, err error) *AppError {
	return newAppError(http.StatusInternalServerError, message, err)
}

// StatusOf returns the HTTP status an error maps to.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// RespondError logs err and writes the matching JSON error response.
func RespondError(c *gin.Context, err error) {
	logger := GetLogger()
	status := StatusOf(err)

	message := "Internal Server Error"
	hasCause := true
	var appErr *AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
		hasCause = appErr.Err != nil
	}

	fields := []zap.Field{
		zap.Int("status", status),
		zap.String("path", c.FullPath()),
		zap.String("method", c.Request.Method),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		logger.Error(message, fields...)
	} else {
		logger.Warn(message, fields...)
	}

	resp := ErrorResponse{Message: message}
	if !config.IsProduction() && hasCause {
		resp.Details = err.Error()
	}
	c.AbortWithStatusJSON(status, resp)
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err), zap.String("path", c.Request.URL.Path))

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.AbortWithStatusJSON(status, ErrorResponse{Message: message, Details: details})
}
