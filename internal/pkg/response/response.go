package response

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/xyz-asif/taskmanager/pkg/errors"
)

// ErrorResponse represents a standard error payload returned by the API
type ErrorResponse struct {
	Message string                 `json:"message" example:"Validation failed."`
	Errors  []apperrors.FieldError `json:"errors,omitempty"`
}

// Success sends a 200 OK response with data
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 Created response
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent sends a 204 No Content response
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with custom status code and message
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorResponse{Message: message})
}

// BadRequest sends a 400 Bad Request error
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 Unauthorized error
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// TooManyRequests sends a 429 Too Many Requests error
func TooManyRequests(c *gin.Context, message string) {
	Error(c, http.StatusTooManyRequests, message)
}

// ValidationFailed sends the field-level error list
func ValidationFailed(c *gin.Context, fields []apperrors.FieldError) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Message: "Validation failed.",
		Errors:  fields,
	})
}

// BindJSONError handles decode and binding-tag errors in request bodies.
// Missing required fields are reported per field, anything else as a
// malformed body.
func BindJSONError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]apperrors.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apperrors.FieldError{
				Field:   lowerFirst(fe.Field()),
				Message: bindingMessage(fe),
			})
		}
		ValidationFailed(c, fields)
		return
	}
	BadRequest(c, "Invalid request format.")
}

// FromError writes the response for a service-layer error.
func FromError(c *gin.Context, err error) {
	appErr := apperrors.As(err)

	if appErr.Kind == apperrors.KindInternal || appErr.Kind == apperrors.KindConfiguration || appErr.Kind == apperrors.KindUpstream {
		slog.ErrorContext(c.Request.Context(), "request failed",
			slog.String("kind", appErr.Kind.String()),
			slog.String("path", c.FullPath()),
			slog.Any("error", err),
		)
	}

	if len(appErr.Fields) > 0 {
		c.JSON(appErr.Kind.Status(), ErrorResponse{Message: appErr.Message, Errors: appErr.Fields})
		return
	}
	Error(c, appErr.Kind.Status(), appErr.Message)
}

func bindingMessage(fe validator.FieldError) string {
	name := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return name + " is required."
	default:
		return name + " is invalid."
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
