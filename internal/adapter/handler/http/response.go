package http

import (
	"github.com/sewamoto/motor_rental_service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields,omitempty"`
}

// FieldError names a single invalid or missing request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func newErrorResponse(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: message})
}

func newFieldErrorResponse(c *gin.Context, status int, message string, fields []FieldError) {
	c.AbortWithStatusJSON(status, errorResponse{Error: message, Fields: fields})
}

const authorizationPayloadKey = "authorization_payload"

func getAuthPayload(c *gin.Context, key string) (*domain.TokenPayload, bool) {
	value, exists := c.Get(key)
	if !exists {
		return nil, false
	}
	payload, ok := value.(*domain.TokenPayload)
	if !ok {
		return nil, false
	}
	return payload, true
}
