package http

import (
	"net/http"
	"strings"

	"github.com/sewamoto/motor_rental_service/internal/core/ports"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the caller's identity from a bearer token. The
// token must verify and the user it names must still exist; every failure
// collapses to the same 401 so callers cannot probe which check tripped.
func AuthMiddleware(tokenService ports.TokenService, userRepo ports.UserRepository, logger ports.LoggerPort) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			newErrorResponse(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		token, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			logger.Warn("Malformed authorization header", map[string]interface{}{
				"ip": c.ClientIP(),
			})
			newErrorResponse(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		payload, err := tokenService.VerifyToken(token)
		if err != nil {
			newErrorResponse(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		if _, err := userRepo.GetUserByID(c.Request.Context(), payload.UserID); err != nil {
			logger.Warn("Token for missing user", map[string]interface{}{
				"user_id": payload.UserID,
				"ip":      c.ClientIP(),
			})
			newErrorResponse(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		c.Set(authorizationPayloadKey, payload)
		c.Next()
	}
}
