package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/sewamoto/motor_rental_service/internal/core/domain"
	"github.com/sewamoto/motor_rental_service/internal/core/ports"
	"github.com/sewamoto/motor_rental_service/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	userService *services.UserService
	logger      ports.LoggerPort
	metrics     ports.MetricsPort
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserHandler(
	userService *services.UserService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
		metrics:     metrics,
	}
}

// @Summary Get a user
// @Description User record by id; owner or admin only
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "User ID" example:"3fa85f64-5717-4562-b3fc-2c963f66afa6"
// @Success 200 {object} UserResponse "User found"
// @Failure 400 {object} errorResponse "Invalid user ID"
// @Failure 403 {object} errorResponse "Access denied"
// @Failure 404 {object} errorResponse "User not found"
// @Router /api/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	userID := c.Param("id")

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ports.ErrInvalidID):
			newErrorResponse(c, http.StatusBadRequest, "Invalid user ID format. Please provide a valid UUID.")
		case errors.Is(err, ports.ErrNotFound):
			newErrorResponse(c, http.StatusNotFound, "User not found")
		default:
			newErrorResponse(c, http.StatusInternalServerError, "Failed to get user")
		}
		return
	}

	if payload.Role != domain.Admin && payload.UserID != user.ID {
		h.logger.Warn("Access denied to user record", map[string]interface{}{
			"requester_id": payload.UserID.String(),
			"target_id":    user.ID.String(),
		})
		newErrorResponse(c, http.StatusForbidden, "Access denied")
		return
	}

	c.JSON(http.StatusOK, UserResponse{
		ID:        user.ID,
		FullName:  user.FullName,
		Username:  user.Username,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	})
}
