package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sewamoto/motor_rental_service/internal/core/domain"
	"github.com/sewamoto/motor_rental_service/internal/core/ports"
	"github.com/sewamoto/motor_rental_service/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct {
	authService  *services.AuthService
	tokenService ports.TokenService
	logger       ports.LoggerPort
	metrics      ports.MetricsPort
}

type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required" example:"Budi Santoso"`
	Username string `json:"username" binding:"required" example:"budisantoso"`
	Email    string `json:"email" binding:"required,email" example:"budi@example.com"`
	Phone    string `json:"phone" binding:"required" example:"081234567890"`
	Password string `json:"password" binding:"required,min=6" example:"secret123"`
}

type RegisterResponse struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"budisantoso"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

func NewAuthHandler(
	authService *services.AuthService,
	tokenService ports.TokenService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenService: tokenService,
		logger:       logger,
		metrics:      metrics,
	}
}

// @Summary Register a new user
// @Description Creates a user account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} RegisterResponse "User created"
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 409 {object} errorResponse "Username or email already taken"
// @Router /api/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in register", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	user := &domain.User{
		FullName: req.FullName,
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
	}

	createdUser, err := h.authService.Register(c.Request.Context(), user, req.Password)
	if err != nil {
		if errors.Is(err, ports.ErrConflict) {
			newErrorResponse(c, http.StatusConflict, "Username or email already taken")
			return
		}
		if strings.Contains(err.Error(), "validation error") {
			newErrorResponse(c, http.StatusBadRequest, "Invalid registration data")
			return
		}
		h.logger.Error("Failed to register user", map[string]interface{}{
			"error":    err.Error(),
			"username": req.Username,
		})
		newErrorResponse(c, http.StatusInternalServerError, "Failed to register user")
		return
	}

	response := RegisterResponse{
		ID:        createdUser.ID,
		FullName:  createdUser.FullName,
		Username:  createdUser.Username,
		Email:     createdUser.Email,
		Phone:     createdUser.Phone,
		Role:      string(createdUser.Role),
		CreatedAt: createdUser.CreatedAt,
	}

	c.JSON(http.StatusCreated, response)
}

// @Summary Log in
// @Description Exchanges username and password for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} TokenResponse "Signed token"
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 401 {object} errorResponse "Wrong username or password"
// @Router /api/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in login", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ports.ErrInvalidCredentials) {
			h.logger.Warn("Failed login attempt", map[string]interface{}{
				"username": req.Username,
				"ip":       c.ClientIP(),
			})
			newErrorResponse(c, http.StatusUnauthorized, "Wrong username or password")
			return
		}
		newErrorResponse(c, http.StatusInternalServerError, "Failed to log in")
		return
	}

	token, err := h.tokenService.IssueToken(user)
	if err != nil {
		h.logger.Error("Failed to issue token", map[string]interface{}{
			"error":   err.Error(),
			"user_id": user.ID,
		})
		newErrorResponse(c, http.StatusInternalServerError, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token})
}
