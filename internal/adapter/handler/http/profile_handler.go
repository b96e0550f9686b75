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

const profileTimestampFormat = "2006-01-02 15:04:05"

type ProfileHandler struct {
	profileService *services.ProfileService
	logger         ports.LoggerPort
	metrics        ports.MetricsPort
}

// ProfileRequest uses the frontend's wire names for the users table fields.
type ProfileRequest struct {
	UserID *string `json:"user_id,omitempty" example:"3fa85f64-5717-4562-b3fc-2c963f66afa6"`
	Nama   string  `json:"nama" binding:"required" example:"Budi Santoso"`
	Email  string  `json:"email" binding:"required,email" example:"budi@example.com"`
	NoHP   string  `json:"no_hp" binding:"required" example:"081234567890"`
}

type UpdateProfileRequest struct {
	Nama  *string `json:"nama,omitempty" example:"Budi Santoso"`
	Email *string `json:"email,omitempty" example:"budi@example.com"`
	NoHP  *string `json:"no_hp,omitempty" example:"081234567890"`
}

type ProfileResponse struct {
	ID        string  `json:"id"`
	Nama      string  `json:"nama"`
	Email     string  `json:"email"`
	NoHP      string  `json:"no_hp"`
	Username  *string `json:"username"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type ProfileListResponse struct {
	Profils []ProfileResponse `json:"profils"`
	Total   int               `json:"total"`
}

func NewProfileHandler(
	profileService *services.ProfileService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		logger:         logger,
		metrics:        metrics,
	}
}

func profileToResponse(user *domain.User, includeUsername bool) ProfileResponse {
	stamp := user.CreatedAt.Format(profileTimestampFormat)
	response := ProfileResponse{
		ID:        user.ID.String(),
		Nama:      user.FullName,
		Email:     user.Email,
		NoHP:      user.Phone,
		CreatedAt: stamp,
		UpdatedAt: stamp,
	}
	if includeUsername {
		username := user.Username
		response.Username = &username
	}
	return response
}

// writeProfileError maps service errors to the profile endpoints' statuses.
func (h *ProfileHandler) writeProfileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ports.ErrInvalidID):
		newErrorResponse(c, http.StatusBadRequest, "Invalid profil ID format. Please provide a valid UUID.")
	case errors.Is(err, ports.ErrNotFound):
		newErrorResponse(c, http.StatusNotFound, "Profil not found")
	default:
		newErrorResponse(c, http.StatusInternalServerError, "Failed to process profil")
	}
}

// requireOwnerOrAdmin checks that the caller owns the target profile or is an
// admin. The target must already be a valid uuid string.
func (h *ProfileHandler) requireOwnerOrAdmin(c *gin.Context, payload *domain.TokenPayload, targetID uuid.UUID) bool {
	if payload.Role == domain.Admin || payload.UserID == targetID {
		return true
	}
	h.logger.Warn("Access denied to profil", map[string]interface{}{
		"requester_id": payload.UserID.String(),
		"target_id":    targetID.String(),
	})
	newErrorResponse(c, http.StatusForbidden, "Access denied")
	return false
}

// @Summary Create or update a profile
// @Description Upserts profile data onto the caller's user record
// @Tags profils
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ProfileRequest true "Profile data"
// @Success 200 {object} ProfileResponse "Profile saved"
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 401 {object} errorResponse "Not authenticated"
// @Failure 403 {object} errorResponse "Access denied"
// @Router /api/profils [post]
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in create profil", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	targetID := payload.UserID
	if req.UserID != nil && *req.UserID != "" {
		parsed, err := uuid.Parse(*req.UserID)
		if err != nil {
			newErrorResponse(c, http.StatusBadRequest, "Invalid user ID format. Please provide a valid UUID.")
			return
		}
		targetID = parsed
	}

	if !h.requireOwnerOrAdmin(c, payload, targetID) {
		return
	}

	user, err := h.profileService.UpsertProfile(c.Request.Context(), targetID, req.Nama, req.Email, req.NoHP)
	if err != nil {
		h.writeProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, profileToResponse(user, false))
}

// @Summary Get my profile
// @Description The authenticated caller's own profile
// @Tags profils
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} ProfileResponse "Profile found"
// @Failure 401 {object} errorResponse "Not authenticated"
// @Failure 404 {object} errorResponse "User not found"
// @Router /api/profils/me [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.profileService.GetProfile(c.Request.Context(), payload.UserID.String())
	if err != nil {
		h.writeProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, profileToResponse(user, true))
}

// @Summary Get a profile
// @Description Profile by id; owner or admin only
// @Tags profils
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Profile ID" example:"3fa85f64-5717-4562-b3fc-2c963f66afa6"
// @Success 200 {object} ProfileResponse "Profile found"
// @Failure 400 {object} errorResponse "Invalid profil ID"
// @Failure 403 {object} errorResponse "Access denied"
// @Failure 404 {object} errorResponse "Profil not found"
// @Router /api/profils/{id} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.profileService.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeProfileError(c, err)
		return
	}

	if !h.requireOwnerOrAdmin(c, payload, user.ID) {
		return
	}

	c.JSON(http.StatusOK, profileToResponse(user, false))
}

// @Summary Get a profile by user id
// @Description Same contract as profile-by-id, keyed by user id
// @Tags profils
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param user_id path string true "User ID" example:"3fa85f64-5717-4562-b3fc-2c963f66afa6"
// @Success 200 {object} ProfileResponse "Profile found"
// @Failure 400 {object} errorResponse "Invalid user ID"
// @Failure 403 {object} errorResponse "Access denied"
// @Failure 404 {object} errorResponse "Profil not found"
// @Router /api/profils/user/{user_id} [get]
func (h *ProfileHandler) GetProfileByUserID(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.profileService.GetProfile(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		h.writeProfileError(c, err)
		return
	}

	if !h.requireOwnerOrAdmin(c, payload, user.ID) {
		return
	}

	c.JSON(http.StatusOK, profileToResponse(user, false))
}

// @Summary Update a profile
// @Description Partial update; missing fields keep their current values
// @Tags profils
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Profile ID" example:"3fa85f64-5717-4562-b3fc-2c963f66afa6"
// @Param request body UpdateProfileRequest true "Fields to update"
// @Success 200 {object} ProfileResponse "Profile updated"
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 403 {object} errorResponse "Access denied"
// @Failure 404 {object} errorResponse "Profil not found"
// @Router /api/profils/{id} [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	profileID := c.Param("id")

	current, err := h.profileService.GetProfile(c.Request.Context(), profileID)
	if err != nil {
		h.writeProfileError(c, err)
		return
	}
	if !h.requireOwnerOrAdmin(c, payload, current.ID) {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in update profil", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	user, err := h.profileService.UpdateProfile(c.Request.Context(), profileID, req.Nama, req.Email, req.NoHP)
	if err != nil {
		h.writeProfileError(c, err)
		return
	}

	response := profileToResponse(user, false)
	response.UpdatedAt = time.Now().Format(profileTimestampFormat)

	c.JSON(http.StatusOK, response)
}

// @Summary Delete a profile
// @Description Removes the user record; owner or admin only
// @Tags profils
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Profile ID" example:"3fa85f64-5717-4562-b3fc-2c963f66afa6"
// @Success 200 {object} messageResponse "Profile deleted"
// @Failure 400 {object} errorResponse "Invalid profil ID"
// @Failure 403 {object} errorResponse "Access denied"
// @Failure 404 {object} errorResponse "Profil not found"
// @Router /api/profils/{id} [delete]
func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	profileID := c.Param("id")

	current, err := h.profileService.GetProfile(c.Request.Context(), profileID)
	if err != nil {
		h.writeProfileError(c, err)
		return
	}
	if !h.requireOwnerOrAdmin(c, payload, current.ID) {
		return
	}

	if err := h.profileService.DeleteProfile(c.Request.Context(), profileID); err != nil {
		h.writeProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "Profil deleted successfully"})
}

// @Summary List profiles
// @Description The 50 most recently created users; admin only
// @Tags profils
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} ProfileListResponse "Profile list"
// @Failure 401 {object} errorResponse "Not authenticated"
// @Failure 403 {object} errorResponse "Admin only"
// @Router /api/profils [get]
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	if payload.Role != domain.Admin {
		h.logger.Warn("Non-admin attempt to list profils", map[string]interface{}{
			"user_id": payload.UserID.String(),
			"ip":      c.ClientIP(),
		})
		newErrorResponse(c, http.StatusForbidden, "Access denied")
		return
	}

	users, err := h.profileService.ListProfiles(c.Request.Context())
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "Failed to list profils")
		return
	}

	profiles := make([]ProfileResponse, len(users))
	for i, user := range users {
		profiles[i] = profileToResponse(user, false)
	}

	c.JSON(http.StatusOK, ProfileListResponse{
		Profils: profiles,
		Total:   len(profiles),
	})
}
