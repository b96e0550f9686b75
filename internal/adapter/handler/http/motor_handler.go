package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sewamoto/motor_rental_service/internal/core/domain"
	"github.com/sewamoto/motor_rental_service/internal/core/ports"
	"github.com/sewamoto/motor_rental_service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type MotorHandler struct {
	motorService *services.MotorService
	logger       ports.LoggerPort
	metrics      ports.MetricsPort
}

type MotorRequest struct {
	MotorSlug   string  `json:"motor_slug" binding:"required" example:"honda-beat"`
	MotorName   string  `json:"motor_name" binding:"required" example:"Honda Beat"`
	MotorType   string  `json:"motor_type" binding:"required" example:"matic"`
	PricePerDay int     `json:"price_per_day" binding:"min=0" example:"50000"`
	Description *string `json:"description,omitempty" example:"Irit dan lincah"`
	ImageURL    *string `json:"image_url,omitempty" example:"https://cdn.example.com/beat.jpg"`
	Available   *bool   `json:"available,omitempty" example:"true"`
	Branch      *string `json:"branch,omitempty" example:"Denpasar"`
}

type UpdateMotorRequest struct {
	MotorSlug   *string `json:"motor_slug,omitempty" example:"honda-beat"`
	MotorName   *string `json:"motor_name,omitempty" example:"Honda Beat Street"`
	MotorType   *string `json:"motor_type,omitempty" example:"matic"`
	PricePerDay *int    `json:"price_per_day,omitempty" example:"60000"`
	Description *string `json:"description,omitempty" example:"Irit dan lincah"`
	ImageURL    *string `json:"image_url,omitempty" example:"https://cdn.example.com/beat.jpg"`
	Available   *bool   `json:"available,omitempty" example:"false"`
	Branch      *string `json:"branch,omitempty" example:"Kuta"`
}

type MotorResponse struct {
	MotorID     int     `json:"motor_id"`
	MotorSlug   string  `json:"motor_slug"`
	MotorName   string  `json:"motor_name"`
	MotorType   string  `json:"motor_type"`
	PricePerDay int     `json:"price_per_day"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	Available   *bool   `json:"available"`
	Branch      *string `json:"branch"`
}

type MotorListResponse struct {
	Motors []MotorResponse `json:"motors"`
	Total  int64           `json:"total"`
	Page   int             `json:"page"`
	Limit  int             `json:"limit"`
}

func NewMotorHandler(
	motorService *services.MotorService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *MotorHandler {
	return &MotorHandler{
		motorService: motorService,
		logger:       logger,
		metrics:      metrics,
	}
}

func motorToResponse(motor *domain.Motor) MotorResponse {
	return MotorResponse{
		MotorID:     motor.MotorID,
		MotorSlug:   motor.MotorSlug,
		MotorName:   motor.MotorName,
		MotorType:   motor.MotorType,
		PricePerDay: motor.PricePerDay,
		Description: motor.Description,
		ImageURL:    motor.ImageURL,
		Available:   motor.Available,
		Branch:      motor.Branch,
	}
}

// @Summary List motors
// @Description Paged motor inventory with optional type and availability filters
// @Tags motors
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param motor_type query string false "Filter by motor type"
// @Param available_only query bool false "Only available motors"
// @Success 200 {object} MotorListResponse "Motor page"
// @Failure 500 {object} errorResponse "Internal error"
// @Router /api/motors [get]
func (h *MotorHandler) ListMotors(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	query := &domain.MotorQuery{
		Page:          page,
		Limit:         limit,
		MotorType:     c.Query("motor_type"),
		AvailableOnly: c.Query("available_only") == "true",
	}

	motors, total, err := h.motorService.ListMotors(c.Request.Context(), query)
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "Failed to list motors")
		return
	}

	items := make([]MotorResponse, len(motors))
	for i, motor := range motors {
		items[i] = motorToResponse(motor)
	}

	c.JSON(http.StatusOK, MotorListResponse{
		Motors: items,
		Total:  total,
		Page:   query.Page,
		Limit:  query.Limit,
	})
}

// @Summary Get a motor
// @Description Single motor by its numeric id
// @Tags motors
// @Accept json
// @Produce json
// @Param id path int true "Motor ID" example:"1"
// @Success 200 {object} MotorResponse "Motor found"
// @Failure 400 {object} errorResponse "Invalid motor ID"
// @Failure 404 {object} errorResponse "Motor not found"
// @Router /api/motors/{id} [get]
func (h *MotorHandler) GetMotor(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	motorID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid motor ID")
		return
	}

	motor, err := h.motorService.GetMotorByID(c.Request.Context(), motorID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			newErrorResponse(c, http.StatusNotFound, "Motor not found")
			return
		}
		h.logger.Error("Failed to get motor", map[string]interface{}{
			"error":    err.Error(),
			"motor_id": motorID,
		})
		newErrorResponse(c, http.StatusInternalServerError, "Failed to get motor")
		return
	}

	c.JSON(http.StatusOK, motorToResponse(motor))
}

// @Summary Create a motor
// @Description Adds a motor to the inventory; availability defaults to true
// @Tags motors
// @Accept json
// @Produce json
// @Param request body MotorRequest true "Motor data"
// @Success 201 {object} MotorResponse "Motor created"
// @Failure 400 {object} errorResponse "Invalid request"
// @Router /api/motors [post]
func (h *MotorHandler) CreateMotor(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req MotorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in create motor", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	motor := &domain.Motor{
		MotorSlug:   req.MotorSlug,
		MotorName:   req.MotorName,
		MotorType:   req.MotorType,
		PricePerDay: req.PricePerDay,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Available:   req.Available,
		Branch:      req.Branch,
	}

	createdMotor, err := h.motorService.CreateMotor(c.Request.Context(), motor)
	if err != nil {
		if strings.Contains(err.Error(), "validation error") {
			newErrorResponse(c, http.StatusBadRequest, "Invalid motor data")
			return
		}
		newErrorResponse(c, http.StatusInternalServerError, "Failed to create motor")
		return
	}

	c.JSON(http.StatusCreated, motorToResponse(createdMotor))
}

// @Summary Update a motor
// @Description Partial update; only supplied fields change
// @Tags motors
// @Accept json
// @Produce json
// @Param id path int true "Motor ID" example:"1"
// @Param request body UpdateMotorRequest true "Fields to update"
// @Success 200 {object} MotorResponse "Motor updated"
// @Failure 400 {object} errorResponse "Invalid request or no fields"
// @Failure 404 {object} errorResponse "Motor not found"
// @Router /api/motors/{id} [put]
func (h *MotorHandler) UpdateMotor(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	motorID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid motor ID")
		return
	}

	var req UpdateMotorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in update motor", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	update := &domain.MotorUpdate{
		MotorSlug:   req.MotorSlug,
		MotorName:   req.MotorName,
		MotorType:   req.MotorType,
		PricePerDay: req.PricePerDay,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Available:   req.Available,
		Branch:      req.Branch,
	}

	updatedMotor, err := h.motorService.UpdateMotor(c.Request.Context(), motorID, update)
	if err != nil {
		switch {
		case errors.Is(err, ports.ErrEmptyUpdate):
			newErrorResponse(c, http.StatusBadRequest, "No fields to update")
		case errors.Is(err, ports.ErrNotFound):
			newErrorResponse(c, http.StatusNotFound, "Motor not found")
		default:
			newErrorResponse(c, http.StatusInternalServerError, "Failed to update motor")
		}
		return
	}

	c.JSON(http.StatusOK, motorToResponse(updatedMotor))
}

// @Summary Delete a motor
// @Description Removes a motor from the inventory
// @Tags motors
// @Accept json
// @Produce json
// @Param id path int true "Motor ID" example:"1"
// @Success 200 {object} messageResponse "Motor deleted"
// @Failure 400 {object} errorResponse "Invalid motor ID"
// @Failure 404 {object} errorResponse "Motor not found"
// @Router /api/motors/{id} [delete]
func (h *MotorHandler) DeleteMotor(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	motorID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid motor ID")
		return
	}

	if err := h.motorService.DeleteMotor(c.Request.Context(), motorID); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			newErrorResponse(c, http.StatusNotFound, "Motor not found")
			return
		}
		newErrorResponse(c, http.StatusInternalServerError, "Failed to delete motor")
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "Motor deleted successfully"})
}
