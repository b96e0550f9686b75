package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sewamoto/motor_rental_service/internal/core/domain"
	"github.com/sewamoto/motor_rental_service/internal/core/ports"
	"github.com/sewamoto/motor_rental_service/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Wire formats for booking dates and times. Responses use the same layouts
// so values round-trip exactly.
const (
	bookingDateFormat = "2006-01-02"
	bookingTimeFormat = "15:04"
)

const defaultMotorPrice = "Rp 50.000/hari"

type OrderHandler struct {
	orderService *services.OrderService
	logger       ports.LoggerPort
	metrics      ports.MetricsPort
}

// OrderRequest carries the rental form fields. The field names follow the
// frontend's wire contract.
type OrderRequest struct {
	TanggalPeminjaman   string `json:"tanggalPeminjaman" example:"2025-03-10"`
	JamPeminjaman       string `json:"jamPeminjaman" example:"09:30"`
	AlamatPengantaran   string `json:"alamatPengantaran" example:"Jl. Sunset Road No. 1"`
	TanggalPengembalian string `json:"tanggalPengembalian" example:"2025-03-12"`
	JamPengembalian     string `json:"jamPengembalian" example:"17:00"`
	AlamatPengembalian  string `json:"alamatPengembalian" example:"Jl. Sunset Road No. 1"`
	PilihCabang         string `json:"pilihCabang" example:"Denpasar"`
	PilihMotor          string `json:"pilihMotor" example:"Honda Beat"`
	BookingID           string `json:"bookingId,omitempty" example:"BWK123456"`
	MotorPrice          string `json:"motorPrice,omitempty" example:"Rp 50.000/hari"`
}

type UpdateOrderRequest struct {
	Status string `json:"status" binding:"required" example:"confirmed"`
}

type OrderInfo struct {
	ID                  uuid.UUID `json:"id"`
	UserID              uuid.UUID `json:"user_id"`
	Username            string    `json:"username,omitempty"`
	BookingID           string    `json:"bookingId"`
	TanggalPeminjaman   string    `json:"tanggalPeminjaman"`
	JamPeminjaman       string    `json:"jamPeminjaman"`
	AlamatPengantaran   string    `json:"alamatPengantaran"`
	TanggalPengembalian string    `json:"tanggalPengembalian"`
	JamPengembalian     string    `json:"jamPengembalian"`
	AlamatPengembalian  string    `json:"alamatPengembalian"`
	PilihCabang         string    `json:"pilihCabang"`
	PilihMotor          string    `json:"pilihMotor"`
	MotorPrice          string    `json:"motorPrice"`
	Status              string    `json:"status"`
	TanggalBooking      string    `json:"tanggalBooking"`
	WaktuBooking        string    `json:"waktuBooking"`
}

type CreateOrderResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	BookingID string    `json:"booking_id"`
	OrderID   uuid.UUID `json:"order_id"`
	Data      OrderInfo `json:"data"`
}

type MyOrdersResponse struct {
	Success bool        `json:"success"`
	Data    []OrderInfo `json:"data"`
	Total   int         `json:"total"`
	UserID  uuid.UUID   `json:"user_id"`
}

type AllOrdersResponse struct {
	Success bool        `json:"success"`
	Data    []OrderInfo `json:"data"`
	Total   int         `json:"total"`
	Type    string      `json:"type"`
}

type OrderStatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func NewOrderHandler(
	orderService *services.OrderService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
		metrics:      metrics,
	}
}

// validateOrderRequest checks the required rental form fields and parses the
// date/time values, collecting one error per bad field.
func validateOrderRequest(req *OrderRequest) (*domain.Order, []FieldError) {
	var fieldErrors []FieldError

	required := []struct {
		name  string
		value string
	}{
		{"tanggalPeminjaman", req.TanggalPeminjaman},
		{"jamPeminjaman", req.JamPeminjaman},
		{"alamatPengantaran", req.AlamatPengantaran},
		{"tanggalPengembalian", req.TanggalPengembalian},
		{"jamPengembalian", req.JamPengembalian},
		{"alamatPengembalian", req.AlamatPengembalian},
		{"pilihCabang", req.PilihCabang},
		{"pilihMotor", req.PilihMotor},
	}
	for _, field := range required {
		if field.value == "" {
			fieldErrors = append(fieldErrors, FieldError{Field: field.name, Message: "required"})
		}
	}

	order := &domain.Order{
		AlamatPengantaran:  req.AlamatPengantaran,
		AlamatPengembalian: req.AlamatPengembalian,
		PilihCabang:        req.PilihCabang,
		PilihMotor:         req.PilihMotor,
	}

	parseDate := func(name, value string) time.Time {
		if value == "" {
			return time.Time{}
		}
		parsed, err := time.Parse(bookingDateFormat, value)
		if err != nil {
			fieldErrors = append(fieldErrors, FieldError{Field: name, Message: "invalid date, expected YYYY-MM-DD"})
			return time.Time{}
		}
		return parsed
	}
	parseTime := func(name, value string) time.Time {
		if value == "" {
			return time.Time{}
		}
		parsed, err := time.Parse(bookingTimeFormat, value)
		if err != nil {
			fieldErrors = append(fieldErrors, FieldError{Field: name, Message: "invalid time, expected HH:MM"})
			return time.Time{}
		}
		return parsed
	}

	order.TanggalPeminjaman = parseDate("tanggalPeminjaman", req.TanggalPeminjaman)
	order.JamPeminjaman = parseTime("jamPeminjaman", req.JamPeminjaman)
	order.TanggalPengembalian = parseDate("tanggalPengembalian", req.TanggalPengembalian)
	order.JamPengembalian = parseTime("jamPengembalian", req.JamPengembalian)

	if len(fieldErrors) > 0 {
		return nil, fieldErrors
	}
	return order, nil
}

func orderToInfo(order *domain.Order) OrderInfo {
	return OrderInfo{
		ID:                  order.ID,
		UserID:              order.UserID,
		Username:            order.Username,
		BookingID:           order.BookingRef(),
		TanggalPeminjaman:   order.TanggalPeminjaman.Format(bookingDateFormat),
		JamPeminjaman:       order.JamPeminjaman.Format(bookingTimeFormat),
		AlamatPengantaran:   order.AlamatPengantaran,
		TanggalPengembalian: order.TanggalPengembalian.Format(bookingDateFormat),
		JamPengembalian:     order.JamPengembalian.Format(bookingTimeFormat),
		AlamatPengembalian:  order.AlamatPengembalian,
		PilihCabang:         order.PilihCabang,
		PilihMotor:          order.PilihMotor,
		MotorPrice:          order.MotorPrice,
		Status:              order.Status,
		TanggalBooking:      order.TanggalBooking.Format(bookingDateFormat),
		WaktuBooking:        order.WaktuBooking.Format(bookingTimeFormat),
	}
}

// fetchAuthorizedOrder loads an order and enforces owner-or-admin access,
// writing the error response itself when the caller may not proceed.
func (h *OrderHandler) fetchAuthorizedOrder(c *gin.Context, payload *domain.TokenPayload, orderID string) (*domain.Order, bool) {
	order, err := h.orderService.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, ports.ErrInvalidID):
			newErrorResponse(c, http.StatusBadRequest, "Invalid booking ID")
		case errors.Is(err, ports.ErrNotFound):
			newErrorResponse(c, http.StatusNotFound, "Booking not found")
		default:
			newErrorResponse(c, http.StatusInternalServerError, "Failed to get booking")
		}
		return nil, false
	}

	if payload.Role != domain.Admin && payload.UserID != order.UserID {
		h.logger.Warn("Access denied to booking", map[string]interface{}{
			"requester_id": payload.UserID.String(),
			"order_owner":  order.UserID.String(),
			"order_id":     orderID,
		})
		newErrorResponse(c, http.StatusForbidden, "Access denied")
		return nil, false
	}

	return order, true
}

// @Summary Create a booking
// @Description Creates a motor rental booking from the rental form
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body OrderRequest true "Booking data"
// @Success 201 {object} CreateOrderResponse "Booking created"
// @Failure 400 {object} errorResponse "Missing or invalid fields"
// @Failure 401 {object} errorResponse "Not authenticated"
// @Router /api/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in create booking", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	order, fieldErrors := validateOrderRequest(&req)
	if len(fieldErrors) > 0 {
		newFieldErrorResponse(c, http.StatusBadRequest, "Validation failed", fieldErrors)
		return
	}

	bookingRef := req.BookingID
	if bookingRef == "" {
		bookingRef = fmt.Sprintf("BWK%d", time.Now().UnixMilli()%1000000)
	}
	order.MotorPrice = req.MotorPrice
	if order.MotorPrice == "" {
		order.MotorPrice = defaultMotorPrice
	}
	order.UserID = payload.UserID

	createdOrder, err := h.orderService.CreateOrder(c.Request.Context(), order)
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	info := orderToInfo(createdOrder)
	info.BookingID = bookingRef

	c.JSON(http.StatusCreated, CreateOrderResponse{
		Success:   true,
		Message:   "Booking sewa motor berhasil dibuat",
		BookingID: bookingRef,
		OrderID:   createdOrder.ID,
		Data:      info,
	})
}

// @Summary Get a booking
// @Description Single booking by id; owner or admin only
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Booking ID" example:"3fa85f64-5717-4562-b3fc-2c963f66afa6"
// @Success 200 {object} OrderInfo "Booking found"
// @Failure 400 {object} errorResponse "Invalid booking ID"
// @Failure 403 {object} errorResponse "Access denied"
// @Failure 404 {object} errorResponse "Booking not found"
// @Router /api/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	order, ok := h.fetchAuthorizedOrder(c, payload, c.Param("id"))
	if !ok {
		return
	}

	c.JSON(http.StatusOK, orderToInfo(order))
}

// @Summary Update booking status
// @Description Sets a booking's status; owner or admin only
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Booking ID" example:"3fa85f64-5717-4562-b3fc-2c963f66afa6"
// @Param request body UpdateOrderRequest true "New status"
// @Success 200 {object} OrderStatusResponse "Status updated"
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 403 {object} errorResponse "Access denied"
// @Failure 404 {object} errorResponse "Booking not found"
// @Router /api/orders/{id} [put]
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	orderID := c.Param("id")

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newFieldErrorResponse(c, http.StatusBadRequest, "Validation failed", []FieldError{
			{Field: "status", Message: "required"},
		})
		return
	}

	if _, ok := h.fetchAuthorizedOrder(c, payload, orderID); !ok {
		return
	}

	if err := h.orderService.UpdateOrderStatus(c.Request.Context(), orderID, req.Status); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			newErrorResponse(c, http.StatusNotFound, "Booking not found")
			return
		}
		newErrorResponse(c, http.StatusInternalServerError, "Failed to update booking")
		return
	}

	c.JSON(http.StatusOK, OrderStatusResponse{
		Success: true,
		Message: "Booking status updated successfully",
	})
}

// @Summary Delete a booking
// @Description Removes a booking; owner or admin only
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Booking ID" example:"3fa85f64-5717-4562-b3fc-2c963f66afa6"
// @Success 200 {object} OrderStatusResponse "Booking deleted"
// @Failure 400 {object} errorResponse "Invalid booking ID"
// @Failure 403 {object} errorResponse "Access denied"
// @Failure 404 {object} errorResponse "Booking not found"
// @Router /api/orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	orderID := c.Param("id")

	if _, ok := h.fetchAuthorizedOrder(c, payload, orderID); !ok {
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), orderID); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			newErrorResponse(c, http.StatusNotFound, "Booking not found")
			return
		}
		newErrorResponse(c, http.StatusInternalServerError, "Failed to delete booking")
		return
	}

	c.JSON(http.StatusOK, OrderStatusResponse{
		Success: true,
		Message: "Booking deleted successfully",
	})
}

// @Summary List my bookings
// @Description All bookings owned by the caller, newest first
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} MyOrdersResponse "Caller's bookings"
// @Failure 401 {object} errorResponse "Not authenticated"
// @Router /api/orders [get]
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	orders, err := h.orderService.GetOrdersByUserID(c.Request.Context(), payload.UserID)
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "Failed to get bookings")
		return
	}

	infos := make([]OrderInfo, len(orders))
	for i, order := range orders {
		infos[i] = orderToInfo(order)
	}

	c.JSON(http.StatusOK, MyOrdersResponse{
		Success: true,
		Data:    infos,
		Total:   len(infos),
		UserID:  payload.UserID,
	})
}

// @Summary List all bookings
// @Description Every booking joined with its owner's username; admin only
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} AllOrdersResponse "All bookings"
// @Failure 401 {object} errorResponse "Not authenticated"
// @Failure 403 {object} errorResponse "Admin only"
// @Router /api/orders/all [get]
func (h *OrderHandler) ListAllOrders(c *gin.Context) {
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
		h.logger.Warn("Non-admin attempt to list all bookings", map[string]interface{}{
			"user_id": payload.UserID.String(),
			"ip":      c.ClientIP(),
		})
		newErrorResponse(c, http.StatusForbidden, "Access denied")
		return
	}

	orders, err := h.orderService.ListAllOrders(c.Request.Context())
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "Failed to get bookings")
		return
	}

	infos := make([]OrderInfo, len(orders))
	for i, order := range orders {
		infos[i] = orderToInfo(order)
	}

	c.JSON(http.StatusOK, AllOrdersResponse{
		Success: true,
		Data:    infos,
		Total:   len(infos),
		Type:    "admin_view",
	})
}
