package services

import (
	"context"
	"fmt"

	"github.com/sewamoto/motor_rental_service/internal/core/domain"
	"github.com/sewamoto/motor_rental_service/internal/core/ports"

	"github.com/google/uuid"
)

type OrderService struct {
	orderRepo ports.OrderRepository
	logger    ports.LoggerPort
}

func NewOrderService(
	orderRepo ports.OrderRepository,
	logger ports.LoggerPort,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

func parseOrderID(orderID string) (uuid.UUID, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s", ports.ErrInvalidID, orderID)
	}
	return id, nil
}

func (s *OrderService) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}

	createdOrder, err := s.orderRepo.CreateOrder(ctx, order)
	if err != nil {
		s.logger.Error("Failed to create order", map[string]interface{}{
			"error":   err.Error(),
			"user_id": order.UserID,
		})
		return nil, err
	}

	s.logger.Info("Order created successfully", map[string]interface{}{
		"order_id": createdOrder.ID,
		"user_id":  createdOrder.UserID,
	})

	return createdOrder, nil
}

func (s *OrderService) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	orderUUID, err := parseOrderID(orderID)
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetOrderByID(ctx, orderUUID)
	if err != nil {
		s.logger.Error("Failed to get order", map[string]interface{}{
			"error":    err.Error(),
			"order_id": orderID,
		})
		return nil, err
	}

	return order, nil
}

func (s *OrderService) GetOrdersByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	orders, err := s.orderRepo.GetOrdersByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to get orders", map[string]interface{}{
			"error":   err.Error(),
			"user_id": userID,
		})
		return nil, err
	}

	s.logger.Info("Retrieved orders for user", map[string]interface{}{
		"user_id":      userID,
		"orders_count": len(orders),
	})

	return orders, nil
}

func (s *OrderService) ListAllOrders(ctx context.Context) ([]*domain.Order, error) {
	orders, err := s.orderRepo.ListAllOrders(ctx)
	if err != nil {
		s.logger.Error("Failed to list all orders", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	return orders, nil
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	orderUUID, err := parseOrderID(orderID)
	if err != nil {
		return err
	}

	if err := s.orderRepo.UpdateOrderStatus(ctx, orderUUID, status); err != nil {
		s.logger.Error("Failed to update order status", map[string]interface{}{
			"error":    err.Error(),
			"order_id": orderID,
		})
		return err
	}

	s.logger.Info("Order status updated", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})

	return nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, orderID string) error {
	orderUUID, err := parseOrderID(orderID)
	if err != nil {
		return err
	}

	if err := s.orderRepo.DeleteOrder(ctx, orderUUID); err != nil {
		s.logger.Error("Failed to delete order", map[string]interface{}{
			"error":    err.Error(),
			"order_id": orderID,
		})
		return err
	}

	s.logger.Info("Order deleted successfully", map[string]interface{}{
		"order_id": orderID,
	})

	return nil
}
