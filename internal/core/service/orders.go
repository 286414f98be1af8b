package service

import (
	"context"
	"fmt"

	"github.com/revcart/storefront/internal/core/domain"
	"github.com/revcart/storefront/internal/core/port"
)

// Orders exposes order tracking for shoppers and the role-gated admin and
// delivery-agent views. All state lives on the backend; status values are
// already normalized to the display vocabulary by the gateway.
type Orders struct {
	orders   port.OrderGateway
	admin    port.AdminGateway
	delivery port.DeliveryGateway
	session  port.SessionReader
}

func NewOrders(
	orders port.OrderGateway,
	admin port.AdminGateway,
	delivery port.DeliveryGateway,
	session port.SessionReader,
) Orders {
	return Orders{orders, admin, delivery, session}
}

func (s Orders) List(ctx context.Context) ([]domain.Order, error) {
	const op = "Orders.List"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	orders, err := s.orders.Orders(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}

func (s Orders) Get(ctx context.Context, orderID string) (domain.Order, error) {
	const op = "Orders.Get"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	order, err := s.orders.Order(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

// Cancel asks the backend to cancel a shopper's own order. This is the only
// status mutation a shopper can request.
func (s Orders) Cancel(ctx context.Context, orderID string) error {
	const op = "Orders.Cancel"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.orders.CancelOrder(ctx, orderID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s Orders) DashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	const op = "Orders.DashboardStats"

	if err := ctx.Err(); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("%s: %w", op, err)
	}

	stats, err := s.admin.DashboardStats(ctx)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}

func (s Orders) AdminList(ctx context.Context) ([]domain.Order, error) {
	const op = "Orders.AdminList"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	orders, err := s.admin.AdminOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}

// Advance moves an order to its next backend status following the admin
// progression table.
func (s Orders) Advance(ctx context.Context, order domain.Order) (domain.Order, error) {
	const op = "Orders.Advance"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	next, ok := domain.NextBackendStatus(order.Status)
	if !ok {
		return domain.Order{}, fmt.Errorf("%s: no progression from status %q", op, order.Status)
	}

	updated, err := s.admin.UpdateOrderStatus(ctx, order.OrderID, next)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// DeliveryQueues fetches the three delivery-agent work queues.
func (s Orders) DeliveryQueues(ctx context.Context) (assigned, inTransit, pending []domain.Order, err error) {
	const op = "Orders.DeliveryQueues"

	if err := ctx.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	if assigned, err = s.delivery.AssignedOrders(ctx); err != nil {
		return nil, nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	if inTransit, err = s.delivery.InTransitOrders(ctx); err != nil {
		return nil, nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	if pending, err = s.delivery.PendingOrders(ctx); err != nil {
		return nil, nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	return assigned, inTransit, pending, nil
}

// MarkDelivery moves an order to its next backend status on behalf of the
// delivery agent.
func (s Orders) MarkDelivery(ctx context.Context, order domain.Order) error {
	const op = "Orders.MarkDelivery"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	next, ok := domain.NextBackendStatus(order.Status)
	if !ok {
		return fmt.Errorf("%s: no progression from status %q", op, order.Status)
	}

	if err := s.delivery.UpdateDeliveryStatus(ctx, order.OrderID, next); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
