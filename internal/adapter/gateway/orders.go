package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/revcart/storefront/internal/core/domain"
	"github.com/revcart/storefront/internal/core/port"
)

var _ port.OrderGateway = (*OrderAPI)(nil)

type OrderAPI struct {
	cl *Client
}

func NewOrderAPI(cl *Client) OrderAPI {
	return OrderAPI{cl}
}

// Checkout submits one order against a resolved address. The backend owns
// totals and inventory; the client only learns the order id and amount.
func (a OrderAPI) Checkout(
	ctx context.Context, addressID, paymentMethod string,
) (string, float64, error) {
	const op = "OrderAPI.Checkout"

	id, ok := idFromString(addressID)
	if !ok {
		return "", 0, fmt.Errorf("%s: invalid address id %q", op, addressID)
	}

	body := map[string]any{
		"addressId":     id,
		"paymentMethod": paymentMethod,
	}

	var resp CheckoutResponse
	err := a.cl.doJSON(ctx, http.MethodPost, "/orders/checkout", nil, body, &resp)
	if err != nil {
		return "", 0, fmt.Errorf("%s: %w", op, err)
	}

	orderID := resp.ID
	if orderID == 0 {
		orderID = resp.OrderID
	}
	if orderID == 0 {
		return "", 0, fmt.Errorf("%s: backend returned no order id", op)
	}
	return idToString(orderID), resp.TotalAmount, nil
}

func (a OrderAPI) Orders(ctx context.Context) ([]domain.Order, error) {
	const op = "OrderAPI.Orders"

	var dtos []OrderDTO
	err := a.cl.doJSON(ctx, http.MethodGet, "/orders/user", nil, nil, &dtos)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ordersToDomain(dtos), nil
}

func (a OrderAPI) Order(ctx context.Context, orderID string) (domain.Order, error) {
	const op = "OrderAPI.Order"

	id, ok := idFromString(orderID)
	if !ok {
		return domain.Order{}, fmt.Errorf("%s: invalid order id %q", op, orderID)
	}

	var dto OrderDTO
	err := a.cl.doJSON(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, nil, &dto)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return dto.toDomain(), nil
}

func (a OrderAPI) CancelOrder(ctx context.Context, orderID string) error {
	const op = "OrderAPI.CancelOrder"

	id, ok := idFromString(orderID)
	if !ok {
		return fmt.Errorf("%s: invalid order id %q", op, orderID)
	}

	path := fmt.Sprintf("/orders/%d/cancel", id)
	err := a.cl.doJSON(ctx, http.MethodPost, path, nil, nil, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

var _ port.AdminGateway = (*AdminAPI)(nil)

type AdminAPI struct {
	cl *Client
}

func NewAdminAPI(cl *Client) AdminAPI {
	return AdminAPI{cl}
}

func (a AdminAPI) DashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	const op = "AdminAPI.DashboardStats"

	var dto StatsDTO
	err := a.cl.doJSON(ctx, http.MethodGet, "/admin/dashboard/stats", nil, nil, &dto)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("%s: %w", op, err)
	}
	return domain.DashboardStats{
		TotalOrders:   dto.TotalOrders,
		TotalRevenue:  dto.TotalRevenue,
		TotalProducts: dto.TotalProducts,
		ActiveUsers:   dto.ActiveUsers,
		InStock:       dto.InStock,
	}, nil
}

func (a AdminAPI) AdminOrders(ctx context.Context) ([]domain.Order, error) {
	const op = "AdminAPI.AdminOrders"

	q := url.Values{"page": {"0"}, "size": {"20"}}
	var dtos []OrderDTO
	err := a.cl.doJSON(ctx, http.MethodGet, "/admin/orders", q, nil, &dtos)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ordersToDomain(dtos), nil
}

func (a AdminAPI) UpdateOrderStatus(
	ctx context.Context, orderID, backendStatus string,
) (domain.Order, error) {
	const op = "AdminAPI.UpdateOrderStatus"

	id, ok := idFromString(orderID)
	if !ok {
		return domain.Order{}, fmt.Errorf("%s: invalid order id %q", op, orderID)
	}

	body := map[string]string{"status": backendStatus}
	path := fmt.Sprintf("/admin/orders/%d/status", id)

	var dto OrderDTO
	err := a.cl.doJSON(ctx, http.MethodPost, path, nil, body, &dto)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return dto.toDomain(), nil
}

var _ port.DeliveryGateway = (*DeliveryAPI)(nil)

type DeliveryAPI struct {
	cl *Client
}

func NewDeliveryAPI(cl *Client) DeliveryAPI {
	return DeliveryAPI{cl}
}

func (a DeliveryAPI) AssignedOrders(ctx context.Context) ([]domain.Order, error) {
	return a.queue(ctx, "DeliveryAPI.AssignedOrders", "assigned")
}

func (a DeliveryAPI) InTransitOrders(ctx context.Context) ([]domain.Order, error) {
	return a.queue(ctx, "DeliveryAPI.InTransitOrders", "in-transit")
}

func (a DeliveryAPI) PendingOrders(ctx context.Context) ([]domain.Order, error) {
	return a.queue(ctx, "DeliveryAPI.PendingOrders", "pending")
}

func (a DeliveryAPI) queue(ctx context.Context, op, name string) ([]domain.Order, error) {
	var dtos []OrderDTO
	err := a.cl.doJSON(ctx, http.MethodGet, "/delivery/orders/"+name, nil, nil, &dtos)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ordersToDomain(dtos), nil
}

func (a DeliveryAPI) UpdateDeliveryStatus(
	ctx context.Context, orderID, backendStatus string,
) error {
	const op = "DeliveryAPI.UpdateDeliveryStatus"

	id, ok := idFromString(orderID)
	if !ok {
		return fmt.Errorf("%s: invalid order id %q", op, orderID)
	}

	body := map[string]string{"status": backendStatus}
	path := fmt.Sprintf("/delivery/orders/%d/status", id)
	err := a.cl.doJSON(ctx, http.MethodPost, path, nil, body, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
