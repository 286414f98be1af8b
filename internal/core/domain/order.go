package domain

// OrderStatus is the five-value display vocabulary shown to shoppers.
type OrderStatus string

const (
	OrderProcessing OrderStatus = "processing"
	OrderPacked     OrderStatus = "packed"
	OrderInTransit  OrderStatus = "in_transit"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// backendStatuses maps the backend order-status vocabulary onto the display
// vocabulary. Total over the backend's fixed set, anything else reads as
// processing.
var backendStatuses = map[string]OrderStatus{
	"PENDING":          OrderProcessing,
	"PROCESSING":       OrderProcessing,
	"CONFIRMED":        OrderProcessing,
	"PACKED":           OrderPacked,
	"OUT_FOR_DELIVERY": OrderInTransit,
	"SHIPPED":          OrderInTransit,
	"DELIVERED":        OrderDelivered,
	"COMPLETED":        OrderDelivered,
	"CANCELLED":        OrderCancelled,
}

// OrderStatusFromBackend normalizes a backend status string.
func OrderStatusFromBackend(s string) OrderStatus {
	if st, ok := backendStatuses[s]; ok {
		return st
	}
	return OrderProcessing
}

// nextBackendStatus is the admin progression: advancing an order in display
// status X submits the backend status the order should move to next.
var nextBackendStatus = map[OrderStatus]string{
	OrderProcessing: "PACKED",
	OrderPacked:     "OUT_FOR_DELIVERY",
	OrderInTransit:  "DELIVERED",
	OrderDelivered:  "COMPLETED",
	OrderCancelled:  "CANCELLED",
}

// NextBackendStatus returns the backend status an admin advance submits for an
// order currently in the given display status.
func NextBackendStatus(s OrderStatus) (string, bool) {
	v, ok := nextBackendStatus[s]
	return v, ok
}

type (
	OrderItem struct {
		ProductID string
		Name      string
		Quantity  int
		Price     float64
	}

	// Order is the shopper-facing snapshot of a backend order.
	Order struct {
		OrderID         string
		Date            string
		Status          OrderStatus
		Items           []OrderItem
		Total           float64
		DeliveryAddress string
	}
)

// DashboardStats is the admin dashboard summary.
type DashboardStats struct {
	TotalOrders   int
	TotalRevenue  float64
	TotalProducts int
	ActiveUsers   int
	InStock       int
}
