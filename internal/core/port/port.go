package port

import (
	"context"

	"github.com/revcart/storefront/internal/core/domain"
)

// Outbound gateway ports. Every call goes to the backend HTTP gateway; the
// client owns no business logic behind them.

type AuthGateway interface {
	Login(context.Context, domain.Credentials) (domain.Session, error)
	Register(context.Context, domain.SignupData) (domain.Session, error)
	VerifyOTP(ctx context.Context, email, otp string) error
	ResendOTP(ctx context.Context, email string) error
}

type CartGateway interface {
	PushItem(ctx context.Context, productID string, qty int) error
	SetItemQuantity(ctx context.Context, productID string, qty int) error
	RemoveItem(ctx context.Context, productID string) error
	Fetch(context.Context) ([]domain.CartItem, error)
	Clear(context.Context) error
	ReplaceAll(context.Context, []domain.CartItem) error
}

type AddressGateway interface {
	Addresses(context.Context) ([]domain.Address, error)
	CreateAddress(context.Context, domain.Address) (domain.Address, error)
}

type OrderGateway interface {
	Checkout(ctx context.Context, addressID, paymentMethod string) (orderID string, amount float64, err error)
	Orders(context.Context) ([]domain.Order, error)
	Order(ctx context.Context, orderID string) (domain.Order, error)
	CancelOrder(ctx context.Context, orderID string) error
}

type PaymentGateway interface {
	ProcessDummyPayment(
		ctx context.Context,
		orderID, userID string,
		amount float64,
		paymentMethod, upiID string,
	) (domain.PaymentResult, error)
}

type CatalogGateway interface {
	Products(context.Context, domain.ProductFilter) ([]domain.Product, error)
	Categories(context.Context) ([]domain.Category, error)
}

type AdminGateway interface {
	DashboardStats(context.Context) (domain.DashboardStats, error)
	AdminOrders(context.Context) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID, backendStatus string) (domain.Order, error)
}

type DeliveryGateway interface {
	AssignedOrders(context.Context) ([]domain.Order, error)
	InTransitOrders(context.Context) ([]domain.Order, error)
	PendingOrders(context.Context) ([]domain.Order, error)
	UpdateDeliveryStatus(ctx context.Context, orderID, backendStatus string) error
}

type NotificationGateway interface {
	Notify(ctx context.Context, userID, title, message, kind string) error
}

// Local durable state ports ("browser storage" of the client).

type CartRepository interface {
	LoadCart(context.Context) ([]domain.CartItem, error)
	SaveCart(context.Context, []domain.CartItem) error
}

type WishlistRepository interface {
	LoadWishlist(context.Context) ([]domain.Product, error)
	SaveWishlist(context.Context, []domain.Product) error
	ClearWishlist(context.Context) error
}

type SessionRepository interface {
	LoadSession(context.Context) (domain.Session, error)
	SaveSession(context.Context, domain.Session) error
	ClearSession(context.Context) error
}

// EventsProducer reports client activity. Emission is fire-and-forget; a nil
// broker configuration yields a no-op implementation.
type EventsProducer interface {
	Produce(context.Context, domain.ClientEvent) error
	Close()
}

// Navigator switches the visible view after flow outcomes (order list after
// checkout, login after a 401, home after a 403).
type Navigator interface {
	NavigateTo(route string)
}

// SessionReader exposes the current identity to components that only read it.
type SessionReader interface {
	Current() (domain.Session, bool)
}
