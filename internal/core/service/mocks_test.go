package service_test

import (
	"context"
	"sync"

	"github.com/revcart/storefront/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// syncDispatch runs background work inline so tests observe it.
func syncDispatch(fn func()) { fn() }

type stubNav struct {
	mu     sync.Mutex
	routes []string
}

func (n *stubNav) NavigateTo(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, route)
}

func (n *stubNav) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.routes) == 0 {
		return ""
	}
	return n.routes[len(n.routes)-1]
}

type stubSession struct {
	sess domain.Session
}

func (s *stubSession) Current() (domain.Session, bool) {
	return s.sess, s.sess.Valid()
}

func loggedIn(userID string) *stubSession {
	return &stubSession{sess: domain.Session{
		User:  domain.User{UserID: userID, Role: domain.RoleCustomer},
		Token: "tok-" + userID,
	}}
}

type memCartRepo struct {
	mu      sync.Mutex
	items   []domain.CartItem
	loadErr error
	saveErr error
	saves   int
}

func (r *memCartRepo) LoadCart(context.Context) ([]domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return r.items, nil
}

func (r *memCartRepo) SaveCart(_ context.Context, items []domain.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.items = items
	r.saves++
	return nil
}

type memWishlistRepo struct {
	mu      sync.Mutex
	items   []domain.Product
	loadErr error
	cleared bool
}

func (r *memWishlistRepo) LoadWishlist(context.Context) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return r.items, nil
}

func (r *memWishlistRepo) SaveWishlist(_ context.Context, items []domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = items
	return nil
}

func (r *memWishlistRepo) ClearWishlist(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
	r.cleared = true
	return nil
}

type memSessionRepo struct {
	mu      sync.Mutex
	sess    domain.Session
	loadErr error
	cleared bool
}

func (r *memSessionRepo) LoadSession(context.Context) (domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loadErr != nil {
		return domain.Session{}, r.loadErr
	}
	return r.sess, nil
}

func (r *memSessionRepo) SaveSession(_ context.Context, sess domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sess = sess
	return nil
}

func (r *memSessionRepo) ClearSession(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sess = domain.Session{}
	r.cleared = true
	return nil
}

type eventsRecorder struct {
	mu     sync.Mutex
	events []domain.ClientEvent
}

func (e *eventsRecorder) Produce(_ context.Context, evt domain.ClientEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, evt)
	return nil
}

func (e *eventsRecorder) Close() {}

func (e *eventsRecorder) kinds() []domain.ClientEventKind {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.ClientEventKind, 0, len(e.events))
	for _, evt := range e.events {
		out = append(out, evt.Kind)
	}
	return out
}

type MockCartGateway struct {
	mock.Mock
}

func (m *MockCartGateway) PushItem(ctx context.Context, productID string, qty int) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

func (m *MockCartGateway) SetItemQuantity(ctx context.Context, productID string, qty int) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

func (m *MockCartGateway) RemoveItem(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *MockCartGateway) Fetch(ctx context.Context) ([]domain.CartItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]domain.CartItem)
	return items, args.Error(1)
}

func (m *MockCartGateway) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCartGateway) ReplaceAll(ctx context.Context, items []domain.CartItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

type MockAddressGateway struct {
	mock.Mock
}

func (m *MockAddressGateway) Addresses(ctx context.Context) ([]domain.Address, error) {
	args := m.Called(ctx)
	addrs, _ := args.Get(0).([]domain.Address)
	return addrs, args.Error(1)
}

func (m *MockAddressGateway) CreateAddress(
	ctx context.Context, addr domain.Address,
) (domain.Address, error) {
	args := m.Called(ctx, addr)
	created, _ := args.Get(0).(domain.Address)
	return created, args.Error(1)
}

type MockOrderGateway struct {
	mock.Mock
}

func (m *MockOrderGateway) Checkout(
	ctx context.Context, addressID, paymentMethod string,
) (string, float64, error) {
	args := m.Called(ctx, addressID, paymentMethod)
	return args.String(0), args.Get(1).(float64), args.Error(2)
}

func (m *MockOrderGateway) Orders(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]domain.Order)
	return orders, args.Error(1)
}

func (m *MockOrderGateway) Order(ctx context.Context, orderID string) (domain.Order, error) {
	args := m.Called(ctx, orderID)
	order, _ := args.Get(0).(domain.Order)
	return order, args.Error(1)
}

func (m *MockOrderGateway) CancelOrder(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) ProcessDummyPayment(
	ctx context.Context,
	orderID, userID string,
	amount float64,
	paymentMethod, upiID string,
) (domain.PaymentResult, error) {
	args := m.Called(ctx, orderID, userID, amount, paymentMethod, upiID)
	res, _ := args.Get(0).(domain.PaymentResult)
	return res, args.Error(1)
}

// blockingPaymentGateway parks the capture until release is closed, so tests
// can act while it is in flight.
type blockingPaymentGateway struct {
	entered chan struct{}
	release chan struct{}
	result  domain.PaymentResult
}

func newBlockingPaymentGateway(result domain.PaymentResult) *blockingPaymentGateway {
	return &blockingPaymentGateway{
		entered: make(chan struct{}),
		release: make(chan struct{}),
		result:  result,
	}
}

func (g *blockingPaymentGateway) ProcessDummyPayment(
	ctx context.Context,
	orderID, userID string,
	amount float64,
	paymentMethod, upiID string,
) (domain.PaymentResult, error) {
	close(g.entered)
	<-g.release
	return g.result, nil
}

type MockAuthGateway struct {
	mock.Mock
}

func (m *MockAuthGateway) Login(
	ctx context.Context, creds domain.Credentials,
) (domain.Session, error) {
	args := m.Called(ctx, creds)
	sess, _ := args.Get(0).(domain.Session)
	return sess, args.Error(1)
}

func (m *MockAuthGateway) Register(
	ctx context.Context, data domain.SignupData,
) (domain.Session, error) {
	args := m.Called(ctx, data)
	sess, _ := args.Get(0).(domain.Session)
	return sess, args.Error(1)
}

func (m *MockAuthGateway) VerifyOTP(ctx context.Context, email, otp string) error {
	args := m.Called(ctx, email, otp)
	return args.Error(0)
}

func (m *MockAuthGateway) ResendOTP(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

type MockNotificationGateway struct {
	mock.Mock
}

func (m *MockNotificationGateway) Notify(
	ctx context.Context, userID, title, message, kind string,
) error {
	args := m.Called(ctx, userID, title, message, kind)
	return args.Error(0)
}

type MockAdminGateway struct {
	mock.Mock
}

func (m *MockAdminGateway) DashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(domain.DashboardStats)
	return stats, args.Error(1)
}

func (m *MockAdminGateway) AdminOrders(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]domain.Order)
	return orders, args.Error(1)
}

func (m *MockAdminGateway) UpdateOrderStatus(
	ctx context.Context, orderID, backendStatus string,
) (domain.Order, error) {
	args := m.Called(ctx, orderID, backendStatus)
	order, _ := args.Get(0).(domain.Order)
	return order, args.Error(1)
}

type MockDeliveryGateway struct {
	mock.Mock
}

func (m *MockDeliveryGateway) AssignedOrders(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]domain.Order)
	return orders, args.Error(1)
}

func (m *MockDeliveryGateway) InTransitOrders(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]domain.Order)
	return orders, args.Error(1)
}

func (m *MockDeliveryGateway) PendingOrders(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]domain.Order)
	return orders, args.Error(1)
}

func (m *MockDeliveryGateway) UpdateDeliveryStatus(
	ctx context.Context, orderID, backendStatus string,
) error {
	args := m.Called(ctx, orderID, backendStatus)
	return args.Error(0)
}
