package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/revcart/storefront/internal/core/domain"
	"github.com/revcart/storefront/internal/core/port"
)

// CheckoutState is the explicit state of one checkout attempt.
type CheckoutState int

const (
	StateIdle CheckoutState = iota
	StateValidating
	StateSyncingCart
	StateResolvingAddress
	StatePlacingOrder
	StateAwaitingPayment
	StateCompleted
	StateFailed
)

var checkoutStateNames = map[CheckoutState]string{
	StateIdle:             "Idle",
	StateValidating:       "Validating",
	StateSyncingCart:      "SyncingCart",
	StateResolvingAddress: "ResolvingAddress",
	StatePlacingOrder:     "PlacingOrder",
	StateAwaitingPayment:  "AwaitingPayment",
	StateCompleted:        "Completed",
	StateFailed:           "Failed",
}

func (s CheckoutState) String() string {
	if n, ok := checkoutStateNames[s]; ok {
		return n
	}
	return fmt.Sprintf("CheckoutState(%d)", int(s))
}

// checkoutTransitions lists the legal forward edges. Failed is additionally
// reachable from every non-terminal state.
var checkoutTransitions = map[CheckoutState][]CheckoutState{
	StateIdle:             {StateValidating},
	StateValidating:       {StateSyncingCart, StateIdle},
	StateSyncingCart:      {StateResolvingAddress},
	StateResolvingAddress: {StatePlacingOrder},
	StatePlacingOrder:     {StateAwaitingPayment, StateCompleted},
	StateAwaitingPayment:  {StateCompleted, StateIdle},
	StateCompleted:        {StateValidating},
	StateFailed:           {StateValidating},
}

func transitionAllowed(from, to CheckoutState) bool {
	if to == StateFailed {
		return from != StateCompleted && from != StateFailed
	}
	for _, next := range checkoutTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// deliveryFee is charged on any non-empty cart.
const deliveryFee = 5.99

// CheckoutRequest is one submission of the checkout form. Either
// SavedAddressID names an existing profile address, or NewAddress carries the
// fields of one to create.
type CheckoutRequest struct {
	SavedAddressID string
	NewAddress     domain.Address
	Method         domain.PaymentMethod
}

// Checkout sequences one checkout attempt: validation, cart push, address
// resolution, order creation and the payment-method branch. A repeated Submit
// while an attempt is in flight is rejected.
//
// Orders created before a failed or cancelled payment stay created and
// unpaid: no compensating cancel is issued.
type Checkout struct {
	mu        sync.Mutex
	state     CheckoutState
	errMsg    string
	orderID   string
	amount    float64
	method    domain.PaymentMethod
	cart      *Cart
	cartGW    port.CartGateway
	addresses port.AddressGateway
	orders    port.OrderGateway
	payments  port.PaymentGateway
	session   port.SessionReader
	nav       port.Navigator
	events    port.EventsProducer
	cardForm  *CardForm
	upiForm   *UPIForm
}

func NewCheckout(
	cart *Cart,
	cartGW port.CartGateway,
	addresses port.AddressGateway,
	orders port.OrderGateway,
	payments port.PaymentGateway,
	session port.SessionReader,
	nav port.Navigator,
	events port.EventsProducer,
) *Checkout {
	return &Checkout{
		cart:      cart,
		cartGW:    cartGW,
		addresses: addresses,
		orders:    orders,
		payments:  payments,
		session:   session,
		nav:       nav,
		events:    events,
		cardForm:  NewCardForm(),
		upiForm:   NewUPIForm(),
	}
}

func (co *Checkout) State() CheckoutState {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.state
}

// ErrorMessage is the user-facing message of the last failure, empty when the
// last attempt did not fail.
func (co *Checkout) ErrorMessage() string {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.errMsg
}

func (co *Checkout) CardForm() *CardForm { return co.cardForm }
func (co *Checkout) UPIForm() *UPIForm   { return co.upiForm }

// transition moves to the next state or panics on an illegal edge; edges are
// fixed at compile time, so an illegal one is a programming mistake.
func (co *Checkout) transition(to CheckoutState) {
	co.mu.Lock()
	defer co.mu.Unlock()
	if !transitionAllowed(co.state, to) {
		panic(fmt.Sprintf("checkout: illegal transition %s -> %s", co.state, to))
	}
	co.state = to
}

func (co *Checkout) failWith(msg string) {
	co.mu.Lock()
	defer co.mu.Unlock()
	co.state = StateFailed
	co.errMsg = msg
}

// Submit runs one checkout attempt up to either completion (cash on delivery)
// or AwaitingPayment (card, UPI). The returned error carries the same message
// exposed by ErrorMessage.
func (co *Checkout) Submit(ctx context.Context, req CheckoutRequest) error {
	const op = "Checkout.Submit"
	log := slog.With("op", op)

	co.mu.Lock()
	switch co.state {
	case StateIdle, StateCompleted, StateFailed:
		co.state = StateValidating
		co.errMsg = ""
		co.orderID = ""
		co.amount = 0
		co.method = req.Method
	default:
		co.mu.Unlock()
		return ErrCheckoutInProgress
	}
	co.mu.Unlock()

	// Validating: nothing leaves the client until the cart and the address
	// form hold up.
	items := co.cart.Items()
	if len(items) == 0 {
		co.mu.Lock()
		co.state = StateIdle
		co.errMsg = "Your cart is empty"
		co.mu.Unlock()
		return fmt.Errorf("%s: %w", op, ErrCartEmpty)
	}
	if req.SavedAddressID == "" && !req.NewAddress.RequiredFieldsFilled() {
		co.mu.Lock()
		co.state = StateIdle
		co.errMsg = "Please fill in all required address fields"
		co.mu.Unlock()
		return fmt.Errorf("%s: %w", op, ErrAddressFields)
	}

	// SyncingCart: push the local lines so the backend checks out the cart
	// the shopper sees. Per-item failures are tolerated inside ReplaceAll.
	co.transition(StateSyncingCart)
	if err := co.cartGW.ReplaceAll(ctx, items); err != nil {
		co.failWith("Failed to sync cart. Please try again.")
		log.Error("cart sync before checkout failed", "err", err)
		return fmt.Errorf("%s: %w", op, err)
	}

	// ResolvingAddress: an existing address skips straight on; creating a new
	// one is the accepted partial-failure point before any order exists.
	co.transition(StateResolvingAddress)
	addressID := req.SavedAddressID
	if addressID == "" {
		created, err := co.addresses.CreateAddress(ctx, req.NewAddress)
		if err != nil {
			co.failWith(port.UserMessage(err, "Failed to save address. Please try again."))
			log.Error("address creation failed", "err", err)
			return fmt.Errorf("%s: %w", op, err)
		}
		addressID = created.AddressID
	}

	co.transition(StatePlacingOrder)
	orderID, amount, err := co.orders.Checkout(ctx, addressID, domain.BackendPaymentMethod(req.Method))
	if err != nil {
		co.failWith(port.UserMessage(err, "Failed to place order. Please try again."))
		log.Error("order creation failed", "err", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	if amount == 0 {
		amount = co.cart.Total() + deliveryFee
	}

	co.mu.Lock()
	co.orderID = orderID
	co.amount = amount
	co.mu.Unlock()

	switch req.Method {
	case domain.PayCard:
		co.transition(StateAwaitingPayment)
		co.cardForm.Open()
	case domain.PayUPI:
		co.transition(StateAwaitingPayment)
		co.upiForm.Open()
	default:
		co.completeOrder(ctx)
	}
	return nil
}

// SubmitCardPayment validates the card form and delegates to the dummy
// payment capture. A rejected capture keeps the attempt in AwaitingPayment
// with the backend's message inside the form.
func (co *Checkout) SubmitCardPayment(ctx context.Context, details domain.CardDetails) error {
	const op = "Checkout.SubmitCardPayment"

	if co.State() != StateAwaitingPayment || !co.cardForm.IsOpen() {
		return fmt.Errorf("%s: %w", op, ErrNoPaymentPending)
	}
	errs, err := co.cardForm.Submit(details)
	if err != nil {
		// A capture is in flight; its processing lock stays held.
		return fmt.Errorf("%s: %w", op, err)
	}
	if errs != nil {
		co.cardForm.fail(firstFieldError(errs))
		return fmt.Errorf("%s: %w", op, ErrPaymentRejected)
	}
	return co.capturePayment(ctx, op, co.cardForm.Close, co.cardForm.fail, "")
}

// SubmitUPIPayment is the UPI variant of SubmitCardPayment.
func (co *Checkout) SubmitUPIPayment(ctx context.Context, details domain.UPIDetails) error {
	const op = "Checkout.SubmitUPIPayment"

	if co.State() != StateAwaitingPayment || !co.upiForm.IsOpen() {
		return fmt.Errorf("%s: %w", op, ErrNoPaymentPending)
	}
	errs, err := co.upiForm.Submit(details)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if errs != nil {
		co.upiForm.fail(firstFieldError(errs))
		return fmt.Errorf("%s: %w", op, ErrPaymentRejected)
	}
	return co.capturePayment(ctx, op, co.upiForm.Close, co.upiForm.fail, details.UPIID)
}

func (co *Checkout) capturePayment(
	ctx context.Context,
	op string,
	closeForm func() bool,
	failForm func(string),
	upiID string,
) error {
	log := slog.With("op", op)

	cur, ok := co.session.Current()
	if !ok {
		failForm("User not authenticated. Please login again.")
		return fmt.Errorf("%s: %w", op, ErrNotAuthenticated)
	}

	co.mu.Lock()
	orderID, amount, method := co.orderID, co.amount, co.method
	co.mu.Unlock()

	res, err := co.payments.ProcessDummyPayment(
		ctx, orderID, cur.User.UserID, amount, domain.BackendPaymentMethod(method), upiID,
	)
	if err != nil {
		failForm(port.UserMessage(err, "Payment processing failed. Please try again."))
		log.Error("payment capture failed", "orderID", orderID, "err", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	if !res.Captured() {
		msg := res.Message
		if msg == "" {
			msg = "Payment failed"
		}
		failForm(msg)
		log.Warn("payment not captured", "orderID", orderID, "status", res.Status)
		return fmt.Errorf("%s: %w: %s", op, ErrPaymentRejected, msg)
	}

	co.cardForm.finish()
	co.upiForm.finish()
	closeForm()
	co.completeOrder(ctx)
	return nil
}

// CancelPayment dismisses the open capture form and returns the attempt to
// Idle. While a capture is processing it is a no-op. The created order stays
// unpaid; reconciliation is manual.
func (co *Checkout) CancelPayment() bool {
	if co.State() != StateAwaitingPayment {
		return false
	}
	if co.cardForm.IsOpen() && !co.cardForm.Close() {
		return false
	}
	if co.upiForm.IsOpen() && !co.upiForm.Close() {
		return false
	}

	co.mu.Lock()
	co.state = StateIdle
	co.orderID = ""
	co.amount = 0
	co.errMsg = ""
	co.mu.Unlock()
	return true
}

func (co *Checkout) completeOrder(ctx context.Context) {
	const op = "Checkout.completeOrder"
	log := slog.With("op", op)

	co.mu.Lock()
	orderID, amount := co.orderID, co.amount
	co.mu.Unlock()

	if err := co.cart.Clear(ctx); err != nil {
		log.Error("failed to clear cart after checkout", "err", err)
	}

	var userID string
	if cur, ok := co.session.Current(); ok {
		userID = cur.User.UserID
	}
	evt := domain.ClientEvent{
		Kind:   domain.EventCheckoutCompleted,
		UserID: userID,
		Amount: amount,
		At:     time.Now(),
	}
	bgCtx := context.WithoutCancel(ctx)
	co.cart.dispatch(func() {
		if err := co.events.Produce(bgCtx, evt); err != nil {
			log.Warn("event dropped", "err", err)
		}
	})

	co.transition(StateCompleted)
	log.Info("checkout completed", "orderID", orderID)
	co.nav.NavigateTo(RouteOrders)
}

func firstFieldError(errs domain.FieldErrors) string {
	for _, msg := range errs {
		return msg
	}
	return "Invalid payment details"
}
