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

// Cart is the locally persisted cart. Mutations persist the full item set
// before returning and then push the change to the backend cart on a
// best-effort basis: failures are logged and dropped, never retried, so the
// remote cart may drift until the next login pull or pre-checkout sync. That
// drift is a known limitation, not handled here.
type Cart struct {
	mu       sync.Mutex
	items    []domain.CartItem
	repo     port.CartRepository
	gw       port.CartGateway
	events   port.EventsProducer
	session  port.SessionReader
	dispatch func(func())
}

type CartOpt func(*Cart)

// SyncDispatchOpt replaces the goroutine dispatch of remote sync calls.
func SyncDispatchOpt(dispatch func(func())) CartOpt {
	return func(c *Cart) { c.dispatch = dispatch }
}

// NewCart loads the persisted item set. An unreadable set starts empty.
func NewCart(
	ctx context.Context,
	repo port.CartRepository,
	gw port.CartGateway,
	events port.EventsProducer,
	session port.SessionReader,
	opts ...CartOpt,
) *Cart {
	const op = "NewCart"

	c := &Cart{
		repo:     repo,
		gw:       gw,
		events:   events,
		session:  session,
		dispatch: func(fn func()) { go fn() },
	}
	for _, o := range opts {
		o(c)
	}

	items, err := repo.LoadCart(ctx)
	if err != nil {
		slog.With("op", op).Warn("starting with empty cart", "err", err)
		return c
	}
	c.items = items
	return c
}

// Items returns a copy of the current lines.
func (c *Cart) Items() []domain.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.CartTotal(c.items)
}

func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.CartItemCount(c.items)
}

// Add puts qty units of the product in the cart. An existing line is
// incremented, never duplicated.
func (c *Cart) Add(ctx context.Context, p domain.Product, qty int) error {
	const op = "Cart.Add"

	if qty < 1 {
		qty = 1
	}

	c.mu.Lock()
	found := false
	for i := range c.items {
		if c.items[i].ProductID == p.ProductID {
			c.items[i].Quantity += qty
			found = true
			break
		}
	}
	if !found {
		c.items = append(c.items, domain.CartItemFromProduct(p, qty))
	}
	c.mu.Unlock()

	if err := c.persist(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	c.syncInBackground(ctx, op, func(ctx context.Context) error {
		return c.gw.PushItem(ctx, p.ProductID, qty)
	})
	c.emit(ctx, domain.EventCartItemAdded, p.ProductID, qty, 0)
	return nil
}

// UpdateQuantity sets the absolute quantity of a line. A non-positive
// quantity removes the line.
func (c *Cart) UpdateQuantity(ctx context.Context, productID string, qty int) error {
	const op = "Cart.UpdateQuantity"

	if qty <= 0 {
		return c.Remove(ctx, productID)
	}

	c.mu.Lock()
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = qty
			break
		}
	}
	c.mu.Unlock()

	if err := c.persist(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	c.syncInBackground(ctx, op, func(ctx context.Context) error {
		return c.gw.SetItemQuantity(ctx, productID, qty)
	})
	return nil
}

// Remove drops a line from the cart.
func (c *Cart) Remove(ctx context.Context, productID string) error {
	const op = "Cart.Remove"

	c.mu.Lock()
	kept := c.items[:0]
	for _, it := range c.items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	c.items = kept
	c.mu.Unlock()

	if err := c.persist(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	c.syncInBackground(ctx, op, func(ctx context.Context) error {
		return c.gw.RemoveItem(ctx, productID)
	})
	c.emit(ctx, domain.EventCartItemRemoved, productID, 0, 0)
	return nil
}

// Clear empties the local cart. The backend cart is not touched here; it is
// cleared by the backend when an order completes.
func (c *Cart) Clear(ctx context.Context) error {
	const op = "Cart.Clear"

	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()

	if err := c.persist(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// LoadRemote replaces the local cart with the backend cart. Without a session
// token it is a no-op; 400 and 401 answers mean "no remote cart yet".
func (c *Cart) LoadRemote(ctx context.Context) error {
	const op = "Cart.LoadRemote"

	if _, ok := c.session.Current(); !ok {
		return nil
	}

	items, err := c.gw.Fetch(ctx)
	if err != nil {
		if port.HasStatus(err, 400, 401) {
			return nil
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()

	if err := c.persist(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateStock refreshes the available quantity on held lines.
func (c *Cart) UpdateStock(ctx context.Context, stock map[string]int) error {
	const op = "Cart.UpdateStock"

	c.mu.Lock()
	for i := range c.items {
		if avail, ok := stock[c.items[i].ProductID]; ok {
			c.items[i].AvailableQuantity = avail
		}
	}
	c.mu.Unlock()

	if err := c.persist(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *Cart) persist(ctx context.Context) error {
	c.mu.Lock()
	items := make([]domain.CartItem, len(c.items))
	copy(items, c.items)
	c.mu.Unlock()
	return c.repo.SaveCart(ctx, items)
}

// syncInBackground runs one best-effort backend call. The call outlives the
// caller's context deadline but is never retried.
func (c *Cart) syncInBackground(
	ctx context.Context, op string, fn func(context.Context) error,
) {
	bgCtx := context.WithoutCancel(ctx)
	c.dispatch(func() {
		if err := fn(bgCtx); err != nil {
			slog.With("op", op).Warn("cart sync failed", "err", err)
		}
	})
}

func (c *Cart) emit(ctx context.Context, kind domain.ClientEventKind, productID string, qty int, amount float64) {
	const op = "Cart.emit"

	var userID string
	if cur, ok := c.session.Current(); ok {
		userID = cur.User.UserID
	}
	evt := domain.ClientEvent{
		Kind:      kind,
		UserID:    userID,
		ProductID: productID,
		Quantity:  qty,
		Amount:    amount,
		At:        time.Now(),
	}

	bgCtx := context.WithoutCancel(ctx)
	c.dispatch(func() {
		if err := c.events.Produce(bgCtx, evt); err != nil {
			slog.With("op", op).Warn("event dropped", "err", err)
		}
	})
}
