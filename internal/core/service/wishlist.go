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

// Wishlist is the locally persisted wishlist. Adding a product posts a
// best-effort notification to the backend.
type Wishlist struct {
	mu       sync.Mutex
	items    []domain.Product
	repo     port.WishlistRepository
	notify   port.NotificationGateway
	events   port.EventsProducer
	session  port.SessionReader
	dispatch func(func())
}

type WishlistOpt func(*Wishlist)

// WishlistDispatchOpt replaces the goroutine dispatch of notification calls.
func WishlistDispatchOpt(dispatch func(func())) WishlistOpt {
	return func(w *Wishlist) { w.dispatch = dispatch }
}

// NewWishlist loads the persisted set. An unreadable set starts empty.
func NewWishlist(
	ctx context.Context,
	repo port.WishlistRepository,
	notify port.NotificationGateway,
	events port.EventsProducer,
	session port.SessionReader,
	opts ...WishlistOpt,
) *Wishlist {
	const op = "NewWishlist"

	w := &Wishlist{
		repo:     repo,
		notify:   notify,
		events:   events,
		session:  session,
		dispatch: func(fn func()) { go fn() },
	}
	for _, o := range opts {
		o(w)
	}

	items, err := repo.LoadWishlist(ctx)
	if err != nil {
		slog.With("op", op).Warn("starting with empty wishlist", "err", err)
		return w
	}
	w.items = items
	return w
}

func (w *Wishlist) Items() []domain.Product {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]domain.Product, len(w.items))
	copy(out, w.items)
	return out
}

func (w *Wishlist) ItemCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.items)
}

func (w *Wishlist) Contains(productID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, it := range w.items {
		if it.ProductID == productID {
			return true
		}
	}
	return false
}

// Add puts a product on the wishlist once; duplicates are ignored.
func (w *Wishlist) Add(ctx context.Context, p domain.Product) error {
	const op = "Wishlist.Add"

	if w.Contains(p.ProductID) {
		return nil
	}

	w.mu.Lock()
	w.items = append(w.items, p)
	w.mu.Unlock()

	if err := w.persist(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	w.sendAddedNotification(ctx, p)
	return nil
}

func (w *Wishlist) Remove(ctx context.Context, productID string) error {
	const op = "Wishlist.Remove"

	w.mu.Lock()
	kept := w.items[:0]
	for _, it := range w.items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	w.items = kept
	w.mu.Unlock()

	if err := w.persist(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (w *Wishlist) Clear(ctx context.Context) error {
	const op = "Wishlist.Clear"

	w.mu.Lock()
	w.items = nil
	w.mu.Unlock()

	if err := w.repo.ClearWishlist(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (w *Wishlist) persist(ctx context.Context) error {
	w.mu.Lock()
	items := make([]domain.Product, len(w.items))
	copy(items, w.items)
	w.mu.Unlock()
	return w.repo.SaveWishlist(ctx, items)
}

func (w *Wishlist) sendAddedNotification(ctx context.Context, p domain.Product) {
	const op = "Wishlist.sendAddedNotification"

	cur, ok := w.session.Current()
	if !ok {
		return
	}

	bgCtx := context.WithoutCancel(ctx)
	msg := p.Name + " added to wishlist successfully"
	w.dispatch(func() {
		err := w.notify.Notify(bgCtx, cur.User.UserID, "Wishlist Updated", msg, "WISHLIST")
		if err != nil {
			slog.With("op", op).Warn("wishlist notification failed", "err", err)
		}
		evt := domain.ClientEvent{
			Kind:      domain.EventWishlistItemAdded,
			UserID:    cur.User.UserID,
			ProductID: p.ProductID,
			At:        time.Now(),
		}
		if err := w.events.Produce(bgCtx, evt); err != nil {
			slog.With("op", op).Warn("event dropped", "err", err)
		}
	})
}
