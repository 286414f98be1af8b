package domain

import "time"

// ClientEventKind names a client activity worth reporting.
type ClientEventKind string

const (
	EventProductViewed     ClientEventKind = "product_viewed"
	EventCartItemAdded     ClientEventKind = "cart_item_added"
	EventCartItemRemoved   ClientEventKind = "cart_item_removed"
	EventWishlistItemAdded ClientEventKind = "wishlist_item_added"
	EventCheckoutCompleted ClientEventKind = "checkout_completed"
)

// ClientEvent is a single fire-and-forget activity record.
type ClientEvent struct {
	Kind      ClientEventKind
	UserID    string
	ProductID string
	Quantity  int
	Amount    float64
	At        time.Time
}
