package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/revcart/storefront/internal/core/domain"
	"github.com/revcart/storefront/internal/core/port"
)

var _ port.CartGateway = (*CartAPI)(nil)

type CartAPI struct {
	cl *Client
}

func NewCartAPI(cl *Client) CartAPI {
	return CartAPI{cl}
}

// PushItem creates or increments a backend cart line.
func (a CartAPI) PushItem(ctx context.Context, productID string, qty int) error {
	const op = "CartAPI.PushItem"

	id, ok := idFromString(productID)
	if !ok {
		return fmt.Errorf("%s: invalid product id %q", op, productID)
	}

	body := map[string]any{"productId": id, "quantity": qty}
	err := a.cl.doJSON(ctx, http.MethodPost, "/cart/items", nil, body, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SetItemQuantity overwrites a backend cart line with an absolute quantity.
func (a CartAPI) SetItemQuantity(ctx context.Context, productID string, qty int) error {
	const op = "CartAPI.SetItemQuantity"

	id, ok := idFromString(productID)
	if !ok {
		return fmt.Errorf("%s: invalid product id %q", op, productID)
	}

	q := url.Values{"quantity": {strconv.Itoa(qty)}}
	path := fmt.Sprintf("/cart/items/%d", id)
	err := a.cl.doJSON(ctx, http.MethodPut, path, q, nil, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (a CartAPI) RemoveItem(ctx context.Context, productID string) error {
	const op = "CartAPI.RemoveItem"

	id, ok := idFromString(productID)
	if !ok {
		return fmt.Errorf("%s: invalid product id %q", op, productID)
	}

	path := fmt.Sprintf("/cart/items/%d", id)
	err := a.cl.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (a CartAPI) Fetch(ctx context.Context) ([]domain.CartItem, error) {
	const op = "CartAPI.Fetch"

	var dto CartDTO
	err := a.cl.doJSON(ctx, http.MethodGet, "/cart", nil, nil, &dto)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items := make([]domain.CartItem, 0, len(dto.Items))
	for _, it := range dto.Items {
		items = append(items, it.toDomain())
	}
	return items, nil
}

func (a CartAPI) Clear(ctx context.Context) error {
	const op = "CartAPI.Clear"

	err := a.cl.doJSON(ctx, http.MethodDelete, "/cart/clear", nil, nil, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ReplaceAll rebuilds the backend cart from the given lines: clear, then one
// create per line, sequentially. A failed clear and failed single lines are
// tolerated so a flaky backend cannot block checkout; lines without a numeric
// product id are skipped.
func (a CartAPI) ReplaceAll(ctx context.Context, items []domain.CartItem) error {
	const op = "CartAPI.ReplaceAll"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := a.Clear(ctx); err != nil {
		log.Warn("cart clear before replace failed", "err", err)
	}

	for _, it := range items {
		id, ok := idFromString(it.ProductID)
		if !ok {
			log.Warn("skipping cart line with invalid product id", "productID", it.ProductID)
			continue
		}

		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		body := map[string]any{"productId": id, "quantity": qty}
		err := a.cl.doJSON(ctx, http.MethodPost, "/cart", nil, body, nil)
		if err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("%s: %w", op, ctx.Err())
			}
			log.Warn("cart line push failed", "productID", it.ProductID, "err", err)
		}
	}
	return nil
}
