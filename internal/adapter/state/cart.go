package state

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/revcart/storefront/internal/core/domain"
	"github.com/revcart/storefront/internal/core/port"
)

const cartKey = "storefront_cart"

var _ port.CartRepository = (*CartRepository)(nil)

type cartItemRecord struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	Quantity          int     `json:"quantity"`
	Image             string  `json:"image"`
	Unit              string  `json:"unit"`
	AvailableQuantity int     `json:"availableQuantity"`
}

type CartRepository struct {
	db kvdb
}

func NewCartRepository(db kvdb) CartRepository {
	return CartRepository{db}
}

// LoadCart reads the persisted item set. A blob that no longer parses is
// deleted and reported as ErrCorruptState; the next load starts empty.
func (r CartRepository) LoadCart(ctx context.Context) ([]domain.CartItem, error) {
	const op = "CartRepository.LoadCart"

	raw, ok, err := getValue(ctx, r.db, cartKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return nil, nil
	}

	var recs []cartItemRecord
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		if delErr := deleteValue(ctx, r.db, cartKey); delErr != nil {
			slog.With("op", op).Error("failed to discard corrupt cart", "err", delErr)
		}
		return nil, fmt.Errorf("%s: %w: %w", op, ErrCorruptState, err)
	}

	items := make([]domain.CartItem, 0, len(recs))
	for _, rec := range recs {
		items = append(items, domain.CartItem{
			ProductID:         rec.ID,
			Name:              rec.Name,
			Price:             rec.Price,
			Quantity:          rec.Quantity,
			Image:             rec.Image,
			Unit:              rec.Unit,
			AvailableQuantity: rec.AvailableQuantity,
		})
	}
	return items, nil
}

func (r CartRepository) SaveCart(ctx context.Context, items []domain.CartItem) error {
	const op = "CartRepository.SaveCart"

	recs := make([]cartItemRecord, 0, len(items))
	for _, it := range items {
		recs = append(recs, cartItemRecord{
			ID:                it.ProductID,
			Name:              it.Name,
			Price:             it.Price,
			Quantity:          it.Quantity,
			Image:             it.Image,
			Unit:              it.Unit,
			AvailableQuantity: it.AvailableQuantity,
		})
	}

	b, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := setValue(ctx, r.db, cartKey, string(b)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
