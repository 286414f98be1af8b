package state

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/revcart/storefront/internal/core/domain"
	"github.com/revcart/storefront/internal/core/port"
)

const wishlistKey = "storefront_wishlist"

var _ port.WishlistRepository = (*WishlistRepository)(nil)

type wishlistRecord struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	Price             float64 `json:"price"`
	CategoryID        string  `json:"categoryId"`
	CategoryName      string  `json:"categoryName"`
	Image             string  `json:"image"`
	Unit              string  `json:"unit"`
	InStock           bool    `json:"inStock"`
	AvailableQuantity int     `json:"availableQuantity"`
}

type WishlistRepository struct {
	db kvdb
}

func NewWishlistRepository(db kvdb) WishlistRepository {
	return WishlistRepository{db}
}

func (r WishlistRepository) LoadWishlist(ctx context.Context) ([]domain.Product, error) {
	const op = "WishlistRepository.LoadWishlist"

	raw, ok, err := getValue(ctx, r.db, wishlistKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return nil, nil
	}

	var recs []wishlistRecord
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		if delErr := deleteValue(ctx, r.db, wishlistKey); delErr != nil {
			slog.With("op", op).Error("failed to discard corrupt wishlist", "err", delErr)
		}
		return nil, fmt.Errorf("%s: %w: %w", op, ErrCorruptState, err)
	}

	items := make([]domain.Product, 0, len(recs))
	for _, rec := range recs {
		items = append(items, domain.Product{
			ProductID:         rec.ID,
			Name:              rec.Name,
			Description:       rec.Description,
			Price:             rec.Price,
			CategoryID:        rec.CategoryID,
			CategoryName:      rec.CategoryName,
			Image:             rec.Image,
			Unit:              rec.Unit,
			InStock:           rec.InStock,
			AvailableQuantity: rec.AvailableQuantity,
		})
	}
	return items, nil
}

func (r WishlistRepository) SaveWishlist(ctx context.Context, items []domain.Product) error {
	const op = "WishlistRepository.SaveWishlist"

	recs := make([]wishlistRecord, 0, len(items))
	for _, p := range items {
		recs = append(recs, wishlistRecord{
			ID:                p.ProductID,
			Name:              p.Name,
			Description:       p.Description,
			Price:             p.Price,
			CategoryID:        p.CategoryID,
			CategoryName:      p.CategoryName,
			Image:             p.Image,
			Unit:              p.Unit,
			InStock:           p.InStock,
			AvailableQuantity: p.AvailableQuantity,
		})
	}

	b, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := setValue(ctx, r.db, wishlistKey, string(b)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r WishlistRepository) ClearWishlist(ctx context.Context) error {
	const op = "WishlistRepository.ClearWishlist"

	if err := deleteValue(ctx, r.db, wishlistKey); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
