package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/revcart/storefront/internal/core/domain"
	"github.com/revcart/storefront/internal/core/port"
)

var _ port.CatalogGateway = (*CatalogAPI)(nil)

type CatalogAPI struct {
	cl *Client
}

func NewCatalogAPI(cl *Client) CatalogAPI {
	return CatalogAPI{cl}
}

// Products lists the catalog. The backend only understands the keyword
// parameter; category, price bounds and the search refinement are applied
// client-side on the mapped list.
func (a CatalogAPI) Products(
	ctx context.Context, filter domain.ProductFilter,
) ([]domain.Product, error) {
	const op = "CatalogAPI.Products"

	q := url.Values{"page": {"0"}, "size": {"100"}}
	if filter.Search != "" {
		q.Set("keyword", filter.Search)
	}

	var dtos []ProductDTO
	err := a.cl.doJSON(ctx, http.MethodGet, "/products", q, nil, &dtos)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	products := make([]domain.Product, 0, len(dtos))
	for _, d := range dtos {
		p := d.toDomain()
		if !matchesFilter(p, filter) {
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

func matchesFilter(p domain.Product, f domain.ProductFilter) bool {
	if f.CategoryID != "" && p.CategoryID != f.CategoryID {
		return false
	}
	if f.HasMin && p.Price < f.MinPrice {
		return false
	}
	if f.HasMax && p.Price > f.MaxPrice {
		return false
	}
	if f.Search != "" {
		s := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), s) &&
			!strings.Contains(strings.ToLower(p.Description), s) {
			return false
		}
	}
	return true
}

func (a CatalogAPI) Categories(ctx context.Context) ([]domain.Category, error) {
	const op = "CatalogAPI.Categories"

	var dtos []CategoryDTO
	err := a.cl.doJSON(ctx, http.MethodGet, "/categories", nil, nil, &dtos)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cats := make([]domain.Category, 0, len(dtos))
	for _, d := range dtos {
		cats = append(cats, d.toDomain())
	}
	return cats, nil
}
