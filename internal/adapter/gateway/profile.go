package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/revcart/storefront/internal/core/domain"
	"github.com/revcart/storefront/internal/core/port"
)

var _ port.AddressGateway = (*ProfileAPI)(nil)
var _ port.NotificationGateway = (*ProfileAPI)(nil)

type ProfileAPI struct {
	cl *Client
}

func NewProfileAPI(cl *Client) ProfileAPI {
	return ProfileAPI{cl}
}

func (a ProfileAPI) Addresses(ctx context.Context) ([]domain.Address, error) {
	const op = "ProfileAPI.Addresses"

	var dtos []AddressDTO
	err := a.cl.doJSON(ctx, http.MethodGet, "/profile/addresses", nil, nil, &dtos)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	addrs := make([]domain.Address, 0, len(dtos))
	for _, d := range dtos {
		addrs = append(addrs, d.toDomain())
	}
	return addrs, nil
}

func (a ProfileAPI) CreateAddress(ctx context.Context, addr domain.Address) (domain.Address, error) {
	const op = "ProfileAPI.CreateAddress"

	var created AddressDTO
	err := a.cl.doJSON(ctx, http.MethodPost, "/profile/addresses", nil, addressToDTO(addr), &created)
	if err != nil {
		return domain.Address{}, fmt.Errorf("%s: %w", op, err)
	}
	if created.ID == 0 {
		return domain.Address{}, fmt.Errorf("%s: backend returned no address id", op)
	}
	return created.toDomain(), nil
}

func (a ProfileAPI) Notify(ctx context.Context, userID, title, message, kind string) error {
	const op = "ProfileAPI.Notify"

	id, ok := idFromString(userID)
	if !ok {
		return fmt.Errorf("%s: invalid user id %q", op, userID)
	}

	body := map[string]any{
		"userId":  id,
		"title":   title,
		"message": message,
		"type":    kind,
	}
	err := a.cl.doJSON(ctx, http.MethodPost, "/notifications", nil, body, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
