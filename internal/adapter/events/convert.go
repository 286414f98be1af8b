package events

import (
	"github.com/revcart/storefront/internal/core/domain"
	"github.com/revcart/storefront/pkg/schema"
)

func toSchemaV1(evt domain.ClientEvent) schema.ClientEventV1 {
	return schema.ClientEventV1{
		Kind:      string(evt.Kind),
		UserID:    evt.UserID,
		ProductID: evt.ProductID,
		Quantity:  int64(evt.Quantity),
		Amount:    evt.Amount,
		AtUnixMs:  evt.At.UnixMilli(),
	}
}
