package domain_test

import (
	"testing"

	"github.com/revcart/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatusFromBackend(t *testing.T) {
	tests := []struct {
		backend string
		want    domain.OrderStatus
	}{
		{"PENDING", domain.OrderProcessing},
		{"PROCESSING", domain.OrderProcessing},
		{"CONFIRMED", domain.OrderProcessing},
		{"PACKED", domain.OrderPacked},
		{"OUT_FOR_DELIVERY", domain.OrderInTransit},
		{"SHIPPED", domain.OrderInTransit},
		{"DELIVERED", domain.OrderDelivered},
		{"COMPLETED", domain.OrderDelivered},
		{"CANCELLED", domain.OrderCancelled},
		{"SOMETHING_NEW", domain.OrderProcessing},
		{"", domain.OrderProcessing},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, domain.OrderStatusFromBackend(tc.backend), tc.backend)
	}
}

func TestNextBackendStatus(t *testing.T) {
	next, ok := domain.NextBackendStatus(domain.OrderProcessing)
	assert.True(t, ok)
	assert.Equal(t, "PACKED", next)

	next, ok = domain.NextBackendStatus(domain.OrderPacked)
	assert.True(t, ok)
	assert.Equal(t, "OUT_FOR_DELIVERY", next)

	next, ok = domain.NextBackendStatus(domain.OrderInTransit)
	assert.True(t, ok)
	assert.Equal(t, "DELIVERED", next)

	_, ok = domain.NextBackendStatus("unknown")
	assert.False(t, ok)
}

func TestRoleFromBackend(t *testing.T) {
	tests := []struct {
		backend string
		want    domain.Role
	}{
		{"CUSTOMER", domain.RoleCustomer},
		{"USER", domain.RoleCustomer},
		{"ADMIN", domain.RoleAdmin},
		{"admin", domain.RoleAdmin},
		{"DELIVERY_AGENT", domain.RoleDeliveryAgent},
		{"delivery_agent", domain.RoleDeliveryAgent},
		{"SUPPORT", domain.RoleCustomer},
		{"", domain.RoleCustomer},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, domain.RoleFromBackend(tc.backend), tc.backend)
	}
}

func TestSessionValid(t *testing.T) {
	assert.False(t, domain.Session{}.Valid())
	assert.False(t, domain.Session{Token: "tok"}.Valid())
	assert.True(t, domain.Session{
		User:  domain.User{UserID: "u1"},
		Token: "tok",
	}.Valid())
}

func TestCartHelpers(t *testing.T) {
	items := []domain.CartItem{
		{ProductID: "p1", Price: 10, Quantity: 2},
		{ProductID: "p2", Price: 3.5, Quantity: 4},
	}
	assert.InDelta(t, 34.0, domain.CartTotal(items), 0.001)
	assert.Equal(t, 6, domain.CartItemCount(items))
	assert.Zero(t, domain.CartTotal(nil))
	assert.Zero(t, domain.CartItemCount(nil))
}

func TestCartItemFromProduct(t *testing.T) {
	p := domain.Product{
		ProductID:         "p1",
		Name:              "Tomatoes",
		Price:             2.5,
		Image:             "tomatoes.png",
		Unit:              "kg",
		AvailableQuantity: 8,
	}
	it := domain.CartItemFromProduct(p, 3)
	assert.Equal(t, "p1", it.ProductID)
	assert.Equal(t, "Tomatoes", it.Name)
	assert.Equal(t, 3, it.Quantity)
	assert.Equal(t, "kg", it.Unit)
	assert.Equal(t, 8, it.AvailableQuantity)
}

func TestAddress(t *testing.T) {
	t.Run("RequiredFields", func(t *testing.T) {
		full := domain.Address{
			Line1: "12 Main St", City: "Pune", State: "MH", PostalCode: "411001",
		}
		assert.True(t, full.RequiredFieldsFilled())

		missing := full
		missing.PostalCode = "   "
		assert.False(t, missing.RequiredFieldsFilled())
		assert.False(t, domain.Address{}.RequiredFieldsFilled())
	})

	t.Run("DisplayString", func(t *testing.T) {
		full := domain.Address{
			Line1: "12 Main St", City: "Pune", State: "MH", PostalCode: "411001",
		}
		assert.Equal(t, "12 Main St, Pune, MH 411001", full.DisplayString())
		assert.Equal(t, "-", domain.Address{}.DisplayString())
	})
}
