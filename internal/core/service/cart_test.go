package service_test

import (
	"errors"
	"testing"

	"github.com/revcart/storefront/internal/core/domain"
	"github.com/revcart/storefront/internal/core/port"
	"github.com/revcart/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testProduct(id string, price float64) domain.Product {
	return domain.Product{
		ProductID:         id,
		Name:              "product-" + id,
		Price:             price,
		Unit:              "kg",
		InStock:           true,
		AvailableQuantity: 10,
	}
}

func newTestCart(t *testing.T, gw *MockCartGateway) (*service.Cart, *memCartRepo, *eventsRecorder) {
	t.Helper()
	repo := &memCartRepo{}
	events := &eventsRecorder{}
	cart := service.NewCart(
		t.Context(), repo, gw, events, loggedIn("u1"),
		service.SyncDispatchOpt(syncDispatch),
	)
	return cart, repo, events
}

func TestCart(t *testing.T) {
	t.Run("AddIncrementsExistingLine", func(t *testing.T) {
		gw := new(MockCartGateway)
		gw.On("PushItem", mock.Anything, "p1", mock.Anything).Return(nil)
		cart, repo, events := newTestCart(t, gw)

		require.NoError(t, cart.Add(t.Context(), testProduct("p1", 10), 2))
		require.NoError(t, cart.Add(t.Context(), testProduct("p1", 10), 3))

		items := cart.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 5, items[0].Quantity)
		assert.Equal(t, 5, cart.ItemCount())
		assert.InDelta(t, 50.0, cart.Total(), 0.001)
		assert.Equal(t, 2, repo.saves)
		assert.Equal(t, []domain.ClientEventKind{
			domain.EventCartItemAdded, domain.EventCartItemAdded,
		}, events.kinds())
	})

	t.Run("AddClampsQuantityToOne", func(t *testing.T) {
		gw := new(MockCartGateway)
		gw.On("PushItem", mock.Anything, "p1", 1).Return(nil)
		cart, _, _ := newTestCart(t, gw)

		require.NoError(t, cart.Add(t.Context(), testProduct("p1", 10), 0))
		assert.Equal(t, 1, cart.ItemCount())
		gw.AssertExpectations(t)
	})

	t.Run("NonPositiveQuantityRemovesLine", func(t *testing.T) {
		for _, qty := range []int{0, -1} {
			gw := new(MockCartGateway)
			gw.On("PushItem", mock.Anything, "p1", 1).Return(nil)
			gw.On("RemoveItem", mock.Anything, "p1").Return(nil)
			cart, _, events := newTestCart(t, gw)

			require.NoError(t, cart.Add(t.Context(), testProduct("p1", 10), 1))
			require.NoError(t, cart.UpdateQuantity(t.Context(), "p1", qty))

			assert.Empty(t, cart.Items())
			gw.AssertCalled(t, "RemoveItem", mock.Anything, "p1")
			gw.AssertNotCalled(t, "SetItemQuantity", mock.Anything, "p1", mock.Anything)
			assert.Contains(t, events.kinds(), domain.EventCartItemRemoved)
		}
	})

	t.Run("UpdateQuantitySetsAbsoluteValue", func(t *testing.T) {
		gw := new(MockCartGateway)
		gw.On("PushItem", mock.Anything, "p1", 5).Return(nil)
		gw.On("SetItemQuantity", mock.Anything, "p1", 2).Return(nil)
		cart, _, _ := newTestCart(t, gw)

		require.NoError(t, cart.Add(t.Context(), testProduct("p1", 10), 5))
		require.NoError(t, cart.UpdateQuantity(t.Context(), "p1", 2))

		items := cart.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Quantity)
		gw.AssertExpectations(t)
	})

	t.Run("SyncFailureKeepsLocalChange", func(t *testing.T) {
		gw := new(MockCartGateway)
		gw.On("PushItem", mock.Anything, "p1", 1).
			Return(&port.GatewayError{Status: 500, Message: "boom"})
		cart, repo, _ := newTestCart(t, gw)

		require.NoError(t, cart.Add(t.Context(), testProduct("p1", 10), 1))
		assert.Equal(t, 1, cart.ItemCount())
		assert.Len(t, repo.items, 1)
	})

	t.Run("ClearTouchesOnlyLocalState", func(t *testing.T) {
		gw := new(MockCartGateway)
		gw.On("PushItem", mock.Anything, "p1", 1).Return(nil)
		cart, repo, _ := newTestCart(t, gw)

		require.NoError(t, cart.Add(t.Context(), testProduct("p1", 10), 1))
		require.NoError(t, cart.Clear(t.Context()))

		assert.Empty(t, cart.Items())
		assert.Empty(t, repo.items)
		gw.AssertNotCalled(t, "Clear", mock.Anything)
	})

	t.Run("UnreadableStoreStartsEmpty", func(t *testing.T) {
		repo := &memCartRepo{loadErr: errors.New("corrupt blob")}
		cart := service.NewCart(
			t.Context(), repo, new(MockCartGateway), &eventsRecorder{}, loggedIn("u1"),
			service.SyncDispatchOpt(syncDispatch),
		)
		assert.Empty(t, cart.Items())
	})

	t.Run("UpdateStockRefreshesHeldLines", func(t *testing.T) {
		gw := new(MockCartGateway)
		gw.On("PushItem", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		cart, _, _ := newTestCart(t, gw)

		require.NoError(t, cart.Add(t.Context(), testProduct("p1", 10), 1))
		require.NoError(t, cart.UpdateStock(t.Context(), map[string]int{"p1": 3, "p9": 7}))

		items := cart.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 3, items[0].AvailableQuantity)
	})
}

func TestCartLoadRemote(t *testing.T) {
	t.Run("WithoutSessionIsNoop", func(t *testing.T) {
		gw := new(MockCartGateway)
		cart := service.NewCart(
			t.Context(), &memCartRepo{}, gw, &eventsRecorder{}, &stubSession{},
			service.SyncDispatchOpt(syncDispatch),
		)
		require.NoError(t, cart.LoadRemote(t.Context()))
		gw.AssertNotCalled(t, "Fetch", mock.Anything)
	})

	t.Run("NoRemoteCartYet", func(t *testing.T) {
		for _, status := range []int{400, 401} {
			gw := new(MockCartGateway)
			gw.On("Fetch", mock.Anything).
				Return(nil, &port.GatewayError{Status: status})
			cart, _, _ := newTestCart(t, gw)

			require.NoError(t, cart.LoadRemote(t.Context()))
			assert.Empty(t, cart.Items())
		}
	})

	t.Run("ReplacesLocalLines", func(t *testing.T) {
		remote := []domain.CartItem{
			{ProductID: "p2", Name: "remote", Price: 3, Quantity: 4},
		}
		gw := new(MockCartGateway)
		gw.On("PushItem", mock.Anything, "p1", 1).Return(nil)
		gw.On("Fetch", mock.Anything).Return(remote, nil)
		cart, repo, _ := newTestCart(t, gw)

		require.NoError(t, cart.Add(t.Context(), testProduct("p1", 10), 1))
		require.NoError(t, cart.LoadRemote(t.Context()))

		assert.Equal(t, remote, cart.Items())
		assert.Equal(t, remote, repo.items)
	})

	t.Run("ServerErrorSurfaces", func(t *testing.T) {
		gw := new(MockCartGateway)
		gw.On("Fetch", mock.Anything).
			Return(nil, &port.GatewayError{Status: 500, Message: "boom"})
		cart, _, _ := newTestCart(t, gw)

		err := cart.LoadRemote(t.Context())
		require.Error(t, err)
		assert.True(t, port.HasStatus(err, 500))
	})
}
