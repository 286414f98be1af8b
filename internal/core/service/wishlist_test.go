package service_test

import (
	"errors"
	"testing"

	"github.com/revcart/storefront/internal/core/domain"
	"github.com/revcart/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestWishlist(
	t *testing.T, notify *MockNotificationGateway,
) (*service.Wishlist, *memWishlistRepo, *eventsRecorder) {
	t.Helper()
	repo := &memWishlistRepo{}
	events := &eventsRecorder{}
	w := service.NewWishlist(
		t.Context(), repo, notify, events, loggedIn("u1"),
		service.WishlistDispatchOpt(syncDispatch),
	)
	return w, repo, events
}

func TestWishlist(t *testing.T) {
	t.Run("AddNotifiesAndPersists", func(t *testing.T) {
		notify := new(MockNotificationGateway)
		notify.On(
			"Notify", mock.Anything, "u1", "Wishlist Updated",
			"product-p1 added to wishlist successfully", "WISHLIST",
		).Return(nil)
		w, repo, events := newTestWishlist(t, notify)

		require.NoError(t, w.Add(t.Context(), testProduct("p1", 10)))

		assert.True(t, w.Contains("p1"))
		assert.Equal(t, 1, w.ItemCount())
		assert.Len(t, repo.items, 1)
		assert.Equal(t, []domain.ClientEventKind{domain.EventWishlistItemAdded}, events.kinds())
		notify.AssertExpectations(t)
	})

	t.Run("DuplicateAddIsIgnored", func(t *testing.T) {
		notify := new(MockNotificationGateway)
		notify.On("Notify", mock.Anything, mock.Anything, mock.Anything,
			mock.Anything, mock.Anything).Return(nil)
		w, _, _ := newTestWishlist(t, notify)

		require.NoError(t, w.Add(t.Context(), testProduct("p1", 10)))
		require.NoError(t, w.Add(t.Context(), testProduct("p1", 10)))

		assert.Equal(t, 1, w.ItemCount())
		notify.AssertNumberOfCalls(t, "Notify", 1)
	})

	t.Run("NotificationFailureDoesNotBlockAdd", func(t *testing.T) {
		notify := new(MockNotificationGateway)
		notify.On("Notify", mock.Anything, mock.Anything, mock.Anything,
			mock.Anything, mock.Anything).Return(assert.AnError)
		w, _, _ := newTestWishlist(t, notify)

		require.NoError(t, w.Add(t.Context(), testProduct("p1", 10)))
		assert.True(t, w.Contains("p1"))
	})

	t.Run("AnonymousAddSkipsNotification", func(t *testing.T) {
		notify := new(MockNotificationGateway)
		w := service.NewWishlist(
			t.Context(), &memWishlistRepo{}, notify, &eventsRecorder{}, &stubSession{},
			service.WishlistDispatchOpt(syncDispatch),
		)

		require.NoError(t, w.Add(t.Context(), testProduct("p1", 10)))
		assert.True(t, w.Contains("p1"))
		notify.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything,
			mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("RemoveAndClear", func(t *testing.T) {
		notify := new(MockNotificationGateway)
		notify.On("Notify", mock.Anything, mock.Anything, mock.Anything,
			mock.Anything, mock.Anything).Return(nil)
		w, repo, _ := newTestWishlist(t, notify)

		require.NoError(t, w.Add(t.Context(), testProduct("p1", 10)))
		require.NoError(t, w.Add(t.Context(), testProduct("p2", 20)))

		require.NoError(t, w.Remove(t.Context(), "p1"))
		assert.False(t, w.Contains("p1"))
		assert.True(t, w.Contains("p2"))

		require.NoError(t, w.Clear(t.Context()))
		assert.Zero(t, w.ItemCount())
		assert.True(t, repo.cleared)
	})

	t.Run("UnreadableStoreStartsEmpty", func(t *testing.T) {
		repo := &memWishlistRepo{loadErr: errors.New("corrupt blob")}
		w := service.NewWishlist(
			t.Context(), repo, new(MockNotificationGateway), &eventsRecorder{},
			loggedIn("u1"), service.WishlistDispatchOpt(syncDispatch),
		)
		assert.Zero(t, w.ItemCount())
	})
}
