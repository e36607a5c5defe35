package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/selfcheckout/lib/mynotify"
	"github.com/MarcGrol/selfcheckout/lib/mytime"
	"github.com/MarcGrol/selfcheckout/services/backendclient"
	"github.com/MarcGrol/selfcheckout/services/shopmodel"
)

var (
	indomie  = &shopmodel.Product{ID: "p-1", Barcode: "8991234567890", Name: "Indomie", Price: 10000}
	cart1    = &shopmodel.Cart{ID: "cart-1", SessionID: "sess-1", Status: "active"}
	lines    = []shopmodel.CartLine{{ID: "line-1", ProductName: "Indomie", Price: 10000, Quantity: 2, Subtotal: 20000}, {ID: "line-2", ProductName: "Teh Botol", Price: 15000, Quantity: 1, Subtotal: 15000}}
	cartView = shopmodel.CartView{Cart: cart1, Lines: lines}
)

type testContext struct {
	c        context.Context
	sut      *Engine
	carts    *backendclient.MockCartAPI
	products *backendclient.MockProductAPI
	sessions *MockSessionManager
	cache    *MemoryViewCache
	feed     *mynotify.Feed
}

func TestAddItem(t *testing.T) {

	t.Run("Unknown barcode never reaches the cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(ctrl)

		// given
		tc.products.EXPECT().SearchByBarcode(gomock.Any(), "899900112233").Return(nil, nil)

		// when
		added := tc.sut.AddItem(tc.c, "899900112233", 1)

		// then
		assert.False(t, added)
		assertLastNotification(t, tc.feed, mynotify.KindError, "Product not found", "Barcode: 899900112233")
	})

	t.Run("Lookup failure never reaches the cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(ctrl)

		// given
		tc.products.EXPECT().SearchByBarcode(gomock.Any(), "8991234567890").Return(nil, &backendclient.RemoteError{Message: "Network error"})

		// when
		added := tc.sut.AddItem(tc.c, "8991234567890", 1)

		// then
		assert.False(t, added)
		assertLastNotification(t, tc.feed, mynotify.KindError, "Failed to add product", "Network error")
	})

	t.Run("Known barcode is added and view invalidated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(ctrl)

		// given
		tc.cache.Set(tc.c, "sess-1", cartView, time.Minute)
		gomock.InOrder(
			tc.products.EXPECT().SearchByBarcode(gomock.Any(), "8991234567890").Return(indomie, nil),
			tc.sessions.EXPECT().EnsureSession(gomock.Any()).Return("sess-1", nil),
			tc.carts.EXPECT().AddLine(gomock.Any(), "8991234567890", 2).Return(&lines[0], nil),
		)

		// when
		added := tc.sut.AddItem(tc.c, "8991234567890", 2)

		// then
		assert.True(t, added)
		assertLastNotification(t, tc.feed, mynotify.KindSuccess, "Indomie added", "Quantity: 2")
		_, found, _ := tc.cache.Get(tc.c, "sess-1")
		assert.False(t, found)
	})

	t.Run("Failed mutation keeps cached view", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(ctrl)

		// given
		tc.cache.Set(tc.c, "sess-1", cartView, time.Minute)
		tc.products.EXPECT().SearchByBarcode(gomock.Any(), "8991234567890").Return(indomie, nil)
		tc.sessions.EXPECT().EnsureSession(gomock.Any()).Return("sess-1", nil)
		tc.carts.EXPECT().AddLine(gomock.Any(), "8991234567890", 1).Return(nil, &backendclient.RemoteError{StatusCode: 409, Message: "Out of stock"})

		// when
		added := tc.sut.AddItem(tc.c, "8991234567890", 1)

		// then
		assert.False(t, added)
		assertLastNotification(t, tc.feed, mynotify.KindError, "Failed to add product", "Out of stock")
		view, found, _ := tc.cache.Get(tc.c, "sess-1")
		assert.True(t, found)
		assert.Equal(t, cartView, view)
	})
}

func TestUpdateQuantity(t *testing.T) {

	for _, quantity := range []int{0, -1} {
		t.Run("Non positive quantity removes line", func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// setup
			tc := setup(ctrl)

			// given
			tc.sessions.EXPECT().Current(gomock.Any()).Return("sess-1", true, nil)
			tc.sessions.EXPECT().EnsureSession(gomock.Any()).Return("sess-1", nil)
			tc.carts.EXPECT().DeleteLine(gomock.Any(), "line-1").Return(nil)

			// when
			updated := tc.sut.UpdateQuantity(tc.c, "line-1", quantity)

			// then
			assert.True(t, updated)
		})
	}

	t.Run("Positive quantity updates line", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(ctrl)

		// given
		tc.cache.Set(tc.c, "sess-1", cartView, time.Minute)
		tc.sessions.EXPECT().EnsureSession(gomock.Any()).Return("sess-1", nil)
		tc.carts.EXPECT().UpdateLine(gomock.Any(), "line-1", 3).Return(&lines[0], nil)

		// when
		updated := tc.sut.UpdateQuantity(tc.c, "line-1", 3)

		// then
		assert.True(t, updated)
		_, found, _ := tc.cache.Get(tc.c, "sess-1")
		assert.False(t, found)
	})

	t.Run("Failed update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(ctrl)

		// given
		tc.sessions.EXPECT().EnsureSession(gomock.Any()).Return("sess-1", nil)
		tc.carts.EXPECT().UpdateLine(gomock.Any(), "line-1", 3).Return(nil, &backendclient.RemoteError{StatusCode: 500, Message: "Request failed with status 500"})

		// when
		updated := tc.sut.UpdateQuantity(tc.c, "line-1", 3)

		// then
		assert.False(t, updated)
		assertLastNotification(t, tc.feed, mynotify.KindError, "Failed to update quantity", "Request failed with status 500")
	})
}

func TestRemoveItem(t *testing.T) {

	t.Run("Name is taken from view before invalidation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(ctrl)

		// given
		tc.cache.Set(tc.c, "sess-1", cartView, time.Minute)
		tc.sessions.EXPECT().Current(gomock.Any()).Return("sess-1", true, nil)
		tc.sessions.EXPECT().EnsureSession(gomock.Any()).Return("sess-1", nil)
		tc.carts.EXPECT().DeleteLine(gomock.Any(), "line-2").Return(nil)

		// when
		removed := tc.sut.RemoveItem(tc.c, "line-2")

		// then
		assert.True(t, removed)
		assertLastNotification(t, tc.feed, mynotify.KindInfo, "Teh Botol removed from cart", "")
		_, found, _ := tc.cache.Get(tc.c, "sess-1")
		assert.False(t, found)
	})

	t.Run("Unknown line removes silently", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(ctrl)

		// given
		tc.sessions.EXPECT().Current(gomock.Any()).Return("sess-1", true, nil)
		tc.sessions.EXPECT().EnsureSession(gomock.Any()).Return("sess-1", nil)
		tc.carts.EXPECT().DeleteLine(gomock.Any(), "line-9").Return(nil)

		// when
		removed := tc.sut.RemoveItem(tc.c, "line-9")

		// then
		assert.True(t, removed)
		_, found := tc.feed.Last()
		assert.False(t, found)
	})

	t.Run("Failed removal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(ctrl)

		// given
		tc.sessions.EXPECT().Current(gomock.Any()).Return("sess-1", true, nil)
		tc.sessions.EXPECT().EnsureSession(gomock.Any()).Return("sess-1", nil)
		tc.carts.EXPECT().DeleteLine(gomock.Any(), "line-1").Return(&backendclient.RemoteError{Message: "Network error"})

		// when
		removed := tc.sut.RemoveItem(tc.c, "line-1")

		// then
		assert.False(t, removed)
		assertLastNotification(t, tc.feed, mynotify.KindError, "Failed to remove product", "Network error")
	})
}

func TestView(t *testing.T) {

	t.Run("Loads cart and lines once while fresh", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(ctrl)

		// given
		tc.sessions.EXPECT().EnsureSession(gomock.Any()).Return("sess-1", nil).Times(2)
		tc.carts.EXPECT().GetCurrentCart(gomock.Any()).Return(cart1, nil).Times(1)
		tc.carts.EXPECT().GetCartLines(gomock.Any()).Return(lines, nil).Times(1)

		// when
		first, err1 := tc.sut.View(tc.c)
		second, err2 := tc.sut.View(tc.c)

		// then
		assert.NoError(t, err1)
		assert.NoError(t, err2)
		assert.Equal(t, cartView, first)
		assert.Equal(t, first, second)
		assert.Equal(t, int64(35000), first.Total())
		assert.Equal(t, 3, first.ItemCount())
	})

	t.Run("Load failure is not cached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(ctrl)

		// given
		tc.sessions.EXPECT().EnsureSession(gomock.Any()).Return("sess-1", nil)
		tc.carts.EXPECT().GetCurrentCart(gomock.Any()).Return(cart1, nil)
		tc.carts.EXPECT().GetCartLines(gomock.Any()).Return(nil, &backendclient.RemoteError{Message: "Network error"})

		// when
		_, err := tc.sut.View(tc.c)

		// then
		assert.Error(t, err)
		_, found, _ := tc.cache.Get(tc.c, "sess-1")
		assert.False(t, found)
	})

	t.Run("Session failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(ctrl)
		sessionErr := errors.New("failed to create cart session")

		// given
		tc.sessions.EXPECT().EnsureSession(gomock.Any()).Return("", sessionErr)

		// when
		_, err := tc.sut.View(tc.c)

		// then
		assert.ErrorIs(t, err, sessionErr)
	})
}

func TestClearCart(t *testing.T) {

	t.Run("Deletes all lines and drops the session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(ctrl)

		// given
		tc.cache.Set(tc.c, "sess-1", cartView, time.Minute)
		gomock.InOrder(
			tc.sessions.EXPECT().Current(gomock.Any()).Return("sess-1", true, nil),
			tc.sessions.EXPECT().EnsureSession(gomock.Any()).Return("sess-1", nil),
			tc.carts.EXPECT().DeleteAllLines(gomock.Any(), "cart-1").Return(nil),
			tc.sessions.EXPECT().Clear(gomock.Any()).Return(nil),
		)

		// when
		cleared := tc.sut.ClearCart(tc.c)

		// then
		assert.True(t, cleared)
		assertLastNotification(t, tc.feed, mynotify.KindInfo, "Cart emptied", "")
		_, found, _ := tc.cache.Get(tc.c, "sess-1")
		assert.False(t, found)
	})

	t.Run("Session required without session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(ctrl)

		// given
		tc.sessions.EXPECT().Current(gomock.Any()).Return("", false, nil)

		// when
		cleared := tc.sut.ClearCart(tc.c)

		// then
		assert.False(t, cleared)
		assertLastNotification(t, tc.feed, mynotify.KindError, "Failed to empty the cart", "session not found")
	})

	t.Run("Failed delete keeps the session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(ctrl)

		// given
		tc.cache.Set(tc.c, "sess-1", cartView, time.Minute)
		tc.sessions.EXPECT().Current(gomock.Any()).Return("sess-1", true, nil)
		tc.sessions.EXPECT().EnsureSession(gomock.Any()).Return("sess-1", nil)
		tc.carts.EXPECT().DeleteAllLines(gomock.Any(), "cart-1").Return(&backendclient.RemoteError{Message: "Network error"})

		// when
		cleared := tc.sut.ClearCart(tc.c)

		// then
		assert.False(t, cleared)
		assertLastNotification(t, tc.feed, mynotify.KindError, "Failed to empty the cart", "Network error")
	})
}

func TestStartNewCart(t *testing.T) {

	t.Run("Replaces session with fresh cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(ctrl)

		// given
		tc.cache.Set(tc.c, "sess-1", cartView, time.Minute)
		gomock.InOrder(
			tc.sessions.EXPECT().Current(gomock.Any()).Return("sess-1", true, nil),
			tc.sessions.EXPECT().Clear(gomock.Any()).Return(nil),
			tc.carts.EXPECT().CreateCart(gomock.Any()).Return(&shopmodel.Cart{ID: "cart-2", SessionID: "sess-2"}, nil),
			tc.sessions.EXPECT().Bind(gomock.Any(), "sess-2").Return(nil),
		)

		// when
		started := tc.sut.StartNewCart(tc.c)

		// then
		assert.True(t, started)
		assertLastNotification(t, tc.feed, mynotify.KindSuccess, "New cart started", "")
		_, found, _ := tc.cache.Get(tc.c, "sess-1")
		assert.False(t, found)
	})

	t.Run("Creation failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(ctrl)

		// given
		tc.sessions.EXPECT().Current(gomock.Any()).Return("sess-1", true, nil)
		tc.sessions.EXPECT().Clear(gomock.Any()).Return(nil)
		tc.carts.EXPECT().CreateCart(gomock.Any()).Return(nil, &backendclient.RemoteError{Message: "Network error"})

		// when
		started := tc.sut.StartNewCart(tc.c)

		// then
		assert.False(t, started)
		assertLastNotification(t, tc.feed, mynotify.KindError, "Failed to start new cart", "Network error")
	})
}

func setup(ctrl *gomock.Controller) testContext {
	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

	tc := testContext{
		c:        context.TODO(),
		carts:    backendclient.NewMockCartAPI(ctrl),
		products: backendclient.NewMockProductAPI(ctrl),
		sessions: NewMockSessionManager(ctrl),
		cache:    NewMemoryViewCache(nower),
		feed:     mynotify.NewFeed(nower),
	}
	tc.sut = NewEngine(tc.carts, tc.products, tc.sessions, tc.cache, tc.feed, 30*time.Second)
	return tc
}

func assertLastNotification(t *testing.T, feed *mynotify.Feed, kind mynotify.Kind, title string, description string) {
	t.Helper()
	last, found := feed.Last()
	assert.True(t, found)
	assert.Equal(t, kind, last.Kind)
	assert.Equal(t, title, last.Title)
	assert.Equal(t, description, last.Description)
}
