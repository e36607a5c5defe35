package kiosk

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/selfcheckout/lib/myerrors"
	"github.com/MarcGrol/selfcheckout/lib/mynotify"
	"github.com/MarcGrol/selfcheckout/lib/mytime"
	"github.com/MarcGrol/selfcheckout/services/checkout"
	"github.com/MarcGrol/selfcheckout/services/checkoutapi"
	"github.com/MarcGrol/selfcheckout/services/scanner"
	"github.com/MarcGrol/selfcheckout/services/shopmodel"
)

var (
	filledCart = shopmodel.CartView{
		Cart: &shopmodel.Cart{ID: "cart-1", SessionID: "sess-1", Status: "active"},
		Lines: []shopmodel.CartLine{
			{ID: "line-1", ProductName: "Indomie", Price: 10000, Quantity: 2, Subtotal: 20000},
		},
	}
	emptyCart = shopmodel.CartView{Cart: &shopmodel.Cart{ID: "cart-1", SessionID: "sess-1", Status: "active"}}
)

func transaction(status shopmodel.TransactionStatus) *shopmodel.Transaction {
	return &shopmodel.Transaction{OrderID: "order-1", Amount: 20000, Status: status, PaymentType: shopmodel.PaymentTypeQRIS}
}

type testContext struct {
	c         context.Context
	sut       *Kiosk
	cart      *MockCart
	scanner   *MockBarcodeScanner
	payment   *MockPayment
	feed      *mynotify.Feed
	onScan    scanner.ScanFunc
	onSuccess checkout.SuccessFunc
}

func TestScan(t *testing.T) {

	t.Run("Scan adds one item", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(ctrl)

		// given
		tc.cart.EXPECT().AddItem(gomock.Any(), "899900112233", 1).Return(true)

		// when
		tc.onScan(tc.c, "899900112233")
	})

	t.Run("Scan during payment is ignored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(ctrl)

		// given
		opened(t, tc)

		// when
		tc.onScan(tc.c, "899900112233")

		// then no AddItem
	})
}

func TestOpenPayment(t *testing.T) {

	t.Run("Empty cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(ctrl)

		// given
		tc.cart.EXPECT().View(gomock.Any()).Return(emptyCart, nil)

		// when
		err := tc.sut.OpenPayment(tc.c)

		// then
		assert.ErrorIs(t, err, checkoutapi.ErrEmptyCart)
		assert.Equal(t, http.StatusBadRequest, myerrors.GetHTTPStatus(err))
		last, found := tc.feed.Last()
		assert.True(t, found)
		assert.Equal(t, mynotify.KindError, last.Kind)
		assert.Equal(t, "Empty Cart!", last.Title)
	})

	t.Run("Stops scanner and opens surface", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(ctrl)

		// given
		gomock.InOrder(
			tc.cart.EXPECT().View(gomock.Any()).Return(filledCart, nil),
			tc.scanner.EXPECT().Stop(),
			tc.payment.EXPECT().SetSurfaceOpen(gomock.Any(), true),
		)

		// when
		err := tc.sut.OpenPayment(tc.c)

		// then
		require.NoError(t, err)
	})

	t.Run("Opening twice is a no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(ctrl)

		// given
		opened(t, tc)
		tc.cart.EXPECT().View(gomock.Any()).Return(filledCart, nil)

		// when
		err := tc.sut.OpenPayment(tc.c)

		// then
		require.NoError(t, err)
	})

	t.Run("Scanner cannot start during payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(ctrl)

		// given
		opened(t, tc)

		// when
		err := tc.sut.StartScanner(tc.c)

		// then
		assert.ErrorIs(t, err, ErrPaymentOpen)
		assert.Equal(t, http.StatusConflict, myerrors.GetHTTPStatus(err))
	})
}

func TestClosePayment(t *testing.T) {

	t.Run("Pending transaction is kept", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(ctrl)

		// given
		opened(t, tc)
		gomock.InOrder(
			tc.payment.EXPECT().SetSurfaceOpen(gomock.Any(), false),
			tc.payment.EXPECT().State().Return(checkout.State{Transaction: transaction(shopmodel.TransactionStatusPending)}),
			tc.scanner.EXPECT().Start(gomock.Any()).Return(nil),
		)

		// when
		err := tc.sut.ClosePayment(tc.c)

		// then
		require.NoError(t, err)
	})

	t.Run("Without transaction it resets", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(ctrl)

		// given
		opened(t, tc)
		tc.payment.EXPECT().SetSurfaceOpen(gomock.Any(), false)
		tc.payment.EXPECT().State().Return(checkout.State{})
		tc.payment.EXPECT().ResetTransaction()
		tc.scanner.EXPECT().Start(gomock.Any()).Return(nil)

		// when
		err := tc.sut.ClosePayment(tc.c)

		// then
		require.NoError(t, err)
	})

	t.Run("After success a new cart is started", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(ctrl)

		// given
		opened(t, tc)
		tc.onSuccess(tc.c, *transaction(shopmodel.TransactionStatusSuccess))
		gomock.InOrder(
			tc.payment.EXPECT().SetSurfaceOpen(gomock.Any(), false),
			tc.payment.EXPECT().State().Return(checkout.State{Transaction: transaction(shopmodel.TransactionStatusSuccess)}),
			tc.payment.EXPECT().ResetTransaction(),
			tc.cart.EXPECT().StartNewCart(gomock.Any()).Return(true),
			tc.scanner.EXPECT().Start(gomock.Any()).Return(nil),
		)

		// when
		err := tc.sut.ClosePayment(tc.c)

		// then
		require.NoError(t, err)
		last, found := tc.feed.Last()
		assert.True(t, found)
		assert.Equal(t, mynotify.KindSuccess, last.Kind)
		assert.Equal(t, "Transaction Done!", last.Title)
		assert.Equal(t, "Thank you for your purchase.", last.Description)
	})

	t.Run("Success is consumed once", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(ctrl)

		// given
		opened(t, tc)
		tc.onSuccess(tc.c, *transaction(shopmodel.TransactionStatusSuccess))
		tc.payment.EXPECT().SetSurfaceOpen(gomock.Any(), false).Times(2)
		tc.payment.EXPECT().State().Return(checkout.State{}).Times(2)
		tc.payment.EXPECT().ResetTransaction().Times(2)
		tc.cart.EXPECT().StartNewCart(gomock.Any()).Return(true).Times(1)
		tc.scanner.EXPECT().Start(gomock.Any()).Return(nil).Times(2)

		// when
		require.NoError(t, tc.sut.ClosePayment(tc.c))
		opened(t, tc)
		require.NoError(t, tc.sut.ClosePayment(tc.c))
	})

	t.Run("Closing without open payment is a no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(ctrl)

		// when
		err := tc.sut.ClosePayment(tc.c)

		// then
		require.NoError(t, err)
	})

	t.Run("Camera failure does not fail closing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(ctrl)

		// given
		opened(t, tc)
		tc.payment.EXPECT().SetSurfaceOpen(gomock.Any(), false)
		tc.payment.EXPECT().State().Return(checkout.State{Transaction: transaction(shopmodel.TransactionStatusCancelled)})
		tc.payment.EXPECT().ResetTransaction()
		tc.scanner.EXPECT().Start(gomock.Any()).Return(myerrors.NewNotFoundError(errors.New("no camera found")))

		// when
		err := tc.sut.ClosePayment(tc.c)

		// then
		require.NoError(t, err)
	})
}

func opened(t *testing.T, tc testContext) {
	t.Helper()
	tc.cart.EXPECT().View(gomock.Any()).Return(filledCart, nil)
	tc.scanner.EXPECT().Stop()
	tc.payment.EXPECT().SetSurfaceOpen(gomock.Any(), true)
	require.NoError(t, tc.sut.OpenPayment(tc.c))
}

func setup(ctrl *gomock.Controller) testContext {
	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

	tc := testContext{
		c:       context.TODO(),
		cart:    NewMockCart(ctrl),
		scanner: NewMockBarcodeScanner(ctrl),
		payment: NewMockPayment(ctrl),
		feed:    mynotify.NewFeed(nower),
	}
	tc.scanner.EXPECT().OnScan(gomock.Any()).Do(func(f scanner.ScanFunc) { tc.onScan = f })
	tc.payment.EXPECT().OnSuccess(gomock.Any()).Do(func(f checkout.SuccessFunc) { tc.onSuccess = f })
	tc.sut = New(tc.cart, tc.scanner, tc.payment, tc.feed)
	return tc
}
