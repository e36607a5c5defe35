package checkoutstripe

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v74"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/selfcheckout/lib/myerrors"
	"github.com/MarcGrol/selfcheckout/lib/mystore"
	"github.com/MarcGrol/selfcheckout/lib/mytime"
	"github.com/MarcGrol/selfcheckout/services/checkoutapi"
	"github.com/MarcGrol/selfcheckout/services/shopmodel"
)

var cartView = shopmodel.CartView{
	Cart: &shopmodel.Cart{ID: "cart-1", SessionID: "sess-1", Status: "active"},
	Lines: []shopmodel.CartLine{
		{ID: "l1", ProductName: "Indomie Goreng", Price: 3500, Quantity: 2, Subtotal: 7000},
		{ID: "l2", ProductName: "Teh Botol", Price: 28000, Quantity: 1, Subtotal: 28000},
	},
}

func checkoutSession(status stripe.CheckoutSessionStatus, paymentStatus stripe.CheckoutSessionPaymentStatus) stripe.CheckoutSession {
	return stripe.CheckoutSession{
		ID:            "cs_test_a1",
		URL:           "https://checkout.stripe.com/c/pay/cs_test_a1",
		Status:        status,
		PaymentStatus: paymentStatus,
		ExpiresAt:     mytime.ExampleTime.Unix() + 1800,
	}
}

type testContext struct {
	c     context.Context
	sut   *Gateway
	payer *MockPayer
	carts *checkoutapi.MockCartReader
	store mystore.Store[checkoutapi.PaymentContext]
}

func TestCreateTransaction(t *testing.T) {

	t.Run("session with one line item per cart line", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(t, ctrl)

		// given
		tc.carts.EXPECT().View(gomock.Any()).Return(cartView, nil)
		tc.payer.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).DoAndReturn(func(c context.Context, params stripe.CheckoutSessionParams) (stripe.CheckoutSession, error) {
			assert.Equal(t, "cart-1", *params.ClientReferenceID)
			assert.Equal(t, "payment", *params.Mode)
			require.Len(t, params.LineItems, 2)
			assert.Equal(t, "idr", *params.LineItems[0].PriceData.Currency)
			assert.Equal(t, "Indomie Goreng", *params.LineItems[0].PriceData.ProductData.Name)
			assert.Equal(t, int64(350000), *params.LineItems[0].PriceData.UnitAmount)
			assert.Equal(t, int64(2), *params.LineItems[0].Quantity)
			assert.Equal(t, "qris", params.Metadata["paymentMethod"])
			return checkoutSession(stripe.CheckoutSessionStatusOpen, stripe.CheckoutSessionPaymentStatusUnpaid), nil
		})

		// when
		trx, err := tc.sut.CreateTransaction(tc.c, "qris")

		// then
		require.NoError(t, err)
		assert.Equal(t, "cs_test_a1", trx.OrderID)
		assert.Equal(t, int64(35000), trx.Amount)
		assert.Equal(t, shopmodel.TransactionStatusPending, trx.Status)
		assert.Equal(t, "stripe", trx.PaymentType)
		assert.Equal(t, "2023-02-28T00:28:59Z", trx.ExpireTime)
		assert.Equal(t, shopmodel.RedirectPayment{URL: "https://checkout.stripe.com/c/pay/cs_test_a1"}, trx.Payment)
	})

	t.Run("empty cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(t, ctrl)

		// given
		tc.carts.EXPECT().View(gomock.Any()).Return(shopmodel.CartView{}, nil)

		// when
		_, err := tc.sut.CreateTransaction(tc.c, "qris")

		// then
		assert.ErrorIs(t, err, checkoutapi.ErrEmptyCart)
	})
}

func TestGetTransaction(t *testing.T) {
	testCases := []struct {
		name          string
		status        stripe.CheckoutSessionStatus
		paymentStatus stripe.CheckoutSessionPaymentStatus
		expected      shopmodel.TransactionStatus
	}{
		{"open", stripe.CheckoutSessionStatusOpen, stripe.CheckoutSessionPaymentStatusUnpaid, shopmodel.TransactionStatusPending},
		{"complete and paid", stripe.CheckoutSessionStatusComplete, stripe.CheckoutSessionPaymentStatusPaid, shopmodel.TransactionStatusSuccess},
		{"complete but unpaid", stripe.CheckoutSessionStatusComplete, stripe.CheckoutSessionPaymentStatusUnpaid, shopmodel.TransactionStatusPending},
		{"expired", stripe.CheckoutSessionStatusExpired, stripe.CheckoutSessionPaymentStatusUnpaid, shopmodel.TransactionStatusExpired},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// setup
			ttc := setup(t, ctrl)

			// given
			started(t, ttc)
			ttc.payer.EXPECT().GetCheckoutSession(gomock.Any(), "cs_test_a1").Return(checkoutSession(tc.status, tc.paymentStatus), nil)

			// when
			trx, err := ttc.sut.GetTransaction(ttc.c, "cs_test_a1")

			// then
			require.NoError(t, err)
			assert.Equal(t, tc.expected, trx.Status)
		})
	}
}

func TestCancelTransaction(t *testing.T) {

	t.Run("expired session reads as cancelled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(t, ctrl)

		// given
		started(t, tc)
		tc.payer.EXPECT().ExpireCheckoutSession(gomock.Any(), "cs_test_a1").Return(checkoutSession(stripe.CheckoutSessionStatusExpired, stripe.CheckoutSessionPaymentStatusUnpaid), nil)
		tc.payer.EXPECT().GetCheckoutSession(gomock.Any(), "cs_test_a1").Return(checkoutSession(stripe.CheckoutSessionStatusExpired, stripe.CheckoutSessionPaymentStatusUnpaid), nil)

		// when
		cancelled, err := tc.sut.CancelTransaction(tc.c, "cs_test_a1")
		require.NoError(t, err)
		refreshed, err := tc.sut.GetTransaction(tc.c, "cs_test_a1")
		require.NoError(t, err)

		// then
		assert.Equal(t, shopmodel.TransactionStatusCancelled, cancelled.Status)
		assert.Equal(t, shopmodel.TransactionStatusCancelled, refreshed.Status)
	})

	t.Run("already completed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(t, ctrl)

		// given
		started(t, tc)
		tc.payer.EXPECT().ExpireCheckoutSession(gomock.Any(), "cs_test_a1").Return(stripe.CheckoutSession{}, myerrors.NewConflictError(assert.AnError))

		// when
		_, err := tc.sut.CancelTransaction(tc.c, "cs_test_a1")

		// then
		assert.Equal(t, http.StatusConflict, myerrors.GetHTTPStatus(err))
	})
}

func TestGetTransactionDetails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// setup
	tc := setup(t, ctrl)

	// given
	started(t, tc)

	// when
	details, err := tc.sut.GetTransactionDetails(tc.c, "cs_test_a1")

	// then
	require.NoError(t, err)
	assert.Len(t, details, 2)
	assert.Equal(t, int64(28000), details[1].Subtotal)

	_, err = tc.sut.GetTransactionDetails(tc.c, "cs_unknown")
	assert.Equal(t, http.StatusNotFound, myerrors.GetHTTPStatus(err))
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(350000), minorUnits(3500, "idr"))
	assert.Equal(t, int64(3500), minorUnits(3500, "jpy"))
}

func TestSendInvoice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// setup
	tc := setup(t, ctrl)

	// when
	err := tc.sut.SendInvoice(tc.c, "cs_test_a1", "shopper@example.com")

	// then
	assert.Equal(t, http.StatusNotImplemented, myerrors.GetHTTPStatus(err))
}

func started(t *testing.T, tc testContext) {
	tc.carts.EXPECT().View(gomock.Any()).Return(cartView, nil)
	tc.payer.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).Return(checkoutSession(stripe.CheckoutSessionStatusOpen, stripe.CheckoutSessionPaymentStatusUnpaid), nil)
	_, err := tc.sut.CreateTransaction(tc.c, "qris")
	require.NoError(t, err)
}

func setup(t *testing.T, ctrl *gomock.Controller) testContext {
	c := context.TODO()
	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

	store, _, err := mystore.New[checkoutapi.PaymentContext](c, mystore.Options{Backend: mystore.BackendMemory})
	require.NoError(t, err)

	payer := NewMockPayer(ctrl)
	payer.EXPECT().UseAPIKey("sk_test").AnyTimes()
	carts := checkoutapi.NewMockCartReader(ctrl)

	return testContext{
		c:     c,
		sut:   NewGateway("sk_test", payer, carts, store, nower, "IDR", "https://kiosk.example.com/"),
		payer: payer,
		carts: carts,
		store: store,
	}
}
