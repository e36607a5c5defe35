package checkoutstripe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v74"

	"github.com/MarcGrol/selfcheckout/lib/myerrors"
	"github.com/MarcGrol/selfcheckout/lib/mylog"
	"github.com/MarcGrol/selfcheckout/lib/mystore"
	"github.com/MarcGrol/selfcheckout/lib/mytime"
	"github.com/MarcGrol/selfcheckout/services/checkoutapi"
	"github.com/MarcGrol/selfcheckout/services/shopmodel"
)

const providerName = "stripe"

// Gateway settles the current cart through a hosted Stripe checkout session.
type Gateway struct {
	apiKey    string
	payer     Payer
	carts     checkoutapi.CartReader
	store     mystore.Store[checkoutapi.PaymentContext]
	nower     mytime.Nower
	currency  string
	returnURL string
	logger    mylog.Logger
}

func NewGateway(apiKey string, payer Payer, carts checkoutapi.CartReader, store mystore.Store[checkoutapi.PaymentContext], nower mytime.Nower, currency string, returnURL string) *Gateway {
	return &Gateway{
		apiKey:    apiKey,
		payer:     payer,
		carts:     carts,
		store:     store,
		nower:     nower,
		currency:  strings.ToLower(currency),
		returnURL: returnURL,
		logger:    mylog.New(providerName),
	}
}

func (g *Gateway) Name() string {
	return providerName
}

func (g *Gateway) CreateTransaction(c context.Context, paymentMethod string) (*shopmodel.Transaction, error) {
	view, err := g.carts.View(c)
	if err != nil {
		return nil, err
	}
	if view.IsEmpty() || view.Cart == nil {
		return nil, myerrors.NewInvalidInputError(checkoutapi.ErrEmptyCart)
	}
	cartID := view.Cart.ID

	g.logger.Log(c, cartID, mylog.SeverityInfo, "Start checkout session for cart %s", cartID)

	g.payer.UseAPIKey(g.apiKey)
	s, err := g.payer.CreateCheckoutSession(c, g.sessionParams(cartID, paymentMethod, view))
	if err != nil {
		return nil, err
	}

	pc := checkoutapi.NewPaymentContext(s.ID, providerName, view, g.nower.Now())
	pc.PaymentMethod = paymentMethod
	pc.Currency = g.currency
	pc.CheckoutURL = s.URL
	pc.ProviderStatus = providerStatus(s)
	pc.Status = classifyStatus(s)
	if s.ExpiresAt > 0 {
		expiresAt := time.Unix(s.ExpiresAt, 0).UTC()
		pc.ExpiresAt = &expiresAt
	}

	err = g.store.RunInTransaction(c, func(c context.Context) error {
		// must be idempotent

		err := g.store.Put(c, pc.OrderID, pc)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error storing checkout session %s: %s", pc.OrderID, err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	g.logger.Log(c, cartID, mylog.SeverityInfo, "Checkout session %s started for cart %s", pc.OrderID, cartID)

	return pc.Transaction(), nil
}

func (g *Gateway) sessionParams(cartID string, paymentMethod string, view shopmodel.CartView) stripe.CheckoutSessionParams {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(view.Lines))
	for _, line := range view.Lines {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(g.currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(line.ProductName),
				},
				UnitAmount: stripe.Int64(minorUnits(line.Price, g.currency)),
			},
			Quantity: stripe.Int64(int64(line.Quantity)),
		})
	}

	params := stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(g.returnURL),
		CancelURL:         stripe.String(g.returnURL),
		ClientReferenceID: stripe.String(cartID),
		Currency:          stripe.String(g.currency),
		LineItems:         lineItems,
	}
	params.AddMetadata("paymentMethod", paymentMethod)

	return params
}

func (g *Gateway) GetTransaction(c context.Context, orderID string) (*shopmodel.Transaction, error) {
	g.payer.UseAPIKey(g.apiKey)
	s, err := g.payer.GetCheckoutSession(c, orderID)
	if err != nil {
		return nil, err
	}

	pc, err := g.track(c, orderID, providerStatus(s), classifyStatus(s))
	if err != nil {
		return nil, err
	}

	return pc.Transaction(), nil
}

func (g *Gateway) GetTransactionDetails(c context.Context, orderID string) ([]shopmodel.TransactionDetail, error) {
	pc, found, err := g.store.Get(c, orderID)
	if err != nil {
		return nil, myerrors.NewInternalError(fmt.Errorf("error fetching checkout session %s: %s", orderID, err))
	}
	if !found {
		return nil, myerrors.NewNotFoundError(fmt.Errorf("checkout session %s not found", orderID))
	}

	return pc.Lines, nil
}

// CancelTransaction expires the open session; stripe has no separate cancelled state.
func (g *Gateway) CancelTransaction(c context.Context, orderID string) (*shopmodel.Transaction, error) {
	g.payer.UseAPIKey(g.apiKey)
	s, err := g.payer.ExpireCheckoutSession(c, orderID)
	if err != nil {
		return nil, err
	}

	status := classifyStatus(s)
	if status == shopmodel.TransactionStatusExpired {
		status = shopmodel.TransactionStatusCancelled
	}

	pc, err := g.track(c, orderID, providerStatus(s), status)
	if err != nil {
		return nil, err
	}

	g.logger.Log(c, orderID, mylog.SeverityInfo, "Checkout session %s cancelled", orderID)

	return pc.Transaction(), nil
}

func (g *Gateway) SendInvoice(c context.Context, orderID string, email string) error {
	return myerrors.NewNotImplementedError(fmt.Errorf("invoice e-mail is not supported for %s payments", providerName))
}

func (g *Gateway) track(c context.Context, orderID string, providerStatus string, status shopmodel.TransactionStatus) (checkoutapi.PaymentContext, error) {
	now := g.nower.Now()

	var pc checkoutapi.PaymentContext
	err := g.store.RunInTransaction(c, func(c context.Context) error {
		// must be idempotent

		var found bool
		var err error
		pc, found, err = g.store.Get(c, orderID)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error fetching checkout session %s: %s", orderID, err))
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("checkout session %s not found", orderID))
		}

		if !pc.Track(providerStatus, status, now) {
			return nil
		}

		err = g.store.Put(c, orderID, pc)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error storing checkout session %s: %s", orderID, err))
		}
		return nil
	})
	if err != nil {
		return checkoutapi.PaymentContext{}, err
	}

	return pc, nil
}

func providerStatus(s stripe.CheckoutSession) string {
	return fmt.Sprintf("%s/%s", s.Status, s.PaymentStatus)
}

func classifyStatus(s stripe.CheckoutSession) shopmodel.TransactionStatus {
	switch s.Status {
	case stripe.CheckoutSessionStatusComplete:
		if s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid {
			return shopmodel.TransactionStatusSuccess
		}
		// asynchronous payment methods settle later
		return shopmodel.TransactionStatusPending
	case stripe.CheckoutSessionStatusExpired:
		return shopmodel.TransactionStatusExpired
	default:
		return shopmodel.TransactionStatusPending
	}
}

var zeroDecimalCurrencies = map[string]bool{
	"bif": true, "clp": true, "djf": true, "gnf": true, "jpy": true, "kmf": true, "krw": true, "mga": true,
	"pyg": true, "rwf": true, "ugx": true, "vnd": true, "vuv": true, "xaf": true, "xof": true, "xpf": true,
}

// minorUnits converts a whole-unit amount into the smallest unit stripe expects for the currency.
func minorUnits(amount int64, currency string) int64 {
	if zeroDecimalCurrencies[currency] {
		return amount
	}
	return amount * 100
}
