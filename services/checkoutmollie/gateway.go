package checkoutmollie

import (
	"context"
	"fmt"

	"github.com/VictorAvelar/mollie-api-go/v3/mollie"

	"github.com/MarcGrol/selfcheckout/lib/myerrors"
	"github.com/MarcGrol/selfcheckout/lib/mylog"
	"github.com/MarcGrol/selfcheckout/lib/mystore"
	"github.com/MarcGrol/selfcheckout/lib/mytime"
	"github.com/MarcGrol/selfcheckout/services/checkoutapi"
	"github.com/MarcGrol/selfcheckout/services/shopmodel"
)

const providerName = "mollie"

// Gateway settles the current cart directly with Mollie.
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
		currency:  currency,
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

	g.logger.Log(c, cartID, mylog.SeverityInfo, "Start payment for cart %s", cartID)

	g.payer.UseAPIKey(g.apiKey)
	payment, err := g.payer.CreatePayment(c, mollie.Payment{
		Description: fmt.Sprintf("Self checkout %s", cartID),
		RedirectURL: g.returnURL,
		Amount: &mollie.Amount{
			Currency: g.currency,
			Value:    formatAmount(view.Total()),
		},
		Metadata: map[string]string{
			"cartID":        cartID,
			"paymentMethod": paymentMethod,
		},
	})
	if err != nil {
		return nil, err
	}

	pc := checkoutapi.NewPaymentContext(payment.ID, providerName, view, g.nower.Now())
	pc.PaymentMethod = paymentMethod
	pc.Currency = g.currency
	pc.ProviderStatus = payment.Status
	pc.Status = classifyStatus(payment.Status)
	pc.ExpiresAt = payment.ExpiresAt
	if payment.Links.Checkout != nil {
		pc.CheckoutURL = payment.Links.Checkout.Href
	}

	err = g.store.RunInTransaction(c, func(c context.Context) error {
		// must be idempotent

		err := g.store.Put(c, pc.OrderID, pc)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error storing payment %s: %s", pc.OrderID, err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	g.logger.Log(c, cartID, mylog.SeverityInfo, "Payment %s started for cart %s", pc.OrderID, cartID)

	return pc.Transaction(), nil
}

func (g *Gateway) GetTransaction(c context.Context, orderID string) (*shopmodel.Transaction, error) {
	g.payer.UseAPIKey(g.apiKey)
	payment, err := g.payer.GetPaymentOnID(c, orderID)
	if err != nil {
		return nil, err
	}

	pc, err := g.track(c, orderID, payment.Status)
	if err != nil {
		return nil, err
	}

	return pc.Transaction(), nil
}

func (g *Gateway) GetTransactionDetails(c context.Context, orderID string) ([]shopmodel.TransactionDetail, error) {
	pc, found, err := g.store.Get(c, orderID)
	if err != nil {
		return nil, myerrors.NewInternalError(fmt.Errorf("error fetching payment %s: %s", orderID, err))
	}
	if !found {
		return nil, myerrors.NewNotFoundError(fmt.Errorf("payment %s not found", orderID))
	}

	return pc.Lines, nil
}

func (g *Gateway) CancelTransaction(c context.Context, orderID string) (*shopmodel.Transaction, error) {
	g.payer.UseAPIKey(g.apiKey)
	payment, err := g.payer.CancelPayment(c, orderID)
	if err != nil {
		return nil, err
	}

	pc, err := g.track(c, orderID, payment.Status)
	if err != nil {
		return nil, err
	}

	g.logger.Log(c, orderID, mylog.SeverityInfo, "Payment %s cancelled", orderID)

	return pc.Transaction(), nil
}

func (g *Gateway) SendInvoice(c context.Context, orderID string, email string) error {
	return myerrors.NewNotImplementedError(fmt.Errorf("invoice e-mail is not supported for %s payments", providerName))
}

func (g *Gateway) track(c context.Context, orderID string, providerStatus string) (checkoutapi.PaymentContext, error) {
	now := g.nower.Now()

	var pc checkoutapi.PaymentContext
	err := g.store.RunInTransaction(c, func(c context.Context) error {
		// must be idempotent

		var found bool
		var err error
		pc, found, err = g.store.Get(c, orderID)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error fetching payment %s: %s", orderID, err))
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("payment %s not found", orderID))
		}

		if !pc.Track(providerStatus, classifyStatus(providerStatus), now) {
			return nil
		}

		err = g.store.Put(c, orderID, pc)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error storing payment %s: %s", orderID, err))
		}
		return nil
	})
	if err != nil {
		return checkoutapi.PaymentContext{}, err
	}

	return pc, nil
}

func classifyStatus(status string) shopmodel.TransactionStatus {
	switch status {
	case "paid":
		return shopmodel.TransactionStatusSuccess
	case "canceled":
		return shopmodel.TransactionStatusCancelled
	case "failed":
		return shopmodel.TransactionStatusFailed
	case "expired":
		return shopmodel.TransactionStatusExpired
	default:
		return shopmodel.TransactionStatusPending
	}
}

// Amounts are kept in whole currency units.
func formatAmount(amount int64) string {
	return fmt.Sprintf("%d.00", amount)
}
