package checkoutadyen

import (
	"context"
	"fmt"

	"github.com/adyen/adyen-go-api-library/v6/src/checkout"

	"github.com/MarcGrol/selfcheckout/lib/myerrors"
	"github.com/MarcGrol/selfcheckout/lib/mylog"
	"github.com/MarcGrol/selfcheckout/lib/mystore"
	"github.com/MarcGrol/selfcheckout/lib/mytime"
	"github.com/MarcGrol/selfcheckout/services/checkoutapi"
	"github.com/MarcGrol/selfcheckout/services/shopmodel"
)

const (
	providerName = "adyen"

	linkStatusActive         = "active"
	linkStatusPaymentPending = "paymentPending"
	linkStatusCompleted      = "completed"
	linkStatusExpired        = "expired"
)

type Config struct {
	APIKey          string
	MerchantAccount string
	CountryCode     string
	ShopperLocale   string
	Currency        string
	ReturnURL       string
}

// Gateway settles the current cart with an Adyen pay-by-link.
type Gateway struct {
	cfg    Config
	payer  Payer
	carts  checkoutapi.CartReader
	store  mystore.Store[checkoutapi.PaymentContext]
	nower  mytime.Nower
	logger mylog.Logger
}

func NewGateway(cfg Config, payer Payer, carts checkoutapi.CartReader, store mystore.Store[checkoutapi.PaymentContext], nower mytime.Nower) *Gateway {
	return &Gateway{
		cfg:    cfg,
		payer:  payer,
		carts:  carts,
		store:  store,
		nower:  nower,
		logger: mylog.New(providerName),
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

	req := g.payByLinkRequest(cartID, paymentMethod, view)
	err = validatePayByLinkRequest(req)
	if err != nil {
		return nil, err
	}

	g.logger.Log(c, cartID, mylog.SeverityInfo, "Start pay-by-link for cart %s", cartID)

	g.payer.UseAPIKey(g.cfg.APIKey)
	link, err := g.payer.CreatePayByLink(c, req)
	if err != nil {
		return nil, err
	}

	pc := checkoutapi.NewPaymentContext(link.ID, providerName, view, g.nower.Now())
	pc.PaymentMethod = paymentMethod
	pc.Currency = g.cfg.Currency
	pc.ProviderStatus = link.Status
	pc.Status = classifyStatus(link.Status)
	pc.CheckoutURL = link.URL

	err = g.store.RunInTransaction(c, func(c context.Context) error {
		// must be idempotent

		err := g.store.Put(c, pc.OrderID, pc)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error storing payment link %s: %s", pc.OrderID, err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	g.logger.Log(c, cartID, mylog.SeverityInfo, "Payment link %s created for cart %s", pc.OrderID, cartID)

	return pc.Transaction(), nil
}

func (g *Gateway) payByLinkRequest(cartID string, paymentMethod string, view shopmodel.CartView) checkout.CreatePaymentLinkRequest {
	return checkout.CreatePaymentLinkRequest{
		Amount: checkout.Amount{
			Currency: g.cfg.Currency,
			Value:    minorUnits(view.Total(), g.cfg.Currency),
		},
		CountryCode:            g.cfg.CountryCode,
		ShopperLocale:          g.cfg.ShopperLocale,
		ReturnUrl:              g.cfg.ReturnURL,
		MerchantAccount:        g.cfg.MerchantAccount,
		MerchantOrderReference: cartID,
		Reference:              cartID,
		Description:            fmt.Sprintf("Self checkout %s (%s)", cartID, paymentMethod),
	}
}

func validatePayByLinkRequest(req checkout.CreatePaymentLinkRequest) error {
	if req.Amount.Currency == "" || req.Amount.Value == 0 ||
		req.CountryCode == "" ||
		req.ShopperLocale == "" || req.ReturnUrl == "" || req.MerchantOrderReference == "" ||
		req.Reference == "" || req.MerchantAccount == "" {
		return myerrors.NewInvalidInputError(fmt.Errorf("missing mandatory field"))
	}

	return nil
}

func (g *Gateway) GetTransaction(c context.Context, orderID string) (*shopmodel.Transaction, error) {
	g.payer.UseAPIKey(g.cfg.APIKey)
	link, err := g.payer.GetPayByLink(c, orderID)
	if err != nil {
		return nil, err
	}

	pc, err := g.track(c, orderID, link.Status, classifyStatus(link.Status))
	if err != nil {
		return nil, err
	}

	return pc.Transaction(), nil
}

func (g *Gateway) GetTransactionDetails(c context.Context, orderID string) ([]shopmodel.TransactionDetail, error) {
	pc, found, err := g.store.Get(c, orderID)
	if err != nil {
		return nil, myerrors.NewInternalError(fmt.Errorf("error fetching payment link %s: %s", orderID, err))
	}
	if !found {
		return nil, myerrors.NewNotFoundError(fmt.Errorf("payment link %s not found", orderID))
	}

	return pc.Lines, nil
}

// CancelTransaction expires the link; a link that expired on request counts as cancelled.
func (g *Gateway) CancelTransaction(c context.Context, orderID string) (*shopmodel.Transaction, error) {
	g.payer.UseAPIKey(g.cfg.APIKey)
	link, err := g.payer.ExpirePayByLink(c, orderID)
	if err != nil {
		return nil, err
	}

	status := classifyStatus(link.Status)
	if status == shopmodel.TransactionStatusExpired {
		status = shopmodel.TransactionStatusCancelled
	}

	pc, err := g.track(c, orderID, link.Status, status)
	if err != nil {
		return nil, err
	}

	g.logger.Log(c, orderID, mylog.SeverityInfo, "Payment link %s expired on request", orderID)

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
			return myerrors.NewInternalError(fmt.Errorf("error fetching payment link %s: %s", orderID, err))
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("payment link %s not found", orderID))
		}

		if !pc.Track(providerStatus, status, now) {
			return nil
		}

		err = g.store.Put(c, orderID, pc)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error storing payment link %s: %s", orderID, err))
		}
		return nil
	})
	if err != nil {
		return checkoutapi.PaymentContext{}, err
	}

	return pc, nil
}

func classifyStatus(status string) shopmodel.TransactionStatus {
	// https://docs.adyen.com/unified-commerce/pay-by-link/payment-links/api#payment-link-status
	switch status {
	case linkStatusCompleted:
		return shopmodel.TransactionStatusSuccess
	case linkStatusExpired:
		return shopmodel.TransactionStatusExpired
	case linkStatusActive, linkStatusPaymentPending:
		return shopmodel.TransactionStatusPending
	default:
		return shopmodel.TransactionStatusPending
	}
}

// Adyen amounts are in minor units; amounts in the cart are whole currency units.
func minorUnits(amount int64, currency string) int64 {
	switch currency {
	case "CVE", "DJF", "GNF", "IDR", "JPY", "KMF", "KRW", "PYG", "RWF", "UGX", "VND", "VUV", "XAF", "XOF", "XPF":
		return amount
	case "BHD", "IQD", "JOD", "KWD", "LYD", "OMR", "TND":
		return amount * 1000
	default:
		return amount * 100
	}
}
