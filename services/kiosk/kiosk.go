package kiosk

import (
	"context"
	"errors"
	"sync"

	"github.com/MarcGrol/selfcheckout/lib/myerrors"
	"github.com/MarcGrol/selfcheckout/lib/mylog"
	"github.com/MarcGrol/selfcheckout/lib/mynotify"
	"github.com/MarcGrol/selfcheckout/services/checkout"
	"github.com/MarcGrol/selfcheckout/services/checkoutapi"
	"github.com/MarcGrol/selfcheckout/services/scanner"
	"github.com/MarcGrol/selfcheckout/services/shopmodel"
)

var ErrPaymentOpen = errors.New("payment in progress")

type Status struct {
	Cart             shopmodel.CartView `json:"cart"`
	Scanner          scanner.Status     `json:"scanner"`
	Payment          checkout.State     `json:"payment"`
	PaymentOpen      bool               `json:"paymentOpen"`
	PaymentSucceeded bool               `json:"paymentSucceeded"`
}

// Kiosk ties scanner, cart and payment together for one self checkout screen.
// The scanner only runs while no payment is open; a new cart is started when a paid payment is closed.
type Kiosk struct {
	cart     Cart
	scanner  BarcodeScanner
	payment  Payment
	notifier mynotify.Notifier
	logger   mylog.Logger

	sync.Mutex
	paymentOpen      bool
	paymentSucceeded bool
}

func New(cart Cart, barcodeScanner BarcodeScanner, payment Payment, notifier mynotify.Notifier) *Kiosk {
	k := &Kiosk{
		cart:     cart,
		scanner:  barcodeScanner,
		payment:  payment,
		notifier: notifier,
		logger:   mylog.New("kiosk"),
	}
	barcodeScanner.OnScan(k.handleScan)
	payment.OnSuccess(k.handlePaymentSuccess)
	return k
}

func (k *Kiosk) Status(c context.Context) (Status, error) {
	view, err := k.cart.View(c)
	if err != nil {
		return Status{}, err
	}

	k.Lock()
	defer k.Unlock()

	return Status{
		Cart:             view,
		Scanner:          k.scanner.Status(),
		Payment:          k.payment.State(),
		PaymentOpen:      k.paymentOpen,
		PaymentSucceeded: k.paymentSucceeded,
	}, nil
}

// StartScanner is refused while a payment is open.
func (k *Kiosk) StartScanner(c context.Context) error {
	k.Lock()
	defer k.Unlock()

	if k.paymentOpen {
		return myerrors.NewConflictError(ErrPaymentOpen)
	}
	return k.scanner.Start(c)
}

func (k *Kiosk) StopScanner() {
	k.scanner.Stop()
}

func (k *Kiosk) handleScan(c context.Context, barcode string) {
	k.Lock()
	open := k.paymentOpen
	k.Unlock()

	if open {
		k.logger.Log(c, barcode, mylog.SeverityInfo, "Ignore scan of %s during payment", barcode)
		return
	}
	k.cart.AddItem(c, barcode, 1)
}

func (k *Kiosk) OpenPayment(c context.Context) error {
	view, err := k.cart.View(c)
	if err != nil {
		return err
	}
	if view.IsEmpty() {
		k.notifier.Error(c, checkoutapi.ErrEmptyCart.Error(), "")
		return myerrors.NewInvalidInputError(checkoutapi.ErrEmptyCart)
	}

	k.Lock()
	defer k.Unlock()

	if k.paymentOpen {
		return nil
	}
	k.paymentOpen = true
	k.scanner.Stop()
	k.payment.SetSurfaceOpen(c, true)

	k.logger.Log(c, "", mylog.SeverityInfo, "Payment opened for %d items", view.ItemCount())

	return nil
}

func (k *Kiosk) handlePaymentSuccess(c context.Context, trx shopmodel.Transaction) {
	k.Lock()
	k.paymentSucceeded = true
	k.Unlock()

	k.notifier.Success(c, "Transaction Done!", "Thank you for your purchase.")
}

// ClosePayment hides the payment surface, which also stops polling. A finished transaction is forgotten,
// a paid one also replaces the cart. Scanning resumes afterwards.
func (k *Kiosk) ClosePayment(c context.Context) error {
	k.Lock()
	defer k.Unlock()

	if !k.paymentOpen {
		return nil
	}
	k.paymentOpen = false
	succeeded := k.paymentSucceeded
	k.paymentSucceeded = false

	k.payment.SetSurfaceOpen(c, false)

	trx := k.payment.State().Transaction
	if trx == nil || trx.Status != shopmodel.TransactionStatusPending {
		k.payment.ResetTransaction()
	}

	if succeeded {
		k.cart.StartNewCart(c)
	}

	err := k.scanner.Start(c)
	if err != nil {
		k.logger.Log(c, "", mylog.SeverityWarn, "Scanner did not restart: %s", err)
	}

	return nil
}
