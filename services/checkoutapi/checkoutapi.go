package checkoutapi

import (
	"context"
	"errors"
	"time"

	"github.com/MarcGrol/selfcheckout/services/shopmodel"
)

var ErrEmptyCart = errors.New("Empty Cart!")

// CartReader gives a payment gateway the confirmed contents of the current cart.
//
//go:generate mockgen -source=checkoutapi.go -package checkoutapi -destination checkoutapi_mock.go CartReader
type CartReader interface {
	View(c context.Context) (shopmodel.CartView, error)
}

// Track records the latest provider status. A terminal status is final. Returns true when anything changed.
func (pc *PaymentContext) Track(providerStatus string, status shopmodel.TransactionStatus, now time.Time) bool {
	if pc.ProviderStatus == providerStatus && pc.Status == status {
		return false
	}
	pc.ProviderStatus = providerStatus
	if !pc.Status.IsTerminal() {
		pc.Status = status
	}
	pc.LastModified = &now
	return true
}
