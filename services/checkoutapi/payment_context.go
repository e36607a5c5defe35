package checkoutapi

import (
	"time"

	"github.com/MarcGrol/selfcheckout/services/shopmodel"
)

// PaymentContext is what a payment gateway remembers about a payment it started for a cart.
type PaymentContext struct {
	OrderID         string
	CartID          string
	PaymentProvider string
	PaymentMethod   string
	Amount          int64
	Currency        string
	CheckoutURL     string
	ExpiresAt       *time.Time
	CreatedAt       time.Time
	LastModified    *time.Time
	ProviderStatus  string
	Status          shopmodel.TransactionStatus
	Lines           []shopmodel.TransactionDetail `datastore:",noindex"`
}

func NewPaymentContext(orderID string, provider string, view shopmodel.CartView, now time.Time) PaymentContext {
	pc := PaymentContext{
		OrderID:         orderID,
		PaymentProvider: provider,
		Amount:          view.Total(),
		CreatedAt:       now,
		Status:          shopmodel.TransactionStatusPending,
		Lines:           SnapshotLines(view),
	}
	if view.Cart != nil {
		pc.CartID = view.Cart.ID
	}
	return pc
}

func SnapshotLines(view shopmodel.CartView) []shopmodel.TransactionDetail {
	lines := make([]shopmodel.TransactionDetail, 0, len(view.Lines))
	for _, l := range view.Lines {
		lines = append(lines, shopmodel.TransactionDetail{
			ProductName: l.ProductName,
			Price:       l.Price,
			Quantity:    l.Quantity,
			Subtotal:    l.Subtotal,
		})
	}
	return lines
}

// Transaction renders the context in the shape the checkout controller works with.
func (pc PaymentContext) Transaction() *shopmodel.Transaction {
	trx := &shopmodel.Transaction{
		OrderID:     pc.OrderID,
		Amount:      pc.Amount,
		Status:      pc.Status,
		PaymentType: pc.PaymentProvider,
		Payment:     shopmodel.PlainPayment{},
	}
	if pc.CheckoutURL != "" {
		trx.Payment = shopmodel.RedirectPayment{URL: pc.CheckoutURL}
	}
	if pc.ExpiresAt != nil {
		trx.ExpireTime = pc.ExpiresAt.Format(time.RFC3339)
	}
	return trx
}
