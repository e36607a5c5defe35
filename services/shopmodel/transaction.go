package shopmodel

import (
	"encoding/json"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusSuccess   TransactionStatus = "SUCCESS"
	TransactionStatusCancelled TransactionStatus = "CANCELLED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
	TransactionStatusExpired   TransactionStatus = "EXPIRED"
)

func (s TransactionStatus) IsTerminal() bool {
	switch s {
	case TransactionStatusSuccess, TransactionStatusCancelled, TransactionStatusFailed, TransactionStatusExpired:
		return true
	default:
		return false
	}
}

const PaymentTypeQRIS = "qris"

type PaymentMethod struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var PaymentMethods = []PaymentMethod{
	{ID: PaymentTypeQRIS, Label: "QRIS"},
}

func IsSupportedPaymentMethod(id string) bool {
	for _, m := range PaymentMethods {
		if m.ID == id {
			return true
		}
	}
	return false
}

// PaymentPayload is what the shopper needs to complete a payment; one variant per payment flavour.
type PaymentPayload interface {
	paymentPayload()
}

// QRISPayment carries the QR code to display.
type QRISPayment struct {
	Link string
}

// RedirectPayment carries a hosted checkout page, shown as a QR code on the kiosk.
type RedirectPayment struct {
	URL string
}

// PlainPayment needs nothing beyond the amount.
type PlainPayment struct{}

func (QRISPayment) paymentPayload()     {}
func (RedirectPayment) paymentPayload() {}
func (PlainPayment) paymentPayload()    {}

type Transaction struct {
	OrderID     string
	Amount      int64
	Status      TransactionStatus
	PaymentType string
	ExpireTime  string
	Payment     PaymentPayload
}

func (t Transaction) QRIS() (QRISPayment, bool) {
	qris, ok := t.Payment.(QRISPayment)
	return qris, ok
}

func (t Transaction) MarshalJSON() ([]byte, error) {
	out := struct {
		OrderID     string            `json:"order_id"`
		Amount      int64             `json:"amount"`
		Status      TransactionStatus `json:"status"`
		PaymentType string            `json:"payment_type"`
		ExpireTime  string            `json:"expire_time,omitempty"`
		QRISLink    string            `json:"qris_link,omitempty"`
		CheckoutURL string            `json:"checkout_url,omitempty"`
	}{
		OrderID:     t.OrderID,
		Amount:      t.Amount,
		Status:      t.Status,
		PaymentType: t.PaymentType,
		ExpireTime:  t.ExpireTime,
	}
	switch p := t.Payment.(type) {
	case QRISPayment:
		out.QRISLink = p.Link
	case RedirectPayment:
		out.CheckoutURL = p.URL
	}
	return json.Marshal(out)
}

type TransactionDetail struct {
	ProductName string `json:"product_name"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity"`
	Subtotal    int64  `json:"subtotal"`
}
