package shopmodel

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartView(t *testing.T) {

	t.Run("Derived totals", func(t *testing.T) {
		view := CartView{Lines: []CartLine{
			{ID: "1", ProductName: "Rice", Price: 10000, Quantity: 2, Subtotal: 20000},
			{ID: "2", ProductName: "Tea", Price: 15000, Quantity: 1, Subtotal: 15000},
		}}

		assert.Equal(t, int64(35000), view.Total())
		assert.Equal(t, 3, view.ItemCount())
		assert.False(t, view.IsEmpty())
	})

	t.Run("Empty view", func(t *testing.T) {
		view := CartView{}

		assert.Equal(t, int64(0), view.Total())
		assert.Equal(t, 0, view.ItemCount())
		assert.True(t, view.IsEmpty())

		asJSON, err := json.Marshal(view)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"cart":null,"items":[],"total":0,"itemCount":0}`, string(asJSON))
	})

	t.Run("Find line", func(t *testing.T) {
		view := CartView{Lines: []CartLine{{ID: "1", ProductName: "Rice"}}}

		line, found := view.FindLine("1")
		assert.True(t, found)
		assert.Equal(t, "Rice", line.ProductName)

		_, found = view.FindLine("2")
		assert.False(t, found)
	})
}

func TestTransaction(t *testing.T) {

	t.Run("Terminal statuses", func(t *testing.T) {
		assert.False(t, TransactionStatusPending.IsTerminal())
		assert.True(t, TransactionStatusSuccess.IsTerminal())
		assert.True(t, TransactionStatusCancelled.IsTerminal())
		assert.True(t, TransactionStatusFailed.IsTerminal())
		assert.True(t, TransactionStatusExpired.IsTerminal())
	})

	t.Run("QRIS variant", func(t *testing.T) {
		trx := Transaction{OrderID: "ord-1", PaymentType: "qris", Status: TransactionStatusPending, Payment: QRISPayment{Link: "https://qr/1"}}

		qris, ok := trx.QRIS()
		assert.True(t, ok)
		assert.Equal(t, "https://qr/1", qris.Link)

		asJSON, err := json.Marshal(trx)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"order_id":"ord-1","amount":0,"status":"PENDING","payment_type":"qris","qris_link":"https://qr/1"}`, string(asJSON))
	})

	t.Run("Redirect variant", func(t *testing.T) {
		trx := Transaction{OrderID: "ord-2", PaymentType: "ideal", Status: TransactionStatusPending, Payment: RedirectPayment{URL: "https://pay/2"}}

		_, ok := trx.QRIS()
		assert.False(t, ok)

		asJSON, err := json.Marshal(trx)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"order_id":"ord-2","amount":0,"status":"PENDING","payment_type":"ideal","checkout_url":"https://pay/2"}`, string(asJSON))
	})

	t.Run("Supported payment methods", func(t *testing.T) {
		assert.True(t, IsSupportedPaymentMethod("qris"))
		assert.False(t, IsSupportedPaymentMethod("cash"))
	})
}
