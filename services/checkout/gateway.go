package checkout

import (
	"context"

	"github.com/MarcGrol/selfcheckout/services/shopmodel"
)

// Gateway is the remote side of a transaction: the cart backend or a payment service provider.
//
//go:generate mockgen -source=gateway.go -package checkout -destination gateway_mock.go Gateway
type Gateway interface {
	Name() string
	CreateTransaction(c context.Context, paymentMethod string) (*shopmodel.Transaction, error)
	GetTransaction(c context.Context, orderID string) (*shopmodel.Transaction, error)
	GetTransactionDetails(c context.Context, orderID string) ([]shopmodel.TransactionDetail, error)
	CancelTransaction(c context.Context, orderID string) (*shopmodel.Transaction, error)
	SendInvoice(c context.Context, orderID string, email string) error
}
