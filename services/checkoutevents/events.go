package checkoutevents

import "github.com/MarcGrol/selfcheckout/services/shopmodel"

const (
	TopicName                = "checkout"
	transactionCreatedName   = TopicName + ".transaction.created"
	transactionCancelledName = TopicName + ".transaction.cancelled"
	transactionEndedName     = TopicName + ".transaction.ended"
	paymentSucceededName     = TopicName + ".payment.succeeded"
)

type TransactionCreated struct {
	OrderID     string
	Gateway     string
	PaymentType string
	Amount      int64
	Currency    string
}

func (e TransactionCreated) GetEventTypeName() string {
	return transactionCreatedName
}

func (e TransactionCreated) GetAggregateName() string {
	return e.OrderID
}

type TransactionCancelled struct {
	OrderID string
	Gateway string
}

func (e TransactionCancelled) GetEventTypeName() string {
	return transactionCancelledName
}

func (e TransactionCancelled) GetAggregateName() string {
	return e.OrderID
}

// TransactionEnded reports a transaction that reached a terminal status other than success.
type TransactionEnded struct {
	OrderID string
	Gateway string
	Status  shopmodel.TransactionStatus
}

func (e TransactionEnded) GetEventTypeName() string {
	return transactionEndedName
}

func (e TransactionEnded) GetAggregateName() string {
	return e.OrderID
}

type PaymentSucceeded struct {
	OrderID     string
	Gateway     string
	PaymentType string
	Amount      int64
	Currency    string
	ItemCount   int
}

func (e PaymentSucceeded) GetEventTypeName() string {
	return paymentSucceededName
}

func (e PaymentSucceeded) GetAggregateName() string {
	return e.OrderID
}
