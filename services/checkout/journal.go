package checkout

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/MarcGrol/selfcheckout/lib/myerrors"
	"github.com/MarcGrol/selfcheckout/lib/myevents"
	"github.com/MarcGrol/selfcheckout/lib/mylog"
	"github.com/MarcGrol/selfcheckout/lib/mypublisher"
	"github.com/MarcGrol/selfcheckout/lib/mystore"
	"github.com/MarcGrol/selfcheckout/lib/mytime"
	"github.com/MarcGrol/selfcheckout/services/checkoutevents"
	"github.com/MarcGrol/selfcheckout/services/shopmodel"
)

// Sale is a paid transaction as recorded by this kiosk.
type Sale struct {
	OrderID     string                        `json:"order_id"`
	Gateway     string                        `json:"gateway"`
	PaymentType string                        `json:"payment_type"`
	Amount      int64                         `json:"amount"`
	Currency    string                        `json:"currency"`
	Lines       []shopmodel.TransactionDetail `json:"lines"`
	PaidAt      time.Time                     `json:"paid_at"`
}

// SalesJournal records each paid order once and announces it.
type SalesJournal struct {
	store     mystore.Store[Sale]
	publisher mypublisher.Publisher
	nower     mytime.Nower
	currency  string
	logger    mylog.Logger
}

func NewSalesJournal(store mystore.Store[Sale], publisher mypublisher.Publisher, nower mytime.Nower, currency string) *SalesJournal {
	return &SalesJournal{
		store:     store,
		publisher: publisher,
		nower:     nower,
		currency:  currency,
		logger:    mylog.New("sales"),
	}
}

// RecordSale returns false when the order was recorded before.
func (j *SalesJournal) RecordSale(c context.Context, gateway string, trx shopmodel.Transaction, details []shopmodel.TransactionDetail) (bool, error) {
	recorded := false
	err := j.store.RunInTransaction(c, func(c context.Context) error {
		// must be idempotent

		_, exists, err := j.store.Get(c, trx.OrderID)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error fetching sale %s: %s", trx.OrderID, err))
		}
		if exists {
			return nil
		}

		itemCount := 0
		for _, d := range details {
			itemCount += d.Quantity
		}

		err = j.store.Put(c, trx.OrderID, Sale{
			OrderID:     trx.OrderID,
			Gateway:     gateway,
			PaymentType: trx.PaymentType,
			Amount:      trx.Amount,
			Currency:    j.currency,
			Lines:       details,
			PaidAt:      j.nower.Now(),
		})
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error storing sale %s: %s", trx.OrderID, err))
		}

		err = j.publisher.Publish(c, checkoutevents.TopicName, checkoutevents.PaymentSucceeded{
			OrderID:     trx.OrderID,
			Gateway:     gateway,
			PaymentType: trx.PaymentType,
			Amount:      trx.Amount,
			Currency:    j.currency,
			ItemCount:   itemCount,
		})
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error publishing event: %s", err))
		}

		recorded = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if recorded {
		j.logger.Log(c, trx.OrderID, mylog.SeverityInfo, "Recorded sale %s of %d %s", trx.OrderID, trx.Amount, j.currency)
	}
	return recorded, nil
}

func (j *SalesJournal) Announce(c context.Context, event myevents.Event) {
	err := j.publisher.Publish(c, checkoutevents.TopicName, event)
	if err != nil {
		j.logger.Log(c, event.GetAggregateName(), mylog.SeverityWarn, "Error publishing %s: %s", event.GetEventTypeName(), err)
	}
}

// List returns the sales, most recent first.
func (j *SalesJournal) List(c context.Context) ([]Sale, error) {
	sales, err := j.store.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(fmt.Errorf("error listing sales: %s", err))
	}
	sort.Slice(sales, func(i, k int) bool {
		return sales[i].PaidAt.After(sales[k].PaidAt)
	})
	return sales, nil
}
