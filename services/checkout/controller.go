package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MarcGrol/selfcheckout/lib/myerrors"
	"github.com/MarcGrol/selfcheckout/lib/mylog"
	"github.com/MarcGrol/selfcheckout/lib/mynotify"
	"github.com/MarcGrol/selfcheckout/services/backendclient"
	"github.com/MarcGrol/selfcheckout/services/checkoutevents"
	"github.com/MarcGrol/selfcheckout/services/shopmodel"
)

var (
	ErrTransactionCreationFailed = errors.New("failed to create transaction")
	ErrNoTransaction             = errors.New("no active transaction")
	ErrTransactionReplaced       = errors.New("transaction was replaced")
	ErrTransactionSettled        = errors.New("transaction already ended")
)

type outcome int

const (
	applied outcome = iota
	// stale results belong to a replaced transaction or a cancelled poll
	stale
	// settled results would move a terminal transaction to another status
	settled
)

// SuccessFunc runs once per transition of a transaction into SUCCESS.
type SuccessFunc func(c context.Context, trx shopmodel.Transaction)

type State struct {
	Transaction *shopmodel.Transaction        `json:"transaction"`
	Details     []shopmodel.TransactionDetail `json:"details"`
	Loading     bool                          `json:"loading"`
	Creating    bool                          `json:"creating"`
	Cancelling  bool                          `json:"cancelling"`
	SurfaceOpen bool                          `json:"surfaceOpen"`
	Polling     bool                          `json:"polling"`
}

// Controller owns the single active transaction of a checkout attempt.
type Controller struct {
	gateway      Gateway
	journal      *SalesJournal
	notifier     mynotify.Notifier
	pollInterval time.Duration
	logger       mylog.Logger

	sync.Mutex
	trx         *shopmodel.Transaction
	details     []shopmodel.TransactionDetail
	prevStatus  shopmodel.TransactionStatus
	generation  uint64
	loading     bool
	creating    bool
	cancelling  bool
	surfaceOpen bool
	pollCancel  context.CancelFunc
	onSuccess   []SuccessFunc
}

func NewController(gateway Gateway, journal *SalesJournal, notifier mynotify.Notifier, pollInterval time.Duration) *Controller {
	return &Controller{
		gateway:      gateway,
		journal:      journal,
		notifier:     notifier,
		pollInterval: pollInterval,
		logger:       mylog.New("checkout"),
	}
}

func (ctl *Controller) OnSuccess(f SuccessFunc) {
	ctl.Lock()
	defer ctl.Unlock()

	ctl.onSuccess = append(ctl.onSuccess, f)
}

func (ctl *Controller) State() State {
	ctl.Lock()
	defer ctl.Unlock()

	var trx *shopmodel.Transaction
	if ctl.trx != nil {
		copied := *ctl.trx
		trx = &copied
	}
	details := ctl.details
	if details == nil {
		details = []shopmodel.TransactionDetail{}
	}
	return State{
		Transaction: trx,
		Details:     details,
		Loading:     ctl.loading,
		Creating:    ctl.creating,
		Cancelling:  ctl.cancelling,
		SurfaceOpen: ctl.surfaceOpen,
		Polling:     ctl.pollCancel != nil,
	}
}

// CreateTransaction returns nil when no transaction could be created.
func (ctl *Controller) CreateTransaction(c context.Context, paymentMethod string) *shopmodel.Transaction {
	trx, _ := ctl.createTransaction(c, paymentMethod)
	return trx
}

// FetchTransaction is the manual status check; it shows a loading indicator.
func (ctl *Controller) FetchTransaction(c context.Context, orderID string) bool {
	return ctl.fetchTransaction(c, orderID) == nil
}

func (ctl *Controller) CancelTransaction(c context.Context, orderID string) bool {
	return ctl.cancelTransaction(c, orderID) == nil
}

func (ctl *Controller) SendInvoice(c context.Context, email string) bool {
	return ctl.sendInvoice(c, email) == nil
}

// ResetTransaction forgets the transaction, its details and the last observed status.
func (ctl *Controller) ResetTransaction() {
	ctl.Lock()
	defer ctl.Unlock()

	ctl.generation++
	ctl.trx = nil
	ctl.details = nil
	ctl.prevStatus = ""
	ctl.loading = false
	ctl.cancelling = false
	ctl.reconcilePolling(context.Background())
}

// SetSurfaceOpen tells whether the payment surface is showing; polling only runs while it is.
func (ctl *Controller) SetSurfaceOpen(c context.Context, open bool) {
	ctl.Lock()
	defer ctl.Unlock()

	ctl.surfaceOpen = open
	ctl.reconcilePolling(c)
}

// Close stops background polling.
func (ctl *Controller) Close() {
	ctl.SetSurfaceOpen(context.Background(), false)
}

func (ctl *Controller) createTransaction(c context.Context, paymentMethod string) (*shopmodel.Transaction, error) {
	ctl.setFlag(&ctl.creating, true)
	defer ctl.setFlag(&ctl.creating, false)

	trx, err := ctl.gateway.CreateTransaction(c, paymentMethod)
	if err != nil {
		ctl.notifier.Error(c, "Failed to create transaction", backendclient.ErrorMessage(err))
		return nil, err
	}
	if trx == nil {
		ctl.notifier.Error(c, "Failed to create transaction", "No transaction returned")
		return nil, myerrors.NewHTTPError(http.StatusBadGateway, ErrTransactionCreationFailed)
	}

	ctl.Lock()
	ctl.generation++
	generation := ctl.generation
	ctl.trx = nil
	ctl.details = nil
	ctl.prevStatus = ""
	ctl.reconcilePolling(c)
	ctl.Unlock()

	ctl.logger.Log(c, trx.OrderID, mylog.SeverityInfo, "Created transaction %s (%s) of %d", trx.OrderID, trx.PaymentType, trx.Amount)
	ctl.journal.Announce(c, checkoutevents.TransactionCreated{
		OrderID:     trx.OrderID,
		Gateway:     ctl.gateway.Name(),
		PaymentType: trx.PaymentType,
		Amount:      trx.Amount,
		Currency:    ctl.journal.currency,
	})

	ctl.apply(c, generation, nil, *trx, nil)

	created := *trx
	return &created, nil
}

func (ctl *Controller) fetchTransaction(c context.Context, orderID string) error {
	ctl.setFlag(&ctl.loading, true)
	defer ctl.setFlag(&ctl.loading, false)

	ctl.Lock()
	generation := ctl.generation
	ctl.Unlock()

	trx, details, err := ctl.load(c, orderID)
	if err != nil {
		ctl.notifier.Error(c, "Failed to fetch transaction", backendclient.ErrorMessage(err))
		return err
	}

	if ctl.apply(c, generation, nil, *trx, details) == stale {
		return myerrors.NewConflictError(ErrTransactionReplaced)
	}
	return nil
}

// refresh is the silent poll: no loading indicator and failures are only logged.
func (ctl *Controller) refresh(c context.Context, generation uint64, orderID string) {
	trx, details, err := ctl.load(c, orderID)
	if err != nil {
		if c.Err() == nil {
			ctl.logger.Log(c, orderID, mylog.SeverityWarn, "Error polling transaction %s: %s", orderID, err)
		}
		return
	}
	ctl.apply(c, generation, c, *trx, details)
}

func (ctl *Controller) load(c context.Context, orderID string) (*shopmodel.Transaction, []shopmodel.TransactionDetail, error) {
	var trx *shopmodel.Transaction
	var details []shopmodel.TransactionDetail

	eg, egContext := errgroup.WithContext(c)
	eg.Go(func() error {
		var err error
		trx, err = ctl.gateway.GetTransaction(egContext, orderID)
		if err != nil {
			return err
		}
		if trx == nil {
			return myerrors.NewNotFoundError(fmt.Errorf("transaction %s not found", orderID))
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		details, err = ctl.gateway.GetTransactionDetails(egContext, orderID)
		return err
	})
	err := eg.Wait()
	if err != nil {
		return nil, nil, err
	}
	return trx, details, nil
}

func (ctl *Controller) cancelTransaction(c context.Context, orderID string) error {
	ctl.setFlag(&ctl.cancelling, true)
	defer ctl.setFlag(&ctl.cancelling, false)

	ctl.Lock()
	generation := ctl.generation
	ctl.Unlock()

	trx, err := ctl.gateway.CancelTransaction(c, orderID)
	if err != nil {
		ctl.notifier.Error(c, "Failed to cancel transaction", backendclient.ErrorMessage(err))
		return err
	}
	if trx == nil {
		ctl.notifier.Error(c, "Failed to cancel transaction", "No transaction returned")
		return myerrors.NewHTTPError(http.StatusBadGateway, fmt.Errorf("cancel of %s returned no transaction", orderID))
	}

	switch ctl.apply(c, generation, nil, *trx, nil) {
	case stale:
		return myerrors.NewConflictError(ErrTransactionReplaced)
	case settled:
		ctl.notifier.Error(c, "Failed to cancel transaction", "Transaction already ended")
		return myerrors.NewConflictError(ErrTransactionSettled)
	}

	ctl.journal.Announce(c, checkoutevents.TransactionCancelled{
		OrderID: orderID,
		Gateway: ctl.gateway.Name(),
	})
	ctl.notifier.Info(c, "Transaction cancelled", "")

	return nil
}

func (ctl *Controller) sendInvoice(c context.Context, email string) error {
	ctl.Lock()
	trx := ctl.trx
	ctl.Unlock()

	if trx == nil {
		return myerrors.NewNotFoundError(ErrNoTransaction)
	}

	err := ctl.gateway.SendInvoice(c, trx.OrderID, email)
	if err != nil {
		ctl.notifier.Error(c, "Failed to send invoice", backendclient.ErrorMessage(err))
		return err
	}
	ctl.notifier.Success(c, "Invoice sent", email)

	return nil
}

// apply stores a confirmed transaction and detects the edge into SUCCESS. Results for a replaced
// transaction, or from a poll that was cancelled meanwhile, are dropped. A terminal status is
// final until a new transaction replaces it.
func (ctl *Controller) apply(c context.Context, generation uint64, pollContext context.Context, trx shopmodel.Transaction, details []shopmodel.TransactionDetail) outcome {
	ctl.Lock()
	if generation != ctl.generation || (ctl.trx != nil && ctl.trx.OrderID != trx.OrderID) {
		ctl.Unlock()
		return stale
	}
	if pollContext != nil && pollContext.Err() != nil {
		ctl.Unlock()
		return stale
	}
	if ctl.trx != nil && ctl.trx.Status.IsTerminal() && ctl.trx.Status != trx.Status {
		current := ctl.trx.Status
		ctl.Unlock()
		ctl.logger.Log(c, trx.OrderID, mylog.SeverityWarn, "Ignoring status %s for transaction %s that already ended as %s", trx.Status, trx.OrderID, current)
		return settled
	}

	previous := ctl.prevStatus
	ctl.trx = &trx
	if details != nil {
		ctl.details = details
	}
	ctl.prevStatus = trx.Status
	becameSuccessful := previous != shopmodel.TransactionStatusSuccess && trx.Status == shopmodel.TransactionStatusSuccess
	endedOtherwise := !previous.IsTerminal() && trx.Status.IsTerminal() && trx.Status != shopmodel.TransactionStatusSuccess
	callbacks := append([]SuccessFunc{}, ctl.onSuccess...)
	currentDetails := ctl.details
	ctl.reconcilePolling(c)
	ctl.Unlock()

	if previous != trx.Status {
		ctl.logger.Log(c, trx.OrderID, mylog.SeverityInfo, "Transaction %s: %s -> %s", trx.OrderID, previous, trx.Status)
	}

	if endedOtherwise {
		ctl.journal.Announce(c, checkoutevents.TransactionEnded{
			OrderID: trx.OrderID,
			Gateway: ctl.gateway.Name(),
			Status:  trx.Status,
		})
	}

	if becameSuccessful {
		_, err := ctl.journal.RecordSale(c, ctl.gateway.Name(), trx, currentDetails)
		if err != nil {
			ctl.logger.Log(c, trx.OrderID, mylog.SeverityError, "Error recording sale %s: %s", trx.OrderID, err)
		}
		for _, callback := range callbacks {
			callback(c, trx)
		}
	}

	return applied
}

// reconcilePolling runs the poller iff the surface is open and the transaction is PENDING.
// Must be called with the lock held.
func (ctl *Controller) reconcilePolling(c context.Context) {
	shouldPoll := ctl.surfaceOpen && ctl.trx != nil && ctl.trx.Status == shopmodel.TransactionStatusPending
	if !shouldPoll {
		if ctl.pollCancel != nil {
			ctl.pollCancel()
			ctl.pollCancel = nil
		}
		return
	}
	if ctl.pollCancel != nil {
		return
	}

	pollContext, cancel := context.WithCancel(context.WithoutCancel(c))
	ctl.pollCancel = cancel
	go ctl.poll(pollContext, ctl.generation, ctl.trx.OrderID)
}

func (ctl *Controller) poll(c context.Context, generation uint64, orderID string) {
	ticker := time.NewTicker(ctl.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.Done():
			return
		case <-ticker.C:
			if c.Err() != nil {
				return
			}
			ctl.refresh(c, generation, orderID)
		}
	}
}

func (ctl *Controller) setFlag(flag *bool, value bool) {
	ctl.Lock()
	defer ctl.Unlock()

	*flag = value
}
