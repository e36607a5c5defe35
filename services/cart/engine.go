package cart

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/MarcGrol/selfcheckout/lib/myerrors"
	"github.com/MarcGrol/selfcheckout/lib/mylog"
	"github.com/MarcGrol/selfcheckout/lib/mynotify"
	"github.com/MarcGrol/selfcheckout/services/backendclient"
	"github.com/MarcGrol/selfcheckout/services/shopmodel"
)

var ErrProductNotFound = errors.New("product not found")

//go:generate mockgen -source=engine.go -package cart -destination engine_mock.go SessionManager
type SessionManager interface {
	Current(c context.Context) (string, bool, error)
	EnsureSession(c context.Context) (string, error)
	Bind(c context.Context, sessionID string) error
	Clear(c context.Context) error
}

// Engine turns scans and edits into server confirmed cart mutations. Cart state is never patched locally:
// every mutation is followed by invalidating the cached view.
type Engine struct {
	carts     backendclient.CartAPI
	products  backendclient.ProductAPI
	sessions  SessionManager
	cache     ViewCache
	notifier  mynotify.Notifier
	staleTime time.Duration
	logger    mylog.Logger
	flight    singleflight.Group
	epoch     atomic.Uint64
}

func NewEngine(carts backendclient.CartAPI, products backendclient.ProductAPI, sessions SessionManager, cache ViewCache, notifier mynotify.Notifier, staleTime time.Duration) *Engine {
	return &Engine{
		carts:     carts,
		products:  products,
		sessions:  sessions,
		cache:     cache,
		notifier:  notifier,
		staleTime: staleTime,
		logger:    mylog.New("cart"),
	}
}

func (e *Engine) AddItem(c context.Context, barcode string, quantity int) bool {
	_, err := e.addItem(c, barcode, quantity)
	return err == nil
}

func (e *Engine) UpdateQuantity(c context.Context, lineID string, quantity int) bool {
	return e.updateQuantity(c, lineID, quantity) == nil
}

func (e *Engine) RemoveItem(c context.Context, lineID string) bool {
	return e.removeItem(c, lineID) == nil
}

func (e *Engine) ClearCart(c context.Context) bool {
	return e.clearCart(c) == nil
}

func (e *Engine) StartNewCart(c context.Context) bool {
	return e.startNewCart(c) == nil
}

// View returns the cart of the current session, creating the session when there is none.
func (e *Engine) View(c context.Context) (shopmodel.CartView, error) {
	sessionID, err := e.sessions.EnsureSession(c)
	if err != nil {
		return shopmodel.CartView{}, err
	}

	if e.staleTime > 0 {
		view, found, err := e.cache.Get(c, sessionID)
		if err != nil {
			e.logger.Log(c, sessionID, mylog.SeverityWarn, "Error reading cached cart: %s", err)
		}
		if found {
			return view, nil
		}
	}

	epoch := e.epoch.Load()
	key := sessionID + "@" + strconv.FormatUint(epoch, 10)
	result, err, _ := e.flight.Do(key, func() (any, error) {
		return e.load(context.WithoutCancel(c), sessionID, epoch)
	})
	if err != nil {
		return shopmodel.CartView{}, err
	}
	return result.(shopmodel.CartView), nil
}

func (e *Engine) load(c context.Context, sessionID string, epoch uint64) (shopmodel.CartView, error) {
	view := shopmodel.CartView{}

	eg, egContext := errgroup.WithContext(c)
	eg.Go(func() error {
		cart, err := e.carts.GetCurrentCart(egContext)
		if err != nil {
			return err
		}
		view.Cart = cart
		return nil
	})
	eg.Go(func() error {
		lines, err := e.carts.GetCartLines(egContext)
		if err != nil {
			return err
		}
		view.Lines = lines
		return nil
	})
	err := eg.Wait()
	if err != nil {
		return shopmodel.CartView{}, fmt.Errorf("error loading cart: %w", err)
	}

	// a mutation confirmed while loading makes this result stale
	if e.staleTime > 0 && e.epoch.Load() == epoch {
		err = e.cache.Set(c, sessionID, view, e.staleTime)
		if err != nil {
			e.logger.Log(c, sessionID, mylog.SeverityWarn, "Error caching cart: %s", err)
		}
	}

	return view, nil
}

// cached returns the last confirmed view without contacting the backend.
func (e *Engine) cached(c context.Context) (shopmodel.CartView, bool) {
	sessionID, found, err := e.sessions.Current(c)
	if err != nil || !found {
		return shopmodel.CartView{}, false
	}
	view, found, err := e.cache.Get(c, sessionID)
	if err != nil || !found {
		return shopmodel.CartView{}, false
	}
	return view, true
}

func (e *Engine) invalidate(c context.Context, sessionIDs ...string) {
	e.epoch.Add(1)
	for _, sessionID := range sessionIDs {
		if sessionID == "" {
			continue
		}
		err := e.cache.Delete(c, sessionID)
		if err != nil {
			e.logger.Log(c, sessionID, mylog.SeverityWarn, "Error invalidating cart: %s", err)
		}
	}
}

func (e *Engine) addItem(c context.Context, barcode string, quantity int) (*shopmodel.CartLine, error) {
	product, err := e.products.SearchByBarcode(c, barcode)
	if err != nil {
		e.notifier.Error(c, "Failed to add product", backendclient.ErrorMessage(err))
		return nil, err
	}
	if product == nil {
		e.notifier.Error(c, "Product not found", "Barcode: "+barcode)
		return nil, myerrors.NewNotFoundError(fmt.Errorf("%w: %s", ErrProductNotFound, barcode))
	}

	sessionID, err := e.sessions.EnsureSession(c)
	if err != nil {
		e.notifier.Error(c, "Failed to add product", backendclient.ErrorMessage(err))
		return nil, err
	}

	line, err := e.carts.AddLine(c, barcode, quantity)
	if err != nil {
		e.notifier.Error(c, "Failed to add product", backendclient.ErrorMessage(err))
		return nil, err
	}
	e.invalidate(c, sessionID)

	e.logger.Log(c, barcode, mylog.SeverityInfo, "Added %dx %s to cart of %s", quantity, barcode, sessionID)
	e.notifier.Success(c, product.Name+" added", fmt.Sprintf("Quantity: %d", quantity))

	return line, nil
}

// updateQuantity never sends a zero quantity: that is a removal.
func (e *Engine) updateQuantity(c context.Context, lineID string, quantity int) error {
	if quantity <= 0 {
		return e.removeItem(c, lineID)
	}

	sessionID, err := e.sessions.EnsureSession(c)
	if err != nil {
		e.notifier.Error(c, "Failed to update quantity", backendclient.ErrorMessage(err))
		return err
	}

	_, err = e.carts.UpdateLine(c, lineID, quantity)
	if err != nil {
		e.notifier.Error(c, "Failed to update quantity", backendclient.ErrorMessage(err))
		return err
	}
	e.invalidate(c, sessionID)

	return nil
}

func (e *Engine) removeItem(c context.Context, lineID string) error {
	// resolve the name first: the line is gone from the view once the cache is invalidated
	name := ""
	view, found := e.cached(c)
	if found {
		line, exists := view.FindLine(lineID)
		if exists {
			name = line.ProductName
		}
	}

	sessionID, err := e.sessions.EnsureSession(c)
	if err != nil {
		e.notifier.Error(c, "Failed to remove product", backendclient.ErrorMessage(err))
		return err
	}

	err = e.carts.DeleteLine(c, lineID)
	if err != nil {
		e.notifier.Error(c, "Failed to remove product", backendclient.ErrorMessage(err))
		return err
	}
	e.invalidate(c, sessionID)

	if name != "" {
		e.notifier.Info(c, name+" removed from cart", "")
	}
	return nil
}

func (e *Engine) clearCart(c context.Context) error {
	sessionID, found, err := e.sessions.Current(c)
	if err != nil {
		e.notifier.Error(c, "Failed to empty the cart", backendclient.ErrorMessage(err))
		return err
	}
	if !found {
		e.notifier.Error(c, "Failed to empty the cart", backendclient.ErrorMessage(backendclient.ErrSessionRequired))
		return myerrors.NewNotFoundError(backendclient.ErrSessionRequired)
	}

	view, err := e.View(c)
	if err != nil {
		e.notifier.Error(c, "Failed to empty the cart", backendclient.ErrorMessage(err))
		return err
	}
	if view.Cart == nil || view.Cart.ID == "" {
		return myerrors.NewNotFoundError(fmt.Errorf("no cart for session %s", sessionID))
	}

	err = e.carts.DeleteAllLines(c, view.Cart.ID)
	if err != nil {
		e.notifier.Error(c, "Failed to empty the cart", backendclient.ErrorMessage(err))
		return err
	}

	err = e.sessions.Clear(c)
	if err != nil {
		e.notifier.Error(c, "Failed to empty the cart", backendclient.ErrorMessage(err))
		return err
	}
	e.invalidate(c, sessionID)

	e.logger.Log(c, sessionID, mylog.SeverityInfo, "Emptied cart %s", view.Cart.ID)
	e.notifier.Info(c, "Cart emptied", "")

	return nil
}

func (e *Engine) startNewCart(c context.Context) error {
	oldSessionID, _, err := e.sessions.Current(c)
	if err != nil {
		e.notifier.Error(c, "Failed to start new cart", backendclient.ErrorMessage(err))
		return err
	}

	err = e.sessions.Clear(c)
	if err != nil {
		e.notifier.Error(c, "Failed to start new cart", backendclient.ErrorMessage(err))
		return err
	}
	e.invalidate(c, oldSessionID)

	cart, err := e.carts.CreateCart(c)
	if err != nil {
		e.notifier.Error(c, "Failed to start new cart", backendclient.ErrorMessage(err))
		return err
	}
	if cart == nil || cart.SessionID == "" {
		e.notifier.Error(c, "Failed to start new cart", "Failed to create cart session")
		return myerrors.NewHTTPError(http.StatusBadGateway, errors.New("cart created without session"))
	}

	err = e.sessions.Bind(c, cart.SessionID)
	if err != nil {
		e.notifier.Error(c, "Failed to start new cart", backendclient.ErrorMessage(err))
		return err
	}
	e.invalidate(c, cart.SessionID)

	e.logger.Log(c, cart.SessionID, mylog.SeverityInfo, "Started cart %s", cart.ID)
	e.notifier.Success(c, "New cart started", "")

	return nil
}
