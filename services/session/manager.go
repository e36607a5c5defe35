package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/MarcGrol/selfcheckout/lib/mylog"
	"github.com/MarcGrol/selfcheckout/lib/mystore"
	"github.com/MarcGrol/selfcheckout/lib/mytime"
	"github.com/MarcGrol/selfcheckout/services/shopmodel"
)

// StorageKey is the durable key holding the current session identifier.
const StorageKey = "cart_session_id"

var (
	ErrSessionCreationFailed = errors.New("failed to create cart session")
	ErrSessionReset          = errors.New("session was reset while being created")
)

type Record struct {
	SessionID string
	CreatedAt time.Time
}

// CartResolver is the part of the cart service needed to resolve and create sessions.
type CartResolver interface {
	CreateCart(c context.Context) (*shopmodel.Cart, error)
	GetCurrentCart(c context.Context) (*shopmodel.Cart, error)
}

type Manager struct {
	store  mystore.Store[Record]
	carts  CartResolver
	nower  mytime.Nower
	logger mylog.Logger
	flight singleflight.Group

	sync.Mutex
	generation uint64
	verifiedID string
}

func NewManager(store mystore.Store[Record], carts CartResolver, nower mytime.Nower) *Manager {
	return &Manager{
		store:  store,
		carts:  carts,
		nower:  nower,
		logger: mylog.New("session"),
	}
}

// Current returns the persisted session without contacting the cart service.
func (m *Manager) Current(c context.Context) (string, bool, error) {
	return NewReader(m.store).Current(c)
}

// Reader reads the persisted session only; backend clients use it to scope their calls.
type Reader struct {
	store mystore.Store[Record]
}

func NewReader(store mystore.Store[Record]) Reader {
	return Reader{store: store}
}

func (r Reader) Current(c context.Context) (string, bool, error) {
	record, found, err := r.store.Get(c, StorageKey)
	if err != nil {
		return "", false, fmt.Errorf("error reading session: %w", err)
	}
	if !found || record.SessionID == "" {
		return "", false, nil
	}
	return record.SessionID, true, nil
}

// EnsureSession makes sure a session with a resolvable cart exists. Concurrent callers share one attempt.
func (m *Manager) EnsureSession(c context.Context) (string, error) {
	m.Lock()
	generation := m.generation
	verifiedID := m.verifiedID
	m.Unlock()

	if verifiedID != "" {
		sessionID, found, err := m.Current(c)
		if err != nil {
			return "", err
		}
		if found && sessionID == verifiedID {
			return sessionID, nil
		}
	}

	resultChan := m.flight.DoChan(flightKey(generation), func() (any, error) {
		return m.initialize(context.WithoutCancel(c), generation)
	})

	select {
	case result := <-resultChan:
		if result.Err != nil {
			return "", result.Err
		}
		return result.Val.(string), nil
	case <-c.Done():
		return "", c.Err()
	}
}

func (m *Manager) initialize(c context.Context, generation uint64) (string, error) {
	sessionID, found, err := m.Current(c)
	if err != nil {
		return "", err
	}

	if found {
		cart, err := m.carts.GetCurrentCart(c)
		if err != nil {
			return "", fmt.Errorf("error resolving cart of session: %w", err)
		}
		if cart != nil {
			return sessionID, m.markVerified(generation, sessionID)
		}
		m.logger.Log(c, sessionID, mylog.SeverityInfo, "Cart of session %s no longer exists", sessionID)
	}

	cart, err := m.carts.CreateCart(c)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSessionCreationFailed, err)
	}
	if cart == nil || cart.SessionID == "" {
		return "", ErrSessionCreationFailed
	}

	err = m.bind(c, generation, cart.SessionID)
	if err != nil {
		return "", err
	}

	m.logger.Log(c, cart.SessionID, mylog.SeverityInfo, "Created session %s for cart %s", cart.SessionID, cart.ID)

	return cart.SessionID, nil
}

// Bind persists a session that was created outside EnsureSession, e.g. when starting a new cart.
func (m *Manager) Bind(c context.Context, sessionID string) error {
	m.Lock()
	generation := m.generation
	m.Unlock()

	return m.bind(c, generation, sessionID)
}

func (m *Manager) bind(c context.Context, generation uint64, sessionID string) error {
	m.Lock()
	defer m.Unlock()

	if generation != m.generation {
		return ErrSessionReset
	}

	err := m.store.Put(c, StorageKey, Record{SessionID: sessionID, CreatedAt: m.nower.Now()})
	if err != nil {
		return fmt.Errorf("error storing session: %w", err)
	}
	m.verifiedID = sessionID

	return nil
}

func (m *Manager) markVerified(generation uint64, sessionID string) error {
	m.Lock()
	defer m.Unlock()

	if generation != m.generation {
		return ErrSessionReset
	}
	m.verifiedID = sessionID

	return nil
}

// Clear removes the session and invalidates any initialization still in flight.
func (m *Manager) Clear(c context.Context) error {
	m.Lock()
	defer m.Unlock()

	m.flight.Forget(flightKey(m.generation))
	m.generation++
	m.verifiedID = ""

	err := m.store.Delete(c, StorageKey)
	if err != nil {
		return fmt.Errorf("error clearing session: %w", err)
	}

	return nil
}

func flightKey(generation uint64) string {
	return "session-init-" + strconv.FormatUint(generation, 10)
}
