package cart

import (
	"context"
	"sync"
	"time"

	"github.com/MarcGrol/selfcheckout/lib/mytime"
	"github.com/MarcGrol/selfcheckout/services/shopmodel"
)

// ViewCache holds server confirmed cart views per session until they go stale.
type ViewCache interface {
	Get(c context.Context, sessionID string) (shopmodel.CartView, bool, error)
	Set(c context.Context, sessionID string, view shopmodel.CartView, ttl time.Duration) error
	Delete(c context.Context, sessionID string) error
}

type cachedView struct {
	view    shopmodel.CartView
	expires time.Time
}

type MemoryViewCache struct {
	sync.Mutex
	nower   mytime.Nower
	entries map[string]cachedView
}

func NewMemoryViewCache(nower mytime.Nower) *MemoryViewCache {
	return &MemoryViewCache{
		nower:   nower,
		entries: map[string]cachedView{},
	}
}

func (mc *MemoryViewCache) Get(c context.Context, sessionID string) (shopmodel.CartView, bool, error) {
	mc.Lock()
	defer mc.Unlock()

	entry, found := mc.entries[sessionID]
	if !found {
		return shopmodel.CartView{}, false, nil
	}
	if !mc.nower.Now().Before(entry.expires) {
		delete(mc.entries, sessionID)
		return shopmodel.CartView{}, false, nil
	}
	return entry.view, true, nil
}

func (mc *MemoryViewCache) Set(c context.Context, sessionID string, view shopmodel.CartView, ttl time.Duration) error {
	mc.Lock()
	defer mc.Unlock()

	mc.entries[sessionID] = cachedView{
		view:    view,
		expires: mc.nower.Now().Add(ttl),
	}
	return nil
}

func (mc *MemoryViewCache) Delete(c context.Context, sessionID string) error {
	mc.Lock()
	defer mc.Unlock()

	delete(mc.entries, sessionID)
	return nil
}
