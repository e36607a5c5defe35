package scanner

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Debouncer accepts at most one value per window, regardless of the value itself.
type Debouncer struct {
	sync.Mutex
	limiter        *rate.Limiter
	lastDecoded    string
	lastAccepted   string
	lastAcceptedAt time.Time
}

type Last struct {
	Decoded    string    `json:"decoded,omitempty"`
	Accepted   string    `json:"accepted,omitempty"`
	AcceptedAt time.Time `json:"acceptedAt,omitempty"`
}

func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{
		limiter: rate.NewLimiter(rate.Every(window), 1),
	}
}

func (d *Debouncer) Accept(value string, now time.Time) bool {
	d.Lock()
	defer d.Unlock()

	d.lastDecoded = value
	if !d.limiter.AllowN(now, 1) {
		return false
	}
	d.lastAccepted = value
	d.lastAcceptedAt = now

	return true
}

func (d *Debouncer) Last() Last {
	d.Lock()
	defer d.Unlock()

	return Last{
		Decoded:    d.lastDecoded,
		Accepted:   d.lastAccepted,
		AcceptedAt: d.lastAcceptedAt,
	}
}
