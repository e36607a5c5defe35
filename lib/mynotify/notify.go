package mynotify

import (
	"context"
	"sync"
	"time"

	"github.com/MarcGrol/selfcheckout/lib/mylog"
	"github.com/MarcGrol/selfcheckout/lib/mytime"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"

	defaultCapacity = 50
)

type Notification struct {
	Seq         int64     `json:"seq"`
	Kind        Kind      `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	At          time.Time `json:"at"`
}

// Notifier reports transient, user facing messages.
type Notifier interface {
	Success(c context.Context, title string, description string)
	Error(c context.Context, title string, description string)
	Info(c context.Context, title string, description string)
}

// Feed keeps the most recent notifications so the kiosk screen can poll for them.
type Feed struct {
	sync.Mutex
	nower    mytime.Nower
	logger   mylog.Logger
	capacity int
	lastSeq  int64
	entries  []Notification
}

func NewFeed(nower mytime.Nower) *Feed {
	return &Feed{
		nower:    nower,
		logger:   mylog.New("notifications"),
		capacity: defaultCapacity,
	}
}

func (f *Feed) Success(c context.Context, title string, description string) {
	f.add(c, KindSuccess, title, description)
}

func (f *Feed) Error(c context.Context, title string, description string) {
	f.add(c, KindError, title, description)
}

func (f *Feed) Info(c context.Context, title string, description string) {
	f.add(c, KindInfo, title, description)
}

func (f *Feed) add(c context.Context, kind Kind, title string, description string) {
	severity := mylog.SeverityInfo
	if kind == KindError {
		severity = mylog.SeverityWarn
	}
	f.logger.Log(c, string(kind), severity, "%s: %s", title, description)

	f.Lock()
	defer f.Unlock()

	f.lastSeq++
	f.entries = append(f.entries, Notification{
		Seq:         f.lastSeq,
		Kind:        kind,
		Title:       title,
		Description: description,
		At:          f.nower.Now(),
	})
	if len(f.entries) > f.capacity {
		f.entries = f.entries[len(f.entries)-f.capacity:]
	}
}

// After returns the retained notifications with a sequence number above seq, oldest first.
func (f *Feed) After(seq int64) []Notification {
	f.Lock()
	defer f.Unlock()

	result := []Notification{}
	for _, n := range f.entries {
		if n.Seq > seq {
			result = append(result, n)
		}
	}
	return result
}

// Last returns the most recent notification, if any.
func (f *Feed) Last() (Notification, bool) {
	f.Lock()
	defer f.Unlock()

	if len(f.entries) == 0 {
		return Notification{}, false
	}
	return f.entries[len(f.entries)-1], true
}
